package document

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/unidoc/unipdf/v3/common/license"

	"spendly/pkg/log"
)

type implParser struct {
	l          log.Logger
	gen        Generator
	maxLookups int
	categories *lru.Cache[string, string]
	pdfEnabled bool
}

// New builds a Parser. A bad license key is reported but only disables PDFs.
func New(l log.Logger, opt Options) (Parser, error) {
	cache, err := lru.New[string, string](categoryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("document: category cache: %w", err)
	}

	p := &implParser{
		l:          l,
		gen:        opt.Generator,
		maxLookups: opt.MaxLLMLookups,
		categories: cache,
	}
	if p.maxLookups <= 0 {
		p.maxLookups = defaultMaxLLMLookups
	}

	if opt.UnidocLicenseKey != "" {
		if err := license.SetMeteredKey(opt.UnidocLicenseKey); err != nil {
			return p, fmt.Errorf("document: unidoc license: %w", err)
		}
		p.pdfEnabled = true
	}
	return p, nil
}
