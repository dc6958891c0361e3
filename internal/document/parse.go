package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

func (p *implParser) Parse(ctx context.Context, path string) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		snap, err := p.parseBankCSV(ctx, path)
		if err != nil {
			return Document{}, err
		}
		return Document{Kind: KindBankStatement, Snapshot: &snap}, nil

	case ".txt":
		slip, err := p.parsePayslipFile(path)
		if err != nil {
			return Document{}, err
		}
		return Document{Kind: KindPayslip, Payslip: &slip}, nil

	case ".pdf":
		if !p.pdfEnabled {
			return Document{}, fmt.Errorf("%w: %w", ErrParse, ErrPDFLicense)
		}
		text, err := extractPDFText(path)
		if err != nil {
			return Document{}, err
		}
		slip, err := ParsePayslip(text)
		if err != nil {
			return Document{}, err
		}
		return Document{Kind: KindPayslip, Payslip: &slip}, nil

	default:
		return Document{}, fmt.Errorf("%w: %w %q", ErrParse, ErrUnsupported, filepath.Ext(path))
	}
}
