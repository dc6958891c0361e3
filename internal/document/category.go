package document

import (
	"context"
	"fmt"
	"strings"
)

// Categorise maps a transaction description to a spending category using
// the keyword table only.
func Categorise(desc string) (string, bool) {
	d := strings.ToLower(desc)
	for _, kc := range keywordCategories {
		if strings.Contains(d, kc.keyword) {
			return kc.category, true
		}
	}
	return "", false
}

func (p *implParser) categorise(ctx context.Context, desc string, amount float64, lookups *int) string {
	if cat, ok := Categorise(desc); ok {
		return cat
	}
	if p.gen == nil {
		return CategoryOthers
	}

	key := strings.ToLower(strings.TrimSpace(desc))
	if cat, ok := p.categories.Get(key); ok {
		return cat
	}
	if *lookups >= p.maxLookups {
		return CategoryOthers
	}
	*lookups++

	answer, err := p.gen.Generate(ctx, fmt.Sprintf(categoryPrompt, desc, amount), categorySystem)
	if err != nil {
		p.l.Warnf(ctx, "document.categorise: %q: %v", desc, err)
		return CategoryOthers
	}

	cat := firstLine(answer)
	if cat == "" {
		cat = CategoryOthers
	}
	p.categories.Add(key, cat)
	return cat
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
