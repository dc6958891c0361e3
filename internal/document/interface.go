// Package document turns uploaded bank statements and payslips into the
// numbers the calculators work on.
package document

import "context"

// Parser reads a stored upload.
type Parser interface {
	// Parse returns ErrParse (wrapped) when the file cannot be read or has
	// no usable content. Rows it cannot interpret are skipped.
	Parse(ctx context.Context, path string) (Document, error)
}

// Generator is the text generation call used for category fallback.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}
