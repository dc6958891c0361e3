// Package advisor holds the four calculators and the narrative each one
// asks the generator for.
package advisor

import (
	"context"

	"spendly/internal/model"
)

// Generator is the opaque text generation call.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// Advisor runs a calculator and attaches its narrative. The numeric result
// is always complete; a non-nil error only means the narrative is empty.
type Advisor interface {
	Spending(ctx context.Context, snap model.Snapshot) (SpendingResult, error)
	Tax(ctx context.Context, in TaxInput) (TaxResult, error)
	Investment(ctx context.Context, snap model.Snapshot) (InvestmentResult, error)
	Loan(ctx context.Context, in LoanInput) (LoanResult, error)
}
