package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"spendly/internal/model"
	"spendly/pkg/log"
)

type implAdvisor struct {
	gen Generator
	l   log.Logger
}

// New returns an Advisor that narrates with gen. A nil gen disables
// narratives and every call reports ErrNoGenerator.
func New(gen Generator, l log.Logger) Advisor {
	return &implAdvisor{gen: gen, l: l}
}

func (a *implAdvisor) Spending(ctx context.Context, snap model.Snapshot) (SpendingResult, error) {
	res := CalculateSpending(snap)

	prompt := fmt.Sprintf(spendingPrompt,
		res.Income, res.TotalExpense, formatPercent(res.CategoryPercent), formatList(res.RedFlags),
		fmt.Sprintf(plainTextRules, spendingFormat),
	)
	text, err := a.narrate(ctx, "Spending", prompt, "")
	res.Narrative = text
	return res, err
}

func (a *implAdvisor) Investment(ctx context.Context, snap model.Snapshot) (InvestmentResult, error) {
	res := CalculateInvestment(snap)

	market, _ := json.Marshal(res.MockMarket)
	prompt := fmt.Sprintf(investmentPrompt,
		res.Income, res.TotalExpense, res.Surplus, snap.EmergencyFund, snap.Income*emergencyMonthsTarget,
		res.Allocation.EquitySIP, res.Allocation.DebtFD, res.Allocation.Gold, res.Allocation.Liquid,
		market, fmt.Sprintf(plainTextRules, investmentFormat),
	)
	text, err := a.narrate(ctx, "Investment", prompt, "")
	res.Narrative = text
	return res, err
}

func (a *implAdvisor) Loan(ctx context.Context, in LoanInput) (LoanResult, error) {
	res := CalculateLoan(in)

	prompt := fmt.Sprintf(loanPrompt,
		res.MonthlyIncome, res.ExistingEMI, res.CIBILScore, res.MaxEMI,
		res.TenureMonths, res.InterestRateAssumed*100, res.LoanAmount, GoodCIBILScore,
	)
	text, err := a.narrate(ctx, "Loan", prompt, loanSystem)
	res.Narrative = text
	return res, err
}

func (a *implAdvisor) Tax(ctx context.Context, in TaxInput) (TaxResult, error) {
	res := CalculateTax(in)

	deductions, _ := json.Marshal(res.Deductions)
	prompt := fmt.Sprintf(taxPrompt,
		res.AnnualIncome, res.Deductions.Total, res.OldRegimeTax, res.NewRegimeTax,
		deductions, formatList(res.MissingBuckets),
	)
	text, err := a.narrate(ctx, "Tax", prompt, taxSystem)
	res.Recommendation = text
	return res, err
}

func (a *implAdvisor) narrate(ctx context.Context, method, prompt, system string) (string, error) {
	if a.gen == nil {
		return "", ErrNoGenerator
	}
	text, err := a.gen.Generate(ctx, prompt, system)
	if err != nil {
		a.l.Warnf(ctx, "advisor.%s: narrative failed: %v", method, err)
		return "", fmt.Errorf("%w: %v", ErrNarrative, err)
	}
	return text, nil
}

// formatPercent renders category shares in a stable order, largest first.
func formatPercent(m map[string]float64) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %.1f%%", k, m[k])
	}
	return strings.Join(parts, ", ")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, "; ")
}
