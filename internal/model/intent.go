package model

// Intent selects the calculation a turn runs.
type Intent string

const (
	IntentSpendingPlan Intent = "spending_plan"
	IntentTaxSaver     Intent = "tax_saver"
	IntentInvestment   Intent = "investment"
	IntentLoan         Intent = "loan"
)

// Intents lists every supported intent.
var Intents = []Intent{IntentSpendingPlan, IntentTaxSaver, IntentInvestment, IntentLoan}

// IsValid reports whether i is a known intent.
func (i Intent) IsValid() bool {
	switch i {
	case IntentSpendingPlan, IntentTaxSaver, IntentInvestment, IntentLoan:
		return true
	}
	return false
}

// IngestsDocument reports whether the intent accepts an uploaded document.
func (i Intent) IngestsDocument() bool {
	return i == IntentSpendingPlan || i == IntentInvestment
}
