package advisor

// SpendingResult summarises where a month's money went.
type SpendingResult struct {
	Income          float64            `json:"income"`
	TotalExpense    float64            `json:"total_expense"`
	CategoryTotals  map[string]float64 `json:"category_totals"`
	CategoryPercent map[string]float64 `json:"category_percent"`
	RedFlags        []string           `json:"red_flags"`
	Narrative       string             `json:"narrative"`
}

// TaxInput is the annual picture the regime comparison needs. Rent is
// monthly; every other amount is yearly.
type TaxInput struct {
	AnnualIncome     float64
	MonthlyRent      float64
	HealthPremium    float64
	HomeLoanInterest float64
	// HRAReceived and ProvidentFund come from a payslip when one was uploaded.
	HRAReceived   float64
	ProvidentFund float64
}

// Deductions itemises what the old regime allows.
type Deductions struct {
	Standard         float64 `json:"standard_deduction"`
	HRA              float64 `json:"hra"`
	Section80C       float64 `json:"section_80c"`
	Section80D       float64 `json:"section_80d"`
	HomeLoanInterest float64 `json:"home_loan_interest"`
	Total            float64 `json:"total"`
}

// TaxResult compares the two regimes.
type TaxResult struct {
	AnnualIncome      float64    `json:"annual_income"`
	Deductions        Deductions `json:"deductions"`
	TaxableIncomeOld  float64    `json:"taxable_income_old"`
	OldRegimeTax      float64    `json:"old_regime_tax"`
	NewRegimeTax      float64    `json:"new_regime_tax"`
	RecommendedRegime string     `json:"recommended_regime"`
	MissingBuckets    []string   `json:"missing_buckets"`
	Recommendation    string     `json:"recommendation"`
}

// Allocation splits the investible surplus.
type Allocation struct {
	EquitySIP float64 `json:"equity_sip"`
	DebtFD    float64 `json:"debt_fd"`
	Gold      float64 `json:"gold"`
	Liquid    float64 `json:"liquid"`
}

// MarketReturn is an illustrative trailing return.
type MarketReturn struct {
	OneYearReturn float64 `json:"1y_return"`
}

// InvestmentResult is a monthly allocation plan.
type InvestmentResult struct {
	Income       float64                 `json:"income"`
	TotalExpense float64                 `json:"total_expense"`
	Surplus      float64                 `json:"surplus"`
	EmergencyGap float64                 `json:"emergency_gap"`
	Investible   float64                 `json:"investible"`
	Allocation   Allocation              `json:"allocation"`
	MockMarket   map[string]MarketReturn `json:"mock_market"`
	Narrative    string                  `json:"narrative"`
}

// LoanInput is what a lender would ask for.
type LoanInput struct {
	MonthlyIncome float64
	ExistingEMI   float64
	CIBILScore    int
}

// LoanResult estimates borrowing headroom.
type LoanResult struct {
	MonthlyIncome       float64 `json:"monthly_income"`
	ExistingEMI         float64 `json:"existing_emi"`
	MaxEMI              float64 `json:"max_emi"`
	LoanAmount          float64 `json:"loan_amount"`
	TenureMonths        int     `json:"tenure_months"`
	InterestRateAssumed float64 `json:"interest_rate_assumed"`
	CIBILScore          int     `json:"cibil_score"`
	GoodCredit          bool    `json:"good_credit"`
	Narrative           string  `json:"narrative"`
}
