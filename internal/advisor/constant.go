package advisor

const (
	CategoryFood = "Food"
	CategoryEMI  = "EMI"

	FlagHighFood     = "HIGH FOOD DELIVERY / dining – more than 20% of expenses."
	FlagHighEMI      = "HIGH EMI BURDEN – more than 40% of income."
	FlagLowEmergency = "LOW EMERGENCY FUND – less than 2 months of income saved."

	foodShareLimit     = 20.0
	emiIncomeLimit     = 0.4
	emergencyMonthsLow = 2.0
)

// Investment
const (
	emergencyMonthsTarget = 3.0
	equityShare           = 0.6
	debtShare             = 0.2
	goldShare             = 0.1
	liquidShare           = 0.1
)

// Loan
const (
	LoanTenureMonths  = 60
	LoanInterestRate  = 0.12
	GoodCIBILScore    = 700
	maxEMIIncomeShare = 0.4
)

// Tax
const (
	RegimeOld = "old"
	RegimeNew = "new"

	BucketSection80C       = "80C"
	BucketSection80D       = "80D"
	BucketHRA              = "HRA"
	BucketHomeLoanInterest = "home loan interest"
	BucketPF               = "PF"

	oldRegimeRate       = 0.15
	newRegimeRate       = 0.12
	standardDeduction   = 50000.0
	section80CCap       = 150000.0
	section80DCap       = 25000.0
	homeLoanInterestCap = 200000.0
	hraRentExcessShare  = 0.1
	hraSalaryShare      = 0.4
)

func mockMarket() map[string]MarketReturn {
	return map[string]MarketReturn{
		"nifty_50":        {OneYearReturn: 0.14},
		"short_term_debt": {OneYearReturn: 0.07},
		"gold":            {OneYearReturn: 0.10},
		"liquid_fund":     {OneYearReturn: 0.05},
	}
}

const plainTextRules = `OUTPUT FORMAT (PLAIN TEXT, NO MARKDOWN)
%s
- Keep each bullet to max 2 short sentences.
- Do NOT use **bold**, headings, numbered lists or tables; only plain "- " bullets.`

const spendingPrompt = `You are a disciplined but friendly Indian personal finance coach.

CONTEXT
- Monthly income (approx): %.2f
- Total monthly expenses: %.2f
- Category %% spend: %s
- Detected red flags: %s

INSTRUCTIONS
- The reader is an Indian salaried person in their 20s or 30s.
- Be practical and conservative and never promise guaranteed returns.
- Name only broad product types (index fund, debt fund, FD, gold ETF), never stock symbols, broker apps or banks.
- Never suggest borrowing to invest.

` + `%s`

const spendingFormat = `- First line: a one-sentence assessment.
- Then 3 bullets with an ideal monthly budget split in percentages by broad bucket.
- Then 1 bullet with an approximate SIP amount and why it is reasonable.
- Then 4 to 6 bullets with lifestyle adjustments, each starting with "- ".`

const investmentPrompt = `You are a calm, long-term focused investment advisor for Indian salaried users.

CONTEXT
- Monthly income: %.2f
- Total expenses: %.2f
- Monthly surplus: %.2f
- Existing emergency fund: %.2f
- Recommended emergency fund (about 3 months): %.2f

Proposed monthly allocation from the investible surplus:
- Equity index SIP: %.2f
- Debt / FD: %.2f
- Gold: %.2f
- Liquid fund: %.2f

Illustrative 1y returns: %s

GUARDRAILS
- Only broad types: index fund, flexi-cap, debt fund, FD, gold ETF, liquid fund. No stock symbols, PMS or fund names.
- Say clearly that returns are historical examples and not guaranteed.
- Never encourage loans or credit cards to invest.

` + `%s`

const investmentFormat = `- First line: one short sentence summarising the plan.
- Then 4 to 6 bullets: why the split is balanced, how to weigh the emergency fund against investing, and the exact actions to start this month.`

const loanSystem = "You are a bank loan officer explaining in simple language."

const loanPrompt = `User monthly income: %.2f
Existing EMIs: %.2f
CIBIL score: %d
Max EMI allowed (40%% rule): %.2f
Approx loan amount possible (%d months @ %.0f%%): %.2f

Explain:
- Whether banks are likely to approve (a CIBIL score of %d or more is good).
- What loan range looks reasonable.
- 3 or 4 tips to improve approval chances and keep the EMI comfortable.`

const taxSystem = "You are an Indian tax consultant explaining in a simple Hindi and English mix."

const taxPrompt = `Annual income: %.2f
Old regime tax (approx, after deductions of %.2f): %.2f
New regime tax (approx): %.2f
Deductions claimed: %s
Buckets not used yet: %s

1. Recommend the old or the new regime.
2. Explain what each unused bucket could save.
3. Give 3 to 5 actionable tips.

Format as clear bullet points.`
