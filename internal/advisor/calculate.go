package advisor

import (
	"math"

	"spendly/internal/model"
)

// CalculateSpending totals expenses by category and raises red flags.
func CalculateSpending(snap model.Snapshot) SpendingResult {
	res := SpendingResult{
		Income:          snap.Income,
		CategoryTotals:  map[string]float64{},
		CategoryPercent: map[string]float64{},
		RedFlags:        []string{},
	}

	for _, tx := range snap.Transactions {
		if tx.Amount >= 0 {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = "Others"
		}
		res.TotalExpense += -tx.Amount
		res.CategoryTotals[cat] += -tx.Amount
	}

	var foodShare float64
	for cat, total := range res.CategoryTotals {
		var share float64
		if res.TotalExpense > 0 {
			share = total / res.TotalExpense * 100
		}
		if cat == CategoryFood {
			foodShare = share
		}
		res.CategoryPercent[cat] = round2(share)
	}

	if foodShare > foodShareLimit {
		res.RedFlags = append(res.RedFlags, FlagHighFood)
	}
	if res.CategoryTotals[CategoryEMI] > snap.Income*emiIncomeLimit {
		res.RedFlags = append(res.RedFlags, FlagHighEMI)
	}
	if snap.EmergencyFund < snap.Income*emergencyMonthsLow {
		res.RedFlags = append(res.RedFlags, FlagLowEmergency)
	}
	return res
}

// CalculateInvestment tops up the emergency fund over a year and splits the
// rest of the surplus 60/20/10/10.
func CalculateInvestment(snap model.Snapshot) InvestmentResult {
	res := InvestmentResult{
		Income:     snap.Income,
		MockMarket: mockMarket(),
	}
	for _, tx := range snap.Transactions {
		if tx.Amount < 0 {
			res.TotalExpense += -tx.Amount
		}
	}

	res.Surplus = math.Max(0, snap.Income-res.TotalExpense)
	minEmergency := snap.Income * emergencyMonthsTarget
	res.EmergencyGap = math.Max(0, minEmergency-snap.EmergencyFund)
	res.Investible = math.Max(0, res.Surplus-res.EmergencyGap/12)

	res.Allocation = Allocation{
		EquitySIP: res.Investible * equityShare,
		DebtFD:    res.Investible * debtShare,
		Gold:      res.Investible * goldShare,
		Liquid:    res.Investible * liquidShare,
	}
	return res
}

// CalculateLoan applies the 40% of income EMI rule over a five year tenure.
func CalculateLoan(in LoanInput) LoanResult {
	maxEMI := math.Max(0, in.MonthlyIncome*maxEMIIncomeShare-in.ExistingEMI)
	return LoanResult{
		MonthlyIncome:       in.MonthlyIncome,
		ExistingEMI:         in.ExistingEMI,
		MaxEMI:              maxEMI,
		LoanAmount:          maxEMI * LoanTenureMonths,
		TenureMonths:        LoanTenureMonths,
		InterestRateAssumed: LoanInterestRate,
		CIBILScore:          in.CIBILScore,
		GoodCredit:          in.CIBILScore >= GoodCIBILScore,
	}
}

// CalculateTax compares a flat-rate old regime after deductions against a
// flat-rate new regime with none. The rates are rough approximations.
func CalculateTax(in TaxInput) TaxResult {
	income := math.Max(0, in.AnnualIncome)

	d := Deductions{
		Standard:         math.Min(standardDeduction, income),
		HRA:              hraExemption(in, income),
		Section80C:       math.Min(math.Max(0, in.ProvidentFund), section80CCap),
		Section80D:       math.Min(math.Max(0, in.HealthPremium), section80DCap),
		HomeLoanInterest: math.Min(math.Max(0, in.HomeLoanInterest), homeLoanInterestCap),
	}
	d.Total = d.Standard + d.HRA + d.Section80C + d.Section80D + d.HomeLoanInterest

	res := TaxResult{
		AnnualIncome:     income,
		Deductions:       d,
		TaxableIncomeOld: math.Max(0, income-d.Total),
		NewRegimeTax:     income * newRegimeRate,
		MissingBuckets:   []string{},
	}
	res.OldRegimeTax = res.TaxableIncomeOld * oldRegimeRate

	res.RecommendedRegime = RegimeNew
	if res.OldRegimeTax < res.NewRegimeTax {
		res.RecommendedRegime = RegimeOld
	}

	if d.Section80C == 0 {
		res.MissingBuckets = append(res.MissingBuckets, BucketSection80C)
	}
	if d.Section80D == 0 {
		res.MissingBuckets = append(res.MissingBuckets, BucketSection80D)
	}
	if d.HRA == 0 {
		res.MissingBuckets = append(res.MissingBuckets, BucketHRA)
	}
	if d.HomeLoanInterest == 0 {
		res.MissingBuckets = append(res.MissingBuckets, BucketHomeLoanInterest)
	}
	if in.ProvidentFund <= 0 {
		res.MissingBuckets = append(res.MissingBuckets, BucketPF)
	}
	return res
}

// hraExemption is the least of rent above 10% of salary, 40% of salary and,
// when known, the HRA actually received.
func hraExemption(in TaxInput, income float64) float64 {
	excess := in.MonthlyRent*12 - income*hraRentExcessShare
	if excess <= 0 {
		return 0
	}
	exempt := math.Min(excess, income*hraSalaryShare)
	if in.HRAReceived > 0 {
		exempt = math.Min(exempt, in.HRAReceived)
	}
	return exempt
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
