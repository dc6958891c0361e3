package model

// Transaction is one bank statement row. Negative amounts are expenses.
type Transaction struct {
	Date     string  `json:"date"`
	Desc     string  `json:"desc"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Snapshot is a parsed financial document. It is replaced wholesale on each upload.
type Snapshot struct {
	Income        float64       `json:"income"`
	Transactions  []Transaction `json:"transactions"`
	EmergencyFund float64       `json:"emergencyFund"`
}

// Payslip holds the figures pulled from a salary slip.
type Payslip struct {
	Basic       float64 `json:"basic"`
	HRA         float64 `json:"hra"`
	PF          float64 `json:"pf"`
	TaxDeducted float64 `json:"tax_deducted"`
}

// Income is the monthly gross the slip implies.
func (p Payslip) Income() float64 {
	return p.Basic + p.HRA
}
