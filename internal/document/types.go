package document

import "spendly/internal/model"

// Kind tells which state key a parsed document belongs under.
type Kind string

const (
	KindBankStatement Kind = "bank_statement"
	KindPayslip       Kind = "payslip"
)

// Document is the result of parsing one upload. Exactly one of Snapshot and
// Payslip is set, matching Kind.
type Document struct {
	Kind     Kind
	Snapshot *model.Snapshot
	Payslip  *model.Payslip
}

// Options configures a Parser.
type Options struct {
	// Generator, when set, categorises transactions no keyword matches.
	Generator Generator
	// MaxLLMLookups bounds generation calls per statement; the rest fall
	// back to CategoryOthers.
	MaxLLMLookups int
	// UnidocLicenseKey enables PDF payslips.
	UnidocLicenseKey string
}
