package document

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"spendly/internal/model"
)

var (
	basicPattern = payslipPattern("Basic")
	hraPattern   = payslipPattern("HRA")
	pfPattern    = payslipPattern("PF")
	tdsPattern   = payslipPattern("TDS|Tax Deducted|Income Tax")
)

func payslipPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)(?:` + label + `).*?(\d[\d,]*)`)
}

func (p *implParser) parsePayslipFile(path string) (model.Payslip, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Payslip{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return ParsePayslip(string(raw))
}

// ParsePayslip pulls the basic, HRA, PF and TDS amounts out of payslip text.
// A missing label reads as 0; text with none of them is rejected.
func ParsePayslip(text string) (model.Payslip, error) {
	slip := model.Payslip{
		Basic:       findAmount(basicPattern, text),
		HRA:         findAmount(hraPattern, text),
		PF:          findAmount(pfPattern, text),
		TaxDeducted: findAmount(tdsPattern, text),
	}
	if slip == (model.Payslip{}) {
		return model.Payslip{}, fmt.Errorf("%w: no payslip figures found", ErrParse)
	}
	return slip, nil
}

func findAmount(re *regexp.Regexp, text string) float64 {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}
