package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Well-known state keys.
const (
	StateKeyParsedBank    = "parsed_bank"
	StateKeyPayslip       = "payslip"
	StateKeyAnnualIncome  = "annual_income"
	StateKeyMonthlyIncome = "monthly_income"
	StateKeyTaxQuestions  = "tax_questions"
	StateKeyFlow          = "flow"

	// StateKeyLegacyAwaitingTax is the boolean flag older sessions carry instead of StateKeyFlow.
	StateKeyLegacyAwaitingTax = "awaiting_tax_answer"
)

// State is the opaque per-session fact bag. Values are kept as raw JSON so
// keys this service does not know about round-trip untouched.
type State map[string]json.RawMessage

// Has reports whether key is present.
func (s State) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Get decodes key into v. It reports false when the key is absent or JSON null.
func (s State) Get(key string, v any) (bool, error) {
	raw, ok := s[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("state key %q: %w", key, err)
	}
	return true, nil
}

// Set encodes v under key.
func (s State) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("state key %q: %w", key, err)
	}
	s[key] = raw
	return nil
}

// Delete removes key.
func (s State) Delete(key string) {
	delete(s, key)
}

// Number returns a numeric fact, false when absent or not a number.
func (s State) Number(key string) (float64, bool) {
	var f float64
	ok, err := s.Get(key, &f)
	if err != nil || !ok {
		return 0, false
	}
	return f, true
}

// Clone copies the map and every raw value.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Flow returns the pending flow. An absent key is Idle; the legacy boolean
// flag is read as awaiting the tax intake with no recorded position.
func (s State) Flow() FlowState {
	var fs FlowState
	if ok, err := s.Get(StateKeyFlow, &fs); ok && err == nil && fs.Kind != "" {
		return fs
	}

	var legacy bool
	if ok, err := s.Get(StateKeyLegacyAwaitingTax, &legacy); ok && err == nil && legacy {
		return AwaitingSlot(FlowTaxIntake, 0)
	}

	return Idle()
}

// SetFlow stores fs and drops the legacy flag.
func (s State) SetFlow(fs FlowState) error {
	s.Delete(StateKeyLegacyAwaitingTax)
	return s.Set(StateKeyFlow, fs)
}
