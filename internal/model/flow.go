package model

import (
	"encoding/json"
	"fmt"
)

// FlowKind tags a FlowState.
type FlowKind string

const (
	FlowKindIdle         FlowKind = "idle"
	FlowKindAwaitingSlot FlowKind = "awaiting_slot"
)

// FlowTaxIntake is the tax-deduction intake flow.
const FlowTaxIntake = "tax_intake"

// FlowState is Idle or AwaitingSlot(FlowID, Position). A session holds exactly one.
type FlowState struct {
	Kind     FlowKind
	FlowID   string
	Position int
}

// Idle is the state with no pending question.
func Idle() FlowState {
	return FlowState{Kind: FlowKindIdle}
}

// AwaitingSlot is the state after asking the field at position of flowID.
func AwaitingSlot(flowID string, position int) FlowState {
	return FlowState{Kind: FlowKindAwaitingSlot, FlowID: flowID, Position: position}
}

// IsAwaiting reports whether the session waits for an answer in flowID.
func (f FlowState) IsAwaiting(flowID string) bool {
	return f.Kind == FlowKindAwaitingSlot && f.FlowID == flowID
}

type flowWire struct {
	Kind     FlowKind `json:"kind"`
	FlowID   string   `json:"flow_id,omitempty"`
	Position *int     `json:"position,omitempty"`
}

// MarshalJSON writes {"kind":"idle"} or the full awaiting form.
func (f FlowState) MarshalJSON() ([]byte, error) {
	if f.Kind != FlowKindAwaitingSlot {
		return json.Marshal(flowWire{Kind: FlowKindIdle})
	}
	pos := f.Position
	return json.Marshal(flowWire{Kind: f.Kind, FlowID: f.FlowID, Position: &pos})
}

// UnmarshalJSON accepts the two tagged forms.
func (f *FlowState) UnmarshalJSON(data []byte) error {
	var w flowWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case FlowKindIdle:
		*f = Idle()
	case FlowKindAwaitingSlot:
		if w.FlowID == "" {
			return fmt.Errorf("flow state: awaiting_slot without flow_id")
		}
		pos := 0
		if w.Position != nil {
			pos = *w.Position
		}
		*f = AwaitingSlot(w.FlowID, pos)
	default:
		return fmt.Errorf("flow state: unknown kind %q", w.Kind)
	}
	return nil
}
