package slot

import "context"

// FieldType is the expected type of an answered field.
type FieldType string

const (
	TypeNumber FieldType = "number"
	TypeString FieldType = "string"
	TypeBool   FieldType = "bool"
)

// Field is one required answer of a flow.
type Field struct {
	Key    string
	Prompt string
	Type   FieldType
	// Min is the inclusive lower bound for numbers.
	Min float64
	// Description tells the extractor what value to pull out.
	Description string
}

// Schema is the ordered, static field list of a flow.
type Schema struct {
	ID     string
	Fields []Field
}

// Progress maps field keys to answers. A nil value means asked but
// unresolved; a missing key means never asked.
type Progress map[string]any

// Clone returns a shallow copy; values are scalars.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Extractor turns a free-text answer into a JSON object keyed by the given
// fields. It is best effort: unknown values come back as null.
type Extractor interface {
	Extract(ctx context.Context, fields []Field, text string) ([]byte, error)
}
