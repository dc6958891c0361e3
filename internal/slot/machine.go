package slot

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// NextPrompt returns the first field in schema order whose answer is absent
// or null. ok is false when every field is answered.
func NextPrompt(schema Schema, progress Progress) (Field, bool) {
	i := Position(schema, progress)
	if i == len(schema.Fields) {
		return Field{}, false
	}
	return schema.Fields[i], true
}

// Position is the index NextPrompt would ask, len(schema.Fields) when complete.
func Position(schema Schema, progress Progress) int {
	for i, f := range schema.Fields {
		if v, ok := progress[f.Key]; !ok || v == nil {
			return i
		}
	}
	return len(schema.Fields)
}

// Complete reports whether every field has an answer.
func Complete(schema Schema, progress Progress) bool {
	return Position(schema, progress) == len(schema.Fields)
}

// RecordAnswer extracts the unresolved fields from text and merges them into
// a copy of progress. The field currently being asked is always recorded,
// as null when the extraction gave nothing valid. Other unresolved fields
// are recorded only when a valid value was volunteered. Answered fields are
// never overwritten and keys outside the schema are ignored.
//
// A failed or malformed extraction is not retried: the asked field is set
// to null and the error is returned for logging together with the merged
// progress.
func RecordAnswer(ctx context.Context, ex Extractor, schema Schema, progress Progress, text string) (Progress, error) {
	out := progress.Clone()

	pending := unresolved(schema, out)
	if len(pending) == 0 {
		return out, nil
	}
	asked := pending[0]

	raw, err := ex.Extract(ctx, pending, text)
	if err != nil {
		out[asked.Key] = nil
		return out, fmt.Errorf("slot: extract %s: %w", schema.ID, err)
	}

	doc := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !doc.IsObject() {
		out[asked.Key] = nil
		return out, ErrMalformedExtraction
	}

	for _, f := range pending {
		v, ok := Validate(f, doc.Get(gjson.Escape(f.Key)))
		switch {
		case ok:
			out[f.Key] = v
		case f.Key == asked.Key:
			out[f.Key] = nil
		}
	}

	return out, nil
}

func unresolved(schema Schema, progress Progress) []Field {
	var out []Field
	for _, f := range schema.Fields {
		if v, ok := progress[f.Key]; !ok || v == nil {
			out = append(out, f)
		}
	}
	return out
}
