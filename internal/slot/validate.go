package slot

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Validate checks an extracted value against the field's type and bounds and
// returns the normalized Go value. Numbers may arrive as JSON numbers or as
// numeric strings with thousands separators.
func Validate(f Field, r gjson.Result) (any, bool) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, false
	}

	switch f.Type {
	case TypeNumber:
		var n float64
		switch r.Type {
		case gjson.Number:
			n = r.Float()
		case gjson.String:
			s := strings.ReplaceAll(strings.TrimSpace(r.Str), ",", "")
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, false
			}
			n = parsed
		default:
			return nil, false
		}
		if math.IsNaN(n) || math.IsInf(n, 0) || n < f.Min {
			return nil, false
		}
		return n, true

	case TypeString:
		if r.Type != gjson.String || strings.TrimSpace(r.Str) == "" {
			return nil, false
		}
		return strings.TrimSpace(r.Str), true

	case TypeBool:
		if r.Type != gjson.True && r.Type != gjson.False {
			return nil, false
		}
		return r.Bool(), true
	}

	return nil, false
}

// Sanitize re-validates stored answers, turning values that no longer pass
// their field's rule into null. Keys outside the schema are dropped.
func Sanitize(schema Schema, progress Progress) Progress {
	out := make(Progress, len(progress))
	for _, f := range schema.Fields {
		v, ok := progress[f.Key]
		if !ok {
			continue
		}
		if v == nil {
			out[f.Key] = nil
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			out[f.Key] = nil
			continue
		}
		if clean, valid := Validate(f, gjson.ParseBytes(raw)); valid {
			out[f.Key] = clean
		} else {
			out[f.Key] = nil
		}
	}
	return out
}
