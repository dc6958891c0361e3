package repository

import (
	"context"
	"encoding/json"
	"strings"

	"spendly/internal/model"
	"spendly/pkg/log"
)

// Encode renders the persisted form {"messages":[...],"state":{...}}.
func Encode(s model.Session) ([]byte, error) {
	s.Normalize()
	return json.Marshal(s)
}

// EncodeIndent is Encode with two-space indentation, used for files meant to be read by people.
func EncodeIndent(s model.Session) ([]byte, error) {
	s.Normalize()
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a stored document. A document that does not decode is
// treated as absent: the caller gets a fresh session and a warning is logged.
func Decode(ctx context.Context, l log.Logger, scope, id string, raw []byte) model.Session {
	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		l.Warnf(ctx, "%s: corrupt session %q discarded: %v", scope, id, err)
		return model.NewSession()
	}
	s.Normalize()
	return s
}

// ValidID rejects ids that could escape a key namespace or a directory.
func ValidID(id string) bool {
	if id == "" || len(id) > 128 || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`+"\x00")
}
