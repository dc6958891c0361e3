package llm

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSON strips markdown fences and surrounding prose from a model
// answer and reports whether a JSON object remains.
func sanitizeJSON(text string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(text); len(m) > 1 {
		text = m[1]
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return "", false
	}

	text = strings.TrimSpace(text[start : end+1])
	if !gjson.Valid(text) {
		return "", false
	}
	return text, true
}
