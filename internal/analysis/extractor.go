package analysis

import (
	"encoding/json"
	"strings"
)

// ExtractJSON parses the span between the first '{' and the last '}' of text
// as a JSON object. ok is false when no such span exists or it is not a
// valid object.
//
// The span is taken greedily, so prose containing unrelated braces before or
// after the real payload makes the parse fail, and two separate objects are
// rejected rather than the first being picked.
func ExtractJSON(text string) (obj map[string]any, ok bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, false
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}
