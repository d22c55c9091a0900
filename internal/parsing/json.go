package parsing

import (
	"encoding/json"
	"strings"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
)

// ExtractJSONObject returns the widest substring of raw spanning the first
// '{' through the last '}'. Model responses commonly wrap the JSON payload
// in prose or markdown fencing; the greedy span survives both.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// DecodeLoose decodes a model response into out. It strips markdown code
// fences, then tries the greedy brace span, then the whole cleaned
// response. A ParseError means no strategy yielded valid JSON.
func DecodeLoose(raw string, out any) error {
	cleaned := llm.CleanJSONBlock(raw)

	if span, ok := ExtractJSONObject(cleaned); ok {
		if err := json.Unmarshal([]byte(span), out); err == nil {
			return nil
		}
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &ParseError{Message: "response contains no decodable JSON object", Cause: err}
	}
	return nil
}
