package types

import (
	"encoding/json"
	"strings"
)

// Party identifies a sender or recipient of a cover letter.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// Paragraphs decodes from either a JSON string (split on blank lines) or an
// array of strings. LLM responses return both forms for the letter body.
type Paragraphs []string

// UnmarshalJSON accepts a string or an array; anything else decodes empty.
func (p *Paragraphs) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*p = SplitParagraphs(asString)
		return nil
	}
	var asAny []any
	if err := json.Unmarshal(data, &asAny); err == nil {
		*p = CoerceToStrings(asAny)
		return nil
	}
	*p = Paragraphs{}
	return nil
}

// SplitParagraphs splits text on blank lines, dropping empty fragments.
func SplitParagraphs(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// StructuredCoverLetterData is the canonical cover letter shape.
type StructuredCoverLetterData struct {
	Sender               Party      `json:"sender"`
	Recipient            Party      `json:"recipient"`
	Subject              string     `json:"subject"`
	Greeting             string     `json:"greeting"`
	KeyQualifications    StringList `json:"keyQualifications"`
	MotivationHighlights StringList `json:"motivationHighlights"`
	MainBody             Paragraphs `json:"mainBody"`
	Closing              string     `json:"closing"`
}

// EmptyCoverLetterData returns a fully-shaped letter with empty leaves.
func EmptyCoverLetterData() StructuredCoverLetterData {
	var d StructuredCoverLetterData
	d.Normalize()
	return d
}

// Normalize repairs the shape invariant for cover letter data.
func (d *StructuredCoverLetterData) Normalize() {
	d.KeyQualifications = coerceStrings(d.KeyQualifications)
	d.MotivationHighlights = coerceStrings(d.MotivationHighlights)
	if d.MainBody == nil {
		d.MainBody = Paragraphs{}
	}
}
