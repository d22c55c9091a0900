// Package types defines the canonical structured shapes produced by the
// document intake pipeline.
package types

// DocumentType identifies the kind of application document.
type DocumentType string

// Document type constants cover the documents the pipeline understands.
const (
	TypeResume      DocumentType = "resume"
	TypeCoverLetter DocumentType = "coverLetter"
	TypeJobPosting  DocumentType = "jobPosting"
	TypeUnknown     DocumentType = "unknown"
)

// KnownTypes lists the classifiable document types, excluding unknown.
func KnownTypes() []DocumentType {
	return []DocumentType{TypeResume, TypeCoverLetter, TypeJobPosting}
}

// ParseDocumentType maps a raw token to a DocumentType. Tokens are compared
// case-insensitively; the lowercase LLM token "coverletter" maps to
// TypeCoverLetter. Anything unrecognized becomes TypeUnknown.
func ParseDocumentType(token string) DocumentType {
	switch normalizeToken(token) {
	case "resume":
		return TypeResume
	case "coverletter":
		return TypeCoverLetter
	case "jobposting":
		return TypeJobPosting
	default:
		return TypeUnknown
	}
}

func normalizeToken(token string) string {
	out := make([]rune, 0, len(token))
	for _, r := range token {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		}
	}
	return string(out)
}

// ExtractionResult is produced by a TextExtractor for one raw document.
type ExtractionResult struct {
	Success     bool   `json:"success"`
	Text        string `json:"text"`
	FormatLabel string `json:"formatLabel"`
	FileName    string `json:"fileName,omitempty"`
	FileSize    int64  `json:"fileSize,omitempty"`
	WordCount   int    `json:"wordCount,omitempty"`
	Error       string `json:"error,omitempty"`
}
