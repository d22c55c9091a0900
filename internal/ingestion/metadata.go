package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one ingested document.
type Metadata struct {
	Source      string `json:"source,omitempty"` // file path or URL
	Timestamp   string `json:"timestamp"`        // RFC3339
	Fingerprint string `json:"fingerprint"`      // SHA256 hex digest of cleaned text
	FormatLabel string `json:"formatLabel,omitempty"`
	WordCount   int    `json:"wordCount"`
}

// NewMetadata builds metadata for cleaned content.
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:      source,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fingerprint: Fingerprint(content),
		WordCount:   countWords(content),
	}
}

// Fingerprint returns a stable cache key for document content.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func countWords(content string) int {
	count := 0
	inWord := false
	for _, r := range content {
		switch r {
		case ' ', '\n', '\t', '\r':
			inWord = false
		default:
			if !inWord {
				count++
			}
			inWord = true
		}
	}
	return count
}

// ToJSON marshals Metadata to pretty-printed JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}
