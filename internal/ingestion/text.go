// Package ingestion turns raw documents into cleaned text ready for
// classification and extraction.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Printable ASCII plus Latin-1 Supplement and Latin Extended-A/B keeps
	// German/French/Spanish diacritics while dropping control and binary
	// noise left behind by PDF extraction.
	nonLatin      = regexp.MustCompile(`[^\x20-\x7E\x{00A0}-\x{00FF}\x{0100}-\x{017F}\x{0180}-\x{024F}]`)
	spaceRun      = regexp.MustCompile(` {2,}`)
	sentenceBreak = regexp.MustCompile(`([.!?]) `)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted document text. It is deterministic, total
// and idempotent: CleanText(CleanText(x)) == CleanText(x).
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Collapse all whitespace runs (including newlines) to single spaces.
	result := whitespaceRun.ReplaceAllString(content, " ")

	// 2. Strip characters outside the supported Latin ranges.
	result = nonLatin.ReplaceAllString(result, " ")

	// 3. Re-collapse spaces introduced by the character filter.
	result = spaceRun.ReplaceAllString(result, " ")

	// 4. Re-insert paragraph breaks after sentence-ending punctuation.
	result = sentenceBreak.ReplaceAllString(result, "$1\n\n")

	// 5. Never more than one blank line in a row.
	result = blankLineRun.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// IngestFromFile reads a plain-text file, cleans it, and returns the cleaned
// text with content metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(cleaned, ""), nil
}
