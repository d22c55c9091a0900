package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "collapses whitespace runs",
			input: "Max   Mustermann\t\tSoftware\n\nEngineer",
			want:  "Max Mustermann Software Engineer",
		},
		{
			name:  "keeps german diacritics",
			input: "Grüße aus München, schöne Straße",
			want:  "Grüße aus München, schöne Straße",
		},
		{
			name:  "strips control and binary noise",
			input: "Berufserfahrung\x00\x01 bei � Firma",
			want:  "Berufserfahrung bei Firma",
		},
		{
			name:  "reinserts paragraph breaks after sentences",
			input: "First sentence. Second sentence! Third?",
			want:  "First sentence.\n\nSecond sentence!\n\nThird?",
		},
		{
			name:  "trims surrounding whitespace",
			input: "   padded   ",
			want:  "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"Max  Mustermann.\nBerufserfahrung:   Go,  Python.",
		"Grüße! Zwei Sätze. Drei Sätze?",
		"plain text without punctuation",
	}
	for _, input := range inputs {
		once := CleanText(input)
		assert.Equal(t, once, CleanText(once))
	}
}

func TestIngestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Max   Mustermann\nBerufserfahrung"), 0o644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Max Mustermann Berufserfahrung", text)
	require.NotNil(t, meta)
	assert.Equal(t, 3, meta.WordCount)
	assert.Equal(t, Fingerprint(text), meta.Fingerprint)
}

func TestIngestFromFileMissing(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorContains(t, err, "file not found")
}
