package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		token string
		want  DocumentType
	}{
		{"resume", TypeResume},
		{"Resume", TypeResume},
		{"RESUME", TypeResume},
		{"coverLetter", TypeCoverLetter},
		{"coverletter", TypeCoverLetter},
		{"cover letter", TypeCoverLetter},
		{"jobPosting", TypeJobPosting},
		{"job_posting", TypeJobPosting},
		{" jobPosting.\n", TypeJobPosting},
		{"unknown", TypeUnknown},
		{"invoice", TypeUnknown},
		{"", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDocumentType(tt.token))
		})
	}
}

func TestKnownTypesExcludesUnknown(t *testing.T) {
	known := KnownTypes()
	assert.Len(t, known, 3)
	assert.NotContains(t, known, TypeUnknown)
}
