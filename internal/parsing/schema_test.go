package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

func TestValidateDocument(t *testing.T) {
	t.Run("valid resume", func(t *testing.T) {
		doc := `{
			"personalData": {"name": "Max Mustermann", "email": "max@example.com"},
			"workExperience": [],
			"education": [],
			"skills": {"technical": ["Go"], "methodical": [], "social": []}
		}`
		assert.NoError(t, ValidateDocument(types.TypeResume, doc))
	})

	t.Run("resume missing required section", func(t *testing.T) {
		err := ValidateDocument(types.TypeResume, `{"personalData": {}}`)
		require.Error(t, err)

		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("job posting with wrong field type", func(t *testing.T) {
		doc := `{"company": {}, "position": 42, "requirements": {}}`
		err := ValidateDocument(types.TypeJobPosting, doc)
		require.Error(t, err)
	})

	t.Run("cover letter accepts string mainBody", func(t *testing.T) {
		doc := `{"sender": {}, "recipient": {}, "mainBody": "First paragraph.\n\nSecond paragraph."}`
		assert.NoError(t, ValidateDocument(types.TypeCoverLetter, doc))
	})

	t.Run("unknown type has no schema", func(t *testing.T) {
		err := ValidateDocument(types.TypeUnknown, `{}`)
		require.Error(t, err)
	})
}
