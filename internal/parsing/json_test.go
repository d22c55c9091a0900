package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{
			name:     "bare object",
			raw:      `{"a":1}`,
			expected: `{"a":1}`,
			ok:       true,
		},
		{
			name:     "object wrapped in prose",
			raw:      "Here is the result:\n{\"a\":1}\nLet me know!",
			expected: `{"a":1}`,
			ok:       true,
		},
		{
			name:     "greedy span keeps nested objects",
			raw:      `prefix {"a":{"b":2}} suffix`,
			expected: `{"a":{"b":2}}`,
			ok:       true,
		},
		{
			name: "no object",
			raw:  "sorry, I cannot help with that",
			ok:   false,
		},
		{
			name: "closing brace before opening",
			raw:  "} {",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeLoose(t *testing.T) {
	type payload struct {
		Position string `json:"position"`
	}

	t.Run("fenced response", func(t *testing.T) {
		var out payload
		raw := "```json\n{\"position\": \"Backend Engineer\"}\n```"
		require.NoError(t, DecodeLoose(raw, &out))
		assert.Equal(t, "Backend Engineer", out.Position)
	})

	t.Run("prose around object", func(t *testing.T) {
		var out payload
		raw := "The extracted data is {\"position\": \"Analyst\"} as requested."
		require.NoError(t, DecodeLoose(raw, &out))
		assert.Equal(t, "Analyst", out.Position)
	})

	t.Run("no json at all", func(t *testing.T) {
		var out payload
		err := DecodeLoose("I could not extract anything.", &out)
		require.Error(t, err)

		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("malformed span falls back to whole response", func(t *testing.T) {
		var out payload
		// The greedy span "{ not json }" fails, the whole string also
		// fails, so the error surfaces.
		err := DecodeLoose("{ not json }", &out)
		require.Error(t, err)
	})
}
