package classify

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

// fixedCompleter returns the same response for every prompt.
type fixedCompleter struct {
	response string
	prompts  []string
}

func (f *fixedCompleter) GenerateText(_ context.Context, prompt string, _ llm.Options) string {
	f.prompts = append(f.prompts, prompt)
	return f.response
}

const resumeSample = `
Lebenslauf

Max Mustermann

Berufserfahrung
01/2019 - heute: Softwareentwickler bei Beispiel GmbH

Ausbildung
10/2014 - 09/2018: Bachelor Informatik, Universität Musterstadt

Kenntnisse
Go, PostgreSQL, Docker
`

const coverLetterSample = `
Sehr geehrte Damen und Herren,

hiermit bewerbe ich mich auf die ausgeschriebene Stelle. Meine Bewerbung
stützt sich auf mehrjährige Erfahrung in der Softwareentwicklung.

Mit freundlichen Grüßen
Max Mustermann
`

const jobPostingSample = `
Stellenangebot: Backend Engineer (m/w/d)

Wir suchen zum nächstmöglichen Zeitpunkt Verstärkung für unser Team.

Ihre Aufgaben:
- Entwicklung von Microservices

Anforderungen:
- Erfahrung mit Go

Wir bieten:
- Flexible Arbeitszeiten und weitere Benefits
`

func TestClassify_RuleBased(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.DocumentType
	}{
		{"resume", resumeSample, types.TypeResume},
		{"cover letter", coverLetterSample, types.TypeCoverLetter},
		{"job posting", jobPostingSample, types.TypeJobPosting},
	}

	// No completer: anything below threshold would come back unknown,
	// so a correct result proves the rules alone decided.
	c := New(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(context.Background(), tt.text))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(nil)
	first := c.Classify(context.Background(), resumeSample)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(context.Background(), resumeSample))
	}
}

func TestClassify_EmptyText(t *testing.T) {
	c := New(&fixedCompleter{response: "resume"})
	assert.Equal(t, types.TypeUnknown, c.Classify(context.Background(), "   \n  "))
}

func TestClassify_AIFallback(t *testing.T) {
	ambiguous := "Some short note about a meeting next week."

	t.Run("model verdict accepted", func(t *testing.T) {
		completer := &fixedCompleter{response: "coverletter"}
		c := New(completer)

		got := c.Classify(context.Background(), ambiguous)
		assert.Equal(t, types.TypeCoverLetter, got)
		assert.Len(t, completer.prompts, 1)
		assert.Contains(t, completer.prompts[0], ambiguous)
	})

	t.Run("unrecognized token degrades to unknown", func(t *testing.T) {
		c := New(&fixedCompleter{response: "I think this is probably an invoice"})
		assert.Equal(t, types.TypeUnknown, c.Classify(context.Background(), ambiguous))
	})

	t.Run("nil completer degrades to unknown", func(t *testing.T) {
		c := New(nil)
		assert.Equal(t, types.TypeUnknown, c.Classify(context.Background(), ambiguous))
	})

	t.Run("prompt text is truncated", func(t *testing.T) {
		completer := &fixedCompleter{response: "resume"}
		c := New(completer)

		long := strings.Repeat("x", 10000)
		c.Classify(context.Background(), long)
		assert.Less(t, len(completer.prompts[0]), 4000)
	})

	t.Run("truncation keeps multibyte text valid", func(t *testing.T) {
		completer := &fixedCompleter{response: "resume"}
		c := New(completer)

		long := strings.Repeat("ü", 10000)
		c.Classify(context.Background(), long)
		assert.True(t, utf8.ValidString(completer.prompts[0]))
		assert.Contains(t, completer.prompts[0], "üü")
	})
}

func TestScores_Boosters(t *testing.T) {
	c := New(nil)

	// Both resume section markers present, so the booster fires.
	withMarkers := "Berufserfahrung bei einer Firma. Kenntnisse in Go."
	withoutMarkers := "Berufserfahrung bei einer Firma."

	boosted := c.Scores(withMarkers)[types.TypeResume]
	plain := c.Scores(withoutMarkers)[types.TypeResume]
	assert.Greater(t, boosted, plain+2)
}

func TestScores_ExactBeatsSubstring(t *testing.T) {
	c := New(nil)

	// "resume" as a standalone word scores 2; embedded in another word
	// it only scores 1.
	exact := c.Scores("my resume attached")[types.TypeResume]
	substring := c.Scores("resumes attached")[types.TypeResume]
	assert.Equal(t, 2, exact)
	assert.Equal(t, 1, substring)
}
