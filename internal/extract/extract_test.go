package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

// scriptedCompleter returns queued responses in order, repeating the last
// one when the queue runs dry.
type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) GenerateText(_ context.Context, _ string, _ llm.Options) string {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx]
}

func TestResume_WellFormedResponse(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{`
		Here is the extracted data:
		{
			"personalData": {"name": "Max Mustermann", "email": "max@example.com"},
			"workExperience": [{"period": "2019 - 2024", "position": "Engineer", "company": "Beispiel GmbH"}],
			"skills": {"technical": ["Go", "PostgreSQL"]}
		}
	`}}
	e := New(completer, nil)

	data := e.Resume(context.Background(), "some resume text")

	assert.Equal(t, "Max Mustermann", data.PersonalData.Name)
	assert.Len(t, data.WorkExperience, 1)
	assert.Equal(t, types.StringList{"Go", "PostgreSQL"}, data.Skills.Technical)

	// Missing sections come back as empty, never nil.
	assert.NotNil(t, data.Education)
	assert.NotNil(t, data.Languages)
	assert.NotNil(t, data.Interests)
	assert.NotNil(t, data.Skills.Methodical)
}

func TestResume_MixedSkillElementsDoNotTriggerFallback(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"personalData":{"name":"Max Mustermann"},"skills":{"technical":["Go",42]}}`,
	}}
	e := New(completer, nil)

	data := e.Resume(context.Background(), "some resume text")

	// A stray numeric element is stringified in place; it must not fail the
	// decode and detour through the generic extraction cycle.
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, types.StringList{"Go", "42"}, data.Skills.Technical)
}

func TestResume_FallsBackToGeneric(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		"I could not find any structured data.",
		`{"personalData": {"name": "From Generic"}, "skills": {"technical": ["Go"]}}`,
	}}
	e := New(completer, nil)

	data := e.Resume(context.Background(), "some resume text")

	assert.Equal(t, 2, completer.calls)
	assert.Equal(t, "From Generic", data.PersonalData.Name)
}

func TestResume_NotJSONAtAll(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"sorry, no data here"}}
	e := New(completer, nil)

	data := e.Resume(context.Background(), "garbled input")

	// Both the specific and the generic cycle fail to parse; the result
	// is the canonical empty structure, not an error.
	assert.Equal(t, 2, completer.calls)
	assert.Equal(t, types.EmptyResumeData(), data)
}

func TestJobPosting_WellFormedResponse(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{`{
		"company": {"name": "Beispiel GmbH", "location": "Berlin"},
		"position": "Backend Engineer",
		"requirements": {"mustHave": ["Go"]},
		"benefits": ["remote work"]
	}`}}
	e := New(completer, nil)

	data := e.JobPosting(context.Background(), "some posting text")

	assert.Equal(t, "Backend Engineer", data.Position)
	assert.Equal(t, types.StringList{"Go"}, data.Requirements.MustHave)
	assert.NotNil(t, data.Requirements.NiceToHave)
	assert.NotNil(t, data.Responsibilities)
	assert.NotNil(t, data.Skills)
}

func TestJobPosting_NotJSONAtAll(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"no data"}}
	e := New(completer, nil)

	data := e.JobPosting(context.Background(), "garbled")
	assert.Equal(t, types.EmptyJobPostingData(), data)
}

func TestCoverLetter_StringMainBody(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{`{
		"sender": {"name": "Max Mustermann"},
		"recipient": {"company": "Beispiel GmbH"},
		"mainBody": "First paragraph.\n\nSecond paragraph."
	}`}}
	e := New(completer, nil)

	data := e.CoverLetter(context.Background(), "some letter text")

	assert.Equal(t, types.Paragraphs{"First paragraph.", "Second paragraph."}, data.MainBody)
	assert.NotNil(t, data.KeyQualifications)
	assert.NotNil(t, data.MotivationHighlights)
}

func TestCoverLetter_ArrayMainBody(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{`{
		"sender": {},
		"recipient": {},
		"mainBody": ["One.", "Two."]
	}`}}
	e := New(completer, nil)

	data := e.CoverLetter(context.Background(), "some letter text")
	assert.Equal(t, types.Paragraphs{"One.", "Two."}, data.MainBody)
}

func TestCoverLetter_NotJSONAtAll(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"nothing"}}
	e := New(completer, nil)

	data := e.CoverLetter(context.Background(), "garbled")
	assert.Equal(t, types.EmptyCoverLetterData(), data)
}
