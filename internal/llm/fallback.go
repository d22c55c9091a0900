package llm

import "strings"

// Canned fallback texts returned when every provider candidate is
// exhausted. The pipeline degrades to static text instead of surfacing an
// error to the user.
const (
	fallbackResume = "The AI service could not be reached. Please try again " +
		"later or check your API keys in the settings."
	fallbackCoverLetter = "The AI service could not be reached. For a strong " +
		"cover letter, state your motivation, relevant experience and " +
		"qualifications clearly and refer to the job posting."
	fallbackAlternatives = "The AI service could not be reached. You can " +
		"rephrase the text yourself or try again later."
	fallbackGeneric = "The AI service could not be reached. Please check " +
		"your internet connection and the API keys in the settings."
)

// LocalFallback selects a canned response by sniffing the prompt for the
// request kind. It is deterministic and never empty.
func LocalFallback(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "resume") || strings.Contains(lower, "lebenslauf"):
		return fallbackResume
	case strings.Contains(lower, "cover letter") || strings.Contains(lower, "anschreiben"):
		return fallbackCoverLetter
	case strings.Contains(lower, "alternative"):
		return fallbackAlternatives
	default:
		return fallbackGeneric
	}
}
