package classify

import (
	"regexp"

	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

// Per-type keyword tables. German terms carry equal weight to their
// English counterparts since the intake handles both languages.
var typeKeywords = map[types.DocumentType][]string{
	types.TypeResume: {
		"lebenslauf",
		"curriculum vitae",
		"resume",
		"berufserfahrung",
		"work experience",
		"ausbildung",
		"education",
		"kenntnisse",
		"skills",
		"sprachkenntnisse",
		"zertifikate",
		"werdegang",
	},
	types.TypeCoverLetter: {
		"anschreiben",
		"cover letter",
		"bewerbung",
		"application",
		"sehr geehrte",
		"dear sir",
		"dear madam",
		"bewerbe mich",
		"mit freundlichen",
		"sincerely",
		"motivation",
	},
	types.TypeJobPosting: {
		"stellenanzeige",
		"stellenangebot",
		"job offer",
		"wir suchen",
		"we are looking for",
		"ihre aufgaben",
		"your responsibilities",
		"anforderungen",
		"requirements",
		"wir bieten",
		"we offer",
		"benefits",
	},
}

// Structural boosters. A document that carries every marker group of a
// booster reads unmistakably as that type, so it earns a flat bonus on
// top of the keyword score.
type booster struct {
	docType types.DocumentType
	markers []*regexp.Regexp
	bonus   int
}

var boosters = []booster{
	{
		docType: types.TypeResume,
		markers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)berufserfahrung|work experience|ausbildung|education`),
			regexp.MustCompile(`(?i)kenntnisse|skills|fähigkeiten|qualifikationen|qualifications`),
		},
		bonus: 3,
	},
	{
		docType: types.TypeCoverLetter,
		markers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)sehr geehrte|dear sir|dear madam|to whom it may concern`),
			regexp.MustCompile(`(?i)bewerbung|application|bewerbe mich|applying`),
			regexp.MustCompile(`(?i)mit freundlichen grüßen|sincerely|best regards`),
		},
		bonus: 3,
	},
	{
		docType: types.TypeJobPosting,
		markers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)wir suchen|we are looking for|stellenangebot|job offer`),
			regexp.MustCompile(`(?i)ihre aufgaben|your responsibilities|anforderungen|requirements`),
			regexp.MustCompile(`(?i)wir bieten|we offer|benefits|vorteile`),
		},
		bonus: 3,
	},
}
