package types

// SkillMatch lists skills present in and missing from a resume relative to
// a job posting.
type SkillMatch struct {
	Matching StringList `json:"matching"`
	Missing  StringList `json:"missing"`
}

// SectionMatch scores one resume section against the posting.
type SectionMatch struct {
	Match    int    `json:"match"`
	Comments string `json:"comments"`
}

// MatchingResult is the structured comparison of a resume and a job posting.
// All percentage fields are clamped to [0,100] after parsing.
type MatchingResult struct {
	OverallMatch    int          `json:"overallMatch"`
	Skills          SkillMatch   `json:"skills"`
	Experience      SectionMatch `json:"experience"`
	Education       SectionMatch `json:"education"`
	Recommendations StringList   `json:"recommendations"`
}

const (
	noAnalysisComment        = "no analysis available"
	noRecommendationsMessage = "no recommendations available"
)

// EmptyMatchingResult returns the placeholder report used whenever matching
// cannot produce a real one.
func EmptyMatchingResult() MatchingResult {
	return MatchingResult{
		OverallMatch: 0,
		Skills: SkillMatch{
			Matching: []string{},
			Missing:  []string{},
		},
		Experience:      SectionMatch{Match: 0, Comments: noAnalysisComment},
		Education:       SectionMatch{Match: 0, Comments: noAnalysisComment},
		Recommendations: []string{noRecommendationsMessage},
	}
}

// Normalize repairs the shape invariant and clamps every score to [0,100].
func (r *MatchingResult) Normalize() {
	r.OverallMatch = ClampPercent(r.OverallMatch)
	r.Experience.Match = ClampPercent(r.Experience.Match)
	r.Education.Match = ClampPercent(r.Education.Match)
	r.Skills.Matching = coerceStrings(r.Skills.Matching)
	r.Skills.Missing = coerceStrings(r.Skills.Missing)
	r.Recommendations = coerceStrings(r.Recommendations)
}

// ClampPercent bounds a score to the [0,100] range.
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
