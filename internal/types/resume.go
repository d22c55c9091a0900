package types

import (
	"encoding/json"
	"fmt"
)

// StringList decodes from a JSON array whose elements need not all be
// strings. LLM responses mix numbers and strings into skill and
// recommendation lists; non-string elements are stringified and nulls
// dropped instead of failing the whole decode.
type StringList []string

// UnmarshalJSON accepts an array of anything; non-arrays decode empty.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var asStrings []string
	if err := json.Unmarshal(data, &asStrings); err == nil {
		*l = asStrings
		return nil
	}
	var asAny []any
	if err := json.Unmarshal(data, &asAny); err == nil {
		*l = CoerceToStrings(asAny)
		return nil
	}
	*l = StringList{}
	return nil
}

// PersonalData holds the identity block of a resume.
type PersonalData struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	BirthDate   string `json:"birthDate"`
	BirthPlace  string `json:"birthPlace"`
	Nationality string `json:"nationality"`
}

// WorkExperience is one employment entry.
type WorkExperience struct {
	Period           string     `json:"period"`
	Position         string     `json:"position"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Responsibilities StringList `json:"responsibilities"`
	Achievements     StringList `json:"achievements"`
}

// Education is one education entry.
type Education struct {
	Period      string `json:"period"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Focus       string `json:"focus"`
	Grade       string `json:"grade"`
}

// Skills groups skills by kind.
type Skills struct {
	Technical  StringList `json:"technical"`
	Methodical StringList `json:"methodical"`
	Social     StringList `json:"social"`
}

// Language is one language proficiency entry.
type Language struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// Certification is one certification entry.
type Certification struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
}

// StructuredResumeData is the canonical resume shape. After Normalize every
// slice field is non-nil, so downstream consumers never nil-check.
type StructuredResumeData struct {
	PersonalData   PersonalData     `json:"personalData"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         Skills           `json:"skills"`
	Languages      []Language       `json:"languages"`
	Certifications []Certification  `json:"certifications"`
	Interests      StringList       `json:"interests"`
}

// EmptyResumeData returns a fully-shaped resume with empty leaves.
func EmptyResumeData() StructuredResumeData {
	var d StructuredResumeData
	d.Normalize()
	return d
}

// Normalize repairs the shape invariant: every slice present (possibly
// empty), every string element coerced. Content is never invented.
func (d *StructuredResumeData) Normalize() {
	d.WorkExperience = ensureSlice(d.WorkExperience)
	for i := range d.WorkExperience {
		d.WorkExperience[i].Responsibilities = coerceStrings(d.WorkExperience[i].Responsibilities)
		d.WorkExperience[i].Achievements = coerceStrings(d.WorkExperience[i].Achievements)
	}
	d.Education = ensureSlice(d.Education)
	d.Skills.Technical = coerceStrings(d.Skills.Technical)
	d.Skills.Methodical = coerceStrings(d.Skills.Methodical)
	d.Skills.Social = coerceStrings(d.Skills.Social)
	d.Languages = ensureSlice(d.Languages)
	d.Certifications = ensureSlice(d.Certifications)
	d.Interests = coerceStrings(d.Interests)
}

func ensureSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// coerceStrings guarantees a non-nil string slice with no empty-only noise
// introduced by lenient decoding.
func coerceStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// CoerceToStrings converts a loosely-decoded slice to strings, stringifying
// non-string elements the way the lenient JSON path produces them.
func CoerceToStrings(in []any) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case nil:
			// skip
		default:
			out = append(out, fmt.Sprintf("%v", t))
		}
	}
	return out
}
