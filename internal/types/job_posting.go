package types

// CompanyInfo holds employer details from a job posting.
type CompanyInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

// Requirements splits posting requirements by priority.
type Requirements struct {
	MustHave   StringList `json:"mustHave"`
	NiceToHave StringList `json:"niceToHave"`
}

// StructuredJobPostingData is the canonical job posting shape.
type StructuredJobPostingData struct {
	Company          CompanyInfo  `json:"company"`
	Position         string       `json:"position"`
	Requirements     Requirements `json:"requirements"`
	Responsibilities StringList   `json:"responsibilities"`
	Benefits         StringList   `json:"benefits"`
	Skills           StringList   `json:"skills"`
}

// EmptyJobPostingData returns a fully-shaped posting with empty leaves.
func EmptyJobPostingData() StructuredJobPostingData {
	var d StructuredJobPostingData
	d.Normalize()
	return d
}

// Normalize repairs the shape invariant for job posting data.
func (d *StructuredJobPostingData) Normalize() {
	d.Requirements.MustHave = coerceStrings(d.Requirements.MustHave)
	d.Requirements.NiceToHave = coerceStrings(d.Requirements.NiceToHave)
	d.Responsibilities = coerceStrings(d.Responsibilities)
	d.Benefits = coerceStrings(d.Benefits)
	d.Skills = coerceStrings(d.Skills)
}
