// Package types defines the shared data structures passed between the
// resume engine pipeline stages.
package types

// Profile holds contact and identity facts shown at the top of a resume.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Role     string `json:"role,omitempty"`
	Company  string `json:"company,omitempty"`
	Years    int    `json:"years,omitempty"`
}

// ExperienceEntry is one position in the experience section.
// Achievements is always a list, never a string: when the source text had no
// explicit achievements, the normalizer derives them from metric patterns in
// Description and Bullets.
type ExperienceEntry struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Location     string   `json:"location,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

// EducationEntry is one entry in the education section. Degree, Institution
// and Year are best-effort single strings; Summary always preserves the
// original entry text.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Summary     string `json:"summary"`
}

// ResumeDocument is the canonical pipeline output. After normalization every
// slice field is a real list (possibly empty), never nil-marshalled or a raw
// string. Metrics is only populated when the caller supplied explicit
// metrics; derived metrics live inside experience achievements.
type ResumeDocument struct {
	Profile      Profile           `json:"profile"`
	Summary      string            `json:"summary"`
	Skills       []string          `json:"skills"`
	Languages    []string          `json:"languages"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Projects     []string          `json:"projects"`
	Certificates []string          `json:"certificates"`
	Publications []string          `json:"publications"`
	Interests    []string          `json:"interests"`
	Volunteering []string          `json:"volunteering"`
	References   []string          `json:"references"`
	Metrics      []string          `json:"metrics,omitempty"`
}

// Clone returns a deep copy of the document. Stages that rewrite content
// work on a clone so the pre-enhancement document stays comparable.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.Skills = cloneStrings(d.Skills)
	c.Languages = cloneStrings(d.Languages)
	c.Projects = cloneStrings(d.Projects)
	c.Certificates = cloneStrings(d.Certificates)
	c.Publications = cloneStrings(d.Publications)
	c.Interests = cloneStrings(d.Interests)
	c.Volunteering = cloneStrings(d.Volunteering)
	c.References = cloneStrings(d.References)
	c.Metrics = cloneStrings(d.Metrics)

	if d.Experience != nil {
		c.Experience = make([]ExperienceEntry, len(d.Experience))
		for i, e := range d.Experience {
			e.Achievements = cloneStrings(e.Achievements)
			e.Bullets = cloneStrings(e.Bullets)
			c.Experience[i] = e
		}
	}
	if d.Education != nil {
		c.Education = append([]EducationEntry(nil), d.Education...)
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// Question is a single clarification question shown to the user when a
// required section could not be filled from the input.
type Question struct {
	Field    string `json:"field"`
	Question string `json:"question"`
}

// Report is the QA validator output. It never mutates the document it
// describes; Passed is true iff Issues is empty.
type Report struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}
