package types

// Level is a seniority level inferred from the input text.
type Level string

// Known seniority levels. LevelUnknown is the zero value.
const (
	LevelUnknown Level = ""
	LevelJunior  Level = "junior"
	LevelMid     Level = "mid"
	LevelSenior  Level = "senior"
	LevelLead    Level = "lead"
	LevelManager Level = "manager"
)

// Entities holds the facts entity extraction inferred from raw text. Every
// field is independently optional; the empty string (or 0 for Years) is the
// canonical "unknown" value.
type Entities struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Role      string `json:"role,omitempty"`
	Company   string `json:"company,omitempty"`
	Years     int    `json:"years,omitempty"`
	Level     Level  `json:"level,omitempty"`
	Education string `json:"education,omitempty"`
}

// Empty reports whether no entity was extracted at all.
func (e *Entities) Empty() bool {
	if e == nil {
		return true
	}
	return e.Name == "" && e.Email == "" && e.Phone == "" && e.Location == "" &&
		e.Role == "" && e.Company == "" && e.Years == 0 && e.Level == LevelUnknown &&
		e.Education == ""
}

// Sections maps canonical section names to their extracted content. Summary
// is a single string; experience and education are structured entries; all
// other sections are ordered string lists.
type Sections struct {
	Summary      string            `json:"summary,omitempty"`
	Experience   []ExperienceEntry `json:"experience,omitempty"`
	Education    []EducationEntry  `json:"education,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Languages    []string          `json:"languages,omitempty"`
	Projects     []string          `json:"projects,omitempty"`
	Certificates []string          `json:"certificates,omitempty"`
	Publications []string          `json:"publications,omitempty"`
	Awards       []string          `json:"awards,omitempty"`
	Interests    []string          `json:"interests,omitempty"`
	Volunteering []string          `json:"volunteering,omitempty"`
	References   []string          `json:"references,omitempty"`
}

// IsZero reports whether no section was found.
func (s *Sections) IsZero() bool {
	if s == nil {
		return true
	}
	return s.Summary == "" && len(s.Experience) == 0 && len(s.Education) == 0 &&
		len(s.Skills) == 0 && len(s.Languages) == 0 && len(s.Projects) == 0 &&
		len(s.Certificates) == 0 && len(s.Publications) == 0 && len(s.Awards) == 0 &&
		len(s.Interests) == 0 && len(s.Volunteering) == 0 && len(s.References) == 0
}
