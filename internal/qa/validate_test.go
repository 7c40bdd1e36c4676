package qa

import (
	"testing"

	"github.com/jonathan/resume-engine/internal/types"
	"github.com/stretchr/testify/assert"
)

func validDocument() *types.ResumeDocument {
	return &types.ResumeDocument{
		Profile: types.Profile{Name: "Jane Smith", Email: "jane@example.com"},
		Summary: "Backend engineer focused on reliability.",
		Skills:  []string{"Go", "PostgreSQL", "Kubernetes"},
		Experience: []types.ExperienceEntry{{
			Role:         "Software Engineer",
			Company:      "Amazon",
			Description:  "Owned the checkout service",
			Achievements: []string{"Improved performance by 20%"},
		}},
		Education: []types.EducationEntry{{Degree: "BS Computer Science", Institution: "MIT"}},
	}
}

func TestValidatePasses(t *testing.T) {
	report := Validate(validDocument())
	assert.True(t, report.Passed)
	assert.Empty(t, report.Issues)
}

func TestValidateNilDocument(t *testing.T) {
	report := Validate(nil)
	assert.False(t, report.Passed)
	assert.Equal(t, []string{"final_resume missing"}, report.Issues)
}

func TestValidateMissingSections(t *testing.T) {
	report := Validate(&types.ResumeDocument{})
	assert.False(t, report.Passed)
	assert.Contains(t, report.Issues, "missing or empty section: profile")
	assert.Contains(t, report.Issues, "missing or empty section: summary")
	assert.Contains(t, report.Issues, "missing or empty section: experience")
	assert.Contains(t, report.Issues, "missing or empty section: education")
	assert.Contains(t, report.Issues, "missing or empty section: skills")
}

func TestValidateTwoIssueCase(t *testing.T) {
	// Two skills and no metric anywhere must produce exactly these two
	// issues and nothing else.
	doc := validDocument()
	doc.Skills = []string{"Go", "SQL"}
	doc.Experience[0].Achievements = []string{"Shipped the redesign"}

	report := Validate(doc)
	assert.False(t, report.Passed)
	assert.Equal(t, []string{"too few skills listed", "no measurable impact found"}, report.Issues)
}

func TestValidateEmptySkillsRaisesBothSkillIssues(t *testing.T) {
	// An empty skills list is below the minimum too, so both the missing
	// section issue and the count issue are collected.
	doc := validDocument()
	doc.Skills = nil

	report := Validate(doc)
	assert.False(t, report.Passed)
	assert.Contains(t, report.Issues, "missing or empty section: skills")
	assert.Contains(t, report.Issues, "too few skills listed")
}

func TestValidateIncompleteExperienceEntries(t *testing.T) {
	doc := validDocument()
	doc.Experience = []types.ExperienceEntry{
		{Company: "TechCorp", Description: "Worked on backend systems", Achievements: []string{"40%"}},
	}

	report := Validate(doc)
	assert.False(t, report.Passed)
	assert.Equal(t, []string{"experience entries missing role/company"}, report.Issues)
}

func TestValidateOneCompleteEntrySuffices(t *testing.T) {
	doc := validDocument()
	doc.Experience = append(doc.Experience, types.ExperienceEntry{Description: "freelance work"})

	report := Validate(doc)
	assert.True(t, report.Passed)
}

func TestValidateMeasurableImpact(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ResumeDocument)
		passed bool
	}{
		{
			name:   "explicit metrics field",
			mutate: func(d *types.ResumeDocument) { d.Experience[0].Achievements = nil; d.Metrics = []string{"20%"} },
			passed: true,
		},
		{
			name:   "digit in achievement",
			mutate: func(d *types.ResumeDocument) { d.Experience[0].Achievements = []string{"cut costs 15%"} },
			passed: true,
		},
		{
			name:   "no digits anywhere",
			mutate: func(d *types.ResumeDocument) { d.Experience[0].Achievements = []string{"did good work"} },
			passed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)
			report := Validate(doc)
			assert.Equal(t, tt.passed, report.Passed)
			if !tt.passed {
				assert.Equal(t, []string{"no measurable impact found"}, report.Issues)
			}
		})
	}
}
