// Package qa validates a finished resume document. Validation is read-only
// and never fails a run: every check runs, every problem lands in the issue
// list, and the caller decides what to do with a rejection.
package qa

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/resume-engine/internal/types"
)

// MinSkills is the smallest skill count a resume can pass QA with.
const MinSkills = 3

// requiredSections are the top-level sections a resume cannot ship without.
var requiredSections = []string{"profile", "summary", "experience", "education", "skills"}

// Validate checks doc and returns the collected issues. Checks are
// independent: none short-circuits another.
func Validate(doc *types.ResumeDocument) types.Report {
	if doc == nil {
		return types.Report{Issues: []string{"final_resume missing"}}
	}

	var issues []string

	for _, section := range requiredSections {
		if sectionEmpty(doc, section) {
			issues = append(issues, fmt.Sprintf("missing or empty section: %s", section))
		}
	}

	if len(doc.Experience) > 0 && !hasCompleteEntry(doc.Experience) {
		issues = append(issues, "experience entries missing role/company")
	}

	if len(doc.Skills) < MinSkills {
		issues = append(issues, "too few skills listed")
	}

	if !hasMeasurableImpact(doc) {
		issues = append(issues, "no measurable impact found")
	}

	return types.Report{Passed: len(issues) == 0, Issues: issues}
}

func sectionEmpty(doc *types.ResumeDocument, section string) bool {
	switch section {
	case "profile":
		return doc.Profile == types.Profile{}
	case "summary":
		return strings.TrimSpace(doc.Summary) == ""
	case "experience":
		return len(doc.Experience) == 0
	case "education":
		return len(doc.Education) == 0
	case "skills":
		return len(doc.Skills) == 0
	}
	return false
}

// hasCompleteEntry reports whether at least one experience entry names both
// a role and a company.
func hasCompleteEntry(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if strings.TrimSpace(e.Role) != "" && strings.TrimSpace(e.Company) != "" {
			return true
		}
	}
	return false
}

// hasMeasurableImpact checks the explicit metrics field first, then falls
// back to any digit inside an experience achievement.
func hasMeasurableImpact(doc *types.ResumeDocument) bool {
	if len(doc.Metrics) > 0 {
		return true
	}
	for _, e := range doc.Experience {
		for _, a := range e.Achievements {
			if strings.ContainsFunc(a, unicode.IsDigit) {
				return true
			}
		}
	}
	return false
}
