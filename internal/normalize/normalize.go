// Package normalize turns loose resume drafts into the canonical document
// shape. Every list-typed field comes out a real list, experience and
// education entries become structured records, and normalizing an already
// canonical document returns it unchanged.
package normalize

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-engine/internal/extraction"
	"github.com/jonathan/resume-engine/internal/types"
)

// commaSplit lists the fields where a bare string means a comma-separated
// enumeration. Every other list field wraps a string as a single element.
var commaSplit = map[string]bool{
	"skills":    true,
	"languages": true,
	"interests": true,
}

// Normalizer converts drafts. String experience entries are re-parsed with
// the same extractor the understanding stage uses.
type Normalizer struct {
	ex *extraction.Extractor
}

// New creates a Normalizer over the given extractor.
func New(ex *extraction.Extractor) *Normalizer {
	return &Normalizer{ex: ex}
}

// Document normalizes a loose draft map into the canonical document.
func (n *Normalizer) Document(draft map[string]any) *types.ResumeDocument {
	doc := &types.ResumeDocument{
		Profile:      n.profile(draft["profile"]),
		Summary:      str(draft["summary"]),
		Skills:       stringList("skills", draft["skills"]),
		Languages:    stringList("languages", draft["languages"]),
		Experience:   n.experience(draft["experience"]),
		Education:    n.education(draft["education"]),
		Projects:     stringList("projects", draft["projects"]),
		Certificates: stringList("certificates", draft["certificates"]),
		Publications: stringList("publications", draft["publications"]),
		Interests:    stringList("interests", draft["interests"]),
		Volunteering: stringList("volunteering", draft["volunteering"]),
		References:   stringList("references", draft["references"]),
	}
	if metrics, ok := draft["metrics"]; ok {
		doc.Metrics = stringList("metrics", metrics)
	}
	return doc
}

// Resume canonicalizes a typed document: nil lists become empty lists and
// entries missing achievements get them derived. A canonical input passes
// through with equal content, which makes normalization idempotent.
func (n *Normalizer) Resume(doc *types.ResumeDocument) *types.ResumeDocument {
	if doc == nil {
		return &types.ResumeDocument{}
	}
	out := doc.Clone()

	out.Skills = ensureList(out.Skills)
	out.Languages = ensureList(out.Languages)
	out.Projects = ensureList(out.Projects)
	out.Certificates = ensureList(out.Certificates)
	out.Publications = ensureList(out.Publications)
	out.Interests = ensureList(out.Interests)
	out.Volunteering = ensureList(out.Volunteering)
	out.References = ensureList(out.References)

	if out.Experience == nil {
		out.Experience = []types.ExperienceEntry{}
	}
	for i := range out.Experience {
		out.Experience[i].Achievements = deriveAchievements(out.Experience[i])
	}
	if out.Education == nil {
		out.Education = []types.EducationEntry{}
	}
	return out
}

func (n *Normalizer) profile(v any) types.Profile {
	switch t := v.(type) {
	case types.Profile:
		return t
	case *types.Profile:
		if t != nil {
			return *t
		}
	case map[string]any:
		return types.Profile{
			Name:     str(t["name"]),
			Email:    str(t["email"]),
			Phone:    str(t["phone"]),
			Location: str(t["location"]),
			Role:     str(t["role"]),
			Company:  str(t["company"]),
			Years:    intVal(t["years"]),
		}
	}
	return types.Profile{}
}

func (n *Normalizer) experience(v any) []types.ExperienceEntry {
	switch t := v.(type) {
	case []types.ExperienceEntry:
		out := make([]types.ExperienceEntry, len(t))
		for i, e := range t {
			e.Achievements = deriveAchievements(e)
			out[i] = e
		}
		return out
	case types.ExperienceEntry:
		t.Achievements = deriveAchievements(t)
		return []types.ExperienceEntry{t}
	case string:
		if strings.TrimSpace(t) == "" {
			return []types.ExperienceEntry{}
		}
		return []types.ExperienceEntry{n.ex.ParseExperienceEntry(t)}
	case []any:
		out := make([]types.ExperienceEntry, 0, len(t))
		for _, item := range t {
			switch e := item.(type) {
			case types.ExperienceEntry:
				e.Achievements = deriveAchievements(e)
				out = append(out, e)
			case string:
				if strings.TrimSpace(e) != "" {
					out = append(out, n.ex.ParseExperienceEntry(e))
				}
			case map[string]any:
				out = append(out, experienceFromMap(e))
			}
		}
		return out
	case []map[string]any:
		out := make([]types.ExperienceEntry, 0, len(t))
		for _, m := range t {
			out = append(out, experienceFromMap(m))
		}
		return out
	case map[string]any:
		return []types.ExperienceEntry{experienceFromMap(t)}
	}
	return []types.ExperienceEntry{}
}

// experienceFromMap reconciles an entry mapping through the committed alias
// key lists, then derives achievements.
func experienceFromMap(m map[string]any) types.ExperienceEntry {
	entry := types.ExperienceEntry{
		Role:         firstKey(m, "title", "position", "job_title", "role"),
		Company:      firstKey(m, "organization", "employer", "org", "company"),
		Description:  firstKey(m, "summary", "duties", "responsibilities", "description"),
		StartDate:    str(m["start_date"]),
		EndDate:      str(m["end_date"]),
		Location:     str(m["location"]),
		Bullets:      anyStrings(m["bullets"]),
		Achievements: anyStrings(m["achievements"]),
	}
	entry.Achievements = deriveAchievements(entry)
	return entry
}

// deriveAchievements keeps explicit achievements; otherwise metrics found in
// the description come first, then metrics from bullets, not deduplicated.
func deriveAchievements(e types.ExperienceEntry) []string {
	if len(e.Achievements) > 0 {
		return e.Achievements
	}
	derived := []string{}
	derived = append(derived, extraction.Metrics(e.Description)...)
	for _, b := range e.Bullets {
		derived = append(derived, extraction.Metrics(b)...)
	}
	return derived
}

func (n *Normalizer) education(v any) []types.EducationEntry {
	switch t := v.(type) {
	case []types.EducationEntry:
		return append([]types.EducationEntry{}, t...)
	case types.EducationEntry:
		return []types.EducationEntry{t}
	case string:
		if strings.TrimSpace(t) == "" {
			return []types.EducationEntry{}
		}
		return []types.EducationEntry{extraction.ParseEducationEntry(t)}
	case []any:
		out := make([]types.EducationEntry, 0, len(t))
		for _, item := range t {
			switch e := item.(type) {
			case types.EducationEntry:
				out = append(out, e)
			case string:
				if strings.TrimSpace(e) != "" {
					out = append(out, extraction.ParseEducationEntry(e))
				}
			case map[string]any:
				out = append(out, educationFromMap(e))
			}
		}
		return out
	case []map[string]any:
		out := make([]types.EducationEntry, 0, len(t))
		for _, m := range t {
			out = append(out, educationFromMap(m))
		}
		return out
	case map[string]any:
		return []types.EducationEntry{educationFromMap(t)}
	}
	return []types.EducationEntry{}
}

func educationFromMap(m map[string]any) types.EducationEntry {
	return types.EducationEntry{
		Degree:      firstKey(m, "degree", "qualification"),
		Institution: firstKey(m, "institution", "school", "university", "college"),
		Year:        str(m["year"]),
		Summary:     str(m["summary"]),
	}
}

// stringList coerces a field value into a list of strings. Strings split on
// commas for enumeration fields and wrap as one element otherwise; unusable
// types become the empty list.
func stringList(field string, v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		return anyStrings(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return []string{}
		}
		if commaSplit[field] {
			parts := strings.Split(s, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		}
		return []string{s}
	}
	return []string{}
}

func anyStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func ensureList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func firstKey(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func intVal(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i
		}
	}
	return 0
}
