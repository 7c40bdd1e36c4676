// Package assembly builds the first resume draft from everything the
// earlier stages collected. The draft is a loose map because user answers
// arrive in arbitrary shapes; the schema normalizer makes it canonical.
package assembly

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-engine/internal/types"
)

// Input is everything assembly may draw from. Answers always win over
// machine-extracted values for the same field.
type Input struct {
	RawText  string
	Entities types.Entities
	Sections types.Sections
	Skills   []string
	Metrics  []string
	Answers  map[string]any
}

// Build assembles the unnormalized draft. Field priority is answer, then
// extracted section, then empty default. The raw text itself is never copied
// into a structured field: an unextracted section stays empty and is caught
// by QA instead of silently duplicating the whole input into summary,
// experience and education.
func Build(in Input) map[string]any {
	draft := map[string]any{
		"profile":      profileValue(in),
		"summary":      pick(in.Answers["summary"], in.Sections.Summary),
		"experience":   pick(in.Answers["experience"], in.Sections.Experience),
		"education":    pick(in.Answers["education"], in.Sections.Education),
		"skills":       pick(in.Answers["skills"], mergeSkills(in.Skills, in.Sections.Skills)),
		"languages":    pick(in.Answers["languages"], in.Sections.Languages),
		"projects":     pick(in.Answers["projects"], in.Sections.Projects),
		"certificates": pick(in.Answers["certificates"], in.Sections.Certificates),
		"publications": pick(in.Answers["publications"], in.Sections.Publications),
		"interests":    pick(in.Answers["interests"], in.Sections.Interests),
		"volunteering": pick(in.Answers["volunteering"], in.Sections.Volunteering),
		"references":   pick(in.Answers["references"], in.Sections.References),
	}
	if len(in.Metrics) > 0 {
		draft["metrics"] = in.Metrics
	}
	return draft
}

// profileValue keeps a supplied profile only when it is a non-empty mapping.
// Anything else (missing, raw text, empty value) is rebuilt from entities.
func profileValue(in Input) any {
	if m, ok := in.Answers["profile"].(map[string]any); ok && len(m) > 0 {
		return m
	}

	ent := in.Entities
	profile := types.Profile{
		Name:     ent.Name,
		Email:    ent.Email,
		Phone:    ent.Phone,
		Location: ent.Location,
		Role:     ent.Role,
		Company:  ent.Company,
		Years:    ent.Years,
	}
	return profile
}

// pick returns the answer when it carries content, otherwise the extracted
// value.
func pick(answer any, extracted any) any {
	if !empty(answer) {
		return answer
	}
	return extracted
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// mergeSkills unions the full-text scan with the skills section,
// case-insensitively deduplicated and sorted.
func mergeSkills(scanned, section []string) []string {
	seen := make(map[string]string)
	for _, s := range append(append([]string{}, scanned...), section...) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = strings.TrimSpace(s)
		}
	}

	merged := make([]string, 0, len(seen))
	for _, s := range seen {
		merged = append(merged, s)
	}
	sort.Strings(merged)
	return merged
}
