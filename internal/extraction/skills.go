package extraction

import (
	"sort"
	"strings"
)

// skillVariants maps informal skill spellings to their canonical names.
// Variants are matched on word boundaries and unioned with direct lexicon
// matches.
var skillVariants = map[string]string{
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"js":         "JavaScript",
	"ts":         "TypeScript",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"nextjs":     "Next.js",
	"vuejs":      "Vue.js",
	"reactjs":    "React",
	"k8s":        "Kubernetes",
	"golang":     "Go",
	"postgres":   "PostgreSQL",
	"ml":         "Machine Learning",
	"ai":         "Machine Learning",
	"nlp":        "Natural Language Processing",
	"cv":         "Computer Vision",
}

// Skills returns every known skill mentioned in text. Matching is
// word-boundary aware, so "java" never fires inside "javascript". The result
// is deduplicated case-insensitively and sorted for determinism.
func (e *Extractor) Skills(text string) []string {
	lower := strings.ToLower(text)

	found := make(map[string]string) // lowercase → canonical
	add := func(skill string) {
		key := strings.ToLower(skill)
		if _, ok := found[key]; !ok {
			found[key] = skill
		}
	}

	for _, skill := range e.store.AllSkills() {
		if containsWord(lower, strings.ToLower(skill)) {
			add(skill)
		}
	}

	for variant, canonical := range skillVariants {
		if containsWord(lower, variant) {
			add(canonical)
		}
	}

	skills := make([]string, 0, len(found))
	for _, skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}
