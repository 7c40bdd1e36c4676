// Package extraction derives structured facts from free-form text: entities
// (name, role, company, ...), skills, quantitative metrics, and labeled
// resume sections. All extraction is deterministic pattern and lexicon
// matching; malformed input never produces an error, only missing values.
package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-engine/internal/lexicon"
	"github.com/jonathan/resume-engine/internal/types"
)

// Extractor runs lexicon-backed extraction. The store is read-only and may
// be shared across goroutines.
type Extractor struct {
	store *lexicon.Store
}

// New creates an Extractor over the given lexicon store.
func New(store *lexicon.Store) *Extractor {
	return &Extractor{store: store}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Entities extracts all entity fields from text. Each field runs its own
// pattern cascade independently; a field that matches nothing stays at its
// zero value.
func (e *Extractor) Entities(text string) types.Entities {
	ent := types.Entities{
		Name:      strings.TrimSpace(first(namePatterns, text)),
		Email:     strings.TrimSpace(first(emailPatterns, text)),
		Phone:     strings.TrimSpace(first(phonePatterns, text)),
		Location:  strings.TrimSpace(first(locationPatterns, text)),
		Education: strings.TrimSpace(first(educationPatterns, text)),
	}
	ent.Role = e.Role(text)
	ent.Company = e.Company(text)
	ent.Years = extractYears(text)
	ent.Level = extractLevel(text, ent.Years)
	return ent
}

// Role extracts a job title. Direct phrase patterns win; when none match,
// the role keyword lexicon is scored by keyword hits and the highest-scoring
// role is returned. Ties resolve to the first role in the lexicon's
// committed order.
func (e *Extractor) Role(text string) string {
	if role := first(rolePatterns, text); role != "" {
		return titleCase(whitespaceRe.ReplaceAllString(strings.TrimSpace(role), " "))
	}

	lower := strings.ToLower(text)
	best := ""
	bestScore := 0
	for _, rk := range e.store.Roles() {
		score := 0
		for _, kw := range rk.Keywords {
			if containsWord(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = rk.Role
			bestScore = score
		}
	}
	return best
}

// Company extracts an employer name. Lexicon membership (names and aliases,
// word-boundary) always wins over the preposition-based fallback pattern.
func (e *Extractor) Company(text string) string {
	lower := strings.ToLower(text)
	for _, name := range e.store.CompanyNames() {
		if containsWord(lower, strings.ToLower(name)) {
			return name
		}
	}

	if m := companyFallback.FindStringSubmatch(text); m != nil {
		company := trimCompany(m[1])
		if len(company) > 2 {
			return company
		}
	}
	return ""
}

func extractYears(text string) int {
	s := first(yearsPatterns, text)
	if s == "" {
		return 0
	}
	years := 0
	for _, r := range s {
		years = years*10 + int(r-'0')
	}
	return years
}

// extractLevel matches seniority keywords first and falls back to banding
// the years of experience (≤2 junior, ≤5 mid, else senior).
func extractLevel(text string, years int) types.Level {
	lower := strings.ToLower(text)
	for _, lk := range levelKeywords {
		for _, kw := range lk.keywords {
			if containsWord(lower, kw) {
				return types.Level(lk.level)
			}
		}
	}

	switch {
	case years == 0:
		return types.LevelUnknown
	case years <= 2:
		return types.LevelJunior
	case years <= 5:
		return types.LevelMid
	default:
		return types.LevelSenior
	}
}

// containsWord reports whether needle occurs in haystack on word boundaries.
// Both arguments must already be lowercased.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		if boundaryBefore(haystack, idx) && boundaryAfter(haystack, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// trimCompany drops trailing connective words the fallback pattern tends to
// swallow ("at Acme As a consultant" → "Acme").
func trimCompany(s string) string {
	s = strings.TrimSpace(strings.Trim(s, ".,"))
	words := strings.Fields(s)
	for len(words) > 1 {
		last := strings.ToLower(words[len(words)-1])
		if last == "as" || last == "for" || last == "and" || last == "in" {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	return strings.Join(words, " ")
}

// titleCase uppercases the first letter of every word, leaving all-caps
// words untouched.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToUpper(w) && len(w) > 1 {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
