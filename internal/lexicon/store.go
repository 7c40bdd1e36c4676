// Package lexicon provides the read-only reference tables the extraction
// engine matches against: known companies and aliases, role keywords, skill
// names, and weak-to-strong phrase pairs. Data files are embedded at compile
// time, loaded once, and immutable afterwards, so a single Store is safe for
// unsynchronized concurrent reads across pipeline runs.
package lexicon

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed data/*.json
var dataFiles embed.FS

// Company is one known employer with its aliases.
type Company struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// RoleKeywords maps a canonical role title to the keywords that score it.
// The slice order in the data file is the committed tie-break order.
type RoleKeywords struct {
	Role     string   `json:"role"`
	Keywords []string `json:"keywords"`
}

// WeakStrong is one weak-phrase to strong-phrase replacement. Table order is
// the committed replacement order.
type WeakStrong struct {
	Weak   string `json:"weak"`
	Strong string `json:"strong"`
}

// skillsFile mirrors the layout of data/skills.json.
type skillsFile struct {
	Technical      map[string][]string `json:"technical"`
	SoftSkills     []string            `json:"soft_skills"`
	Certifications []string            `json:"certifications"`
}

// Store holds all lexicon tables. Construct with Load (or Default) and pass
// by reference; never mutate after construction.
type Store struct {
	companies    map[string][]Company
	companyNames []string // names + aliases, original casing, deterministic order
	skills       skillsFile
	allSkills    []string // technical + soft, original casing
	roles        []RoleKeywords
	actionVerbs  map[string][]string
	weakPhrases  []WeakStrong
}

// Load parses the embedded data files into a Store.
func Load() (*Store, error) {
	s := &Store{}

	if err := loadJSON("data/companies.json", &s.companies); err != nil {
		return nil, err
	}
	if err := loadJSON("data/skills.json", &s.skills); err != nil {
		return nil, err
	}
	if err := loadJSON("data/role_keywords.json", &s.roles); err != nil {
		return nil, err
	}
	if err := loadJSON("data/action_verbs.json", &s.actionVerbs); err != nil {
		return nil, err
	}
	if err := loadJSON("data/weak_phrases.json", &s.weakPhrases); err != nil {
		return nil, err
	}

	// Flatten company names and aliases in a deterministic order: categories
	// sorted by name, entries in file order within each category.
	categories := make([]string, 0, len(s.companies))
	for cat := range s.companies {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		for _, c := range s.companies[cat] {
			s.companyNames = append(s.companyNames, c.Name)
			s.companyNames = append(s.companyNames, c.Aliases...)
		}
	}

	for _, cat := range sortedKeys(s.skills.Technical) {
		s.allSkills = append(s.allSkills, s.skills.Technical[cat]...)
	}
	s.allSkills = append(s.allSkills, s.skills.SoftSkills...)

	return s, nil
}

func loadJSON(path string, v any) error {
	data, err := dataFiles.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// Default returns the process-wide Store, loading it on first use. The
// embedded data is validated at build time by the lexicon tests, so a parse
// failure here is a programmer error and panics.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load embedded lexicon data: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Companies returns the company table grouped by category.
func (s *Store) Companies() map[string][]Company { return s.companies }

// CompanyNames returns all known company names and aliases in a stable order.
func (s *Store) CompanyNames() []string { return s.companyNames }

// AllSkills returns every known technical and soft skill name.
func (s *Store) AllSkills() []string { return s.allSkills }

// TechnicalSkills returns the technical skill table keyed by category.
func (s *Store) TechnicalSkills() map[string][]string { return s.skills.Technical }

// SoftSkills returns the soft skill list.
func (s *Store) SoftSkills() []string { return s.skills.SoftSkills }

// Certifications returns the known certification names.
func (s *Store) Certifications() []string { return s.skills.Certifications }

// Roles returns the role keyword table in its committed scoring order.
func (s *Store) Roles() []RoleKeywords { return s.roles }

// ActionVerbs returns action verbs grouped by category.
func (s *Store) ActionVerbs() map[string][]string { return s.actionVerbs }

// WeakPhrases returns the ordered weak-to-strong replacement table.
func (s *Store) WeakPhrases() []WeakStrong { return s.weakPhrases }
