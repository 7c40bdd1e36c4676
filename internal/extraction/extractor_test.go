package extraction

import (
	"testing"

	"github.com/jonathan/resume-engine/internal/lexicon"
	"github.com/jonathan/resume-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	store, err := lexicon.Load()
	require.NoError(t, err)
	return New(store)
}

func TestEntities(t *testing.T) {
	e := newTestExtractor(t)

	text := "My name is Jane Smith and I'm a Senior Software Engineer at Google " +
		"with 7 years of experience. I'm based in Seattle, WA. I studied Computer Science. " +
		"Reach me at jane.smith@example.com or 555-123-4567."

	ent := e.Entities(text)
	assert.Equal(t, "Jane Smith", ent.Name)
	assert.Equal(t, "jane.smith@example.com", ent.Email)
	assert.Equal(t, "555-123-4567", ent.Phone)
	assert.Equal(t, "Seattle, WA", ent.Location)
	assert.Equal(t, "Senior Software Engineer", ent.Role)
	assert.Equal(t, "Google", ent.Company)
	assert.Equal(t, "Computer Science", ent.Education)
	assert.Equal(t, 7, ent.Years)
	assert.Equal(t, types.LevelSenior, ent.Level)
}

func TestExtractionDeterministicOutput(t *testing.T) {
	e := newTestExtractor(t)

	text := "My name is Jane Smith and I'm a Senior Software Engineer at Google. " +
		"I know Python, Go, Kubernetes, PostgreSQL and React. I reduced costs by 30% " +
		"and fixed 12 bugs.\n\nSkills:\nPython, Go, Kubernetes"

	wantEntities := e.Entities(text)
	wantSkills := e.Skills(text)
	wantMetrics := Metrics(text)
	wantSections := e.Sections(text)

	for i := 0; i < 10; i++ {
		assert.Equal(t, wantEntities, e.Entities(text))
		assert.Equal(t, wantSkills, e.Skills(text))
		assert.Equal(t, wantMetrics, Metrics(text))
		assert.Equal(t, wantSections, e.Sections(text))
	}
}

func TestEntitiesEmptyInput(t *testing.T) {
	e := newTestExtractor(t)

	ent := e.Entities("")
	assert.True(t, ent.Empty())
}

func TestLocationStopsAtSentenceBoundary(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"city and state", "I'm based in Seattle, WA. I studied Computer Science.", "Seattle, WA"},
		{"city only", "Currently living in Austin. Open to relocation.", "Austin"},
		{"multiword city", "Located in San Francisco, CA and remote friendly", "San Francisco, CA"},
		{"labeled line", "Location: Portland, OR\nmore text", "Portland, OR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := e.Entities(tt.text)
			assert.Equal(t, tt.expected, ent.Location)
		})
	}
}

func TestRole(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"introduction phrase", "I am a Data Scientist at heart", "Data Scientist"},
		{"known title", "Looking for a Product Manager position", "Product Manager"},
		{"qualified title", "Previously Senior Developer at a startup", "Senior Developer"},
		{"keyword scoring", "I spend my days on backend microservices and api design", "Software Engineer"},
		{"scoring tie resolves to first role", "I enjoy testing and security", "QA Engineer"},
		{"no signal", "hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Role(tt.text))
		})
	}
}

func TestCompany(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"lexicon name", "I work at Google on search infra", "Google"},
		{"lexicon alias", "I build ads systems at Facebook", "Facebook"},
		{"lexicon beats fallback", "Joined Stripe after leaving Someplace", "Stripe"},
		{"fallback pattern", "I work at TechCorp as a consultant", "TechCorp"},
		{"fallback multiword", "Five years at Initech Global Services", "Initech Global Services"},
		{"fallback too short", "I work at Z9", ""},
		{"no company", "I am a freelancer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Company(tt.text))
		})
	}
}

func TestExtractLevel(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		years    int
		expected types.Level
	}{
		{"senior keyword", "senior engineer", 0, types.LevelSenior},
		{"junior keyword", "entry level developer", 0, types.LevelJunior},
		{"lead keyword", "principal engineer", 0, types.LevelLead},
		{"manager keyword", "head of platform", 0, types.LevelManager},
		{"keyword beats years", "junior dev", 10, types.LevelJunior},
		{"banding junior", "no keywords here", 2, types.LevelJunior},
		{"banding mid", "no keywords here", 4, types.LevelMid},
		{"banding senior", "no keywords here", 6, types.LevelSenior},
		{"no signal", "no keywords here", 0, types.LevelUnknown},
		{"no substring match", "seniority is overrated", 0, types.LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractLevel(tt.text, tt.years))
		})
	}
}

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"years of experience", "7 years of experience", 7},
		{"plus suffix", "10+ years in backend", 10},
		{"yrs abbreviation", "3 yrs experience", 3},
		{"no years", "lots of experience", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractYears(tt.text))
		})
	}
}

func TestPhoneVariants(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"labeled", "Phone: 555 123 4567", "555 123 4567"},
		{"international", "call +1 555 1234 anytime", "+1 555 1234"},
		{"parenthesized", "at (555) 123-4567", "(555) 123-4567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Entities(tt.text).Phone)
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		expected bool
	}{
		{"exact word", "i know java well", "java", true},
		{"inside longer word", "i know javascript well", "java", false},
		{"abbrev inside word", "wrote some html today", "ml", false},
		{"at start", "java is fine", "java", true},
		{"at end", "i like java", "java", true},
		{"multiword needle", "strong entry level candidate", "entry level", true},
		{"empty needle", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsWord(tt.haystack, tt.needle))
		})
	}
}
