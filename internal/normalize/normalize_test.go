package normalize

import (
	"testing"

	"github.com/jonathan/resume-engine/internal/extraction"
	"github.com/jonathan/resume-engine/internal/lexicon"
	"github.com/jonathan/resume-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	store, err := lexicon.Load()
	require.NoError(t, err)
	return New(extraction.New(store))
}

func TestDocumentListCoercion(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name     string
		draft    map[string]any
		field    func(*types.ResumeDocument) []string
		expected []string
	}{
		{
			name:     "skills comma split",
			draft:    map[string]any{"skills": "Go, Python , SQL"},
			field:    func(d *types.ResumeDocument) []string { return d.Skills },
			expected: []string{"Go", "Python", "SQL"},
		},
		{
			name:     "languages comma split",
			draft:    map[string]any{"languages": "English,Spanish"},
			field:    func(d *types.ResumeDocument) []string { return d.Languages },
			expected: []string{"English", "Spanish"},
		},
		{
			name:     "projects string wraps as one element",
			draft:    map[string]any{"projects": "Terminal task manager, written in Go"},
			field:    func(d *types.ResumeDocument) []string { return d.Projects },
			expected: []string{"Terminal task manager, written in Go"},
		},
		{
			name:     "list passes through",
			draft:    map[string]any{"skills": []string{"Go"}},
			field:    func(d *types.ResumeDocument) []string { return d.Skills },
			expected: []string{"Go"},
		},
		{
			name:     "unusable type becomes empty list",
			draft:    map[string]any{"skills": 42},
			field:    func(d *types.ResumeDocument) []string { return d.Skills },
			expected: []string{},
		},
		{
			name:     "missing field becomes empty list",
			draft:    map[string]any{},
			field:    func(d *types.ResumeDocument) []string { return d.Skills },
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field(n.Document(tt.draft)))
		})
	}
}

func TestDocumentProfileShapes(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name     string
		value    any
		expected types.Profile
	}{
		{
			name:     "typed profile",
			value:    types.Profile{Name: "Jane"},
			expected: types.Profile{Name: "Jane"},
		},
		{
			name:     "map profile with numeric years",
			value:    map[string]any{"name": "Jane", "years": float64(5)},
			expected: types.Profile{Name: "Jane", Years: 5},
		},
		{
			name:     "raw text profile dropped",
			value:    "not a mapping",
			expected: types.Profile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := n.Document(map[string]any{"profile": tt.value})
			assert.Equal(t, tt.expected, doc.Profile)
		})
	}
}

func TestDocumentExperienceStringEntry(t *testing.T) {
	n := newTestNormalizer(t)

	doc := n.Document(map[string]any{
		"experience": []any{"Worked on backend systems at TechCorp"},
	})

	require.Len(t, doc.Experience, 1)
	entry := doc.Experience[0]
	assert.Equal(t, "TechCorp", entry.Company)
	assert.Empty(t, entry.Role, "role must not be fabricated from a narrative fragment")
	assert.Empty(t, entry.Achievements)
}

func TestDocumentExperienceAliasKeys(t *testing.T) {
	n := newTestNormalizer(t)

	doc := n.Document(map[string]any{
		"experience": []any{map[string]any{
			"title":    "Backend Engineer",
			"employer": "TechCorp",
			"duties":   "Improved throughput by 30%",
		}},
	})

	require.Len(t, doc.Experience, 1)
	entry := doc.Experience[0]
	assert.Equal(t, "Backend Engineer", entry.Role)
	assert.Equal(t, "TechCorp", entry.Company)
	assert.Equal(t, "Improved throughput by 30%", entry.Description)
	assert.Equal(t, []string{"30%"}, entry.Achievements)
}

func TestDocumentAchievementsDerivationOrder(t *testing.T) {
	n := newTestNormalizer(t)

	doc := n.Document(map[string]any{
		"experience": []any{map[string]any{
			"role":        "Engineer",
			"company":     "TechCorp",
			"description": "Cut latency by 40%",
			"bullets":     []any{"Closed 12 issues", "Cut latency by 40%"},
		}},
	})

	require.Len(t, doc.Experience, 1)
	// Description metrics first, bullet metrics appended, duplicates kept.
	assert.Equal(t, []string{"40%", "12 issues", "40%"}, doc.Experience[0].Achievements)
}

func TestDocumentExplicitAchievementsWin(t *testing.T) {
	n := newTestNormalizer(t)

	doc := n.Document(map[string]any{
		"experience": []any{map[string]any{
			"role":         "Engineer",
			"company":      "TechCorp",
			"description":  "Cut latency by 40%",
			"achievements": []any{"Shipped the big thing"},
		}},
	})

	require.Len(t, doc.Experience, 1)
	assert.Equal(t, []string{"Shipped the big thing"}, doc.Experience[0].Achievements)
}

func TestDocumentEducationShapes(t *testing.T) {
	n := newTestNormalizer(t)

	doc := n.Document(map[string]any{
		"education": []any{
			"BS Computer Science, MIT, 2018",
			map[string]any{"degree": "MS", "school": "Stanford", "year": "2020"},
		},
	})

	require.Len(t, doc.Education, 2)
	assert.Equal(t, "MIT", doc.Education[0].Institution)
	assert.Equal(t, types.EducationEntry{Degree: "MS", Institution: "Stanford", Year: "2020"}, doc.Education[1])
}

func TestResumeIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	drafts := []map[string]any{
		{},
		{"skills": "Go, Python", "summary": "Engineer."},
		{"experience": []any{
			"Worked on backend systems at TechCorp",
			map[string]any{"title": "Engineer", "employer": "Acme", "duties": "Fixed 50 bugs"},
		}},
		{"profile": map[string]any{"name": "Jane"}, "metrics": []string{"20%"}},
	}

	for _, draft := range drafts {
		doc := n.Document(draft)
		once := n.Resume(doc)
		twice := n.Resume(once)
		assert.Equal(t, once, twice)
	}
}

func TestResumeFillsNilLists(t *testing.T) {
	n := newTestNormalizer(t)

	out := n.Resume(&types.ResumeDocument{Summary: "hi"})
	assert.NotNil(t, out.Skills)
	assert.NotNil(t, out.Languages)
	assert.NotNil(t, out.Experience)
	assert.NotNil(t, out.Education)
	assert.NotNil(t, out.References)
	assert.Empty(t, out.Skills)
}

func TestResumeNil(t *testing.T) {
	n := newTestNormalizer(t)
	assert.NotNil(t, n.Resume(nil))
}
