package completeness

import (
	"testing"

	"github.com/jonathan/resume-engine/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMissingAllFields(t *testing.T) {
	missing := Missing(map[string]any{}, "", nil)
	assert.Equal(t, Fields, missing)
}

func TestMissingCanonicalOrder(t *testing.T) {
	// Values knock out fields scattered across the list; the remainder must
	// still come back in canonical order.
	values := map[string]any{
		"references": []string{"available on request"},
		"summary":    "Backend developer.",
		"skills":     []string{"Go"},
	}
	missing := Missing(values, "", nil)
	assert.Equal(t, []string{
		"profile", "experience", "education", "projects", "certificates",
		"publications", "interests", "volunteering",
	}, missing)
}

func TestMissingEmptyValueShapes(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		missing bool
	}{
		{"nil", nil, true},
		{"blank string", "   ", true},
		{"empty slice", []string{}, true},
		{"empty map", map[string]any{}, true},
		{"nil pointer", (*types.Profile)(nil), true},
		{"zero struct pointer", &types.Profile{}, true},
		{"non-empty string", "hello world", false},
		{"non-empty slice", []string{"x"}, false},
		{"populated struct pointer", &types.Profile{Name: "Jane"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := Missing(map[string]any{"summary": tt.value}, "", nil)
			assert.Equal(t, tt.missing, contains(missing, "summary"))
		})
	}
}

func TestMissingKeywordRescue(t *testing.T) {
	text := "I worked at a startup and studied physics. My skills include Go."

	missing := Missing(map[string]any{}, text, nil)
	assert.NotContains(t, missing, "experience")
	assert.NotContains(t, missing, "education")
	assert.NotContains(t, missing, "skills")
	assert.Contains(t, missing, "projects")
	assert.Contains(t, missing, "references")
}

func TestMissingKnownFieldsNeverReflagged(t *testing.T) {
	known := map[string]bool{"education": true}

	missing := Missing(map[string]any{"education": ""}, "", known)
	assert.NotContains(t, missing, "education")
}

func TestQuestions(t *testing.T) {
	questions := Questions([]string{"experience", "skills"})
	assert.Equal(t, []types.Question{
		{Field: "experience", Question: "Can you describe your work experience? (role, company, duration)"},
		{Field: "skills", Question: "What skills would you like to include?"},
	}, questions)
}

func TestQuestionsSkipsUnmappedFields(t *testing.T) {
	questions := Questions([]string{"nonexistent", "skills"})
	assert.Len(t, questions, 1)
	assert.Equal(t, "skills", questions[0].Field)
}

func TestQuestionsCoverAllRequiredFields(t *testing.T) {
	// Missing canonical sections must always produce a question each,
	// otherwise the clarification pause would silently drop a field.
	questions := Questions(Fields)
	assert.Len(t, questions, len(Fields))
}

func contains(fields []string, want string) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}
