package assembly

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswersWinOverExtraction(t *testing.T) {
	in := Input{
		Sections: types.Sections{Summary: "Extracted summary."},
		Answers:  map[string]any{"summary": "User-supplied summary."},
	}

	draft := Build(in)
	assert.Equal(t, "User-supplied summary.", draft["summary"])
}

func TestBuildFallsBackToSections(t *testing.T) {
	in := Input{
		Sections: types.Sections{
			Summary:   "Extracted summary.",
			Projects:  []string{"side project"},
			Languages: []string{"English"},
		},
	}

	draft := Build(in)
	assert.Equal(t, "Extracted summary.", draft["summary"])
	assert.Equal(t, []string{"side project"}, draft["projects"])
	assert.Equal(t, []string{"English"}, draft["languages"])
}

func TestBuildProfileFromEntities(t *testing.T) {
	in := Input{
		Entities: types.Entities{
			Name:    "Jane Smith",
			Email:   "jane@example.com",
			Role:    "Software Engineer",
			Company: "Amazon",
			Years:   5,
		},
	}

	draft := Build(in)
	profile, ok := draft["profile"].(types.Profile)
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", profile.Name)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Equal(t, "Software Engineer", profile.Role)
	assert.Equal(t, "Amazon", profile.Company)
	assert.Equal(t, 5, profile.Years)
}

func TestBuildProfileRebuiltWhenNotAMapping(t *testing.T) {
	in := Input{
		Entities: types.Entities{Name: "Jane Smith"},
		Answers:  map[string]any{"profile": "just some raw text"},
	}

	draft := Build(in)
	profile, ok := draft["profile"].(types.Profile)
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", profile.Name)
}

func TestBuildProfileMappingKept(t *testing.T) {
	supplied := map[string]any{"name": "Override Name"}
	in := Input{
		Entities: types.Entities{Name: "Jane Smith"},
		Answers:  map[string]any{"profile": supplied},
	}

	draft := Build(in)
	assert.Equal(t, supplied, draft["profile"])
}

func TestBuildNeverCopiesRawText(t *testing.T) {
	raw := "I am a software engineer who never wrote headers into this text"
	draft := Build(Input{RawText: raw})

	for field, value := range draft {
		s, ok := value.(string)
		if !ok {
			continue
		}
		assert.False(t, strings.Contains(s, raw), "field %s must not contain the raw text", field)
	}
}

func TestBuildSkillsMerged(t *testing.T) {
	in := Input{
		Skills:   []string{"Go", "Python"},
		Sections: types.Sections{Skills: []string{"python", "Kubernetes"}},
	}

	draft := Build(in)
	assert.Equal(t, []string{"Go", "Kubernetes", "Python"}, draft["skills"])
}

func TestBuildMetricsOnlyWhenPresent(t *testing.T) {
	draft := Build(Input{})
	_, ok := draft["metrics"]
	assert.False(t, ok)

	draft = Build(Input{Metrics: []string{"20%"}})
	assert.Equal(t, []string{"20%"}, draft["metrics"])
}
