package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func sampleDoc() *types.ResumeDocument {
	return &types.ResumeDocument{
		Profile: types.Profile{Name: "Jane Smith"},
		Summary: "Worked on backend systems.",
		Skills:  []string{"Go", "SQL"},
		Experience: []types.ExperienceEntry{
			{Role: "Engineer", Company: "Acme", Description: "Worked on APIs.", Achievements: []string{"40%"}},
		},
		Education: []types.EducationEntry{},
	}
}

func TestRewrite(t *testing.T) {
	polished := sampleDoc()
	polished.Summary = "Developed backend systems."
	respJSON, err := json.Marshal(polished)
	require.NoError(t, err)

	fc := &fakeClient{response: string(respJSON)}
	r := NewRewriterWithClient(fc, TierStandard)

	out, err := r.Rewrite(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, "Developed backend systems.", out.Summary)
	assert.Equal(t, []string{"Go", "SQL"}, out.Skills)

	// Prompt carries the document and the structural constraints.
	assert.Contains(t, fc.prompt, "Jane Smith")
	assert.Contains(t, fc.prompt, "Do NOT change roles")
}

func TestRewrite_MarkdownWrappedResponse(t *testing.T) {
	respJSON, err := json.Marshal(sampleDoc())
	require.NoError(t, err)

	fc := &fakeClient{response: "```json\n" + string(respJSON) + "\n```"}
	r := NewRewriterWithClient(fc, TierStandard)

	out, err := r.Rewrite(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", out.Profile.Name)
}

func TestRewrite_ClientError(t *testing.T) {
	fc := &fakeClient{err: errors.New("quota exceeded")}
	r := NewRewriterWithClient(fc, TierStandard)

	_, err := r.Rewrite(context.Background(), sampleDoc())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewrite request failed")
}

func TestRewrite_InvalidJSON(t *testing.T) {
	fc := &fakeClient{response: "I improved your resume! Here it is:"}
	r := NewRewriterWithClient(fc, TierStandard)

	_, err := r.Rewrite(context.Background(), sampleDoc())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a valid resume document"))
}

func TestRewrite_NilDocument(t *testing.T) {
	r := NewRewriterWithClient(&fakeClient{}, TierStandard)

	_, err := r.Rewrite(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewRewriter_RequiresAPIKey(t *testing.T) {
	_, err := NewRewriter(context.Background(), "")
	assert.Error(t, err)
}
