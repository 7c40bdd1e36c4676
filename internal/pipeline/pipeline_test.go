package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-engine/internal/types"
)

func newTestPipeline(t *testing.T, opts Options) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts.Output = &buf
	return New(opts), &buf
}

func questionFields(questions []types.Question) []string {
	fields := make([]string, 0, len(questions))
	for _, q := range questions {
		fields = append(fields, q.Field)
	}
	return fields
}

func TestStagesOrder(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	assert.Equal(t, []string{
		"understanding",
		"clarification",
		"generation",
		"enhancement",
		"qa",
		"formatting",
	}, p.Stages())
}

func TestRunPausesForClarification(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	st := NewState(types.GenerateRequest{
		Prompt: "My name is Jane Smith and my email is test@gmail.com. " +
			"I worked at Amazon for 5 years as a Software Engineer and improved API latency by 20%.",
	})
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusAwaitingClarification, out.Status)
	assert.True(t, out.NeedsMoreInformation)
	require.NotNil(t, out.Entities)
	assert.Equal(t, "Jane Smith", out.Entities.Name)
	assert.Equal(t, "test@gmail.com", out.Entities.Email)
	assert.Equal(t, "Amazon", out.Entities.Company)
	assert.Equal(t, 5, out.Entities.Years)
	assert.Contains(t, out.Metrics, "20%")

	// Information already present in the text is not asked again.
	fields := questionFields(out.Questions)
	assert.NotContains(t, fields, "profile")
	assert.NotContains(t, fields, "experience")
	assert.Contains(t, fields, "education")
	assert.NotEmpty(t, fields)
}

func TestRunTestModeRejectedByQA(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	st := NewState(types.GenerateRequest{
		Prompt:   "My name is Bob Jones.\n\nSkills:\nPython\n",
		TestMode: true,
	})
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusRejected, out.Status)
	assert.False(t, out.QAPassed)
	assert.False(t, out.NeedsMoreInformation, "test mode never pauses for clarification")
	assert.Contains(t, out.Issues, "too few skills listed")
	assert.Contains(t, out.Issues, "missing or empty section: summary")
}

func TestRunCompletes(t *testing.T) {
	p, _ := newTestPipeline(t, Options{Verbose: true})

	prompt := "My name is Jane Smith and my email is jane.smith@example.com.\n\n" +
		"Summary:\nSenior engineer with 7 years of experience building distributed systems.\n\n" +
		"Work Experience:\nSenior Developer at Google (2020-2024)\n" +
		"- Led a team of 5 engineers\n" +
		"- Improved throughput by 40%\n\n" +
		"Education:\nBS in Computer Science from MIT, 2018\n\n" +
		"Skills:\nPython, Go, PostgreSQL\n"

	st := NewState(types.GenerateRequest{Prompt: prompt, TestMode: true})
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusCompleted, out.Status)
	assert.True(t, out.QAPassed)
	assert.Empty(t, out.Issues)
	require.NotNil(t, out.Resume)

	assert.Equal(t, "Jane Smith", out.Resume.Profile.Name)
	assert.NotEmpty(t, out.Resume.Summary)
	require.NotEmpty(t, out.Resume.Experience)
	assert.Equal(t, "Senior Developer", out.Resume.Experience[0].Role)
	assert.Equal(t, "Google", out.Resume.Experience[0].Company)
	assert.NotEmpty(t, out.Resume.Experience[0].Achievements)
	require.NotEmpty(t, out.Resume.Education)
	assert.Equal(t, "MIT", out.Resume.Education[0].Institution)
	assert.Len(t, out.Resume.Skills, 3)
}

func fullAnswers() map[string]any {
	return map[string]any{
		"profile":      map[string]any{"name": "Jane Smith", "email": "jane@example.com"},
		"summary":      "Engineer with 6 years of experience.",
		"experience":   []any{map[string]any{"role": "Engineer", "company": "Acme", "description": "Improved latency by 30%"}},
		"education":    []any{map[string]any{"degree": "BS", "institution": "MIT", "year": "2015"}},
		"skills":       []any{"Go", "Python", "SQL"},
		"projects":     "Open source contributions",
		"certificates": "AWS Certified Developer",
		"publications": "None",
		"interests":    "Hiking",
		"volunteering": "Coding mentor",
		"references":   "Available upon request",
	}
}

func TestRunResumedStateSkipsEarlyStages(t *testing.T) {
	p, buf := newTestPipeline(t, Options{})

	st := &State{
		RawText:  "resumed run",
		Entities: &types.Entities{Name: "Jane Smith", Email: "jane@example.com"},
		Answers:  fullAnswers(),
	}
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusCompleted, out.Status)
	assert.NotEqual(t, uuid.Nil, out.RunID)
	assert.Contains(t, buf.String(), "Skipping understanding")
	assert.Contains(t, buf.String(), "Skipping clarification")

	require.NotNil(t, out.Resume)
	assert.Equal(t, "Jane Smith", out.Resume.Profile.Name)
	require.NotEmpty(t, out.Resume.Experience)
	assert.Equal(t, "Acme", out.Resume.Experience[0].Company)
	assert.Contains(t, out.Resume.Experience[0].Achievements, "30%")
}

func TestRunAnswersMarkFieldsKnown(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	st := NewState(types.GenerateRequest{
		Prompt:  "Short description with nothing useful in it whatsoever.",
		Answers: map[string]any{"education": "BS in Math from UCLA"},
	})
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusAwaitingClarification, out.Status)
	assert.True(t, out.Known["education"])
	assert.NotContains(t, questionFields(out.Questions), "education")
}

func TestRunStagePanicBecomesFailure(t *testing.T) {
	p, buf := newTestPipeline(t, Options{})
	p.stages[2] = Stage{Name: "generation", Run: func(context.Context, *State) error {
		panic("boom")
	}}

	st := NewState(types.GenerateRequest{Prompt: "My name is Jane Smith.", TestMode: true})
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, "generation", out.FailedStage)
	assert.Contains(t, out.Error, "stage panicked")
	assert.Contains(t, buf.String(), "Stage generation failed")
}

func TestRunStageErrorBecomesFailure(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})
	p.stages[3] = Stage{Name: "enhancement", Run: func(context.Context, *State) error {
		return errors.New("synthetic failure")
	}}

	st := NewState(types.GenerateRequest{Prompt: "My name is Jane Smith.", TestMode: true})
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, "enhancement", out.FailedStage)
	assert.Equal(t, "synthetic failure", out.Error)
}

func TestRunEmitsProgress(t *testing.T) {
	var events []ProgressEvent
	p, _ := newTestPipeline(t, Options{
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})

	st := NewState(types.GenerateRequest{Prompt: "My name is Bob Jones.\n\nSkills:\nPython\n", TestMode: true})
	out := p.Run(context.Background(), st)
	require.Equal(t, StatusRejected, out.Status)

	require.NotEmpty(t, events)
	assert.Equal(t, "understanding", events[0].Stage)
	assert.Equal(t, "started", events[0].Message)
	assert.Equal(t, out.RunID.String(), events[0].RunID)

	// The run stops at qa, so formatting never emits.
	var stages []string
	for _, e := range events {
		if e.Message == "completed" {
			stages = append(stages, e.Stage)
		}
	}
	assert.Contains(t, stages, "qa")
	assert.NotContains(t, stages, "formatting")
}

type failingRewriter struct{}

func (failingRewriter) Rewrite(context.Context, *types.ResumeDocument) (*types.ResumeDocument, error) {
	return nil, errors.New("model unavailable")
}

func TestRunRewriterFailureFallsBackLocally(t *testing.T) {
	p, buf := newTestPipeline(t, Options{Rewriter: failingRewriter{}})

	st := &State{RawText: "resumed run", Answers: fullAnswers()}
	out := p.Run(context.Background(), st)

	assert.Equal(t, StatusCompleted, out.Status)
	assert.False(t, out.Enhanced)
	assert.Contains(t, out.EnhanceNote, "rewrite failed")
	assert.Contains(t, buf.String(), "Polish fell back to local enhancement")
}
