// Package pipeline orchestrates resume generation as a strict linear state
// machine: understanding, clarification, generation, enhancement, qa,
// formatting. Two stages can be skipped on resumed runs, and there are three
// early exits: awaiting clarification, rejected by QA, and stage failure.
// There is no backward transition and no stage re-entry within a run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/resume-engine/internal/db"
	"github.com/jonathan/resume-engine/internal/enhancement"
	"github.com/jonathan/resume-engine/internal/extraction"
	"github.com/jonathan/resume-engine/internal/lexicon"
	"github.com/jonathan/resume-engine/internal/normalize"
	"github.com/jonathan/resume-engine/internal/observability"
)

// ProgressEvent is one progress update during a run.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called as stages start and finish.
type ProgressCallback func(event ProgressEvent)

// Stage is one entry in the committed stage table. Skip is consulted before
// Run; a skipped stage leaves the state untouched.
type Stage struct {
	Name string
	Skip func(*State) bool
	Run  func(context.Context, *State) error
}

// Options configures a Pipeline. The zero value works: the embedded lexicon
// is used, output goes to stdout, and there is no rewriter or persistence.
type Options struct {
	Store      *lexicon.Store
	Rewriter   enhancement.Rewriter
	DB         *db.DB
	Verbose    bool
	Output     io.Writer
	OnProgress ProgressCallback
}

// Pipeline holds the shared, read-only collaborators. One Pipeline serves
// any number of concurrent runs; all per-run data lives in State.
type Pipeline struct {
	store      *lexicon.Store
	ex         *extraction.Extractor
	norm       *normalize.Normalizer
	enh        *enhancement.Enhancer
	rewriter   enhancement.Rewriter
	database   *db.DB
	printer    *observability.Printer
	out        io.Writer
	verbose    bool
	onProgress ProgressCallback
	stages     []Stage
}

// New builds a Pipeline from options.
func New(opts Options) *Pipeline {
	store := opts.Store
	if store == nil {
		store = lexicon.Default()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	ex := extraction.New(store)
	p := &Pipeline{
		store:      store,
		ex:         ex,
		norm:       normalize.New(ex),
		enh:        enhancement.New(store),
		rewriter:   opts.Rewriter,
		database:   opts.DB,
		printer:    observability.NewPrinter(out),
		out:        out,
		verbose:    opts.Verbose,
		onProgress: opts.OnProgress,
	}
	p.stages = []Stage{
		{Name: "understanding", Skip: skipUnderstanding, Run: p.understand},
		{Name: "clarification", Skip: skipClarification, Run: p.clarify},
		{Name: "generation", Run: p.generate},
		{Name: "enhancement", Run: p.enhance},
		{Name: "qa", Run: p.runQA},
		{Name: "formatting", Run: p.format},
	}
	return p
}

// Stages exposes the committed stage order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run drives st through the stage table and returns it in a terminal
// status. Run never returns an error: failures are recorded on the state.
func (p *Pipeline) Run(ctx context.Context, st *State) *State {
	st.Status = StatusRunning
	st.mergeAnswers()
	if len(st.Known) > 0 {
		p.logf("Merged user answers into state: %d field(s)\n", len(st.Known))
	}

	if st.RunID == uuid.Nil {
		st.RunID = uuid.New()
	}
	p.persistRunStart(ctx, st)

	for i, stage := range p.stages {
		if stage.Skip != nil && stage.Skip(st) {
			p.logf("Skipping %s: already satisfied by state\n", stage.Name)
			continue
		}

		p.logf("Stage %d/%d: %s...\n", i+1, len(p.stages), stage.Name)
		p.emit(st, stage.Name, "started", nil)

		if err := p.runStage(ctx, stage, st); err != nil {
			st.Status = StatusFailed
			st.Error = err.Error()
			st.FailedStage = stage.Name
			p.logf("Stage %s failed: %v\n", stage.Name, err)
			p.persistTerminal(ctx, st)
			return st
		}
		p.persistStage(ctx, st, stage.Name)
		p.emit(st, stage.Name, "completed", nil)

		if stage.Name == "clarification" && st.NeedsMoreInformation {
			st.Status = StatusAwaitingClarification
			if p.verbose {
				p.printer.PrintQuestions(st.Questions)
			}
			p.persistTerminal(ctx, st)
			return st
		}
		if stage.Name == "qa" && !st.QAPassed {
			st.Status = StatusRejected
			if p.verbose {
				p.printer.PrintIssues(st.Issues)
			}
			p.persistTerminal(ctx, st)
			return st
		}
	}

	st.Status = StatusCompleted
	if p.verbose && st.Resume != nil {
		p.printer.PrintResume(st.Resume)
	}
	p.persistTerminal(ctx, st)
	return st
}

// runStage runs one stage with the executor's panic boundary: a panicking
// stage becomes a stage error, never a crashed run.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, st *State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return stage.Run(ctx, st)
}

func (p *Pipeline) emit(st *State, stage, message string, content any) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{
			Stage:   stage,
			Message: message,
			RunID:   st.RunID.String(),
			Content: content,
		})
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Persistence is best-effort bookkeeping: a broken database never breaks a
// run, it only prints a warning.

func (p *Pipeline) persistRunStart(ctx context.Context, st *State) {
	if p.database == nil {
		return
	}
	if err := p.database.CreateRun(ctx, st.RunID, st.RawText, st.TestMode); err != nil {
		p.logf("Warning: failed to create database run: %v\n", err)
	}
}

func (p *Pipeline) persistStage(ctx context.Context, st *State, stage string) {
	if p.database == nil {
		return
	}
	if err := p.database.SaveArtifact(ctx, st.RunID, stage, p.stageArtifact(st, stage)); err != nil {
		p.logf("Warning: failed to save %s artifact: %v\n", stage, err)
	}
}

func (p *Pipeline) persistTerminal(ctx context.Context, st *State) {
	if p.database == nil {
		return
	}
	if err := p.database.CompleteRun(ctx, st.RunID, string(st.Status), st.FailedStage, st.Issues); err != nil {
		p.logf("Warning: failed to complete database run: %v\n", err)
	}
}

func (p *Pipeline) stageArtifact(st *State, stage string) any {
	switch stage {
	case "understanding":
		return map[string]any{"entities": st.Entities, "sections": st.Sections, "skills": st.Skills, "metrics": st.Metrics}
	case "clarification":
		return map[string]any{"needs_more_information": st.NeedsMoreInformation, "questions": st.Questions}
	case "generation":
		return st.Draft
	case "enhancement":
		return map[string]any{"enhanced": st.Enhanced, "note": st.EnhanceNote, "resume": st.Resume}
	case "qa":
		return map[string]any{"qa_passed": st.QAPassed, "issues": st.Issues}
	case "formatting":
		return st.Resume
	}
	return nil
}
