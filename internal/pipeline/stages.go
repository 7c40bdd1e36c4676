package pipeline

import (
	"context"

	"github.com/jonathan/resume-engine/internal/assembly"
	"github.com/jonathan/resume-engine/internal/completeness"
	"github.com/jonathan/resume-engine/internal/extraction"
	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/qa"
	"github.com/jonathan/resume-engine/internal/schemas"
)

// skipUnderstanding guards re-entrancy: a resumed run that already carries
// extracted entities does not extract again.
func skipUnderstanding(st *State) bool {
	return st.Entities != nil && !st.Entities.Empty()
}

// skipClarification holds when every required section already has a
// non-empty value in state, so there is nothing left to ask.
func skipClarification(st *State) bool {
	return len(completeness.Missing(st.sectionValues(), "", nil)) == 0
}

// understand extracts entities, sections, skills and metrics from the
// cleaned raw text. Extraction misses are not errors; they surface later as
// missing fields.
func (p *Pipeline) understand(_ context.Context, st *State) error {
	text := ingestion.CleanText(st.RawText)

	entities := p.ex.Entities(text)
	st.Entities = &entities
	st.Sections = p.ex.Sections(text)
	st.Skills = p.ex.Skills(text)
	st.Metrics = extraction.Metrics(text)

	if p.verbose {
		p.printer.PrintEntities(st.Entities)
	}
	return nil
}

// clarify builds questions for the sections that are still missing. Test
// mode is an explicit bypass for automated runs and short-circuits before
// the missing-field scan.
func (p *Pipeline) clarify(_ context.Context, st *State) error {
	st.Questions = nil
	st.NeedsMoreInformation = false
	if st.TestMode {
		return nil
	}

	missing := completeness.Missing(st.sectionValues(), st.RawText, st.Known)
	st.Questions = completeness.Questions(missing)
	st.NeedsMoreInformation = len(st.Questions) > 0
	return nil
}

// generate assembles the unnormalized draft from answers and extraction.
func (p *Pipeline) generate(_ context.Context, st *State) error {
	in := assembly.Input{
		RawText:  st.RawText,
		Sections: st.Sections,
		Skills:   st.Skills,
		Metrics:  st.Metrics,
		Answers:  st.Answers,
	}
	if st.Entities != nil {
		in.Entities = *st.Entities
	}

	st.Draft = assembly.Build(in)
	return nil
}

// enhance normalizes the draft, strengthens its language locally and hands
// it to the external rewriter when one is configured. Rewriter failure is a
// logged fallback, never a stage failure.
func (p *Pipeline) enhance(ctx context.Context, st *State) error {
	doc := p.norm.Document(st.Draft)

	result := p.enh.Polish(ctx, doc, p.rewriter)
	st.Resume = result.Document
	st.Enhanced = result.Enhanced
	st.EnhanceNote = result.Reason
	if !result.Enhanced && p.rewriter != nil {
		p.logf("Polish fell back to local enhancement: %s\n", result.Reason)
	}
	return nil
}

// runQA validates the enhanced document and records the verdict.
func (p *Pipeline) runQA(_ context.Context, st *State) error {
	report := qa.Validate(st.Resume)
	st.QAPassed = report.Passed
	st.Issues = report.Issues
	return nil
}

// format re-normalizes the final document (idempotent on an already
// canonical one) and runs the advisory JSON Schema check.
func (p *Pipeline) format(_ context.Context, st *State) error {
	st.Resume = p.norm.Resume(st.Resume)

	problems, err := schemas.ValidateResume(st.Resume)
	if err != nil {
		p.logf("Warning: schema validation unavailable: %v\n", err)
		return nil
	}
	for _, problem := range problems {
		p.logf("Warning: schema check: %s\n", problem)
	}
	return nil
}
