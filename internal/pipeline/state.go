package pipeline

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-engine/internal/types"
)

// Status is the terminal status of a pipeline run. A run has exactly one
// terminal status; intermediate stages never set one.
type Status string

const (
	// StatusRunning is the non-terminal in-flight value.
	StatusRunning Status = "running"
	// StatusAwaitingClarification means the run paused to ask the user
	// questions; it can be resumed with answers.
	StatusAwaitingClarification Status = "awaiting_clarification"
	// StatusRejected means QA found issues the caller must act on.
	StatusRejected Status = "rejected"
	// StatusFailed means a stage errored or panicked.
	StatusFailed Status = "failed"
	// StatusCompleted means every stage ran and QA passed.
	StatusCompleted Status = "completed"
)

// State is the aggregate a single run accumulates. One run exclusively owns
// its State; concurrent runs each get their own. Resuming a paused run means
// feeding its State back in with Answers filled.
type State struct {
	RunID    uuid.UUID      `json:"run_id"`
	RawText  string         `json:"raw_text"`
	Answers  map[string]any `json:"answers,omitempty"`
	TestMode bool           `json:"test_mode,omitempty"`

	// Known marks fields the user answered; completeness never re-asks them.
	Known map[string]bool `json:"known,omitempty"`

	// Understanding outputs.
	Entities *types.Entities `json:"entities,omitempty"`
	Sections types.Sections  `json:"sections,omitempty"`
	Skills   []string        `json:"skills,omitempty"`
	Metrics  []string        `json:"metrics,omitempty"`

	// Clarification outputs.
	NeedsMoreInformation bool             `json:"needs_more_information,omitempty"`
	Questions            []types.Question `json:"questions,omitempty"`

	// Generation through formatting outputs.
	Draft       map[string]any        `json:"draft,omitempty"`
	Resume      *types.ResumeDocument `json:"resume,omitempty"`
	Enhanced    bool                  `json:"enhanced,omitempty"`
	EnhanceNote string                `json:"enhance_note,omitempty"`
	QAPassed    bool                  `json:"qa_passed"`
	Issues      []string              `json:"issues,omitempty"`

	Status      Status `json:"status"`
	Error       string `json:"error,omitempty"`
	FailedStage string `json:"failed_stage,omitempty"`
}

// NewState allocates the State for a fresh run.
func NewState(req types.GenerateRequest) *State {
	return &State{
		RunID:    uuid.New(),
		RawText:  req.Prompt,
		Answers:  req.Answers,
		TestMode: req.TestMode,
		Status:   StatusRunning,
	}
}

// mergeAnswers records which fields the user supplied so every later stage
// (and any resumed run) sees them as known.
func (s *State) mergeAnswers() {
	if len(s.Answers) == 0 {
		return
	}
	if s.Known == nil {
		s.Known = make(map[string]bool, len(s.Answers))
	}
	for field := range s.Answers {
		s.Known[field] = true
	}
}

// sectionValues snapshots the current value of every required section, with
// user answers taking precedence over extracted values. The profile section
// is represented by the supplied profile answer or, failing that, by the
// extracted entities.
func (s *State) sectionValues() map[string]any {
	values := map[string]any{
		"summary":      s.Sections.Summary,
		"experience":   s.Sections.Experience,
		"education":    s.Sections.Education,
		"skills":       s.Skills,
		"projects":     s.Sections.Projects,
		"certificates": s.Sections.Certificates,
		"publications": s.Sections.Publications,
		"interests":    s.Sections.Interests,
		"volunteering": s.Sections.Volunteering,
		"references":   s.Sections.References,
	}
	if len(s.Skills) == 0 {
		values["skills"] = s.Sections.Skills
	}
	if s.Entities != nil && !s.Entities.Empty() {
		values["profile"] = s.Entities
	} else {
		values["profile"] = nil
	}
	for field, answer := range s.Answers {
		values[field] = answer
	}
	return values
}
