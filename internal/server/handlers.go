package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/types"
)

// GenerateResponse mirrors the terminal pipeline state. Exactly one of the
// outcome shapes is populated: questions, issues, error, or the document.
type GenerateResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`

	NeedsMoreInformation bool             `json:"needs_more_information,omitempty"`
	Questions            []types.Question `json:"questions,omitempty"`

	QAPassed bool     `json:"qa_passed"`
	Issues   []string `json:"issues,omitempty"`

	Error       string `json:"error,omitempty"`
	FailedStage string `json:"failed_stage,omitempty"`

	Ready      bool                  `json:"ready"`
	ResumeData *types.ResumeDocument `json:"resumeData,omitempty"`
}

func responseFromState(st *pipeline.State) GenerateResponse {
	resp := GenerateResponse{
		RunID:                st.RunID.String(),
		Status:               string(st.Status),
		NeedsMoreInformation: st.NeedsMoreInformation,
		Questions:            st.Questions,
		QAPassed:             st.QAPassed,
		Issues:               st.Issues,
		Error:                st.Error,
		FailedStage:          st.FailedStage,
	}
	if st.Status == pipeline.StatusCompleted {
		resp.Ready = true
		resp.ResumeData = st.Resume
	}
	return resp
}

// handleGenerate runs one pipeline state to a terminal status and returns it.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pipe := s.newPipeline(nil)
	st := pipe.Run(r.Context(), pipeline.NewState(req))

	status := http.StatusOK
	if st.Status == pipeline.StatusFailed {
		status = http.StatusInternalServerError
	}
	s.jsonResponse(w, status, responseFromState(st))
}

// handleGenerateStream runs the pipeline while streaming per-stage progress
// as Server-Sent Events, then sends the terminal response as a final event.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	pipe := s.newPipeline(func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	})
	st := pipe.Run(r.Context(), pipeline.NewState(req))

	if st.Status == pipeline.StatusFailed {
		sse.WriteError(st.Error)
	}
	if err := sse.WriteEvent("result", responseFromState(st)); err != nil {
		return
	}
	sse.WriteComplete(st.RunID.String(), string(st.Status))
}

// handleListRuns returns recent runs from the database.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// Read-only lexicon data endpoints for frontend autocomplete.

func (s *Server) handleDataSkills(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"technical":      s.store.TechnicalSkills(),
		"soft_skills":    s.store.SoftSkills(),
		"certifications": s.store.Certifications(),
	})
}

func (s *Server) handleDataCompanies(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": s.store.Companies(),
	})
}

func (s *Server) handleDataActionVerbs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"action_verbs": s.store.ActionVerbs(),
	})
}
