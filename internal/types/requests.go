package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GenerateRequest is the input to one pipeline run, over HTTP or the CLI.
// Answers holds user-supplied field values from a previous clarification
// round; TestMode suppresses clarification questions for automated runs.
type GenerateRequest struct {
	Prompt   string         `json:"prompt" validate:"required,min=10"`
	Answers  map[string]any `json:"answers,omitempty"`
	TestMode bool           `json:"test_mode,omitempty"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid generate request: %w", err)
	}
	return nil
}
