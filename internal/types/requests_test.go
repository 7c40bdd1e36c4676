package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  GenerateRequest{Prompt: "I am a software engineer with five years of experience."},
		},
		{
			name:    "empty prompt",
			req:     GenerateRequest{},
			wantErr: true,
		},
		{
			name:    "prompt too short",
			req:     GenerateRequest{Prompt: "hi there"},
			wantErr: true,
		},
		{
			name: "answers and test mode are optional",
			req: GenerateRequest{
				Prompt:   "I am a software engineer.",
				Answers:  map[string]any{"skills": []any{"Go"}},
				TestMode: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
