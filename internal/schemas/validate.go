// Package schemas validates resume documents against the canonical JSON
// Schema. The schema is embedded so validation works regardless of working
// directory.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-engine/internal/types"
)

//go:embed resume.schema.json
var resumeSchema string

// SchemaError means the schema itself could not be loaded or applied, as
// opposed to the document failing validation.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume schema: %s: %v", e.Message, e.Cause)
	}
	return "resume schema: " + e.Message
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// ValidateResume checks a document against the resume schema and returns the
// problems found, one "field: message" string each. A nil slice means the
// document conforms.
func ValidateResume(doc *types.ResumeDocument) ([]string, error) {
	if doc == nil {
		return []string{"(root): document is missing"}, nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, &SchemaError{Message: "failed to marshal document", Cause: err}
	}
	return validateBytes(data)
}

// ValidateFile checks a resume JSON file against the schema.
func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	return validateBytes(data)
}

func validateBytes(data []byte) ([]string, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(resumeSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &SchemaError{Message: "validation failed to run", Cause: err}
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return problems, nil
}
