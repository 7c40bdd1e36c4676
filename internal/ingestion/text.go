// Package ingestion prepares raw self-description input for extraction:
// HTML is reduced to text, line endings and whitespace are normalized, and
// section structure (headers, bullet lists) is preserved.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	spacesRe     = regexp.MustCompile(`[ \t]+`)
	blankRunsRe  = regexp.MustCompile(`\n\n\n+`)
	htmlHintRe   = regexp.MustCompile(`(?i)<\s*(?:html|body|div|p|br|ul|li|h[1-6])[\s>/]`)
	bulletMarker = regexp.MustCompile(`^[-*•·]\s+`)
)

// CleanText normalizes raw input while keeping its structure. Input that
// looks like HTML is reduced to text first; cleaning never fails, worst case
// the input comes back trimmed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	if htmlHintRe.MatchString(content) {
		if text, err := StripHTML(content); err == nil {
			content = text
		}
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunsRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces inside a line. Bullet lines keep their
// marker and indentation so entry splitting still sees them.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := ""
	if n := len(line) - len(trimmed); n > 0 {
		indent = strings.Repeat(" ", n)
	}
	if bulletMarker.MatchString(trimmed) {
		marker := bulletMarker.FindString(trimmed)
		rest := spacesRe.ReplaceAllString(trimmed[len(marker):], " ")
		return indent + strings.TrimRight(marker, " \t") + " " + rest
	}
	return indent + spacesRe.ReplaceAllString(trimmed, " ")
}

// FromFile reads and cleans one input file.
func FromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("input file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read input file: %w", err)
	}

	text := CleanText(string(content))
	return text, NewMetadata(text, path), nil
}
