// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEntities outputs a human-readable summary of extracted entities.
func (p *Printer) PrintEntities(ent *types.Entities) {
	if ent == nil {
		return
	}

	var sb strings.Builder
	writeField := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", label+":", value))
		}
	}
	writeField("Name", ent.Name)
	writeField("Email", ent.Email)
	writeField("Phone", ent.Phone)
	writeField("Location", ent.Location)
	writeField("Role", ent.Role)
	writeField("Company", ent.Company)
	writeField("Level", string(ent.Level))
	writeField("Education", ent.Education)
	if ent.Years > 0 {
		sb.WriteString(fmt.Sprintf("%-10s %d\n", "Years:", ent.Years))
	}
	if sb.Len() == 0 {
		sb.WriteString("(nothing extracted)\n")
	}

	p.printBox("Extracted Entities", strings.TrimRight(sb.String(), "\n"))
}

// PrintQuestions outputs the clarification questions for a paused run.
func (p *Printer) PrintQuestions(questions []types.Question) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, q.Field, q.Question))
	}
	p.printBox("Clarification Needed", strings.TrimRight(sb.String(), "\n"))
}

// PrintIssues outputs the QA issue list for a rejected run.
func (p *Printer) PrintIssues(issues []string) {
	if len(issues) == 0 {
		return
	}

	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("• %s\n", issue))
	}
	p.printBox("QA Issues", strings.TrimRight(sb.String(), "\n"))
}

// PrintResume outputs a compact summary of the final document.
func (p *Printer) PrintResume(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.Profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Profile.Name))
	}
	if doc.Profile.Role != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", doc.Profile.Role))
	}
	if doc.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", doc.Summary))
	}

	if len(doc.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := len(doc.Skills)
		if count > maxItemsToShow {
			count = maxItemsToShow
		}
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", doc.Skills[i]))
		}
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Skills)-maxItemsToShow))
		}
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := len(doc.Experience)
		if count > maxItemsToShow {
			count = maxItemsToShow
		}
		for i := 0; i < count; i++ {
			e := doc.Experience[i]
			switch {
			case e.Role != "" && e.Company != "":
				sb.WriteString(fmt.Sprintf("  • %s at %s\n", e.Role, e.Company))
			case e.Company != "":
				sb.WriteString(fmt.Sprintf("  • %s\n", e.Company))
			default:
				sb.WriteString(fmt.Sprintf("  • %s\n", e.Description))
			}
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
	}

	if len(doc.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range doc.Education {
			switch {
			case e.Degree != "" && e.Institution != "":
				sb.WriteString(fmt.Sprintf("  • %s, %s\n", e.Degree, e.Institution))
			case e.Degree != "":
				sb.WriteString(fmt.Sprintf("  • %s\n", e.Degree))
			default:
				sb.WriteString(fmt.Sprintf("  • %s\n", e.Summary))
			}
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("(empty document)\n")
	}

	p.printBox("Resume", strings.TrimRight(sb.String(), "\n"))
}
