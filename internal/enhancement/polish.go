package enhancement

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-engine/internal/types"
)

// Rewriter is the external polishing collaborator. Implementations may
// reword text but must keep the document shape and preserve skills,
// companies, roles and metrics verbatim.
type Rewriter interface {
	Rewrite(ctx context.Context, doc *types.ResumeDocument) (*types.ResumeDocument, error)
}

// PolishResult says explicitly whether the external rewrite was applied or
// the locally-enhanced document was kept, and why. Callers never need a side
// channel to tell the two apart.
type PolishResult struct {
	Document *types.ResumeDocument
	Enhanced bool
	Reason   string
}

// Polish hands the locally-enhanced document to the rewriter. Any failure
// (no rewriter, call error, nil or contract-breaking response) degrades to
// the local document; polishing never fails a run.
func (e *Enhancer) Polish(ctx context.Context, doc *types.ResumeDocument, rw Rewriter) PolishResult {
	local := e.Enhance(doc)
	if rw == nil {
		return PolishResult{Document: local, Reason: "no rewriter configured"}
	}

	polished, err := rw.Rewrite(ctx, local)
	if err != nil {
		return PolishResult{Document: local, Reason: fmt.Sprintf("rewrite failed: %v", err)}
	}
	if polished == nil {
		return PolishResult{Document: local, Reason: "rewriter returned no document"}
	}
	if reason := breaksContract(local, polished); reason != "" {
		return PolishResult{Document: local, Reason: reason}
	}
	return PolishResult{Document: polished, Enhanced: true, Reason: "rewritten"}
}

// breaksContract reports the first way polished violates the rewrite
// contract against the local document, or "" when it holds.
func breaksContract(local, polished *types.ResumeDocument) string {
	if !sameStrings(local.Skills, polished.Skills) {
		return "rewriter changed skills"
	}
	if !sameStrings(local.Metrics, polished.Metrics) {
		return "rewriter changed metrics"
	}
	if len(local.Experience) != len(polished.Experience) {
		return "rewriter changed experience count"
	}
	for i := range local.Experience {
		if local.Experience[i].Role != polished.Experience[i].Role ||
			local.Experience[i].Company != polished.Experience[i].Company {
			return "rewriter changed a role or company"
		}
	}
	if strings.TrimSpace(local.Summary) != "" && strings.TrimSpace(polished.Summary) == "" {
		return "rewriter dropped the summary"
	}
	return ""
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
