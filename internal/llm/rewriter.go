package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-engine/internal/types"
)

// Rewriter polishes resume prose with an LLM. It implements the rewriter
// contract the enhancement stage expects: same schema in, same schema out,
// and any error leaves the caller free to keep its local version.
type Rewriter struct {
	client Client
	tier   ModelTier
}

// NewRewriter creates a Gemini-backed rewriter. An empty API key is an error
// so callers can configure polish-free operation explicitly.
func NewRewriter(ctx context.Context, apiKey string) (*Rewriter, error) {
	client, err := NewClient(ctx, DefaultConfig(), apiKey)
	if err != nil {
		return nil, err
	}
	return &Rewriter{client: client, tier: TierStandard}, nil
}

// NewRewriterWithClient wires an existing client, used by tests.
func NewRewriterWithClient(client Client, tier ModelTier) *Rewriter {
	return &Rewriter{client: client, tier: tier}
}

// Close releases the underlying client.
func (r *Rewriter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Rewrite asks the model to strengthen the document's prose while preserving
// its structure and facts. The response must be the same JSON schema as the
// input; anything else is an error.
func (r *Rewriter) Rewrite(ctx context.Context, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document to rewrite")
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	prompt := buildRewritePrompt(string(docJSON))

	raw, err := r.client.GenerateJSON(ctx, prompt, r.tier)
	if err != nil {
		return nil, fmt.Errorf("rewrite request failed: %w", err)
	}

	var out types.ResumeDocument
	if err := json.Unmarshal([]byte(CleanJSONBlock(raw)), &out); err != nil {
		return nil, fmt.Errorf("rewrite response is not a valid resume document: %w", err)
	}

	return &out, nil
}

func buildRewritePrompt(docJSON string) string {
	var sb strings.Builder
	sb.WriteString("You are a professional resume editor. Rewrite the prose fields of the resume JSON below ")
	sb.WriteString("(summary, experience descriptions and bullets, education summaries) to use strong, active, ")
	sb.WriteString("professional language.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Do NOT add, remove, or reorder experience or education entries.\n")
	sb.WriteString("- Do NOT change roles, companies, dates, skills, metrics, or any factual content.\n")
	sb.WriteString("- Do NOT invent accomplishments or numbers.\n")
	sb.WriteString("- Keep every field name and the overall JSON structure exactly as given.\n")
	sb.WriteString("- Return ONLY the rewritten JSON object, no markdown, no explanation.\n\n")
	sb.WriteString("Resume:\n")
	sb.WriteString(docJSON)
	return sb.String()
}
