// Package enhancement strengthens resume language. The local pass swaps weak
// phrases for strong action verbs using the lexicon's ordered replacement
// table; the optional polish pass hands the result to an external rewriter
// and falls back to the local result on any failure.
package enhancement

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-engine/internal/lexicon"
	"github.com/jonathan/resume-engine/internal/types"
)

// Enhancer applies the weak-to-strong phrase table. Construct once with New
// and share; it is read-only after construction.
type Enhancer struct {
	rules []rule
}

type rule struct {
	re     *regexp.Regexp
	strong string
}

// New compiles the store's ordered phrase table into matching rules. Table
// order is the committed replacement order.
func New(store *lexicon.Store) *Enhancer {
	pairs := store.WeakPhrases()
	rules := make([]rule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, rule{
			re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p.Weak) + `\b`),
			strong: p.Strong,
		})
	}
	return &Enhancer{rules: rules}
}

// Enhance returns a strengthened deep copy of doc. The input document is
// never mutated, so QA can still compare before and after. Rewritten fields:
// summary, every experience description/achievement/bullet, every education
// summary, and the project and volunteering strings.
func (e *Enhancer) Enhance(doc *types.ResumeDocument) *types.ResumeDocument {
	if doc == nil {
		return nil
	}
	out := doc.Clone()

	out.Summary = e.Strengthen(out.Summary)
	for i := range out.Experience {
		exp := &out.Experience[i]
		exp.Description = e.Strengthen(exp.Description)
		for j, a := range exp.Achievements {
			exp.Achievements[j] = e.Strengthen(a)
		}
		for j, b := range exp.Bullets {
			exp.Bullets[j] = e.Strengthen(b)
		}
	}
	for i := range out.Education {
		out.Education[i].Summary = e.Strengthen(out.Education[i].Summary)
	}
	for i, p := range out.Projects {
		out.Projects[i] = e.Strengthen(p)
	}
	for i, v := range out.Volunteering {
		out.Volunteering[i] = e.Strengthen(v)
	}
	return out
}

// Strengthen rewrites one string: each distinct weak phrase is replaced at
// most once, in table order, then the first letter is capitalized. The empty
// string passes through untouched.
func (e *Enhancer) Strengthen(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}

	for _, r := range e.rules {
		if loc := r.re.FindStringIndex(s); loc != nil {
			s = s[:loc[0]] + r.strong + s[loc[1]:]
		}
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
