package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-engine/internal/types"
)

// headerSynonyms resolves section header spellings to canonical section
// names. Canonical names are the single source of truth: content is never
// stored under the raw header text.
var headerSynonyms = map[string]string{
	"summary":              "summary",
	"professional summary": "summary",
	"objective":            "summary",
	"about me":             "summary",
	"experience":           "experience",
	"work experience":      "experience",
	"employment":           "experience",
	"work history":         "experience",
	"education":            "education",
	"academic background":  "education",
	"qualifications":       "education",
	"skills":               "skills",
	"technical skills":     "skills",
	"core competencies":    "skills",
	"projects":             "projects",
	"personal projects":    "projects",
	"key projects":         "projects",
	"certificates":         "certificates",
	"certifications":       "certificates",
	"credentials":          "certificates",
	"publications":         "publications",
	"papers":               "publications",
	"articles":             "publications",
	"awards":               "awards",
	"achievements":         "awards",
	"honors":               "awards",
	"volunteering":         "volunteering",
	"volunteer experience": "volunteering",
	"community service":    "volunteering",
	"interests":            "interests",
	"hobbies":              "interests",
	"personal interests":   "interests",
	"references":           "references",
	"languages":            "languages",
}

// "profile" is not a header on purpose. Contact details belong to entity
// extraction, and treating a profile block as a summary would pull emails
// and phone numbers into prose.

// headerRe matches a known header at the start of a line, with an optional
// trailing colon or period. Content may follow on the same line ("Skills:
// Python, Go") or on the lines below. Longer spellings are listed first in
// the alternation so "work experience" is never read as "experience", and
// the word boundary keeps "Experienced engineer" from opening a section.
var headerRe = buildHeaderRe()

func buildHeaderRe() *regexp.Regexp {
	headers := make([]string, 0, len(headerSynonyms))
	for h := range headerSynonyms {
		headers = append(headers, h)
	}
	sort.Slice(headers, func(i, j int) bool {
		if len(headers[i]) != len(headers[j]) {
			return len(headers[i]) > len(headers[j])
		}
		return headers[i] < headers[j]
	})
	for i, h := range headers {
		headers[i] = regexp.QuoteMeta(h)
	}
	return regexp.MustCompile(`(?mi)^[ \t]*(` + strings.Join(headers, "|") + `)\b[ \t]*[:.]?[ \t]*`)
}

var (
	bulletSplitRe = regexp.MustCompile(`\n[ \t]*(?:[-•*]|\d+[.)])[ \t]*`)
	bulletLineRe  = regexp.MustCompile(`^[ \t]*(?:[-•*]|\d+[.)])[ \t]*`)
	paragraphRe   = regexp.MustCompile(`\n[ \t]*\n`)
)

// Sections slices text into canonical resume sections. Each known header
// line starts a section that owns the text up to the next header (or end of
// input). Sections with empty content are dropped.
func (e *Extractor) Sections(text string) types.Sections {
	var sections types.Sections
	if strings.TrimSpace(text) == "" {
		return sections
	}

	matches := headerRe.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		header := strings.ToLower(strings.TrimSpace(text[m[2]:m[3]]))
		name := headerSynonyms[header]

		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[start:end])
		if content == "" {
			continue
		}

		e.fillSection(&sections, name, content)
	}
	return sections
}

func (e *Extractor) fillSection(sections *types.Sections, name, content string) {
	switch name {
	case "summary":
		// First paragraph only; a summary is a single string.
		if sections.Summary == "" {
			sections.Summary = strings.TrimSpace(paragraphRe.Split(content, 2)[0])
		}
	case "experience":
		for _, item := range splitEntries(content) {
			sections.Experience = append(sections.Experience, e.ParseExperienceEntry(item))
		}
	case "education":
		for _, item := range splitEntries(content) {
			sections.Education = append(sections.Education, ParseEducationEntry(item))
		}
	case "skills":
		if skills := e.Skills(content); len(skills) > 0 {
			sections.Skills = append(sections.Skills, skills...)
		} else {
			sections.Skills = append(sections.Skills, splitList(content)...)
		}
	case "languages":
		sections.Languages = append(sections.Languages, splitLanguages(content)...)
	case "projects":
		sections.Projects = append(sections.Projects, splitItems(content)...)
	case "certificates":
		sections.Certificates = append(sections.Certificates, splitItems(content)...)
	case "publications":
		sections.Publications = append(sections.Publications, splitItems(content)...)
	case "awards":
		sections.Awards = append(sections.Awards, splitItems(content)...)
	case "interests":
		sections.Interests = append(sections.Interests, splitItems(content)...)
	case "volunteering":
		sections.Volunteering = append(sections.Volunteering, splitItems(content)...)
	case "references":
		sections.References = append(sections.References, splitItems(content)...)
	}
}

// splitEntries breaks experience/education content into entry texts: one per
// blank-line paragraph when paragraphs exist; otherwise one per bullet item,
// or one per line when the paragraph has no bullet markers at all.
func splitEntries(content string) []string {
	paras := paragraphRe.Split(content, -1)
	var entries []string
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p != "" {
			entries = append(entries, p)
		}
	}
	if len(entries) != 1 {
		return entries
	}

	para := entries[0]
	if !strings.Contains(para, "\n") {
		return entries
	}

	firstLine, _, _ := strings.Cut(para, "\n")
	if bulletLineRe.MatchString(firstLine) {
		// A bare bullet list: every bullet is its own entry.
		return splitItems(para)
	}
	if bulletSplitRe.MatchString(para) {
		// Heading line followed by bullets: one entry owning its bullets.
		return entries
	}

	// Plain multi-line paragraph ("BS CS, MIT, 2018\nMS SE, Stanford, 2020"):
	// one entry per line.
	var lines []string
	for _, line := range strings.Split(para, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitItems splits content on bullet markers and numbered-list markers,
// dropping fragments too short to carry meaning.
func splitItems(content string) []string {
	parts := bulletSplitRe.Split("\n"+content, -1)
	var items []string
	for _, part := range parts {
		part = strings.TrimSpace(bulletLineRe.ReplaceAllString(part, ""))
		for _, line := range strings.Split(part, "\n") {
			line = strings.TrimSpace(line)
			if len(line) > 3 {
				items = append(items, line)
			}
		}
	}
	return items
}

// splitList prefers comma splitting when a comma is present, falling back to
// bullet splitting.
func splitList(content string) []string {
	if strings.Contains(content, ",") {
		var items []string
		for _, part := range strings.Split(content, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		return items
	}
	return splitItems(content)
}

// splitLanguages is splitList plus cleanup of connective noise ("and
// Marathi", trailing periods).
func splitLanguages(content string) []string {
	var langs []string
	for _, item := range splitList(content) {
		item = strings.TrimSuffix(strings.TrimSpace(item), ".")
		if rest, ok := strings.CutPrefix(strings.ToLower(item), "and "); ok {
			item = strings.TrimSpace(item[len(item)-len(rest):])
		}
		if item != "" {
			langs = append(langs, item)
		}
	}
	return langs
}
