package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-engine/internal/types"
)

var (
	dateRangeRe = regexp.MustCompile(`(?i)\(?\s*((?:19|20)\d{2})\s*[-–]\s*((?:19|20)\d{2}|present|current|now)\s*\)?`)
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// roleAtCompanyRe parses "Role at Company (...)" headings.
	roleAtCompanyRe = regexp.MustCompile(`^([A-Za-z ]+?)\s+at\s+([A-Za-z0-9&., ]+?)\s*(?:\(|,|-|–|$)`)
	// companyDashRoleRe parses "Company - Role" and "Company | Role" headings.
	companyDashRoleRe = regexp.MustCompile(`^([A-Za-z0-9&., ]+?)\s*[|–-]\s*([A-Za-z ]+?)\s*(?:\(|,|$)`)
	// titleSuffixRe catches a bare role title by its suffix noun.
	titleSuffixRe = regexp.MustCompile(`(?i)\b([A-Za-z ]*(?:Engineer|Developer|Manager|Lead|Analyst|Designer|Architect|Director|Specialist|Consultant|Coordinator|Intern|Associate|Scientist))\b`)

	degreeFullRe = regexp.MustCompile(`(?i)((?:Bachelor(?:'s)?|Master(?:'s)?|Ph\.?D\.?|Doctorate|Associate(?:'s)?|MBA|B\.?S\.?c?\.?|M\.?S\.?c?\.?|B\.?A\.?|M\.?A\.?|B\.?Tech\.?|M\.?Tech\.?)(?:\s+degree)?(?:\s+(?:of\s+|in\s+)?[A-Z][A-Za-z &]+?)?)(?:\s+(?:from|at)\s+|\s*,|\s*\(|$)`)
	degreeBareRe = regexp.MustCompile(`(?i)\b(Ph\.?D\.?|Doctorate|M\.?S\.?c?\.?|Master(?:'s)?|B\.?S\.?c?\.?|B\.?A\.?|M\.?A\.?|B\.?Tech\.?|Bachelor(?:'s)?|MBA|Associate(?:'s)?|Diploma|Certificate)\b`)

	institutionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:from|at|@)\s+([A-Z][A-Za-z &]+(?:University|College|Institute|School|Academy))`),
		regexp.MustCompile(`([A-Z][A-Za-z &]+(?:University|College|Institute|School|Academy))`),
		regexp.MustCompile(`\b(MIT|Stanford|Berkeley|Harvard|Caltech|CMU|Oxford|Cambridge)\b`),
		regexp.MustCompile(`(?:from|at|@)\s+([A-Z][A-Za-z ]+)\b`),
	}
)

// ParseExperienceEntry structures one experience entry text. The heading
// line supplies role, company and dates; bullet lines become Bullets; metric
// phrases anywhere in the entry become Achievements. Role and company reuse
// the lexicon-first strategy, but never the role keyword scoring fallback:
// a fragment like "Worked on backend systems" must not invent a title.
func (e *Extractor) ParseExperienceEntry(text string) types.ExperienceEntry {
	text = strings.TrimSpace(text)
	entry := types.ExperienceEntry{Achievements: []string{}}

	heading := text
	if head, rest, ok := strings.Cut(text, "\n"); ok {
		heading = strings.TrimSpace(head)
		for _, line := range strings.Split(rest, "\n") {
			line = strings.TrimSpace(bulletLineRe.ReplaceAllString(line, ""))
			if line != "" {
				entry.Bullets = append(entry.Bullets, line)
			}
		}
	}
	entry.Description = heading

	if m := dateRangeRe.FindStringSubmatch(heading); m != nil {
		entry.StartDate = m[1]
		entry.EndDate = titleCase(strings.ToLower(m[2]))
		heading = strings.TrimSpace(dateRangeRe.ReplaceAllString(heading, ""))
		heading = strings.TrimRight(heading, " ,(-–")
	}

	// Lexicon membership wins for company; pattern heuristics fill the rest.
	entry.Company = e.Company(text)
	if role := first(rolePatterns, heading); role != "" {
		entry.Role = titleCase(strings.TrimSpace(role))
	}

	if entry.Role == "" || entry.Company == "" {
		if m := roleAtCompanyRe.FindStringSubmatch(heading); m != nil {
			if entry.Role == "" && looksLikeTitle(m[1]) {
				entry.Role = strings.TrimSpace(m[1])
			}
			if entry.Company == "" {
				entry.Company = strings.TrimSpace(m[2])
			}
		}
	}
	if entry.Role == "" || entry.Company == "" {
		if m := companyDashRoleRe.FindStringSubmatch(heading); m != nil {
			if entry.Company == "" {
				entry.Company = strings.TrimSpace(m[1])
			}
			if entry.Role == "" && looksLikeTitle(m[2]) {
				entry.Role = strings.TrimSpace(m[2])
			}
		}
	}
	if entry.Role == "" {
		if m := titleSuffixRe.FindStringSubmatch(heading); m != nil {
			entry.Role = strings.TrimSpace(m[1])
		}
	}

	if metrics := Metrics(text); len(metrics) > 0 {
		entry.Achievements = metrics
	}
	return entry
}

// ParseEducationEntry structures one education entry text. Degree,
// institution and year are best-effort; Summary always keeps the original
// text so no information is lost.
func ParseEducationEntry(text string) types.EducationEntry {
	text = strings.TrimSpace(text)
	return types.EducationEntry{
		Degree:      extractDegree(text),
		Institution: extractInstitution(text),
		Year:        yearRe.FindString(text),
		Summary:     text,
	}
}

// looksLikeTitle reports whether a phrase is shaped like a job title: at
// most four words, every word capitalized. Rejects narrative fragments such
// as "Worked on backend systems".
func looksLikeTitle(s string) bool {
	words := strings.Fields(strings.TrimSpace(s))
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if w[0] < 'A' || w[0] > 'Z' {
			return false
		}
	}
	return true
}

func extractDegree(text string) string {
	if m := degreeFullRe.FindStringSubmatch(text); m != nil {
		degree := strings.TrimSpace(m[1])
		if len(degree) > 2 {
			return degree
		}
	}
	return strings.TrimSpace(degreeBareRe.FindString(text))
}

func extractInstitution(text string) string {
	for _, re := range institutionRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		inst := strings.TrimSpace(strings.Trim(m[len(m)-1], " ,."))
		if len(inst) > 2 || inst == "MIT" || inst == "CMU" {
			return inst
		}
	}
	return ""
}
