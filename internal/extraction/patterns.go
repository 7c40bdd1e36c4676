package extraction

import "regexp"

// pattern is one candidate regexp for an entity field. Group selects the
// submatch that carries the value.
type pattern struct {
	name  string
	re    *regexp.Regexp
	group int
}

// Pattern cascades are committed, ordered tables: candidates are tried in
// sequence and the first match wins, so contextual patterns must stay listed
// before generic ones. Reordering is a behavior change and is covered by
// tests.

var namePatterns = []pattern{
	{
		name:  "introduction",
		re:    regexp.MustCompile(`(?:[Mm]y name is|[Ii] am|[Ii]'m)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
		group: 1,
	},
	{
		name:  "labeled",
		re:    regexp.MustCompile(`(?mi)^name\s*[:\-]\s*(.+)$`),
		group: 1,
	},
	{
		name:  "leading_line",
		re:    regexp.MustCompile(`\A\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s*$`),
		group: 1,
	},
}

var emailPatterns = []pattern{
	{
		name:  "labeled",
		re:    regexp.MustCompile(`(?mi)^e?mail\s*[:\-]\s*([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})`),
		group: 1,
	},
	{
		name:  "bare",
		re:    regexp.MustCompile(`([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})`),
		group: 1,
	},
}

var phonePatterns = []pattern{
	{
		name:  "labeled",
		re:    regexp.MustCompile(`(?mi)^(?:phone|tel|mobile|cell)\s*[:\-]\s*(\+?[\d][\d\s().\-]{6,}\d)`),
		group: 1,
	},
	{
		name:  "international",
		re:    regexp.MustCompile(`(\+\d{1,3}[\s.\-]\d{3}[\s.\-]\d{4})`),
		group: 1,
	},
	{
		name:  "standard",
		re:    regexp.MustCompile(`(\(?\d{3}\)?[\s.\-]\d{3}[\s.\-]\d{4})`),
		group: 1,
	},
}

var locationPatterns = []pattern{
	{
		name:  "labeled",
		re:    regexp.MustCompile(`(?mi)^(?:location|address|city)\s*[:\-]\s*(.+)$`),
		group: 1,
	},
	{
		name:  "contextual",
		re:    regexp.MustCompile(`(?:[Bb]ased in|[Ll]ocated in|[Ll]iving in)\s+([A-Z][a-zA-Z]+(?:[ ,]+[A-Z][a-zA-Z]*)*)`),
		group: 1,
	},
}

var yearsPatterns = []pattern{
	{
		name:  "years_of_experience",
		re:    regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience)?`),
		group: 1,
	},
	{
		name:  "experience_for_years",
		re:    regexp.MustCompile(`(?i)(?:experience|worked|working)\s*(?:for|of)?\s*(\d+)\+?\s*(?:years?|yrs?)`),
		group: 1,
	},
}

var rolePatterns = []pattern{
	{
		name:  "introduction",
		re:    regexp.MustCompile(`(?i)(?:I'm a|I am a|I work as a?|working as a?)\s+([A-Za-z][a-zA-Z ]+?)(?:\s+with|\s+at|,|\.|$)`),
		group: 1,
	},
	{
		name: "known_title",
		re: regexp.MustCompile(`(?i)\b(Software Engineer|Data Scientist|Product Manager|Frontend Developer|Backend Developer|Full Stack Developer|DevOps Engineer|ML Engineer|Data Engineer|QA Engineer|Security Engineer|Engineering Manager|UX Designer)\b`),
		group: 1,
	},
	{
		name:  "qualified_title",
		re:    regexp.MustCompile(`(?i)\b((?:Senior|Junior|Lead|Principal|Staff)\s+(?:Software\s+)?(?:Engineer|Developer|Scientist|Manager|Designer|Analyst))\b`),
		group: 1,
	},
}

// companyFallback extracts a capitalized phrase after an employment
// preposition. Only used when no lexicon company matched.
var companyFallback = regexp.MustCompile(`(?:\bat|@|\bwith|\bfor|\bfrom)\s+([A-Z][a-zA-Z0-9&.]*(?:\s+[A-Z][a-zA-Z0-9&.]*)*)`)

var educationPatterns = []pattern{
	{
		name:  "degree_in_field",
		re:    regexp.MustCompile(`(?i)((?:Bachelor|Master|PhD|Ph\.D\.|BS|MS|MBA|BA|MA|B\.S\.|M\.S\.|B\.Tech|M\.Tech)(?:'s)?(?:\s+of\s+(?:Science|Arts|Business Administration|Engineering))?(?:\s+degree)?\s+in\s+[A-Za-z &]+)`),
		group: 1,
	},
	{
		name:  "abbreviated_degree",
		re:    regexp.MustCompile(`\b((?:BS|MS|BA|MA|MBA|PhD)\s+[A-Z][A-Za-z ]+)`),
		group: 1,
	},
	{
		name:  "studied",
		re:    regexp.MustCompile(`(?i)(?:degree in|graduated in|studied)\s+([A-Za-z &]+)`),
		group: 1,
	},
}

// levelKeywords maps seniority levels to their trigger keywords. Order is
// the committed match order, matched on word boundaries.
var levelKeywords = []struct {
	level    string
	keywords []string
}{
	{"junior", []string{"junior", "entry level", "entry-level", "associate"}},
	{"mid", []string{"mid level", "mid-level", "intermediate"}},
	{"senior", []string{"senior", "sr"}},
	{"lead", []string{"lead", "principal", "staff"}},
	{"manager", []string{"manager", "director", "vp", "head of"}},
}

// first returns the first cascade match for text, or "".
func first(patterns []pattern, text string) string {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return m[p.group]
		}
	}
	return ""
}
