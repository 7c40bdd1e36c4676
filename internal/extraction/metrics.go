package extraction

import "regexp"

// metricRe captures percentages and counted-noun phrases ("30%", "50 bugs",
// "10 clients"). Plain numbers with no unit are intentionally not metrics.
var metricRe = regexp.MustCompile(`(?i)(\d+%|\d+\s+(?:bugs?|features?|issues?|clients?|users?|customers?|engineers?|projects?|requests?|deployments?))`)

// Metrics returns every metric-looking substring of text in order of first
// appearance. Results are not deduplicated: repeated impact statements are
// repeated metrics.
func Metrics(text string) []string {
	return metricRe.FindAllString(text, -1)
}
