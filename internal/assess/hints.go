package assess

import (
	"regexp"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)
	moneyRe  = regexp.MustCompile(`\$\s?\d`)
)

var percentWords = []string{"percent", "%"}

// gapHints runs the criterion-specific remediation checks against the
// evaluation text. Rules are independent; several may fire for one criterion.
// Ad hoc criteria have no rules.
func gapHints(criterion, text string) []string {
	t := strings.ToLower(text)
	var hints []string

	switch criterion {
	case "Outcomes", "Objectives":
		if !numberRe.MatchString(t) && !containsAny(t, percentWords) {
			hints = append(hints, "Add at least one quantified KPI (number or %).")
		}
		if !strings.Contains(t, "baseline") {
			hints = append(hints, "State baseline and target for each KPI.")
		}
		if criterion == "Objectives" && !containsAny(t, []string{"by ", "within "}) {
			hints = append(hints, "Make timelines explicit (e.g., 'by Q4 2025').")
		}
	case "Evaluation":
		if !containsAny(t, []string{"method", "survey", "interview"}) {
			hints = append(hints, "Name evaluation methods (survey/interviews/admin data).")
		}
		if !containsAny(t, []string{"report", "cadence", "quarter"}) {
			hints = append(hints, "Say how often you will report (e.g., quarterly).")
		}
	case "Budget":
		if !moneyRe.MatchString(text) {
			hints = append(hints, "Include dollar amounts and totals.")
		}
		if !containsAny(t, []string{"co-fund", "in-kind", "match"}) {
			hints = append(hints, "Mention co-funding or in-kind support if applicable.")
		}
	case "Need":
		if !numberRe.MatchString(t) {
			hints = append(hints, "Cite 1–2 data points demonstrating the problem size.")
		}
		if !containsAny(t, []string{"source", "abs", "census"}) {
			hints = append(hints, "Reference a data source (e.g., ABS, council data).")
		}
	case "Risk":
		if !strings.Contains(t, "likelihood") || !strings.Contains(t, "impact") {
			hints = append(hints, "Include likelihood and impact for top risks.")
		}
	case "Community Benefit":
		if !containsAny(t, []string{"equity", "priority", "disadvantaged", "inclusive"}) {
			hints = append(hints, "Address equity/priority groups explicitly.")
		}
	}

	return hints
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
