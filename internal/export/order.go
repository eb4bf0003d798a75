// Package export renders the drafted application as Markdown or DOCX.
package export

import "github.com/councilops/grantwriter/internal/project"

// DefaultOrder lists the export-friendly section titles in document order.
var DefaultOrder = []string{
	"Executive Summary",
	"Statement of Need",
	"Project Objectives",
	"Activities & Delivery Plan",
	"Expected Outcomes (KPIs/metrics)",
	"Evaluation (how you'll measure)",
	"Community Benefit",
	"Budget & Justification",
	"Risk Management",
	"Project Timeline",
	"Partnerships & Governance",
}

// titleMap maps working section names onto the export titles. Unmapped names
// pass through unchanged.
var titleMap = map[string]string{
	project.SectionNeed:             "Statement of Need",
	project.SectionBudget:           "Budget & Justification",
	project.SectionTimeline:         "Project Timeline",
	project.SectionRisks:            "Risk Management",
	project.SectionObjectives:       "Project Objectives",
	project.SectionActivities:       "Activities & Delivery Plan",
	project.SectionOutcomes:         "Expected Outcomes (KPIs/metrics)",
	project.SectionEvaluation:       "Evaluation (how you'll measure)",
	project.SectionAudience:         "Community Benefit",
	project.SectionPartners:         "Partnerships & Governance",
	project.SectionExecutiveSummary: "Executive Summary",

	// Drafted section names that differ from the export titles.
	"Outcomes & Evaluation":      "Expected Outcomes (KPIs/metrics)",
	"Community Benefit & Equity": "Community Benefit",
}

// normalize rekeys section content by export title.
func normalize(sections map[string]string) map[string]string {
	out := make(map[string]string, len(sections))
	for name, text := range sections {
		title, ok := titleMap[name]
		if !ok {
			title = name
		}
		out[title] = text
	}
	return out
}
