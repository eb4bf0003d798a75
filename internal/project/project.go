// Package project models the grant application being authored: the project
// details entered by staff, the pasted funder criteria, and any drafted
// narrative sections.
package project

// Canonical narrative section names. The rubric taxonomy maps criteria onto
// these, so renaming one here is a breaking change for assessment.
const (
	SectionExecutiveSummary = "Executive Summary"
	SectionNeed             = "Problem / Need"
	SectionAudience         = "Target Audience"
	SectionObjectives       = "Objectives (bullets OK)"
	SectionActivities       = "Activities & Delivery Plan"
	SectionOutcomes         = "Expected Outcomes (KPIs/metrics)"
	SectionEvaluation       = "Evaluation (how you'll measure)"
	SectionBudget           = "Budget (summary + justification)"
	SectionRisks            = "Risks & Mitigation"
	SectionTimeline         = "High-level Timeline"
	SectionPartners         = "Partners & Governance"
)

// Project holds the details entered for one grant application.
type Project struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Need       string `json:"need"`
	Audience   string `json:"audience"`
	Objectives string `json:"objectives"`
	Activities string `json:"activities"`
	Outcomes   string `json:"outcomes"`
	Evaluation string `json:"evaluation"`
	Budget     string `json:"budget"`
	Risks      string `json:"risks"`
	Timeline   string `json:"timeline"`
	Partners   string `json:"partners"`
}

// SectionTexts returns the project content keyed by canonical section name,
// the shape consumed by the coverage assessor. The summary doubles as the
// executive summary until a dedicated draft replaces it.
func (p *Project) SectionTexts() map[string]string {
	return map[string]string{
		SectionExecutiveSummary: p.Summary,
		SectionNeed:             p.Need,
		SectionAudience:         p.Audience,
		SectionObjectives:       p.Objectives,
		SectionActivities:       p.Activities,
		SectionOutcomes:         p.Outcomes,
		SectionEvaluation:       p.Evaluation,
		SectionBudget:           p.Budget,
		SectionRisks:            p.Risks,
		SectionTimeline:         p.Timeline,
		SectionPartners:         p.Partners,
	}
}

// DraftSections are the narrative sections the drafting assistant generates,
// in document order.
var DraftSections = []string{
	"Executive Summary",
	"Statement of Need",
	"Project Objectives",
	"Activities & Delivery Plan",
	"Outcomes & Evaluation",
	"Community Benefit & Equity",
	"Budget & Justification",
	"Risk Management",
	"Project Timeline",
	"Partnerships & Governance",
}

// DraftTargets maps each drafted section back onto the canonical section it
// replaces, so drafts feed the coverage assessor instead of the raw notes.
var DraftTargets = map[string]string{
	"Executive Summary":          SectionExecutiveSummary,
	"Statement of Need":          SectionNeed,
	"Project Objectives":         SectionObjectives,
	"Activities & Delivery Plan": SectionActivities,
	"Outcomes & Evaluation":      SectionOutcomes,
	"Community Benefit & Equity": SectionAudience,
	"Budget & Justification":     SectionBudget,
	"Risk Management":            SectionRisks,
	"Project Timeline":           SectionTimeline,
	"Partnerships & Governance":  SectionPartners,
}
