package rubric

import "strings"

// Criterion is one canonical evaluation dimension used by councils and other
// funders. Seeds are lowercase domain terms strongly associated with the
// criterion; Sections are the narrative sections it is assessed against.
type Criterion struct {
	Name     string
	Seeds    []string
	Sections []string
}

// Canon is the fixed taxonomy of funder criteria, in matching priority order.
// Adding a criterion is a data edit here, nothing else.
var Canon = []Criterion{
	{
		Name:     "Need",
		Seeds:    []string{"need", "problem", "gap", "evidence", "data", "baseline"},
		Sections: []string{"Problem / Need"},
	},
	{
		Name:     "Outcomes",
		Seeds:    []string{"outcomes", "results", "impact", "kpi", "targets", "benefit"},
		Sections: []string{"Expected Outcomes (KPIs/metrics)", "Objectives (bullets OK)"},
	},
	{
		Name:     "Community Benefit",
		Seeds:    []string{"community", "benefit", "equity", "inclusion", "priority groups", "co-design"},
		Sections: []string{"Target Audience", "Executive Summary"},
	},
	{
		Name:     "Activities",
		Seeds:    []string{"activities", "delivery", "implementation", "work plan", "work packages"},
		Sections: []string{"Activities & Delivery Plan"},
	},
	{
		Name:     "Evaluation",
		Seeds:    []string{"evaluation", "monitoring", "measure", "baseline", "methods", "survey"},
		Sections: []string{"Evaluation (how you'll measure)"},
	},
	{
		Name:     "Budget",
		Seeds:    []string{"budget", "value for money", "costs", "co-funding", "in-kind"},
		Sections: []string{"Budget (summary + justification)"},
	},
	{
		Name:     "Risk",
		Seeds:    []string{"risk", "mitigation", "safeguard", "governance", "compliance"},
		Sections: []string{"Risks & Mitigation"},
	},
	{
		Name:     "Timeline",
		Seeds:    []string{"timeline", "milestones", "schedule", "gantt", "phases"},
		Sections: []string{"High-level Timeline"},
	},
	{
		Name:     "Objectives",
		Seeds:    []string{"objective", "smart", "goal"},
		Sections: []string{"Objectives (bullets OK)"},
	},
	{
		Name:     "Partnerships",
		Seeds:    []string{"partnership", "partner", "governance", "roles", "stakeholder"},
		Sections: []string{"Partners & Governance"},
	},
}

// Lookup returns the canonical criterion with the given name. The second
// return value is false for ad hoc (fallback) criterion names.
func Lookup(name string) (Criterion, bool) {
	for _, c := range Canon {
		if c.Name == name {
			return c, true
		}
	}
	return Criterion{}, false
}

// SeedSet returns the seed keywords of the named criterion as a set. Ad hoc
// criteria have no seeds.
func SeedSet(name string) map[string]struct{} {
	c, ok := Lookup(name)
	if !ok {
		return nil
	}
	set := make(map[string]struct{}, len(c.Seeds))
	for _, s := range c.Seeds {
		set[s] = struct{}{}
	}
	return set
}

var stopwords = buildStopwords(`
a an and are as at be by for from has have i in is it its of on or our that the
to we with your you this those these their there which will would should could
can may might such if then than while where when who whom whose into upon about
above below over under again further do does did not no nor only own same so
too very more most less least each other any both few many much being been were
was he she they them his her theirs ours yours mine me my also via per vs
versus include including like e.g eg etc i.e ie vs.
`)

func buildStopwords(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}
