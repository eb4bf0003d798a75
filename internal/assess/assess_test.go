package assess

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/councilops/grantwriter/internal/rubric"
)

func outcomesItem() rubric.Item {
	return rubric.Item{
		Criterion: "Outcomes",
		Weight:    1.0,
		Sections:  []string{"Expected Outcomes (KPIs/metrics)", "Objectives (bullets OK)"},
		RawText:   "Outcomes & Impact (25%) - clear KPIs.",
		Keywords:  []string{"benefit", "impact", "kpi", "outcomes", "results", "targets"},
	}
}

func TestAssessEmptyInput(t *testing.T) {
	result := New(nil).Assess(map[string]string{}, nil)

	if len(result.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(result.Entries))
	}
	if result.Overall != 0.0 {
		t.Fatalf("expected overall 0.0, got %v", result.Overall)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"__overall__":{"score":0}}` {
		t.Fatalf("unexpected serialized result: %s", data)
	}
}

func TestCoverageSeedKeywordsWeighDouble(t *testing.T) {
	item := rubric.Item{
		Criterion: "Need",
		Weight:    1.0,
		Sections:  []string{"Problem / Need"},
		Keywords:  []string{"custom", "need", "problem"},
	}
	sections := map[string]string{
		"Problem / Need": "Our need is urgent and the custom survey proves it.",
	}

	result := New(nil).Assess(sections, []rubric.Item{item})
	entry := result.Entries["Need"]
	if entry == nil {
		t.Fatal("expected an entry for Need")
	}

	// need (seed, hit) = 2.0, problem (seed, miss) = 0, custom (hit) = 1.0,
	// out of a possible 5.0.
	if math.Abs(entry.Coverage-0.6) > 1e-9 {
		t.Fatalf("expected coverage 0.6, got %v", entry.Coverage)
	}

	want := map[string]float64{"custom": 1.0, "need": 2.0, "problem": 0.0}
	if !reflect.DeepEqual(entry.KeywordScores, want) {
		t.Fatalf("unexpected keyword scores: %v", entry.KeywordScores)
	}
}

func TestCoverageFuzzyPartialCredit(t *testing.T) {
	sim := func(a, b string) int {
		if a == "problem" {
			return 80
		}
		return 0
	}

	item := rubric.Item{
		Criterion: "Need",
		Weight:    1.0,
		Sections:  []string{"Problem / Need"},
		Keywords:  []string{"problem"},
	}
	sections := map[string]string{"Problem / Need": "there are many problens here"}

	result := New(sim).Assess(sections, []rubric.Item{item})
	entry := result.Entries["Need"]

	// 0.6 partial credit times the 2.0 seed factor, out of 2.0.
	if math.Abs(entry.Coverage-0.6) > 1e-9 {
		t.Fatalf("expected fuzzy coverage 0.6, got %v", entry.Coverage)
	}
	if math.Abs(entry.KeywordScores["problem"]-1.2) > 1e-9 {
		t.Fatalf("expected contribution 1.2, got %v", entry.KeywordScores["problem"])
	}

	// Without a similarity scorer the same input scores zero.
	result = New(nil).Assess(sections, []rubric.Item{item})
	if got := result.Entries["Need"].Coverage; got != 0.0 {
		t.Fatalf("expected substring-only coverage 0.0, got %v", got)
	}
}

func TestCoverageEmptyKeywordSet(t *testing.T) {
	item := rubric.Item{Criterion: "Ad Hoc", Weight: 1.0, Sections: []string{"Ad Hoc"}}
	result := New(nil).Assess(map[string]string{"Ad Hoc": "anything"}, []rubric.Item{item})
	if got := result.Entries["Ad Hoc"].Coverage; got != 0.0 {
		t.Fatalf("expected coverage 0.0 for empty keyword set, got %v", got)
	}
}

func TestAssessMissingSectionsAreEmptyText(t *testing.T) {
	item := outcomesItem()
	result := New(nil).Assess(map[string]string{}, []rubric.Item{item})

	entry := result.Entries["Outcomes"]
	if entry == nil {
		t.Fatal("expected an entry for Outcomes")
	}
	if entry.Coverage != 0.0 {
		t.Fatalf("expected zero coverage for missing sections, got %v", entry.Coverage)
	}
	if len(entry.Hints) == 0 {
		t.Fatal("expected hints for empty outcome text")
	}
}

func TestAssessOverallRounded(t *testing.T) {
	item := rubric.Item{
		Criterion: "Ad Hoc",
		Weight:    1.0,
		Sections:  []string{"Ad Hoc"},
		Keywords:  []string{"aaa", "bbb", "ccc"},
	}
	result := New(nil).Assess(map[string]string{"Ad Hoc": "aaa only"}, []rubric.Item{item})
	if result.Overall != 0.3333 {
		t.Fatalf("expected overall rounded to 0.3333, got %v", result.Overall)
	}
}

func TestAssessBounds(t *testing.T) {
	criteria := "Demonstrated Need (30%) - evidence of problem.\n" +
		"Outcomes & Impact (25%) - clear KPIs.\n" +
		"Project Delivery (20%) - activities.\n" +
		"Community Benefit (15%) - equity.\n" +
		"Value for Money (10%) - budget."
	items := rubric.NewBuilder(nil).Build(criteria)

	sections := map[string]string{
		"Problem / Need":                   "Police callouts after dark are 28% higher than the metro average. Baseline: 42 incidents/quarter.",
		"Expected Outcomes (KPIs/metrics)": "By Q4 2025, reduce after-dark incidents by 25%.",
		"Activities & Delivery Plan":       "Install 180 LED fixtures; co-design placements with residents.",
		"Target Audience":                  "2,400 residents across 12 estates; priority groups include women and youth.",
		"Budget (summary + justification)": "$180,000 LED fixtures and installation; in-kind: council electricians.",
	}

	result := New(nil).Assess(sections, items)
	for name, entry := range result.Entries {
		if entry.Coverage < 0 || entry.Coverage > 1 {
			t.Fatalf("%s: coverage out of bounds: %v", name, entry.Coverage)
		}
		if entry.Weighted < 0 || entry.Weighted > 1 {
			t.Fatalf("%s: weighted out of bounds: %v", name, entry.Weighted)
		}
	}
	if result.Overall < 0 || result.Overall > 1 {
		t.Fatalf("overall out of bounds: %v", result.Overall)
	}
}

func TestAssessDeterminism(t *testing.T) {
	items := rubric.NewBuilder(nil).Build("Need 40%\nEvaluation 30%\nRisk 30%")
	sections := map[string]string{
		"Problem / Need":                  "A clear gap backed by census data: 42 incidents.",
		"Evaluation (how you'll measure)": "Quarterly survey and admin data.",
		"Risks & Mitigation":              "Likelihood and impact assessed for top risks.",
	}

	first := New(nil).Assess(sections, items)
	second := New(nil).Assess(sections, items)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got\n%+v\nand\n%+v", first, second)
	}
}
