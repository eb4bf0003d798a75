// Package assess scores authored narrative sections against a built rubric,
// producing per-criterion coverage, keyword contributions, gap hints and an
// overall weighted score.
package assess

import (
	"math"
	"strings"

	"github.com/councilops/grantwriter/internal/rubric"
)

// OverallKey is the reserved result key holding the overall weighted score.
const OverallKey = "__overall__"

// Entry is the per-criterion assessment output.
type Entry struct {
	Weight        float64            `json:"weight"`
	Coverage      float64            `json:"coverage"`
	Weighted      float64            `json:"weighted"`
	KeywordScores map[string]float64 `json:"keywords"`
	Sections      []string           `json:"sections"`
	Hints         []string           `json:"hints"`
}

// Result maps criterion names to their entries. Order preserves rubric order
// for deterministic rendering; Overall is the weighted sum rounded to four
// decimal places.
type Result struct {
	Entries map[string]*Entry
	Order   []string
	Overall float64
}

// Assessor computes coverage with an optional similarity scorer. A nil
// scorer degrades to exact case-insensitive substring matching, which only
// reduces match sensitivity, never fails.
type Assessor struct {
	sim rubric.SimilarityFunc
}

func New(sim rubric.SimilarityFunc) *Assessor {
	return &Assessor{sim: sim}
}

// Assess computes weighted coverage per criterion and the overall score.
// Missing sections contribute empty text; an empty rubric yields an
// otherwise-empty result with an overall score of 0.
func (a *Assessor) Assess(sections map[string]string, items []rubric.Item) *Result {
	result := &Result{Entries: make(map[string]*Entry, len(items))}

	overall := 0.0
	for _, item := range items {
		parts := make([]string, 0, len(item.Sections))
		for _, name := range item.Sections {
			parts = append(parts, sections[name])
		}
		text := strings.Join(parts, "\n\n")

		coverage, keywordScores := a.coverage(text, item)
		weighted := coverage * item.Weight
		overall += weighted

		result.Entries[item.Criterion] = &Entry{
			Weight:        item.Weight,
			Coverage:      coverage,
			Weighted:      weighted,
			KeywordScores: keywordScores,
			Sections:      item.Sections,
			Hints:         gapHints(item.Criterion, text),
		}
		result.Order = append(result.Order, item.Criterion)
	}

	result.Overall = math.Round(overall*10000) / 10000
	return result
}

// coverage scores keyword presence in the evaluation text. Canonical seed
// keywords weigh 2x; an exact case-insensitive substring hit scores 1.0 and
// a fuzzy similarity of at least 70 scores 0.6.
func (a *Assessor) coverage(text string, item rubric.Item) (float64, map[string]float64) {
	lower := strings.ToLower(text)
	seeds := rubric.SeedSet(item.Criterion)

	scores := make(map[string]float64, len(item.Keywords))
	maxPossible := 0.0
	total := 0.0
	for _, kw := range item.Keywords {
		weight := 1.0
		if _, seed := seeds[kw]; seed {
			weight = 2.0
		}
		maxPossible += weight

		score := 0.0
		if strings.Contains(lower, kw) {
			score = 1.0
		} else if a.sim != nil && a.sim(kw, lower) >= 70 {
			score = 0.6
		}

		scores[kw] = score * weight
		total += score * weight
	}

	if maxPossible == 0 {
		maxPossible = 1.0
	}

	return clamp01(total / maxPossible), scores
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
