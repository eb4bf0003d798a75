// Package rubric converts free-text funder criteria into a structured,
// weighted rubric bound to a fixed canonical taxonomy.
package rubric

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SimilarityFunc reports how similar two strings are on a 0..100 scale.
// A nil SimilarityFunc degrades matching to exact substring containment.
type SimilarityFunc func(a, b string) int

// Item is one weighted rubric entry. Weights across a built rubric sum to 1.
// RawText keeps every source line that contributed to the criterion for
// audit and display.
type Item struct {
	Criterion string   `json:"criterion"`
	Weight    float64  `json:"weight"`
	Sections  []string `json:"sections"`
	RawText   string   `json:"raw_text"`
	Keywords  []string `json:"keywords"`
}

var (
	percentRe = regexp.MustCompile(`(\d{1,3})\s*%`)
	pointsRe  = regexp.MustCompile(`(?i)(?:score|worth|points?)\s*[:\-]?\s*(\d+)`)
	tokenRe   = regexp.MustCompile(`[a-zA-Z][a-zA-Z\-]{2,}`)

	titleCaser = cases.Title(language.English)
)

// Builder parses criteria text into rubric items. The zero value matches by
// substring only; inject a SimilarityFunc for fuzzier classification.
type Builder struct {
	sim SimilarityFunc
}

func NewBuilder(sim SimilarityFunc) *Builder {
	return &Builder{sim: sim}
}

// Build parses a funder's criteria (verbatim) into a weighted rubric.
//
// Weights come from explicit percentages ("Need 30%"), then point values
// ("worth 15 points"), then an equal-weight placeholder. Lines classified to
// the same criterion merge; weights are normalized to sum to 1 and items are
// returned in descending weight order. Build never fails: unparseable lines
// become ad hoc criteria with the line itself as label and section.
func (b *Builder) Build(criteriaText string) []Item {
	type prelim struct {
		criterion string
		weight    float64
		raw       string
		sections  []string
		keywords  []string
	}

	var prelims []prelim
	for _, l := range strings.Split(criteriaText, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		line := strings.Trim(l, " -•\t\r")

		weight := 1.0
		if m := percentRe.FindStringSubmatch(line); m != nil {
			weight = parseDigits(m[1])
		} else if m := pointsRe.FindStringSubmatch(line); m != nil {
			weight = parseDigits(m[1])
		}

		head := line
		if idx := strings.IndexAny(line, ":-"); idx >= 0 {
			head = line[:idx]
		}
		criterion := b.classify(head)

		var sections []string
		var seeds []string
		if canon, ok := Lookup(criterion); ok {
			sections = canon.Sections
			seeds = canon.Seeds
		} else {
			sections = []string{criterion}
		}

		prelims = append(prelims, prelim{
			criterion: criterion,
			weight:    weight,
			raw:       line,
			sections:  sections,
			keywords:  sortedSet(append(cleanTokens(line), seeds...)),
		})
	}

	total := 0.0
	for _, p := range prelims {
		total += p.weight
	}
	if total == 0 {
		total = 1.0
	}

	// Merge duplicate criteria in first-seen order.
	merged := make(map[string]*Item)
	var order []string
	for _, p := range prelims {
		w := p.weight / total
		if it, ok := merged[p.criterion]; ok {
			it.Weight += w
			it.RawText += "\n" + p.raw
			it.Keywords = sortedSet(append(it.Keywords, p.keywords...))
			continue
		}
		merged[p.criterion] = &Item{
			Criterion: p.criterion,
			Weight:    w,
			Sections:  p.sections,
			RawText:   p.raw,
			Keywords:  p.keywords,
		}
		order = append(order, p.criterion)
	}

	total = 0.0
	for _, name := range order {
		total += merged[name].Weight
	}
	if total == 0 {
		total = 1.0
	}

	items := make([]Item, 0, len(order))
	for _, name := range order {
		it := *merged[name]
		it.Weight /= total
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Weight > items[j].Weight
	})

	return items
}

// classify maps a short label onto the canonical criterion whose seeds (or
// name) it resembles most. Score ties are broken by how many of a criterion's
// terms reach the top score, then by taxonomy order, so "Community Benefit"
// beats "Outcomes" for a label containing both "community" and "benefit".
// Labels matching nothing become ad hoc criteria named by the title-cased
// label.
func (b *Builder) classify(label string) string {
	labelLower := strings.ToLower(label)

	bestName := ""
	bestScore := 0
	bestHits := 0
	for _, canon := range Canon {
		score := 0
		hits := 0
		for _, term := range append(append([]string{}, canon.Seeds...), strings.ToLower(canon.Name)) {
			s := 0
			if b.sim != nil {
				s = b.sim(labelLower, term)
			} else if strings.Contains(labelLower, term) {
				s = 100
			}
			switch {
			case s > score:
				score = s
				hits = 1
			case s == score && s > 0:
				hits++
			}
		}
		if score > bestScore || (score == bestScore && hits > bestHits) {
			bestName = canon.Name
			bestScore = score
			bestHits = hits
		}
	}

	if bestName == "" {
		return titleCaser.String(strings.TrimSpace(label))
	}
	return bestName
}

// cleanTokens extracts lowercase alphabetic tokens (internal hyphens allowed,
// length >= 3) that are not stopwords.
func cleanTokens(line string) []string {
	var tokens []string
	for _, w := range tokenRe.FindAllString(line, -1) {
		w = strings.ToLower(w)
		if _, stop := stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func sortedSet(words []string) []string {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func parseDigits(s string) float64 {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1.0
	}
	return float64(n)
}
