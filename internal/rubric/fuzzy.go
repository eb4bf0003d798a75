package rubric

import fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

// PartialRatio is the default SimilarityFunc: the best partial-alignment
// ratio between the two strings on a 0..100 scale.
func PartialRatio(a, b string) int {
	return fuzzy.PartialRatio(a, b)
}
