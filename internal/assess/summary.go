package assess

import "encoding/json"

// SummaryRow is one line of the formatted assessment breakdown, in rubric
// (descending weight) order.
type SummaryRow struct {
	Criterion string
	Weight    float64
	Coverage  float64
	Weighted  float64
	Hints     []string
}

// Rows flattens the result for rendering and export.
func (r *Result) Rows() []SummaryRow {
	rows := make([]SummaryRow, 0, len(r.Order))
	for _, name := range r.Order {
		entry := r.Entries[name]
		rows = append(rows, SummaryRow{
			Criterion: name,
			Weight:    entry.Weight,
			Coverage:  entry.Coverage,
			Weighted:  entry.Weighted,
			Hints:     entry.Hints,
		})
	}
	return rows
}

// MarshalJSON serializes the result as a mapping from criterion name to its
// entry, with the overall score under the reserved "__overall__" key.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Entries)+1)
	for name, entry := range r.Entries {
		out[name] = entry
	}
	out[OverallKey] = map[string]float64{"score": r.Overall}
	return json.Marshal(out)
}
