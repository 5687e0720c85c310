package match

import "sort"

// DefaultMinScore is the minimum similarity for a name to be suggested.
const DefaultMinScore = 0.6

// Suggestion is a candidate name with its similarity to the query.
type Suggestion struct {
	Name  string
	Score float64
}

// Suggest ranks candidates by normalized similarity to name and returns at
// most limit of them scoring at least DefaultMinScore. Ties are broken by name.
func Suggest(name string, candidates []string, limit int) []Suggestion {
	var out []Suggestion

	for _, c := range candidates {
		if s := NameScore(name, c); s >= DefaultMinScore {
			out = append(out, Suggestion{Name: c, Score: s})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Name < out[j].Name
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}
