package match

import (
	"cmp"
	"slices"
)

const (
	// minScore is the lowest similarity still worth suggesting.
	minScore = 0.5
	// maxSuggestions caps the number of suggestions.
	maxSuggestions = 3
)

type candidate struct {
	name  string
	score float64
}

// Suggest returns up to three names similar to target, best first, ties
// broken by name. target itself is never suggested.
func Suggest(target string, names []string) []string {
	var ranked []candidate

	for _, name := range names {
		if name == target {
			continue
		}

		if s := similarity(target, name); s >= minScore {
			ranked = append(ranked, candidate{name: name, score: s})
		}
	}

	slices.SortFunc(ranked, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(len(ranked), maxSuggestions))
	for _, c := range ranked[:min(len(ranked), maxSuggestions)] {
		out = append(out, c.name)
	}

	return out
}
