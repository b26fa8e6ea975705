package match

import (
	"strings"
	"unicode"
)

// fold lowercases an identifier and drops underscores, so that "point_id",
// "PointID" and "pointId" compare equal.
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

// editDistance counts the single-rune insertions, deletions and substitutions
// turning a into b.
func editDistance(a, b []rune) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag, row[i] = row[i], next
		}
	}

	return row[len(a)]
}

// similarity scores two identifiers between 0 (nothing shared) and 1 (equal
// once folded).
func similarity(a, b string) float64 {
	ra, rb := []rune(fold(a)), []rune(fold(b))

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(editDistance(ra, rb))/float64(longest)
}
