// ABOUTME: Levenshtein edit-distance scorer
// ABOUTME: Rune-based dynamic programming with two rolling rows
package fuzzy

// Distance returns the minimum number of single-character insertions,
// deletions, and substitutions needed to transform a into b.
//
// The computation keeps only two rows of the DP table, so auxiliary space
// is O(min(len(a), len(b))). Search calls this once per query term per
// contact name field, so the constant factor matters more than elegance.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Keep the shorter string on the row axis.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
