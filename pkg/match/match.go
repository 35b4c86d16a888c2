// Package match provides similarity-ratio string matching for resolving
// company names against external registries.
package match

import (
	"sort"
	"strings"
)

// Ratio returns a similarity score in [0, 1] between two strings: one minus
// the insert/delete edit distance normalized by the combined length. A
// substitution counts as a delete plus an insert, which keeps abbreviated
// forms ("Acme Corp" vs "Acme Corporation") above typical cutoffs.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la+lb == 0 {
		return 1
	}
	return 1 - float64(indelDistance(a, b))/float64(la+lb)
}

// Candidate is one match with its score.
type Candidate struct {
	Value string
	Score float64
}

// CloseMatches returns up to n candidates whose similarity to target is at
// least cutoff, best first. Comparison is case-insensitive.
func CloseMatches(target string, candidates []string, n int, cutoff float64) []Candidate {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	lowered := strings.ToLower(strings.TrimSpace(target))
	scored := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		score := Ratio(lowered, strings.ToLower(strings.TrimSpace(c)))
		if score >= cutoff {
			scored = append(scored, Candidate{Value: c, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// Best returns the single closest candidate at or above cutoff.
func Best(target string, candidates []string, cutoff float64) (Candidate, bool) {
	matches := CloseMatches(target, candidates, 1, cutoff)
	if len(matches) == 0 {
		return Candidate{}, false
	}
	return matches[0], true
}

// indelDistance computes the edit distance between two strings where only
// inserts and deletes are allowed.
func indelDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = min(prev[j], curr[j-1]) + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
