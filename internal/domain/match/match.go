// Package match provides strain name normalization and fuzzy resolution
// against a canonical name set.
package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum 0-100 score a match must reach to be accepted.
const DefaultThreshold = 85

// Normalize lower-cases and trims a strain name for canonical lookup.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAll normalizes every entry, dropping values that normalize to empty.
func NormalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Ratio scores the edit-distance similarity of two strings in [0,100].
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0
	}
	return int(float64(longest-dist)/float64(longest)*100 + 0.5)
}

// TokenSortRatio scores similarity after sorting whitespace-separated tokens,
// so word order does not affect the result ("dream blue" matches "blue dream").
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Resolver fuzzy-matches free-text strain names against a candidate set.
// The zero threshold falls back to DefaultThreshold.
type Resolver struct {
	threshold int
}

// NewResolver creates a resolver with the given acceptance threshold (0-100).
func NewResolver(threshold int) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{threshold: threshold}
}

// Resolve normalizes query and returns the best-scoring candidate, its score,
// and whether the score reached the threshold.
//
// The function is pure: for a fixed candidate order it always returns the same
// result. Ties keep the earliest candidate, so callers must pass candidates in
// a deterministic order (catalog snapshots keep names sorted).
func (r *Resolver) Resolve(query string, candidates []string) (string, int, bool) {
	q := Normalize(query)
	if q == "" || len(candidates) == 0 {
		return "", 0, false
	}

	best := ""
	bestScore := -1
	for _, c := range candidates {
		score := Ratio(q, c)
		if ts := TokenSortRatio(q, c); ts > score {
			score = ts
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}

	if bestScore < r.threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}
