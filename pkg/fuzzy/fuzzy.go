// Package fuzzy scores and ranks strings against a query for palette
// filtering.
//
// The query's characters must appear in order as a subsequence of the
// candidate, case-insensitively, with any run of characters between them. A
// candidate is scored on the first (leftmost) match:
//
//	score = 100 / ((start + 1) * (length + 1))
//
// so earlier and tighter matches score higher. The +1 offsets avoid division
// by zero when a match starts at position 0 or has length 0. An empty query
// matches every candidate at position 0 with zero length. The formula is a
// contract, not an implementation detail: it determines the ranking order
// observed by users.
package fuzzy

import (
	"regexp"
	"sort"
	"strings"
)

// Match pairs a candidate string with its score.
type Match struct {
	Str   string
	Score float64
}

// Rank scores every item against the query and returns all of them in
// descending score order. Items with equal scores keep their input order.
func Rank(query string, items []string) []Match {
	re := compile(query)

	ranked := make([]Match, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, Match{
			Str:   item,
			Score: score(re, item),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// Filter returns only the items that match the query (score > 0), best first.
func Filter(query string, items []string) []string {
	filtered := make([]string, 0, len(items))
	for _, m := range Rank(query, items) {
		if m.Score > 0 {
			filtered = append(filtered, m.Str)
		}
	}

	return filtered
}

// compile builds the subsequence pattern: each query character literally, in
// order, separated by lazy gaps.
func compile(query string) *regexp.Regexp {
	parts := make([]string, 0, len(query))
	for _, r := range query {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}

	return regexp.MustCompile("(?i)" + strings.Join(parts, ".*?"))
}

func score(re *regexp.Regexp, s string) float64 {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return 0
	}

	start := loc[0] + 1
	length := loc[1] - loc[0] + 1

	return 100.0 / float64(start*length)
}
