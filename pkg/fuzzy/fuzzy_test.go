package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataplot/palette/pkg/fuzzy"
)

func TestRank(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		query    string
		items    []string
		expected []fuzzy.Match
	}{
		"earlier and tighter matches score higher": {
			query: "foo",
			items: []string{"barfoo", "foobar", "xfoo"},
			expected: []fuzzy.Match{
				{Str: "foobar", Score: 25},   // Match at 0, length 3.
				{Str: "xfoo", Score: 12.5},   // Match at 1, length 3.
				{Str: "barfoo", Score: 6.25}, // Match at 3, length 3.
			},
		},
		"non-matching items score zero": {
			query: "foo",
			items: []string{"xyz", "foobar"},
			expected: []fuzzy.Match{
				{Str: "foobar", Score: 25},
				{Str: "xyz", Score: 0},
			},
		},
		"subsequence with gaps scores on total span": {
			query: "fb",
			items: []string{"foobar"},
			expected: []fuzzy.Match{
				{Str: "foobar", Score: 20}, // Match spans [0, 4).
			},
		},
		"case insensitive": {
			query: "FOO",
			items: []string{"foobar"},
			expected: []fuzzy.Match{
				{Str: "foobar", Score: 25},
			},
		},
		"regex metacharacters are literal": {
			query: "a.b",
			items: []string{"axb", "a.b"},
			expected: []fuzzy.Match{
				{Str: "a.b", Score: 25},
				{Str: "axb", Score: 0},
			},
		},
		"empty query matches everything equally": {
			query: "",
			items: []string{"beta", "alpha"},
			expected: []fuzzy.Match{
				{Str: "beta", Score: 100},
				{Str: "alpha", Score: 100},
			},
		},
		"equal scores keep input order": {
			query: "ab",
			items: []string{"abx", "aby"},
			expected: []fuzzy.Match{
				{Str: "abx", Score: 100.0 / 3.0},
				{Str: "aby", Score: 100.0 / 3.0},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := fuzzy.Rank(tc.query, tc.items)
			require.Len(t, result, len(tc.expected))

			for i, want := range tc.expected {
				assert.Equal(t, want.Str, result[i].Str, "rank %d", i)
				assert.InDelta(t, want.Score, result[i].Score, 1e-9, "score of %q", want.Str)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		query    string
		items    []string
		expected []string
	}{
		"excludes non-matches": {
			query:    "foo",
			items:    []string{"xyz", "barfoo", "foobar"},
			expected: []string{"foobar", "barfoo"},
		},
		"empty query returns all items in order": {
			query:    "",
			items:    []string{"zeta", "alpha", "mid"},
			expected: []string{"zeta", "alpha", "mid"},
		},
		"no matches yields empty": {
			query:    "q",
			items:    []string{"alpha", "beta"},
			expected: []string{},
		},
		"empty items": {
			query:    "foo",
			items:    []string{},
			expected: []string{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, fuzzy.Filter(tc.query, tc.items))
		})
	}
}
