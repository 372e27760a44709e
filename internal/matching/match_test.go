package matching

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEmptyInput(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		document string
	}{
		{"both empty", "", ""},
		{"empty pattern", "", "Item"},
		{"empty document", "itm", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Match(tt.pattern, tt.document)
			assert.False(t, res.Matched)
			assert.Zero(t, res.Score)
			assert.Empty(t, res.Indices)
			assert.False(t, MatchSimple(tt.pattern, tt.document))
		})
	}
}

func TestMatchItem(t *testing.T) {
	res := Match("itm", "Item")

	require.True(t, res.Matched)
	assert.Equal(t, []int{0, 1, 3}, res.Indices)
	// I: +10 separator (start), t: +5 adjacent, e: -1 unmatched, m: 0
	assert.Equal(t, 14, res.Score)
}

func TestMatchScores(t *testing.T) {
	tests := []struct {
		pattern  string
		document string
		score    int
		indices  []int
	}{
		{"ab", "xaxb", -5, []int{1, 3}},
		{"ab", "xabx", 1, []int{1, 2}},
		{"b", "a_b", 2, []int{2}},
		{"b", "aab", -8, []int{2}},
		{"b", "aB", 6, []int{1}},
		{"b", "ab", -4, []int{1}},
		{"aa", "aa", 15, []int{0, 1}},
		{"z", "abcdefz", -15, []int{6}},
		{"é", "CAFÉ", -12, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.document, func(t *testing.T) {
			res := Match(tt.pattern, tt.document)
			require.True(t, res.Matched)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.indices, res.Indices)
		})
	}
}

func TestMatchRankingProperties(t *testing.T) {
	assert.Less(t, Match("ab", "xaxb").Score, Match("ab", "xabx").Score, "contiguous beats scattered")
	assert.Greater(t, Match("b", "a_b").Score, Match("b", "aab").Score, "separator boundary")
	assert.Greater(t, Match("b", "a b").Score, Match("b", "aab").Score, "space boundary")
	assert.Greater(t, Match("b", "aB").Score, Match("b", "ab").Score, "camel boundary")
}

func TestMatchCaseInsensitive(t *testing.T) {
	assert.True(t, Match("abc", "ABC").Matched)
	assert.True(t, Match("ABC", "abc").Matched)
	assert.True(t, MatchSimple("ABC", "aXbXc"))
}

func TestMatchNoMatch(t *testing.T) {
	res := Match("xyz", "Item")
	assert.False(t, res.Matched)
	assert.False(t, MatchSimple("xyz", "Item"))

	// out of order
	assert.False(t, Match("mti", "Item").Matched)
	assert.False(t, MatchSimple("mti", "Item"))

	// pattern longer than document
	assert.False(t, Match("items", "Item").Matched)
}

func TestMatchRematchPrefersLaterOnTie(t *testing.T) {
	// both a's sit on a separator boundary; the later one wins the tie and
	// the earlier one is charged as skipped
	res := Match("ab", "a_ab")
	require.True(t, res.Matched)
	assert.Equal(t, []int{2, 3}, res.Indices)
	assert.Equal(t, 13, res.Score)
}

func TestMatchRematchKeepsBetterCandidate(t *testing.T) {
	// the leading A scores the start bonus; the adjacent a is worse and is
	// passed over without a penalty
	res := Match("ab", "Aab")
	require.True(t, res.Matched)
	assert.Equal(t, []int{0, 2}, res.Indices)
	assert.Equal(t, 15, res.Score)
}

func TestMatchLeadingPenaltyClamped(t *testing.T) {
	near := Match("z", "aaz")
	far := Match("z", strings.Repeat("a", 20)+"z")
	require.True(t, near.Matched)
	require.True(t, far.Matched)

	// -2 unmatched, -6 leading
	assert.Equal(t, -8, near.Score)
	// -20 unmatched, leading clamped at -9
	assert.Equal(t, -29, far.Score)
}

func TestMatchStopsAfterPatternConsumed(t *testing.T) {
	short := Match("ab", "ab")
	long := Match("ab", "ab"+strings.Repeat("x", 10))
	assert.Equal(t, short.Score, long.Score)
	assert.Equal(t, short.Indices, long.Indices)
}

func TestMatchCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.CamelBonus = 100
	m := NewMatcher(w)

	assert.Equal(t, w, m.Weights())
	assert.Equal(t, 96, m.Match("b", "aB").Score)
	assert.Equal(t, Match("b", "ab").Score, m.Match("b", "ab").Score)
}

func TestMatchDeterministic(t *testing.T) {
	first := Match("bst", "Bustling Fungus")
	for range 10 {
		assert.Equal(t, first, Match("bst", "Bustling Fungus"))
	}
}

func TestMatchNeverPanics(t *testing.T) {
	inputs := []string{"", "a", "\x00", "ǅ", "İstanbul", "ß", "日本語", "\xff\xfe", "a_ _b", "AAaaAA"}
	for _, p := range inputs {
		for _, d := range inputs {
			assert.NotPanics(t, func() {
				res := Match(p, d)
				_ = MatchSimple(p, d)
				if res.Matched {
					assert.Len(t, res.Indices, len([]rune(p)))
				}
			})
		}
	}
}

func randomString(r *rand.Rand, alphabet string, maxLen int) string {
	n := r.IntN(maxLen + 1)
	var sb strings.Builder
	for range n {
		sb.WriteByte(alphabet[r.IntN(len(alphabet))])
	}
	return sb.String()
}

func TestMatchInvariantsRandomized(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	const alphabet = "abcABC_ xyz"

	for range 5000 {
		p := randomString(r, alphabet, 4)
		d := randomString(r, alphabet, 12)

		res := Match(p, d)
		simple := MatchSimple(p, d)
		require.Equal(t, simple, res.Matched, "pattern %q document %q", p, d)

		if p == "" || d == "" {
			require.Equal(t, Result{}, res)
			continue
		}
		if !res.Matched {
			continue
		}

		require.Len(t, res.Indices, len([]rune(p)), "pattern %q document %q", p, d)
		docRunes := []rune(d)
		patRunes := []rune(strings.ToLower(p))
		for i, idx := range res.Indices {
			if i > 0 {
				require.Greater(t, idx, res.Indices[i-1], "pattern %q document %q", p, d)
			}
			require.Equal(t, patRunes[i], []rune(strings.ToLower(string(docRunes[idx])))[0])
		}
	}
}

func TestMatchSimpleAgreesWithSahilm(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	const alphabet = "abcdeABCDE_01"

	for range 3000 {
		p := randomString(r, alphabet, 5)
		d := randomString(r, alphabet, 15)
		if p == "" || d == "" {
			continue
		}

		want := len(fuzzy.Find(p, []string{d})) == 1
		assert.Equal(t, want, MatchSimple(p, d), "pattern %q document %q", p, d)
	}
}
