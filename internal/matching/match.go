package matching

import "unicode"

// Weights holds the scoring policy. Penalties are negative values.
type Weights struct {
	// AdjacencyBonus is added when the previous document rune was matched.
	AdjacencyBonus int

	// SeparatorBonus is added when the previous rune was '_' or ' ', or
	// the match is the first rune of the document.
	SeparatorBonus int

	// CamelBonus is added on a lowercase to uppercase transition.
	CamelBonus int

	// LeadingLetterPenalty is charged per rune skipped before the first match.
	LeadingLetterPenalty int

	// MaxLeadingLetterPenalty is the floor of the total leading penalty.
	MaxLeadingLetterPenalty int

	// UnmatchedLetterPenalty is charged for every rune that is consumed
	// without contributing to the match.
	UnmatchedLetterPenalty int
}

// DefaultWeights returns the stock scoring policy.
func DefaultWeights() Weights {
	return Weights{
		AdjacencyBonus:          5,
		SeparatorBonus:          10,
		CamelBonus:              10,
		LeadingLetterPenalty:    -3,
		MaxLeadingLetterPenalty: -9,
		UnmatchedLetterPenalty:  -1,
	}
}

// Result is the outcome of a single Match call.
type Result struct {
	Matched bool
	Score   int

	// Indices are the rune offsets in the document consumed by the match,
	// one per pattern rune, in increasing order.
	Indices []int
}

// Matcher scores documents with a fixed set of weights.
type Matcher struct {
	weights Weights
}

// NewMatcher creates a Matcher using w.
func NewMatcher(w Weights) *Matcher {
	return &Matcher{weights: w}
}

// Weights returns the policy the matcher was created with.
func (m *Matcher) Weights() Weights {
	return m.weights
}

var defaultMatcher = NewMatcher(DefaultWeights())

// Match scores document against pattern using DefaultWeights.
func Match(pattern, document string) Result {
	return defaultMatcher.Match(pattern, document)
}

// MatchSimple reports whether every rune of pattern occurs in document in
// order, ignoring case. Empty input never matches.
func MatchSimple(pattern, document string) bool {
	if pattern == "" || document == "" {
		return false
	}

	doc := []rune(document)
	j := 0
	for _, pr := range pattern {
		want := unicode.ToLower(pr)
		for {
			if j >= len(doc) {
				return false
			}
			got := unicode.ToLower(doc[j])
			j++
			if got == want {
				break
			}
		}
	}
	return true
}

// MatchSimple is the unscored subsequence test. Weights do not affect it.
func (m *Matcher) MatchSimple(pattern, document string) bool {
	return MatchSimple(pattern, document)
}

// candidate is a document rune provisionally matched to the previous
// pattern rune and not yet added to the result.
type candidate struct {
	ch    rune
	lower rune
	index int
	score int
}

// Match scores document against pattern in one forward scan.
func (m *Matcher) Match(pattern, document string) Result {
	if pattern == "" || document == "" {
		return Result{}
	}
	w := m.weights

	pat := []rune(pattern)
	for i, r := range pat {
		pat[i] = unicode.ToLower(r)
	}
	doc := []rune(document)

	var (
		score         int
		prevMatched   bool
		prevLower     bool
		prevSeparator = true // start of document counts as a separator

		best candidate
		held bool

		indices = make([]int, 0, len(pat))
		patIdx  int
	)

	commit := func() {
		score += best.score
		indices = append(indices, best.index)
		best = candidate{}
		held = false
	}

	for docIdx := 0; docIdx < len(doc) && patIdx < len(pat); docIdx++ {
		ch := doc[docIdx]
		lower := unicode.ToLower(ch)
		want := pat[patIdx]

		nextMatch := lower == want
		rematch := held && best.lower == lower
		patternRepeat := held && best.lower == want

		if held && (nextMatch || patternRepeat) {
			commit()
		}

		if nextMatch || rematch {
			if patIdx == 0 {
				score += max(docIdx*w.LeadingLetterPenalty, w.MaxLeadingLetterPenalty)
			}

			fresh := 0
			if prevMatched {
				fresh += w.AdjacencyBonus
			}
			if prevSeparator {
				fresh += w.SeparatorBonus
			}
			if prevLower && isUpper(ch) {
				fresh += w.CamelBonus
			}

			switch {
			case !held:
				best = candidate{ch: ch, lower: lower, index: docIdx, score: fresh}
				held = true
			case fresh >= best.score:
				// the previously held occurrence is abandoned
				score += w.UnmatchedLetterPenalty
				best = candidate{ch: ch, lower: lower, index: docIdx, score: fresh}
			}
			prevMatched = true

			if nextMatch {
				patIdx++
			}
		} else {
			score += w.UnmatchedLetterPenalty
			prevMatched = false
		}

		prevLower = isLower(ch)
		prevSeparator = isSeparator(ch)
	}

	if held {
		commit()
	}

	return Result{
		Matched: patIdx == len(pat),
		Score:   score,
		Indices: indices,
	}
}

func isSeparator(r rune) bool {
	return r == '_' || r == ' '
}

// isLower and isUpper only hold for runes that have a distinct other case.
func isLower(r rune) bool {
	return unicode.ToLower(r) == r && unicode.ToUpper(r) != r
}

func isUpper(r rune) bool {
	return unicode.ToUpper(r) == r && unicode.ToLower(r) != r
}
