// Package matching implements the fuzzy matcher used to rank record names
// against partial user input.
//
// Two entry points are provided:
//
//   - MatchSimple reports whether a pattern is a case-insensitive ordered
//     subsequence of a document. It is cheap and unscored.
//   - Match performs the same subsequence test in a single forward scan
//     while accumulating a relevance score and the rune positions of the
//     document that were consumed by the match.
//
// # Scoring
//
// Every matched rune earns bonuses for following another match
// (adjacency), for following a separator or starting the document, and for
// sitting on a lower-to-upper case boundary. Runes skipped before the first
// match cost a clamped leading penalty and every other consumed rune that
// does not end up in the match costs the unmatched penalty. The weights are
// collected in Weights and may be tuned through NewMatcher.
//
// When several document runes could satisfy the same pattern rune, the
// matcher holds the best one seen so far and only commits it once the scan
// moves on to the next pattern rune. Equal scores prefer the later
// occurrence. Already consumed runes are never rescanned.
//
// # Usage
//
//	res := matching.Match("itm", "Item")
//	if res.Matched {
//	    fmt.Println(res.Score, res.Indices)
//	}
//
// To rank many documents against one pattern:
//
//	m := matching.NewMatcher(matching.DefaultWeights())
//	ranked, err := m.Rank(ctx, "bust", names, 8)
//
// # Thread Safety
//
// Match and MatchSimple are pure. A Matcher is immutable after NewMatcher
// returns and may be shared between goroutines.
package matching
