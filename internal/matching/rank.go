package matching

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Ranked is a matched document together with its position in the input.
type Ranked struct {
	Index    int
	Document string
	Result
}

// Rank scores every document against pattern and returns the matches sorted
// best first. Ties keep input order. Documents are split into at most
// workers contiguous chunks that are scored concurrently.
func (m *Matcher) Rank(ctx context.Context, pattern string, documents []string, workers int) ([]Ranked, error) {
	if pattern == "" || len(documents) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(documents) {
		workers = len(documents)
	}

	results := make([]Result, len(documents))
	chunk := (len(documents) + workers - 1) / workers

	g, gCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(documents); start += chunk {
		end := min(start+chunk, len(documents))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				// MatchSimple rejects most non-matches before any scoring state is built.
				if !MatchSimple(pattern, documents[i]) {
					continue
				}
				results[i] = m.Match(pattern, documents[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank %q: %w", pattern, err)
	}

	var out []Ranked
	for i, r := range results {
		if !r.Matched {
			continue
		}
		out = append(out, Ranked{Index: i, Document: documents[i], Result: r})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
