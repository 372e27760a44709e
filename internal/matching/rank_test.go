package matching

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersBestFirst(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	docs := []string{"xaxb", "Soldier's Syringe", "xabx", "nothing", "ab"}

	ranked, err := m.Rank(context.Background(), "ab", docs, 4)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "ab", ranked[0].Document)
	assert.Equal(t, 4, ranked[0].Index)
	assert.Equal(t, "xabx", ranked[1].Document)
	assert.Equal(t, "xaxb", ranked[2].Document)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankMatchesSequentialScoring(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	docs := make([]string, 500)
	for i := range docs {
		docs[i] = fmt.Sprintf("Item_%03d BustlingFungus", i)
	}
	docs[42] = "Bustling Fungus"

	for _, workers := range []int{0, 1, 3, 16, 1000} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			ranked, err := m.Rank(context.Background(), "bf", docs, workers)
			require.NoError(t, err)
			require.Len(t, ranked, len(docs))

			var want []Ranked
			for i, d := range docs {
				if r := m.Match("bf", d); r.Matched {
					want = append(want, Ranked{Index: i, Document: d, Result: r})
				}
			}
			sort.SliceStable(want, func(i, j int) bool { return want[i].Score > want[j].Score })

			assert.Equal(t, want, ranked)
			assert.Equal(t, 42, ranked[0].Index)
		})
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	ranked, err := m.Rank(context.Background(), "a", []string{"ab", "ac", "ad"}, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, []int{0, 1, 2}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index})
}

func TestRankEmpty(t *testing.T) {
	m := NewMatcher(DefaultWeights())

	ranked, err := m.Rank(context.Background(), "", []string{"a"}, 2)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	ranked, err = m.Rank(context.Background(), "a", nil, 2)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankCancelled(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Rank(ctx, "a", []string{"a", "b", "c"}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
