package reduce

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrialRNG_Streams(t *testing.T) {
	base := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	order := func(seed int64, i int) []int {
		a := slices.Clone(base)
		shuffle(a, trialRNG(seed, i))
		return a
	}

	assert.Equal(t, order(5, 2), order(5, 2))
	assert.Equal(t, order(0, 3), order(defaultRNGSeed, 3), "seed 0 selects the default")
	assert.NotEqual(t, deriveSeed(5, 0), deriveSeed(5, 1))

	got := order(5, 1)
	slices.Sort(got)
	assert.Equal(t, base, got, "shuffle permutes")
}

func TestRank(t *testing.T) {
	rs := []Result{{Trial: 0, Score: 3}, {Trial: 1, Score: 1}, {Trial: 2, Score: 3}, {Trial: 3, Score: 1}}
	got := rank(slices.Clone(rs), 0)
	var trials []int
	for _, r := range got {
		trials = append(trials, r.Trial)
	}
	assert.Equal(t, []int{1, 3, 0, 2}, trials, "ties keep trial order")
	assert.Len(t, rank(slices.Clone(rs), 2), 2)
	assert.Len(t, rank(slices.Clone(rs), 9), 4)
}
