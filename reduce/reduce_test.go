// Package reduce_test exercises the reduction drivers end to end on the
// shared fixtures: option validation, preserved properties, ranking and
// reproducibility under a fixed seed.
package reduce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/internal/fixtures"
	"github.com/katalvlaran/tilereduce/reduce"
)

func TestReduceEnds_PairCollapses(t *testing.T) {
	ts := fixtures.Pair()
	gt, err := glue.FromTileSet(ts)
	require.NoError(t, err)

	res, err := reduce.ReduceEnds(context.Background(), ts,
		reduce.WithPreserve("s1"), reduce.WithTries(5), reduce.WithBest(0))
	require.NoError(t, err)
	require.Len(t, res, 5)

	for _, r := range res {
		assert.Equal(t, 6, r.Map.Classes(), "trial %d", r.Trial)
		assert.Equal(t, 3, r.Map.Pairs())
		assert.Equal(t, 6, r.Score)
		a, b := gt.MustID("a"), gt.MustID("b")
		assert.True(t, r.Map.Same(a, b) || r.Map.Same(a, gt.Complement(b)))
		require.NoError(t, r.Map.Validate(gt.Complements()))
		assert.Equal(t, 1, r.Stats.Accepted+r.Stats.Repaired)
		assert.Equal(t, 1, r.Stats.Unchanged, "the complement pair follows the first merge")
		assert.Equal(t, r.Stats.Candidates, r.Stats.Attempted)
	}
}

// Every result keeps complement pairs consistent and never merges glues of
// different strength, whatever order the trial visited candidates in.
func TestReduceEnds_MapsStayConsistent(t *testing.T) {
	ts := fixtures.Sensitivity()
	gt, err := glue.FromTileSet(ts)
	require.NoError(t, err)

	res, err := reduce.ReduceEnds(context.Background(), ts,
		reduce.WithPreserve("s1", "s2"), reduce.WithTries(4), reduce.WithBest(0), reduce.WithSeed(7))
	require.NoError(t, err)

	for _, r := range res {
		require.NoError(t, r.Map.Validate(gt.Complements()))
		for g, rep := range r.Map {
			assert.Equal(t, gt.Strength(rep), gt.Strength(g))
			assert.Equal(t, gt.Class(rep), gt.Class(g))
		}
		assert.LessOrEqual(t, r.Map.Classes(), gt.Len())
	}
}

func TestReduce_LatticeDefectNeverAccepted(t *testing.T) {
	for _, used := range []bool{false, true} {
		ts := fixtures.Lattice(used)
		gt, err := glue.FromTileSet(ts)
		require.NoError(t, err)
		x, y := gt.MustID("x"), gt.MustID("y")

		ends, err := reduce.ReduceEnds(context.Background(), ts,
			reduce.WithPreserve("ld"), reduce.WithTries(6), reduce.WithBest(0))
		require.NoError(t, err)
		for _, r := range ends {
			assert.False(t, r.Map.Same(x, y), "ends, used=%v, trial %d", used, r.Trial)
		}

		tiles, err := reduce.ReduceTiles(context.Background(), ts,
			reduce.WithPreserve("ld"), reduce.WithTries(3), reduce.WithBest(0))
		require.NoError(t, err)
		for _, r := range tiles {
			assert.False(t, r.Map.Same(x, y), "tiles, used=%v, trial %d", used, r.Trial)
		}
	}
}

func TestReduceTiles_Determinism(t *testing.T) {
	ts := fixtures.Determinism()
	gt, err := glue.FromTileSet(ts)
	require.NoError(t, err)

	res, err := reduce.ReduceTiles(context.Background(), ts, reduce.WithPreserve("s1"), reduce.WithTries(3))
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NoError(t, res[0].Map.Validate(gt.Complements()))
	assert.LessOrEqual(t, res[0].Score, gt.Len())
	st := res[0].Stats
	assert.Positive(t, st.Candidates)
	assert.Equal(t, st.Candidates, st.Attempted)
	for _, c := range st.Chains {
		assert.NotEmpty(t, c.Pairs)
	}
}

func TestReduce_SeedReproducible(t *testing.T) {
	run := func(threads int) []reduce.Result {
		res, err := reduce.ReduceEnds(context.Background(), fixtures.Lattice(true),
			reduce.WithPreserve("s1", "ld"), reduce.WithTries(6), reduce.WithBest(0),
			reduce.WithSeed(42), reduce.WithThreads(threads))
		require.NoError(t, err)

		return res
	}
	seq, par := run(1), run(4)
	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].Trial, par[i].Trial)
		assert.True(t, seq[i].Map.Equal(par[i].Map), "trial %d", seq[i].Trial)
	}
}

func TestReduce_RankedByKey(t *testing.T) {
	// Prefer maps with many classes: ranking is ascending, so negate.
	res, err := reduce.ReduceEnds(context.Background(), fixtures.Lattice(false),
		reduce.WithPreserve("s1"), reduce.WithTries(5), reduce.WithBest(2),
		reduce.WithKey(func(m equiv.Map) int { return -m.Classes() }))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.LessOrEqual(t, res[0].Score, res[1].Score)
	assert.Equal(t, -res[0].Map.Classes(), res[0].Score)
}

func TestReduce_InitEquiv(t *testing.T) {
	ts := fixtures.Pair()
	gt, err := glue.FromTileSet(ts)
	require.NoError(t, err)
	init, err := gt.MergeNames(gt.Identity(), "a", "b", false)
	require.NoError(t, err)

	res, err := reduce.ReduceEnds(context.Background(), ts, reduce.WithPreserve("s1"), reduce.WithInitEquiv(init), reduce.WithTries(1))
	require.NoError(t, err)
	assert.True(t, res[0].Map.Equal(init))
	assert.Zero(t, res[0].Stats.Accepted)

	_, err = reduce.ReduceEnds(context.Background(), ts, reduce.WithInitEquiv(equiv.Identity(3)))
	assert.ErrorIs(t, err, reduce.ErrOptionViolation)

	bad := gt.Identity()
	bad[1] = 0
	_, err = reduce.ReduceEnds(context.Background(), ts, reduce.WithInitEquiv(bad))
	assert.ErrorIs(t, err, reduce.ErrOptionViolation)
	assert.ErrorIs(t, err, equiv.ErrSelfComplementary)
}

func TestReduce_OptionViolations(t *testing.T) {
	ctx := context.Background()
	ts := fixtures.Pair()
	for name, opt := range map[string]reduce.Option{
		"tries":    reduce.WithTries(0),
		"threads":  reduce.WithThreads(0),
		"best":     reduce.WithBest(-1),
		"tau":      reduce.WithTau(0),
		"depth":    reduce.WithLatticeDepth(1),
		"chain":    reduce.WithMaxChain(0),
		"preserve": reduce.WithPreserve("s3"),
	} {
		_, err := reduce.ReduceTiles(ctx, ts, opt)
		assert.ErrorIs(t, err, reduce.ErrOptionViolation, name)
	}

	_, err := reduce.ReduceEnds(ctx, nil)
	assert.ErrorIs(t, err, reduce.ErrNilTileSet)
}

func TestReduce_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reduce.ReduceEnds(ctx, fixtures.Lattice(true), reduce.WithPreserve("s1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReduce_ReturnTileSet(t *testing.T) {
	ts := fixtures.Duplicates()
	res, err := reduce.ReduceEnds(context.Background(), ts,
		reduce.WithPreserve("s1"), reduce.WithTries(2), reduce.WithSeed(3), reduce.WithReturnTileSet())
	require.NoError(t, err)
	require.Len(t, res, 1)

	out := res[0].TileSet
	require.NotNil(t, out)
	prov, ok := out.Info[reduce.InfoReductions].([]any)
	require.True(t, ok)
	require.Len(t, prov, 1)
	p := prov[0].(reduce.Provenance)
	assert.Equal(t, "ends", p.Kind)
	assert.Equal(t, int64(3), p.Seed)
	assert.Equal(t, []string{"s1"}, p.Preserve)
	assert.Equal(t, res[0].Map.Classes(), p.Classes)
	assert.NotEmpty(t, p.RunID)

	assert.Nil(t, ts.Info, "input untouched")
}
