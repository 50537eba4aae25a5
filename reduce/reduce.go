package reduce

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilereduce/check"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/repair"
	"github.com/katalvlaran/tilereduce/tileset"
)

// ReduceTiles searches for tile merges of ts that preserve the requested
// properties and returns the ranked trial results.
func ReduceTiles(ctx context.Context, ts *tileset.TileSet, opts ...Option) ([]Result, error) {
	return run(ctx, KindTiles, ts, opts)
}

// ReduceEnds searches for glue merges of ts that preserve the requested
// properties and returns the ranked trial results.
func ReduceEnds(ctx context.Context, ts *tileset.TileSet, opts ...Option) ([]Result, error) {
	return run(ctx, KindEnds, ts, opts)
}

func run(ctx context.Context, kind Kind, ts *tileset.TileSet, opts []Option) ([]Result, error) {
	if ts == nil {
		return nil, ErrNilTileSet
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	checks, err := o.validate()
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "reduce.Run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("kind", kind.String()),
			attribute.String("preserve", checks.String()),
			attribute.Int("tries", o.Tries),
			attribute.Int("threads", o.Threads),
		),
	)
	defer span.End()

	results, err := runTrials(ctx, kind, ts, o, checks, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(results) > 0 {
		span.SetAttributes(attribute.Int("best_score", results[0].Score))
	}

	return results, nil
}

func runTrials(ctx context.Context, kind Kind, ts *tileset.TileSet, o Options, checks check.Checks, runID string) ([]Result, error) {
	gt, ft, err := facet.FromTileSet(ts, o.Tau)
	if err != nil {
		return nil, err
	}
	init := gt.Identity()
	if o.Init != nil {
		if len(o.Init) != gt.Len() {
			return nil, fmt.Errorf("%w: initial map has %d entries, %d glues", ErrOptionViolation, len(o.Init), gt.Len())
		}
		if err := o.Init.Validate(gt.Complements()); err != nil {
			return nil, fmt.Errorf("%w: initial map: %w", ErrOptionViolation, err)
		}
		init = o.Init.Clone()
	}
	suite, err := check.NewSuite(ft, gt, checks, o.LatticeDepth)
	if err != nil {
		return nil, err
	}

	r := &runner{
		kind:   kind,
		gt:     gt,
		ft:     ft,
		suite:  suite,
		fixer:  repair.NewFixer(suite, o.MaxChain),
		init:   init,
		seed:   o.Seed,
		key:    o.Key,
		logger: o.Logger.With("run_id", runID, "kind", kind.String()),
	}
	if kind == KindEnds {
		r.cands = gluePairs(gt)
	} else {
		r.cands = tilePairs(ft)
	}

	results := make([]Result, o.Tries)
	work := func(ctx context.Context, i int) error {
		res, err := r.trial(ctx, i)
		if err != nil {
			return err
		}
		results[i] = res

		return nil
	}

	pool := o.Pool
	if pool == nil && o.Threads > 1 {
		pool, err = NewPool(o.Threads)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
	}
	if pool != nil {
		err = pool.Run(ctx, o.Tries, work)
	} else {
		for i := 0; i < o.Tries && err == nil; i++ {
			err = work(ctx, i)
		}
	}
	if err != nil {
		return nil, err
	}

	results = rank(results, o.Best)
	for i := range results {
		if !o.ReturnTileSet {
			break
		}
		applied, err := Apply(ts, gt, results[i].Map)
		if err != nil {
			return nil, err
		}
		Annotate(applied, Provenance{
			RunID:    runID,
			Kind:     kind.String(),
			Trial:    results[i].Trial,
			Preserve: checks.Names(),
			Seed:     o.Seed,
			Score:    results[i].Score,
			Classes:  results[i].Map.Classes(),
		})
		results[i].TileSet = applied
	}

	r.logger.InfoContext(ctx, "reduction done",
		"tries", o.Tries,
		"candidates", len(r.cands),
		"glues", gt.Len(),
		"best_score", results[0].Score,
	)

	return results, nil
}

// rank sorts results ascending by score, ties in trial order, and keeps the
// first best (all when best is 0).
func rank(rs []Result, best int) []Result {
	slices.SortStableFunc(rs, func(a, b Result) int { return a.Score - b.Score })
	if best > 0 && best < len(rs) {
		rs = rs[:best]
	}

	return rs
}
