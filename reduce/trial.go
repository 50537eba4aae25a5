package reduce

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilereduce/check"
	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/repair"
)

// runner holds the read-only state shared by the trials of one run.
type runner struct {
	kind   Kind
	gt     *glue.Table
	ft     *facet.Table
	suite  *check.Suite
	fixer  *repair.Fixer
	cands  []candidate
	init   equiv.Map
	seed   int64
	key    Key
	logger *slog.Logger
}

func (r *runner) merge(m equiv.Map, c candidate) (equiv.Map, error) {
	preserveUse := r.suite.PreserveUse()
	if r.kind == KindEnds {
		return r.gt.Merge(m, c[0], c[1], preserveUse)
	}
	tiles := r.ft.Tiles()

	return facet.MergeTiles(r.gt, m, tiles[c[0]], tiles[c[1]], preserveUse)
}

func (r *runner) names(c candidate) (string, string) {
	if r.kind == KindEnds {
		return r.gt.Name(c[0]), r.gt.Name(c[1])
	}
	tiles := r.ft.Tiles()

	return tiles[c[0]].Name, tiles[c[1]].Name
}

// mergeReason maps a merge error to its Stats reason.
func mergeReason(err error) string {
	switch {
	case errors.Is(err, glue.ErrStrengthMismatch):
		return ReasonStrength
	case errors.Is(err, glue.ErrSelfComplement):
		return ReasonSelfComplement
	case errors.Is(err, glue.ErrUseMismatch):
		return ReasonUse
	case errors.Is(err, facet.ErrColorMismatch):
		return ReasonColor
	case errors.Is(err, facet.ErrLookupFailure):
		return ReasonLookup
	default:
		return ReasonStructure
	}
}

// trial runs trial i to completion. Only context cancellation ends it early.
func (r *runner) trial(ctx context.Context, i int) (Result, error) {
	ctx, span := tracer.Start(ctx, "reduce.Trial",
		trace.WithAttributes(
			attribute.String("kind", r.kind.String()),
			attribute.Int("trial", i),
			attribute.Int("candidates", len(r.cands)),
		),
	)
	defer span.End()
	start := time.Now()
	kind := r.kind.String()

	order := slices.Clone(r.cands)
	shuffle(order, trialRNG(r.seed, i))

	m := r.init.Clone()
	st := Stats{Candidates: len(order)}
	for _, c := range order {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return Result{}, err
		}
		st.Attempted++
		next, err := r.merge(m, c)
		if err != nil {
			reason := mergeReason(err)
			st.reject(reason)
			mergeTotal.WithLabelValues(kind, reason).Inc()
			continue
		}
		if next.Equal(m) {
			st.Unchanged++
			mergeTotal.WithLabelValues(kind, "unchanged").Inc()
			continue
		}

		v := r.suite.Check(next)
		switch v.Kind {
		case check.Pass:
			m = next
			st.Accepted++
			mergeTotal.WithLabelValues(kind, "accepted").Inc()
			if r.logger.Enabled(ctx, slog.LevelDebug) {
				a, b := r.names(c)
				r.logger.DebugContext(ctx, "merged", "trial", i, "a", a, "b", b, "classes", m.Classes())
			}
		case check.Conflict:
			fixed, chain := r.fixer.Fix(ctx, next, v)
			st.Chains = append(st.Chains, chain)
			repairChainLength.WithLabelValues(chain.Status.String()).Observe(float64(chain.Len()))
			if chain.Status != repair.Succeeded {
				st.reject(ReasonRepair)
				mergeTotal.WithLabelValues(kind, ReasonRepair).Inc()
				continue
			}
			m = fixed
			st.Repaired++
			mergeTotal.WithLabelValues(kind, "repaired").Inc()
			if r.logger.Enabled(ctx, slog.LevelDebug) {
				a, b := r.names(c)
				r.logger.DebugContext(ctx, "merged after repair",
					"trial", i, "a", a, "b", b, "chain", chain.Len(), "classes", m.Classes())
			}
		case check.Defect:
			st.reject(ReasonDefect)
			mergeTotal.WithLabelValues(kind, ReasonDefect).Inc()
		default:
			st.reject(ReasonUnresolvable)
			mergeTotal.WithLabelValues(kind, ReasonUnresolvable).Inc()
		}
	}

	trialDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	score := r.key(m)
	span.SetAttributes(attribute.Int("classes", m.Classes()), attribute.Int("score", score))
	r.logger.DebugContext(ctx, "trial done",
		"trial", i, "score", score, "accepted", st.Accepted, "repaired", st.Repaired, "attempted", st.Attempted)

	return Result{Trial: i, Map: m, Score: score, Stats: st}, nil
}
