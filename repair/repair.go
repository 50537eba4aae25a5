package repair

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tilereduce/check"
	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
)

// Sentinel errors recorded as Chain.Reason.
var (
	// ErrRepairCycle indicates a conflict pair already attempted in the chain.
	ErrRepairCycle = errors.New("repair: conflict pair repeats within chain")

	// ErrChainTooLong indicates the chain reached its length bound.
	ErrChainTooLong = errors.New("repair: chain exceeds maximum length")

	// ErrNotConflict indicates a Fix started from a non-Conflict verdict.
	ErrNotConflict = errors.New("repair: verdict is not a conflict")
)

// DefaultMaxChain bounds chain length when no bound is given.
const DefaultMaxChain = 64

// Status is the state of a repair chain.
type Status int

const (
	// Trying is the state while merges are being attempted.
	Trying Status = iota
	// Succeeded means the last merge passed every check.
	Succeeded
	// Failed means the chain was abandoned; Reason says why.
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Trying:
		return "trying"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Chain records the pairs a repair attempted, in order, and its outcome.
type Chain struct {
	Pairs  []check.Pair
	Status Status
	Reason error
}

// Len returns the number of attempted pairs.
func (c *Chain) Len() int { return len(c.Pairs) }

func (c *Chain) fail(err error) *Chain {
	c.Status = Failed
	c.Reason = err

	return c
}

// Checker is what a Fixer needs from a check.Suite.
type Checker interface {
	Check(m equiv.Map) check.Verdict
	Facets() *facet.Table
	Glues() *glue.Table
	PreserveUse() bool
}

var _ Checker = (*check.Suite)(nil)

// Fixer repairs conflicts against one Checker.
type Fixer struct {
	suite    Checker
	maxChain int
}

// NewFixer returns a Fixer bounded to maxChain attempts; maxChain <= 0 means
// DefaultMaxChain.
func NewFixer(suite Checker, maxChain int) *Fixer {
	if maxChain <= 0 {
		maxChain = DefaultMaxChain
	}

	return &Fixer{suite: suite, maxChain: maxChain}
}

// Fix repairs m, which failed with Conflict verdict v. On success it returns
// the repaired map; otherwise it returns nil. The chain is returned in both
// cases.
//
// ctx is checked between attempts; cancellation fails the chain with ctx.Err().
func (f *Fixer) Fix(ctx context.Context, m equiv.Map, v check.Verdict) (equiv.Map, *Chain) {
	chain := &Chain{Status: Trying}
	if v.Kind != check.Conflict {
		return nil, chain.fail(fmt.Errorf("%w: %s", ErrNotConflict, v.Kind))
	}
	seen := make(map[check.Pair]struct{})
	ft, gt := f.suite.Facets(), f.suite.Glues()

	for {
		if err := ctx.Err(); err != nil {
			return nil, chain.fail(err)
		}
		p := v.Pair
		if _, dup := seen[p]; dup {
			return nil, chain.fail(fmt.Errorf("%w: %s, %s", ErrRepairCycle, p[0], p[1]))
		}
		if chain.Len() >= f.maxChain {
			return nil, chain.fail(fmt.Errorf("%w: %d", ErrChainTooLong, f.maxChain))
		}
		seen[p] = struct{}{}
		chain.Pairs = append(chain.Pairs, p)

		next, err := ft.MergeNamed(gt, m, p[0], p[1], f.suite.PreserveUse())
		if err != nil {
			return nil, chain.fail(err)
		}
		v = f.suite.Check(next)
		switch v.Kind {
		case check.Pass:
			chain.Status = Succeeded
			return next, chain
		case check.Conflict:
			m = next
		default:
			return nil, chain.fail(v.Err())
		}
	}
}
