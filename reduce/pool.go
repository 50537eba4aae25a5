package reduce

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of trials running at once. One Pool may serve many
// reductions, concurrently or in sequence, until Close.
type Pool struct {
	size int
	sem  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewPool returns a pool running at most n tasks at a time; n must be ≥ 1.
func NewPool(n int) (*Pool, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: pool size %d < 1", ErrOptionViolation, n)
	}

	return &Pool{size: n, sem: make(chan struct{}, n)}, nil
}

// Size returns the concurrency bound.
func (p *Pool) Size() int { return p.size }

// Run calls fn(ctx, i) for i in [0, n) and waits for all calls. The first
// error cancels the context passed to the remaining calls and is returned.
// Run on a closed pool fails with ErrPoolClosed.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			select {
			case p.sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-p.sem }()

			return fn(gctx, i)
		})
	}

	return g.Wait()
}

// Close marks the pool closed. It blocks until runs already started have
// returned; later runs fail with ErrPoolClosed. Close is idempotent. Calling
// Close from inside fn deadlocks.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	return nil
}
