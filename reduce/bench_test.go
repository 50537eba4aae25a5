package reduce_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/tilereduce/internal/fixtures"
	"github.com/katalvlaran/tilereduce/reduce"
)

// BenchmarkReduceEnds runs a full single-threaded glue reduction with the
// default preserve set.
// Complexity: O(tries · candidates · check) where candidates is O(G²).
func BenchmarkReduceEnds(b *testing.B) {
	ts := fixtures.TwoByTwo()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reduce.ReduceEnds(ctx, ts, reduce.WithTries(4), reduce.WithSeed(int64(i+1)))
	}
}

// BenchmarkReduceEnds_Parallel runs the same reduction on a shared pool.
func BenchmarkReduceEnds_Parallel(b *testing.B) {
	ts := fixtures.TwoByTwo()
	ctx := context.Background()
	p, err := reduce.NewPool(4)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reduce.ReduceEnds(ctx, ts, reduce.WithTries(8), reduce.WithThreads(4), reduce.WithPool(p))
	}
}
