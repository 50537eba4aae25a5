package check_test

import (
	"testing"

	"github.com/katalvlaran/tilereduce/check"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/internal/fixtures"
)

// BenchmarkSuite_Check measures one full default check (s1, s22, ld) of a
// merged map on the 2×2 fixture, rotations included.
// Complexity: dominated by the 2×2 search, O(T·S·B) per sensitive row.
func BenchmarkSuite_Check(b *testing.B) {
	gt, ft, err := facet.FromTileSet(fixtures.TwoByTwo(), facet.DefaultTau)
	if err != nil {
		b.Fatal(err)
	}
	s, err := check.NewSuite(ft, gt, check.DefaultChecks, check.DefaultLatticeDepth)
	if err != nil {
		b.Fatal(err)
	}
	m, err := gt.MergeNames(gt.Identity(), "rn", "ln", false)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Check(m)
	}
}

// BenchmarkNewSuite measures building the baselines a Suite compares against.
func BenchmarkNewSuite(b *testing.B) {
	gt, ft, err := facet.FromTileSet(fixtures.Lattice(true), facet.DefaultTau)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = check.NewSuite(ft, gt, check.DefaultChecks, check.DefaultLatticeDepth)
	}
}
