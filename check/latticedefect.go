package check

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Corner selects the pair of quadrants in which branches are grown.
type Corner int

const (
	// CornerEast grows branch pairs (N, E) and (E, S).
	CornerEast Corner = iota
	// CornerWest grows branch pairs (S, W) and (W, N).
	CornerWest
)

// String implements fmt.Stringer.
func (c Corner) String() string {
	switch c {
	case CornerEast:
		return "east"
	case CornerWest:
		return "west"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

func (c Corner) branches() [][2]int {
	if c == CornerWest {
		return [][2]int{{facet.South, facet.West}, {facet.West, facet.North}}
	}

	return [][2]int{{facet.North, facet.East}, {facet.East, facet.South}}
}

// LatticeDefect is a tile Closer that binds the far ends of two branches grown
// Depth steps from Seed in directions Dirs[0] and Dirs[1]. In a correct
// lattice the two ends lie Depth-1 sites apart in each direction, so one tile
// binding both closes a loop that should not exist.
type LatticeDefect struct {
	Seed   string
	Closer string
	Dirs   [2]int
	Depth  int
}

// String implements fmt.Stringer.
func (d LatticeDefect) String() string {
	return fmt.Sprintf("%s-[%d,%d]x%d->%s", d.Seed, d.Dirs[0], d.Dirs[1], d.Depth, d.Closer)
}

type ldKey struct {
	seed, closer int
	dirs         [2]int
}

type grower struct {
	s  *facet.Array
	gt *glue.Table
	m  equiv.Map
}

// binds reports whether single b can sit on edge dir of single a. Joint edges
// only bind the sibling half; other edges need a positive strength glue facing
// a complement under m.
func (g *grower) binds(a, dir, b int) bool {
	s := g.s
	opp := facet.Opposite[dir]
	if s.Use[a][dir] == tileset.RolePermanent || s.Use[b][opp] == tileset.RolePermanent {
		return s.Use[a][dir] == tileset.RolePermanent && s.SFake[a] != 0 && b == a+s.SFake[a]
	}
	ga := s.Glues[a][dir]
	if g.gt.Strength(ga) == 0 {
		return false
	}

	return g.gt.Comp(g.m, ga, s.Glues[b][opp])
}

// step returns the sorted set of singles that bind some member of from on dir.
func (g *grower) step(from []int, dir int) []int {
	var out []int
	for b := 0; b < g.s.Len(); b++ {
		for _, a := range from {
			if g.binds(a, dir, b) {
				out = append(out, b)
				break
			}
		}
	}

	return out
}

func (g *grower) branch(seed, dir, depth int) []int {
	front := []int{seed}
	for i := 0; i < depth && len(front) > 0; i++ {
		front = g.step(front, dir)
	}

	return front
}

func latticeKeys(ft *facet.Table, gt *glue.Table, m equiv.Map, c Corner, depth int) []ldKey {
	g := &grower{s: ft.Singles, gt: gt, m: m}
	var out []ldKey
	for seed := 0; seed < g.s.Len(); seed++ {
		for _, dirs := range c.branches() {
			a := g.branch(seed, dirs[0], depth)
			if len(a) == 0 {
				continue
			}
			b := g.branch(seed, dirs[1], depth)
			if len(b) == 0 {
				continue
			}
			closeA := g.step(a, dirs[1])
			closeB := g.step(b, dirs[0])
			for _, t := range closeA {
				if _, ok := slices.BinarySearch(closeB, t); ok {
					out = append(out, ldKey{seed: seed, closer: t, dirs: dirs})
				}
			}
		}
	}

	return out
}

// LatticeDefects enumerates the lattice defects of corner c at the given
// branch depth under m, ordered by seed, branch pair and closer.
//
// Complexity: O(S · depth · S² · 4) where S is the number of single facets.
func LatticeDefects(ft *facet.Table, gt *glue.Table, m equiv.Map, c Corner, depth int) ([]LatticeDefect, error) {
	if depth < 2 {
		return nil, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	keys := latticeKeys(ft, gt, m, c, depth)
	out := make([]LatticeDefect, len(keys))
	for i, k := range keys {
		out[i] = toDefect(ft.Singles, k, depth)
	}

	return out, nil
}

func toDefect(s *facet.Array, k ldKey, depth int) LatticeDefect {
	return LatticeDefect{Seed: s.Name[k.seed], Closer: s.Name[k.closer], Dirs: k.dirs, Depth: depth}
}

// newDefects returns the defects of m absent from base, in a stable order.
func newDefects(ft *facet.Table, gt *glue.Table, m equiv.Map, depth int, base map[ldKey]struct{}) []LatticeDefect {
	var out []LatticeDefect
	for _, c := range []Corner{CornerEast, CornerWest} {
		for _, k := range latticeKeys(ft, gt, m, c, depth) {
			if _, ok := base[k]; !ok {
				out = append(out, toDefect(ft.Singles, k, depth))
			}
		}
	}
	slices.SortStableFunc(out, func(a, b LatticeDefect) int {
		return cmp.Or(cmp.Compare(a.Seed, b.Seed), cmp.Compare(a.Closer, b.Closer))
	})

	return out
}
