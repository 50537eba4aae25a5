package equiv

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotFlat indicates an entry that does not point at a representative.
	ErrNotFlat = errors.New("equiv: map is not flat")

	// ErrSelfComplementary indicates a class unified with its own complement class.
	ErrSelfComplementary = errors.New("equiv: class is self-complementary")

	// ErrLength indicates a map whose length differs from the glue table.
	ErrLength = errors.New("equiv: length mismatch")
)

// Map assigns every glue index its class representative.
type Map []int

// Identity returns the map in which every glue is its own class.
func Identity(n int) Map {
	m := make(Map, n)
	for i := range m {
		m[i] = i
	}

	return m
}

// Clone returns an independent copy of m.
func (m Map) Clone() Map { return slices.Clone(m) }

// Same reports whether glues a and b are in one class.
func (m Map) Same(a, b int) bool { return m[a] == m[b] }

// Classes returns the number of distinct classes.
func (m Map) Classes() int {
	seen := make(map[int]struct{}, len(m))
	for _, r := range m {
		seen[r] = struct{}{}
	}

	return len(seen)
}

// Pairs returns the number of distinct glue/complement pairs, i.e. the number
// of ends a reduced tile set declares.
func (m Map) Pairs() int { return m.Classes() / 2 }

// Members returns the glues whose representative is rep, in ascending order.
func (m Map) Members(rep int) []int {
	var out []int
	for i, r := range m {
		if r == rep {
			out = append(out, i)
		}
	}

	return out
}

// Union merges the classes of a and b onto the smaller representative and
// returns a new map; m is left untouched.
func (m Map) Union(a, b int) Map {
	out := m.Clone()
	keep, drop := m[a], m[b]
	if drop < keep {
		keep, drop = drop, keep
	}
	if keep == drop {
		return out
	}
	for i, r := range out {
		if r == drop {
			out[i] = keep
		}
	}

	return out
}

// Equal reports whether m and o describe the same partition entry by entry.
func (m Map) Equal(o Map) bool { return slices.Equal(m, o) }

// Validate checks that m is flat and that no class contains the complement of
// one of its members. complement must have the same length as m.
func (m Map) Validate(complement []int) error {
	if len(complement) != len(m) {
		return fmt.Errorf("%w: map %d, complement %d", ErrLength, len(m), len(complement))
	}
	for i, r := range m {
		if r < 0 || r >= len(m) || m[r] != r {
			return fmt.Errorf("%w: entry %d -> %d", ErrNotFlat, i, r)
		}
		if m[m[complement[i]]] == m[m[i]] {
			return fmt.Errorf("%w: glue %d", ErrSelfComplementary, i)
		}
	}

	return nil
}
