package facet

import (
	"errors"

	"github.com/katalvlaran/tilereduce/tileset"
)

// Sentinel errors for table construction, lookups and tile merges.
var (
	// ErrLookupFailure indicates a name that is not an original (or rotated) tile,
	// e.g. a synthesized fake facet named by a checker.
	ErrLookupFailure = errors.New("facet: lookup failure")

	// ErrStructureMismatch indicates a tile merge across different structures.
	ErrStructureMismatch = errors.New("facet: structure mismatch")

	// ErrColorMismatch indicates a tile merge between a labelled and an unlabelled tile.
	ErrColorMismatch = errors.New("facet: color mismatch")

	// ErrBadTau indicates a non-positive cooperativity threshold.
	ErrBadTau = errors.New("facet: tau must be positive")
)

// DefaultTau is the cooperativity threshold of the abstract Tile Assembly Model.
const DefaultTau = 2

// Directions on a single facet.
const (
	North = 0
	East  = 1
	South = 2
	West  = 3
)

// Opposite maps a direction to the facing edge of the neighbour.
var Opposite = [4]int{South, West, North, East}

// Offset gives the lattice step (dx, dy) of each direction; y grows southwards.
var Offset = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Facet is one row of an Array, or one original tile.
type Facet struct {
	Name      string
	Glues     []int
	Use       []tileset.Role
	Color     bool
	Used      bool
	Structure string
	Shape     tileset.Shape

	// DFake is direction+1 for fake doubles, 0 otherwise.
	DFake int

	// SFake is the offset (+1 or -1) from a split-double half to its sibling,
	// 1 on fake doubles built from a half, 0 otherwise.
	SFake int
}

// Array is a column-oriented table of facets sharing one shape.
type Array struct {
	Name      []string
	Glues     [][]int
	Use       [][]tileset.Role
	Color     []bool
	Used      []bool
	Structure []string
	DFake     []int
	SFake     []int
}

// Len returns the number of rows.
func (a *Array) Len() int { return len(a.Name) }

// Row returns row i as a Facet.
func (a *Array) Row(i int) Facet {
	return Facet{
		Name:      a.Name[i],
		Glues:     a.Glues[i],
		Use:       a.Use[i],
		Color:     a.Color[i],
		Used:      a.Used[i],
		Structure: a.Structure[i],
		DFake:     a.DFake[i],
		SFake:     a.SFake[i],
	}
}

// UsedRows returns the indices of used rows in ascending order.
func (a *Array) UsedRows() []int {
	out := make([]int, 0, a.Len())
	for i, u := range a.Used {
		if u {
			out = append(out, i)
		}
	}

	return out
}

func (a *Array) push(f Facet) {
	a.Name = append(a.Name, f.Name)
	a.Glues = append(a.Glues, f.Glues)
	a.Use = append(a.Use, f.Use)
	a.Color = append(a.Color, f.Color)
	a.Used = append(a.Used, f.Used)
	a.Structure = append(a.Structure, f.Structure)
	a.DFake = append(a.DFake, f.DFake)
	a.SFake = append(a.SFake, f.SFake)
}

func newArray(rows []Facet) *Array {
	a := &Array{}
	for _, f := range rows {
		a.push(f)
	}

	return a
}
