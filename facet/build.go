package facet

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Table is the read-only facet view of a tile set. It is safe to share
// between concurrent trials.
type Table struct {
	// Singles holds single tiles and the halves of split doubles; halves of one
	// double are adjacent rows.
	Singles *Array

	// Horizontal holds horizontal doubles, real and synthesized.
	Horizontal *Array

	// Vertical holds vertical doubles, real and synthesized.
	Vertical *Array

	tau    int
	tiles  []Facet
	byName map[string]int
}

// Selectors from double ends to half ends; -1 marks the fake-double joint.
var (
	horizontalHalves = [2][4]int{{0, -1, 4, 5}, {1, 2, 3, -1}}
	verticalHalves   = [2][4]int{{0, 1, -1, 5}, {-1, 2, 3, 4}}
)

// Build constructs the Table of tiles (rotations included by the caller)
// against glue table gt. Tiles marked Fake are skipped. An unrecognized
// structure aborts construction.
//
// Complexity: O(S² · 4) for fake-double synthesis, S = number of single facets.
func Build(tiles []tileset.Tile, gt *glue.Table, tau int) (*Table, error) {
	if tau <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadTau, tau)
	}
	t := &Table{tau: tau, byName: make(map[string]int, len(tiles))}
	fakeGlue := gt.MustID(tileset.FakeDoubleName)

	var singles, horiz, vert []Facet
	for _, tile := range tiles {
		if tile.Fake {
			continue
		}
		f, err := fromTile(tile, gt)
		if err != nil {
			return nil, err
		}
		if _, dup := t.byName[f.Name]; dup {
			return nil, fmt.Errorf("%w: tile %q", tileset.ErrDuplicateName, f.Name)
		}
		t.byName[f.Name] = len(t.tiles)
		t.tiles = append(t.tiles, f)

		switch f.Shape {
		case tileset.Single:
			singles = append(singles, f)
		case tileset.HorizontalDouble:
			singles = append(singles, splitDouble(f, horizontalHalves, fakeGlue, gt, tau)...)
			horiz = append(horiz, f)
		case tileset.VerticalDouble:
			singles = append(singles, splitDouble(f, verticalHalves, fakeGlue, gt, tau)...)
			vert = append(vert, f)
		default:
			return nil, fmt.Errorf("%w: tile %q shape %v", tileset.ErrUnknownStructure, f.Name, f.Shape)
		}
	}
	t.Singles = newArray(singles)

	for i := range singles {
		h, v := fakeDoubles(t.Singles, i, gt, fakeGlue)
		horiz = append(horiz, h...)
		vert = append(vert, v...)
	}
	t.Horizontal = newArray(horiz)
	t.Vertical = newArray(vert)

	return t, nil
}

// FromTileSet builds the glue table and the facet table of ts, rotations included.
func FromTileSet(ts *tileset.TileSet, tau int) (*glue.Table, *Table, error) {
	gt, err := glue.FromTileSet(ts)
	if err != nil {
		return nil, nil, err
	}
	tiles, err := ts.WithRotations()
	if err != nil {
		return nil, nil, err
	}
	ft, err := Build(tiles, gt, tau)
	if err != nil {
		return nil, nil, err
	}

	return gt, ft, nil
}

func fromTile(tile tileset.Tile, gt *glue.Table) (Facet, error) {
	s, err := tile.Structure()
	if err != nil {
		return Facet{}, err
	}
	roles, err := tile.Roles()
	if err != nil {
		return Facet{}, err
	}
	glues := make([]int, len(tile.Ends))
	for i, name := range tile.Ends {
		g, err := gt.ID(name)
		if err != nil {
			return Facet{}, fmt.Errorf("tile %q: %w", tile.Name, err)
		}
		glues[i] = g
	}

	return Facet{
		Name:      tile.Name,
		Glues:     glues,
		Use:       roles,
		Color:     tile.Colored(),
		Used:      tile.Annotated(),
		Structure: s.Name,
		Shape:     s.Shape,
	}, nil
}

// splitDouble returns the two single halves of double d. A half is used when
// the strength of its input edges reaches tau. Halves point at each other
// through SFake (+1 from the first, -1 from the second).
func splitDouble(d Facet, sel [2][4]int, fakeGlue int, gt *glue.Table, tau int) []Facet {
	out := make([]Facet, 2)
	for h, picks := range sel {
		f := Facet{
			Name:      d.Name + "_fakedouble_" + string(rune('a'+h)),
			Glues:     make([]int, 4),
			Use:       make([]tileset.Role, 4),
			Color:     d.Color,
			Structure: tileset.Single.String(),
			Shape:     tileset.Single,
			SFake:     1 - 2*h,
		}
		strength := 0
		for dir, p := range picks {
			if p < 0 {
				f.Glues[dir] = fakeGlue
				f.Use[dir] = tileset.RolePermanent
				continue
			}
			f.Glues[dir] = d.Glues[p]
			f.Use[dir] = d.Use[p]
			if d.Use[p] == tileset.RoleInput {
				strength += gt.Strength(d.Glues[p])
			}
		}
		f.Used = strength >= tau
		out[h] = f
	}

	return out
}

// doubleEnds lays out the six ends of a fake double formed by single a and its
// neighbour b in direction dir, using the double-tile end order.
func doubleEnds[T any](dir int, a, b []T) []T {
	switch dir {
	case North:
		return []T{b[0], b[1], a[1], a[2], a[3], b[3]}
	case East:
		return []T{a[0], b[0], b[1], b[2], a[2], a[3]}
	case South:
		return []T{a[0], a[1], b[1], b[2], b[3], a[3]}
	default:
		return []T{b[0], a[0], a[1], a[2], b[2], b[3]}
	}
}

// fakeDoubles synthesizes, for single row tn, the doubles formed with every used
// single accepting one of tn's non-input edges as input, plus the double formed
// with its sibling when tn is a split-double half. N/S joints give vertical
// doubles, E/W joints horizontal ones.
func fakeDoubles(s *Array, tn int, gt *glue.Table, fakeGlue int) (horiz, vert []Facet) {
	joint := -1
	if s.SFake[tn] != 0 {
		for dir, g := range s.Glues[tn] {
			if g == fakeGlue {
				joint = dir
				break
			}
		}
	}
	emit := func(dir, other int) {
		sfake := 0
		if s.SFake[tn] != 0 || s.SFake[other] != 0 {
			sfake = 1
		}
		f := Facet{
			Name:  s.Name[tn] + "_" + strconv.Itoa(dir) + "_" + s.Name[other],
			Glues: doubleEnds(dir, s.Glues[tn], s.Glues[other]),
			Use:   doubleEnds(dir, s.Use[tn], s.Use[other]),
			Used:  true,
			DFake: dir + 1,
			SFake: sfake,
		}
		if dir == North || dir == South {
			f.Shape, f.Structure = tileset.VerticalDouble, tileset.VerticalDouble.String()
			vert = append(vert, f)
		} else {
			f.Shape, f.Structure = tileset.HorizontalDouble, tileset.HorizontalDouble.String()
			horiz = append(horiz, f)
		}
	}

	for dir := 0; dir < 4; dir++ {
		if s.Use[tn][dir] == tileset.RoleInput {
			continue
		}
		opp := Opposite[dir]
		comp := gt.Complement(s.Glues[tn][dir])
		for i := 0; i < s.Len(); i++ {
			if s.Glues[i][opp] == comp && s.Use[i][opp] == tileset.RoleInput && s.Used[i] {
				emit(dir, i)
			}
		}
		if dir == joint {
			emit(dir, tn+s.SFake[tn])
		}
	}

	return horiz, vert
}

// Tau returns the cooperativity threshold the table was built with.
func (t *Table) Tau() int { return t.tau }

// Tiles returns the original and rotated tiles in build order. Shared; do not modify.
func (t *Table) Tiles() []Facet { return t.tiles }

// Tile returns the original or rotated tile called name. Synthesized facets
// (split halves, fake doubles) are not tiles and fail with ErrLookupFailure.
func (t *Table) Tile(name string) (Facet, error) {
	i, ok := t.byName[name]
	if !ok {
		return Facet{}, fmt.Errorf("%w: %q", ErrLookupFailure, name)
	}

	return t.tiles[i], nil
}

// Arrays returns Singles, Horizontal and Vertical in that order.
func (t *Table) Arrays() [3]*Array {
	return [3]*Array{t.Singles, t.Horizontal, t.Vertical}
}
