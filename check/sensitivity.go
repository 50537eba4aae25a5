package check

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Order selects the reach of the sensitivity check.
type Order struct {
	// MapDepth is the depth of the move-and-fill walk around each used tile.
	MapDepth int

	// Budget is the number of new tiles a third-party search may place.
	Budget int
}

var (
	// SecondOrder is the 2GO check: depth-2 maps, one placed tile.
	SecondOrder = Order{MapDepth: 2, Budget: 1}

	// TwoByTwo is the 2×2 check: depth-3 maps, two placed tiles.
	TwoByTwo = Order{MapDepth: 3, Budget: 2}
)

// Point is a lattice offset relative to the tile a map was grown from.
type Point struct{ X, Y int }

// Attachment is a future input edge recorded in a move-and-fill map: a tile
// standing at the map position would bind Glue on Edge, placed there as Tile.
type Attachment struct {
	Edge int
	Glue int
	Tile int
}

// MoveMap records, per offset, the input edges that correct growth around one
// tile will present. Entries are sorted for deterministic searches.
type MoveMap map[Point][]Attachment

type move struct {
	tile    int
	allIn   bool
	allOut  bool
	fromDir int
}

// growthMoves follows edge dir of single t along correct growth on the
// unmerged system: outputs lead to tiles taking them as input, inputs lead
// back to the tiles providing them, joints lead to the sibling half.
func growthMoves(s *facet.Array, gt *glue.Table, t, dir int, allIn, allOut bool) []move {
	opp := facet.Opposite[dir]
	switch s.Use[t][dir] {
	case tileset.RolePermanent:
		return []move{{tile: t + s.SFake[t], allIn: allIn, allOut: allOut, fromDir: opp}}
	case tileset.RoleInput, tileset.RoleOutput:
	default:
		return nil
	}
	comp := gt.Complement(s.Glues[t][dir])
	var out []move
	for j := 0; j < s.Len(); j++ {
		if s.Glues[j][opp] != comp {
			continue
		}
		u := s.Use[j][opp]
		if s.Use[t][dir] == tileset.RoleInput && (u == tileset.RoleOutput || u == tileset.RoleBoth) {
			out = append(out, move{tile: j, allIn: allIn, allOut: false, fromDir: opp})
		}
		if s.Use[t][dir] == tileset.RoleOutput && (u == tileset.RoleInput || u == tileset.RoleBoth) {
			out = append(out, move{tile: j, allIn: false, allOut: allOut, fromDir: opp})
		}
	}

	return out
}

type filler struct {
	s   *facet.Array
	gt  *glue.Table
	set map[Point]map[Attachment]struct{}
}

// fill walks i steps from tile t standing at (x, y), recording the input edges
// of every tile reached along a path that went out through an output at least
// once. fromDir is the edge t was entered through, -1 at the root.
func (f *filler) fill(t, i int, allIn, allOut bool, fromDir, x, y int) {
	p := Point{x, y}
	cell, ok := f.set[p]
	if !ok {
		cell = make(map[Attachment]struct{})
		f.set[p] = cell
	}
	if !allIn {
		for edge := 0; edge < 4; edge++ {
			if f.s.Use[t][edge] != tileset.RoleInput {
				continue
			}
			if edge == fromDir && allOut {
				continue
			}
			cell[Attachment{Edge: edge, Glue: f.s.Glues[t][edge], Tile: t}] = struct{}{}
		}
	}
	if i == 0 {
		return
	}
	for edge := 0; edge < 4; edge++ {
		if edge == fromDir {
			continue
		}
		d := facet.Offset[edge]
		for _, mv := range growthMoves(f.s, f.gt, t, edge, allIn, allOut) {
			f.fill(mv.tile, i-1, mv.allIn, mv.allOut, mv.fromDir, x+d[0], y+d[1])
		}
	}
}

// MoveAndFill builds the move-and-fill map of single t to the given depth.
func MoveAndFill(ft *facet.Table, gt *glue.Table, t, depth int) MoveMap {
	f := &filler{s: ft.Singles, gt: gt, set: make(map[Point]map[Attachment]struct{})}
	f.fill(t, depth, true, true, -1, 0, 0)
	out := make(MoveMap, len(f.set))
	for p, cell := range f.set {
		list := make([]Attachment, 0, len(cell))
		for a := range cell {
			list = append(list, a)
		}
		slices.SortFunc(list, func(a, b Attachment) int {
			return cmp.Or(cmp.Compare(a.Edge, b.Edge), cmp.Compare(a.Glue, b.Glue), cmp.Compare(a.Tile, b.Tile))
		})
		out[p] = list
	}

	return out
}

// Maps builds the move-and-fill maps of every used single.
func Maps(ft *facet.Table, gt *glue.Table, depth int) map[int]MoveMap {
	used := ft.Singles.UsedRows()
	out := make(map[int]MoveMap, len(used))
	for _, t := range used {
		out[t] = MoveAndFill(ft, gt, t, depth)
	}

	return out
}

type searcher struct {
	s    *facet.Array
	gt   *glue.Table
	m    equiv.Map
	tmap MoveMap
}

// search looks for a placement of ct at (x, y), reached by at most i newly
// placed tiles, where one of ct's edges matches an input recorded in the map.
// It returns the map tile and ct on success.
func (q *searcher) search(ct, x, y, i, exclude int) (bool, int, int) {
	s := q.s
	for dir := 0; dir < 4; dir++ {
		if dir == exclude {
			continue
		}
		if u := s.Use[ct][dir]; u == tileset.RolePermanent || u == tileset.RoleNull {
			continue
		}
		for _, a := range q.tmap[Point{x, y}] {
			if a.Edge == dir && q.m[a.Glue] == q.m[s.Glues[ct][dir]] {
				return true, a.Tile, ct
			}
		}
	}
	if i == 0 {
		return false, -1, -1
	}
	for dir := 0; dir < 4; dir++ {
		if dir == exclude {
			continue
		}
		d := facet.Offset[dir]
		opp := facet.Opposite[dir]
		switch s.Use[ct][dir] {
		case tileset.RoleNull:
			continue
		case tileset.RolePermanent:
			if ok, ot, ft := q.search(ct+s.SFake[ct], x+d[0], y+d[1], i, opp); ok {
				return true, ot, ft
			}
			continue
		}
		comp := q.m[q.gt.Complement(s.Glues[ct][dir])]
		for j := 0; j < s.Len(); j++ {
			if q.m[s.Glues[j][opp]] != comp {
				continue
			}
			if ok, ot, ft := q.search(j, x+d[0], y+d[1], i-1, opp); ok {
				return true, ot, ft
			}
		}
	}

	return false, -1, -1
}

// sensitive reports whether single un, placed where t belongs, could let a
// third-party tile attach through an input edge of t's correct surroundings.
// It returns the matching pair of tiles on success.
func sensitive(ft *facet.Table, gt *glue.Table, m equiv.Map, t, un int, tmap MoveMap, budget int) (bool, [2]int) {
	s := ft.Singles
	same := true
	for e := range s.Glues[t] {
		if m[s.Glues[t][e]] != m[s.Glues[un][e]] {
			same = false
			break
		}
	}
	if same {
		return false, [2]int{}
	}
	q := &searcher{s: s, gt: gt, m: m, tmap: tmap}
	ok, ot, ct := q.search(un, 0, 0, budget, -1)

	return ok, [2]int{ot, ct}
}

// Profile lists, for every used single in ascending order, the first-order
// partners (tau 1 potential inputs) that are sensitive at the given order.
func Profile(ft *facet.Table, gt *glue.Table, m equiv.Map, maps map[int]MoveMap, o Order) [][]int {
	sens1 := PotentialInputs(ft, gt, m, 1)[0]
	used := ft.Singles.UsedRows()
	out := make([][]int, len(used))
	for p, t := range used {
		var list []int
		for _, un := range sens1[p] {
			if ok, _ := sensitive(ft, gt, m, t, un, maps[t], o.Budget); ok {
				list = append(list, un)
			}
		}
		out[p] = list
	}

	return out
}

// Sensitivity reports a Conflict for the first used single that gains a
// sensitive partner under m which is neither in the baseline profile nor
// identical under m to a baseline partner.
func Sensitivity(ft *facet.Table, gt *glue.Table, m equiv.Map, maps map[int]MoveMap, base [][]int, o Order, name string) Verdict {
	s := ft.Singles
	sens1 := PotentialInputs(ft, gt, m, 1)[0]
	for p, t := range s.UsedRows() {
		for _, un := range sens1[p] {
			ok, via := sensitive(ft, gt, m, t, un, maps[t], o.Budget)
			if !ok || slices.Contains(base[p], un) {
				continue
			}
			known := false
			for _, b := range base[p] {
				if sameGlues(s, m, b, un) {
					known = true
					break
				}
			}
			if known {
				continue
			}
			v := conflict(name, s.Name[t], s.Name[un])
			v.Path = []string{s.Name[via[0]], s.Name[via[1]]}

			return v
		}
	}

	return pass()
}

func sameGlues(a *facet.Array, m equiv.Map, i, j int) bool {
	for e := range a.Glues[i] {
		if m[a.Glues[i][e]] != m[a.Glues[j][e]] {
			return false
		}
	}

	return true
}
