package tileset

import (
	"fmt"
	"sort"
	"strconv"
)

// Rotation maps a tile onto a rotated copy: the copy has structure Target and
// its i-th end is the original's Perm[i]-th end.
type Rotation struct {
	Target string
	Perm   []int
}

// Structure describes one tile geometry of the catalogue.
type Structure struct {
	// Name is the catalogue key, e.g. "tile_daoe_5up".
	Name string

	// Shape is the geometry class.
	Shape Shape

	// EndTypes lists the structure class of each end position; nil for generic
	// structures, whose ends must all be declared.
	EndTypes []string

	// Rotations lists the non-identity rotations of the structure.
	Rotations []Rotation
}

// EndType returns the class of end position i, or "" when unknown.
func (s *Structure) EndType(i int) string {
	if i < 0 || i >= len(s.EndTypes) {
		return ""
	}

	return s.EndTypes[i]
}

var (
	singleRot = []Rotation{
		{Target: "single", Perm: []int{3, 2, 1, 0}},
		{Target: "single", Perm: []int{1, 0, 3, 2}},
		{Target: "single", Perm: []int{2, 3, 0, 1}},
	}

	catalogue = map[string]*Structure{}
)

func register(s *Structure) { catalogue[s.Name] = s }

// daoeSingles registers a 5'-up / 3'-up pair whose rotations alternate between them.
func daoeSingles(up5, up3 string, types5, types3 []string, rot5, rot3 [3]string) {
	perms := [3][]int{{3, 2, 1, 0}, {1, 0, 3, 2}, {2, 3, 0, 1}}
	for _, def := range []struct {
		name  string
		types []string
		rot   [3]string
	}{{up5, types5, rot5}, {up3, types3, rot3}} {
		if def.name == "" {
			continue
		}
		s := &Structure{Name: def.name, Shape: Single, EndTypes: def.types}
		for k, target := range def.rot {
			s.Rotations = append(s.Rotations, Rotation{Target: target, Perm: perms[k]})
		}
		register(s)
	}
}

func init() {
	register(&Structure{Name: "single", Shape: Single, Rotations: singleRot})
	register(&Structure{Name: "doublehoriz", Shape: HorizontalDouble, Rotations: []Rotation{
		{Target: "doublehoriz", Perm: []int{3, 4, 5, 0, 1, 2}},
		{Target: "doublevert", Perm: []int{5, 4, 3, 2, 1, 0}},
		{Target: "doublevert", Perm: []int{2, 1, 0, 5, 4, 3}},
	}})
	register(&Structure{Name: "doublevert", Shape: VerticalDouble, Rotations: []Rotation{
		{Target: "doublevert", Perm: []int{3, 4, 5, 0, 1, 2}},
		{Target: "doublehoriz", Perm: []int{5, 4, 3, 2, 1, 0}},
		{Target: "doublehoriz", Perm: []int{2, 1, 0, 5, 4, 3}},
	}})

	daoeSingles("tile_daoe_5up", "tile_daoe_3up",
		[]string{"TD", "TD", "DT", "DT"}, []string{"DT", "DT", "TD", "TD"},
		[3]string{"tile_daoe_3up", "tile_daoe_5up", "tile_daoe_3up"},
		[3]string{"tile_daoe_5up", "tile_daoe_3up", "tile_daoe_5up"})
	daoeSingles("tile_daoe_5up_2h", "tile_daoe_3up_2h",
		[]string{"TD", "hairpin", "DT", "DT"}, []string{"DT", "hairpin", "TD", "TD"},
		[3]string{"tile_daoe_3up_3h", "tile_daoe_5up_1h", "tile_daoe_3up_4h"},
		[3]string{"tile_daoe_5up_3h", "tile_daoe_3up_1h", "tile_daoe_5up_4h"})
	daoeSingles("tile_daoe_5up_1h", "tile_daoe_3up_1h",
		[]string{"hairpin", "TD", "DT", "DT"}, []string{"hairpin", "DT", "TD", "TD"},
		[3]string{"tile_daoe_3up_4h", "tile_daoe_5up_2h", "tile_daoe_3up_3h"},
		[3]string{"tile_daoe_5up_4h", "tile_daoe_3up_2h", "tile_daoe_5up_3h"})
	daoeSingles("tile_daoe_5up_3h", "tile_daoe_3up_3h",
		[]string{"TD", "TD", "hairpin", "DT"}, []string{"DT", "DT", "hairpin", "TD"},
		[3]string{"tile_daoe_3up_2h", "tile_daoe_5up_4h", "tile_daoe_3up_1h"},
		[3]string{"tile_daoe_5up_2h", "tile_daoe_3up_4h", "tile_daoe_5up_1h"})
	daoeSingles("tile_daoe_5up_4h", "tile_daoe_3up_4h",
		[]string{"TD", "TD", "DT", "hairpin"}, []string{"DT", "DT", "TD", "hairpin"},
		[3]string{"tile_daoe_3up_1h", "tile_daoe_5up_3h", "tile_daoe_3up_2h"},
		[3]string{"tile_daoe_5up_1h", "tile_daoe_3up_3h", "tile_daoe_5up_2h"})

	register(&Structure{
		Name: "tile_daoe_doublehoriz_35up", Shape: HorizontalDouble,
		EndTypes: []string{"DT", "TD", "TD", "DT", "TD", "TD"},
		Rotations: []Rotation{
			{Target: "tile_daoe_doublehoriz_35up", Perm: []int{3, 4, 5, 0, 1, 2}},
			{Target: "tile_daoe_doublevert_53up", Perm: []int{5, 4, 3, 2, 1, 0}},
			{Target: "tile_daoe_doublevert_53up", Perm: []int{2, 1, 0, 5, 4, 3}},
		},
	})
	register(&Structure{
		Name: "tile_daoe_doublehoriz_53up", Shape: HorizontalDouble,
		EndTypes: []string{"TD", "DT", "DT", "TD", "DT", "DT"},
		Rotations: []Rotation{
			{Target: "tile_daoe_doublehoriz_53up", Perm: []int{3, 4, 5, 0, 1, 2}},
			{Target: "tile_daoe_doublevert_35up", Perm: []int{5, 4, 3, 2, 1, 0}},
			{Target: "tile_daoe_doublevert_35up", Perm: []int{2, 1, 0, 5, 4, 3}},
		},
	})
	register(&Structure{
		Name: "tile_daoe_doublevert_35up", Shape: VerticalDouble,
		EndTypes: []string{"DT", "DT", "TD", "DT", "DT", "TD"},
		Rotations: []Rotation{
			{Target: "tile_daoe_doublevert_35up", Perm: []int{3, 4, 5, 0, 1, 2}},
			{Target: "tile_daoe_doublehoriz_53up", Perm: []int{5, 4, 3, 2, 1, 0}},
			{Target: "tile_daoe_doublehoriz_53up", Perm: []int{2, 1, 0, 5, 4, 3}},
		},
	})
	register(&Structure{
		Name: "tile_daoe_doublevert_53up", Shape: VerticalDouble,
		EndTypes: []string{"TD", "TD", "DT", "TD", "TD", "DT"},
		Rotations: []Rotation{
			{Target: "tile_daoe_doublevert_53up", Perm: []int{3, 4, 5, 0, 1, 2}},
			{Target: "tile_daoe_doublehoriz_35up", Perm: []int{5, 4, 3, 2, 1, 0}},
			{Target: "tile_daoe_doublehoriz_35up", Perm: []int{2, 1, 0, 5, 4, 3}},
		},
	})
}

// LookupStructure returns the catalogue entry for name.
func LookupStructure(name string) (*Structure, error) {
	s, ok := catalogue[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, name)
	}

	return s, nil
}

// Structures lists the catalogue names in sorted order.
func Structures() []string {
	names := make([]string, 0, len(catalogue))
	for n := range catalogue {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Structure resolves the catalogue entry of t and checks its end count.
func (t Tile) Structure() (*Structure, error) {
	s, err := LookupStructure(t.Type)
	if err != nil {
		return nil, fmt.Errorf("tile %q: %w", t.Name, err)
	}
	if len(t.Ends) != s.Shape.NumEnds() {
		return nil, fmt.Errorf("%w: tile %q (%s) has %d ends, want %d",
			ErrEndCount, t.Name, s.Name, len(t.Ends), s.Shape.NumEnds())
	}

	return s, nil
}

// Rotations returns the rotated copies of t, named "<name>_rot<k>".
func (t Tile) Rotations() ([]Tile, error) {
	s, err := t.Structure()
	if err != nil {
		return nil, err
	}
	out := make([]Tile, 0, len(s.Rotations))
	for k, rot := range s.Rotations {
		out = append(out, t.rotate(rot, "_rot"+strconv.Itoa(k+1)))
	}

	return out, nil
}

func (t Tile) rotate(rot Rotation, suffix string) Tile {
	r := Tile{
		Name:  t.Name + suffix,
		Type:  rot.Target,
		Ends:  make([]string, len(rot.Perm)),
		Label: t.Label,
	}
	for i, p := range rot.Perm {
		r.Ends[i] = t.Ends[p]
	}
	if len(t.Input) == len(rot.Perm) {
		r.Input = make([]int, len(rot.Perm))
		for i, p := range rot.Perm {
			r.Input[i] = t.Input[p]
		}
	}
	if use := []rune(t.Use); len(use) == len(rot.Perm) {
		ru := make([]rune, len(rot.Perm))
		for i, p := range rot.Perm {
			ru[i] = use[p]
		}
		r.Use = string(ru)
	}

	return r
}
