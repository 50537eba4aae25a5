package tileset

import (
	"fmt"
	"maps"
)

// Clone returns a deep copy of ts. Info values are copied one level deep.
func (ts *TileSet) Clone() *TileSet {
	c := &TileSet{
		Tiles: make([]Tile, len(ts.Tiles)),
		Ends:  append([]End(nil), ts.Ends...),
	}
	for i, t := range ts.Tiles {
		c.Tiles[i] = t.Clone()
	}
	if ts.Seed != nil {
		seed := &Seed{Adapters: make([]Adapter, len(ts.Seed.Adapters))}
		for i, a := range ts.Seed.Adapters {
			seed.Adapters[i] = Adapter{Name: a.Name, Ends: append([]string(nil), a.Ends...)}
		}
		c.Seed = seed
	}
	if ts.Info != nil {
		c.Info = maps.Clone(ts.Info)
	}

	return c
}

// Tile returns the tile called name.
func (ts *TileSet) Tile(name string) (Tile, error) {
	for _, t := range ts.Tiles {
		if t.Name == name {
			return t, nil
		}
	}

	return Tile{}, fmt.Errorf("%w: %q", ErrTileNotFound, name)
}

// RealTiles returns the tiles not marked Fake.
func (ts *TileSet) RealTiles() []Tile {
	out := make([]Tile, 0, len(ts.Tiles))
	for _, t := range ts.Tiles {
		if !t.Fake {
			out = append(out, t)
		}
	}

	return out
}

// Validate checks tile structures, end counts, role annotations and name uniqueness.
func (ts *TileSet) Validate() error {
	seen := make(map[string]struct{}, len(ts.Tiles))
	for _, t := range ts.Tiles {
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: tile %q", ErrDuplicateName, t.Name)
		}
		seen[t.Name] = struct{}{}
		if _, err := t.Structure(); err != nil {
			return err
		}
		if _, err := t.Roles(); err != nil {
			return err
		}
	}
	ends := make(map[string]struct{}, len(ts.Ends))
	for _, e := range ts.Ends {
		if _, dup := ends[e.Name]; dup {
			return fmt.Errorf("%w: end %q", ErrDuplicateName, e.Name)
		}
		ends[e.Name] = struct{}{}
	}

	return nil
}

// AllEnds returns the declared ends followed by ends referenced only by tiles,
// whose class is inferred from the tile structure and whose strength is 1.
// Hairpin and fake-double ends are synthetic and never listed.
func (ts *TileSet) AllEnds() ([]End, error) {
	out := append([]End(nil), ts.Ends...)
	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.Name] = i
	}
	for _, t := range ts.Tiles {
		s, err := t.Structure()
		if err != nil {
			return nil, err
		}
		for i, name := range t.Ends {
			base := BaseName(name)
			if base == HairpinName || base == FakeDoubleName {
				continue
			}
			if _, ok := index[base]; ok {
				continue
			}
			typ := s.EndType(i)
			if typ == "" {
				return nil, fmt.Errorf("%w: %q on tile %q", ErrUndeclaredEnd, name, t.Name)
			}
			index[base] = len(out)
			out = append(out, End{Name: base, Type: typ, Strength: 1})
		}
	}

	return out, nil
}

// WithRotations returns the non-fake tiles of ts followed by all their rotations.
func (ts *TileSet) WithRotations() ([]Tile, error) {
	base := ts.RealTiles()
	out := append([]Tile(nil), base...)
	for _, t := range base {
		rots, err := t.Rotations()
		if err != nil {
			return nil, err
		}
		out = append(out, rots...)
	}

	return out, nil
}
