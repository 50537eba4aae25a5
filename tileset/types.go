package tileset

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Sentinel errors for tile-set construction and parsing.
var (
	// ErrUnknownStructure indicates a tile structure name absent from the catalogue.
	ErrUnknownStructure = errors.New("tileset: unknown tile structure")

	// ErrBadRole indicates an unparsable input or use annotation.
	ErrBadRole = errors.New("tileset: bad role annotation")

	// ErrEndCount indicates a tile whose end count does not fit its shape.
	ErrEndCount = errors.New("tileset: wrong number of ends for structure")

	// ErrUndeclaredEnd indicates an end that is neither declared nor inferable.
	ErrUndeclaredEnd = errors.New("tileset: undeclared end")

	// ErrDuplicateName indicates two tiles or two ends with the same name.
	ErrDuplicateName = errors.New("tileset: duplicate name")

	// ErrTileNotFound indicates a lookup by name found no tile.
	ErrTileNotFound = errors.New("tileset: tile not found")
)

// Synthetic end names and classes understood by the engine.
const (
	// HairpinName is the end name used on hairpin-capped edges.
	HairpinName = "hp"

	// FakeDoubleName is the internal end joining the halves of a split double tile.
	FakeDoubleName = "fakedouble"

	// ClassHairpin is the structure class of HairpinName.
	ClassHairpin = "hairpin"

	// ClassFakeDouble is the structure class of FakeDoubleName.
	ClassFakeDouble = "fakedouble"

	// ComplementSuffix marks the complement of a named end ("a/" pairs with "a").
	ComplementSuffix = "/"
)

// Role is the part an edge plays in aTAM growth.
type Role int

const (
	// RoleUnset marks edges of tiles that carry no role annotation at all.
	RoleUnset Role = iota
	// RoleNull marks an edge that never binds during correct growth.
	RoleNull
	// RoleInput marks an edge used to attach the tile.
	RoleInput
	// RoleOutput marks an edge presented to later tiles.
	RoleOutput
	// RoleBoth marks an edge acting as input and output.
	RoleBoth
	// RolePermanent marks the internal edge between halves of a double tile.
	RolePermanent
)

var roleLetters = map[rune]Role{
	'u': RoleUnset, 'n': RoleNull, 'i': RoleInput, 'o': RoleOutput, 'b': RoleBoth,
}

// ParseRole converts a single role letter (U, N, I, O, B; any case).
func ParseRole(r rune) (Role, error) {
	role, ok := roleLetters[unicode.ToLower(r)]
	if !ok {
		return RoleUnset, fmt.Errorf("%w: %q", ErrBadRole, r)
	}

	return role, nil
}

// Invert swaps input and output; other roles are returned unchanged.
func (r Role) Invert() Role {
	switch r {
	case RoleInput:
		return RoleOutput
	case RoleOutput:
		return RoleInput
	default:
		return r
	}
}

// String returns the single-letter form of r ("P" for permanent).
func (r Role) String() string {
	switch r {
	case RoleUnset:
		return "U"
	case RoleNull:
		return "N"
	case RoleInput:
		return "I"
	case RoleOutput:
		return "O"
	case RoleBoth:
		return "B"
	case RolePermanent:
		return "P"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Shape is the closed set of tile geometries.
type Shape int

const (
	// Single is a tile occupying one lattice address with four ends N, E, S, W.
	Single Shape = iota
	// HorizontalDouble spans two addresses side by side (six ends).
	HorizontalDouble
	// VerticalDouble spans two addresses one above the other (six ends).
	VerticalDouble
)

// NumEnds returns how many ends a tile of shape s carries.
func (s Shape) NumEnds() int {
	if s == Single {
		return 4
	}

	return 6
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case Single:
		return "single"
	case HorizontalDouble:
		return "doublehoriz"
	case VerticalDouble:
		return "doublevert"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// End is a named glue definition. Its complement is implied by name.
type End struct {
	// Name identifies the end; "<Name>/" is its complement.
	Name string `yaml:"name"`

	// Type is the structure class ("TD", "DT", "hairpin", "fakedouble").
	Type string `yaml:"type"`

	// Strength is the binding strength of the end. Declared ends default to 1.
	Strength int `yaml:"strength"`

	// Use is an optional role letter used when glue sense is preserved.
	Use string `yaml:"use,omitempty"`
}

// Role parses e.Use; an empty Use is RoleUnset.
func (e End) Role() (Role, error) {
	if e.Use == "" {
		return RoleUnset, nil
	}

	return ParseRole([]rune(e.Use)[0])
}

// Adapter is a seed adapter; its ends are renamed along with the tiles.
type Adapter struct {
	Name string   `yaml:"name"`
	Ends []string `yaml:"ends,omitempty"`
}

// Seed holds the seed adapters of a tile set.
type Seed struct {
	Adapters []Adapter `yaml:"adapters,omitempty"`
}

// Tile is a single or double tile.
type Tile struct {
	// Name is unique within a TileSet.
	Name string `yaml:"name"`

	// Type names the structure in the catalogue.
	Type string `yaml:"type"`

	// Ends lists end names in structure order (N, E, S, W for singles).
	Ends []string `yaml:"ends"`

	// Input marks each end as input (1) or output (0).
	Input []int `yaml:"input,omitempty"`

	// Use is a per-end string of role letters, overriding Input when set.
	Use string `yaml:"use,omitempty"`

	// Label is a distinguishing mark; labelled tiles only merge with labelled tiles.
	Label string `yaml:"label,omitempty"`

	// Fake marks duplicates that are kept for reference but take no part in reduction.
	Fake bool `yaml:"fake,omitempty"`
}

// Colored reports whether the tile carries a label.
func (t Tile) Colored() bool { return t.Label != "" }

// Annotated reports whether the tile carries input or use roles.
func (t Tile) Annotated() bool { return t.Use != "" || len(t.Input) > 0 }

// Roles returns the per-end roles of t. Tiles without annotations get
// RoleUnset on every end.
func (t Tile) Roles() ([]Role, error) {
	roles := make([]Role, len(t.Ends))
	switch {
	case t.Use != "":
		letters := []rune(t.Use)
		if len(letters) != len(t.Ends) {
			return nil, fmt.Errorf("%w: tile %q use %q has %d letters for %d ends",
				ErrBadRole, t.Name, t.Use, len(letters), len(t.Ends))
		}
		for i, l := range letters {
			r, err := ParseRole(l)
			if err != nil {
				return nil, fmt.Errorf("tile %q: %w", t.Name, err)
			}
			roles[i] = r
		}
	case len(t.Input) > 0:
		if len(t.Input) != len(t.Ends) {
			return nil, fmt.Errorf("%w: tile %q has %d inputs for %d ends",
				ErrBadRole, t.Name, len(t.Input), len(t.Ends))
		}
		for i, in := range t.Input {
			switch in {
			case 0:
				roles[i] = RoleOutput
			case 1:
				roles[i] = RoleInput
			default:
				return nil, fmt.Errorf("%w: tile %q input %d", ErrBadRole, t.Name, in)
			}
		}
	}

	return roles, nil
}

// Clone returns a deep copy of t.
func (t Tile) Clone() Tile {
	c := t
	c.Ends = append([]string(nil), t.Ends...)
	if t.Input != nil {
		c.Input = append([]int(nil), t.Input...)
	}

	return c
}

// TileSet is a complete tile system.
type TileSet struct {
	Tiles []Tile         `yaml:"tiles"`
	Ends  []End          `yaml:"ends,omitempty"`
	Seed  *Seed          `yaml:"seed,omitempty"`
	Info  map[string]any `yaml:"info,omitempty"`
}

// BaseName strips the complement suffix from an end name.
func BaseName(name string) string {
	return strings.TrimSuffix(name, ComplementSuffix)
}

// Complement returns the name of the complement of an end name.
func Complement(name string) string {
	if strings.HasSuffix(name, ComplementSuffix) {
		return BaseName(name)
	}

	return name + ComplementSuffix
}
