package glue

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Sentinel errors for glue lookups and merges. All merge errors are local:
// the caller drops the candidate and carries on.
var (
	ErrStructureMismatch = errors.New("glue: structure mismatch")
	ErrStrengthMismatch  = errors.New("glue: strength mismatch")
	ErrSelfComplement    = errors.New("glue: self-complementary merge")
	ErrUseMismatch       = errors.New("glue: use mismatch")
	ErrUnknownGlue       = errors.New("glue: unknown glue")
)

// Table is the immutable glue catalogue of one tile set.
type Table struct {
	name       []string
	strength   []int
	class      []string
	complement []int
	use        []tileset.Role
	index      map[string]int
}

// NewTable builds a Table from ends followed by the synthetic hairpin and
// fake-double ends. Ends named like a synthetic end are rejected.
func NewTable(ends []tileset.End) (*Table, error) {
	all := make([]tileset.End, 0, len(ends)+2)
	for _, e := range ends {
		if e.Name == tileset.HairpinName || e.Name == tileset.FakeDoubleName {
			return nil, fmt.Errorf("%w: %q is reserved", tileset.ErrDuplicateName, e.Name)
		}
		all = append(all, e)
	}
	all = append(all,
		tileset.End{Name: tileset.HairpinName, Type: tileset.ClassHairpin, Strength: 0},
		tileset.End{Name: tileset.FakeDoubleName, Type: tileset.ClassFakeDouble, Strength: 0},
	)

	n := 2 * len(all)
	t := &Table{
		name:       make([]string, 0, n),
		strength:   make([]int, 0, n),
		class:      make([]string, 0, n),
		complement: make([]int, 0, n),
		use:        make([]tileset.Role, 0, n),
		index:      make(map[string]int, n),
	}
	for i, e := range all {
		if _, dup := t.index[e.Name]; dup {
			return nil, fmt.Errorf("%w: end %q", tileset.ErrDuplicateName, e.Name)
		}
		role, err := e.Role()
		if err != nil {
			return nil, fmt.Errorf("end %q: %w", e.Name, err)
		}
		comp := e.Name + tileset.ComplementSuffix
		t.name = append(t.name, e.Name, comp)
		t.complement = append(t.complement, 2*i+1, 2*i)
		t.class = append(t.class, e.Type, e.Type)
		t.strength = append(t.strength, e.Strength, e.Strength)
		t.use = append(t.use, role, role.Invert())
		t.index[e.Name] = 2 * i
		t.index[comp] = 2*i + 1
	}

	return t, nil
}

// FromTileSet builds the Table of every end of ts, declared or inferred.
func FromTileSet(ts *tileset.TileSet) (*Table, error) {
	ends, err := ts.AllEnds()
	if err != nil {
		return nil, err
	}

	return NewTable(ends)
}

// Len returns the number of glues, complements included.
func (t *Table) Len() int { return len(t.name) }

// Name returns the name of glue g.
func (t *Table) Name(g int) string { return t.name[g] }

// Names returns the glue names in index order. The slice is shared; do not modify.
func (t *Table) Names() []string { return t.name }

// ID resolves a glue name ("a" or "a/").
func (t *Table) ID(name string) (int, error) {
	g, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGlue, name)
	}

	return g, nil
}

// MustID is ID for names known to exist, such as the synthetic ends.
func (t *Table) MustID(name string) int {
	g, err := t.ID(name)
	if err != nil {
		panic(err)
	}

	return g
}

// Complement returns the complement of glue g.
func (t *Table) Complement(g int) int { return t.complement[g] }

// Complements returns the complement array. The slice is shared; do not modify.
func (t *Table) Complements() []int { return t.complement }

// Strength returns the binding strength of glue g.
func (t *Table) Strength(g int) int { return t.strength[g] }

// Class returns the structure class of glue g.
func (t *Table) Class(g int) string { return t.class[g] }

// Use returns the role marker of glue g; complements carry the inverted role.
func (t *Table) Use(g int) tileset.Role { return t.use[g] }

// Identity returns the map with every glue in its own class.
func (t *Table) Identity() equiv.Map { return equiv.Identity(t.Len()) }

// Comp reports whether glues a and b bind under m: a's complement is in b's class.
func (t *Table) Comp(m equiv.Map, a, b int) bool { return m[t.complement[a]] == m[b] }
