package glue

import (
	"fmt"

	"github.com/katalvlaran/tilereduce/equiv"
)

// Merge unifies the classes of glues a and b, and symmetrically the classes of
// their complements, returning a new map. m is never modified, so a failed
// attempt needs no rollback.
//
// Checks, in order: structure class, strength, self-complementarity and, when
// preserveUse is set, role markers.
//
// Complexity: O(n) for the copy and relabelling.
func (t *Table) Merge(m equiv.Map, a, b int, preserveUse bool) (equiv.Map, error) {
	if a < 0 || a >= t.Len() || b < 0 || b >= t.Len() {
		return nil, fmt.Errorf("%w: index %d or %d", ErrUnknownGlue, a, b)
	}
	switch {
	case t.class[a] != t.class[b]:
		return nil, fmt.Errorf("%w: %s (%s) vs %s (%s)",
			ErrStructureMismatch, t.name[a], t.class[a], t.name[b], t.class[b])
	case t.strength[a] != t.strength[b]:
		return nil, fmt.Errorf("%w: %s (%d) vs %s (%d)",
			ErrStrengthMismatch, t.name[a], t.strength[a], t.name[b], t.strength[b])
	case m[a] == m[t.complement[b]]:
		return nil, fmt.Errorf("%w: %s and %s", ErrSelfComplement, t.name[a], t.name[b])
	case preserveUse && t.use[a] != t.use[b]:
		return nil, fmt.Errorf("%w: %s (%s) vs %s (%s)",
			ErrUseMismatch, t.name[a], t.use[a], t.name[b], t.use[b])
	}

	out := m.Union(a, b)
	// Union on out, not m: the complement classes are untouched by the first
	// union because a's class never contains b's complement.
	return out.Union(t.complement[a], t.complement[b]), nil
}

// MergeNames is Merge addressed by glue names.
func (t *Table) MergeNames(m equiv.Map, a, b string, preserveUse bool) (equiv.Map, error) {
	ga, err := t.ID(a)
	if err != nil {
		return nil, err
	}
	gb, err := t.ID(b)
	if err != nil {
		return nil, err
	}

	return t.Merge(m, ga, gb, preserveUse)
}

// Representative returns the name of the class representative of glue name.
func (t *Table) Representative(m equiv.Map, name string) (string, error) {
	g, err := t.ID(name)
	if err != nil {
		return "", err
	}

	return t.name[m[g]], nil
}
