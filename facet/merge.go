package facet

import (
	"fmt"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/glue"
)

// MergeTiles merges two whole tiles edge by edge. Both must share structure
// and colour; any glue-level failure aborts the merge and m is left untouched.
func MergeTiles(gt *glue.Table, m equiv.Map, a, b Facet, preserveUse bool) (equiv.Map, error) {
	if a.Structure != b.Structure {
		return nil, fmt.Errorf("%w: %s (%s) vs %s (%s)",
			ErrStructureMismatch, a.Name, a.Structure, b.Name, b.Structure)
	}
	if a.Color != b.Color {
		return nil, fmt.Errorf("%w: %s vs %s", ErrColorMismatch, a.Name, b.Name)
	}
	out := m
	for i := range a.Glues {
		next, err := gt.Merge(out, a.Glues[i], b.Glues[i], preserveUse)
		if err != nil {
			return nil, fmt.Errorf("merge %s/%s edge %d: %w", a.Name, b.Name, i, err)
		}
		out = next
	}

	return out, nil
}

// MergeNamed resolves both tile names and merges them.
func (t *Table) MergeNamed(gt *glue.Table, m equiv.Map, a, b string, preserveUse bool) (equiv.Map, error) {
	fa, err := t.Tile(a)
	if err != nil {
		return nil, err
	}
	fb, err := t.Tile(b)
	if err != nil {
		return nil, err
	}

	return MergeTiles(gt, m, fa, fb, preserveUse)
}
