package reduce

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Info keys written by Apply and Annotate.
const (
	InfoGlueMerge  = "fgluemerge"
	InfoReductions = "reductions"
)

// Provenance describes the run that produced an applied map.
type Provenance struct {
	RunID    string   `yaml:"run_id"`
	Kind     string   `yaml:"kind"`
	Trial    int      `yaml:"trial"`
	Preserve []string `yaml:"preserve"`
	Seed     int64    `yaml:"seed"`
	Score    int      `yaml:"score"`
	Classes  int      `yaml:"classes"`
}

// Apply returns a copy of ts with m applied: every tile and seed adapter end
// is renamed to its class representative, tiles duplicating an earlier tile
// (or one of its rotations) with the same labelled-ness are marked Fake, end
// definitions no longer referenced are dropped, and m is appended to
// Info["fgluemerge"]. ts is not modified.
func Apply(ts *tileset.TileSet, gt *glue.Table, m equiv.Map) (*tileset.TileSet, error) {
	if ts == nil {
		return nil, ErrNilTileSet
	}
	if len(m) != gt.Len() {
		return nil, fmt.Errorf("%w: map length %d, %d glues", equiv.ErrLength, len(m), gt.Len())
	}
	out := ts.Clone()
	rename := func(ends []string) error {
		for i, e := range ends {
			g, err := gt.ID(e)
			if err != nil {
				return err
			}
			ends[i] = gt.Name(m[g])
		}

		return nil
	}

	type seenKey struct {
		ends    string
		colored bool
	}
	key := func(t tileset.Tile) seenKey {
		return seenKey{ends: fmt.Sprintf("%q", t.Ends), colored: t.Colored()}
	}
	seen := make(map[seenKey]struct{})
	for i := range out.Tiles {
		t := &out.Tiles[i]
		if err := rename(t.Ends); err != nil {
			return nil, fmt.Errorf("tile %q: %w", t.Name, err)
		}
		if _, dup := seen[key(*t)]; dup {
			t.Fake = true
			continue
		}
		rots, err := t.Rotations()
		if err != nil {
			return nil, err
		}
		seen[key(*t)] = struct{}{}
		for _, r := range rots {
			seen[key(r)] = struct{}{}
		}
	}
	if out.Seed != nil {
		for i := range out.Seed.Adapters {
			a := &out.Seed.Adapters[i]
			if err := rename(a.Ends); err != nil {
				return nil, fmt.Errorf("adapter %q: %w", a.Name, err)
			}
		}
	}

	kept := out.Ends[:0:0]
	for _, e := range out.Ends {
		g, err := gt.ID(e.Name)
		if err != nil {
			return nil, err
		}
		if m[g] == g || m[g+1] == g+1 {
			kept = append(kept, e)
		}
	}
	out.Ends = kept

	appendInfo(out, InfoGlueMerge, slices.Clone([]int(m)))

	return out, nil
}

// Annotate appends a provenance record to Info["reductions"].
func Annotate(ts *tileset.TileSet, p Provenance) {
	appendInfo(ts, InfoReductions, p)
}

func appendInfo(ts *tileset.TileSet, key string, v any) {
	if ts.Info == nil {
		ts.Info = make(map[string]any)
	}
	switch cur := ts.Info[key].(type) {
	case nil:
		ts.Info[key] = []any{v}
	case []any:
		ts.Info[key] = append(slices.Clone(cur), v)
	default:
		ts.Info[key] = []any{cur, v}
	}
}

// MergePair names a glue merged into a class representative.
type MergePair struct {
	Representative string `yaml:"representative"`
	Member         string `yaml:"member"`
}

// MergeSpec lists every (representative, member) pair of m in glue order,
// skipping representatives themselves.
func MergeSpec(gt *glue.Table, m equiv.Map) []MergePair {
	var out []MergePair
	for g, rep := range m {
		if g != rep {
			out = append(out, MergePair{Representative: gt.Name(rep), Member: gt.Name(g)})
		}
	}

	return out
}

// TileCount returns a Key counting the distinct non-fake tiles of ts after
// applying a map. Maps that fail to apply score as the unreduced tile count.
func TileCount(ts *tileset.TileSet, gt *glue.Table) Key {
	return func(m equiv.Map) int {
		applied, err := Apply(ts, gt, m)
		if err != nil {
			return len(ts.RealTiles())
		}

		return len(applied.RealTiles())
	}
}

// MapFromSpec rebuilds a map from merge pairs by merging each member into its
// representative, starting from the identity. It is the inverse of MergeSpec.
func MapFromSpec(gt *glue.Table, pairs []MergePair) (equiv.Map, error) {
	m := gt.Identity()
	for _, p := range pairs {
		next, err := gt.MergeNames(m, p.Representative, p.Member, false)
		if err != nil {
			return nil, fmt.Errorf("merge %s into %s: %w", p.Member, p.Representative, err)
		}
		m = next
	}

	return m, nil
}
