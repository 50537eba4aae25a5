package check

import (
	"slices"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Inputs holds, per facet array (singles, horizontal, vertical) and per used
// row of that array in ascending order, the rows that could attach to the
// row's input neighbourhood.
type Inputs [3][][]int

// PotentialInputs computes, for every used facet, the facets whose glues on
// the facet's input edges match under m with total strength at least tau.
// Fake doubles are never candidates: they are two singles and cannot attach
// as one.
//
// Complexity: O(U · R · w) per array, U used rows, R rows, w ends per row.
func PotentialInputs(ft *facet.Table, gt *glue.Table, m equiv.Map, tau int) Inputs {
	var out Inputs
	for k, a := range ft.Arrays() {
		used := a.UsedRows()
		out[k] = make([][]int, len(used))
		for p, ti := range used {
			var inputs []int
			for e, u := range a.Use[ti] {
				if u == tileset.RoleInput {
					inputs = append(inputs, e)
				}
			}
			var matches []int
			for j := 0; j < a.Len(); j++ {
				if a.DFake[j] != 0 {
					continue
				}
				strength := 0
				for _, e := range inputs {
					g := a.Glues[ti][e]
					if m[g] == m[a.Glues[j][e]] {
						strength += gt.Strength(g)
					}
				}
				if strength >= tau {
					matches = append(matches, j)
				}
			}
			out[k][p] = matches
		}
	}

	return out
}

// identical reports whether rows i and j of a carry the same glues under m and
// the same colour.
func identical(a *facet.Array, m equiv.Map, i, j int) bool {
	if a.Color[i] != a.Color[j] {
		return false
	}
	for e := range a.Glues[i] {
		if m[a.Glues[i][e]] != m[a.Glues[j][e]] {
			return false
		}
	}

	return true
}

// Determinism compares the potential input sets under m with the baseline.
// An unchanged set passes. When the baseline set has one member, every new
// member must be identical to it, else the pair (baseline, newcomer) is a
// Conflict. A changed set whose baseline was empty is Unresolvable; for a
// larger baseline each newcomer must be identical to some baseline member.
func Determinism(ft *facet.Table, gt *glue.Table, base Inputs, m equiv.Map) Verdict {
	cur := PotentialInputs(ft, gt, m, ft.Tau())
	for k, a := range ft.Arrays() {
		for p := range base[k] {
			was, now := base[k][p], cur[k][p]
			if slices.Equal(was, now) {
				continue
			}
			if len(was) == 0 {
				return Verdict{Kind: Unresolvable, Checker: NameDeterminism}
			}
			for _, j := range now {
				if slices.Contains(was, j) {
					continue
				}
				matched := false
				for _, w := range was {
					if identical(a, m, w, j) {
						matched = true
						break
					}
				}
				if !matched {
					return conflict(NameDeterminism, a.Name[was[0]], a.Name[j])
				}
			}
		}
	}

	return pass()
}

// Nondeterministic lists, for every used facet, the facets that could attach
// in its place under m without being identical to it. A deterministic system
// yields nil.
func Nondeterministic(ft *facet.Table, gt *glue.Table, m equiv.Map) []Pair {
	in := PotentialInputs(ft, gt, m, ft.Tau())
	var out []Pair
	for k, a := range ft.Arrays() {
		for p, ti := range a.UsedRows() {
			for _, j := range in[k][p] {
				if j != ti && !identical(a, m, ti, j) {
					out = append(out, Pair{a.Name[ti], a.Name[j]})
				}
			}
		}
	}

	return out
}
