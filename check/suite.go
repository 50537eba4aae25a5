package check

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
)

// Checks is a set of properties to preserve.
type Checks uint8

const (
	// CheckDeterminism preserves aTAM determinism (first-order sensitivity).
	CheckDeterminism Checks = 1 << iota
	// CheckSensitivity2 preserves second-order sensitivity.
	CheckSensitivity2
	// CheckSensitivity22 preserves 2×2 sensitivity.
	CheckSensitivity22
	// CheckLattice rejects new lattice defects.
	CheckLattice
	// CheckGlueSense forbids merging glues of different roles.
	CheckGlueSense
)

// DefaultChecks is the preserve set used when none is given.
const DefaultChecks = CheckDeterminism | CheckSensitivity22 | CheckLattice

// DefaultLatticeDepth is the branch depth of lattice-defect detection.
const DefaultLatticeDepth = 2

var checkNames = []struct {
	name string
	c    Checks
}{
	{NameDeterminism, CheckDeterminism},
	{NameSensitivity2, CheckSensitivity2},
	{NameSensitivity22, CheckSensitivity22},
	{NameLattice, CheckLattice},
	{"gs", CheckGlueSense},
}

// ParsePreserve converts property names (s1, s2, s22, ld, gs) into Checks.
// Determinism is always included.
func ParsePreserve(names []string) (Checks, error) {
	c := CheckDeterminism
	for _, n := range names {
		found := false
		for _, cn := range checkNames {
			if strings.EqualFold(strings.TrimSpace(n), cn.name) {
				c |= cn.c
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownPreserve, n)
		}
	}

	return c, nil
}

// Has reports whether every check in o is in c.
func (c Checks) Has(o Checks) bool { return c&o == o }

// Names lists the property names in c.
func (c Checks) Names() []string {
	var out []string
	for _, cn := range checkNames {
		if c.Has(cn.c) {
			out = append(out, cn.name)
		}
	}

	return out
}

// String implements fmt.Stringer.
func (c Checks) String() string { return strings.Join(c.Names(), ",") }

// Suite runs a fixed set of checkers against candidate maps, comparing with
// profiles of the unmerged system computed once at construction. A Suite is
// read-only after NewSuite and safe for concurrent use.
type Suite struct {
	ft     *facet.Table
	gt     *glue.Table
	checks Checks
	depth  int

	inputs  Inputs
	maps2   map[int]MoveMap
	maps22  map[int]MoveMap
	prof2   [][]int
	prof22  [][]int
	defects map[ldKey]struct{}
}

// NewSuite computes the baselines the requested checks need. Baselines always
// use the identity map, whatever map a reduction starts from.
func NewSuite(ft *facet.Table, gt *glue.Table, checks Checks, latticeDepth int) (*Suite, error) {
	checks |= CheckDeterminism
	if checks.Has(CheckLattice) && latticeDepth < 2 {
		return nil, fmt.Errorf("%w: %d", ErrBadDepth, latticeDepth)
	}
	id := gt.Identity()
	s := &Suite{ft: ft, gt: gt, checks: checks, depth: latticeDepth}
	s.inputs = PotentialInputs(ft, gt, id, ft.Tau())
	if checks.Has(CheckSensitivity2) {
		s.maps2 = Maps(ft, gt, SecondOrder.MapDepth)
		s.prof2 = Profile(ft, gt, id, s.maps2, SecondOrder)
	}
	if checks.Has(CheckSensitivity22) {
		s.maps22 = Maps(ft, gt, TwoByTwo.MapDepth)
		s.prof22 = Profile(ft, gt, id, s.maps22, TwoByTwo)
	}
	if checks.Has(CheckLattice) {
		s.defects = make(map[ldKey]struct{})
		for _, c := range []Corner{CornerEast, CornerWest} {
			for _, k := range latticeKeys(ft, gt, id, c, latticeDepth) {
				s.defects[k] = struct{}{}
			}
		}
	}

	return s, nil
}

// Checks returns the checks the suite runs.
func (s *Suite) Checks() Checks { return s.checks }

// PreserveUse reports whether glue merges must keep role markers apart.
func (s *Suite) PreserveUse() bool { return s.checks.Has(CheckGlueSense) }

// Facets returns the facet table the suite checks against.
func (s *Suite) Facets() *facet.Table { return s.ft }

// Glues returns the glue table the suite checks against.
func (s *Suite) Glues() *glue.Table { return s.gt }

// Check runs determinism, then 2GO, 2×2 and lattice-defect checks as
// requested, and returns the first non-passing verdict.
func (s *Suite) Check(m equiv.Map) Verdict {
	if v := Determinism(s.ft, s.gt, s.inputs, m); !v.OK() {
		return v
	}
	if s.checks.Has(CheckSensitivity2) {
		if v := Sensitivity(s.ft, s.gt, m, s.maps2, s.prof2, SecondOrder, NameSensitivity2); !v.OK() {
			return v
		}
	}
	if s.checks.Has(CheckSensitivity22) {
		if v := Sensitivity(s.ft, s.gt, m, s.maps22, s.prof22, TwoByTwo, NameSensitivity22); !v.OK() {
			return v
		}
	}
	if s.checks.Has(CheckLattice) {
		if d := newDefects(s.ft, s.gt, m, s.depth, s.defects); len(d) > 0 {
			return Verdict{Kind: Defect, Checker: NameLattice, Defects: d}
		}
	}

	return pass()
}
