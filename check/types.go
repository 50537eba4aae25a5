package check

import (
	"errors"
	"fmt"
)

// Sentinel errors mirroring non-passing verdicts.
var (
	// ErrConflict is the error form of a Conflict verdict.
	ErrConflict = errors.New("check: conflict")

	// ErrUnresolvable is the error form of an Unresolvable verdict.
	ErrUnresolvable = errors.New("check: unresolvable violation")

	// ErrLatticeDefect is the error form of a Defect verdict.
	ErrLatticeDefect = errors.New("check: lattice defect detected")

	// ErrUnknownPreserve indicates an unknown property name in a preserve list.
	ErrUnknownPreserve = errors.New("check: unknown preserved property")

	// ErrBadDepth indicates a lattice-defect depth below 2.
	ErrBadDepth = errors.New("check: lattice defect depth must be at least 2")
)

// Checker names used in verdicts.
const (
	NameDeterminism   = "s1"
	NameSensitivity2  = "s2"
	NameSensitivity22 = "s22"
	NameLattice       = "ld"
)

// Kind classifies a verdict.
type Kind int

const (
	// Pass means the property holds.
	Pass Kind = iota
	// Conflict means the property fails with a repairable pair.
	Conflict
	// Unresolvable means the property fails without a repair pair.
	Unresolvable
	// Defect means a new lattice defect appeared.
	Defect
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Conflict:
		return "conflict"
	case Unresolvable:
		return "unresolvable"
	case Defect:
		return "defect"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pair names two tiles (or facets) involved in a conflict.
type Pair [2]string

// Verdict is the outcome of one checker, or of a Suite.
type Verdict struct {
	Kind    Kind
	Checker string

	// Pair is set for Conflict verdicts.
	Pair Pair

	// Path optionally names the tiles through which a sensitivity was found.
	Path []string

	// Defects lists the new defects of a Defect verdict.
	Defects []LatticeDefect
}

// OK reports whether the verdict passes.
func (v Verdict) OK() bool { return v.Kind == Pass }

// Err returns nil for passing verdicts and a wrapped sentinel otherwise.
func (v Verdict) Err() error {
	switch v.Kind {
	case Pass:
		return nil
	case Conflict:
		return fmt.Errorf("%w (%s): %s, %s", ErrConflict, v.Checker, v.Pair[0], v.Pair[1])
	case Defect:
		return fmt.Errorf("%w: %d new", ErrLatticeDefect, len(v.Defects))
	default:
		return fmt.Errorf("%w (%s)", ErrUnresolvable, v.Checker)
	}
}

func pass() Verdict { return Verdict{Kind: Pass} }

func conflict(checker, a, b string) Verdict {
	return Verdict{Kind: Conflict, Checker: checker, Pair: Pair{a, b}}
}
