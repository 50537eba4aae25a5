// Package repair implements backtracking repair of conflicting merges.
//
// When a candidate map fails a Suite with a Conflict naming two tiles, Fix
// merges those two tiles into that map and re-checks. A fresh Conflict extends
// the chain and the loop continues; a pass ends it successfully. Structural merge failures,
// lookup failures, unresolvable violations and lattice defects abandon the
// chain, and the caller discards the original candidate.
//
// Every attempt is recorded in a Chain so depth and outcome can be inspected.
// Chains are bounded by a maximum length (ErrChainTooLong) and by a
// visited-pair set: a pair that comes back within one chain fails with
// ErrRepairCycle. A check.Suite never reports a pair it has already seen
// merged, since merged tiles are identical; the guard holds for any Checker.
package repair
