// Package check implements the constraint checkers run against a candidate
// equivalence map: aTAM determinism, k-hop sensitivity and lattice defects.
//
// Every checker is a pure function of the facet table, the glue table and the
// map; baselines (the unmerged system's profiles) are computed once by Suite
// and compared against on every candidate. A checker answers with a Verdict:
//
//	Pass         - the map preserves the property.
//	Conflict     - the map breaks the property; Pair names two tiles whose
//	               merge may repair it.
//	Unresolvable - the map breaks the property and no repair pair exists.
//	Defect       - the map introduces a lattice defect; never repaired.
package check
