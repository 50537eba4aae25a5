// Package glue builds the canonical array-of-glues view of a tile set and
// implements the pure merge operation on equivalence maps.
//
// Every declared end i contributes two glues: 2i (the end) and 2i+1 (its
// complement, named "<name>/"). Two synthetic ends are appended: "hp"
// (hairpin) and "fakedouble" (the zero-strength joint of split double tiles).
//
// Errors (sentinel):
//
//	ErrStructureMismatch - the glues belong to different structure classes.
//	ErrStrengthMismatch  - the glues have different strengths.
//	ErrSelfComplement    - the merge would make a class self-complementary.
//	ErrUseMismatch       - glue sense is preserved and the roles differ.
//	ErrUnknownGlue       - a name or index does not resolve.
package glue
