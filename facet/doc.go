// Package facet builds the tile table consumed by the constraint checkers:
// three parallel row-per-facet arrays for single tiles, horizontal doubles and
// vertical doubles.
//
// Checkers only reason about single-tile neighbourhoods, so every double tile
// is split into two single facets joined by the zero-strength "fakedouble"
// glue (role Permanent on the joint). Conversely, for every single facet and
// each of its non-input edges, a fake double is synthesized with every used
// single that takes that edge as input, so that double-tile neighbourhoods
// can be compared as well.
//
// Directions are indexed N=0, E=1, S=2, W=3 on single facets. Doubles carry
// six ends: NW, NE, E, SE, SW, W for horizontal doubles and N, NE, SE, S, SW,
// NW for vertical ones.
package facet
