// Package tilereduce shrinks DNA tile systems by finding tiles and glue ends
// that can be treated as identical without changing how the system assembles.
//
// What does it preserve?
//
//	A candidate merge is accepted only if the merged system keeps:
//		• aTAM determinism (s1): no tile gains a competitor for its inputs
//		• second-order and 2×2 sensitivity (s2, s22): no new sensitive partners
//		• lattice-defect freedom (ld): no new closing tile for a branch pair
//		• optionally glue sense (gs): inputs only merge with inputs
//
// When determinism or sensitivity breaks with a named pair of tiles, the pair
// is merged too and the check repeats (backtracking repair); a repair chain
// that fails discards the candidate.
//
// Under the hood, everything is organized in small packages:
//
//	tileset/ : tile-set model, DAO-E structure catalogue, rotations, YAML I/O
//	equiv/   : flat equivalence maps over glue ids
//	glue/    : glue table and the merge primitive
//	facet/   : single, double and fake-double facets of every tile
//	check/   : determinism, sensitivity and lattice-defect checkers, Suite
//	repair/  : backtracking repair chains
//	reduce/  : trials, worker pool, ranking, apply-equivalence, config
//	cmd/tilereduce : command-line front end
//
// Quick start:
//
//	ts, _ := tileset.LoadFile("system.yaml")
//	res, _ := reduce.ReduceEnds(ctx, ts,
//		reduce.WithTries(50), reduce.WithThreads(8), reduce.WithReturnTileSet())
//	_ = res[0].TileSet.SaveFile("reduced.yaml")
//
// Trials are independent and reproducible under a fixed seed; see reduce.Pool
// for running many reductions on one bounded set of workers.
package tilereduce
