// Package reduce searches for smaller equivalent tile systems by merging
// glues, or whole tiles, while preserving the properties checked by a
// check.Suite.
//
// A reduction runs Tries independent trials. Each trial starts from the
// initial map (identity unless WithInitEquiv is given), shuffles the merge
// candidates with its own RNG stream, and walks them in order:
//
//	merge changes nothing   → count it Unchanged, no checks run
//	merge ok, checks pass   → keep the merged map
//	checks report Conflict  → repair.Fixer; keep its map on success
//	anything else           → skip the candidate
//
// Trial results are ranked ascending by Key (distinct glue classes by default)
// with a stable sort, and the best Best results are returned.
//
// Randomness: seed 0 selects a fixed default; trial i draws from a stream
// derived from (seed, i), so results are reproducible for any thread count.
//
// Errors (sentinel):
//
//	– ErrOptionViolation if an option is out of range.
//	– ErrPoolClosed      if an injected Pool was closed.
//	– ErrNilTileSet      if the tile set is nil.
//
// Structure errors from building the glue and facet tables abort the run.
// Merge and check failures never do: they are counted per trial in Stats.
package reduce
