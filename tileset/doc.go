// Package tileset defines the tile-system values consumed by the reduction
// engine: ends (glues) with their structural class and strength, tiles with
// their structure, edge ends and input/use roles, and the TileSet that holds
// both together with seed adapters and free-form metadata.
//
// Errors:
//
//	ErrUnknownStructure - a tile names a structure missing from the catalogue.
//	ErrBadRole          - an input/use annotation cannot be parsed.
//	ErrEndCount         - a tile carries the wrong number of ends for its shape.
//	ErrUndeclaredEnd    - a tile references an end whose class cannot be inferred.
//	ErrDuplicateName    - two tiles or two ends share a name.
//	ErrTileNotFound     - Tile(name) found nothing.
package tileset
