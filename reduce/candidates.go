package reduce

import (
	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
)

// candidate is a pair of tile indices into facet.Table.Tiles (KindTiles) or
// of glue ids (KindEnds).
type candidate [2]int

// TilePairs lists the tile-merge candidates of ft: each used tile paired
// with every later tile of the same colour and structure and a different
// name, rotations included.
//
// Complexity: O(T²), T = original plus rotated tiles.
func TilePairs(ft *facet.Table) [][2]string {
	tiles := ft.Tiles()
	var out [][2]string
	for _, c := range tilePairs(ft) {
		out = append(out, [2]string{tiles[c[0]].Name, tiles[c[1]].Name})
	}

	return out
}

func tilePairs(ft *facet.Table) []candidate {
	tiles := ft.Tiles()
	var out []candidate
	for i, a := range tiles {
		if !a.Used {
			continue
		}
		for j := i + 1; j < len(tiles); j++ {
			b := tiles[j]
			if a.Color == b.Color && a.Structure == b.Structure && a.Name != b.Name {
				out = append(out, candidate{i, j})
			}
		}
	}

	return out
}

// GluePairs lists the glue-merge candidates of gt: every pair g1 < g2 of
// equal strength and structure class.
//
// Complexity: O(G²), G = number of glues.
func GluePairs(gt *glue.Table) [][2]string {
	var out [][2]string
	for _, c := range gluePairs(gt) {
		out = append(out, [2]string{gt.Name(c[0]), gt.Name(c[1])})
	}

	return out
}

func gluePairs(gt *glue.Table) []candidate {
	var out []candidate
	for a := 0; a < gt.Len(); a++ {
		for b := a + 1; b < gt.Len(); b++ {
			if gt.Strength(a) == gt.Strength(b) && gt.Class(a) == gt.Class(b) {
				out = append(out, candidate{a, b})
			}
		}
	}

	return out
}
