// Package fixtures provides small tile systems shared by package tests.
// Every constructor returns a fresh value.
package fixtures

import "github.com/katalvlaran/tilereduce/tileset"

func ends(strength int, names ...string) []tileset.End {
	out := make([]tileset.End, len(names))
	for i, n := range names {
		out[i] = tileset.End{Name: n, Type: "TD", Strength: strength}
	}

	return out
}

func single(name, use string, e ...string) tileset.Tile {
	return tileset.Tile{Name: name, Type: "single", Ends: e, Use: use}
}

// Pair is two unannotated tiles over ends a and b. With the synthetic
// hairpin and fake-double ends the glue table holds four end pairs; merging
// a with b leaves three.
func Pair() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1, "a", "b"),
		Tiles: []tileset.Tile{
			single("T1", "", "a", "b", "a/", "b/"),
			single("T2", "", "b", "a", "b/", "a/"),
		},
	}
}

// Strengths declares a (strength 1) and c (strength 2).
func Strengths() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: []tileset.End{
			{Name: "a", Type: "TD", Strength: 1},
			{Name: "c", Type: "TD", Strength: 2},
		},
		Tiles: []tileset.Tile{single("T", "", "a", "c", "a/", "c/")},
	}
}

// Determinism holds T1 and T2, both taking input n on the north edge and
// distinct inputs w1, w2 on the west edge. Merging w1 with w2 lets T2 attach
// where T1 belongs; merging the whole tiles repairs that.
func Determinism() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1, "n", "e1", "s1", "w1", "e2", "s2", "w2"),
		Tiles: []tileset.Tile{
			single("T1", "IOOI", "n", "e1", "s1", "w1"),
			single("T2", "IOOI", "n", "e2", "s2", "w2"),
		},
	}
}

// Sensitivity is a neighbourhood in which merging qn with jn makes U, a
// first-order partner of T, second-order sensitive: with U in place of T,
// Q can attach east of U and present the north input J expects there.
func Sensitivity() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1,
			"n", "e", "s", "w",
			"jn", "je", "js",
			"ke", "ks", "kw",
			"ue", "us", "uw",
			"qn", "qe", "qs"),
		Tiles: []tileset.Tile{
			single("T", "IOOI", "n", "e", "s", "w"),
			single("J", "IOOI", "jn", "je", "js", "e/"),
			single("K", "IOOI", "s/", "ke", "ks", "kw"),
			single("U", "IOOI", "n", "ue", "us", "uw"),
			single("Q", "IOOI", "qn", "qe", "qs", "ue/"),
		},
	}
}

// Lattice grows two branches of length two from S, north through A1, A2 and
// east through B1, B2. Merging x with y lets C bind both A2 (east) and B2
// (north), closing a depth-2 lattice defect. Tiles carry use annotations
// when used is set.
func Lattice(used bool) *tileset.TileSet {
	use := ""
	if used {
		use = "IOOI"
	}

	return &tileset.TileSet{
		Ends: ends(1,
			"sa", "sb", "a1", "b1", "x", "y",
			"d1", "d2", "d3", "d4", "d5", "d6",
			"d7", "d8", "d9", "d10", "d11", "d12"),
		Tiles: []tileset.Tile{
			single("S", use, "sa", "sb", "d1", "d2"),
			single("A1", use, "a1", "d3", "sa/", "d4"),
			single("A2", use, "d5", "x", "a1/", "d6"),
			single("B1", use, "d7", "b1", "d8", "sb/"),
			single("B2", use, "y", "d9", "d10", "b1/"),
			single("C", use, "d11", "d12", "x/", "x/"),
		},
	}
}

// Double is one horizontal double with inputs on its NW and W ends, so only
// its western half is used.
func Double() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1, "a", "b", "c", "d", "e", "f"),
		Tiles: []tileset.Tile{{
			Name:  "D",
			Type:  "doublehoriz",
			Ends:  []string{"a", "b", "c", "d", "e", "f"},
			Input: []int{1, 0, 0, 0, 0, 1},
		}},
	}
}

// Duplicates has two tiles that become identical once b merges into a.
func Duplicates() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1, "a", "b", "c", "unused"),
		Tiles: []tileset.Tile{
			single("T1", "", "a", "c", "a/", "c/"),
			single("T2", "", "b", "c", "b/", "c/"),
		},
		Seed: &tileset.Seed{Adapters: []tileset.Adapter{{Name: "A", Ends: []string{"b/"}}}},
	}
}

// Chain extends Determinism with V1 and V2, which take the east outputs of
// T1 and T2 as west inputs. Repairing the w1/w2 conflict merges T1 with T2,
// which unifies e1 with e2 and makes V1 and V2 compete in turn.
func Chain() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1, "n", "e1", "s1", "w1", "e2", "s2", "w2", "v", "x1", "y1", "x2", "y2"),
		Tiles: []tileset.Tile{
			single("T1", "IOOI", "n", "e1", "s1", "w1"),
			single("T2", "IOOI", "n", "e2", "s2", "w2"),
			single("V1", "IOOI", "v", "x1", "y1", "e1/"),
			single("V2", "IOOI", "v", "x2", "y2", "e2/"),
		},
	}
}

// TwoByTwo is a row T, J, L growing east next to a row U, Q, R, with T and
// U sharing their north input. Merging rn with ln lets R, two tiles east of
// U, present the north input L expects: visible to a search placing two
// tiles, invisible to one placing a single tile.
func TwoByTwo() *tileset.TileSet {
	return &tileset.TileSet{
		Ends: ends(1,
			"n", "e", "s", "w",
			"jn", "je", "js",
			"ln", "le", "ls",
			"ue", "us", "uw",
			"qn", "qe", "qs",
			"rn", "re", "rs"),
		Tiles: []tileset.Tile{
			single("T", "IOOI", "n", "e", "s", "w"),
			single("J", "IOOI", "jn", "je", "js", "e/"),
			single("L", "IOOI", "ln", "le", "ls", "je/"),
			single("U", "IOOI", "n", "ue", "us", "uw"),
			single("Q", "IOOI", "qn", "qe", "qs", "ue/"),
			single("R", "IOOI", "rn", "re", "rs", "qe/"),
		},
	}
}
