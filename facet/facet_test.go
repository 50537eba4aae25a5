package facet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilereduce/facet"
	"github.com/katalvlaran/tilereduce/glue"
	"github.com/katalvlaran/tilereduce/internal/fixtures"
	"github.com/katalvlaran/tilereduce/tileset"
)

func build(t *testing.T, ts *tileset.TileSet) (*glue.Table, *facet.Table) {
	t.Helper()
	gt, err := glue.FromTileSet(ts)
	require.NoError(t, err)
	ft, err := facet.Build(ts.Tiles, gt, facet.DefaultTau)
	require.NoError(t, err)

	return gt, ft
}

func TestBuild_SplitsDoubles(t *testing.T) {
	gt, ft := build(t, fixtures.Double())
	s := ft.Singles
	require.Equal(t, 2, s.Len())

	assert.Equal(t, []string{"D_fakedouble_a", "D_fakedouble_b"}, s.Name)
	assert.Equal(t, []bool{true, false}, s.Used, "only the western half has two inputs")
	assert.Equal(t, []int{1, -1}, s.SFake)

	fd := gt.MustID(tileset.FakeDoubleName)
	assert.Equal(t, []int{gt.MustID("a"), fd, gt.MustID("e"), gt.MustID("f")}, s.Glues[0])
	assert.Equal(t, []tileset.Role{tileset.RoleInput, tileset.RolePermanent, tileset.RoleOutput, tileset.RoleInput}, s.Use[0])
	assert.Equal(t, []int{gt.MustID("b"), gt.MustID("c"), gt.MustID("d"), fd}, s.Glues[1])

	// The real double plus the sibling doubles synthesized from each half.
	h := ft.Horizontal
	require.Equal(t, 3, h.Len())
	assert.Equal(t, "D", h.Name[0])
	assert.Equal(t, 0, h.DFake[0])
	assert.Equal(t, facet.East+1, h.DFake[1])
	assert.Equal(t, facet.West+1, h.DFake[2])
	assert.Equal(t, 0, ft.Vertical.Len())
}

func TestBuild_FakeDoublesFollowInputs(t *testing.T) {
	gt, ft := build(t, fixtures.Sensitivity())
	// T feeds J to the east and K to the south; U feeds Q to the east.
	assert.Equal(t, []string{"T_1_J", "U_1_Q"}, ft.Horizontal.Name)
	assert.Equal(t, []string{"T_2_K"}, ft.Vertical.Name)

	h := ft.Horizontal.Row(0)
	assert.Equal(t, facet.East+1, h.DFake)
	want := []int{gt.MustID("n"), gt.MustID("jn"), gt.MustID("je"), gt.MustID("js"), gt.MustID("s"), gt.MustID("w")}
	assert.Equal(t, want, h.Glues)
	assert.Equal(t, tileset.HorizontalDouble.String(), h.Structure)
}

func TestBuild_Errors(t *testing.T) {
	gt, err := glue.FromTileSet(fixtures.Pair())
	require.NoError(t, err)

	_, err = facet.Build(nil, gt, 0)
	assert.ErrorIs(t, err, facet.ErrBadTau)

	bad := []tileset.Tile{{Name: "X", Type: "rhombus", Ends: []string{"a", "a", "a", "a"}}}
	_, err = facet.Build(bad, gt, 2)
	assert.ErrorIs(t, err, tileset.ErrUnknownStructure)

	dup := []tileset.Tile{
		{Name: "X", Type: "single", Ends: []string{"a", "a", "a", "a"}},
		{Name: "X", Type: "single", Ends: []string{"b", "b", "b", "b"}},
	}
	_, err = facet.Build(dup, gt, 2)
	assert.ErrorIs(t, err, tileset.ErrDuplicateName)
}

func TestFromTileSet_IncludesRotations(t *testing.T) {
	_, ft, err := facet.FromTileSet(fixtures.Determinism(), facet.DefaultTau)
	require.NoError(t, err)
	assert.Len(t, ft.Tiles(), 8)
	assert.Equal(t, 8, ft.Singles.Len())

	rot, err := ft.Tile("T1_rot2")
	require.NoError(t, err)
	assert.Equal(t, []tileset.Role{tileset.RoleOutput, tileset.RoleInput, tileset.RoleInput, tileset.RoleOutput}, rot.Use)
}

func TestTile_LookupFailure(t *testing.T) {
	_, ft := build(t, fixtures.Double())
	_, err := ft.Tile("D")
	require.NoError(t, err)
	_, err = ft.Tile("D_fakedouble_a")
	assert.ErrorIs(t, err, facet.ErrLookupFailure)
}

func TestMergeTiles(t *testing.T) {
	gt, ft := build(t, fixtures.Determinism())
	m, err := ft.MergeNamed(gt, gt.Identity(), "T1", "T2", false)
	require.NoError(t, err)
	for _, pair := range [][2]string{{"e1", "e2"}, {"s1", "s2"}, {"w1", "w2"}} {
		assert.True(t, m.Same(gt.MustID(pair[0]), gt.MustID(pair[1])), pair)
	}
	assert.Equal(t, gt.Len()-6, m.Classes())

	a, b := ft.Tiles()[0], ft.Tiles()[1]
	b.Color = true
	_, err = facet.MergeTiles(gt, gt.Identity(), a, b, false)
	assert.ErrorIs(t, err, facet.ErrColorMismatch)

	b.Color, b.Structure = false, "tile_daoe_5up"
	_, err = facet.MergeTiles(gt, gt.Identity(), a, b, false)
	assert.ErrorIs(t, err, facet.ErrStructureMismatch)

	_, err = ft.MergeNamed(gt, gt.Identity(), "T1", "T9", false)
	assert.ErrorIs(t, err, facet.ErrLookupFailure)
}

func TestMergeTiles_PropagatesGlueErrors(t *testing.T) {
	gt, ft := build(t, fixtures.Strengths())
	tile := ft.Tiles()[0]
	other := tile
	other.Glues = []int{tile.Glues[1], tile.Glues[0], tile.Glues[2], tile.Glues[3]}
	_, err := facet.MergeTiles(gt, gt.Identity(), tile, other, false)
	assert.ErrorIs(t, err, glue.ErrStrengthMismatch)
}
