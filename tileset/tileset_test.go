package tileset_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilereduce/tileset"
)

func TestParseRole(t *testing.T) {
	for letter, want := range map[rune]tileset.Role{
		'I': tileset.RoleInput, 'o': tileset.RoleOutput, 'B': tileset.RoleBoth,
		'n': tileset.RoleNull, 'U': tileset.RoleUnset,
	} {
		got, err := tileset.ParseRole(letter)
		require.NoError(t, err)
		assert.Equal(t, want, got, "letter %q", letter)
	}
	_, err := tileset.ParseRole('x')
	assert.ErrorIs(t, err, tileset.ErrBadRole)
}

func TestRole_Invert(t *testing.T) {
	assert.Equal(t, tileset.RoleOutput, tileset.RoleInput.Invert())
	assert.Equal(t, tileset.RoleInput, tileset.RoleOutput.Invert())
	assert.Equal(t, tileset.RoleBoth, tileset.RoleBoth.Invert())
	assert.Equal(t, "P", tileset.RolePermanent.String())
}

func TestTile_Roles(t *testing.T) {
	tile := tileset.Tile{Name: "T", Type: "single", Ends: []string{"a", "b", "c", "d"}, Input: []int{1, 0, 0, 1}}
	roles, err := tile.Roles()
	require.NoError(t, err)
	assert.Equal(t, []tileset.Role{tileset.RoleInput, tileset.RoleOutput, tileset.RoleOutput, tileset.RoleInput}, roles)

	// Use takes precedence over Input.
	tile.Use = "nbiu"
	roles, err = tile.Roles()
	require.NoError(t, err)
	assert.Equal(t, []tileset.Role{tileset.RoleNull, tileset.RoleBoth, tileset.RoleInput, tileset.RoleUnset}, roles)

	tile.Use = "IO"
	_, err = tile.Roles()
	assert.ErrorIs(t, err, tileset.ErrBadRole)

	tile.Use, tile.Input = "", []int{1, 0, 2, 0}
	_, err = tile.Roles()
	assert.ErrorIs(t, err, tileset.ErrBadRole)

	bare := tileset.Tile{Name: "B", Type: "single", Ends: []string{"a", "b", "c", "d"}}
	assert.False(t, bare.Annotated())
	roles, err = bare.Roles()
	require.NoError(t, err)
	assert.Equal(t, make([]tileset.Role, 4), roles)
}

func TestTile_Structure(t *testing.T) {
	_, err := tileset.Tile{Name: "X", Type: "tile_daoe_7up", Ends: []string{"a", "b", "c", "d"}}.Structure()
	assert.ErrorIs(t, err, tileset.ErrUnknownStructure)

	_, err = tileset.Tile{Name: "X", Type: "doublehoriz", Ends: []string{"a", "b", "c", "d"}}.Structure()
	assert.ErrorIs(t, err, tileset.ErrEndCount)

	s, err := tileset.Tile{Name: "X", Type: "tile_daoe_doublevert_35up", Ends: make([]string, 6)}.Structure()
	require.NoError(t, err)
	assert.Equal(t, tileset.VerticalDouble, s.Shape)
}

func TestTile_Rotations(t *testing.T) {
	tile := tileset.Tile{
		Name: "T", Type: "tile_daoe_5up",
		Ends: []string{"a", "b", "c", "d"}, Use: "IOOI", Label: "x",
	}
	rots, err := tile.Rotations()
	require.NoError(t, err)
	require.Len(t, rots, 3)

	assert.Equal(t, "T_rot1", rots[0].Name)
	assert.Equal(t, "tile_daoe_3up", rots[0].Type)
	assert.Equal(t, []string{"d", "c", "b", "a"}, rots[0].Ends)
	assert.Equal(t, "IOOI", rots[0].Use)
	assert.Equal(t, "x", rots[0].Label)

	assert.Equal(t, "tile_daoe_5up", rots[1].Type)
	assert.Equal(t, []string{"b", "a", "d", "c"}, rots[1].Ends)
	assert.Equal(t, "OIIO", rots[1].Use)

	assert.Equal(t, []string{"c", "d", "a", "b"}, rots[2].Ends)
}

// Every rotation must land on a structure whose end classes agree with the
// classes of the ends it received.
func TestStructures_RotationsKeepEndTypes(t *testing.T) {
	for _, name := range tileset.Structures() {
		s, err := tileset.LookupStructure(name)
		require.NoError(t, err)
		if s.EndTypes == nil {
			continue
		}
		for _, rot := range s.Rotations {
			target, err := tileset.LookupStructure(rot.Target)
			require.NoError(t, err, "%s -> %s", name, rot.Target)
			require.Len(t, rot.Perm, len(s.EndTypes))
			for i, p := range rot.Perm {
				assert.Equal(t, s.EndTypes[p], target.EndTypes[i], "%s -> %s end %d", name, rot.Target, i)
			}
		}
	}
}

func TestTileSet_AllEnds(t *testing.T) {
	ts := &tileset.TileSet{
		Ends: []tileset.End{{Name: "a", Type: "TD", Strength: 2}},
		Tiles: []tileset.Tile{
			{Name: "T", Type: "tile_daoe_5up_2h", Ends: []string{"a", "hp", "b/", "c"}},
		},
	}
	ends, err := ts.AllEnds()
	require.NoError(t, err)
	assert.Equal(t, []tileset.End{
		{Name: "a", Type: "TD", Strength: 2},
		{Name: "b", Type: "DT", Strength: 1},
		{Name: "c", Type: "DT", Strength: 1},
	}, ends)

	ts.Tiles = append(ts.Tiles, tileset.Tile{Name: "G", Type: "single", Ends: []string{"z", "a", "a", "a"}})
	_, err = ts.AllEnds()
	assert.ErrorIs(t, err, tileset.ErrUndeclaredEnd)
}

func TestTileSet_Validate(t *testing.T) {
	ts := &tileset.TileSet{Tiles: []tileset.Tile{
		{Name: "T", Type: "single", Ends: []string{"a", "b", "c", "d"}},
		{Name: "T", Type: "single", Ends: []string{"a", "b", "c", "d"}},
	}}
	assert.ErrorIs(t, ts.Validate(), tileset.ErrDuplicateName)

	ts.Tiles[1].Name = "U"
	ts.Ends = []tileset.End{{Name: "a"}, {Name: "a"}}
	assert.ErrorIs(t, ts.Validate(), tileset.ErrDuplicateName)
}

func TestTileSet_CloneIsDeep(t *testing.T) {
	ts := &tileset.TileSet{
		Tiles: []tileset.Tile{{Name: "T", Type: "single", Ends: []string{"a", "b", "c", "d"}, Input: []int{1, 0, 0, 1}}},
		Seed:  &tileset.Seed{Adapters: []tileset.Adapter{{Name: "A", Ends: []string{"a"}}}},
		Info:  map[string]any{"k": "v"},
	}
	c := ts.Clone()
	c.Tiles[0].Ends[0] = "z"
	c.Tiles[0].Input[0] = 0
	c.Seed.Adapters[0].Ends[0] = "z"
	c.Info["k"] = "w"

	assert.Equal(t, "a", ts.Tiles[0].Ends[0])
	assert.Equal(t, 1, ts.Tiles[0].Input[0])
	assert.Equal(t, "a", ts.Seed.Adapters[0].Ends[0])
	assert.Equal(t, "v", ts.Info["k"])
}

func TestTileSet_WithRotations(t *testing.T) {
	ts := &tileset.TileSet{Tiles: []tileset.Tile{
		{Name: "T", Type: "single", Ends: []string{"a", "b", "c", "d"}},
		{Name: "F", Type: "single", Ends: []string{"a", "b", "c", "d"}, Fake: true},
	}}
	tiles, err := ts.WithRotations()
	require.NoError(t, err)
	names := make([]string, len(tiles))
	for i, tl := range tiles {
		names[i] = tl.Name
	}
	assert.Equal(t, []string{"T", "T_rot1", "T_rot2", "T_rot3"}, names)
}

func TestLoadSave_RoundTrip(t *testing.T) {
	src := `
ends:
  - name: a
    type: TD
  - name: b
    type: TD
    strength: 2
tiles:
  - name: T
    type: single
    ends: [a, b, a/, b/]
    use: IOOI
    label: red
seed:
  adapters:
    - name: A
      ends: [a/]
info:
  note: hello
`
	ts, err := tileset.Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, ts.Ends[0].Strength)
	assert.Equal(t, 2, ts.Ends[1].Strength)
	assert.True(t, ts.Tiles[0].Colored())
	assert.Equal(t, "hello", ts.Info["note"])

	var buf bytes.Buffer
	require.NoError(t, ts.Save(&buf))
	back, err := tileset.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, ts, back)
}

func TestLoad_RejectsUnknownFieldsAndStructures(t *testing.T) {
	_, err := tileset.Load(strings.NewReader("tiles: []\ncolour: red\n"))
	assert.Error(t, err)

	_, err = tileset.Load(strings.NewReader("tiles:\n  - name: T\n    type: hexagon\n    ends: [a, b, c, d]\n"))
	assert.ErrorIs(t, err, tileset.ErrUnknownStructure)
}

func TestComplementNames(t *testing.T) {
	assert.Equal(t, "a/", tileset.Complement("a"))
	assert.Equal(t, "a", tileset.Complement("a/"))
	assert.Equal(t, "a", tileset.BaseName("a/"))
}
