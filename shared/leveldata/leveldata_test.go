package leveldata_test

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/illuyanka/shared/leveldata"
)

const smallTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="5" nextobjectid="6">
 <objectgroup id="1" name="Obstacles">
  <object id="1" x="16" y="16" width="32" height="16"/>
 </objectgroup>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="2" x="8" y="40"><point/></object>
 </objectgroup>
 <objectgroup id="3" name="Enemies">
  <object id="3" name="skeleton" x="48" y="8"><point/></object>
  <object id="4" name="ignored" x="32" y="32">
   <properties><property name="archetype" value="dragon"/></properties>
   <point/>
  </object>
 </objectgroup>
 <objectgroup id="4" name="BombardAnchors">
  <object id="5" x="24" y="24"><point/></object>
 </objectgroup>
</map>
`

func TestLoadTMX(t *testing.T) {
	fsys := fstest.MapFS{"levels/small.tmx": {Data: []byte(smallTMX)}}

	lvl, err := leveldata.Load(fsys, "levels/small.tmx")
	require.NoError(t, err)

	assert.Equal(t, "small", lvl.Name)
	assert.Equal(t, 4.0, lvl.Width)
	assert.Equal(t, 3.0, lvl.Height)
	assert.Equal(t, []leveldata.Rect{{X: 1, Y: 1, W: 2, H: 1}}, lvl.Obstacles)
	assert.Equal(t, leveldata.Point{X: 0.5, Y: 2.5}, lvl.PlayerSpawn)
	assert.Equal(t, []leveldata.EnemySpawn{
		{Archetype: "skeleton", X: 3, Y: 0.5},
		{Archetype: "dragon", X: 2, Y: 2},
	}, lvl.Enemies)
	assert.Equal(t, []leveldata.Point{{X: 1.5, Y: 1.5}}, lvl.Anchors)
}

func TestLoadTMXWithoutSpawn(t *testing.T) {
	noSpawn := strings.Replace(smallTMX, `name="PlayerSpawn"`, `name="Decoration"`, 1)
	fsys := fstest.MapFS{"a.tmx": {Data: []byte(noSpawn)}}

	_, err := leveldata.LoadTMX(fsys, "a.tmx")
	assert.ErrorIs(t, err, leveldata.ErrNoPlayerSpawn)
}

func TestReadYAML(t *testing.T) {
	src := `
name: pit
width: 24
height: 20
player: [12, 3]
obstacles:
  - [6, 10, 2, 4]
enemies:
  - {archetype: mutant, at: [12, 15]}
anchors: [[1, 2]]
`
	lvl, err := leveldata.ReadYAML(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "pit", lvl.Name)
	assert.Equal(t, leveldata.Point{X: 12, Y: 3}, lvl.PlayerSpawn)
	assert.Equal(t, []leveldata.Rect{{X: 6, Y: 10, W: 2, H: 4}}, lvl.Obstacles)
	assert.Equal(t, []leveldata.EnemySpawn{{Archetype: "mutant", X: 12, Y: 15}}, lvl.Enemies)
	assert.Equal(t, []leveldata.Point{{X: 1, Y: 2}}, lvl.Anchors)
}

func TestReadYAMLRejectsBadInput(t *testing.T) {
	_, err := leveldata.ReadYAML(strings.NewReader("width: 0\nheight: 10\n"))
	assert.Error(t, err)

	_, err = leveldata.ReadYAML(strings.NewReader("width: 5\nheight: 5\nwalls: []\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := leveldata.Load(fstest.MapFS{}, "levels/a.json")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	lvl := leveldata.Default(40, 40)

	assert.Equal(t, 40.0, lvl.Width)
	require.Len(t, lvl.Enemies, 4)
	assert.Len(t, lvl.Anchors, 3)
	for _, e := range lvl.Enemies {
		assert.True(t, e.X > 0 && e.X < 40 && e.Y > 0 && e.Y < 40, "%s spawns inside", e.Archetype)
	}
}

func TestLoadAllShippedLevels(t *testing.T) {
	levels, names, err := leveldata.LoadAll(os.DirFS("../../assets"), "levels")
	require.NoError(t, err)

	assert.Equal(t, []string{"arena", "pit"}, names)
	arena := levels["arena"]
	require.NotNil(t, arena)
	assert.Len(t, arena.Enemies, 4)
	assert.Len(t, arena.Anchors, 3)
	assert.Equal(t, leveldata.Point{X: 20, Y: 4}, arena.PlayerSpawn)
}
