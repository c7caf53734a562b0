package leveldata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"
)

// Object group and layer names read from TMX files.
const (
	LayerSolid         = "solid"
	GroupObstacles     = "Obstacles"
	GroupPlayerSpawn   = "PlayerSpawn"
	GroupEnemies       = "Enemies"
	GroupBombardAnchor = "BombardAnchors"
)

var ErrNoPlayerSpawn = errors.New("level has no player spawn")

// Load reads a level from fsys, picking the format from the extension. It
// takes an fs.FS so callers can pass embed.FS (viewer) or os.DirFS (server).
func Load(fsys fs.FS, levelPath string) (*Level, error) {
	switch strings.ToLower(path.Ext(levelPath)) {
	case ".tmx":
		return LoadTMX(fsys, levelPath)
	case ".yaml", ".yml":
		f, err := fsys.Open(levelPath)
		if err != nil {
			return nil, fmt.Errorf("open level %s: %w", levelPath, err)
		}
		defer f.Close()
		lvl, err := ReadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("read level %s: %w", levelPath, err)
		}
		if lvl.Name == "" {
			lvl.Name = stem(levelPath)
		}
		return lvl, nil
	}
	return nil, fmt.Errorf("unsupported level format %q", levelPath)
}

// LoadTMX parses a Tiled map. Tiles of the "solid" layer and rectangles of
// the Obstacles group become obstacles; point objects give the spawns.
func LoadTMX(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %vx%v", tmxPath, tileW, tileH)
	}
	// Object coordinates are pixels, the simulation works in tiles
	px := func(x, y float64) (float64, float64) { return x / tileW, y / tileH }

	lvl := &Level{
		Name:   stem(tmxPath),
		Width:  float64(levelMap.Width),
		Height: float64(levelMap.Height),
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != LayerSolid {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				if layer.Tiles[y*levelMap.Width+x].IsNil() {
					continue
				}
				lvl.Obstacles = append(lvl.Obstacles, Rect{X: float64(x), Y: float64(y), W: 1, H: 1})
			}
		}
	}

	spawnFound := false
	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			x, y := px(o.X, o.Y)
			switch og.Name {
			case GroupObstacles:
				w, h := px(o.Width, o.Height)
				lvl.Obstacles = append(lvl.Obstacles, Rect{X: x, Y: y, W: w, H: h})
			case GroupPlayerSpawn:
				lvl.PlayerSpawn = Point{X: x, Y: y}
				spawnFound = true
			case GroupEnemies:
				archetype := o.Properties.GetString("archetype")
				if archetype == "" {
					archetype = o.Name
				}
				lvl.Enemies = append(lvl.Enemies, EnemySpawn{Archetype: archetype, X: x, Y: y})
			case GroupBombardAnchor:
				lvl.Anchors = append(lvl.Anchors, Point{X: x, Y: y})
			}
		}
	}
	if !spawnFound {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrNoPlayerSpawn)
	}
	return lvl, nil
}

type yamlLevel struct {
	Name      string      `yaml:"name"`
	Width     float64     `yaml:"width"`
	Height    float64     `yaml:"height"`
	Player    [2]float64  `yaml:"player"`
	Obstacles [][4]float64 `yaml:"obstacles"`
	Enemies   []struct {
		Archetype string     `yaml:"archetype"`
		At        [2]float64 `yaml:"at"`
	} `yaml:"enemies"`
	Anchors [][2]float64 `yaml:"anchors"`
}

// ReadYAML parses the compact roster format:
//
//	name: pit
//	width: 40
//	height: 40
//	player: [20, 5]
//	obstacles: [[10, 10, 2, 6]]
//	enemies:
//	  - {archetype: skeleton, at: [20, 30]}
//	anchors: [[15, 15], [25, 25]]
func ReadYAML(r io.Reader) (*Level, error) {
	var raw yamlLevel
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, fmt.Errorf("level size must be > 0, got %vx%v", raw.Width, raw.Height)
	}

	lvl := &Level{
		Name:        raw.Name,
		Width:       raw.Width,
		Height:      raw.Height,
		PlayerSpawn: Point{X: raw.Player[0], Y: raw.Player[1]},
	}
	for _, o := range raw.Obstacles {
		lvl.Obstacles = append(lvl.Obstacles, Rect{X: o[0], Y: o[1], W: o[2], H: o[3]})
	}
	for _, e := range raw.Enemies {
		lvl.Enemies = append(lvl.Enemies, EnemySpawn{Archetype: e.Archetype, X: e.At[0], Y: e.At[1]})
	}
	for _, a := range raw.Anchors {
		lvl.Anchors = append(lvl.Anchors, Point{X: a[0], Y: a[1]})
	}
	return lvl, nil
}

// Default is the arena used when no level file is given: an open square
// with a few pillars, one enemy of each archetype and three anchors.
func Default(width, height float64) *Level {
	cx, cy := width/2, height/2
	return &Level{
		Name:   "default",
		Width:  width,
		Height: height,
		Obstacles: []Rect{
			{X: cx - 10, Y: cy - 1, W: 2, H: 2},
			{X: cx + 8, Y: cy - 1, W: 2, H: 2},
		},
		PlayerSpawn: Point{X: cx, Y: height * 0.1},
		Enemies: []EnemySpawn{
			{Archetype: "skeleton", X: cx - 6, Y: cy},
			{Archetype: "mutant", X: cx + 6, Y: cy},
			{Archetype: "wizard", X: cx, Y: cy + 8},
			{Archetype: "dragon", X: cx, Y: height * 0.9},
		},
		Anchors: []Point{
			{X: cx - 8, Y: cy + 12},
			{X: cx, Y: cy + 14},
			{X: cx + 8, Y: cy + 12},
		},
	}
}

// LoadAll discovers every level file in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	var matches []string
	for _, pattern := range []string{dir + "/*.tmx", dir + "/*.yaml"} {
		m, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no level files found in %s", dir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		lvl, err := Load(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		levels[lvl.Name] = lvl
		names = append(names, lvl.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func stem(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
