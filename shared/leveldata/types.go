// Package leveldata parses arena level files shared between the viewer and
// the server. It has no dependencies on ebitengine, donburi, or resolv, pure
// data only.
package leveldata

// Level is everything the simulation needs to build an arena. Distances are
// metres; one Tiled tile is one metre.
type Level struct {
	Name        string
	Width       float64
	Height      float64
	Obstacles   []Rect
	PlayerSpawn Point
	Enemies     []EnemySpawn
	// Anchors are the bombardment points every dragon in the level aims at.
	Anchors []Point
}

// Rect is a solid block, X/Y being its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

type Point struct {
	X, Y float64
}

// EnemySpawn places one enemy. Archetype is the config name (skeleton,
// mutant, wizard, dragon).
type EnemySpawn struct {
	Archetype string
	X, Y      float64
}
