package netcomponents

import "github.com/yohamta/donburi"

// NetArenaData is the per-arena summary, synced on a single entity.
type NetArenaData struct {
	Level        string
	ElapsedMs    int64
	EnemiesAlive int
	PlayerDead   bool
}

var NetArena = donburi.NewComponentType[NetArenaData]()
