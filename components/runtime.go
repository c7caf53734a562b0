package components

import (
	"math/rand/v2"

	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/timing"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// RuntimeData is the singleton holding the services every system shares.
type RuntimeData struct {
	Clock     *timing.Clock
	Scheduler *timing.Scheduler
	Rand      *rand.Rand
	Log       *zap.Logger
	Sound     *sound.Dispatcher
}

var Runtime = donburi.NewComponentType[RuntimeData]()

// ArenaData bounds the playable ground plane.
type ArenaData struct {
	Name   string
	Width  float64
	Height float64
}

var Arena = donburi.NewComponentType[ArenaData]()
