package components

import (
	"github.com/automoto/illuyanka/sound"
	"github.com/yohamta/donburi"
)

// VoiceData is an actor's handle on the sound dispatcher, given to it when
// the actor is created.
type VoiceData struct {
	Dispatcher *sound.Dispatcher
	Archetype  string // empty for the player
}

var Voice = donburi.NewComponentType[VoiceData]()
