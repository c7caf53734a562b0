package core

import (
	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/sound"
)

// relaySink buffers cues during a tick so they can be broadcast after it.
// It is only touched from the loop goroutine.
type relaySink struct {
	pending []any
}

func (r *relaySink) Play(c sound.Cue) {
	r.pending = append(r.pending, messages.SoundEvent{
		Sound:     c.ID.String(),
		Archetype: c.Archetype,
		Clip:      c.Clip,
		Volume:    c.Volume,
		X:         c.Position.X,
		Y:         c.Position.Y,
		Spatial:   c.Spatial,
	})
}

func (r *relaySink) drain() []any {
	out := r.pending
	r.pending = nil
	return out
}

func commandInput(cmd messages.PlayerCommand) components.PlayerInputData {
	return components.PlayerInputData{
		Move:        components.Vector{X: cmd.MoveX, Y: cmd.MoveY},
		QuickAttack: cmd.QuickAttack,
		HeavyAttack: cmd.HeavyAttack,
		Dash:        cmd.Dash,
		CycleTarget: cmd.CycleTarget,
	}
}
