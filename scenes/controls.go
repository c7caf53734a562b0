package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/sound"
)

const volumeStep = 0.1

// readInput maps the keyboard onto player input. W moves toward +Y.
func readInput() components.PlayerInputData {
	var move components.Vector
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move.X--
	}
	return components.PlayerInputData{
		Move:        move,
		QuickAttack: inpututil.IsKeyJustPressed(ebiten.KeyJ),
		HeavyAttack: inpututil.IsKeyJustPressed(ebiten.KeyK),
		Dash:        inpututil.IsKeyJustPressed(ebiten.KeySpace),
		CycleTarget: inpututil.IsKeyJustPressed(ebiten.KeyTab),
	}
}

func toCommand(in components.PlayerInputData, seq uint32) messages.PlayerCommand {
	return messages.PlayerCommand{
		Sequence:    seq,
		MoveX:       in.Move.X,
		MoveY:       in.Move.Y,
		QuickAttack: in.QuickAttack,
		HeavyAttack: in.HeavyAttack,
		Dash:        in.Dash,
		CycleTarget: in.CycleTarget,
	}
}

// sameMove reports whether a command only repeats the held movement.
func sameMove(a, b messages.PlayerCommand) bool {
	return a.MoveX == b.MoveX && a.MoveY == b.MoveY &&
		!b.QuickAttack && !b.HeavyAttack && !b.Dash && !b.CycleTarget
}

// volumeControl applies the volume keys and persists changes. ok is false
// when nothing changed.
func volumeControl(v sound.Volumes) (sound.Volumes, bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		v.Master += volumeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		v.Master -= volumeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if v.Master > 0 {
			v.Master = 0
		} else {
			v.Master = 1
		}
	default:
		return v, false
	}
	return v.Clamped(), true
}
