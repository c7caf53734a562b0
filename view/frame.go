// Package view flattens an arena into what a viewer draws, either straight
// from a local simulation or from network snapshots. It has no graphics
// dependency so it can be tested headless.
package view

import (
	"fmt"
	"sort"
	"time"

	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/shared/netcomponents"
	"github.com/automoto/illuyanka/shared/netconfig"
)

// Actor is a combatant or projectile ready to draw.
type Actor struct {
	netcomponents.NetPositionData
	netcomponents.NetActorData
}

func (a Actor) HealthRatio() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}

// Effect is a transient visual cue ready to draw.
type Effect struct {
	netcomponents.NetPositionData
	netcomponents.NetEffectData
}

// Frame is one drawable picture of the arena, in metres.
type Frame struct {
	Level         string
	Width, Height float64
	Obstacles     []leveldata.Rect

	Player  *Actor // nil once the player entity is gone
	Actors  []Actor
	Effects []Effect

	Elapsed      time.Duration
	EnemiesAlive int
	PlayerDead   bool
}

// add files an actor, keeping the player separate.
func (f *Frame) add(a Actor) {
	if a.Kind == netconfig.KindPlayer {
		p := a
		f.Player = &p
		if a.Dead {
			f.PlayerDead = true
		}
		return
	}
	if a.Kind != netconfig.KindFireball && !a.Dead {
		f.EnemiesAlive++
	}
	f.Actors = append(f.Actors, a)
}

// sort orders actors and effects back to front so overlapping draws are
// stable between frames.
func (f *Frame) sort() {
	sort.SliceStable(f.Actors, func(i, j int) bool { return f.Actors[i].Y < f.Actors[j].Y })
	sort.SliceStable(f.Effects, func(i, j int) bool { return f.Effects[i].Y < f.Effects[j].Y })
}

// Status is the HUD text, one line each.
func (f Frame) Status() []string {
	lines := []string{
		fmt.Sprintf("%s  %s", f.Level, f.Elapsed.Truncate(time.Second)),
		fmt.Sprintf("enemies %d", f.EnemiesAlive),
	}
	switch {
	case f.PlayerDead:
		lines = append(lines, "YOU DIED")
	case f.Player != nil:
		lines = append(lines, fmt.Sprintf("hp %.0f/%.0f", f.Player.Health, f.Player.MaxHealth))
	}
	return lines
}
