package view

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/systems"
	"github.com/automoto/illuyanka/tags"
)

// FromSim reads a frame straight out of a simulation world.
func FromSim(w donburi.World) Frame {
	var f Frame
	if e, ok := components.Arena.First(w); ok {
		a := components.Arena.Get(e)
		f.Level, f.Width, f.Height = a.Name, a.Width, a.Height
	}
	if e, ok := components.Runtime.First(w); ok {
		f.Elapsed = components.Runtime.Get(e).Clock.Now()
	}

	tags.Obstacle.Each(w, func(e *donburi.Entry) {
		o := components.Object.Get(e)
		f.Obstacles = append(f.Obstacles, leveldata.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H})
	})

	actorTags := []interface {
		Each(donburi.World, func(*donburi.Entry))
	}{tags.Player, tags.Enemy, tags.Projectile}
	for _, tag := range actorTags {
		tag.Each(w, func(e *donburi.Entry) {
			kind, ok := systems.ActorKind(e)
			if !ok {
				return
			}
			pos, actor := systems.SnapshotActor(e, kind)
			f.add(Actor{NetPositionData: pos, NetActorData: actor})
		})
	}

	tags.Effect.Each(w, func(e *donburi.Entry) {
		pos, fx := systems.SnapshotEffect(e)
		f.Effects = append(f.Effects, Effect{NetPositionData: pos, NetEffectData: fx})
	})

	f.sort()
	return f
}
