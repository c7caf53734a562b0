package systems

import (
	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/shared/netcomponents"
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ActorKind names what an actor entry is for viewers. ok is false for
// entries that are neither player, enemy nor projectile.
func ActorKind(e *donburi.Entry) (kind netconfig.ActorKind, ok bool) {
	switch {
	case e.HasComponent(components.Player):
		return netconfig.KindPlayer, true
	case e.HasComponent(components.Enemy):
		return netconfig.KindForArchetype(components.Enemy.Get(e).Archetype.String())
	case e.HasComponent(components.Projectile):
		return netconfig.KindFireball, true
	}
	return 0, false
}

// SnapshotActor flattens an actor into the form viewers draw.
func SnapshotActor(e *donburi.Entry, kind netconfig.ActorKind) (netcomponents.NetPositionData, netcomponents.NetActorData) {
	t := components.Transform.Get(e)
	pos := netcomponents.NetPositionData{
		X:         t.Position.X,
		Y:         t.Position.Y,
		Elevation: t.Elevation,
		FacingX:   t.Facing.X,
		FacingY:   t.Facing.Y,
	}

	actor := netcomponents.NetActorData{Kind: kind}
	if e.HasComponent(components.Health) {
		h := components.Health.Get(e)
		actor.Health, actor.MaxHealth, actor.Dead = h.Current, h.Max, h.Dead
	}
	if e.HasComponent(components.State) {
		actor.State = int(components.State.Get(e).CurrentState)
	}
	if e.HasComponent(components.Enemy) {
		actor.Targeted = components.Enemy.Get(e).TargetMarker
	}
	if e.HasComponent(components.Death) {
		actor.DeathPhase = int(components.Death.Get(e).Phase)
	}
	if e.HasComponent(components.Dissolve) {
		actor.Dissolve = components.Dissolve.Get(e).Progress
	}
	return pos, actor
}

// SnapshotEffect flattens a visual effect.
func SnapshotEffect(e *donburi.Entry) (netcomponents.NetPositionData, netcomponents.NetEffectData) {
	t := components.Transform.Get(e)
	fx := components.Effect.Get(e)
	return netcomponents.NetPositionData{X: t.Position.X, Y: t.Position.Y, Elevation: t.Elevation},
		netcomponents.NetEffectData{
			Kind:  int(fx.Kind),
			Scale: fx.Scale,
			Alpha: fx.Alpha,
			Light: fx.Light,
		}
}
