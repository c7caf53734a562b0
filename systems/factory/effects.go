package factory

import (
	"time"

	"github.com/automoto/illuyanka/archetypes"
	"github.com/automoto/illuyanka/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateEffect spawns a fire-and-forget effect at pos. A lifetime of zero or
// less keeps it alive until it is removed explicitly.
func CreateEffect(ecs *ecs.ECS, kind components.EffectKind, pos components.Vector, lifetime time.Duration) *donburi.Entry {
	effect := archetypes.Effect.Spawn(ecs)
	components.Effect.SetValue(effect, components.EffectData{
		Kind:     kind,
		Duration: lifetime,
		Owner:    donburi.Null,
		Scale:    1,
		Alpha:    1,
	})
	components.Transform.SetValue(effect, components.TransformData{Position: pos})
	return effect
}

// CreateFollowingEffect spawns an effect pinned to owner until released.
func CreateFollowingEffect(ecs *ecs.ECS, kind components.EffectKind, owner *donburi.Entry) *donburi.Entry {
	var pos components.Vector
	if owner.HasComponent(components.Transform) {
		pos = components.Transform.Get(owner).Position
	}
	effect := CreateEffect(ecs, kind, pos, 0)
	fx := components.Effect.Get(effect)
	fx.Owner = owner.Entity()
	fx.Follow = true
	return effect
}
