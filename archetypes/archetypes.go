package archetypes

import (
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Runtime = newArchetype(
		components.Runtime,
		components.Arena,
		components.Camera,
	)
	Space = newArchetype(
		components.Space,
	)
	PhysicsWorld = newArchetype(
		components.PhysicsWorld,
	)
	Obstacle = newArchetype(
		tags.Obstacle,
		components.Object,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.PlayerInput,
		components.Transform,
		components.Object,
		components.Health,
		components.Animator,
		components.Voice,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.State,
		components.Transform,
		components.Object,
		components.Health,
		components.Nav,
		components.Knockback,
		components.Animator,
		components.Ragdoll,
		components.Voice,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Transform,
		components.Object,
	)
	Effect = newArchetype(
		tags.Effect,
		components.Effect,
		components.Transform,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	comps := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	comps = append(comps, a.components...)
	comps = append(comps, cs...)
	return ecs.World.Entry(ecs.Create(cfg.Default, comps...))
}
