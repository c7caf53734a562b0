package systems

import (
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/automoto/illuyanka/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateProjectiles flies fireballs and resolves what they touch. A fireball
// damages the player at most once and is gone after its first contact.
func UpdateProjectiles(ecs *ecs.ECS) {
	rt := runtimeOf(ecs.World)
	if rt == nil {
		return
	}
	dt := rt.Clock.Step()
	space := spaceOf(ecs.World)
	arena := arenaOf(ecs.World)

	for _, e := range collect(ecs.World, tags.Projectile.Each) {
		p := components.Projectile.Get(e)
		if p.HasHit {
			continue
		}

		// Lifetime over, vanish without a hit
		p.Remaining -= dt
		if p.Remaining <= 0 {
			destroyProjectile(ecs, e)
			continue
		}

		t := components.Transform.Get(e)
		t.Position = t.Position.Add(p.Velocity.Scale(dt.Seconds()))
		t.Elevation += p.VerticalSpeed * dt.Seconds()
		obj := components.Object.Get(e).Object
		spatial.MoveTo(obj, t.Position)

		if arena.Width > 0 && (t.Position.X < 0 || t.Position.Y < 0 ||
			t.Position.X > arena.Width || t.Position.Y > arena.Height) {
			destroyProjectile(ecs, e)
			continue
		}
		if space == nil {
			continue
		}

		radius := cfg.Projectile.Radius
		if player := playerEntry(ecs.World); player != nil {
			if hitsEntry(spatial.Overlap(space, t.Position, radius, tags.ResolvPlayer), player) {
				p.HasHit = true
				TakeDamage(ecs, player, p.Damage)
				impactProjectile(ecs, e)
				continue
			}
		}
		// Walls and other enemies stop it without taking damage
		if blocksProjectile(spatial.Overlap(space, t.Position, radius, tags.ResolvSolid, tags.ResolvEnemy), p.Owner) {
			p.HasHit = true
			impactProjectile(ecs, e)
		}
	}
}

// blocksProjectile reports whether any contact other than the thrower
// stops the projectile.
func blocksProjectile(objs []*resolv.Object, owner donburi.Entity) bool {
	for _, obj := range objs {
		if entry, ok := obj.Data.(*donburi.Entry); ok && entry.Entity() == owner {
			continue
		}
		return true
	}
	return false
}

func hitsEntry(objs []*resolv.Object, e *donburi.Entry) bool {
	for _, obj := range objs {
		if entry, ok := obj.Data.(*donburi.Entry); ok && entry.Entity() == e.Entity() {
			return true
		}
	}
	return false
}

func impactProjectile(ecs *ecs.ECS, e *donburi.Entry) {
	pos := positionOf(e)
	factory.CreateEffect(ecs, components.EffectFireballHit, pos, cfg.Effects.HitLifetime)
	playWorldSound(ecs.World, cfg.SoundFireballImpact, pos)
	destroyProjectile(ecs, e)
}

func destroyProjectile(ecs *ecs.ECS, e *donburi.Entry) {
	if space := spaceOf(ecs.World); space != nil {
		space.Remove(components.Object.Get(e).Object)
	}
	ecs.World.Remove(e.Entity())
}
