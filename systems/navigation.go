package systems

import (
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// arrivalDistance is how close counts as having reached a destination.
const arrivalDistance = 0.1

// UpdateNavigation walks every enemy with a path straight toward its
// destination, stopping at obstacles.
func UpdateNavigation(ecs *ecs.ECS) {
	dt := deltaSeconds(ecs.World)
	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		nav := components.Nav.Get(e)
		nav.Velocity = components.Vector{}
		if !nav.Enabled || !nav.HasPath || nav.Speed <= 0 || dt <= 0 {
			return
		}

		t := components.Transform.Get(e)
		toDest := nav.Destination.Sub(t.Position)
		dist := toDest.Len()
		if dist <= arrivalDistance {
			nav.HasPath = false
			return
		}
		step := toDest.Scale(min(nav.Speed*dt, dist) / dist)

		radius := components.Enemy.Get(e).Type.Radius
		from := t.Position
		t.Position = stepBlocked(ecs.World, from, step, radius)
		nav.Velocity = t.Position.Sub(from).Scale(1 / dt)
		if nav.FaceMovement && !nav.Velocity.IsZero() {
			t.Facing = nav.Velocity.Normalized()
		}
		spatial.MoveTo(components.Object.Get(e).Object, t.Position)
	})
}

// UpdateKnockback slides shoved enemies and bleeds their speed off.
func UpdateKnockback(ecs *ecs.ECS) {
	dt := deltaSeconds(ecs.World)
	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		kb := components.Knockback.Get(e)
		if kb.Velocity.IsZero() {
			kb.Lift = 0
			return
		}
		// The ragdoll carries the shove once the actor is dead
		if e.HasComponent(components.Death) || e.HasComponent(components.JumpAttack) {
			kb.Velocity = components.Vector{}
			kb.Lift = 0
			return
		}

		speed := min(kb.Velocity.Len(), cfg.Knockback.MaxSpeed)
		dir := kb.Velocity.Normalized()

		t := components.Transform.Get(e)
		t.Position = stepBlocked(ecs.World, t.Position, dir.Scale(speed*dt), components.Enemy.Get(e).Type.Radius)
		spatial.MoveTo(components.Object.Get(e).Object, t.Position)

		speed = gamemath.ApplyFriction(speed, cfg.Knockback.Friction*dt)
		kb.Velocity = dir.Scale(speed)
		kb.Lift = gamemath.ApplyFriction(kb.Lift, cfg.Knockback.Friction*dt)
	})
}
