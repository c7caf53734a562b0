package systems

import (
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer consumes the input written by the controlling layer (the
// viewer, a network client or a test) and moves the player.
func UpdatePlayer(ecs *ecs.ECS) {
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		input := components.PlayerInput.Get(e)

		if !isDead(e) {
			if input.CycleTarget {
				CycleTarget(ecs, e)
			}
			if input.QuickAttack {
				Attack(ecs, e, QuickAttack)
			} else if input.HeavyAttack {
				Attack(ecs, e, HeavyAttack)
			}
			if input.Dash {
				Dash(ecs, e, input.Move)
			}
		}

		speed := 0.0
		if player.CanMove && !player.Dashing && !player.IsAttacking && !isDead(e) {
			speed = movePlayer(ecs, e, input.Move)
		}
		components.Animator.Get(e).SetFloat(cfg.ParamSpeed, speed)

		// Edge-triggered actions fire once per press
		input.QuickAttack = false
		input.HeavyAttack = false
		input.Dash = false
		input.CycleTarget = false
	})
	UpdateTargeting(ecs)
}

// movePlayer walks along the camera-relative input, sliding along an axis
// when the diagonal is blocked. It returns the speed actually moved.
func movePlayer(ecs *ecs.ECS, e *donburi.Entry, move components.Vector) float64 {
	if move.IsZero() {
		return 0
	}
	dir := move.Rotate(cameraOf(ecs.World).Yaw)
	if dir.Len() > 1 {
		dir = dir.Normalized()
	}
	step := cfg.Player.MoveSpeed * deltaSeconds(ecs.World)

	t := components.Transform.Get(e)
	from := t.Position
	t.Position = stepBlocked(ecs.World, from, dir.Scale(step), cfg.Player.Radius)
	if !dir.IsZero() {
		t.Facing = dir.Normalized()
	}
	spatial.MoveTo(components.Object.Get(e).Object, t.Position)

	if dt := deltaSeconds(ecs.World); dt > 0 {
		return t.Position.Dist(from) / dt
	}
	return 0
}

// stepBlocked moves from by delta unless a solid is in the way, trying each
// axis on its own before giving up. The result stays inside the arena.
func stepBlocked(w donburi.World, from, delta components.Vector, radius float64) components.Vector {
	space := spaceOf(w)
	free := func(p components.Vector) bool {
		return space == nil || !spatial.Blocked(space, p, radius)
	}
	candidates := []components.Vector{
		from.Add(delta),
		from.Add(components.Vector{X: delta.X}),
		from.Add(components.Vector{Y: delta.Y}),
	}
	for _, c := range candidates {
		c = clampToArena(w, c)
		if free(c) {
			return c
		}
	}
	return from
}

// moveTo eases e to dest over d using an OutQuad curve, the way the attack
// approach moves slide the player in.
func moveTo(e *donburi.Entry, dest components.Vector, d float64) {
	from := positionOf(e)
	approach := &components.ApproachData{
		From:  from,
		To:    dest,
		Tween: gween.New(0, 1, float32(d), ease.OutQuad),
	}
	if e.HasComponent(components.Approach) {
		components.Approach.Set(e, approach)
		return
	}
	donburi.Add(e, components.Approach, approach)
}

// UpdateApproaches advances the approach tweens started by attacks.
func UpdateApproaches(ecs *ecs.ECS) {
	dt := float32(deltaSeconds(ecs.World))
	for _, e := range collect(ecs.World, components.Approach.Each) {
		a := components.Approach.Get(e)
		p, done := a.Tween.Update(dt)

		t := components.Transform.Get(e)
		t.Position = clampToArena(ecs.World, a.From.Lerp(a.To, float64(p)))
		if done {
			t.Position = clampToArena(ecs.World, a.To)
		}
		spatial.MoveTo(components.Object.Get(e).Object, t.Position)

		if done {
			donburi.Remove[components.ApproachData](e, components.Approach)
		}
	}
}
