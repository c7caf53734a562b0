package systems

import (
	"math"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/automoto/illuyanka/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Dash starts a dash along input, or along the facing when there is no
// input. It reports whether the dash started.
func Dash(ecs *ecs.ECS, e *donburi.Entry, input components.Vector) bool {
	player := components.Player.Get(e)
	if isDead(e) || !player.DashCooldown.Ready || player.Dashing || player.IsAttacking {
		return false
	}

	t := components.Transform.Get(e)
	dir := ResolveDashDirection(input, t.Facing, cameraOf(ecs.World).Yaw)
	start := t.Position
	target := clampToArena(ecs.World,
		DashTarget(spaceOf(ecs.World), start, dir, cfg.Dash.Distance, cfg.Dash.ObstacleMargin))

	player.Dashing = true
	player.CanMove = false
	t.Facing = dir

	trail := factory.CreateFollowingEffect(ecs, components.EffectDashTrail, e)
	donburi.Add(e, components.Dash, &components.DashData{
		Start:  start,
		Target: target,
		Tween:  gween.New(0, 1, float32(cfg.Dash.Duration.Seconds()), ease.OutCubic),
		Trail:  trail.Entity(),
	})

	components.Animator.Get(e).SetBool(cfg.ParamDash, true)
	playSound(e, cfg.SoundDashStart, 0)
	return true
}

// ResolveDashDirection turns raw input into a unit ground-plane heading.
// Zero input falls back to the facing; otherwise the input is taken relative
// to the camera yaw.
func ResolveDashDirection(input, facing components.Vector, yaw float64) components.Vector {
	if input.IsZero() {
		if facing.IsZero() {
			return components.Vector{X: 0, Y: 1}
		}
		return facing.Normalized()
	}
	return input.Rotate(yaw).Normalized()
}

// DashTarget is where a dash of distance along dir ends. A solid or an enemy
// body in the way stops it margin short of the hit point, but never behind
// start.
func DashTarget(space *resolv.Space, start, dir components.Vector, distance, margin float64) components.Vector {
	dir = dir.Normalized()
	if space != nil {
		if hit, ok := spatial.Raycast(space, start, dir, distance, tags.ResolvSolid, tags.ResolvEnemy); ok {
			return start.Add(dir.Scale(math.Max(hit.Distance-margin, 0)))
		}
	}
	return start.Add(dir.Scale(distance))
}

// UpdateDashes moves dashing players along their ease-out curve.
func UpdateDashes(ecs *ecs.ECS) {
	dt := float32(deltaSeconds(ecs.World))
	for _, e := range collect(ecs.World, components.Dash.Each) {
		d := components.Dash.Get(e)
		p, done := d.Tween.Update(dt)

		t := components.Transform.Get(e)
		t.Position = d.Start.Lerp(d.Target, float64(p))
		spatial.MoveTo(components.Object.Get(e).Object, t.Position)

		if done {
			endDash(ecs, e, true)
		}
	}
}

// endDash finishes a dash. A dash cut short by death skips the landing cues.
func endDash(ecs *ecs.ECS, e *donburi.Entry, landed bool) {
	if !e.HasComponent(components.Dash) {
		return
	}
	d := components.Dash.Get(e)

	if landed {
		t := components.Transform.Get(e)
		t.Position = d.Target
		spatial.MoveTo(components.Object.Get(e).Object, t.Position)
		factory.CreateEffect(ecs, components.EffectDashImpact, t.Position, cfg.Effects.ImpactLifetime)
		playSound(e, cfg.SoundDashImpact, 0)
	}

	// Stop the trail, it fades out on its own
	if trail := entryOf(ecs.World, d.Trail); trail != nil {
		components.Effect.Get(trail).Follow = false
	}
	donburi.Remove[components.DashData](e, components.Dash)
	components.Animator.Get(e).SetBool(cfg.ParamDash, false)

	player := components.Player.Get(e)
	player.Dashing = false
	if !isDead(e) {
		player.CanMove = true
		player.DashCooldown.Start(cfg.Dash.Cooldown)
	}
}
