package systems

import (
	"strings"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// die starts an enemy's death sequence. It runs at most once per actor.
func die(ecs *ecs.ECS, e *donburi.Entry) {
	if e.HasComponent(components.Death) {
		return
	}
	t := now(ecs.World)

	// Halt every pending attack, cast and bombardment step
	if rt := runtimeOf(ecs.World); rt != nil {
		rt.Scheduler.CancelOwner(e.Entity())
	}

	enemy := components.Enemy.Get(e)
	enemy.IsAttacking = false
	components.State.Get(e).Enter(cfg.StateDead, t)

	if e.HasComponent(components.JumpAttack) {
		donburi.Remove[components.JumpAttackData](e, components.JumpAttack)
		components.Transform.Get(e).Elevation = 0
	}
	if e.HasComponent(components.Cast) {
		donburi.Remove[components.CastData](e, components.Cast)
	}
	if e.HasComponent(components.Bombardier) {
		clearMarkers(ecs, e)
		components.Bombardier.Get(e).Active = false
	}

	nav := components.Nav.Get(e)
	nav.Enabled = false
	nav.HasPath = false
	nav.Velocity = components.Vector{}

	// Clear target if this enemy was targeted
	if p := playerEntry(ecs.World); p != nil && components.Player.Get(p).Target == e.Entity() {
		ClearTarget(ecs, p)
	}
	enemy.TargetMarker = false

	anim := components.Animator.Get(e)
	anim.SetBool(cfg.ParamIsDead, true)
	anim.SetBool(cfg.ParamIsAttacking, false)
	anim.Enabled = false

	if space := spaceOf(ecs.World); space != nil {
		space.Remove(components.Object.Get(e).Object)
	}
	activateRagdoll(ecs, e)

	pos := positionOf(e)
	factory.CreateEffect(ecs, components.EffectDeath, pos, cfg.Effects.DeathLifetime)
	playSound(e, cfg.SoundEnemyDeath, sound.RandomIndex)

	donburi.Add(e, components.Death, &components.DeathData{Phase: components.DeathRagdoll, StartedAt: t})

	if enemy.Type.UseDissolve {
		after(ecs.World, e, cfg.Death.RagdollWait, func() { startDissolve(ecs, e) })
	} else {
		after(ecs.World, e, cfg.Death.FallbackRemoval, func() { removeActor(ecs, e) })
	}

	logger(ecs.World).Info("enemy died",
		entityField(e),
		zap.Stringer("archetype", enemy.Archetype),
		zap.Bool("dissolve", enemy.Type.UseDissolve))
}

// startDissolve begins the fade-out. Calling it again does nothing.
func startDissolve(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.Valid() || e.HasComponent(components.Dissolve) {
		return
	}
	components.Death.Get(e).Phase = components.DeathDissolving

	start := components.Transform.Get(e).Elevation + cfg.Death.StartHeight
	donburi.Add(e, components.Dissolve, &components.DissolveData{
		Tween:       gween.New(0, 1, float32(cfg.Death.DissolveTime.Seconds()), DissolveEase(cfg.Death.Ease)),
		Height:      start,
		Noise:       cfg.Death.StartNoise,
		StartHeight: start,
	})
}

var dissolveEases = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
}

// DissolveEase looks up a curve by name, InOutCubic when unknown.
func DissolveEase(name string) ease.TweenFunc {
	if fn, ok := dissolveEases[strings.ToLower(name)]; ok {
		return fn
	}
	return ease.InOutCubic
}

// UpdateDissolves drives the dissolve parameters and schedules the removal
// once the fade is complete.
func UpdateDissolves(ecs *ecs.ECS) {
	dt := float32(deltaSeconds(ecs.World))
	for _, e := range collect(ecs.World, components.Dissolve.Each) {
		d := components.Dissolve.Get(e)
		if d.Done {
			continue
		}
		p, done := d.Tween.Update(dt)
		d.Progress = float64(p)
		d.Height = gamemath.Lerp(d.StartHeight, cfg.Death.EndHeight, d.Progress)
		d.Noise = gamemath.Lerp(cfg.Death.StartNoise, cfg.Death.EndNoise, d.Progress)
		if !done {
			continue
		}

		d.Done = true
		d.Height = cfg.Death.EndHeight
		d.Noise = cfg.Death.EndNoise
		components.Death.Get(e).Phase = components.DeathGrace
		after(ecs.World, e, cfg.Death.FinalWait, func() { removeActor(ecs, e) })
	}
}

// removeActor takes a dead actor out of the world exactly once. A designated
// alternate, or the parent when asked, goes with it.
func removeActor(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.Valid() {
		return
	}
	if e.HasComponent(components.Death) {
		death := components.Death.Get(e)
		if death.Phase == components.DeathRemoved {
			return
		}
		death.Phase = components.DeathRemoved
	}

	if rt := runtimeOf(ecs.World); rt != nil {
		rt.Scheduler.CancelOwner(e.Entity())
	}
	destroyRagdoll(ecs, e)

	var extra *donburi.Entry
	if e.HasComponent(components.Removal) {
		r := components.Removal.Get(e)
		extra = entryOf(ecs.World, r.Alternate)
		if extra == nil && r.RemoveParent && e.HasComponent(components.Parent) {
			extra = entryOf(ecs.World, components.Parent.Get(e).Parent)
		}
	}
	if extra != nil {
		ecs.World.Remove(extra.Entity())
	}

	logger(ecs.World).Debug("actor removed", entityField(e))
	ecs.World.Remove(e.Entity())
}
