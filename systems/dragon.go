package systems

import (
	"math/rand/v2"

	"github.com/automoto/illuyanka/ai"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// dragon never moves. It bombards the ground around the player.
type dragon struct{ skeleton }

func (d dragon) UpdateAI(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	in := ai.InputFor(enemy.Type)
	in.AttackReady = enemy.Attack.Ready
	in.Busy = enemy.IsAttacking

	if transition(ecs, e, target, in) == ai.EffectBombard {
		d.Attack(ecs, e, target)
	}
}

// Attack runs one bombardment: warning markers, then simultaneous
// explosions, then the damage check a moment later.
func (dragon) Attack(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if isDead(e) || enemy.IsAttacking || !enemy.Attack.Ready || target == nil {
		return
	}
	bomb := enemy.Type.Bombard
	state := components.Bombardier.Get(e)

	enemy.IsAttacking = true
	enemy.Attack.Start(bomb.WarningTime + enemy.Type.AttackCooldown)
	state.Active = true
	state.Points = SelectBombardPoints(state.Anchors, positionOf(target), bomb, randOf(ecs.World))

	playSound(e, cfg.SoundEnemySpecial, sound.RandomIndex)
	components.Animator.Get(e).SetTrigger(cfg.TriggerGroundBomb)

	if bomb.WarningMarkers {
		for _, p := range state.Points {
			marker := factory.CreateEffect(ecs, components.EffectWarningMarker, p, 0)
			state.Markers = append(state.Markers, marker.Entity())
		}
	} else {
		logger(ecs.World).Warn("bombardment has no warning markers configured", entityField(e))
	}

	points := append([]components.Vector(nil), state.Points...)
	after(ecs.World, e, bomb.WarningTime, func() {
		if !e.Valid() {
			return
		}
		explode(ecs, e, points)
		clearMarkers(ecs, e)
	})
	after(ecs.World, e, bomb.WarningTime+enemy.Type.AttackCooldown, func() {
		if !e.Valid() {
			return
		}
		components.Enemy.Get(e).IsAttacking = false
		components.Bombardier.Get(e).Active = false
	})

	logger(ecs.World).Debug("bombardment started",
		entityField(e),
		zap.Int("points", len(points)))
}

func explode(ecs *ecs.ECS, e *donburi.Entry, points []components.Vector) {
	bomb := components.Enemy.Get(e).Type.Bombard
	if bomb.Explosions {
		for _, p := range points {
			factory.CreateEffect(ecs, components.EffectExplosion, p, cfg.Effects.ExplosionLifetime)
		}
	}
	if len(points) > 0 {
		playWorldSound(ecs.World, cfg.SoundExplosion, points[0])
	}

	after(ecs.World, e, bomb.DamageDelay, func() {
		player := playerEntry(ecs.World)
		if player == nil {
			return
		}
		for _, p := range points {
			if p.Dist(positionOf(player)) <= bomb.Radius {
				TakeDamage(ecs, player, bomb.Damage)
			}
		}
	})
}

// clearMarkers removes every warning marker still on the ground.
func clearMarkers(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.HasComponent(components.Bombardier) {
		return
	}
	state := components.Bombardier.Get(e)
	for _, m := range state.Markers {
		if ecs.World.Valid(m) {
			ecs.World.Remove(m)
		}
	}
	state.Markers = nil
}

// SelectBombardPoints picks where a bombardment lands. Without anchors the
// points scatter around target; with UseAll every anchor is hit; otherwise
// up to Count distinct anchors are drawn.
func SelectBombardPoints(anchors []components.Vector, target components.Vector, bomb cfg.BombardConfig, rng *rand.Rand) []components.Vector {
	switch {
	case len(anchors) == 0:
		points := make([]components.Vector, 0, max(bomb.Count, 0))
		for i := 0; i < bomb.Count; i++ {
			offset := components.Vector{
				X: (rng.Float64()*2 - 1) * bomb.RandomSpread,
				Y: (rng.Float64()*2 - 1) * bomb.RandomSpread,
			}
			points = append(points, target.Add(offset))
		}
		return points
	case bomb.UseAll:
		return append([]components.Vector(nil), anchors...)
	default:
		n := max(min(bomb.Count, len(anchors)), 0)
		points := make([]components.Vector, 0, n)
		for _, i := range rng.Perm(len(anchors))[:n] {
			points = append(points, anchors[i])
		}
		return points
	}
}

func (d dragon) UpdateAnimationParams(ecs *ecs.ECS, e *donburi.Entry) {
	anim := components.Animator.Get(e)
	if !anim.Enabled {
		return
	}
	anim.SetBool(cfg.ParamIsDead, isDead(e))
	anim.SetBool(cfg.ParamIsAttacking, components.Enemy.Get(e).IsAttacking)
}
