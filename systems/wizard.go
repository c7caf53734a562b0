package systems

import (
	"github.com/automoto/illuyanka/ai"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// wizard keeps its distance and throws fireballs.
type wizard struct{ skeleton }

func (w wizard) UpdateAI(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if target != nil {
		// Always face the player
		t := components.Transform.Get(e)
		t.Facing = gamemath.TurnTowards(t.Facing, positionOf(target).Sub(t.Position),
			enemy.Type.Kite.TurnRate, deltaSeconds(ecs.World))
	}

	in := ai.InputFor(enemy.Type)
	in.AttackReady = enemy.NormalCast.Ready || enemy.HeavyCast.Ready
	in.Busy = enemy.IsAttacking

	effect := transition(ecs, e, target, in)
	switch effect {
	case ai.EffectRetreat:
		retreatFrom(ecs, e, target)
	case ai.EffectAttack:
		components.Nav.Get(e).HasPath = false
		w.Attack(ecs, e, target)
	default:
		applyEffect(ecs, e, target, effect, w)
	}
}

// retreatFrom walks straight away from the target by the retreat distance.
func retreatFrom(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	pos := positionOf(e)
	away := pos.Sub(positionOf(target)).Normalized()
	if away.IsZero() {
		away = components.Transform.Get(e).Facing.Scale(-1)
	}

	nav := components.Nav.Get(e)
	nav.HasPath = true
	nav.Destination = clampToArena(ecs.World, pos.Add(away.Scale(enemy.Type.Kite.RetreatDistance)))
	nav.Speed = enemy.Type.Kite.RetreatSpeed
}

// Attack throws a heavy fireball now and then, a normal one otherwise.
func (wizard) Attack(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if isDead(e) || enemy.IsAttacking || target == nil {
		return
	}
	cast := enemy.Type.Cast

	heavy := enemy.HeavyCast.Ready && randOf(ecs.World).Float64() < cast.HeavyChance
	var damage float64
	switch {
	case heavy:
		damage = cast.HeavyDamage
		enemy.HeavyCast.Start(cast.HeavyCooldown)
		components.Animator.Get(e).SetTrigger(cfg.TriggerHeavyAttack)
		playSound(e, cfg.SoundEnemyAttack, 1)
	case enemy.NormalCast.Ready:
		damage = cast.NormalDamage
		enemy.NormalCast.Start(cast.NormalCooldown)
		components.Animator.Get(e).SetTrigger(cfg.TriggerNormalAttack)
		playSound(e, cfg.SoundEnemyAttack, 0)
	default:
		return
	}

	enemy.IsAttacking = true
	donburi.Add(e, components.Cast, &components.CastData{Heavy: heavy, Damage: damage})

	after(ecs.World, e, cast.PreDelay, func() {
		if !e.Valid() || isDead(e) {
			return
		}
		throwFireball(ecs, e)
		after(ecs.World, e, cast.PostDelay, func() {
			if !e.Valid() {
				return
			}
			components.Enemy.Get(e).IsAttacking = false
			if e.HasComponent(components.Cast) {
				donburi.Remove[components.CastData](e, components.Cast)
			}
		})
	})
}

// throwFireball aims at where the player stands at release time.
func throwFireball(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.HasComponent(components.Cast) {
		return
	}
	c := components.Cast.Get(e)
	c.Fired = true

	player := playerEntry(ecs.World)
	if player == nil {
		return
	}
	cast := components.Enemy.Get(e).Type.Cast
	t := components.Transform.Get(e)
	from := t.Position.Add(t.Facing.Scale(cast.SpawnOffset))

	factory.CreateFireball(ecs, e.Entity(), from, cast.AimHeight, positionOf(player), cast.AimHeight, c.Damage)
	playSound(e, cfg.SoundEnemySpecial, sound.RandomIndex)
}

func (w wizard) UpdateAnimationParams(ecs *ecs.ECS, e *donburi.Entry) {
	w.skeleton.UpdateAnimationParams(ecs, e)
	components.Animator.Get(e).SetBool(cfg.ParamIsRetreating,
		components.State.Get(e).CurrentState == cfg.StateRetreating)
}
