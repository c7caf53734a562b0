package systems

import (
	"github.com/automoto/illuyanka/ai"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Behavior is what an enemy archetype does with the state machine's verdict.
// target is nil when there is no live player.
type Behavior interface {
	UpdateAI(ecs *ecs.ECS, e, target *donburi.Entry)
	Attack(ecs *ecs.ECS, e, target *donburi.Entry)
	UpdateAnimationParams(ecs *ecs.ECS, e *donburi.Entry)
	OnDamaged(ecs *ecs.ECS, e *donburi.Entry, amount float64)
}

var behaviors = map[cfg.Archetype]Behavior{
	cfg.ArchetypeSkeleton: skeleton{},
	cfg.ArchetypeMutant:   mutant{},
	cfg.ArchetypeWizard:   wizard{},
	cfg.ArchetypeDragon:   dragon{},
}

func behaviorFor(e *donburi.Entry) Behavior {
	if b, ok := behaviors[components.Enemy.Get(e).Archetype]; ok {
		return b
	}
	return skeleton{}
}

func UpdateEnemies(ecs *ecs.ECS) {
	target := playerEntry(ecs.World)
	if target != nil && isDead(target) {
		target = nil
	}

	for _, e := range collect(ecs.World, tags.Enemy.Each) {
		// Skip if enemy is in death sequence
		if !e.Valid() || e.HasComponent(components.Death) {
			continue
		}
		b := behaviorFor(e)
		b.UpdateAI(ecs, e, target)
		if !e.Valid() {
			continue
		}
		b.UpdateAnimationParams(ecs, e)
		updateIdleSound(ecs, e)
	}
}

// transition runs one evaluation of the state machine and records the new
// state. The returned effect is for the caller to carry out.
func transition(ecs *ecs.ECS, e, target *donburi.Entry, in ai.Input) ai.Effect {
	enemy := components.Enemy.Get(e)
	state := components.State.Get(e)

	if target != nil {
		in.HasTarget = true
		in.Distance = positionOf(e).Dist(positionOf(target))
	}
	in.Dead = isDead(e)

	next, effect := ai.Advance(enemy.Archetype, state.CurrentState, in)
	if state.Enter(next, now(ecs.World)) {
		logger(ecs.World).Debug("enemy state changed",
			entityField(e),
			zap.Stringer("archetype", enemy.Archetype),
			zap.Stringer("from", state.PreviousState),
			zap.Stringer("to", next))
	}
	return effect
}

// applyEffect carries out the movement and attack effects every archetype
// shares. Archetype specific effects are handled before this is called.
func applyEffect(ecs *ecs.ECS, e, target *donburi.Entry, effect ai.Effect, b Behavior) {
	nav := components.Nav.Get(e)
	switch effect {
	case ai.EffectResetPath:
		nav.HasPath = false
	case ai.EffectPursue:
		nav.HasPath = true
		nav.Destination = positionOf(target)
		nav.Speed = components.Enemy.Get(e).Type.MoveSpeed
	case ai.EffectAttack:
		nav.HasPath = false
		faceTowards(e, positionOf(target))
		b.Attack(ecs, e, target)
	}
}

func faceTowards(e *donburi.Entry, point components.Vector) {
	t := components.Transform.Get(e)
	if dir := point.Sub(t.Position).Normalized(); !dir.IsZero() {
		t.Facing = dir
	}
}

// canStartAttack gates every enemy attack: alive, not already attacking, not
// mid-leap and the cooldown ready.
func canStartAttack(e *donburi.Entry, cd *components.EnemyData, ready bool) bool {
	return !isDead(e) && !cd.IsAttacking && !e.HasComponent(components.JumpAttack) && ready
}

// releaseAfterCooldown clears the attacking flag once the attack cooldown
// has passed.
func releaseAfterCooldown(ecs *ecs.ECS, e *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	after(ecs.World, e, enemy.Type.AttackCooldown, func() {
		if e.Valid() {
			components.Enemy.Get(e).IsAttacking = false
		}
	})
}

func updateIdleSound(ecs *ecs.ECS, e *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if components.State.Get(e).CurrentState != cfg.StateIdle {
		return
	}
	t := now(ecs.World)
	if t < enemy.NextIdleSound {
		return
	}
	playSound(e, cfg.SoundEnemyIdle, sound.RandomIndex)
	enemy.NextIdleSound = t + factory.IdleDelay(enemy.Type, randOf(ecs.World).Float64())
}

// skeleton is the plain melee enemy every other archetype builds on.
type skeleton struct{}

func (s skeleton) UpdateAI(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	in := ai.InputFor(enemy.Type)
	in.AttackReady = enemy.Attack.Ready
	in.Busy = enemy.IsAttacking
	applyEffect(ecs, e, target, transition(ecs, e, target, in), s)
}

func (skeleton) Attack(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if !canStartAttack(e, enemy, enemy.Attack.Ready) {
		return
	}
	enemy.IsAttacking = true
	enemy.Attack.Start(enemy.Type.AttackCooldown)
	components.Animator.Get(e).SetTrigger(cfg.TriggerAttack)
	playSound(e, cfg.SoundEnemyAttack, sound.RandomIndex)
	enemy.Clip = "skeleton_attack"
	playClip(ecs, e, enemy.Clip, enemyHooks)
	releaseAfterCooldown(ecs, e)
}

func (skeleton) UpdateAnimationParams(ecs *ecs.ECS, e *donburi.Entry) {
	anim := components.Animator.Get(e)
	if !anim.Enabled {
		return
	}
	anim.SetBool(cfg.ParamIsDead, isDead(e))
	anim.SetBool(cfg.ParamIsAttacking, components.Enemy.Get(e).IsAttacking)
	anim.SetFloat(cfg.ParamSpeed, components.Nav.Get(e).Velocity.Len())
}

func (skeleton) OnDamaged(ecs *ecs.ECS, e *donburi.Entry, amount float64) {
	factory.CreateEffect(ecs, components.EffectHit, positionOf(e), cfg.Effects.HitLifetime)
	playSound(e, cfg.SoundEnemyHit, sound.RandomIndex)
}

var enemyHooks = map[string]func(*ecs.ECS, *donburi.Entry){
	cfg.HookAttackHit: OnAttackHit,
	cfg.HookNormalHit: OnNormalAttackHit,
	cfg.HookHeavyHit:  OnHeavyAttackHit,
	cfg.HookAttackEnd: OnAttackEnd,
}

// OnAttackHit lands a basic swing if the player is still within reach.
func OnAttackHit(ecs *ecs.ECS, e *donburi.Entry) {
	t := components.Enemy.Get(e).Type
	strikePlayer(ecs, e, t.AttackRange, t.AttackDamage)
}

// OnNormalAttackHit lands a mutant's normal swing.
func OnNormalAttackHit(ecs *ecs.ECS, e *donburi.Entry) {
	t := components.Enemy.Get(e).Type
	strikePlayer(ecs, e, t.AttackRange, t.Melee.NormalDamage)
}

// OnHeavyAttackHit lands a mutant's heavy swing, which reaches further.
func OnHeavyAttackHit(ecs *ecs.ECS, e *donburi.Entry) {
	t := components.Enemy.Get(e).Type
	strikePlayer(ecs, e, t.Melee.HeavyAttackRange, t.Melee.HeavyDamage)
}

// OnAttackEnd marks the attack clip as finished.
func OnAttackEnd(ecs *ecs.ECS, e *donburi.Entry) {
	components.Enemy.Get(e).Clip = ""
}

func strikePlayer(ecs *ecs.ECS, e *donburi.Entry, reach, damage float64) {
	if isDead(e) {
		return
	}
	player := playerEntry(ecs.World)
	if player == nil || isDead(player) {
		return
	}
	if positionOf(e).Dist(positionOf(player)) <= reach {
		TakeDamage(ecs, player, damage)
	}
}

// clampToArena keeps a point inside the arena rectangle.
func clampToArena(w donburi.World, p components.Vector) components.Vector {
	a := arenaOf(w)
	if a.Width <= 0 || a.Height <= 0 {
		return p
	}
	return components.Vector{
		X: gamemath.Clamp(p.X, 0, a.Width),
		Y: gamemath.Clamp(p.Y, 0, a.Height),
	}
}
