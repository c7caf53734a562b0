package systems

import (
	"github.com/automoto/illuyanka/ai"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// mutant is a heavy melee enemy that closes distance with a leap.
type mutant struct{ skeleton }

func (m mutant) UpdateAI(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	in := ai.InputFor(enemy.Type)
	in.AttackReady = enemy.Attack.Ready
	in.JumpReady = enemy.Jump.Ready
	in.Busy = enemy.IsAttacking || e.HasComponent(components.JumpAttack)

	effect := transition(ecs, e, target, in)
	if effect == ai.EffectStartJump {
		StartJumpAttack(ecs, e, target)
		return
	}
	applyEffect(ecs, e, target, effect, m)
}

// Attack picks the heavy swing when the player is inside heavy range.
func (mutant) Attack(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if !canStartAttack(e, enemy, enemy.Attack.Ready) || target == nil {
		return
	}
	enemy.IsAttacking = true
	enemy.Attack.Start(enemy.Type.AttackCooldown)

	anim := components.Animator.Get(e)
	if positionOf(e).Dist(positionOf(target)) <= enemy.Type.Melee.HeavyAttackRange {
		enemy.Clip = "mutant_heavy"
		anim.SetTrigger(cfg.TriggerHeavyAttack)
		playSound(e, cfg.SoundEnemyAttack, 1)
	} else {
		enemy.Clip = "mutant_normal"
		anim.SetTrigger(cfg.TriggerAttack)
		playSound(e, cfg.SoundEnemyAttack, 0)
	}
	playClip(ecs, e, enemy.Clip, enemyHooks)
	releaseAfterCooldown(ecs, e)
}

func (m mutant) UpdateAnimationParams(ecs *ecs.ECS, e *donburi.Entry) {
	m.skeleton.UpdateAnimationParams(ecs, e)
	anim := components.Animator.Get(e)
	jumping := e.HasComponent(components.JumpAttack)
	anim.SetBool(cfg.ParamIsJumpAttack, jumping)
	if jumping {
		anim.SetFloat(cfg.ParamSpeed, 0)
	}
}

// StartJumpAttack launches a leap at where the player stands right now. The
// landing point does not follow the player afterwards.
func StartJumpAttack(ecs *ecs.ECS, e, target *donburi.Entry) {
	enemy := components.Enemy.Get(e)
	if target == nil || isDead(e) || !enemy.Jump.Ready || e.HasComponent(components.JumpAttack) {
		return
	}
	jump := enemy.Type.Jump
	enemy.Jump.Start(jump.Cooldown)

	nav := components.Nav.Get(e)
	nav.Enabled = false
	nav.HasPath = false
	nav.Velocity = components.Vector{}

	start := positionOf(e)
	dest := positionOf(target)
	faceTowards(e, dest)
	donburi.Add(e, components.JumpAttack, &components.JumpAttackData{
		Start:    start,
		Target:   dest,
		Duration: jump.Duration,
		Height:   jump.Height,
	})

	components.Animator.Get(e).SetTrigger(cfg.TriggerJumpAttack)
	playSound(e, cfg.SoundEnemySpecial, sound.RandomIndex)
	logger(ecs.World).Debug("jump attack started",
		entityField(e),
		zap.Float64("distance", start.Dist(dest)))
}

// UpdateJumpAttacks moves leaping actors along their arc and lands them.
func UpdateJumpAttacks(ecs *ecs.ECS) {
	rt := runtimeOf(ecs.World)
	if rt == nil {
		return
	}
	dt := rt.Clock.Step()

	for _, e := range collect(ecs.World, components.JumpAttack.Each) {
		jump := components.JumpAttack.Get(e)
		jump.Elapsed += dt
		progress := 1.0
		if jump.Duration > 0 {
			progress = gamemath.Clamp01(float64(jump.Elapsed) / float64(jump.Duration))
		}

		t := components.Transform.Get(e)
		t.Position = jump.Start.Lerp(jump.Target, progress)
		t.Elevation = gamemath.ArcHeight(progress, jump.Height)
		if progress >= 1 {
			t.Position = jump.Target
			t.Elevation = 0
		}
		spatial.MoveTo(components.Object.Get(e).Object, t.Position)

		if progress >= 1 {
			landJump(ecs, e)
		}
	}
}

func landJump(ecs *ecs.ECS, e *donburi.Entry) {
	donburi.Remove[components.JumpAttackData](e, components.JumpAttack)

	pos := positionOf(e)
	factory.CreateEffect(ecs, components.EffectLanding, pos, cfg.Effects.LandingLifetime)
	playSound(e, cfg.SoundEnemySpecial, sound.RandomIndex)

	// Deal damage if player is still in range
	enemy := components.Enemy.Get(e)
	if player := playerEntry(ecs.World); player != nil && !isDead(player) {
		if pos.Dist(positionOf(player)) <= enemy.Type.AttackRange {
			TakeDamage(ecs, player, enemy.Type.Jump.Damage)
		}
	}

	components.Nav.Get(e).Enabled = true
	components.State.Get(e).Enter(cfg.StateChasing, now(ecs.World))
}
