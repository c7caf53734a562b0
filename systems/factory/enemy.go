package factory

import (
	"math"
	"time"

	"github.com/automoto/illuyanka/archetypes"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/automoto/illuyanka/timing"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

func CreateEnemy(ecs *ecs.ECS, archetype cfg.Archetype, pos components.Vector) *donburi.Entry {
	// Use the requested archetype, fall back to the skeleton if it has no tuning
	enemyType := cfg.EnemyType(archetype)
	if enemyType == nil {
		logger(ecs.World).Warn("no tuning for enemy archetype, using skeleton",
			zap.Stringer("archetype", archetype))
		archetype = cfg.ArchetypeSkeleton
		enemyType = cfg.EnemyType(archetype)
	}

	enemy := archetypes.Enemy.Spawn(ecs)

	// Create collision object
	obj := spatial.NewBody(pos, enemyType.Radius, "character", tags.ResolvEnemy)
	obj.Data = enemy
	data := components.ObjectData{Object: obj}
	components.Object.SetValue(enemy, data)
	addToSpace(ecs.World, data)

	rt := runtimeOf(ecs.World)

	enemyData := components.EnemyData{
		Archetype:  archetype,
		Type:       enemyType, // Cache the config reference
		Attack:     timing.ReadyCooldown(),
		Jump:       timing.ReadyCooldown(),
		NormalCast: timing.ReadyCooldown(),
		HeavyCast:  timing.ReadyCooldown(),
	}
	if rt != nil {
		enemyData.NextIdleSound = rt.Clock.Now() + FirstIdleDelay(enemyType, rt.Rand.Float64())
	}
	components.Enemy.SetValue(enemy, enemyData)

	components.State.SetValue(enemy, components.StateData{CurrentState: cfg.StateIdle})
	components.Transform.SetValue(enemy, components.TransformData{
		Position: pos,
		Facing:   components.Vector{X: 0, Y: -1},
	})
	components.Health.SetValue(enemy, components.NewHealth(enemyType.MaxHealth))
	components.Nav.SetValue(enemy, components.NavData{
		Enabled:      enemyType.MoveSpeed > 0,
		FaceMovement: archetype != cfg.ArchetypeWizard,
	})
	components.Animator.SetValue(enemy, components.NewAnimator())
	components.Ragdoll.SetValue(enemy, components.RagdollData{
		Parts: RagdollLayout(enemyType.RagdollParts, enemyType.Radius),
	})

	voice := components.VoiceData{Archetype: archetype.String()}
	if rt != nil {
		voice.Dispatcher = rt.Sound
	}
	components.Voice.SetValue(enemy, voice)

	if archetype == cfg.ArchetypeDragon {
		donburi.Add(enemy, components.Bombardier, &components.BombardierData{})
	}

	return enemy
}

// FirstIdleDelay is how long a freshly spawned enemy waits before its first
// idle sound. roll is a uniform sample in [0, 1).
func FirstIdleDelay(t *cfg.EnemyTypeConfig, roll float64) time.Duration {
	if t.IdleSoundInitial > 0 {
		return t.IdleSoundInitial
	}
	return IdleDelay(t, roll)
}

// IdleDelay picks the gap between two idle sounds.
func IdleDelay(t *cfg.EnemyTypeConfig, roll float64) time.Duration {
	span := t.IdleSoundMax - t.IdleSoundMin
	if span <= 0 {
		return t.IdleSoundMin
	}
	return t.IdleSoundMin + time.Duration(roll*float64(span))
}

// RagdollLayout places n limbs around an actor of the given radius: the
// first one at the centre and the rest on a ring.
func RagdollLayout(n int, radius float64) []components.RagdollPart {
	if n <= 0 {
		return nil
	}
	partRadius := radius * 0.35
	parts := make([]components.RagdollPart, 0, n)
	parts = append(parts, components.RagdollPart{Radius: partRadius})
	for i := 1; i < n; i++ {
		angle := 2 * math.Pi * float64(i-1) / float64(n-1)
		parts = append(parts, components.RagdollPart{
			Offset: components.Vector{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(radius * 0.7),
			Radius: partRadius,
		})
	}
	return parts
}
