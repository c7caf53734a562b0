package ai_test

import (
	"testing"

	"github.com/automoto/illuyanka/ai"
	"github.com/automoto/illuyanka/config"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func baseInput(d float64) ai.Input {
	return ai.Input{
		HasTarget:      true,
		Distance:       d,
		AttackReady:    true,
		JumpReady:      true,
		DetectionRange: 10,
		AttackRange:    2,
		JumpRange:      8,
	}
}

func TestIdleWithinDetectionStartsChasing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := baseInput(0)
		in.Distance = rapid.Float64Range(0, in.DetectionRange).Draw(rt, "distance")
		for _, kind := range []config.Archetype{config.ArchetypeSkeleton, config.ArchetypeMutant} {
			next, _ := ai.Advance(kind, config.StateIdle, in)
			if next != config.StateChasing {
				rt.Fatalf("%s idle at %v went to %s", kind, in.Distance, next)
			}
		}
	})
}

func TestChasingBeyondDetectionGoesIdle(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := baseInput(0)
		in.Distance = rapid.Float64Range(in.DetectionRange+1e-6, 1e6).Draw(rt, "distance")
		in.AttackReady = rapid.Bool().Draw(rt, "ready")
		for _, kind := range []config.Archetype{config.ArchetypeSkeleton, config.ArchetypeMutant} {
			next, effect := ai.Advance(kind, config.StateChasing, in)
			if next != config.StateIdle || effect != ai.EffectResetPath {
				rt.Fatalf("%s chasing at %v went to %s/%s", kind, in.Distance, next, effect)
			}
		}
	})
}

func TestDeadIsTerminal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := baseInput(rapid.Float64Range(0, 100).Draw(rt, "distance"))
		in.HasTarget = rapid.Bool().Draw(rt, "target")
		in.Busy = rapid.Bool().Draw(rt, "busy")
		kind := config.Archetype(rapid.IntRange(0, 3).Draw(rt, "kind"))
		next, effect := ai.Advance(kind, config.StateDead, in)
		if next != config.StateDead || effect != ai.EffectNone {
			rt.Fatalf("dead %s moved to %s/%s", kind, next, effect)
		}
	})
}

func TestMissingTargetFailsSafeToIdle(t *testing.T) {
	in := baseInput(1)
	in.HasTarget = false
	for _, state := range []config.StateID{config.StateChasing, config.StateAttacking, config.StateRetreating} {
		next, effect := ai.Advance(config.ArchetypeWizard, state, in)
		assert.Equal(t, config.StateIdle, next)
		assert.Equal(t, ai.EffectResetPath, effect)
	}
	next, effect := ai.Advance(config.ArchetypeSkeleton, config.StateIdle, in)
	assert.Equal(t, config.StateIdle, next)
	assert.Equal(t, ai.EffectNone, effect)
}

func TestLeapSurvivesLostTarget(t *testing.T) {
	in := baseInput(5)
	in.HasTarget = false
	in.Busy = true
	next, effect := ai.Advance(config.ArchetypeMutant, config.StateJumpAttacking, in)
	assert.Equal(t, config.StateJumpAttacking, next)
	assert.Equal(t, ai.EffectNone, effect)

	// Once landed the missing target sends it back to idle
	in.Busy = false
	next, effect = ai.Advance(config.ArchetypeMutant, config.StateJumpAttacking, in)
	assert.Equal(t, config.StateIdle, next)
	assert.Equal(t, ai.EffectResetPath, effect)
}

func TestHealthDepletedEntersDead(t *testing.T) {
	in := baseInput(1)
	in.Dead = true
	next, _ := ai.Advance(config.ArchetypeMutant, config.StateAttacking, in)
	assert.Equal(t, config.StateDead, next)
}

func TestBaseTable(t *testing.T) {
	tests := []struct {
		name   string
		state  config.StateID
		in     func(ai.Input) ai.Input
		next   config.StateID
		effect ai.Effect
	}{
		{"idle out of range", config.StateIdle, func(in ai.Input) ai.Input { in.Distance = 11; return in }, config.StateIdle, ai.EffectNone},
		{"chasing in attack range", config.StateChasing, func(in ai.Input) ai.Input { in.Distance = 2; return in }, config.StateAttacking, ai.EffectAttack},
		{"chasing in range on cooldown", config.StateChasing, func(in ai.Input) ai.Input { in.Distance = 1; in.AttackReady = false; return in }, config.StateChasing, ai.EffectPursue},
		{"chasing pursues", config.StateChasing, func(in ai.Input) ai.Input { in.Distance = 5; return in }, config.StateChasing, ai.EffectPursue},
		{"attacking target leaves range", config.StateAttacking, func(in ai.Input) ai.Input { in.Distance = 2.1; return in }, config.StateChasing, ai.EffectNone},
		{"attacking while busy", config.StateAttacking, func(in ai.Input) ai.Input { in.Distance = 1; in.Busy = true; return in }, config.StateAttacking, ai.EffectNone},
		{"attacking ready again", config.StateAttacking, func(in ai.Input) ai.Input { in.Distance = 1; return in }, config.StateAttacking, ai.EffectAttack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, effect := ai.Advance(config.ArchetypeSkeleton, tt.state, tt.in(baseInput(0)))
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.effect, effect)
		})
	}
}

func TestMutantJumpWindow(t *testing.T) {
	in := baseInput(6)
	next, effect := ai.Advance(config.ArchetypeMutant, config.StateChasing, in)
	assert.Equal(t, config.StateJumpAttacking, next)
	assert.Equal(t, ai.EffectStartJump, effect)

	in.JumpReady = false
	next, effect = ai.Advance(config.ArchetypeMutant, config.StateChasing, in)
	assert.Equal(t, config.StateChasing, next)
	assert.Equal(t, ai.EffectPursue, effect)

	in = baseInput(9)
	next, _ = ai.Advance(config.ArchetypeMutant, config.StateChasing, in)
	assert.Equal(t, config.StateChasing, next, "beyond jump range keeps chasing")
}

func TestMutantJumpIsNotInterrupted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := baseInput(rapid.Float64Range(0, 50).Draw(rt, "distance"))
		in.Busy = true
		next, effect := ai.Advance(config.ArchetypeMutant, config.StateJumpAttacking, in)
		if next != config.StateJumpAttacking || effect != ai.EffectNone {
			rt.Fatalf("leap interrupted at %v: %s/%s", in.Distance, next, effect)
		}
	})
	in := baseInput(3)
	next, _ := ai.Advance(config.ArchetypeMutant, config.StateJumpAttacking, in)
	assert.Equal(t, config.StateChasing, next)
}

func wizardInput(d float64) ai.Input {
	return ai.Input{
		HasTarget:       true,
		Distance:        d,
		AttackReady:     true,
		DetectionRange:  10,
		AttackRange:     12,
		RetreatDistance: 8,
		ReengageRatio:   0.8,
	}
}

func TestWizardKiting(t *testing.T) {
	next, _ := ai.Advance(config.ArchetypeWizard, config.StateIdle, wizardInput(9))
	assert.Equal(t, config.StateRetreating, next)

	next, effect := ai.Advance(config.ArchetypeWizard, config.StateRetreating, wizardInput(5))
	assert.Equal(t, config.StateRetreating, next)
	assert.Equal(t, ai.EffectRetreat, effect)

	next, _ = ai.Advance(config.ArchetypeWizard, config.StateRetreating, wizardInput(8.5))
	assert.Equal(t, config.StateAttacking, next)

	next, effect = ai.Advance(config.ArchetypeWizard, config.StateAttacking, wizardInput(10))
	assert.Equal(t, config.StateAttacking, next)
	assert.Equal(t, ai.EffectAttack, effect)

	next, _ = ai.Advance(config.ArchetypeWizard, config.StateAttacking, wizardInput(6.4))
	assert.Equal(t, config.StateRetreating, next, "closing within 80% of retreat distance")

	next, _ = ai.Advance(config.ArchetypeWizard, config.StateAttacking, wizardInput(6.5))
	assert.Equal(t, config.StateAttacking, next)

	next, _ = ai.Advance(config.ArchetypeWizard, config.StateAttacking, wizardInput(13))
	assert.Equal(t, config.StateIdle, next)
}

func TestDragonBombardGating(t *testing.T) {
	in := ai.Input{HasTarget: true, Distance: 15, AttackReady: true, DetectionRange: 20}
	next, effect := ai.Advance(config.ArchetypeDragon, config.StateIdle, in)
	assert.Equal(t, config.StateAttacking, next)
	assert.Equal(t, ai.EffectBombard, effect)

	in.Busy = true
	_, effect = ai.Advance(config.ArchetypeDragon, config.StateAttacking, in)
	assert.Equal(t, ai.EffectNone, effect)

	in.Busy = false
	in.AttackReady = false
	next, effect = ai.Advance(config.ArchetypeDragon, config.StateAttacking, in)
	assert.Equal(t, config.StateIdle, next)
	assert.Equal(t, ai.EffectNone, effect)
}

func TestAttackEffectRequiresReadyCooldown(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kind := config.Archetype(rapid.IntRange(0, 3).Draw(rt, "kind"))
		state := config.StateID(rapid.IntRange(0, 4).Draw(rt, "state"))
		in := wizardInput(rapid.Float64Range(0, 30).Draw(rt, "distance"))
		in.JumpRange = 8
		in.AttackReady = false
		in.JumpReady = false
		_, effect := ai.Advance(kind, state, in)
		if effect == ai.EffectAttack || effect == ai.EffectBombard || effect == ai.EffectStartJump {
			rt.Fatalf("%s in %s started %s with cooldowns spent", kind, state, effect)
		}
	})
}
