// Package ai holds the per-archetype enemy transition tables. Every function
// here is pure: it reads the current state and a snapshot of what the enemy
// can see, and reports the next state plus the side effect the caller should
// carry out.
package ai

import "github.com/automoto/illuyanka/config"

// Effect is the side effect a transition asks its driver to perform.
type Effect int

const (
	EffectNone Effect = iota
	EffectResetPath
	EffectPursue
	EffectRetreat
	EffectAttack
	EffectStartJump
	EffectBombard
)

func (e Effect) String() string {
	switch e {
	case EffectResetPath:
		return "reset_path"
	case EffectPursue:
		return "pursue"
	case EffectRetreat:
		return "retreat"
	case EffectAttack:
		return "attack"
	case EffectStartJump:
		return "start_jump"
	case EffectBombard:
		return "bombard"
	}
	return "none"
}

// Input is what an enemy knows about the world for one evaluation.
type Input struct {
	HasTarget bool
	Distance  float64
	Dead      bool
	// Busy is true while an attack, cast or leap is still running.
	Busy bool

	AttackReady bool
	JumpReady   bool

	DetectionRange  float64
	AttackRange     float64
	JumpRange       float64
	RetreatDistance float64
	ReengageRatio   float64
}

// InputFor fills the range thresholds from an archetype's tuning.
func InputFor(t *config.EnemyTypeConfig) Input {
	return Input{
		DetectionRange:  t.DetectionRange,
		AttackRange:     t.AttackRange,
		JumpRange:       t.Jump.Range,
		RetreatDistance: t.Kite.RetreatDistance,
		ReengageRatio:   t.Kite.ReengageRatio,
	}
}

// Advance evaluates one step of the state machine for kind.
func Advance(kind config.Archetype, state config.StateID, in Input) (config.StateID, Effect) {
	if state == config.StateDead {
		return config.StateDead, EffectNone
	}
	if in.Dead {
		return config.StateDead, EffectResetPath
	}
	// A leap in flight always finishes, target or not
	if state == config.StateJumpAttacking && in.Busy {
		return config.StateJumpAttacking, EffectNone
	}
	if !in.HasTarget {
		if state == config.StateIdle {
			return config.StateIdle, EffectNone
		}
		return config.StateIdle, EffectResetPath
	}

	switch kind {
	case config.ArchetypeMutant:
		return advanceMutant(state, in)
	case config.ArchetypeWizard:
		return advanceWizard(state, in)
	case config.ArchetypeDragon:
		return advanceDragon(state, in)
	default:
		return advanceBase(state, in)
	}
}

func advanceBase(state config.StateID, in Input) (config.StateID, Effect) {
	d := in.Distance
	switch state {
	case config.StateIdle:
		if d <= in.DetectionRange {
			return config.StateChasing, EffectNone
		}
		return config.StateIdle, EffectNone

	case config.StateChasing:
		if d > in.DetectionRange {
			return config.StateIdle, EffectResetPath
		}
		if d <= in.AttackRange && in.AttackReady {
			return config.StateAttacking, EffectAttack
		}
		return config.StateChasing, EffectPursue

	case config.StateAttacking:
		if d > in.AttackRange {
			return config.StateChasing, EffectNone
		}
		if in.AttackReady && !in.Busy {
			return config.StateAttacking, EffectAttack
		}
		return config.StateAttacking, EffectNone
	}

	// States this archetype never enters fall back to idle.
	return config.StateIdle, EffectResetPath
}

func advanceMutant(state config.StateID, in Input) (config.StateID, Effect) {
	d := in.Distance
	switch state {
	case config.StateJumpAttacking:
		if in.Busy {
			return config.StateJumpAttacking, EffectNone
		}
		return config.StateChasing, EffectNone

	case config.StateChasing:
		if d > in.DetectionRange {
			return config.StateIdle, EffectResetPath
		}
		if d <= in.AttackRange && in.AttackReady {
			return config.StateAttacking, EffectAttack
		}
		if d > in.AttackRange && d <= in.JumpRange && in.JumpReady && !in.Busy {
			return config.StateJumpAttacking, EffectStartJump
		}
		return config.StateChasing, EffectPursue
	}
	return advanceBase(state, in)
}

func advanceWizard(state config.StateID, in Input) (config.StateID, Effect) {
	d := in.Distance
	switch state {
	case config.StateIdle:
		if d <= in.DetectionRange {
			return config.StateRetreating, EffectNone
		}
		return config.StateIdle, EffectNone

	case config.StateRetreating:
		if d > in.RetreatDistance {
			return config.StateAttacking, EffectNone
		}
		return config.StateRetreating, EffectRetreat

	case config.StateAttacking:
		if d <= in.RetreatDistance*in.ReengageRatio {
			return config.StateRetreating, EffectRetreat
		}
		if d <= in.AttackRange {
			if in.AttackReady && !in.Busy {
				return config.StateAttacking, EffectAttack
			}
			return config.StateAttacking, EffectNone
		}
		return config.StateIdle, EffectResetPath
	}
	return config.StateIdle, EffectResetPath
}

func advanceDragon(state config.StateID, in Input) (config.StateID, Effect) {
	if in.Busy {
		return config.StateAttacking, EffectNone
	}
	if in.Distance <= in.DetectionRange && in.AttackReady {
		return config.StateAttacking, EffectBombard
	}
	return config.StateIdle, EffectNone
}
