package components

import (
	"time"

	"github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/timing"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	Archetype config.Archetype
	Type      *config.EnemyTypeConfig // cached tuning for the archetype

	// Cooldowns, one per attack kind
	Attack     timing.Cooldown
	Jump       timing.Cooldown
	NormalCast timing.Cooldown
	HeavyCast  timing.Cooldown

	IsAttacking   bool
	TargetMarker  bool // the player currently has this enemy targeted
	NextIdleSound time.Duration
	Clip          string // attack clip currently playing
}

var Enemy = donburi.NewComponentType[EnemyData]()

// NavData is the navigation request an enemy hands to the movement layer.
type NavData struct {
	Enabled     bool
	HasPath     bool
	Destination Vector
	Speed       float64
	Velocity    Vector // what the mover actually did last tick

	// FaceMovement turns the actor toward where it walks. Kiting casters
	// keep facing their target instead.
	FaceMovement bool
}

var Nav = donburi.NewComponentType[NavData]()

// JumpAttackData is a mutant leap in flight. Target is fixed at launch.
type JumpAttackData struct {
	Start    Vector
	Target   Vector
	Elapsed  time.Duration
	Duration time.Duration
	Height   float64
}

var JumpAttack = donburi.NewComponentType[JumpAttackData]()

// CastData marks a ranged cast between wind-up and release.
type CastData struct {
	Heavy  bool
	Damage float64
	Fired  bool
}

var Cast = donburi.NewComponentType[CastData]()

// BombardierData holds a dragon's anchor points and the volley in progress.
type BombardierData struct {
	Anchors []Vector
	Points  []Vector
	Markers []donburi.Entity
	Active  bool
}

var Bombardier = donburi.NewComponentType[BombardierData]()
