package components

import (
	"github.com/automoto/illuyanka/timing"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	// Target is a weak reference; donburi.Null when nothing is targeted.
	Target    donburi.Entity
	OldTarget donburi.Entity

	CanMove         bool
	CanChangeTarget bool
	IsAttacking     bool
	AttackClip      string
	HitThisSwing    map[donburi.Entity]bool

	Dashing      bool
	DashCooldown timing.Cooldown
}

var Player = donburi.NewComponentType[PlayerData]()

// PlayerInputData is what the controlling layer asked for this tick.
type PlayerInputData struct {
	Move        Vector
	QuickAttack bool
	HeavyAttack bool
	Dash        bool
	CycleTarget bool
}

var PlayerInput = donburi.NewComponentType[PlayerInputData]()

// CameraData is the view the player steers relative to.
type CameraData struct {
	Yaw float64 // radians, 0 looks along +Y
}

var Camera = donburi.NewComponentType[CameraData]()

// DashData is a dash in progress.
type DashData struct {
	Start  Vector
	Target Vector
	Tween  *gween.Tween
	Trail  donburi.Entity
}

var Dash = donburi.NewComponentType[DashData]()

// ApproachData eases an actor to a point, used by attack approach moves.
type ApproachData struct {
	From  Vector
	To    Vector
	Tween *gween.Tween
}

var Approach = donburi.NewComponentType[ApproachData]()
