package components

import (
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Vector represents a 2D ground-plane vector.
type Vector = gamemath.Vector

// TransformData places an actor on the ground plane. Elevation is the height
// above the ground, used by leaps and projectiles.
type TransformData struct {
	Position  Vector
	Facing    Vector // unit heading
	Elevation float64
}

var Transform = donburi.NewComponentType[TransformData]()

// KnockbackData is the planar velocity an actor was shoved with. It decays
// each tick; Lift is the vertical part of the last impulse.
type KnockbackData struct {
	Velocity Vector
	Lift     float64
}

var Knockback = donburi.NewComponentType[KnockbackData]()
