package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ProjectileData is a fireball. Velocity is fixed when it is launched.
type ProjectileData struct {
	Owner         donburi.Entity
	Velocity      Vector
	VerticalSpeed float64
	Damage        float64
	Remaining     time.Duration
	HasHit        bool
}

var Projectile = donburi.NewComponentType[ProjectileData]()
