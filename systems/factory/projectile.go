package factory

import (
	"math"

	"github.com/automoto/illuyanka/archetypes"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateFireball launches a projectile from (from, fromElevation) toward the
// point (target, targetElevation). The heading never changes after launch.
func CreateFireball(ecs *ecs.ECS, owner donburi.Entity, from components.Vector, fromElevation float64,
	target components.Vector, targetElevation, damage float64) *donburi.Entry {
	fireball := archetypes.Projectile.Spawn(ecs)

	obj := spatial.NewBody(from, cfg.Projectile.Radius, tags.ResolvProjectile)
	obj.Data = fireball
	data := components.ObjectData{Object: obj}
	components.Object.SetValue(fireball, data)
	addToSpace(ecs.World, data)

	planar, vertical := LaunchVelocity(from, fromElevation, target, targetElevation, cfg.Projectile.Speed)
	components.Projectile.SetValue(fireball, components.ProjectileData{
		Owner:         owner,
		Velocity:      planar,
		VerticalSpeed: vertical,
		Damage:        damage,
		Remaining:     cfg.Projectile.Lifetime,
	})
	components.Transform.SetValue(fireball, components.TransformData{
		Position:  from,
		Facing:    planar.Normalized(),
		Elevation: fromElevation,
	})

	return fireball
}

// LaunchVelocity splits a straight-line velocity of the given speed into its
// ground-plane and vertical parts.
func LaunchVelocity(from components.Vector, fromElevation float64, target components.Vector,
	targetElevation, speed float64) (components.Vector, float64) {
	d := target.Sub(from)
	dz := targetElevation - fromElevation
	length := math.Sqrt(d.X*d.X + d.Y*d.Y + dz*dz)
	if length == 0 {
		return components.Vector{}, 0
	}
	return d.Scale(speed / length), dz * speed / length
}
