package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Enemy      = donburi.NewTag().SetName("Enemy")
	Obstacle   = donburi.NewTag().SetName("Obstacle")
	Projectile = donburi.NewTag().SetName("Projectile")
	Effect     = donburi.NewTag().SetName("Effect")
)

// Resolv tags for collision queries
const (
	ResolvSolid      = "solid"
	ResolvPlayer     = "Player"
	ResolvEnemy      = "Enemy"
	ResolvProjectile = "projectile"
	ResolvProbe      = "probe"
)
