package factory

import (
	"github.com/automoto/illuyanka/archetypes"
	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/tags"
	"github.com/jakecoffman/cp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateObstacle adds a solid axis-aligned block. x, y is the top-left corner.
// The block also becomes a static shape in the ragdoll space when it exists.
func CreateObstacle(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	obstacle := archetypes.Obstacle.Spawn(ecs)

	obj := spatial.NewBox(x, y, w, h, tags.ResolvSolid)
	obj.Data = obstacle // Link for O(1) lookup
	data := components.ObjectData{Object: obj}
	components.Object.SetValue(obstacle, data)
	addToSpace(ecs.World, data)

	if pw, ok := components.PhysicsWorld.First(ecs.World); ok {
		space := components.PhysicsWorld.Get(pw).Space
		shape := cp.NewBox2(space.StaticBody, cp.BB{L: x, B: y, R: x + w, T: y + h}, 0)
		shape.SetFriction(0.8)
		space.AddShape(shape)
	}

	return obstacle
}
