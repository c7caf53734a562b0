package factory

import (
	"github.com/automoto/illuyanka/archetypes"
	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/spatial"
	"github.com/jakecoffman/cp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateRuntime spawns the singleton holding the clock, scheduler, random
// source, logger and sound dispatcher shared by every system.
func CreateRuntime(ecs *ecs.ECS, rt components.RuntimeData, arena components.ArenaData) *donburi.Entry {
	e := archetypes.Runtime.Spawn(ecs)
	if rt.Log == nil {
		rt.Log = zap.NewNop()
	}
	components.Runtime.SetValue(e, rt)
	components.Arena.SetValue(e, arena)
	components.Camera.SetValue(e, components.CameraData{})
	return e
}

func CreateSpace(ecs *ecs.ECS, width, height float64, cellSize int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{Space: spatial.NewSpace(width, height, cellSize)})
	return space
}

// CreatePhysicsWorld spawns the rigid-body space ragdolls are simulated in.
// The arena is viewed from above, so there is no gravity.
func CreatePhysicsWorld(ecs *ecs.ECS) *donburi.Entry {
	e := archetypes.PhysicsWorld.Spawn(ecs)
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	components.PhysicsWorld.SetValue(e, components.PhysicsWorldData{Space: space})
	return e
}

func runtimeOf(w donburi.World) *components.RuntimeData {
	if e, ok := components.Runtime.First(w); ok {
		return components.Runtime.Get(e)
	}
	return nil
}

func logger(w donburi.World) *zap.Logger {
	if rt := runtimeOf(w); rt != nil && rt.Log != nil {
		return rt.Log
	}
	return zap.NewNop()
}

// addToSpace registers obj with the collision space if one exists yet.
func addToSpace(w donburi.World, obj components.ObjectData) {
	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Add(obj.Object)
	}
}
