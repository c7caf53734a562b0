package components

import (
	"github.com/jakecoffman/cp"
	"github.com/yohamta/donburi"
)

// RagdollPart is one limb. Offset places it relative to the actor while the
// ragdoll is off; Body exists only once the ragdoll is active.
type RagdollPart struct {
	Offset Vector
	Radius float64
	Body   *cp.Body
	Shape  *cp.Shape
}

type RagdollData struct {
	Parts  []RagdollPart
	Joints []*cp.Constraint
	Active bool
}

var Ragdoll = donburi.NewComponentType[RagdollData]()

// PhysicsWorldData is the singleton rigid-body space ragdolls live in.
type PhysicsWorldData struct {
	Space *cp.Space
}

var PhysicsWorld = donburi.NewComponentType[PhysicsWorldData]()
