package systems

import (
	"math"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/jakecoffman/cp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func physicsSpace(w donburi.World) *cp.Space {
	if e, ok := components.PhysicsWorld.First(w); ok {
		return components.PhysicsWorld.Get(e).Space
	}
	return nil
}

// activateRagdoll turns the actor's limbs into dynamic bodies pinned to the
// torso. Every limb inherits the knockback velocity and the limb nearest the
// blow takes the impulse.
func activateRagdoll(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.HasComponent(components.Ragdoll) {
		return
	}
	rd := components.Ragdoll.Get(e)
	space := physicsSpace(ecs.World)
	if rd.Active || space == nil || len(rd.Parts) == 0 {
		return
	}

	pos := positionOf(e)
	mass := cfg.Death.RagdollMass
	if mass <= 0 {
		mass = 1
	}
	damping := cfg.Death.RagdollDamping

	for i := range rd.Parts {
		part := &rd.Parts[i]
		body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, part.Radius, cp.Vector{}))
		body.SetPosition(cp.Vector{X: pos.X + part.Offset.X, Y: pos.Y + part.Offset.Y})
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, d float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, d*math.Pow(1-damping, dt), dt)
		})
		shape := cp.NewCircle(body, part.Radius, cp.Vector{})
		shape.SetFriction(0.8)

		space.AddBody(body)
		space.AddShape(shape)
		part.Body = body
		part.Shape = shape
	}

	// Pin every limb to the torso at their current separation
	torso := rd.Parts[0].Body
	for _, part := range rd.Parts[1:] {
		joint := cp.NewPinJoint(torso, part.Body, cp.Vector{}, cp.Vector{})
		space.AddConstraint(joint)
		rd.Joints = append(rd.Joints, joint)
	}
	rd.Active = true

	if e.HasComponent(components.Knockback) {
		kb := components.Knockback.Get(e)
		for _, part := range rd.Parts {
			part.Body.SetVelocityVector(cp.Vector{X: kb.Velocity.X, Y: kb.Velocity.Y})
		}
		if !kb.Velocity.IsZero() {
			impact := pos.Sub(kb.Velocity.Normalized().Scale(rd.Parts[0].Radius))
			ApplyRagdollImpulse(e, impact, kb.Velocity.Scale(mass))
		}
	}
}

// ApplyRagdollImpulse pushes the limb closest to point.
func ApplyRagdollImpulse(e *donburi.Entry, point, impulse components.Vector) {
	rd := components.Ragdoll.Get(e)
	if !rd.Active {
		return
	}
	var closest *cp.Body
	best := math.Inf(1)
	for _, part := range rd.Parts {
		p := part.Body.Position()
		if d := math.Hypot(p.X-point.X, p.Y-point.Y); d < best {
			best = d
			closest = part.Body
		}
	}
	if closest != nil {
		closest.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, closest.Position())
	}
}

// destroyRagdoll takes the limbs out of the physics space.
func destroyRagdoll(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.HasComponent(components.Ragdoll) {
		return
	}
	rd := components.Ragdoll.Get(e)
	space := physicsSpace(ecs.World)
	if !rd.Active || space == nil {
		return
	}
	for _, joint := range rd.Joints {
		space.RemoveConstraint(joint)
	}
	for i := range rd.Parts {
		part := &rd.Parts[i]
		space.RemoveShape(part.Shape)
		space.RemoveBody(part.Body)
		part.Body, part.Shape = nil, nil
	}
	rd.Joints = nil
	rd.Active = false
}

// UpdatePhysics steps the ragdoll space and lets each dead actor's position
// follow its torso.
func UpdatePhysics(ecs *ecs.ECS) {
	space := physicsSpace(ecs.World)
	if space == nil {
		return
	}
	space.Step(deltaSeconds(ecs.World))

	components.Ragdoll.Each(ecs.World, func(e *donburi.Entry) {
		rd := components.Ragdoll.Get(e)
		if !rd.Active {
			return
		}
		p := rd.Parts[0].Body.Position()
		components.Transform.Get(e).Position = components.Vector{X: p.X, Y: p.Y}
	})
}

// RagdollPositions reports where each limb is, for rendering and tests.
func RagdollPositions(e *donburi.Entry) []components.Vector {
	rd := components.Ragdoll.Get(e)
	out := make([]components.Vector, 0, len(rd.Parts))
	for _, part := range rd.Parts {
		if part.Body == nil {
			out = append(out, positionOf(e).Add(part.Offset))
			continue
		}
		p := part.Body.Position()
		out = append(out, components.Vector{X: p.X, Y: p.Y})
	}
	return out
}
