package components

import (
	"time"

	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// DeathPhase is where an actor is in its death sequence.
type DeathPhase int

const (
	DeathRagdoll DeathPhase = iota
	DeathDissolving
	DeathGrace
	DeathRemoved
)

func (p DeathPhase) String() string {
	switch p {
	case DeathRagdoll:
		return "ragdoll"
	case DeathDissolving:
		return "dissolving"
	case DeathGrace:
		return "grace"
	case DeathRemoved:
		return "removed"
	}
	return "unknown"
}

// DeathData marks an entity that has started its death sequence.
type DeathData struct {
	Phase     DeathPhase
	StartedAt time.Duration
}

var Death = donburi.NewComponentType[DeathData]()

// DissolveData carries the shader parameters of the fade-out. Progress runs
// 0 to 1 over the dissolve time.
type DissolveData struct {
	Tween       *gween.Tween
	Progress    float64
	Height      float64
	Noise       float64
	StartHeight float64
	Done        bool
}

var Dissolve = donburi.NewComponentType[DissolveData]()

// RemovalData redirects what gets removed when the dissolve finishes.
type RemovalData struct {
	Alternate    donburi.Entity // removed instead of the owner when set
	RemoveParent bool
}

var Removal = donburi.NewComponentType[RemovalData]()

// ParentData links an actor to the entity that owns it.
type ParentData struct {
	Parent donburi.Entity
}

var Parent = donburi.NewComponentType[ParentData]()
