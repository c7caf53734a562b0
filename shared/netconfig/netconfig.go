// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// ProtocolVersion must match between client and server for a join to succeed.
const ProtocolVersion = "illuyanka/1"

// DefaultPort is where the dedicated server listens unless configured otherwise.
const DefaultPort uint = 7373

// ActorKind tells the viewer what to draw for a synced actor.
type ActorKind int

const (
	KindPlayer ActorKind = iota
	KindSkeleton
	KindMutant
	KindWizard
	KindDragon
	KindFireball
)

var kindNames = map[ActorKind]string{
	KindPlayer:   "player",
	KindSkeleton: "skeleton",
	KindMutant:   "mutant",
	KindWizard:   "wizard",
	KindDragon:   "dragon",
	KindFireball: "fireball",
}

func (k ActorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// KindForArchetype maps an enemy archetype name onto its actor kind.
func KindForArchetype(name string) (ActorKind, bool) {
	for k, n := range kindNames {
		if n == name && k != KindPlayer && k != KindFireball {
			return k, true
		}
	}
	return 0, false
}

// Role is what a joined client may do.
type Role int

const (
	RoleSpectator Role = iota
	RoleController
)

func (r Role) String() string {
	if r == RoleController {
		return "controller"
	}
	return "spectator"
}
