package netcomponents

import (
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetActorData is what a viewer needs to draw a combatant or projectile.
type NetActorData struct {
	Kind      netconfig.ActorKind
	State     int // config.StateID of enemies, 0 otherwise
	Health    float64
	MaxHealth float64
	Dead      bool
	Targeted  bool

	// Death sequence, only meaningful once Dead is set
	DeathPhase int
	Dissolve   float64
}

var NetActor = donburi.NewComponentType[NetActorData]()

// LerpNetActor eases the health bar and dissolve; everything else is discrete.
func LerpNetActor(from, to NetActorData, t float64) *NetActorData {
	out := to
	out.Health = from.Health + (to.Health-from.Health)*t
	if from.Dead && to.Dead {
		out.Dissolve = from.Dissolve + (to.Dissolve-from.Dissolve)*t
	}
	return &out
}
