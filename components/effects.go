package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// EffectKind names a transient visual cue.
type EffectKind int

const (
	EffectHit EffectKind = iota
	EffectDeath
	EffectLanding
	EffectDashImpact
	EffectDashTrail
	EffectWarningMarker
	EffectExplosion
	EffectFireballHit
)

var effectNames = map[EffectKind]string{
	EffectHit:           "hit",
	EffectDeath:         "death",
	EffectLanding:       "landing",
	EffectDashImpact:    "dash_impact",
	EffectDashTrail:     "dash_trail",
	EffectWarningMarker: "warning_marker",
	EffectExplosion:     "explosion",
	EffectFireballHit:   "fireball_hit",
}

func (k EffectKind) String() string { return effectNames[k] }

// EffectData drives a fire-and-forget effect. Duration <= 0 keeps the effect
// alive until something removes it (warning markers).
type EffectData struct {
	Kind     EffectKind
	Elapsed  time.Duration
	Duration time.Duration

	// Follow keeps the effect on its owner's position until released.
	Owner  donburi.Entity
	Follow bool

	Scale float64
	Alpha float64
	Light float64
}

var Effect = donburi.NewComponentType[EffectData]()
