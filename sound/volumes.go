package sound

import (
	"github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
)

// Volumes are the user-facing sliders, each in [0, 1].
type Volumes struct {
	Master float64 `json:"master"`
	Music  float64 `json:"music"`
	SFX    float64 `json:"sfx"`
	UI     float64 `json:"ui"`
}

// Clamped limits every slider to [0, 1].
func (v Volumes) Clamped() Volumes {
	return Volumes{
		Master: gamemath.Clamp01(v.Master),
		Music:  gamemath.Clamp01(v.Music),
		SFX:    gamemath.Clamp01(v.SFX),
		UI:     gamemath.Clamp01(v.UI),
	}
}

// Effective is the bus volume scaled by the master slider.
func (v Volumes) Effective(bus config.Bus) float64 {
	switch bus {
	case config.BusMusic:
		return v.Music * v.Master
	case config.BusUI:
		return v.UI * v.Master
	default:
		return v.SFX * v.Master
	}
}
