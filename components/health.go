package components

import (
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/yohamta/donburi"
)

// HealthData is the combatant model. Current stays within [0, Max]; once Dead
// is set nothing changes it again.
type HealthData struct {
	Current float64
	Max     float64
	Dead    bool
}

func NewHealth(max float64) HealthData {
	return HealthData{Current: max, Max: max}
}

// TakeDamage applies amount and reports whether this call killed the owner.
func (h *HealthData) TakeDamage(amount float64) (died bool) {
	if h.Dead || amount <= 0 {
		return false
	}
	h.Current = gamemath.Clamp(h.Current-amount, 0, h.Max)
	if h.Current == 0 {
		h.Dead = true
		return true
	}
	return false
}

// Heal restores amount, never past Max. Dead combatants stay dead.
func (h *HealthData) Heal(amount float64) {
	if h.Dead || amount <= 0 {
		return
	}
	h.Current = gamemath.Clamp(h.Current+amount, 0, h.Max)
}

func (h *HealthData) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// HealthBand buckets the ratio for health bar colouring.
type HealthBand int

const (
	HealthCritical HealthBand = iota
	HealthWarning
	HealthGood
)

func (h *HealthData) Band() HealthBand {
	switch r := h.Ratio(); {
	case r > 0.6:
		return HealthGood
	case r > 0.3:
		return HealthWarning
	default:
		return HealthCritical
	}
}

var Health = donburi.NewComponentType[HealthData]()
