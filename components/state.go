package components

import (
	"time"

	"github.com/automoto/illuyanka/config"
	"github.com/yohamta/donburi"
)

type StateData struct {
	CurrentState  config.StateID
	PreviousState config.StateID
	EnteredAt     time.Duration
}

// Enter switches state and reports whether it changed.
func (s *StateData) Enter(next config.StateID, now time.Duration) bool {
	if s.CurrentState == next {
		return false
	}
	s.PreviousState = s.CurrentState
	s.CurrentState = next
	s.EnteredAt = now
	return true
}

var State = donburi.NewComponentType[StateData]()
