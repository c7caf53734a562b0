package config

// StateID identifies the high-level behaviour state of an actor.
type StateID int

const (
	StateIdle StateID = iota
	StateChasing
	StateAttacking
	StateRetreating
	StateJumpAttacking
	StateDead
)

var stateNames = map[StateID]string{
	StateIdle:          "idle",
	StateChasing:       "chasing",
	StateAttacking:     "attacking",
	StateRetreating:    "retreating",
	StateJumpAttacking: "jump_attacking",
	StateDead:          "dead",
}

func (s StateID) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}
