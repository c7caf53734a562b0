package messages

// SoundEvent relays a cue the simulation played so clients can mix it locally.
type SoundEvent struct {
	Sound     string
	Archetype string
	Clip      string
	Volume    float64
	X, Y      float64
	Spatial   bool
}

// DeathEvent is broadcast when the player or an enemy dies
type DeathEvent struct {
	VictimID uint // NetworkId of victim
	Kind     string
	X, Y     float64
}

// ArenaOverEvent is broadcast once when the player has died.
type ArenaOverEvent struct {
	Survived  float64 // seconds
	Remaining int     // enemies still alive
}
