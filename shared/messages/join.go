package messages

import (
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// JoinRequest is sent by a client after connecting to request joining the arena.
type JoinRequest struct {
	Version    string
	PlayerName string
	Spectate   bool
}

// Obstacle is a solid rectangle of the arena floor, in metres.
type Obstacle struct {
	X, Y, W, H float64
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// It carries the static level geometry, which is never synced per tick.
type JoinAccepted struct {
	NetworkID  esync.NetworkId // the player entity
	SessionID  string
	Role       netconfig.Role
	ServerName string
	TickRate   int
	Level      string
	Width      float64
	Height     float64
	Obstacles  []Obstacle
}

// JoinRejected is sent by the server when a client's join request is denied.
type JoinRejected struct {
	Reason string
}
