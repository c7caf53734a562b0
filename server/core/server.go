// Package core runs an arena headless and serves it to websocket clients.
// The first client to join controls the player; everyone else spectates.
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/arena"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/automoto/illuyanka/sound"
)

type Options struct {
	Name       string
	TickRate   int // network ticks per second
	MaxClients int
	Level      *leveldata.Level
	Seed       uint64
	Bank       *sound.Bank
	Log        *zap.Logger
}

// session is one joined client.
type session struct {
	id     string
	name   string
	role   netconfig.Role
	client *router.NetworkClient
}

// Server manages the arena and client connections
type Server struct {
	arena     *arena.Arena
	mirror    *mirror
	relay     *relaySink
	loop      *GameLoop
	transport *transports.WsServerTransport
	log       *zap.Logger

	name       string
	tickRate   int
	maxClients int
	steps      int // simulation steps per network tick
	playerID   esync.NetworkId

	mu         sync.Mutex
	sessions   map[string]*session // keyed by transport client id
	controller string
	command    messages.PlayerCommand
	over       bool
}

// NewServer builds the arena and marks its entities for network sync.
// protocol.RegisterComponents must have been called first.
func NewServer(opts Options) (*Server, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Server.TickRate
	}
	maxClients := opts.MaxClients
	if maxClients <= 0 {
		maxClients = cfg.Server.MaxClients
	}

	s := &Server{
		log:        log,
		name:       opts.Name,
		tickRate:   tickRate,
		maxClients: maxClients,
		steps:      stepsPerTick(cfg.Sim.TickRate, tickRate),
		sessions:   make(map[string]*session),
		relay:      &relaySink{},
	}
	s.arena = arena.New(arena.Options{
		Level: opts.Level,
		Log:   log.Named("arena"),
		Sink:  s.relay,
		Bank:  opts.Bank,
		Seed:  opts.Seed,
	})

	// Set up the world for esync
	srvsync.UseEsync(s.arena.World())

	s.mirror = newMirror(s.arena, log)
	if err := s.mirror.sync(); err != nil {
		return nil, fmt.Errorf("initial sync: %w", err)
	}
	nid := esync.GetNetworkId(s.arena.Player())
	if nid == nil {
		return nil, errors.New("player entity has no network id")
	}
	s.playerID = *nid

	s.loop = NewGameLoop(s, tickRate, log)
	return s, nil
}

// stepsPerTick sub-steps the fixed-rate simulation inside one network tick.
func stepsPerTick(simRate, netRate int) int {
	if netRate <= 0 || simRate <= netRate {
		return 1
	}
	return (simRate + netRate/2) / netRate
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()

	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	s.log.Info("listening", zap.Uint("port", port), zap.String("name", s.name))
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.Info("client connected", zap.String("client", client.Id()))
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			s.log.Info("client disconnected", zap.String("client", client.Id()), zap.Error(err))
		} else {
			s.log.Info("client disconnected", zap.String("client", client.Id()))
		}
		s.Leave(client.Id())
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		reply := s.Join(client.Id(), client, req)
		if err := client.SendMessage(reply); err != nil {
			s.log.Warn("sending join reply", zap.String("client", client.Id()), zap.Error(err))
		}
	})

	router.On(func(client *router.NetworkClient, cmd messages.PlayerCommand) {
		if !s.Submit(client.Id(), cmd) {
			s.log.Debug("ignoring command from non-controller", zap.String("client", client.Id()))
		}
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warn("client error", zap.Error(err))
	})
}

// Join admits a client and returns the reply to send it, either
// messages.JoinAccepted or messages.JoinRejected.
func (s *Server) Join(id string, client *router.NetworkClient, req messages.JoinRequest) any {
	if req.Version != netconfig.ProtocolVersion {
		s.log.Info("join rejected", zap.String("client", id), zap.String("version", req.Version))
		return messages.JoinRejected{Reason: fmt.Sprintf("protocol %q, server speaks %q", req.Version, netconfig.ProtocolVersion)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok && len(s.sessions) >= s.maxClients {
		return messages.JoinRejected{Reason: "server full"}
	}

	name := req.PlayerName
	if name == "" {
		name = "player"
	}
	role := netconfig.RoleSpectator
	if !req.Spectate && (s.controller == "" || s.controller == id) {
		role = netconfig.RoleController
		s.controller = id
	}
	sess := &session{id: uuid.NewString(), name: name, role: role, client: client}
	s.sessions[id] = sess

	s.log.Info("client joined",
		zap.String("client", id),
		zap.String("session", sess.id),
		zap.String("name", name),
		zap.Stringer("role", role))

	lvl := s.arena.Level
	obstacles := make([]messages.Obstacle, 0, len(lvl.Obstacles))
	for _, o := range lvl.Obstacles {
		obstacles = append(obstacles, messages.Obstacle{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}
	return messages.JoinAccepted{
		NetworkID:  s.playerID,
		SessionID:  sess.id,
		Role:       role,
		ServerName: s.name,
		TickRate:   s.tickRate,
		Level:      lvl.Name,
		Width:      lvl.Width,
		Height:     lvl.Height,
		Obstacles:  obstacles,
	}
}

// Leave forgets a client. When the controller leaves the player stops and
// control goes to whoever joins next.
func (s *Server) Leave(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	if s.controller == id {
		s.controller = ""
		s.command = messages.PlayerCommand{}
	}
}

// Submit queues a command from client id. Only the controller is obeyed.
func (s *Server) Submit(id string, cmd messages.PlayerCommand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || id != s.controller {
		return false
	}
	s.command = s.command.Merge(cmd)
	return true
}

// Tick applies the pending command and advances the arena by one network
// tick. It returns the events to broadcast.
func (s *Server) Tick() []any {
	s.mu.Lock()
	cmd := s.command
	s.command = messages.PlayerCommand{
		Sequence:  cmd.Sequence,
		MoveX:     cmd.MoveX,
		MoveY:     cmd.MoveY,
		CameraYaw: cmd.CameraYaw,
	}
	s.mu.Unlock()

	s.arena.SetCameraYaw(cmd.CameraYaw)
	s.arena.SetInput(commandInput(cmd))
	for i := 0; i < s.steps; i++ {
		s.arena.Step()
	}

	if err := s.mirror.sync(); err != nil {
		s.log.Error("mirroring arena", zap.Error(err))
	}

	events := s.relay.drain()
	events = append(events, s.mirror.drainDeaths()...)
	if s.arena.PlayerDead() && !s.over {
		s.over = true
		summary := messages.ArenaOverEvent{
			Survived:  s.arena.Now().Seconds(),
			Remaining: s.mirror.enemiesAlive,
		}
		s.log.Info("player died", zap.Float64("survived", summary.Survived), zap.Int("remaining", summary.Remaining))
		events = append(events, summary)
	}
	return events
}

// Broadcast sends msg to every joined client.
func (s *Server) Broadcast(msg any) {
	s.mu.Lock()
	clients := make([]*router.NetworkClient, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.client != nil {
			clients = append(clients, sess.client)
		}
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.SendMessage(msg); err != nil {
			s.log.Debug("broadcast failed", zap.String("client", c.Id()), zap.Error(err))
		}
	}
}

func (s *Server) Arena() *arena.Arena { return s.arena }

// PlayerNetworkID is the network id clients use to find the player.
func (s *Server) PlayerNetworkID() esync.NetworkId { return s.playerID }

// Controller returns the client id steering the player, empty when nobody is.
func (s *Server) Controller() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

// ClientCount returns the number of joined clients
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
