// Package network connects the viewer to a dedicated arena server.
package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/shared/netconfig"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

var ErrNotConnected = errors.New("not connected")

// Client manages a WebSocket connection to the arena server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu  sync.RWMutex
	log *zap.Logger

	state     ClientState
	lastError error
	join      messages.JoinAccepted
	conn      *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
	soundCh    chan messages.SoundEvent
	deathCh    chan messages.DeathEvent
	overCh     chan messages.ArenaOverEvent
}

func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		log:        log,
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		soundCh:    make(chan messages.SoundEvent, 64),
		deathCh:    make(chan messages.DeathEvent, 16),
		overCh:     make(chan messages.ArenaOverEvent, 1),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, playerName string, spectate bool) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info("connected to server", zap.String("address", address))
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    netconfig.ProtocolVersion,
			PlayerName: playerName,
			Spectate:   spectate,
		})
		if err != nil {
			c.setError(fmt.Errorf("sending join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.log.Info("join accepted",
			zap.Uint("network_id", uint(msg.NetworkID)),
			zap.String("server", msg.ServerName),
			zap.String("session", msg.SessionID),
			zap.Stringer("role", msg.Role),
			zap.Int("tick_rate", msg.TickRate))
		c.mu.Lock()
		c.join = msg
		c.state = StateJoined
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.Warn("join rejected", zap.String("reason", msg.Reason))
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.SoundEvent) {
		select {
		case c.soundCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) {
		select {
		case c.deathCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.ArenaOverEvent) {
		select {
		case c.overCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Info("disconnected", zap.Error(err))
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warn("client error", zap.Error(err))
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Joined returns the server's join reply; only meaningful in StateJoined.
func (c *Client) Joined() messages.JoinAccepted {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.join
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainSounds returns all pending sound events, non-blocking.
func (c *Client) DrainSounds() []messages.SoundEvent {
	return drainChan(c.soundCh)
}

// DrainDeaths returns all pending death events, non-blocking.
func (c *Client) DrainDeaths() []messages.DeathEvent {
	return drainChan(c.deathCh)
}

// ArenaOver returns the end-of-arena summary once it has arrived.
func (c *Client) ArenaOver() (messages.ArenaOverEvent, bool) {
	select {
	case evt := <-c.overCh:
		return evt, true
	default:
		return messages.ArenaOverEvent{}, false
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
