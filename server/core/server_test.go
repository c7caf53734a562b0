package core_test

import (
	"os"
	"testing"

	"github.com/leap-fish/necs/esync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/server/core"
	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/shared/netcomponents"
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/automoto/illuyanka/shared/protocol"
	"github.com/automoto/illuyanka/systems"
)

func TestMain(m *testing.M) {
	if err := protocol.RegisterComponents(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newServer(t *testing.T, maxClients int) *core.Server {
	t.Helper()
	s, err := core.NewServer(core.Options{
		Name:       "test",
		TickRate:   20,
		MaxClients: maxClients,
		Seed:       3,
		Level: &leveldata.Level{
			Name:        "test",
			Width:       30,
			Height:      30,
			PlayerSpawn: leveldata.Point{X: 10, Y: 10},
			Obstacles:   []leveldata.Rect{{X: 25, Y: 25, W: 2, H: 2}},
		},
	})
	require.NoError(t, err)
	return s
}

func join(name string) messages.JoinRequest {
	return messages.JoinRequest{Version: netconfig.ProtocolVersion, PlayerName: name}
}

func TestJoin_FirstClientControls(t *testing.T) {
	s := newServer(t, 4)

	first, ok := s.Join("a", nil, join("ann")).(messages.JoinAccepted)
	require.True(t, ok)
	assert.Equal(t, netconfig.RoleController, first.Role)
	assert.Equal(t, s.PlayerNetworkID(), first.NetworkID)
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, "test", first.Level)
	assert.Equal(t, []messages.Obstacle{{X: 25, Y: 25, W: 2, H: 2}}, first.Obstacles)
	assert.Equal(t, 20, first.TickRate)

	second, ok := s.Join("b", nil, join("bo")).(messages.JoinAccepted)
	require.True(t, ok)
	assert.Equal(t, netconfig.RoleSpectator, second.Role)
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, "a", s.Controller())
	assert.Equal(t, 2, s.ClientCount())
}

func TestJoin_SpectateRequest(t *testing.T) {
	s := newServer(t, 4)

	req := join("watcher")
	req.Spectate = true
	reply, ok := s.Join("a", nil, req).(messages.JoinAccepted)
	require.True(t, ok)
	assert.Equal(t, netconfig.RoleSpectator, reply.Role)
	assert.Empty(t, s.Controller())
}

func TestJoin_RejectsWrongVersion(t *testing.T) {
	s := newServer(t, 4)

	reply := s.Join("a", nil, messages.JoinRequest{Version: "illuyanka/0"})
	rejected, ok := reply.(messages.JoinRejected)
	require.True(t, ok)
	assert.Contains(t, rejected.Reason, "illuyanka/0")
	assert.Zero(t, s.ClientCount())
}

func TestJoin_RejectsWhenFull(t *testing.T) {
	s := newServer(t, 1)

	_, ok := s.Join("a", nil, join("ann")).(messages.JoinAccepted)
	require.True(t, ok)
	_, ok = s.Join("b", nil, join("bo")).(messages.JoinRejected)
	assert.True(t, ok)

	// A client re-joining keeps its slot
	_, ok = s.Join("a", nil, join("ann")).(messages.JoinAccepted)
	assert.True(t, ok)
}

func TestLeave_ReleasesControl(t *testing.T) {
	s := newServer(t, 4)
	s.Join("a", nil, join("ann"))
	s.Join("b", nil, join("bo"))

	s.Leave("a")
	assert.Empty(t, s.Controller())
	assert.Equal(t, 1, s.ClientCount())

	reply := s.Join("c", nil, join("cy")).(messages.JoinAccepted)
	assert.Equal(t, netconfig.RoleController, reply.Role)
}

func TestSubmit_OnlyController(t *testing.T) {
	s := newServer(t, 4)
	s.Join("a", nil, join("ann"))
	s.Join("b", nil, join("bo"))

	assert.True(t, s.Submit("a", messages.PlayerCommand{MoveX: 1}))
	assert.False(t, s.Submit("b", messages.PlayerCommand{MoveX: -1}))
	assert.False(t, s.Submit("", messages.PlayerCommand{}))
}

func TestTick_MovesPlayer(t *testing.T) {
	s := newServer(t, 4)
	s.Join("a", nil, join("ann"))
	start := components.Transform.Get(s.Arena().Player()).Position

	s.Submit("a", messages.PlayerCommand{Sequence: 1, MoveX: 1})
	for i := 0; i < 20; i++ {
		s.Tick()
	}

	end := components.Transform.Get(s.Arena().Player()).Position
	assert.Greater(t, end.X, start.X+4, "movement persists between commands")
	assert.InDelta(t, start.Y, end.Y, 1e-9)
}

func TestTick_DashRelaysSound(t *testing.T) {
	s := newServer(t, 4)
	s.Join("a", nil, join("ann"))

	s.Submit("a", messages.PlayerCommand{Dash: true})
	var events []any
	for i := 0; i < 10; i++ {
		events = append(events, s.Tick()...)
	}

	pos := components.Transform.Get(s.Arena().Player()).Position
	assert.InDelta(t, 10, pos.X, 1e-6)
	assert.InDelta(t, 15, pos.Y, 1e-6)

	var sounds []string
	for _, evt := range events {
		if se, ok := evt.(messages.SoundEvent); ok {
			sounds = append(sounds, se.Sound)
		}
	}
	assert.Contains(t, sounds, cfg.SoundDashStart.String())
	assert.Contains(t, sounds, cfg.SoundDashImpact.String())
}

func TestTick_TriggersFireOnce(t *testing.T) {
	s := newServer(t, 4)
	s.Join("a", nil, join("ann"))

	s.Submit("a", messages.PlayerCommand{Dash: true})
	s.Submit("a", messages.PlayerCommand{Sequence: 2})
	s.Tick()

	assert.True(t, s.Arena().Player().HasComponent(components.Dash), "merged press survives a newer command")
	assert.False(t, components.PlayerInput.Get(s.Arena().Player()).Dash)
}

func TestTick_MirrorsActors(t *testing.T) {
	s := newServer(t, 4)
	enemy := s.Arena().SpawnEnemy(cfg.ArchetypeSkeleton, components.Vector{X: 20, Y: 20})
	s.Tick()

	player := s.Arena().Player()
	require.True(t, player.HasComponent(netcomponents.NetActor))
	actor := netcomponents.NetActor.Get(player)
	assert.Equal(t, netconfig.KindPlayer, actor.Kind)
	assert.Equal(t, cfg.Player.MaxHealth, actor.Health)

	pos := netcomponents.NetPosition.Get(player)
	assert.Equal(t, 10.0, pos.X)
	assert.Equal(t, 10.0, pos.Y)

	require.True(t, enemy.HasComponent(netcomponents.NetActor))
	assert.Equal(t, netconfig.KindSkeleton, netcomponents.NetActor.Get(enemy).Kind)
	assert.NotNil(t, esync.GetNetworkId(enemy))
}

func TestTick_PlayerDeathEndsArenaOnce(t *testing.T) {
	s := newServer(t, 4)
	s.Arena().SpawnEnemy(cfg.ArchetypeWizard, components.Vector{X: 28, Y: 2})
	systems.TakeDamage(s.Arena().ECS, s.Arena().Player(), 1000)

	events := s.Tick()
	var deaths []messages.DeathEvent
	var over []messages.ArenaOverEvent
	for _, evt := range events {
		switch e := evt.(type) {
		case messages.DeathEvent:
			deaths = append(deaths, e)
		case messages.ArenaOverEvent:
			over = append(over, e)
		}
	}
	require.Len(t, deaths, 1)
	assert.Equal(t, "player", deaths[0].Kind)
	assert.Equal(t, uint(s.PlayerNetworkID()), deaths[0].VictimID)
	require.Len(t, over, 1)
	assert.Equal(t, 1, over[0].Remaining)

	for _, evt := range s.Tick() {
		assert.IsType(t, messages.SoundEvent{}, evt)
	}
}
