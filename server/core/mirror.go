package core

import (
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/arena"
	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/shared/netcomponents"
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/automoto/illuyanka/systems"
	"github.com/automoto/illuyanka/tags"
)

// mirror copies simulation state into the net components that necs
// snapshots. Entities are marked for sync the first tick they are seen.
type mirror struct {
	arena *arena.Arena
	world donburi.World
	log   *zap.Logger

	summary      donburi.Entity
	dead         map[donburi.Entity]bool
	deaths       []any
	enemiesAlive int
}

func newMirror(a *arena.Arena, log *zap.Logger) *mirror {
	return &mirror{
		arena: a,
		world: a.World(),
		log:   log,
		dead:  make(map[donburi.Entity]bool),
	}
}

func (m *mirror) sync() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.summary == donburi.Null {
		m.summary = m.world.Create(netcomponents.NetArena)
		keep(srvsync.NetworkSync(m.world, &m.summary, netcomponents.NetArena))
	}

	// Marking an entry changes its archetype, so collect before touching any.
	for _, e := range collect(m.world, tags.Player) {
		keep(m.syncActor(e, netconfig.KindPlayer))
	}

	m.enemiesAlive = 0
	for _, e := range collect(m.world, tags.Enemy) {
		kind, _ := systems.ActorKind(e)
		keep(m.syncActor(e, kind))
		if !components.Health.Get(e).Dead {
			m.enemiesAlive++
		}
	}

	for _, e := range collect(m.world, tags.Projectile) {
		keep(m.syncActor(e, netconfig.KindFireball))
	}

	for _, e := range collect(m.world, tags.Effect) {
		keep(m.syncEffect(e))
	}

	netcomponents.NetArena.SetValue(m.world.Entry(m.summary), netcomponents.NetArenaData{
		Level:        m.arena.Level.Name,
		ElapsedMs:    m.arena.Now().Milliseconds(),
		EnemiesAlive: m.enemiesAlive,
		PlayerDead:   m.arena.PlayerDead(),
	})

	for entity := range m.dead {
		if !m.world.Valid(entity) {
			delete(m.dead, entity)
		}
	}
	return firstErr
}

func (m *mirror) syncActor(e *donburi.Entry, kind netconfig.ActorKind) error {
	if !e.HasComponent(netcomponents.NetActor) {
		e.AddComponent(netcomponents.NetPosition)
		e.AddComponent(netcomponents.NetActor)
		entity := e.Entity()
		if err := srvsync.NetworkSync(m.world, &entity,
			srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetActor),
		); err != nil {
			return err
		}
	}

	pos, actor := systems.SnapshotActor(e, kind)
	netcomponents.NetPosition.SetValue(e, pos)
	netcomponents.NetActor.SetValue(e, actor)

	if actor.Dead && !m.dead[e.Entity()] {
		m.dead[e.Entity()] = true
		evt := messages.DeathEvent{Kind: kind.String(), X: pos.X, Y: pos.Y}
		if nid := esync.GetNetworkId(e); nid != nil {
			evt.VictimID = uint(*nid)
		}
		m.deaths = append(m.deaths, evt)
	}
	return nil
}

func (m *mirror) syncEffect(e *donburi.Entry) error {
	if !e.HasComponent(netcomponents.NetEffect) {
		e.AddComponent(netcomponents.NetPosition)
		e.AddComponent(netcomponents.NetEffect)
		entity := e.Entity()
		if err := srvsync.NetworkSync(m.world, &entity,
			srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetEffect),
		); err != nil {
			return err
		}
	}

	pos, fx := systems.SnapshotEffect(e)
	netcomponents.NetPosition.SetValue(e, pos)
	netcomponents.NetEffect.SetValue(e, fx)
	return nil
}

// eacher is satisfied by donburi tags and component types.
type eacher interface {
	Each(w donburi.World, fn func(*donburi.Entry))
}

func collect(w donburi.World, tag eacher) []*donburi.Entry {
	var out []*donburi.Entry
	tag.Each(w, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

func (m *mirror) drainDeaths() []any {
	out := m.deaths
	m.deaths = nil
	return out
}
