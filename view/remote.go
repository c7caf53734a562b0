package view

import (
	"time"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"

	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/shared/netcomponents"
)

// Remote mirrors a server's synced entities into a local world and
// interpolates between the last two snapshots.
type Remote struct {
	world donburi.World
	join  messages.JoinAccepted

	prev    map[esync.NetworkId]remoteState
	present map[esync.NetworkId]bool
}

// remoteState is what an entity looked like in the previous snapshot.
type remoteState struct {
	pos    *netcomponents.NetPositionData
	actor  *netcomponents.NetActorData
	effect *netcomponents.NetEffectData
}

func NewRemote(join messages.JoinAccepted) *Remote {
	return &Remote{
		world:   donburi.NewWorld(),
		join:    join,
		prev:    make(map[esync.NetworkId]remoteState),
		present: make(map[esync.NetworkId]bool),
	}
}

func (r *Remote) World() donburi.World { return r.world }

// Apply decodes a snapshot; components that fail to decode are skipped.
func (r *Remote) Apply(snapshot esync.WorldSnapshot) {
	states := make(map[esync.NetworkId][]any, len(snapshot))
	for _, ent := range snapshot {
		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}
		states[ent.Id] = compData
	}
	r.Set(states)
}

// Set replaces the world with a full snapshot. Entities missing from it are
// removed.
func (r *Remote) Set(states map[esync.NetworkId][]any) {
	clear(r.present)
	clear(r.prev)

	for id, compData := range states {
		r.present[id] = true

		entity := esync.FindByNetworkId(r.world, id)
		if !r.world.Valid(entity) {
			entity = r.world.Create(componentTypesFromInstances(compData)...)
			entry := r.world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, id)
		} else {
			r.prev[id] = capture(r.world.Entry(entity))
		}

		entry := r.world.Entry(entity)
		for _, data := range compData {
			applyComponentToEntry(entry, data)
		}
	}

	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(r.world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil || !r.present[*id] {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

// Frame draws the world t of the way from the previous snapshot to the
// latest one; t is clamped to [0, 1].
func (r *Remote) Frame(t float64) Frame {
	t = max(0, min(1, t))
	f := Frame{
		Level:  r.join.Level,
		Width:  r.join.Width,
		Height: r.join.Height,
	}
	for _, o := range r.join.Obstacles {
		f.Obstacles = append(f.Obstacles, leveldata.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}

	esync.NetworkEntityQuery.Each(r.world, func(entry *donburi.Entry) {
		var prev remoteState
		if id := esync.GetNetworkId(entry); id != nil {
			prev = r.prev[*id]
		}

		if entry.HasComponent(netcomponents.NetArena) {
			sum := netcomponents.NetArena.Get(entry)
			f.Elapsed = time.Duration(sum.ElapsedMs) * time.Millisecond
			return
		}

		var pos netcomponents.NetPositionData
		if entry.HasComponent(netcomponents.NetPosition) {
			pos = *netcomponents.NetPosition.Get(entry)
			if prev.pos != nil {
				pos = *netcomponents.LerpNetPosition(*prev.pos, pos, t)
			}
		}

		switch {
		case entry.HasComponent(netcomponents.NetActor):
			actor := *netcomponents.NetActor.Get(entry)
			if prev.actor != nil {
				actor = *netcomponents.LerpNetActor(*prev.actor, actor, t)
			}
			f.add(Actor{NetPositionData: pos, NetActorData: actor})
		case entry.HasComponent(netcomponents.NetEffect):
			fx := *netcomponents.NetEffect.Get(entry)
			if prev.effect != nil {
				fx = *netcomponents.LerpNetEffect(*prev.effect, fx, t)
			}
			f.Effects = append(f.Effects, Effect{NetPositionData: pos, NetEffectData: fx})
		}
	})

	f.sort()
	return f
}

func capture(entry *donburi.Entry) remoteState {
	var s remoteState
	if entry.HasComponent(netcomponents.NetPosition) {
		v := *netcomponents.NetPosition.Get(entry)
		s.pos = &v
	}
	if entry.HasComponent(netcomponents.NetActor) {
		v := *netcomponents.NetActor.Get(entry)
		s.actor = &v
	}
	if entry.HasComponent(netcomponents.NetEffect) {
		v := *netcomponents.NetEffect.Get(entry)
		s.effect = &v
	}
	return s
}

func componentTypesFromInstances(components []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range components {
		switch data.(type) {
		case netcomponents.NetPositionData:
			ctypes = append(ctypes, netcomponents.NetPosition)
		case netcomponents.NetActorData:
			ctypes = append(ctypes, netcomponents.NetActor)
		case netcomponents.NetEffectData:
			ctypes = append(ctypes, netcomponents.NetEffect)
		case netcomponents.NetArenaData:
			ctypes = append(ctypes, netcomponents.NetArena)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		if !entry.HasComponent(netcomponents.NetPosition) {
			entry.AddComponent(netcomponents.NetPosition)
		}
		netcomponents.NetPosition.SetValue(entry, v)
	case netcomponents.NetActorData:
		if !entry.HasComponent(netcomponents.NetActor) {
			entry.AddComponent(netcomponents.NetActor)
		}
		netcomponents.NetActor.SetValue(entry, v)
	case netcomponents.NetEffectData:
		if !entry.HasComponent(netcomponents.NetEffect) {
			entry.AddComponent(netcomponents.NetEffect)
		}
		netcomponents.NetEffect.SetValue(entry, v)
	case netcomponents.NetArenaData:
		if !entry.HasComponent(netcomponents.NetArena) {
			entry.AddComponent(netcomponents.NetArena)
		}
		netcomponents.NetArena.SetValue(entry, v)
	}
}
