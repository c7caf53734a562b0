package systems

import (
	"math/rand/v2"
	"time"

	"github.com/automoto/illuyanka/components"
	"github.com/automoto/illuyanka/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

func runtimeOf(w donburi.World) *components.RuntimeData {
	if e, ok := components.Runtime.First(w); ok {
		return components.Runtime.Get(e)
	}
	return nil
}

func spaceOf(w donburi.World) *resolv.Space {
	if e, ok := components.Space.First(w); ok {
		return components.Space.Get(e).Space
	}
	return nil
}

func arenaOf(w donburi.World) components.ArenaData {
	if e, ok := components.Arena.First(w); ok {
		return *components.Arena.Get(e)
	}
	return components.ArenaData{}
}

func cameraOf(w donburi.World) components.CameraData {
	if e, ok := components.Camera.First(w); ok {
		return *components.Camera.Get(e)
	}
	return components.CameraData{}
}

func now(w donburi.World) time.Duration {
	if rt := runtimeOf(w); rt != nil {
		return rt.Clock.Now()
	}
	return 0
}

// deltaSeconds is the fixed step in seconds.
func deltaSeconds(w donburi.World) float64 {
	if rt := runtimeOf(w); rt != nil {
		return rt.Clock.DeltaSeconds()
	}
	return 0
}

func logger(w donburi.World) *zap.Logger {
	if rt := runtimeOf(w); rt != nil && rt.Log != nil {
		return rt.Log
	}
	return zap.NewNop()
}

func randOf(w donburi.World) *rand.Rand {
	if rt := runtimeOf(w); rt != nil && rt.Rand != nil {
		return rt.Rand
	}
	return rand.New(rand.NewPCG(1, 2))
}

// after schedules fn on the runtime scheduler, owned by owner.
func after(w donburi.World, owner *donburi.Entry, delay time.Duration, fn func()) {
	rt := runtimeOf(w)
	if rt == nil {
		return
	}
	rt.Scheduler.After(owner.Entity(), delay, fn)
}

func playerEntry(w donburi.World) *donburi.Entry {
	if e, ok := tags.Player.First(w); ok {
		return e
	}
	return nil
}

// entryOf resolves a weak reference, nil when it is gone.
func entryOf(w donburi.World, e donburi.Entity) *donburi.Entry {
	if e == donburi.Null || !w.Valid(e) {
		return nil
	}
	return w.Entry(e)
}

func positionOf(e *donburi.Entry) components.Vector {
	return components.Transform.Get(e).Position
}

func isDead(e *donburi.Entry) bool {
	return e.HasComponent(components.Health) && components.Health.Get(e).Dead
}

// entityField is the zap field systems log entity ids with.
func entityField(e *donburi.Entry) zap.Field {
	return zap.Uint32("entity", uint32(e.Entity().Id()))
}

// UpdateClock advances the fixed-step clock and fires every timed callback
// that came due.
func UpdateClock(ecs *ecs.ECS) {
	rt := runtimeOf(ecs.World)
	if rt == nil {
		return
	}
	rt.Clock.Tick()
	rt.Scheduler.Advance(rt.Clock.Now())

	if p := playerEntry(ecs.World); p != nil && rt.Sound != nil {
		rt.Sound.SetListener(positionOf(p))
	}
}

// UpdateCooldowns ticks every attack and dash cooldown by one step.
func UpdateCooldowns(ecs *ecs.ECS) {
	rt := runtimeOf(ecs.World)
	if rt == nil {
		return
	}
	dt := rt.Clock.Step()

	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		enemy.Attack.Tick(dt)
		enemy.Jump.Tick(dt)
		enemy.NormalCast.Tick(dt)
		enemy.HeavyCast.Tick(dt)
	})
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		components.Player.Get(e).DashCooldown.Tick(dt)
	})
}

// collect snapshots the entries of a query so the caller can add or remove
// components while walking them.
func collect(w donburi.World, each func(donburi.World, func(*donburi.Entry))) []*donburi.Entry {
	var out []*donburi.Entry
	each(w, func(e *donburi.Entry) { out = append(out, e) })
	return out
}
