// Package arena assembles a complete combat world: runtime services, the
// collision and physics spaces, level geometry, the player, the enemies, and
// the systems that drive them in a fixed order.
package arena

import (
	"math/rand/v2"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/systems"
	"github.com/automoto/illuyanka/systems/factory"
	"github.com/automoto/illuyanka/tags"
	"github.com/automoto/illuyanka/timing"
)

type Options struct {
	// Level to build. Nil uses the built-in default arena.
	Level *leveldata.Level
	Log   *zap.Logger
	// Sink receives sound cues. Nil logs them at debug level.
	Sink sound.Sink
	Bank *sound.Bank
	// Seed for the arena random source, 0 uses cfg.Sim.Seed.
	Seed     uint64
	TickRate int
}

// Arena owns one ECS world and steps it on a fixed clock.
type Arena struct {
	ECS   *ecs.ECS
	Level *leveldata.Level

	runtime *donburi.Entry
	player  *donburi.Entry
	anchors []components.Vector
	log     *zap.Logger
}

func New(opts Options) *Arena {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	level := opts.Level
	if level == nil {
		level = leveldata.Default(cfg.Arena.Width, cfg.Arena.Height)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Sim.Seed
	}
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Sim.TickRate
	}
	sink := opts.Sink
	if sink == nil {
		sink = sound.LogSink{Log: log}
	}
	bank := opts.Bank
	if bank == nil {
		bank = sound.DefaultBank()
	}

	a := &Arena{
		ECS:   ecs.NewECS(donburi.NewWorld()),
		Level: level,
		log:   log,
	}
	for _, p := range level.Anchors {
		a.anchors = append(a.anchors, components.Vector{X: p.X, Y: p.Y})
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	a.runtime = factory.CreateRuntime(a.ECS, components.RuntimeData{
		Clock:     timing.NewClock(tickRate),
		Scheduler: timing.NewScheduler(),
		Rand:      rng,
		Log:       log,
		Sound:     sound.NewDispatcher(bank, sink, rand.New(rand.NewPCG(seed+1, seed)), log),
	}, components.ArenaData{Name: level.Name, Width: level.Width, Height: level.Height})

	a.registerSystems()
	a.build()

	log.Info("arena ready",
		zap.String("level", level.Name),
		zap.Float64("width", level.Width),
		zap.Float64("height", level.Height),
		zap.Int("enemies", len(level.Enemies)),
		zap.Uint64("seed", seed))
	return a
}

func (a *Arena) registerSystems() {
	a.ECS.AddSystem(systems.UpdateClock)
	a.ECS.AddSystem(systems.UpdateCooldowns)
	a.ECS.AddSystem(systems.UpdatePlayer)
	a.ECS.AddSystem(systems.UpdateDashes)
	a.ECS.AddSystem(systems.UpdateApproaches)
	a.ECS.AddSystem(systems.UpdateEnemies)
	a.ECS.AddSystem(systems.UpdateJumpAttacks)
	a.ECS.AddSystem(systems.UpdateNavigation)
	a.ECS.AddSystem(systems.UpdateKnockback)
	a.ECS.AddSystem(systems.UpdateProjectiles)
	a.ECS.AddSystem(systems.UpdatePhysics)
	a.ECS.AddSystem(systems.UpdateDissolves)
	a.ECS.AddSystem(systems.UpdateEffects)
}

func (a *Arena) build() {
	factory.CreateSpace(a.ECS, a.Level.Width, a.Level.Height, cfg.Arena.CellSize)
	// Obstacles register static shapes with the physics world, so it comes first.
	factory.CreatePhysicsWorld(a.ECS)

	for _, r := range a.Level.Obstacles {
		factory.CreateObstacle(a.ECS, r.X, r.Y, r.W, r.H)
	}

	a.player = factory.CreatePlayer(a.ECS, components.Vector{X: a.Level.PlayerSpawn.X, Y: a.Level.PlayerSpawn.Y})

	for _, s := range a.Level.Enemies {
		archetype, err := cfg.ParseArchetype(s.Archetype)
		if err != nil {
			a.log.Warn("skipping enemy spawn", zap.String("archetype", s.Archetype), zap.Error(err))
			continue
		}
		a.SpawnEnemy(archetype, components.Vector{X: s.X, Y: s.Y})
	}
}

// SpawnEnemy adds an enemy; dragons aim at the level's bombardment anchors.
func (a *Arena) SpawnEnemy(archetype cfg.Archetype, pos components.Vector) *donburi.Entry {
	e := factory.CreateEnemy(a.ECS, archetype, pos)
	if e.HasComponent(components.Bombardier) {
		components.Bombardier.Get(e).Anchors = append([]components.Vector(nil), a.anchors...)
	}
	return e
}

// Step runs every system once.
func (a *Arena) Step() {
	a.ECS.Update()
}

// StepFor steps until at least d of simulated time has passed.
func (a *Arena) StepFor(d time.Duration) {
	end := a.Now() + d
	for a.Now() < end {
		a.Step()
	}
}

func (a *Arena) Now() time.Duration {
	return components.Runtime.Get(a.runtime).Clock.Now()
}

func (a *Arena) Runtime() *components.RuntimeData {
	return components.Runtime.Get(a.runtime)
}

func (a *Arena) World() donburi.World { return a.ECS.World }

func (a *Arena) Player() *donburi.Entry { return a.player }

// SetInput replaces the player's input for the next step. Attack, dash and
// cycle requests are consumed by that step.
func (a *Arena) SetInput(in components.PlayerInputData) {
	if !a.player.Valid() {
		return
	}
	components.PlayerInput.SetValue(a.player, in)
}

// SetCameraYaw rotates the frame movement input is interpreted in.
func (a *Arena) SetCameraYaw(yaw float64) {
	components.Camera.Get(a.runtime).Yaw = yaw
}

// Enemies lists the enemy entries still in the world, dying ones included.
func (a *Arena) Enemies() []*donburi.Entry {
	var out []*donburi.Entry
	tags.Enemy.Each(a.ECS.World, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

// PlayerDead reports whether the player's health reached zero.
func (a *Arena) PlayerDead() bool {
	return a.player.Valid() && components.Health.Get(a.player).Dead
}
