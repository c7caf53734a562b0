package arena_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/illuyanka/arena"
	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/leveldata"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/systems"
	"github.com/automoto/illuyanka/systems/factory"
)

func newArena(t *testing.T, lvl *leveldata.Level) (*arena.Arena, *sound.Recorder) {
	t.Helper()
	rec := &sound.Recorder{}
	a := arena.New(arena.Options{Level: lvl, Sink: rec, Seed: 7, TickRate: 60})
	require.NotNil(t, a.Player())
	return a, rec
}

func emptyLevel(player leveldata.Point, enemies ...leveldata.EnemySpawn) *leveldata.Level {
	return &leveldata.Level{
		Name:        "test",
		Width:       30,
		Height:      30,
		PlayerSpawn: player,
		Enemies:     enemies,
	}
}

func health(e *donburi.Entry) *components.HealthData {
	return components.Health.Get(e)
}

func position(e *donburi.Entry) components.Vector {
	return components.Transform.Get(e).Position
}

func countEffects(a *arena.Arena, kind components.EffectKind) int {
	n := 0
	components.Effect.Each(a.World(), func(e *donburi.Entry) {
		if components.Effect.Get(e).Kind == kind {
			n++
		}
	})
	return n
}

func countCues(cues []sound.Cue, id cfg.SoundID) int {
	n := 0
	for _, c := range cues {
		if c.ID == id {
			n++
		}
	}
	return n
}

func countProjectiles(a *arena.Arena) int {
	n := 0
	components.Projectile.Each(a.World(), func(*donburi.Entry) { n++ })
	return n
}

// freeze stops an enemy from walking. It still thinks and attacks.
func freeze(e *donburi.Entry) {
	components.Nav.Get(e).Enabled = false
}

func TestNew_DefaultLevel(t *testing.T) {
	a := arena.New(arena.Options{})

	assert.Equal(t, "default", a.Level.Name)
	assert.Len(t, a.Enemies(), 4)
	assert.Equal(t, cfg.Player.MaxHealth, health(a.Player()).Current)

	a.StepFor(time.Second)
	assert.GreaterOrEqual(t, a.Now(), time.Second)
}

func TestNew_SkipsUnknownArchetype(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 5, Y: 5},
		leveldata.EnemySpawn{Archetype: "basilisk", X: 20, Y: 20},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 25, Y: 25},
	))

	assert.Len(t, a.Enemies(), 1)
}

func TestPlayerHealth_DamageThenDeath(t *testing.T) {
	a, rec := newArena(t, emptyLevel(leveldata.Point{X: 5, Y: 5}))
	p := a.Player()

	systems.TakeDamage(a.ECS, p, 30)
	assert.Equal(t, 70.0, health(p).Current)
	assert.False(t, a.PlayerDead())

	systems.TakeDamage(a.ECS, p, 100)
	assert.Equal(t, 0.0, health(p).Current)
	assert.True(t, a.PlayerDead())

	systems.TakeDamage(a.ECS, p, 10)
	systems.Heal(a.ECS, p, 50)
	assert.Equal(t, 0.0, health(p).Current, "dead players stay at zero")

	cues := rec.Drain()
	assert.Equal(t, 1, countCues(cues, cfg.SoundPlayerDeath))

	player := components.Player.Get(p)
	assert.False(t, player.CanMove)
	assert.False(t, player.CanChangeTarget)
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 5, Y: 5}))
	systems.TakeDamage(a.ECS, a.Player(), 1000)
	start := position(a.Player())

	a.SetInput(components.PlayerInputData{Move: components.Vector{X: 1}, Dash: true})
	a.StepFor(500 * time.Millisecond)

	assert.Equal(t, start, position(a.Player()))
	assert.False(t, a.Player().HasComponent(components.Dash))
}

func TestDash_AlongFacingWithoutInput(t *testing.T) {
	a, rec := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10}))

	a.SetInput(components.PlayerInputData{Dash: true})
	a.Step()
	require.True(t, a.Player().HasComponent(components.Dash))
	assert.Equal(t, 1, countEffects(a, components.EffectDashTrail))

	a.StepFor(500 * time.Millisecond)

	assert.False(t, a.Player().HasComponent(components.Dash))
	assert.InDelta(t, 10.0, position(a.Player()).X, 1e-9)
	assert.InDelta(t, 10.0+cfg.Dash.Distance, position(a.Player()).Y, 1e-9)
	assert.Equal(t, 1, countEffects(a, components.EffectDashImpact))

	cues := rec.Drain()
	assert.Equal(t, 1, countCues(cues, cfg.SoundDashStart))
	assert.Equal(t, 1, countCues(cues, cfg.SoundDashImpact))
}

func TestDash_StopsShortOfObstacle(t *testing.T) {
	lvl := emptyLevel(leveldata.Point{X: 10, Y: 10})
	lvl.Obstacles = []leveldata.Rect{{X: 9, Y: 12, W: 2, H: 2}}
	a, _ := newArena(t, lvl)

	a.SetInput(components.PlayerInputData{Dash: true})
	a.StepFor(500 * time.Millisecond)

	assert.InDelta(t, 12.0-cfg.Dash.ObstacleMargin, position(a.Player()).Y, 1e-9)
}

func TestDash_StopsShortOfEnemyBody(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 10, Y: 13},
	))
	freeze(a.Enemies()[0])

	a.SetInput(components.PlayerInputData{Dash: true})
	a.StepFor(500 * time.Millisecond)

	radius := cfg.EnemyType(cfg.ArchetypeSkeleton).Radius
	assert.InDelta(t, 13-radius-cfg.Dash.ObstacleMargin, position(a.Player()).Y, 1e-9)
}

func TestDash_ClampedToArena(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 2}))

	a.SetInput(components.PlayerInputData{Move: components.Vector{Y: -1}, Dash: true})
	a.StepFor(500 * time.Millisecond)

	assert.InDelta(t, 0.0, position(a.Player()).Y, 1e-9)
	assert.Equal(t, components.Vector{X: 0, Y: -1}, components.Transform.Get(a.Player()).Facing)
}

func TestDash_IgnoredDuringCooldown(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 5}))

	a.SetInput(components.PlayerInputData{Dash: true})
	a.StepFor(500 * time.Millisecond)
	landed := position(a.Player())

	a.SetInput(components.PlayerInputData{Dash: true})
	a.Step()
	assert.False(t, a.Player().HasComponent(components.Dash))
	assert.Equal(t, landed, position(a.Player()))

	// The cooldown has run out by now
	a.StepFor(time.Second)
	a.SetInput(components.PlayerInputData{Dash: true})
	a.Step()
	assert.True(t, a.Player().HasComponent(components.Dash))
}

func TestQuickAttack_WithoutTargetRestoresControl(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10}))

	a.SetInput(components.PlayerInputData{QuickAttack: true})
	a.Step()

	player := components.Player.Get(a.Player())
	assert.False(t, player.IsAttacking)
	assert.True(t, player.CanMove)
	assert.True(t, player.CanChangeTarget)
}

func TestPerformAttack_DamagesAndKnocksBack(t *testing.T) {
	a, rec := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 10, Y: 11.2},
	))
	enemy := a.Enemies()[0]

	systems.PerformAttack(a.ECS, a.Player())

	assert.Equal(t, 100-cfg.Player.AttackDamage, health(enemy).Current)
	kb := components.Knockback.Get(enemy)
	assert.Zero(t, kb.Velocity.X)
	assert.Greater(t, kb.Velocity.Y, 0.0, "pushed away from the player")
	assert.Greater(t, kb.Lift, 0.0)
	assert.InDelta(t, cfg.Player.KnockbackForce, math.Hypot(kb.Velocity.Len(), kb.Lift), 1e-9)
	assert.Equal(t, 1, countCues(rec.Drain(), cfg.SoundPlayerAttack))

	// Same swing never hits twice
	systems.PerformAttack(a.ECS, a.Player())
	assert.Equal(t, 100-cfg.Player.AttackDamage, health(enemy).Current)
}

func TestPerformAttack_MissPlaysNoSound(t *testing.T) {
	a, rec := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 25, Y: 25},
	))

	systems.PerformAttack(a.ECS, a.Player())

	assert.Equal(t, 100.0, health(a.Enemies()[0]).Current)
	assert.Zero(t, countCues(rec.Drain(), cfg.SoundPlayerAttack))
}

func TestQuickAttack_ThroughInput(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 10, Y: 13},
	))
	enemy := a.Enemies()[0]

	a.Step()
	require.Equal(t, enemy.Entity(), components.Player.Get(a.Player()).Target, "nearest enemy auto-targeted")

	a.SetInput(components.PlayerInputData{QuickAttack: true})
	a.Step()
	assert.True(t, components.Player.Get(a.Player()).IsAttacking)

	a.StepFor(time.Second)
	assert.Equal(t, 100-cfg.Player.AttackDamage, health(enemy).Current)
	assert.False(t, components.Player.Get(a.Player()).IsAttacking, "reset hook handed control back")
}

func TestDragonBombardment_HitsEveryAnchorInRange(t *testing.T) {
	lvl := emptyLevel(leveldata.Point{X: 20, Y: 20},
		leveldata.EnemySpawn{Archetype: "dragon", X: 20, Y: 28},
	)
	lvl.Anchors = []leveldata.Point{{X: 20, Y: 21}, {X: 21, Y: 20}, {X: 5, Y: 5}}
	a, rec := newArena(t, lvl)
	dragon := a.Enemies()[0]

	a.Step()
	bomb := components.Bombardier.Get(dragon)
	assert.True(t, bomb.Active)
	assert.Len(t, bomb.Points, 3)
	assert.Equal(t, 3, countEffects(a, components.EffectWarningMarker))
	assert.Equal(t, 1, countCues(rec.Drain(), cfg.SoundEnemySpecial), "roar")

	warning := cfg.EnemyType(cfg.ArchetypeDragon).Bombard.WarningTime
	a.StepFor(warning)
	assert.Zero(t, countEffects(a, components.EffectWarningMarker))
	assert.Equal(t, 3, countEffects(a, components.EffectExplosion))
	assert.Equal(t, 100.0, health(a.Player()).Current, "damage lands after a short delay")

	a.StepFor(200 * time.Millisecond)
	damage := cfg.EnemyType(cfg.ArchetypeDragon).Bombard.Damage
	assert.Equal(t, 100-2*damage, health(a.Player()).Current)
	assert.True(t, components.Enemy.Get(dragon).IsAttacking, "busy until the cooldown passes")
}

func TestMutantJump_LandsOnLaunchPoint(t *testing.T) {
	a, rec := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "mutant", X: 10, Y: 16},
	))
	mutant := a.Enemies()[0]

	a.Step()
	a.Step()
	require.True(t, mutant.HasComponent(components.JumpAttack))
	assert.Equal(t, cfg.StateJumpAttacking, components.State.Get(mutant).CurrentState)
	assert.False(t, components.Enemy.Get(mutant).Jump.Ready)

	a.StepFor(500 * time.Millisecond)
	assert.Greater(t, components.Transform.Get(mutant).Elevation, 0.0, "mid-air")

	a.StepFor(550 * time.Millisecond)
	assert.False(t, mutant.HasComponent(components.JumpAttack))
	assert.Equal(t, components.Vector{X: 10, Y: 10}, position(mutant))
	assert.Zero(t, components.Transform.Get(mutant).Elevation)
	assert.Equal(t, 1, countEffects(a, components.EffectLanding))

	jump := cfg.EnemyType(cfg.ArchetypeMutant).Jump
	assert.Equal(t, 100-jump.Damage, health(a.Player()).Current)
	assert.Equal(t, 2, countCues(rec.Drain(), cfg.SoundEnemySpecial), "leap and landing")
}

func TestFireball_HitsPlayerOnce(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10}))

	factory.CreateFireball(a.ECS, donburi.Null, components.Vector{X: 10, Y: 15}, 1.5,
		components.Vector{X: 10, Y: 10}, 1.5, 15)
	a.StepFor(time.Second)

	assert.Equal(t, 85.0, health(a.Player()).Current)
	assert.Equal(t, 1, countEffects(a, components.EffectFireballHit))

	assert.Zero(t, countProjectiles(a))
}

func TestFireball_StoppedByAnotherEnemy(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 10, Y: 13},
	))
	skeleton := a.Enemies()[0]
	freeze(skeleton)

	factory.CreateFireball(a.ECS, donburi.Null, components.Vector{X: 10, Y: 20}, 1.5,
		components.Vector{X: 10, Y: 10}, 1.5, 15)
	a.StepFor(time.Second)

	assert.Equal(t, 100.0, health(a.Player()).Current)
	assert.Equal(t, 100.0, health(skeleton).Current, "enemies block fireballs without taking damage")
	assert.Equal(t, 1, countEffects(a, components.EffectFireballHit))
	assert.Zero(t, countProjectiles(a))
}

func TestFireball_IgnoresItsThrower(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 10, Y: 15},
	))
	thrower := a.Enemies()[0]
	freeze(thrower)

	factory.CreateFireball(a.ECS, thrower.Entity(), components.Vector{X: 10, Y: 15}, 1.5,
		components.Vector{X: 10, Y: 10}, 1.5, 15)
	a.StepFor(time.Second)

	assert.Equal(t, 85.0, health(a.Player()).Current)
	assert.Equal(t, 1, countEffects(a, components.EffectFireballHit))
}

func TestFireball_ExpiresSilently(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 2, Y: 2}))

	// Flies away from the player and leaves the arena
	factory.CreateFireball(a.ECS, donburi.Null, components.Vector{X: 20, Y: 20}, 1.5,
		components.Vector{X: 29, Y: 29}, 1.5, 15)
	a.StepFor(2 * time.Second)

	assert.Equal(t, 100.0, health(a.Player()).Current)
	assert.Zero(t, countEffects(a, components.EffectFireballHit))
}

func TestEnemyDeath_DissolvesThenRemovedOnce(t *testing.T) {
	a, rec := newArena(t, emptyLevel(leveldata.Point{X: 3, Y: 3},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 25, Y: 25},
	))
	enemy := a.Enemies()[0]

	systems.TakeDamage(a.ECS, enemy, 500)
	require.True(t, enemy.HasComponent(components.Death))
	assert.Equal(t, components.DeathRagdoll, components.Death.Get(enemy).Phase)
	assert.True(t, components.Ragdoll.Get(enemy).Active)
	assert.Equal(t, cfg.StateDead, components.State.Get(enemy).CurrentState)

	// A second killing blow changes nothing
	systems.TakeDamage(a.ECS, enemy, 500)
	assert.Equal(t, 1, countCues(rec.Drain(), cfg.SoundEnemyDeath))

	a.StepFor(2 * time.Second)
	require.True(t, enemy.Valid())
	assert.Equal(t, components.DeathDissolving, components.Death.Get(enemy).Phase)
	d := components.Dissolve.Get(enemy)
	assert.Greater(t, d.Progress, 0.0)
	assert.Less(t, d.Progress, 1.0)

	a.StepFor(3 * time.Second)
	assert.False(t, enemy.Valid())
	assert.Empty(t, a.Enemies())
	assert.Zero(t, countCues(rec.Drain(), cfg.SoundEnemyDeath))
}

func TestDeadEnemyIsDroppedAsTarget(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "skeleton", X: 10, Y: 14},
	))
	enemy := a.Enemies()[0]
	a.Step()
	require.Equal(t, enemy.Entity(), components.Player.Get(a.Player()).Target)

	systems.TakeDamage(a.ECS, enemy, 500)
	a.Step()

	assert.Equal(t, donburi.Null, components.Player.Get(a.Player()).Target)
}

func TestWizardKilledBeforeRelease_ThrowsNothing(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "wizard", X: 10, Y: 19},
	))
	wizard := a.Enemies()[0]

	for i := 0; i < 180 && !wizard.HasComponent(components.Cast); i++ {
		a.Step()
	}
	require.True(t, wizard.HasComponent(components.Cast), "wizard started a cast")
	require.Zero(t, countProjectiles(a))

	systems.TakeDamage(a.ECS, wizard, 1000)
	assert.False(t, wizard.HasComponent(components.Cast))

	cast := cfg.EnemyType(cfg.ArchetypeWizard).Cast
	for end := a.Now() + cast.PreDelay + cast.PostDelay + time.Second; a.Now() < end; {
		a.Step()
		require.Zero(t, countProjectiles(a))
	}
	assert.Equal(t, 100.0, health(a.Player()).Current)
}

func TestDragonKilledDuringWarning_DealsNoDamage(t *testing.T) {
	lvl := emptyLevel(leveldata.Point{X: 20, Y: 20},
		leveldata.EnemySpawn{Archetype: "dragon", X: 20, Y: 28},
	)
	lvl.Anchors = []leveldata.Point{{X: 20, Y: 21}, {X: 21, Y: 20}}
	a, _ := newArena(t, lvl)
	dragon := a.Enemies()[0]

	a.Step()
	require.True(t, components.Bombardier.Get(dragon).Active)
	require.Equal(t, 2, countEffects(a, components.EffectWarningMarker))

	a.StepFor(time.Second)
	systems.TakeDamage(a.ECS, dragon, 1000)
	assert.Zero(t, countEffects(a, components.EffectWarningMarker), "markers cleared on death")

	warning := cfg.EnemyType(cfg.ArchetypeDragon).Bombard.WarningTime
	a.StepFor(warning + time.Second)

	assert.Zero(t, countEffects(a, components.EffectExplosion))
	assert.Equal(t, 100.0, health(a.Player()).Current)
}

func TestMutantKilledMidLeap_NeverLands(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "mutant", X: 10, Y: 16},
	))
	mutant := a.Enemies()[0]

	a.Step()
	a.Step()
	require.True(t, mutant.HasComponent(components.JumpAttack))
	a.StepFor(500 * time.Millisecond)

	systems.TakeDamage(a.ECS, mutant, 1000)
	assert.False(t, mutant.HasComponent(components.JumpAttack))
	assert.Zero(t, components.Transform.Get(mutant).Elevation)

	a.StepFor(time.Second)
	assert.Zero(t, countEffects(a, components.EffectLanding))
	assert.Equal(t, 100.0, health(a.Player()).Current)
}

func TestMutantLeap_MissesPlayerWhoMovedAway(t *testing.T) {
	a, _ := newArena(t, emptyLevel(leveldata.Point{X: 10, Y: 10},
		leveldata.EnemySpawn{Archetype: "mutant", X: 10, Y: 16},
	))
	mutant := a.Enemies()[0]

	a.Step()
	a.Step()
	require.True(t, mutant.HasComponent(components.JumpAttack))
	landing := components.JumpAttack.Get(mutant).Target

	// Step well outside attack range of the landing point
	p := a.Player()
	moved := components.Vector{X: 20, Y: 10}
	components.Transform.Get(p).Position = moved
	spatial.MoveTo(components.Object.Get(p).Object, moved)
	require.Greater(t, landing.Dist(moved), cfg.EnemyType(cfg.ArchetypeMutant).AttackRange)

	a.StepFor(1050 * time.Millisecond)
	require.False(t, mutant.HasComponent(components.JumpAttack))
	assert.Equal(t, 1, countEffects(a, components.EffectLanding))
	assert.Equal(t, 100.0, health(a.Player()).Current)
}
