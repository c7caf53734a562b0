package factory_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/systems/factory"
)

func TestLaunchVelocity_HasRequestedSpeed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := components.Vector{X: rapid.Float64Range(0, 50).Draw(t, "fx"), Y: rapid.Float64Range(0, 50).Draw(t, "fy")}
		to := components.Vector{X: rapid.Float64Range(0, 50).Draw(t, "tx"), Y: rapid.Float64Range(0, 50).Draw(t, "ty")}
		fromZ := rapid.Float64Range(0, 3).Draw(t, "fz")
		toZ := rapid.Float64Range(0, 3).Draw(t, "tz")
		speed := rapid.Float64Range(1, 30).Draw(t, "speed")

		planar, vertical := factory.LaunchVelocity(from, fromZ, to, toZ, speed)
		if from == to && fromZ == toZ {
			if !planar.IsZero() || vertical != 0 {
				t.Fatalf("coincident points should not move, got %v %v", planar, vertical)
			}
			return
		}
		if got := math.Hypot(planar.Len(), vertical); math.Abs(got-speed) > 1e-6 {
			t.Fatalf("speed %v, want %v", got, speed)
		}
	})
}

func TestLaunchVelocity_LevelShot(t *testing.T) {
	planar, vertical := factory.LaunchVelocity(components.Vector{X: 0, Y: 5}, 1.5, components.Vector{X: 0, Y: 0}, 1.5, 15)
	assert.Equal(t, components.Vector{X: 0, Y: -15}, planar)
	assert.Zero(t, vertical)
}

func TestIdleDelay(t *testing.T) {
	skeleton := cfg.EnemyType(cfg.ArchetypeSkeleton)
	assert.Equal(t, 8*time.Second, factory.IdleDelay(skeleton, 0))
	assert.Equal(t, 11500*time.Millisecond, factory.IdleDelay(skeleton, 0.5))
	assert.Equal(t, 8*time.Second, factory.FirstIdleDelay(skeleton, 0))

	dragon := cfg.EnemyType(cfg.ArchetypeDragon)
	assert.Equal(t, 8*time.Second, factory.FirstIdleDelay(dragon, 0.9), "dragons wait a fixed time first")

	fixed := &cfg.EnemyTypeConfig{IdleSoundMin: 3 * time.Second, IdleSoundMax: time.Second}
	assert.Equal(t, 3*time.Second, factory.IdleDelay(fixed, 0.7))
}

func TestRagdollLayout(t *testing.T) {
	assert.Nil(t, factory.RagdollLayout(0, 1))

	parts := factory.RagdollLayout(6, 1)
	assert.Len(t, parts, 6)
	assert.True(t, parts[0].Offset.IsZero())
	for _, p := range parts[1:] {
		assert.InDelta(t, 0.7, p.Offset.Len(), 1e-9)
		assert.InDelta(t, 0.35, p.Radius, 1e-9)
	}
}
