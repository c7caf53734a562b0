package timing_test

import (
	"testing"
	"time"

	"github.com/automoto/illuyanka/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"pgregory.net/rapid"
)

func TestClock_TickAdvancesByFixedStep(t *testing.T) {
	c := timing.NewClock(50)
	assert.Equal(t, 20*time.Millisecond, c.Step())
	c.Tick()
	c.Tick()
	assert.Equal(t, 40*time.Millisecond, c.Now())
	assert.Equal(t, uint64(2), c.Ticks())
	assert.InDelta(t, 0.02, c.DeltaSeconds(), 1e-9)
}

func TestClock_DefaultsToSixtyHz(t *testing.T) {
	c := timing.NewClock(0)
	assert.Equal(t, time.Second/60, c.Step())
}

func TestCooldown_StartAndTick(t *testing.T) {
	cd := timing.ReadyCooldown()
	require.True(t, cd.Ready)

	cd.Start(2 * time.Second)
	assert.False(t, cd.Ready)

	cd.Tick(time.Second)
	assert.False(t, cd.Ready)
	cd.Tick(time.Second)
	assert.True(t, cd.Ready)
	assert.Zero(t, cd.Remaining)
}

func TestCooldown_ZeroDurationStaysReady(t *testing.T) {
	cd := timing.ReadyCooldown()
	cd.Start(0)
	assert.True(t, cd.Ready)
}

func TestCooldown_ReadyAfterExactlyDuration(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		steps := rapid.IntRange(1, 600).Draw(rt, "steps")
		step := time.Second / 60
		cd := timing.ReadyCooldown()
		cd.Start(time.Duration(steps) * step)
		for i := 0; i < steps-1; i++ {
			cd.Tick(step)
			if cd.Ready {
				rt.Fatalf("ready after %d of %d steps", i+1, steps)
			}
		}
		cd.Tick(step)
		if !cd.Ready {
			rt.Fatalf("not ready after %d steps", steps)
		}
	})
}

func TestScheduler_RunsInDueOrder(t *testing.T) {
	s := timing.NewScheduler()
	owner := donburi.Entity(1)
	var order []string
	s.After(owner, 300*time.Millisecond, func() { order = append(order, "late") })
	s.After(owner, 100*time.Millisecond, func() { order = append(order, "early") })
	s.After(owner, 100*time.Millisecond, func() { order = append(order, "early-second") })

	s.Advance(50 * time.Millisecond)
	assert.Empty(t, order)

	s.Advance(time.Second)
	assert.Equal(t, []string{"early", "early-second", "late"}, order)
	assert.Zero(t, s.Pending(owner))
}

func TestScheduler_CancelOwnerStopsOnlyThatOwner(t *testing.T) {
	s := timing.NewScheduler()
	a, b := donburi.Entity(1), donburi.Entity(2)
	ran := map[donburi.Entity]int{}
	s.After(a, time.Second, func() { ran[a]++ })
	s.After(a, 2*time.Second, func() { ran[a]++ })
	s.After(b, time.Second, func() { ran[b]++ })

	assert.Equal(t, 2, s.CancelOwner(a))
	s.Advance(3 * time.Second)

	assert.Zero(t, ran[a])
	assert.Equal(t, 1, ran[b])
}

func TestScheduler_CancelFromInsideSameBatch(t *testing.T) {
	s := timing.NewScheduler()
	owner := donburi.Entity(7)
	revived := false
	s.After(owner, time.Second, func() { s.CancelOwner(owner) })
	s.After(owner, time.Second, func() { revived = true })

	s.Advance(time.Second)
	assert.False(t, revived)
}

func TestScheduler_ChainedCallbacks(t *testing.T) {
	s := timing.NewScheduler()
	owner := donburi.Entity(3)
	var at []time.Duration
	s.After(owner, time.Second, func() {
		at = append(at, s.Now())
		s.After(owner, 0, func() { at = append(at, s.Now()) })
		s.After(owner, time.Second, func() { at = append(at, s.Now()) })
	})

	s.Advance(time.Second)
	require.Len(t, at, 2)
	s.Advance(2 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, time.Second, 2 * time.Second}, at)
}

func TestScheduler_HandleCancel(t *testing.T) {
	s := timing.NewScheduler()
	ran := false
	h := s.After(donburi.Entity(1), time.Second, func() { ran = true })
	h.Cancel()
	s.Advance(2 * time.Second)
	assert.False(t, ran)
}
