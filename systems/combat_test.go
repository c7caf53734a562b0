package systems_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
	"pgregory.net/rapid"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/spatial"
	"github.com/automoto/illuyanka/systems"
	"github.com/automoto/illuyanka/tags"
)

func v(x, y float64) components.Vector { return components.Vector{X: x, Y: y} }

func TestSelectBombardPoints_UseAllCopiesAnchors(t *testing.T) {
	anchors := []components.Vector{v(1, 1), v(2, 2), v(3, 3)}
	bomb := cfg.BombardConfig{UseAll: true, Count: 1}

	points := systems.SelectBombardPoints(anchors, v(0, 0), bomb, rand.New(rand.NewPCG(1, 1)))

	assert.Equal(t, anchors, points)
	points[0] = v(9, 9)
	assert.Equal(t, v(1, 1), anchors[0], "result must not alias the anchors")
}

func TestSelectBombardPoints_SubsetIsDistinct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "anchors")
		count := rapid.IntRange(-2, 10).Draw(t, "count")
		seed := rapid.Uint64().Draw(t, "seed")

		anchors := make([]components.Vector, n)
		for i := range anchors {
			anchors[i] = v(float64(i), 0)
		}
		points := systems.SelectBombardPoints(anchors, v(0, 0),
			cfg.BombardConfig{Count: count}, rand.New(rand.NewPCG(seed, 0)))

		want := max(min(count, n), 0)
		if len(points) != want {
			t.Fatalf("got %d points, want %d", len(points), want)
		}
		seen := map[components.Vector]bool{}
		for _, p := range points {
			if seen[p] {
				t.Fatalf("anchor %v picked twice", p)
			}
			seen[p] = true
		}
	})
}

func TestSelectBombardPoints_ScatterWithoutAnchors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 6).Draw(t, "count")
		spread := rapid.Float64Range(0, 10).Draw(t, "spread")
		seed := rapid.Uint64().Draw(t, "seed")
		target := v(20, 20)

		points := systems.SelectBombardPoints(nil, target,
			cfg.BombardConfig{Count: count, RandomSpread: spread}, rand.New(rand.NewPCG(seed, 0)))

		if len(points) != count {
			t.Fatalf("got %d points, want %d", len(points), count)
		}
		// Offsets are added to the target, so allow for rounding
		limit := spread + 1e-9
		for _, p := range points {
			if math.Abs(p.X-target.X) > limit || math.Abs(p.Y-target.Y) > limit {
				t.Fatalf("%v outside spread %v of %v", p, spread, target)
			}
		}
	})
}

func TestResolveDashDirection(t *testing.T) {
	assert.Equal(t, v(1, 0), systems.ResolveDashDirection(v(0, 0), v(3, 0), 0), "zero input uses facing")
	assert.Equal(t, v(0, 1), systems.ResolveDashDirection(v(0, 0), v(0, 0), 0), "no facing falls back to forward")

	d := systems.ResolveDashDirection(v(2, 0), v(0, 1), math.Pi/2)
	assert.InDelta(t, 1.0, d.Len(), 1e-9)
	assert.InDelta(t, 0.0, d.X, 1e-9)
	assert.InDelta(t, 1.0, math.Abs(d.Y), 1e-9)
}

func TestResolveDashDirection_AlwaysUnit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := v(rapid.Float64Range(-5, 5).Draw(t, "x"), rapid.Float64Range(-5, 5).Draw(t, "y"))
		facing := v(rapid.Float64Range(-1, 1).Draw(t, "fx"), rapid.Float64Range(-1, 1).Draw(t, "fy"))
		yaw := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "yaw")

		d := systems.ResolveDashDirection(in, facing, yaw)
		if math.Abs(d.Len()-1) > 1e-9 {
			t.Fatalf("direction %v is not unit length", d)
		}
	})
}

func TestDashTarget(t *testing.T) {
	space := spatial.NewSpace(30, 30, 2)
	space.Add(spatial.NewBox(9, 12, 2, 2, tags.ResolvSolid))

	assert.Equal(t, v(10, 15), systems.DashTarget(nil, v(10, 10), v(0, 1), 5, 0.5))
	assert.Equal(t, v(15, 10), systems.DashTarget(space, v(10, 10), v(1, 0), 5, 0.5), "nothing in the way")

	got := systems.DashTarget(space, v(10, 10), v(0, 1), 5, 0.5)
	assert.InDelta(t, 11.5, got.Y, 1e-9)

	got = systems.DashTarget(space, v(10, 11.8), v(0, 1), 5, 0.5)
	assert.Equal(t, v(10, 11.8), got, "never pulled back behind the start")

	space.Add(spatial.NewBody(v(13, 10), 0.5, tags.ResolvEnemy))
	got = systems.DashTarget(space, v(10, 10), v(1, 0), 5, 0.5)
	assert.InDelta(t, 12.0, got.X, 1e-9, "enemy bodies stop a dash too")
}

func TestTargetOffset(t *testing.T) {
	assert.Equal(t, v(9, 0), systems.TargetOffset(v(0, 0), v(10, 0), 1))
	assert.Equal(t, v(0, 0), systems.TargetOffset(v(0, 0), v(3, 0), 5), "never past the start")
	assert.Equal(t, v(4, 4), systems.TargetOffset(v(4, 4), v(4, 4), 1))
}

func TestImpactScale(t *testing.T) {
	assert.InDelta(t, 1.0, systems.ImpactScale(0, 1.5), 1e-9)
	assert.InDelta(t, 1.5, systems.ImpactScale(0.5, 1.5), 1e-9)
	assert.InDelta(t, 0.0, systems.ImpactScale(1, 1.5), 1e-9)
}

func TestImpactLight(t *testing.T) {
	assert.InDelta(t, 1.0, systems.ImpactLight(0, 3), 1e-9)
	assert.InDelta(t, 3.0, systems.ImpactLight(0.15, 3), 1e-9, "peak halfway through the flash")
	assert.InDelta(t, 1.0, systems.ImpactLight(0.3, 3), 1e-9)
	assert.InDelta(t, 0.5, systems.ImpactLight(0.65, 3), 1e-9)
	assert.InDelta(t, 0.0, systems.ImpactLight(1, 3), 1e-9)
}

func TestWarningPulse_StaysInRange(t *testing.T) {
	e := cfg.Effects
	scale, alpha := systems.WarningPulse(0, e.WarningPulseSpeed)
	assert.InDelta(t, (e.WarningMinScale+e.WarningMaxScale)/2, scale, 1e-9)
	assert.InDelta(t, (e.WarningMinAlpha+e.WarningMaxAlpha)/2, alpha, 1e-9)

	rapid.Check(t, func(t *rapid.T) {
		at := rapid.Float64Range(0, 100).Draw(t, "t")
		scale, alpha := systems.WarningPulse(at, e.WarningPulseSpeed)
		if scale < e.WarningMinScale-1e-9 || scale > e.WarningMaxScale+1e-9 {
			t.Fatalf("scale %v out of range", scale)
		}
		if alpha < e.WarningMinAlpha-1e-9 || alpha > e.WarningMaxAlpha+1e-9 {
			t.Fatalf("alpha %v out of range", alpha)
		}
	})
}

func TestDissolveEase(t *testing.T) {
	require.NotNil(t, systems.DissolveEase("Linear"))
	assert.InDelta(t, 0.5, systems.DissolveEase("Linear")(0.5, 0, 1, 1), 1e-6)
	assert.InDelta(t, ease.OutQuad(0.3, 0, 1, 1), systems.DissolveEase("outQuad")(0.3, 0, 1, 1), 1e-6)
	assert.InDelta(t, ease.InOutCubic(0.25, 0, 1, 1), systems.DissolveEase("bouncy")(0.25, 0, 1, 1), 1e-6)
}
