package gamemath_test

import (
	"math"
	"testing"

	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalized_ZeroStaysZero(t *testing.T) {
	assert.Equal(t, gamemath.Vector{}, gamemath.Vector{}.Normalized())
}

func TestNormalized_UnitLength(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := gamemath.V(
			rapid.Float64Range(-1000, 1000).Draw(rt, "x"),
			rapid.Float64Range(-1000, 1000).Draw(rt, "y"),
		)
		if v.Len() < 1e-9 {
			return
		}
		if math.Abs(v.Normalized().Len()-1) > 1e-9 {
			rt.Fatalf("normalized length %v", v.Normalized().Len())
		}
	})
}

func TestRotate_QuarterTurn(t *testing.T) {
	r := gamemath.V(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 1, r.Y, 1e-9)
}

func TestArcHeight(t *testing.T) {
	assert.InDelta(t, 0, gamemath.ArcHeight(0, 3), 1e-9)
	assert.InDelta(t, 3, gamemath.ArcHeight(0.5, 3), 1e-9)
	assert.InDelta(t, 0, gamemath.ArcHeight(1, 3), 1e-9)
}

func TestTurnTowards_FullRateSnaps(t *testing.T) {
	h := gamemath.TurnTowards(gamemath.V(1, 0), gamemath.V(0, -2), 10, 1)
	assert.InDelta(t, 0, h.X, 1e-9)
	assert.InDelta(t, -1, h.Y, 1e-9)
}

func TestTurnTowards_Partial(t *testing.T) {
	h := gamemath.TurnTowards(gamemath.V(1, 0), gamemath.V(0, 1), 5, 0.1)
	assert.InDelta(t, math.Pi/4, h.Angle(), 1e-9)
}

func TestApplyFriction(t *testing.T) {
	assert.Equal(t, 4.0, gamemath.ApplyFriction(5, 1))
	assert.Equal(t, -4.0, gamemath.ApplyFriction(-5, 1))
	assert.Equal(t, 0.0, gamemath.ApplyFriction(0.5, 1))
}
