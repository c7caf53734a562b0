package systems

import (
	"math"
	"time"

	"github.com/automoto/illuyanka/components"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects ages every effect, updates its shape parameters and removes
// it once its lifetime is over.
func UpdateEffects(ecs *ecs.ECS) {
	rt := runtimeOf(ecs.World)
	if rt == nil {
		return
	}
	dt := rt.Clock.Step()

	for _, e := range collect(ecs.World, tags.Effect.Each) {
		fx := components.Effect.Get(e)
		fx.Elapsed += dt

		switch fx.Kind {
		case components.EffectDashTrail:
			if !updateTrail(ecs, e, fx, dt) {
				ecs.World.Remove(e.Entity())
			}
			continue
		case components.EffectDashImpact:
			p := progress(fx.Elapsed, fx.Duration)
			fx.Scale = ImpactScale(p, cfg.Effects.ImpactMaxScale)
			fx.Light = ImpactLight(p, cfg.Effects.ImpactLightBoost)
		case components.EffectWarningMarker:
			fx.Scale, fx.Alpha = WarningPulse(fx.Elapsed.Seconds(), cfg.Effects.WarningPulseSpeed)
		}

		if fx.Duration > 0 && fx.Elapsed >= fx.Duration {
			ecs.World.Remove(e.Entity())
		}
	}
}

// updateTrail pins the trail to its owner, then fades it. It reports false
// once the trail has faded out.
func updateTrail(ecs *ecs.ECS, e *donburi.Entry, fx *components.EffectData, dt time.Duration) bool {
	owner := entryOf(ecs.World, fx.Owner)
	if owner == nil {
		fx.Follow = false
	}
	if fx.Follow {
		components.Transform.Get(e).Position = positionOf(owner)
	}
	if fx.Elapsed < cfg.Effects.TrailDuration {
		return true
	}
	fx.Alpha -= cfg.Effects.TrailFadeSpeed * dt.Seconds()
	return fx.Alpha > 0
}

func progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return gamemath.Clamp01(float64(elapsed) / float64(duration))
}

// ImpactScale grows the dash impact ring to maxScale over the first half of
// its life and shrinks it to nothing over the second.
func ImpactScale(p, maxScale float64) float64 {
	if p < 0.5 {
		return gamemath.Lerp(1, maxScale, p/0.5)
	}
	return gamemath.Lerp(maxScale, 0, (p-0.5)/0.5)
}

// ImpactLight is the impact flash relative to its base intensity: a sine
// swell up to boost over the first 30%, then a linear fade to dark.
func ImpactLight(p, boost float64) float64 {
	const flash = 0.3
	if p < flash {
		return gamemath.Lerp(1, boost, math.Sin(p/flash*math.Pi))
	}
	return gamemath.Lerp(1, 0, (p-flash)/(1-flash))
}

// WarningPulse is the scale and alpha of a warning marker t seconds in.
func WarningPulse(t, speed float64) (scale, alpha float64) {
	phase := t * speed
	e := cfg.Effects
	scale = gamemath.Lerp(e.WarningMinScale, e.WarningMaxScale, (math.Sin(phase)+1)/2)
	alpha = gamemath.Lerp(e.WarningMinAlpha, e.WarningMaxAlpha, (math.Sin(phase*1.5)+1)/2)
	return scale, alpha
}
