package gamemath

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// ArcHeight is the parabola-like lift of a leap at progress p in [0, 1].
func ArcHeight(p, height float64) float64 {
	return math.Sin(Clamp01(p)*math.Pi) * height
}

// TurnTowards rotates heading toward target by at most rate*dt of the
// remaining angle, the way a slerp with a per-frame factor does.
func TurnTowards(heading, target Vector, rate, dt float64) Vector {
	if target.IsZero() {
		return heading
	}
	if heading.IsZero() {
		return target.Normalized()
	}
	from := heading.Angle()
	diff := math.Remainder(target.Angle()-from, 2*math.Pi)
	return FromAngle(from + diff*Clamp01(rate*dt))
}

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}
