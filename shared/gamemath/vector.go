package gamemath

import "math"

// Vector is a point or direction on the ground plane. Y is the world depth
// axis, not height.
type Vector struct {
	X, Y float64
}

func V(x, y float64) Vector { return Vector{X: x, Y: y} }

func (v Vector) Add(o Vector) Vector      { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector      { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(s float64) Vector   { return Vector{v.X * s, v.Y * s} }
func (v Vector) Dot(o Vector) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vector) Len() float64             { return math.Hypot(v.X, v.Y) }
func (v Vector) Dist(o Vector) float64    { return v.Sub(o).Len() }
func (v Vector) IsZero() bool             { return v.X == 0 && v.Y == 0 }
func (v Vector) Lerp(o Vector, t float64) Vector {
	return Vector{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalized returns the unit vector, or the zero vector for zero input.
func (v Vector) Normalized() Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

// Rotate turns v by angle radians counter-clockwise.
func (v Vector) Rotate(angle float64) Vector {
	s, c := math.Sincos(angle)
	return Vector{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Angle is the heading of v in radians.
func (v Vector) Angle() float64 { return math.Atan2(v.Y, v.X) }

// FromAngle returns the unit heading for angle radians.
func FromAngle(angle float64) Vector {
	s, c := math.Sincos(angle)
	return Vector{c, s}
}
