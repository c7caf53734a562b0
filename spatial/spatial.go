// Package spatial answers the geometric questions combat asks of the
// collision space: who is inside this radius, what does this ray hit, and is
// this point free.
package spatial

import (
	"math"

	"github.com/automoto/illuyanka/shared/gamemath"
	"github.com/automoto/illuyanka/tags"
	"github.com/solarlune/resolv"
)

// NewSpace creates a collision space covering a width x height arena.
func NewSpace(width, height float64, cellSize int) *resolv.Space {
	if cellSize <= 0 {
		cellSize = 1
	}
	return resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cellSize, cellSize)
}

// NewBody creates a square collision object centred on pos.
func NewBody(pos gamemath.Vector, radius float64, objTags ...string) *resolv.Object {
	size := radius * 2
	obj := resolv.NewObject(pos.X-radius, pos.Y-radius, size, size, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	return obj
}

// NewBox creates an axis-aligned collision object.
func NewBox(x, y, w, h float64, objTags ...string) *resolv.Object {
	obj := resolv.NewObject(x, y, w, h, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	return obj
}

// Center is the middle of an object's bounds.
func Center(obj *resolv.Object) gamemath.Vector {
	return gamemath.V(obj.X+obj.W/2, obj.Y+obj.H/2)
}

// MoveTo re-centres obj on pos and refreshes its cells.
func MoveTo(obj *resolv.Object, pos gamemath.Vector) {
	obj.X = pos.X - obj.W/2
	obj.Y = pos.Y - obj.H/2
	obj.Update()
}

// candidates returns every object sharing cells with the rectangle.
func candidates(space *resolv.Space, x, y, w, h float64, queryTags ...string) []*resolv.Object {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	probe := resolv.NewObject(x, y, w, h, tags.ResolvProbe)
	space.Add(probe)
	defer space.Remove(probe)

	check := probe.Check(0, 0, queryTags...)
	if check == nil {
		return nil
	}
	return check.Objects
}

// closestPoint clamps p into obj's bounds.
func closestPoint(obj *resolv.Object, p gamemath.Vector) gamemath.Vector {
	return gamemath.V(
		gamemath.Clamp(p.X, obj.X, obj.X+obj.W),
		gamemath.Clamp(p.Y, obj.Y, obj.Y+obj.H),
	)
}

// Overlap returns the objects carrying any of queryTags whose bounds come
// within radius of center.
func Overlap(space *resolv.Space, center gamemath.Vector, radius float64, queryTags ...string) []*resolv.Object {
	var out []*resolv.Object
	seen := map[*resolv.Object]bool{}
	for _, obj := range candidates(space, center.X-radius, center.Y-radius, radius*2, radius*2, queryTags...) {
		if seen[obj] {
			continue
		}
		seen[obj] = true
		if closestPoint(obj, center).Dist(center) <= radius {
			out = append(out, obj)
		}
	}
	return out
}

// Hit describes the first object a ray reached.
type Hit struct {
	Object   *resolv.Object
	Point    gamemath.Vector
	Distance float64
}

// Raycast walks from origin along dir (normalized internally) up to maxDist
// and reports the nearest object carrying any of queryTags.
func Raycast(space *resolv.Space, origin, dir gamemath.Vector, maxDist float64, queryTags ...string) (Hit, bool) {
	dir = dir.Normalized()
	if dir.IsZero() || maxDist <= 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Scale(maxDist))
	minX, maxX := math.Min(origin.X, end.X), math.Max(origin.X, end.X)
	minY, maxY := math.Min(origin.Y, end.Y), math.Max(origin.Y, end.Y)
	const pad = 0.01

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, obj := range candidates(space, minX-pad, minY-pad, maxX-minX+2*pad, maxY-minY+2*pad, queryTags...) {
		t, ok := rayBox(origin, dir, obj)
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		best = Hit{Object: obj, Point: origin.Add(dir.Scale(t)), Distance: t}
		found = true
	}
	return best, found
}

// rayBox is the slab test against obj's bounds. A ray starting inside the
// box hits it at distance 0.
func rayBox(origin, dir gamemath.Vector, obj *resolv.Object) (float64, bool) {
	tMin, tMax := 0.0, math.Inf(1)
	slab := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}
	if !slab(origin.X, dir.X, obj.X, obj.X+obj.W) {
		return 0, false
	}
	if !slab(origin.Y, dir.Y, obj.Y, obj.Y+obj.H) {
		return 0, false
	}
	return tMin, true
}

// Blocked reports whether a body of radius at pos would overlap a solid.
func Blocked(space *resolv.Space, pos gamemath.Vector, radius float64) bool {
	for _, obj := range candidates(space, pos.X-radius, pos.Y-radius, radius*2, radius*2, tags.ResolvSolid) {
		c := closestPoint(obj, pos)
		if math.Abs(c.X-pos.X) < radius && math.Abs(c.Y-pos.Y) < radius {
			return true
		}
	}
	return false
}
