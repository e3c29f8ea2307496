// Package raycast finds the nearest wall along a ray through the map.
package raycast

import (
	"fmt"
	"math"

	"github.com/samdwyer/glyphcast/internal/vmath"
	"github.com/samdwyer/glyphcast/internal/world"
)

// Axis tells which kind of wall face a ray struck.
type Axis int

const (
	// AxisNone means nothing was hit, or the ray started inside a wall.
	AxisNone Axis = iota
	// AxisHorizontal is a face whose normal points along Y (front/back walls).
	AxisHorizontal
	// AxisVertical is a face whose normal points along X (side walls).
	AxisVertical
)

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Result is the outcome of one cast.
type Result struct {
	Distance float64 // distance to the hit, or the max distance on a miss
	Hit      bool
	Axis     Axis
	Normal   vmath.Vec2 // outward normal of the struck face
	Point    vmath.Vec2 // world position of the hit, or the ray end on a miss
	CellX    int        // wall cell that was hit, -1 on a miss
	CellY    int
}

// GeometryError reports a cast that cannot be evaluated.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "raycast geometry: " + e.Reason
}

// Miss returns the result a caller should use in place of a failed cast.
func Miss(origin, dir vmath.Vec2, maxDistance float64) Result {
	r := Result{Distance: maxDistance, CellX: -1, CellY: -1, Point: origin}
	if u := dir.Normalize(); u.IsFinite() && !math.IsInf(maxDistance, 0) && !math.IsNaN(maxDistance) {
		r.Point = origin.Add(u.Scale(maxDistance))
	}
	return r
}

// Caster casts rays against a fixed collider set.
type Caster struct {
	colliders *world.Colliders
}

// NewCaster creates a caster over the given colliders.
func NewCaster(colliders *world.Colliders) *Caster {
	return &Caster{colliders: colliders}
}

// Cast walks the ray from origin along dir and returns the nearest wall hit
// within maxDistance. dir need not be normalized. Cells are visited in the
// order the ray enters them and each wall cell's box is intersected exactly,
// so the first box hit is the nearest.
func (c *Caster) Cast(origin, dir vmath.Vec2, maxDistance float64) (Result, error) {
	width, height := c.colliders.Bounds()

	switch {
	case !origin.IsFinite():
		return Result{}, &GeometryError{Reason: "origin is not finite"}
	case origin.X < 0 || origin.Y < 0 || origin.X >= float64(width) || origin.Y >= float64(height):
		return Result{}, &GeometryError{
			Reason: fmt.Sprintf("origin (%.3f,%.3f) outside %dx%d map", origin.X, origin.Y, width, height),
		}
	case !dir.IsFinite():
		return Result{}, &GeometryError{Reason: "direction is not finite"}
	case dir.X == 0 && dir.Y == 0:
		return Result{}, &GeometryError{Reason: "direction is zero"}
	case math.IsNaN(maxDistance) || math.IsInf(maxDistance, 0) || maxDistance < 0:
		return Result{}, &GeometryError{Reason: fmt.Sprintf("invalid max distance %v", maxDistance)}
	}

	u := dir.Normalize()
	cx, cy := int(math.Floor(origin.X)), int(math.Floor(origin.Y))

	stepX, tMaxX, tDeltaX := axisStep(origin.X, u.X, cx)
	stepY, tMaxY, tDeltaY := axisStep(origin.Y, u.Y, cy)

	for {
		if box, ok := c.colliders.At(cx, cy); ok {
			if hit, ok := box.RayHit(origin.X, origin.Y, u.X, u.Y, maxDistance); ok {
				return Result{
					Distance: hit.T,
					Hit:      true,
					Axis:     axisOf(hit.NX, hit.NY),
					Normal:   vmath.Vec2{X: hit.NX, Y: hit.NY},
					Point:    origin.Add(u.Scale(hit.T)),
					CellX:    cx,
					CellY:    cy,
				}, nil
			}
		}

		var t float64
		if tMaxX < tMaxY {
			t = tMaxX
			cx += stepX
			tMaxX += tDeltaX
		} else {
			t = tMaxY
			cy += stepY
			tMaxY += tDeltaY
		}

		if t > maxDistance || cx < 0 || cy < 0 || cx >= width || cy >= height {
			return Miss(origin, dir, maxDistance), nil
		}
	}
}

// axisStep returns the DDA step direction, the ray distance to the first
// cell boundary on this axis, and the distance between boundaries.
func axisStep(o, d float64, cell int) (step int, tMax, tDelta float64) {
	switch {
	case d > 0:
		return 1, (float64(cell+1) - o) / d, 1 / d
	case d < 0:
		return -1, (o - float64(cell)) / -d, -1 / d
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

// axisOf classifies a face normal. A normal with an X component of
// magnitude 1 belongs to a side face.
func axisOf(nx, ny float64) Axis {
	switch {
	case math.Abs(nx) >= 1:
		return AxisVertical
	case math.Abs(ny) >= 1:
		return AxisHorizontal
	default:
		return AxisNone
	}
}
