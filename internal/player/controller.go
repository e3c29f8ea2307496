// Package player moves the viewer through the map in response to input.
package player

import (
	"math"

	"github.com/samdwyer/glyphcast/internal/raycast"
	"github.com/samdwyer/glyphcast/internal/vmath"
)

// Pose is the viewer's position and heading. Heading is in degrees in
// [0, 360); 0 faces +Y and positive turns are counter-clockwise.
type Pose struct {
	Position vmath.Vec2
	Heading  float64
}

// Forward returns the unit vector the viewer is facing.
func (p Pose) Forward() vmath.Vec2 {
	return vmath.Heading(p.Heading)
}

// Input is the directional input for one frame.
type Input struct {
	TurnLeft  bool
	TurnRight bool
	Forward   bool
	Backward  bool
}

// Prober finds the nearest wall along a ray.
type Prober interface {
	Cast(origin, dir vmath.Vec2, maxDistance float64) (raycast.Result, error)
}

// Params holds movement tuning.
type Params struct {
	MoveSpeed    float64 // world units per second
	TurnSpeed    float64 // degrees per second
	SafetyMargin float64 // closest a move may bring the viewer to a wall
	ProbeRange   float64 // range of the collision probe
}

// Outcome reports what an update did.
type Outcome struct {
	Turned   bool
	Moved    bool
	Rejected bool // a move was requested but blocked by a wall
}

// Controller owns the pose and advances it each frame.
type Controller struct {
	pose   Pose
	params Params
	prober Prober
}

// NewController creates a controller at the given pose.
func NewController(start Pose, params Params, prober Prober) *Controller {
	start.Heading = vmath.WrapDegrees(start.Heading)
	return &Controller{pose: start, params: params, prober: prober}
}

// Pose returns the current pose.
func (c *Controller) Pose() Pose {
	return c.pose
}

// Update applies one frame of input over dt seconds. Turning and moving are
// independent; within each, left beats right and forward beats backward.
// A negative or non-finite dt counts as zero.
func (c *Controller) Update(in Input, dt float64) Outcome {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}

	var out Outcome

	switch {
	case in.TurnLeft:
		c.turn(c.params.TurnSpeed * dt)
		out.Turned = true
	case in.TurnRight:
		c.turn(-c.params.TurnSpeed * dt)
		out.Turned = true
	}

	switch {
	case in.Forward:
		out.Moved, out.Rejected = c.move(1, dt)
	case in.Backward:
		out.Moved, out.Rejected = c.move(-1, dt)
	}

	return out
}

func (c *Controller) turn(deg float64) {
	c.pose.Heading = vmath.WrapDegrees(c.pose.Heading + deg)
}

// move advances along the heading (sign 1) or against it (sign -1), then
// probes from the new position in the direction of travel. If a wall is
// closer than the safety margin the move is undone. The travelled segment
// is also checked so a long step cannot pass through a wall.
func (c *Controller) move(sign, dt float64) (moved, rejected bool) {
	dir := c.pose.Forward().Scale(sign)
	step := c.params.MoveSpeed * dt
	if step == 0 {
		return false, false
	}

	from := c.pose.Position
	to := from.Add(dir.Scale(step))

	probe, err := c.prober.Cast(to, dir, c.params.ProbeRange)
	if err != nil || (probe.Hit && probe.Distance < c.params.SafetyMargin) {
		return false, true
	}

	swept, err := c.prober.Cast(from, dir, c.params.ProbeRange)
	if err == nil && swept.Hit && swept.Distance-step < c.params.SafetyMargin {
		return false, true
	}

	c.pose.Position = to
	return true, false
}
