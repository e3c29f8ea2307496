// Package engine runs the per-frame pipeline: move the viewer, cast one ray
// per screen column, and paint the screen grid.
package engine

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphcast/internal/player"
	"github.com/samdwyer/glyphcast/internal/raycast"
	"github.com/samdwyer/glyphcast/internal/render"
	"github.com/samdwyer/glyphcast/internal/telemetry"
	"github.com/samdwyer/glyphcast/internal/vmath"
	"github.com/samdwyer/glyphcast/internal/world"
)

// Stats counts what the engine has done since it was created.
type Stats struct {
	Frames        int
	Moves         int
	RejectedMoves int
	CellWrites    int
	CastErrors    int
}

// Engine holds all state for one view of one map. It is not safe for
// concurrent use; the host calls Tick once per frame.
type Engine struct {
	cfg        Config
	grid       *world.Grid
	colliders  *world.Colliders
	caster     *raycast.Caster
	controller *player.Controller
	projector  *render.Projector
	compositor *render.Compositor
	screen     *render.Grid
	stats      Stats
	last       player.Outcome
}

// New initializes an engine for the map, validating the config and the
// start pose. The screen starts fully painted from the start pose.
func New(ctx context.Context, grid *world.Grid, cfg Config) (*Engine, error) {
	tracer := telemetry.Tracer("engine")
	_, span := tracer.Start(ctx, "engine.init")
	defer span.End()

	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	sx, sy := int(math.Floor(cfg.StartX)), int(math.Floor(cfg.StartY))
	if !grid.InBounds(sx, sy) {
		return nil, fmt.Errorf("start (%v,%v) outside %dx%d map: %w",
			cfg.StartX, cfg.StartY, grid.Width(), grid.Height(), world.ErrOutOfBounds)
	}
	if !grid.IsPassable(sx, sy) {
		return nil, fmt.Errorf("start (%v,%v) is inside a wall", cfg.StartX, cfg.StartY)
	}

	colliders := world.NewColliders(grid)
	caster := raycast.NewCaster(colliders)

	e := &Engine{
		cfg:       cfg,
		grid:      grid,
		colliders: colliders,
		caster:    caster,
		controller: player.NewController(
			player.Pose{
				Position: vmath.Vec2{X: cfg.StartX, Y: cfg.StartY},
				Heading:  cfg.StartHeading,
			},
			player.Params{
				MoveSpeed:    cfg.MoveSpeed,
				TurnSpeed:    cfg.TurnSpeed,
				SafetyMargin: cfg.SafetyMargin,
				ProbeRange:   cfg.MaxDistance,
			},
			caster,
		),
		projector: render.NewProjector(render.Lens{
			Columns:            cfg.ScreenWidth,
			Rows:               cfg.ScreenHeight,
			Spread:             cfg.Spread,
			RayLength:          cfg.RayLength,
			MaxDistance:        cfg.MaxDistance,
			DistanceMultiplier: cfg.DistanceMultiplier,
		}, caster),
		compositor: &render.Compositor{
			FloorShade: cfg.FloorShade,
			SideShade:  cfg.SideShade,
		},
		screen: render.NewGrid(cfg.ScreenWidth, cfg.ScreenHeight),
	}

	e.draw()

	span.SetAttributes(
		attribute.Int("screen.width", cfg.ScreenWidth),
		attribute.Int("screen.height", cfg.ScreenHeight),
		attribute.Int("map.colliders", colliders.Len()),
		attribute.Float64("start.x", cfg.StartX),
		attribute.Float64("start.y", cfg.StartY),
	)

	return e, nil
}

// Tick advances one frame: apply input over dt seconds, cast every column,
// and repaint the screen. The returned grid is the engine's own buffer and
// is complete when Tick returns.
func (e *Engine) Tick(in player.Input, dt float64) *render.Grid {
	out := e.controller.Update(in, dt)
	e.last = out
	if out.Moved {
		e.stats.Moves++
	}
	if out.Rejected {
		e.stats.RejectedMoves++
	}

	e.draw()
	e.stats.Frames++
	return e.screen
}

// LastOutcome reports what the controller did in the latest Tick.
func (e *Engine) LastOutcome() player.Outcome {
	return e.last
}

func (e *Engine) draw() {
	pose := e.controller.Pose()
	columns := e.projector.Project(pose.Position, pose.Heading)
	e.stats.CellWrites += e.compositor.Compose(e.screen, columns)
	e.stats.CastErrors = e.projector.Errors()
}

// Pose returns the current viewer pose.
func (e *Engine) Pose() player.Pose {
	return e.controller.Pose()
}

// Screen returns the screen buffer.
func (e *Engine) Screen() *render.Grid {
	return e.screen
}

// Columns returns the latest per-column projection.
func (e *Engine) Columns() []render.Column {
	return e.projector.Columns()
}

// Map returns the map the engine was built for.
func (e *Engine) Map() *world.Grid {
	return e.grid
}

// Config returns the engine tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stats returns the running counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// CenterRay casts the ray of the middle screen column from the current pose.
func (e *Engine) CenterRay() (raycast.Result, error) {
	pose := e.controller.Pose()
	lens := e.projector.Lens()
	return e.caster.Cast(pose.Position, lens.Direction(lens.Columns/2, pose.Heading), lens.MaxDistance)
}
