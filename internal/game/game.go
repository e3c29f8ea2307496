package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphcast/internal/audio"
	"github.com/samdwyer/glyphcast/internal/engine"
	"github.com/samdwyer/glyphcast/internal/telemetry"
	"github.com/samdwyer/glyphcast/internal/ui"
)

const messageDuration = 2 * time.Second

// Game holds the terminal host state around one engine.
type Game struct {
	cfg      Config
	name     string
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *engine.Engine
	keys     *ui.KeyState
	cues     *audio.Cues
	state    State
	resume   State
	running  bool

	message      string
	messageUntil time.Time

	now  func() time.Time
	copy func(string) error
}

// New loads the configured map, builds the engine and opens the terminal.
func New(ctx context.Context, cfg Config) (*Game, error) {
	scene, err := LoadScene(ctx, cfg)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(ctx, scene.Grid, scene.Engine)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := newGame(cfg, scene.Name, screen, eng)
	if cfg.Audio {
		if err := g.cues.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		}
	}
	return g, nil
}

func newGame(cfg Config, name string, screen *ui.Screen, eng *engine.Engine) *Game {
	return &Game{
		cfg:      cfg,
		name:     name,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		engine:   eng,
		keys:     ui.NewKeyState(cfg.Hold),
		cues:     audio.NewCues(cfg.Volume),
		state:    StateView,
		running:  true,
		now:      time.Now,
		copy:     clipboard.WriteAll,
	}
}

// Run executes the main loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	defer span.End()

	span.SetAttributes(
		attribute.String("map.name", g.name),
		attribute.Int("game.fps", g.cfg.FPS),
	)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	go pollEvents(g.screen, events, done)

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.FPS))
	defer ticker.Stop()

	last := g.now()
	g.draw(last)

	// Main loop
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ev)
		case <-ticker.C:
			now := g.now()
			g.step(now, now.Sub(last).Seconds())
			last = now
			g.draw(now)
		}
	}

	close(done)
	g.Close()

	stats := g.engine.Stats()
	span.SetAttributes(
		attribute.Int("engine.frames", stats.Frames),
		attribute.Int("engine.moves", stats.Moves),
		attribute.Int("engine.rejected_moves", stats.RejectedMoves),
		attribute.Int("engine.cell_writes", stats.CellWrites),
		attribute.Int("engine.cast_errors", stats.CastErrors),
	)
	return nil
}

// pollEvents forwards terminal events until the screen is closed.
func pollEvents(screen *ui.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// step advances the engine by dt seconds of held input.
func (g *Game) step(now time.Time, dt float64) {
	if g.state == StatePaused {
		return
	}
	g.engine.Tick(g.keys.Input(now), dt)
	if g.engine.LastOutcome().Rejected {
		g.cues.Bump()
	}
}

func (g *Game) draw(now time.Time) {
	hud := ui.HUD{
		Pose:   g.engine.Pose(),
		Paused: g.state == StatePaused,
	}
	if now.Before(g.messageUntil) {
		hud.Message = g.message
	}
	g.renderer.Render(g.engine.Screen(), hud)

	if g.overlay() {
		if hit, err := g.engine.CenterRay(); err == nil {
			g.renderer.RenderMinimap(g.engine.Map(), g.engine.Pose(), hit.Point)
		}
	}
	g.renderer.Show()
}

func (g *Game) overlay() bool {
	return g.state == StateMap || (g.state == StatePaused && g.resume == StateMap)
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev, g.now())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyTab:
		g.toggleMap()
		return
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
			return
		case 'm', 'M':
			g.toggleMap()
			return
		case 'p', 'P':
			g.togglePause()
			return
		case 'c', 'C':
			g.copySnapshot(now)
			return
		}
	}

	if g.state == StatePaused {
		return
	}
	if a, ok := ui.ActionForKey(ev); ok {
		g.keys.Press(a, now)
	}
}

func (g *Game) toggleMap() {
	switch g.state {
	case StateView:
		g.state = StateMap
	case StateMap:
		g.state = StateView
	case StatePaused:
		if g.resume == StateMap {
			g.resume = StateView
		} else {
			g.resume = StateMap
		}
	}
}

func (g *Game) togglePause() {
	if g.state == StatePaused {
		g.state = g.resume
		return
	}
	g.resume = g.state
	g.state = StatePaused
	g.keys.Release()
}

// Snapshot returns the current frame as text headed by the pose.
func (g *Game) Snapshot() string {
	pose := g.engine.Pose()
	return fmt.Sprintf("%s x=%.2f y=%.2f heading=%.1f\n%s",
		g.name, pose.Position.X, pose.Position.Y, pose.Heading, g.engine.Screen().Text())
}

func (g *Game) copySnapshot(now time.Time) {
	if err := g.copy(g.Snapshot()); err != nil {
		log.Printf("Warning: clipboard copy failed: %v", err)
		g.flash("clipboard unavailable", now)
		return
	}
	g.flash("frame copied", now)
}

func (g *Game) flash(msg string, now time.Time) {
	g.message = msg
	g.messageUntil = now.Add(messageDuration)
}

// State returns the current view mode.
func (g *Game) State() State {
	return g.state
}

// Running reports whether the main loop should continue.
func (g *Game) Running() bool {
	return g.running
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.cues.Cleanup()
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
