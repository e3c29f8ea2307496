package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/glyphcast/internal/audio"
	"github.com/samdwyer/glyphcast/internal/engine"
	"github.com/samdwyer/glyphcast/internal/game"
	"github.com/samdwyer/glyphcast/internal/player"
	"github.com/samdwyer/glyphcast/internal/render"
)

const (
	cellW     = 12
	cellH     = 18
	hudH      = 20
	miniScale = 4
)

// window hosts the engine in an ebiten window. Unlike the terminal, ebiten
// reports real key state so held keys need no repeat window.
type window struct {
	engine  *engine.Engine
	cues    *audio.Cues
	paused  bool
	minimap bool
}

func newWindow(eng *engine.Engine, cfg game.Config) *window {
	w := &window{engine: eng, cues: audio.NewCues(cfg.Volume)}
	if cfg.Audio {
		if err := w.cues.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		}
	}
	return w
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyM) {
		w.minimap = !w.minimap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.paused = !w.paused
	}
	if w.paused {
		return nil
	}

	in := player.Input{
		TurnLeft:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnRight: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Forward:   ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Backward:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
	w.engine.Tick(in, 1/float64(ebiten.TPS()))
	if w.engine.LastOutcome().Rejected {
		w.cues.Bump()
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	view := w.engine.Screen()
	rows := view.Height()
	for row := 0; row < rows; row++ {
		for col := 0; col < view.Width(); col++ {
			drawCell(screen, col, rows-1-row, view.At(col, row))
		}
	}

	if w.minimap {
		w.drawMinimap(screen)
	}

	pose := w.engine.Pose()
	hud := fmt.Sprintf("x %.2f  y %.2f  heading %5.1f", pose.Position.X, pose.Position.Y, pose.Heading)
	if w.paused {
		hud += "  [paused]"
	}
	ebitenutil.DebugPrintAt(screen, hud, 4, rows*cellH+2)
}

// drawCell paints one view cell at screen cell (col, y). Top and bottom
// glyphs get a bright edge where the wall meets ceiling or floor.
func drawCell(screen *ebiten.Image, col, y int, cell render.Cell) {
	if !cell.Visible {
		return
	}
	x0, y0 := float32(col*cellW), float32(y*cellH)
	shade := colorful.Color{R: cell.Shade, G: cell.Shade, B: cell.Shade}.Clamped()
	vector.FillRect(screen, x0, y0, cellW, cellH, shade, false)

	edge := colorful.Color{R: 1, G: 1, B: 1}.BlendRgb(shade, 0.5)
	switch cell.Glyph {
	case render.GlyphTop:
		vector.StrokeLine(screen, x0, y0+1, x0+cellW, y0+1, 2, edge, false)
	case render.GlyphBottom:
		vector.StrokeLine(screen, x0, y0+cellH-1, x0+cellW, y0+cellH-1, 2, edge, false)
	}
}

func (w *window) drawMinimap(screen *ebiten.Image) {
	m := w.engine.Map()
	h := m.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < m.Width(); x++ {
			clr := color.RGBA{R: 30, G: 30, B: 30, A: 200}
			if m.IsWall(x, y) {
				clr = color.RGBA{R: 140, G: 140, B: 140, A: 220}
			}
			vector.FillRect(screen, float32(x*miniScale), float32((h-1-y)*miniScale), miniScale, miniScale, clr, false)
		}
	}

	toScreen := func(x, y float64) (float32, float32) {
		return float32(x * miniScale), float32((float64(h) - y) * miniScale)
	}

	pose := w.engine.Pose()
	px, py := toScreen(pose.Position.X, pose.Position.Y)
	if hit, err := w.engine.CenterRay(); err == nil {
		hx, hy := toScreen(hit.Point.X, hit.Point.Y)
		vector.StrokeLine(screen, px, py, hx, hy, 1, color.RGBA{R: 220, G: 60, B: 60, A: 255}, false)
	}
	fwd := pose.Forward()
	fx, fy := toScreen(pose.Position.X+fwd.X, pose.Position.Y+fwd.Y)
	vector.StrokeLine(screen, px, py, fx, fy, 2, color.RGBA{R: 240, G: 220, B: 60, A: 255}, false)
	vector.FillCircle(screen, px, py, float32(math.Max(2, miniScale/2)), color.RGBA{R: 240, G: 220, B: 60, A: 255}, false)
}

func (w *window) Layout(_, _ int) (int, int) {
	cfg := w.engine.Config()
	return cfg.ScreenWidth * cellW, cfg.ScreenHeight*cellH + hudH
}

// Close silences audio.
func (w *window) Close() {
	w.cues.Cleanup()
}
