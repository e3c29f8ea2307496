package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/glyphcast/internal/player"
	"github.com/samdwyer/glyphcast/internal/render"
	"github.com/samdwyer/glyphcast/internal/vmath"
	"github.com/samdwyer/glyphcast/internal/world"
)

// HUD is the status line drawn under the view.
type HUD struct {
	Pose    player.Pose
	Message string
	Paused  bool
}

// Renderer handles drawing the view to the terminal.
type Renderer struct {
	screen *Screen

	// Top-left corner of the view and its height, set per frame.
	originX, originY int
	rows             int
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the view centred in the terminal with the HUD below it.
// It does not flush; call Show once all layers are drawn.
func (r *Renderer) Render(view *render.Grid, hud HUD) {
	r.screen.Clear()

	tw, th := r.screen.Size()
	r.rows = view.Height()
	r.originX = max(0, (tw-view.Width())/2)
	r.originY = max(0, (th-view.Height()-1)/2)

	view.Present(r)

	status := fmt.Sprintf("x %.2f  y %.2f  heading %5.1f", hud.Pose.Position.X, hud.Pose.Position.Y, hud.Pose.Heading)
	if hud.Paused {
		status += "  [paused]"
	}
	if hud.Message != "" {
		status += "  " + hud.Message
	}
	r.RenderMessage(status, r.originX, r.originY+view.Height())
}

// Draw implements render.Sink. Row 0 of the view is the bottom of the
// screen area.
func (r *Renderer) Draw(col, row int, cell render.Cell) {
	x := r.originX + col
	y := r.originY + (r.rows - 1 - row)
	if !cell.Visible {
		r.screen.SetContent(x, y, ' ', tcell.StyleDefault)
		return
	}
	style := tcell.StyleDefault.
		Foreground(ShadeColor(cell.Shade)).
		Background(tcell.ColorBlack)
	r.screen.SetContent(x, y, cell.Glyph.Rune(), style)
}

// RenderMinimap draws the map in the top-left corner with the viewer and
// the point the centre ray hits. World +Y is drawn upward.
func (r *Renderer) RenderMinimap(m *world.Grid, pose player.Pose, hit vmath.Vec2) {
	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack)
	floorStyle := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)

	toScreen := func(x, y int) (int, int) {
		return x, m.Height() - 1 - y
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			sx, sy := toScreen(x, y)
			if m.IsWall(x, y) {
				r.screen.SetContent(sx, sy, world.TileWall.Rune(), wallStyle)
			} else {
				r.screen.SetContent(sx, sy, world.TileFloor.Rune(), floorStyle)
			}
		}
	}

	hx, hy := toScreen(int(math.Floor(hit.X)), int(math.Floor(hit.Y)))
	if m.InBounds(int(math.Floor(hit.X)), int(math.Floor(hit.Y))) {
		r.screen.SetContent(hx, hy, '*', tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack))
	}

	px, py := toScreen(int(math.Floor(pose.Position.X)), int(math.Floor(pose.Position.Y)))
	viewerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Background(tcell.ColorBlack).
		Bold(true)
	r.screen.SetContent(px, py, headingArrow(pose.Heading), viewerStyle)
}

// RenderMessage writes text starting at (x, y).
func (r *Renderer) RenderMessage(msg string, x, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
		i++
	}
}

// Show flushes everything drawn this frame.
func (r *Renderer) Show() {
	r.screen.Show()
}

// ShadeColor maps a gray level in [0, 1] to a terminal color.
func ShadeColor(shade float64) tcell.Color {
	c := colorful.Color{R: shade, G: shade, B: shade}.Clamped()
	red, green, blue := c.RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}

// headingArrow picks the arrow closest to the heading on a map drawn with
// +Y upward.
func headingArrow(heading float64) rune {
	arrows := [...]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}
	i := int(math.Round(vmath.WrapDegrees(heading)/45)) % len(arrows)
	return arrows[i]
}
