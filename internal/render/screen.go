// Package render turns per-column ray results into a fixed grid of shaded
// glyph cells.
package render

import "strings"

// Glyph is the symbol shown in a screen cell.
type Glyph int

const (
	// GlyphEmpty is a blank, undrawn cell.
	GlyphEmpty Glyph = iota
	// GlyphBlock is the plain block used for wall bodies and floor.
	GlyphBlock
	// GlyphTop marks the top edge of a wall slice.
	GlyphTop
	// GlyphBottom marks the bottom edge of a wall slice.
	GlyphBottom
)

// Rune returns the display character for the glyph.
func (g Glyph) Rune() rune {
	switch g {
	case GlyphBlock:
		return '■'
	case GlyphTop:
		return '▦'
	case GlyphBottom:
		return '▩'
	default:
		return ' '
	}
}

// String returns a human-readable glyph name.
func (g Glyph) String() string {
	switch g {
	case GlyphEmpty:
		return "empty"
	case GlyphBlock:
		return "block"
	case GlyphTop:
		return "top"
	case GlyphBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Surface tells what a visible cell depicts.
type Surface int

const (
	SurfaceNone Surface = iota
	SurfaceFloor
	SurfaceWall
)

// Cell is one screen position.
type Cell struct {
	Glyph   Glyph
	Surface Surface
	Shade   float64 // gray level in [0, 1]
	Visible bool
}

// Sink is a display that can show screen cells. Row 0 is the bottom of the view.
type Sink interface {
	Draw(col, row int, cell Cell)
}

// Grid is the screen buffer: width x height cells, row-major, allocated once.
type Grid struct {
	width, height int
	cells         []Cell
}

// NewGrid allocates a screen buffer with every cell empty.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the cell at (col, row). Out of range positions read as empty.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return Cell{}
	}
	return g.cells[row*g.width+col]
}

// Set stores a cell and reports whether it changed. Unchanged cells are not
// rewritten.
func (g *Grid) Set(col, row int, c Cell) bool {
	i := row*g.width + col
	if g.cells[i] == c {
		return false
	}
	g.cells[i] = c
	return true
}

// Present draws every cell to the sink.
func (g *Grid) Present(s Sink) {
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			s.Draw(col, row, g.cells[row*g.width+col])
		}
	}
}

// Equal reports whether two grids hold identical cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Text renders the grid top row first, one line per row. Hidden cells are spaces.
func (g *Grid) Text() string {
	var b strings.Builder
	b.Grow((g.width*3 + 1) * g.height)
	for row := g.height - 1; row >= 0; row-- {
		for col := 0; col < g.width; col++ {
			c := g.cells[row*g.width+col]
			if !c.Visible {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(c.Glyph.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
