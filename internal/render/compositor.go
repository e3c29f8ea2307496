package render

import "github.com/samdwyer/glyphcast/internal/raycast"

// Compositor paints projected columns into the screen grid.
type Compositor struct {
	FloorShade float64 // brightness of the nearest floor row
	SideShade  float64 // multiplier applied to side-facing walls
}

// Compose paints every column and returns how many cells changed.
func (c *Compositor) Compose(g *Grid, columns []Column) int {
	writes := 0
	for i := range columns {
		writes += c.ComposeColumn(g, i, columns[i])
	}
	return writes
}

// ComposeColumn paints one column over the full grid height. Rows below the
// offset are floor, rows above the slice are hidden, and the rows between
// form the wall with edge glyphs on its first and last row.
func (c *Compositor) ComposeColumn(g *Grid, col int, column Column) int {
	rows := g.Height()
	offset := column.Offset
	top := rows - offset
	wall := c.wallShade(column, rows)

	writes := 0
	for row := 0; row < rows; row++ {
		var cell Cell
		switch {
		case row < offset:
			cell = Cell{
				Glyph:   GlyphBlock,
				Surface: SurfaceFloor,
				Shade:   floorShade(offset, row) * c.FloorShade,
				Visible: true,
			}
		case row > top:
			cell = Cell{Glyph: GlyphEmpty}
		default:
			glyph := GlyphBlock
			if row == top {
				glyph = GlyphTop
			} else if row == offset {
				glyph = GlyphBottom
			}
			cell = Cell{Glyph: glyph, Surface: SurfaceWall, Shade: wall, Visible: true}
		}
		if g.Set(col, row, cell) {
			writes++
		}
	}
	return writes
}

// wallShade returns the wall brightness: the slice height as a share of the
// screen, darkened for side faces.
func (c *Compositor) wallShade(column Column, rows int) float64 {
	depth := clamp01(column.Height / float64(rows))
	if column.Result.Axis == raycast.AxisVertical {
		depth *= c.SideShade
	}
	return depth
}

// floorShade fades floor rows from 1 at the bottom of the screen toward 0
// at the wall. A zero offset has no floor rows.
func floorShade(offset, row int) float64 {
	if offset <= 0 {
		return 0
	}
	return float64(offset-row) / float64(offset)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
