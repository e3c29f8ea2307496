package world

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphcast/internal/telemetry"
)

// ErrOutOfBounds is returned when a cell lookup falls outside the grid.
var ErrOutOfBounds = errors.New("cell out of bounds")

// MapFormatError describes malformed map text.
type MapFormatError struct {
	Line   int // 1-based line number, 0 when the error is not tied to a line
	Column int // 1-based column, 0 when the error is not tied to a character
	Reason string
}

func (e *MapFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("map format: line %d column %d: %s", e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("map format: line %d: %s", e.Line, e.Reason)
	default:
		return "map format: " + e.Reason
	}
}

// Grid is an immutable rectangular tile map.
type Grid struct {
	width  int
	height int
	tiles  []Tile // row-major, y*width + x
}

// Parse reads map text: one row per line, '#' for walls and '.' for floor.
// Trailing carriage returns and a final empty line are ignored.
func Parse(r io.Reader) (*Grid, error) {
	var (
		width int
		tiles []Tile
		rows  int
		blank int // line of the first blank line seen
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			if blank == 0 {
				blank = line
			}
			continue
		}
		// Blank lines are only allowed at the end.
		if blank > 0 {
			return nil, &MapFormatError{Line: blank, Reason: "blank line inside map"}
		}

		runes := []rune(text)
		if rows == 0 {
			width = len(runes)
		} else if len(runes) != width {
			return nil, &MapFormatError{
				Line:   line,
				Reason: fmt.Sprintf("row has %d cells, want %d", len(runes), width),
			}
		}

		for i, ch := range runes {
			tile, ok := parseTile(ch)
			if !ok {
				return nil, &MapFormatError{
					Line:   line,
					Column: i + 1,
					Reason: fmt.Sprintf("invalid character %q", ch),
				}
			}
			tiles = append(tiles, tile)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}

	if rows == 0 {
		return nil, &MapFormatError{Reason: "map is empty"}
	}

	return &Grid{width: width, height: rows, tiles: tiles}, nil
}

// ParseString is Parse over an in-memory map.
func ParseString(text string) (*Grid, error) {
	return Parse(strings.NewReader(text))
}

// Load parses a map and records a trace span describing it.
func Load(ctx context.Context, name string, r io.Reader) (*Grid, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.load")
	defer span.End()

	g, err := Parse(r)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load map %s: %w", name, err)
	}

	span.SetAttributes(
		attribute.String("map.name", name),
		attribute.Int("map.width", g.width),
		attribute.Int("map.height", g.height),
		attribute.Int("map.walls", g.WallCount()),
	)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if the cell coordinates are inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the tile at the given cell.
func (g *Grid) Cell(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("cell (%d,%d) in %dx%d map: %w", x, y, g.width, g.height, ErrOutOfBounds)
	}
	return g.tiles[y*g.width+x], nil
}

// IsWall reports whether the cell blocks movement and rays.
// Cells outside the grid count as walls.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.tiles[y*g.width+x] == TileWall
}

// IsPassable returns true if the given cell can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	return !g.IsWall(x, y)
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, t := range g.tiles {
		if t == TileWall {
			n++
		}
	}
	return n
}

// String renders the grid back to its text form.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.tiles[y*g.width+x].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
