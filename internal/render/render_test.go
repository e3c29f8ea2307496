package render

import (
	"errors"
	"math"
	"testing"

	"github.com/samdwyer/glyphcast/internal/raycast"
	"github.com/samdwyer/glyphcast/internal/vmath"
)

// stubCaster returns scripted results and records the directions it saw.
type stubCaster struct {
	result raycast.Result
	err    error
	dirs   []vmath.Vec2
}

func (s *stubCaster) Cast(origin, dir vmath.Vec2, maxDistance float64) (raycast.Result, error) {
	s.dirs = append(s.dirs, dir)
	return s.result, s.err
}

func defaultLens() Lens {
	return Lens{
		Columns:            64,
		Rows:               32,
		Spread:             0.2,
		RayLength:          10,
		MaxDistance:        30,
		DistanceMultiplier: 1.3,
	}
}

func TestLensOffsetIsLinear(t *testing.T) {
	l := defaultLens()

	tests := []struct {
		column int
		want   float64
	}{
		{0, -6.4},
		{16, -3.2},
		{32, 0},
		{63, 6.2},
	}
	for _, tt := range tests {
		if got := l.Offset(tt.column); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Offset(%d) = %v, want %v", tt.column, got, tt.want)
		}
	}
}

func TestLensDirectionRotatesWithHeading(t *testing.T) {
	l := defaultLens()

	center := l.Direction(32, 0)
	if center.X != 0 || center.Y != 10 {
		t.Errorf("Direction(32, 0) = %+v, want (0,10)", center)
	}

	// A quarter turn left points the centre ray along -X.
	left := l.Direction(32, 90)
	if math.Abs(left.X+10) > 1e-9 || math.Abs(left.Y) > 1e-9 {
		t.Errorf("Direction(32, 90) = %+v, want (-10,0)", left)
	}

	// Column 0 leans toward -X when facing +Y.
	if d := l.Direction(0, 0); d.X >= 0 {
		t.Errorf("Direction(0, 0).X = %v, want negative", d.X)
	}
}

func TestLensSlice(t *testing.T) {
	l := defaultLens()

	tests := []struct {
		distance   float64
		wantHeight float64
		wantOffset int
	}{
		{0, 32, 0},
		{1, 30.7, 1},
		{5, 25.5, 3}, // 3.25 rounds to 3
		{10, 19, 6},  // 6.5 rounds half to even
		{30, -7, 20}, // negative height, no wall rows
	}
	for _, tt := range tests {
		height, offset := l.Slice(tt.distance)
		if math.Abs(height-tt.wantHeight) > 1e-9 || offset != tt.wantOffset {
			t.Errorf("Slice(%v) = (%v, %d), want (%v, %d)",
				tt.distance, height, offset, tt.wantHeight, tt.wantOffset)
		}
	}
}

func TestSliceMonotonic(t *testing.T) {
	l := defaultLens()

	prevHeight, prevOffset := l.Slice(0)
	for d := 0.05; d <= 30; d += 0.05 {
		height, offset := l.Slice(d)
		if height >= prevHeight {
			t.Fatalf("Slice(%v) height %v did not drop below %v", d, height, prevHeight)
		}
		if offset < prevOffset {
			t.Fatalf("Slice(%v) offset %d dropped below %d", d, offset, prevOffset)
		}
		prevHeight, prevOffset = height, offset
	}
}

func TestProjectorCastsOneRayPerColumn(t *testing.T) {
	caster := &stubCaster{result: raycast.Result{Distance: 4, Hit: true, Axis: raycast.AxisHorizontal}}
	p := NewProjector(defaultLens(), caster)

	cols := p.Project(vmath.Vec2{X: 1, Y: 1}, 0)
	if len(cols) != 64 || len(caster.dirs) != 64 {
		t.Fatalf("columns = %d, casts = %d, want 64 each", len(cols), len(caster.dirs))
	}
	for i, c := range cols {
		if c.Result.Distance != 4 || c.Offset != 3 {
			t.Errorf("column %d = %+v, want distance 4 offset 3", i, c)
		}
	}
}

func TestProjectorKeepsPreviousOnMiss(t *testing.T) {
	caster := &stubCaster{result: raycast.Result{Distance: 2, Hit: true}}
	p := NewProjector(defaultLens(), caster)
	p.Project(vmath.Vec2{X: 1, Y: 1}, 0)

	caster.result = raycast.Result{Distance: 30, Hit: false}
	cols := p.Project(vmath.Vec2{X: 1, Y: 1}, 0)
	if cols[10].Result.Distance != 2 {
		t.Errorf("after miss distance = %v, want retained 2", cols[10].Result.Distance)
	}

	caster.err = &raycast.GeometryError{Reason: "test"}
	cols = p.Project(vmath.Vec2{X: 1, Y: 1}, 0)
	if cols[10].Result.Distance != 2 {
		t.Errorf("after error distance = %v, want retained 2", cols[10].Result.Distance)
	}
	if p.Errors() != 64 {
		t.Errorf("Errors() = %d, want 64", p.Errors())
	}
}

func TestProjectorStartsAtMaxDistance(t *testing.T) {
	p := NewProjector(defaultLens(), &stubCaster{err: errors.New("unused")})
	for i, c := range p.Columns() {
		if c.Result.Hit || c.Result.Distance != 30 {
			t.Fatalf("initial column %d = %+v, want miss at 30", i, c.Result)
		}
	}
}

func composeAt(distance float64, axis raycast.Axis) (*Grid, Column) {
	l := defaultLens()
	height, offset := l.Slice(distance)
	col := Column{
		Result: raycast.Result{Distance: distance, Hit: true, Axis: axis},
		Height: height,
		Offset: offset,
	}
	g := NewGrid(1, l.Rows)
	c := &Compositor{FloorShade: 0.4, SideShade: 0.75}
	c.ComposeColumn(g, 0, col)
	return g, col
}

func TestComposeColumnBands(t *testing.T) {
	g, col := composeAt(10, raycast.AxisHorizontal) // offset 6, top 26

	for row := 0; row < g.Height(); row++ {
		cell := g.At(0, row)
		switch {
		case row < col.Offset:
			if cell.Surface != SurfaceFloor || !cell.Visible {
				t.Errorf("row %d = %+v, want visible floor", row, cell)
			}
		case row > 32-col.Offset:
			if cell.Visible || cell.Glyph != GlyphEmpty {
				t.Errorf("row %d = %+v, want hidden", row, cell)
			}
		default:
			if cell.Surface != SurfaceWall {
				t.Errorf("row %d = %+v, want wall", row, cell)
			}
		}
	}

	if got := g.At(0, 6).Glyph; got != GlyphBottom {
		t.Errorf("row 6 glyph = %v, want bottom", got)
	}
	if got := g.At(0, 26).Glyph; got != GlyphTop {
		t.Errorf("row 26 glyph = %v, want top", got)
	}
	if got := g.At(0, 15).Glyph; got != GlyphBlock {
		t.Errorf("row 15 glyph = %v, want block", got)
	}
}

func TestComposeShading(t *testing.T) {
	front, col := composeAt(10, raycast.AxisHorizontal)
	side, _ := composeAt(10, raycast.AxisVertical)

	depth := col.Height / 32
	if got := front.At(0, 15).Shade; math.Abs(got-depth) > 1e-9 {
		t.Errorf("front wall shade = %v, want %v", got, depth)
	}
	if got := side.At(0, 15).Shade; math.Abs(got-depth*0.75) > 1e-9 {
		t.Errorf("side wall shade = %v, want %v", got, depth*0.75)
	}

	// Floor fades from the bottom row toward the wall.
	if got := front.At(0, 0).Shade; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("bottom floor shade = %v, want 0.4", got)
	}
	if a, b := front.At(0, 1).Shade, front.At(0, 5).Shade; a <= b {
		t.Errorf("floor shade should fade upward, row1 %v row5 %v", a, b)
	}
}

func TestComposeZeroOffset(t *testing.T) {
	g, _ := composeAt(0, raycast.AxisHorizontal)

	// Whole column is wall, bottom edge on row 0, no top edge on screen.
	if got := g.At(0, 0).Glyph; got != GlyphBottom {
		t.Errorf("row 0 glyph = %v, want bottom", got)
	}
	for row := 0; row < g.Height(); row++ {
		cell := g.At(0, row)
		if cell.Surface != SurfaceWall || math.IsNaN(cell.Shade) {
			t.Errorf("row %d = %+v, want wall", row, cell)
		}
	}
	if floorShade(0, 0) != 0 {
		t.Error("floorShade(0, 0) should be 0")
	}
}

func TestComposeFarWallHasNoWallRows(t *testing.T) {
	g, _ := composeAt(30, raycast.AxisHorizontal)

	for row := 0; row < g.Height(); row++ {
		cell := g.At(0, row)
		if cell.Surface == SurfaceWall {
			t.Errorf("row %d is wall, want none", row)
		}
		if cell.Shade < 0 || cell.Shade > 1 {
			t.Errorf("row %d shade %v out of range", row, cell.Shade)
		}
	}
}

func TestComposeIdempotent(t *testing.T) {
	caster := &stubCaster{result: raycast.Result{Distance: 7, Hit: true, Axis: raycast.AxisVertical}}
	p := NewProjector(defaultLens(), caster)
	cols := p.Project(vmath.Vec2{X: 1, Y: 1}, 0)

	g := NewGrid(64, 32)
	c := &Compositor{FloorShade: 0.4, SideShade: 0.75}
	if writes := c.Compose(g, cols); writes == 0 {
		t.Fatal("first Compose() wrote nothing")
	}
	first := g.Clone()

	if writes := c.Compose(g, cols); writes != 0 {
		t.Errorf("second Compose() wrote %d cells, want 0", writes)
	}
	if !g.Equal(first) {
		t.Error("second Compose() changed the grid")
	}
}

type recordingSink struct {
	cells map[[2]int]Cell
}

func (r *recordingSink) Draw(col, row int, cell Cell) {
	r.cells[[2]int{col, row}] = cell
}

func TestGridPresentAndText(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, Cell{Glyph: GlyphBottom, Visible: true})
	g.Set(1, 1, Cell{Glyph: GlyphTop, Visible: true})

	sink := &recordingSink{cells: make(map[[2]int]Cell)}
	g.Present(sink)
	if len(sink.cells) != 4 {
		t.Errorf("Present() drew %d cells, want 4", len(sink.cells))
	}

	// Top row first.
	if got, want := g.Text(), " ▦\n▩ \n"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if g.Set(0, 0, Cell{Glyph: GlyphBottom, Visible: true}) {
		t.Error("Set() with an identical cell should report no change")
	}
	if (g.At(-1, 0) != Cell{}) {
		t.Error("At() out of range should be empty")
	}
}

func TestGlyphString(t *testing.T) {
	tests := []struct {
		glyph    Glyph
		expected string
	}{
		{GlyphEmpty, "empty"},
		{GlyphBlock, "block"},
		{GlyphTop, "top"},
		{GlyphBottom, "bottom"},
		{Glyph(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.glyph.String(); got != tt.expected {
			t.Errorf("Glyph(%d).String() = %q, want %q", tt.glyph, got, tt.expected)
		}
	}
}
