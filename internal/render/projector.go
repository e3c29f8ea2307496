package render

import (
	"math"

	"github.com/samdwyer/glyphcast/internal/raycast"
	"github.com/samdwyer/glyphcast/internal/vmath"
)

// Caster finds the nearest wall along a ray.
type Caster interface {
	Cast(origin, dir vmath.Vec2, maxDistance float64) (raycast.Result, error)
}

// Lens holds the projection constants.
type Lens struct {
	Columns            int     // screen width
	Rows               int     // screen height
	Spread             float64 // lateral ray offset per column
	RayLength          float64 // forward component of every column ray
	MaxDistance        float64 // cast range
	DistanceMultiplier float64 // rows of height lost per world unit of distance
}

// Offset returns the lateral offset of column i. Offsets are linear in the
// column index, not in view angle.
func (l Lens) Offset(i int) float64 {
	return (float64(i) - float64(l.Columns)/2) * l.Spread
}

// Direction returns the ray direction for column i at the given heading.
func (l Lens) Direction(i int, heading float64) vmath.Vec2 {
	return vmath.Vec2{X: l.Offset(i), Y: l.RayLength}.Rotate(heading)
}

// Slice converts a wall distance into a slice height and the number of
// floor rows below it. Height may go negative for distant walls; the offset
// then exceeds half the screen and no wall rows remain.
func (l Lens) Slice(distance float64) (height float64, offset int) {
	rows := float64(l.Rows)
	height = rows - distance*l.DistanceMultiplier
	offset = int(math.RoundToEven((rows - height) / 2))
	return height, offset
}

// Column is the projection of one screen column.
type Column struct {
	Result raycast.Result
	Height float64 // slice height in rows
	Offset int     // floor rows below the slice
}

// Projector casts one ray per screen column. When a cast misses or fails,
// the column keeps its previous result so the view does not flicker.
type Projector struct {
	lens    Lens
	caster  Caster
	columns []Column
	errors  int
}

// NewProjector creates a projector. Every column starts as a miss at the
// maximum distance.
func NewProjector(lens Lens, caster Caster) *Projector {
	p := &Projector{
		lens:    lens,
		caster:  caster,
		columns: make([]Column, lens.Columns),
	}
	for i := range p.columns {
		p.columns[i] = p.column(raycast.Result{Distance: lens.MaxDistance, CellX: -1, CellY: -1})
	}
	return p
}

// Lens returns the projection constants.
func (p *Projector) Lens() Lens {
	return p.lens
}

// Project casts every column from the given position and heading and
// returns the column slice, which is reused between calls.
func (p *Projector) Project(origin vmath.Vec2, heading float64) []Column {
	for i := range p.columns {
		res, err := p.caster.Cast(origin, p.lens.Direction(i, heading), p.lens.MaxDistance)
		if err != nil {
			p.errors++
			continue
		}
		if !res.Hit {
			continue
		}
		p.columns[i] = p.column(res)
	}
	return p.columns
}

// Columns returns the most recent projection.
func (p *Projector) Columns() []Column {
	return p.columns
}

// Errors returns how many casts have failed with a geometry error.
func (p *Projector) Errors() int {
	return p.errors
}

func (p *Projector) column(res raycast.Result) Column {
	height, offset := p.lens.Slice(res.Distance)
	return Column{Result: res, Height: height, Offset: offset}
}
