package world

import "math"

// Box is an axis-aligned wall collider covering one map cell.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// CellBox returns the unit box covering cell (x, y).
func CellBox(x, y int) Box {
	return Box{
		MinX: float64(x),
		MinY: float64(y),
		MaxX: float64(x + 1),
		MaxY: float64(y + 1),
	}
}

// Contains returns true if the point lies inside the box or on its edge.
func (b Box) Contains(px, py float64) bool {
	return px >= b.MinX && px <= b.MaxX && py >= b.MinY && py <= b.MaxY
}

// Hit describes where a ray enters a box.
type Hit struct {
	T      float64 // ray parameter at entry, in units of the direction length
	NX, NY float64 // outward normal of the entered face; zero when the ray starts inside
}

// RayHit returns the first point where the ray origin + t*dir, t in [0, maxT],
// enters the box. Uses the slab method, so the result is exact for any angle.
func (b Box) RayHit(ox, oy, dx, dy, maxT float64) (Hit, bool) {
	tMin := 0.0
	tMax := maxT
	var nx, ny float64

	// X slab
	if math.Abs(dx) < 1e-12 {
		if ox < b.MinX || ox > b.MaxX {
			return Hit{}, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (b.MinX - ox) * invD
		t2 := (b.MaxX - ox) * invD
		face := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			face = 1.0
		}
		if t1 > tMin {
			tMin = t1
			nx, ny = face, 0
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return Hit{}, false
		}
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < b.MinY || oy > b.MaxY {
			return Hit{}, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (b.MinY - oy) * invD
		t2 := (b.MaxY - oy) * invD
		face := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			face = 1.0
		}
		if t1 > tMin {
			tMin = t1
			nx, ny = 0, face
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return Hit{}, false
		}
	}

	if tMax < 0 {
		return Hit{}, false
	}
	return Hit{T: tMin, NX: nx, NY: ny}, true
}

// Colliders is the static set of wall boxes generated from a grid.
type Colliders struct {
	width, height int
	boxes         []Box
	index         []int32 // per cell, -1 when the cell is open
}

// NewColliders builds one box per wall cell.
func NewColliders(g *Grid) *Colliders {
	c := &Colliders{
		width:  g.width,
		height: g.height,
		boxes:  make([]Box, 0, g.WallCount()),
		index:  make([]int32, len(g.tiles)),
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			if g.tiles[i] != TileWall {
				c.index[i] = -1
				continue
			}
			c.index[i] = int32(len(c.boxes))
			c.boxes = append(c.boxes, CellBox(x, y))
		}
	}
	return c
}

// At returns the collider covering cell (x, y), if any.
func (c *Colliders) At(x, y int) (Box, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Box{}, false
	}
	i := c.index[y*c.width+x]
	if i < 0 {
		return Box{}, false
	}
	return c.boxes[i], true
}

// Len returns the number of colliders.
func (c *Colliders) Len() int {
	return len(c.boxes)
}

// Bounds returns the extent of the grid the colliders were built from.
func (c *Colliders) Bounds() (width, height int) {
	return c.width, c.height
}
