package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphcast/internal/telemetry"
)

const (
	// Default generated map dimensions
	GeneratedWidth  = 40
	GeneratedHeight = 40

	// BSP parameters
	minRoomSize = 4
	maxRoomSize = 9
	minLeafSize = 6
)

// Room is a rectangular open area carved by the generator.
type Room struct {
	X, Y          int // Lowest corner cell
	Width, Height int
}

// Center returns the cell at the middle of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given cell is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Generated is a procedurally built map and its rooms. Rooms[0] is a
// good place to start.
type Generated struct {
	Grid  *Grid
	Rooms []Room
}

// generator carves rooms and corridors into a wall-filled grid.
type generator struct {
	width, height int
	tiles         []Tile
	rooms         []Room
	rng           *rand.Rand
}

// Generate builds a walled map of rooms joined by corridors using binary
// space partitioning. The same seed always yields the same map.
func Generate(ctx context.Context, width, height int, seed int64) (*Generated, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	if width < minLeafSize+2 || height < minLeafSize+2 {
		err := fmt.Errorf("generated map %dx%d is smaller than %dx%d", width, height, minLeafSize+2, minLeafSize+2)
		span.RecordError(err)
		return nil, err
	}

	startTime := time.Now()

	gen := &generator{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
		rng:    rand.New(rand.NewSource(seed)),
	}
	for i := range gen.tiles {
		gen.tiles[i] = TileWall
	}

	// Leave the border solid
	root := &bspNode{x: 1, y: 1, width: width - 2, height: height - 2}
	gen.splitNode(root)
	gen.createRooms(root)
	gen.connectRooms(root)

	span.SetAttributes(
		attribute.Int64("map.seed", seed),
		attribute.Int("map.width", width),
		attribute.Int("map.height", height),
		attribute.Int("map.room_count", len(gen.rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return &Generated{
		Grid:  &Grid{width: width, height: height, tiles: gen.tiles},
		Rooms: gen.rooms,
	}, nil
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a node along its longer side.
func (g *generator) splitNode(node *bspNode) {
	var splitY bool
	switch {
	case node.width > node.height && node.width >= minLeafSize*2:
		splitY = false
	case node.height >= minLeafSize*2:
		splitY = true
	case node.width >= minLeafSize*2:
		splitY = false
	default:
		return
	}

	size := node.width
	if splitY {
		size = node.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi < lo {
		return
	}
	pos := lo + g.rng.Intn(hi-lo+1)

	if splitY {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: pos}
		node.right = &bspNode{x: node.x, y: node.y + pos, width: node.width, height: node.height - pos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: pos, height: node.height}
		node.right = &bspNode{x: node.x + pos, y: node.y, width: node.width - pos, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createRooms places one room inside each leaf.
func (g *generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	w := min(minRoomSize+g.rng.Intn(min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1)), node.width-2)
	h := min(minRoomSize+g.rng.Intn(min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1)), node.height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}

	room := Room{
		X:      node.x + 1 + g.rng.Intn(node.width-w-1),
		Y:      node.y + 1 + g.rng.Intn(node.height-h-1),
		Width:  w,
		Height: h,
	}
	node.room = &room
	g.rooms = append(g.rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(x, y)
		}
	}
}

// connectRooms joins a room from each half of every split.
func (g *generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectRooms(node.left)
	g.connectRooms(node.right)

	a, b := anyRoom(node.left), anyRoom(node.right)
	if a == nil || b == nil {
		return
	}

	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if g.rng.Intn(2) == 0 {
		g.carveRun(x1, x2, y1, true)
		g.carveRun(y1, y2, x2, false)
	} else {
		g.carveRun(y1, y2, x1, false)
		g.carveRun(x1, x2, y2, true)
	}
}

func anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := anyRoom(node.left); room != nil {
		return room
	}
	return anyRoom(node.right)
}

// carveRun opens a straight corridor from a to b along x (alongX) or y,
// at the fixed coordinate at.
func (g *generator) carveRun(a, b, at int, alongX bool) {
	if a > b {
		a, b = b, a
	}
	for i := a; i <= b; i++ {
		if alongX {
			g.carve(i, at)
		} else {
			g.carve(at, i)
		}
	}
}

// carve opens a cell unless it is on the border.
func (g *generator) carve(x, y int) {
	if x > 0 && x < g.width-1 && y > 0 && y < g.height-1 {
		g.tiles[y*g.width+x] = TileFloor
	}
}
