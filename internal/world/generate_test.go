package world

import (
	"context"
	"testing"
)

func TestGenerateReproducibility(t *testing.T) {
	ctx := context.Background()
	g1, err := Generate(ctx, GeneratedWidth, GeneratedHeight, 12345)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	g2, err := Generate(ctx, GeneratedWidth, GeneratedHeight, 12345)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(g1.Rooms) != len(g2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(g1.Rooms), len(g2.Rooms))
	}
	for i := range g1.Rooms {
		if g1.Rooms[i] != g2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, g1.Rooms[i], g2.Rooms[i])
		}
	}
	if g1.Grid.String() != g2.Grid.String() {
		t.Error("same seed should give identical tiles")
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	ctx := context.Background()
	g1, _ := Generate(ctx, GeneratedWidth, GeneratedHeight, 12345)
	g2, _ := Generate(ctx, GeneratedWidth, GeneratedHeight, 54321)

	if g1.Grid.String() == g2.Grid.String() {
		t.Error("maps with different seeds should not be identical")
	}
}

func TestGenerateShape(t *testing.T) {
	gen, err := Generate(context.Background(), 30, 20, 7)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	g := gen.Grid

	if g.Width() != 30 || g.Height() != 20 {
		t.Fatalf("size = %dx%d, want 30x20", g.Width(), g.Height())
	}
	if len(gen.Rooms) == 0 {
		t.Fatal("expected at least one room")
	}

	// Border stays solid.
	for x := 0; x < g.Width(); x++ {
		if !g.IsWall(x, 0) || !g.IsWall(x, g.Height()-1) {
			t.Errorf("border column %d is open", x)
		}
	}
	for y := 0; y < g.Height(); y++ {
		if !g.IsWall(0, y) || !g.IsWall(g.Width()-1, y) {
			t.Errorf("border row %d is open", y)
		}
	}

	for i, r := range gen.Rooms {
		cx, cy := r.Center()
		if !r.Contains(cx, cy) {
			t.Errorf("room %d does not contain its centre", i)
		}
		if !g.IsPassable(cx, cy) {
			t.Errorf("room %d centre (%d,%d) is a wall", i, cx, cy)
		}
	}
}

func TestGenerateConnected(t *testing.T) {
	gen, err := Generate(context.Background(), GeneratedWidth, GeneratedHeight, 99)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	g := gen.Grid

	sx, sy := gen.Rooms[0].Center()
	seen := map[[2]int]bool{{sx, sy}: true}
	queue := [][2]int{{sx, sy}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := [2]int{c[0] + d[0], c[1] + d[1]}
			if !seen[n] && g.IsPassable(n[0], n[1]) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}

	floor := g.Width()*g.Height() - g.WallCount()
	if len(seen) != floor {
		t.Errorf("reached %d of %d floor cells from the start room", len(seen), floor)
	}
}

func TestGenerateTooSmall(t *testing.T) {
	if _, err := Generate(context.Background(), 5, 20, 1); err == nil {
		t.Error("Generate() on a 5-wide map should fail")
	}
}

func TestRoomContains(t *testing.T) {
	r := Room{X: 2, Y: 3, Width: 4, Height: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
