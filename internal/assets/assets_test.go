package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if catalog.Count() != 2 {
		t.Errorf("Expected 2 maps, got %d", catalog.Count())
	}

	hall := catalog.GetByID(DefaultMapID)
	if hall == nil {
		t.Fatal("Default map not found by ID")
	}
	if hall.StartX != 15.5 || hall.StartY != 7.5 || hall.Heading != 0 {
		t.Errorf("hall start = (%v,%v,%v), want (15.5,7.5,0)", hall.StartX, hall.StartY, hall.Heading)
	}

	if catalog.GetByID("missing") != nil {
		t.Error("GetByID(missing) should return nil")
	}
}

func TestEmbeddedMapsParse(t *testing.T) {
	catalog := MustLoadCatalog()
	ctx := context.Background()

	for _, def := range catalog.All() {
		def := def
		grid, err := catalog.Open(ctx, &def)
		if err != nil {
			t.Errorf("Open(%s) error: %v", def.ID, err)
			continue
		}

		// Every start pose must sit on open floor.
		if !grid.IsPassable(int(def.StartX), int(def.StartY)) {
			t.Errorf("map %s start (%v,%v) is not on floor", def.ID, def.StartX, def.StartY)
		}
	}
}

func TestHallDimensions(t *testing.T) {
	catalog := MustLoadCatalog()
	grid, err := catalog.Open(context.Background(), catalog.GetByID("hall"))
	if err != nil {
		t.Fatalf("Open(hall) error: %v", err)
	}
	if grid.Width() != 32 || grid.Height() != 32 {
		t.Errorf("hall size = %dx%d, want 32x32", grid.Width(), grid.Height())
	}
}

func TestLoadMapFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "room.txt")
	if err := os.WriteFile(name, []byte("####\n#..#\n####\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	grid, err := LoadMapFile(context.Background(), name)
	if err != nil {
		t.Fatalf("LoadMapFile() error: %v", err)
	}
	if grid.Width() != 4 || grid.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", grid.Width(), grid.Height())
	}

	if _, err := LoadMapFile(context.Background(), filepath.Join(dir, "nope.txt")); err == nil {
		t.Error("LoadMapFile(missing) should fail")
	}
}

func TestLoadIntoKeepsMissingFields(t *testing.T) {
	type settings struct {
		Speed float64 `json:"speed"`
		Turn  float64 `json:"turn"`
	}

	fsys := fstest.MapFS{
		"s.json":   {Data: []byte(`{"speed": 5}`)},
		"bad.json": {Data: []byte(`{"speed": `)},
	}

	s := settings{Speed: 3, Turn: 90}
	if err := LoadInto(fsys, "s.json", &s); err != nil {
		t.Fatalf("LoadInto() error: %v", err)
	}
	if s.Speed != 5 || s.Turn != 90 {
		t.Errorf("LoadInto() = %+v, want {Speed:5 Turn:90}", s)
	}

	if err := LoadInto(fsys, "bad.json", &s); err == nil {
		t.Error("LoadInto(bad.json) should fail")
	}
	if _, err := Load[settings](fsys, "missing.json"); err == nil {
		t.Error("Load(missing.json) should fail")
	}
}
