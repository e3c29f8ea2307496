package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/samdwyer/glyphcast/internal/world"
)

// DefaultMapID is the map used when no other map is configured.
const DefaultMapID = "hall"

// MapDef describes an embedded map and where the viewer starts in it.
type MapDef struct {
	ID      string  `json:"id"`      // Unique identifier (e.g., "hall")
	Name    string  `json:"name"`    // Display name
	File    string  `json:"file"`    // Map text file inside maps/
	StartX  float64 `json:"startX"`  // Start position in world units
	StartY  float64 `json:"startY"`
	Heading float64 `json:"heading"` // Start heading in degrees
}

// CatalogFile represents the structure of maps.json.
type CatalogFile struct {
	Maps []MapDef `json:"maps"`
}

// MapCatalog holds the embedded map definitions.
type MapCatalog struct {
	maps []MapDef
}

// LoadCatalog loads the map catalog from the embedded maps.json.
func LoadCatalog() (*MapCatalog, error) {
	file, err := Load[CatalogFile](mapsFS, "maps/maps.json")
	if err != nil {
		return nil, err
	}
	if len(file.Maps) == 0 {
		return nil, errors.New("no maps listed in maps.json")
	}
	return &MapCatalog{maps: file.Maps}, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *MapCatalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// GetByID returns the map definition with the given ID, or nil if not found.
func (c *MapCatalog) GetByID(id string) *MapDef {
	for i := range c.maps {
		if c.maps[i].ID == id {
			return &c.maps[i]
		}
	}
	return nil
}

// All returns all map definitions.
func (c *MapCatalog) All() []MapDef {
	return c.maps
}

// Count returns the number of maps in the catalog.
func (c *MapCatalog) Count() int {
	return len(c.maps)
}

// Open parses the embedded map text for a definition.
func (c *MapCatalog) Open(ctx context.Context, def *MapDef) (*world.Grid, error) {
	f, err := mapsFS.Open(path.Join("maps", def.File))
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded map %s: %w", def.File, err)
	}
	defer f.Close()

	return world.Load(ctx, def.ID, f)
}

// LoadMapFile parses a map text file from disk.
func LoadMapFile(ctx context.Context, filename string) (*world.Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file: %w", err)
	}
	defer f.Close()

	return world.Load(ctx, filename, f)
}
