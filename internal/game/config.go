package game

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samdwyer/glyphcast/internal/assets"
	"github.com/samdwyer/glyphcast/internal/engine"
	"github.com/samdwyer/glyphcast/internal/world"
)

// Config holds host configuration options.
type Config struct {
	// Map is an embedded map ID, "generated" or "generated:<seed>" for a
	// random map, or a path to a map text file.
	Map string
	// Settings is an optional JSON file overriding engine tuning.
	Settings string
	// FPS is the frame rate of the main loop.
	FPS int
	// Audio enables the wall bump cue.
	Audio  bool
	Volume float64
	// Hold is how long a key counts as held after its last press event.
	Hold time.Duration
}

// DefaultConfig returns the stock host configuration.
func DefaultConfig() Config {
	return Config{
		Map:    assets.DefaultMapID,
		FPS:    30,
		Audio:  true,
		Volume: 0.6,
		Hold:   300 * time.Millisecond,
	}
}

// LoadConfig reads host configuration from environment variables.
// Unparseable values keep their defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if m := os.Getenv("GLYPHCAST_MAP"); m != "" {
		cfg.Map = m
	}
	cfg.Settings = os.Getenv("GLYPHCAST_SETTINGS")

	if fps := os.Getenv("GLYPHCAST_FPS"); fps != "" {
		if val, err := strconv.Atoi(fps); err == nil && val > 0 {
			cfg.FPS = val
		}
	}

	if enabled := os.Getenv("GLYPHCAST_AUDIO"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("GLYPHCAST_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if hold := os.Getenv("GLYPHCAST_HOLD"); hold != "" {
		if val, err := time.ParseDuration(hold); err == nil && val > 0 {
			cfg.Hold = val
		}
	}

	return cfg
}

// Scene is a loaded map with the engine tuning to run it with.
type Scene struct {
	Name   string
	Grid   *world.Grid
	Engine engine.Config
}

// LoadScene resolves the configured map and engine tuning. An embedded map
// supplies its own start pose; the settings file is applied last so it can
// override anything.
func LoadScene(ctx context.Context, cfg Config) (*Scene, error) {
	scene := &Scene{Name: cfg.Map, Engine: engine.DefaultConfig()}

	catalog, err := assets.LoadCatalog()
	if err != nil {
		return nil, err
	}

	if seed, ok, err := generatedSeed(cfg.Map); err != nil {
		return nil, err
	} else if ok {
		gen, err := world.Generate(ctx, world.GeneratedWidth, world.GeneratedHeight, seed)
		if err != nil {
			return nil, err
		}
		cx, cy := gen.Rooms[0].Center()
		scene.Name = fmt.Sprintf("generated:%d", seed)
		scene.Grid = gen.Grid
		scene.Engine.StartX = float64(cx) + 0.5
		scene.Engine.StartY = float64(cy) + 0.5
		scene.Engine.StartHeading = 0
	} else if def := catalog.GetByID(cfg.Map); def != nil {
		grid, err := catalog.Open(ctx, def)
		if err != nil {
			return nil, err
		}
		scene.Name = def.Name
		scene.Grid = grid
		scene.Engine.StartX = def.StartX
		scene.Engine.StartY = def.StartY
		scene.Engine.StartHeading = def.Heading
	} else {
		grid, err := assets.LoadMapFile(ctx, cfg.Map)
		if err != nil {
			return nil, err
		}
		scene.Grid = grid
	}

	if cfg.Settings != "" {
		dir, base := filepath.Split(cfg.Settings)
		if dir == "" {
			dir = "."
		}
		if err := assets.LoadInto(os.DirFS(dir), base, &scene.Engine); err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
	}

	return scene, nil
}

const generatedMap = "generated"

// generatedSeed reports whether name asks for a generated map, and with
// which seed. A bare "generated" picks a seed from the clock.
func generatedSeed(name string) (int64, bool, error) {
	if name == generatedMap {
		return time.Now().UnixNano(), true, nil
	}
	rest, ok := strings.CutPrefix(name, generatedMap+":")
	if !ok {
		return 0, false, nil
	}
	seed, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid map seed %q: %w", rest, err)
	}
	return seed, true, nil
}
