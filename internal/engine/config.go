package engine

import (
	"errors"
	"fmt"
	"math"
)

// Config holds engine tuning. JSON tags allow partial overrides from a
// settings file.
type Config struct {
	// Screen size in cells.
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`

	// Projection.
	DistanceMultiplier float64 `json:"distanceMultiplier"` // rows lost per world unit
	MaxDistance        float64 `json:"maxDistance"`        // ray range
	Spread             float64 `json:"spread"`             // lateral offset per column
	RayLength          float64 `json:"rayLength"`          // forward component of column rays

	// Shading.
	FloorShade float64 `json:"floorShade"`
	SideShade  float64 `json:"sideShade"`

	// Movement.
	MoveSpeed    float64 `json:"moveSpeed"`    // world units per second
	TurnSpeed    float64 `json:"turnSpeed"`    // degrees per second
	SafetyMargin float64 `json:"safetyMargin"` // minimum distance to a wall after a move

	// Start pose.
	StartX       float64 `json:"startX"`
	StartY       float64 `json:"startY"`
	StartHeading float64 `json:"startHeading"`
}

// DefaultConfig returns the stock tuning for the 32x32 hall map.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:        64,
		ScreenHeight:       32,
		DistanceMultiplier: 1.3,
		MaxDistance:        30,
		Spread:             0.2,
		RayLength:          10,
		FloorShade:         0.4,
		SideShade:          0.75,
		MoveSpeed:          3,
		TurnSpeed:          90,
		SafetyMargin:       0.5,
		StartX:             15.5,
		StartY:             7.5,
		StartHeading:       0,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.ScreenWidth, c.ScreenHeight))
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"distanceMultiplier", c.DistanceMultiplier},
		{"maxDistance", c.MaxDistance},
		{"rayLength", c.RayLength},
	}
	for _, p := range positive {
		if !finite(p.value) || p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", p.name, p.value))
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"spread", c.Spread},
		{"moveSpeed", c.MoveSpeed},
		{"turnSpeed", c.TurnSpeed},
		{"safetyMargin", c.SafetyMargin},
	}
	for _, p := range nonNegative {
		if !finite(p.value) || p.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", p.name, p.value))
		}
	}

	for _, p := range []struct {
		name  string
		value float64
	}{{"floorShade", c.FloorShade}, {"sideShade", c.SideShade}} {
		if !finite(p.value) || p.value < 0 || p.value > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", p.name, p.value))
		}
	}

	if !finite(c.StartX) || !finite(c.StartY) || !finite(c.StartHeading) {
		errs = append(errs, errors.New("start pose must be finite"))
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
