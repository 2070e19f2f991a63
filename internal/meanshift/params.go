package meanshift

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SpeedUpLevel trades filtering accuracy for avoided recomputation.
type SpeedUpLevel int

const (
	// SpeedUpNone filters every pixel from its own starting point.
	SpeedUpNone SpeedUpLevel = iota
	// SpeedUpMedium shares one filtering run among near-duplicate adjacent seeds.
	SpeedUpMedium
	// SpeedUpHigh also propagates modes along already processed neighbors.
	SpeedUpHigh
)

func (l SpeedUpLevel) String() string {
	switch l {
	case SpeedUpNone:
		return "none"
	case SpeedUpMedium:
		return "medium"
	case SpeedUpHigh:
		return "high"
	default:
		return fmt.Sprintf("SpeedUpLevel(%d)", int(l))
	}
}

// Valid reports whether l is one of the defined levels.
func (l SpeedUpLevel) Valid() bool {
	return l >= SpeedUpNone && l <= SpeedUpHigh
}

// ParseSpeedUpLevel accepts a level name ("none", "no", "medium", "high")
// or its numeric value ("0", "1", "2"). Matching is case-insensitive.
func ParseSpeedUpLevel(s string) (SpeedUpLevel, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "none", "no":
		return SpeedUpNone, nil
	case "medium", "med":
		return SpeedUpMedium, nil
	case "high":
		return SpeedUpHigh, nil
	}
	if n, err := strconv.Atoi(t); err == nil && SpeedUpLevel(n).Valid() {
		return SpeedUpLevel(n), nil
	}
	return 0, &ConfigError{Field: "speedup level", Value: s, Err: ErrInvalidSpeedUp}
}

// Params holds the caller-owned segmentation parameters.
type Params struct {
	// SpatialRadius is the kernel bandwidth in pixels.
	SpatialRadius int

	// RangeRadius is the kernel bandwidth in range units (intensity for
	// grayscale, scaled L*u*v* for color).
	RangeRadius float64

	// MinDensity is the minimum pixel count of a region after pruning.
	MinDensity int

	// SpeedUp selects the filtering optimization level.
	SpeedUp SpeedUpLevel

	// Connectivity is the pixel neighborhood used for region labeling: 4 or 8.
	// Zero means 8.
	Connectivity int
}

// DefaultParams returns the parameters commonly used for natural images.
func DefaultParams() Params {
	return Params{
		SpatialRadius: 7,
		RangeRadius:   6.5,
		MinDensity:    20,
		SpeedUp:       SpeedUpHigh,
		Connectivity:  8,
	}
}

// Validate checks every field and returns the first *ConfigError found.
func (p Params) Validate() error {
	if p.SpatialRadius < 0 {
		return &ConfigError{Field: "spatial radius", Value: p.SpatialRadius, Err: ErrNegativeSpatialRadius}
	}
	if p.RangeRadius < 0 || math.IsNaN(p.RangeRadius) {
		return &ConfigError{Field: "range radius", Value: p.RangeRadius, Err: ErrNegativeRangeRadius}
	}
	if p.MinDensity < 0 {
		return &ConfigError{Field: "minimum density", Value: p.MinDensity, Err: ErrNegativeMinDensity}
	}
	if !p.SpeedUp.Valid() {
		return &ConfigError{Field: "speedup level", Value: int(p.SpeedUp), Err: ErrInvalidSpeedUp}
	}
	switch p.Connectivity {
	case 0, 4, 8:
	default:
		return &ConfigError{Field: "connectivity", Value: p.Connectivity, Err: ErrInvalidConnectivity}
	}
	return nil
}

func (p Params) connectivity() int {
	if p.Connectivity == 0 {
		return 8
	}
	return p.Connectivity
}
