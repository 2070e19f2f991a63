package meanshift

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeSpatialRadius is returned when the spatial radius is below zero.
	ErrNegativeSpatialRadius = errors.New("spatial radius must be greater or equal to zero")

	// ErrNegativeRangeRadius is returned when the range radius is below zero or not a number.
	ErrNegativeRangeRadius = errors.New("range radius must be greater or equal to zero")

	// ErrNegativeMinDensity is returned when the minimum density is below zero.
	ErrNegativeMinDensity = errors.New("minimum density must be greater or equal to zero")

	// ErrInvalidSpeedUp is returned for a speed-up level outside none/medium/high.
	ErrInvalidSpeedUp = errors.New("speedup level must be 0 (none), 1 (medium), or 2 (high)")

	// ErrInvalidConnectivity is returned when connectivity is neither 4 nor 8.
	ErrInvalidConnectivity = errors.New("connectivity must be 4 or 8")

	// ErrUnsupportedChannels is returned for images that are neither grayscale nor RGB.
	ErrUnsupportedChannels = errors.New("image must have 1 (grayscale) or 3 (color) channels")

	// ErrDimensionMismatch is returned when a pixel buffer does not match its dimensions.
	ErrDimensionMismatch = errors.New("pixel buffer does not match image dimensions")
)

// ConfigError reports an invalid segmentation parameter.
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
