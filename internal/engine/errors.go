package engine

import (
	"errors"
	"fmt"
)

// Lifecycle and surface errors. Call sites wrap them with context, so test
// for them with errors.Is.
var (
	// ErrAlreadyPlaced is returned when placing a sprite that is not Abstract.
	ErrAlreadyPlaced = errors.New("engine: sprite already placed")

	// ErrNotPlaced is returned by placed-only operations on an Abstract or
	// Zombie sprite.
	ErrNotPlaced = errors.New("engine: sprite not placed")

	// ErrNoActiveScene is returned by implicit placement when the game has
	// no active scene.
	ErrNoActiveScene = errors.New("engine: no active scene")

	// ErrInvalidSurface is returned for surfaces of zero or negative extent.
	ErrInvalidSurface = errors.New("engine: invalid surface")
)

// SurfaceError describes a rejected surface. It unwraps to ErrInvalidSurface.
type SurfaceError struct {
	Width  int
	Height int
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("engine: invalid surface %dx%d", e.Width, e.Height)
}

func (e *SurfaceError) Unwrap() error {
	return ErrInvalidSurface
}
