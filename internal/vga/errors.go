package vga

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the surface.
	ErrOutOfBounds = errors.New("vga: coordinates out of bounds")
	// ErrNotInitialized is returned for writes before Initialize.
	ErrNotInitialized = errors.New("vga: driver not initialized")
	// ErrInvalidColor is returned for colour values outside the 16-entry set.
	ErrInvalidColor = errors.New("vga: invalid colour")
	// ErrInvalidGeometry is returned for surfaces with a zero dimension.
	ErrInvalidGeometry = errors.New("vga: invalid surface geometry")
)

// BoundsError describes a coordinate that fell outside the surface.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("vga: cell (%d,%d) outside %dx%d surface", e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
