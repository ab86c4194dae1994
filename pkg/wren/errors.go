package wren

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolygon is returned for outlines with fewer than three
	// vertices, non-finite coordinates, zero-length edges or zero area.
	ErrInvalidPolygon = errors.New("invalid polygon")

	// ErrDegenerateEdge is returned in strict mode for an edge too short to
	// hold a single sub-point.
	ErrDegenerateEdge = errors.New("degenerate edge")

	// ErrOrientation is returned when the outer offset does not enclose the
	// outline, so inner and outer sides would be swapped.
	ErrOrientation = errors.New("inconsistent offset orientation")

	// ErrInvalidParams is returned for non-positive spacing or widths.
	ErrInvalidParams = errors.New("invalid parameters")
)

// EdgeError ties a failure to one edge of the working polygon.
type EdgeError struct {
	Edge   int
	Length float64
	Err    error
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge %d (length %.3f): %v", e.Edge, e.Length, e.Err)
}

func (e *EdgeError) Unwrap() error { return e.Err }
