// Package wren decomposes a panel outline into the pieces needed to build it:
// blocks along every edge, corner joints at every vertex, and the reinforcer,
// fin piece and wall outlines derived from them.
//
// Outlines are normalized to counterclockwise winding with Y up; "inner"
// means the left side of each directed edge and "outer" the right side.
package wren

import (
	"fmt"
	"log/slog"

	"github.com/ChicagoDave/wren/pkg/geo"
)

// Default layout parameters.
const (
	DefaultPointDistance = 15.0
	DefaultFinHalfWidth  = 12.5
	DefaultWallThickness = 3.0
)

// Params controls the decomposition.
type Params struct {
	// PointDistance is the spacing between sub-points along an edge.
	PointDistance float64 `json:"point_distance"`
	// FinHalfWidth is how far the inner and outer sides sit from the outline.
	FinHalfWidth float64 `json:"fin_half_width"`
	// WallThickness is the width of the inner and outer walls.
	WallThickness float64 `json:"wall_thickness"`
	// Strict rejects outlines with edges too short to carry a block instead
	// of leaving those edges empty.
	Strict bool `json:"strict"`
}

// DefaultParams returns the standard panel parameters.
func DefaultParams() Params {
	return Params{
		PointDistance: DefaultPointDistance,
		FinHalfWidth:  DefaultFinHalfWidth,
		WallThickness: DefaultWallThickness,
	}
}

// Validate checks that all distances are positive.
func (p Params) Validate() error {
	switch {
	case !(p.PointDistance > 0):
		return fmt.Errorf("%w: point distance must be > 0, got %v", ErrInvalidParams, p.PointDistance)
	case !(p.FinHalfWidth > 0):
		return fmt.Errorf("%w: fin half-width must be > 0, got %v", ErrInvalidParams, p.FinHalfWidth)
	case !(p.WallThickness > 0):
		return fmt.Errorf("%w: wall thickness must be > 0, got %v", ErrInvalidParams, p.WallThickness)
	}
	return nil
}

// lengthTolerance absorbs floating-point noise in edge lengths, so an edge
// measuring 2 x PointDistance plus rounding error is still degenerate.
const lengthTolerance = 1e-9

// CarriesBlocks reports whether an edge of the given length gets at least
// one sub-point on each side of its midpoint.
func (p Params) CarriesBlocks(length float64) bool {
	return p.PointDistance < length/2-lengthTolerance
}

// Wren is the complete decomposition of one outline. It is computed once by
// New and never changes afterwards.
type Wren struct {
	Params Params `json:"params"`

	// Points is the outline after winding normalization.
	Points []geo.Point `json:"points"`
	// DisplayPoints is Points moved into top-left-origin display space. It
	// is for presentation only and feeds nothing else.
	DisplayPoints []geo.Point `json:"display_points"`

	OuterPoints []geo.Point `json:"outer_points"`
	InnerPoints []geo.Point `json:"inner_points"`

	Lines []Line `json:"lines"`

	Reinforcers [][]geo.Point `json:"reinforcers"`
	FinPieces   [][]geo.Point `json:"fin_pieces"`
	OuterWalls  [][]geo.Point `json:"outer_walls"`
	InnerWalls  [][]geo.Point `json:"inner_walls"`

	// DegenerateEdges lists the lines too short to carry any sub-points.
	DegenerateEdges []int `json:"degenerate_edges,omitempty"`
}

// New decomposes the outline pts. The outline is implicitly closed and may
// use either winding.
func New(pts []geo.Point, params Params) (*Wren, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	raw := geo.NewPolygon(pts...)
	if err := checkOutline(raw); err != nil {
		return nil, err
	}

	working := geo.Offset(raw, 0)
	w := &Wren{
		Params:        params,
		Points:        working.Vertices,
		DisplayPoints: geo.FlipToDisplay(working.Bounds(), working.Vertices),
	}

	outer := geo.Offset(raw, params.FinHalfWidth)
	inner := geo.Offset(raw, -params.FinHalfWidth)
	if outer.SignedArea() <= working.SignedArea() {
		return nil, fmt.Errorf("%w: outer offset area %.3f does not exceed outline area %.3f",
			ErrOrientation, outer.SignedArea(), working.SignedArea())
	}
	w.OuterPoints = outer.Vertices
	w.InnerPoints = inner.Vertices

	if err := w.calculateLines(); err != nil {
		return nil, err
	}
	w.calculateCorners()
	w.Reinforcers = w.calculateReinforcers()
	w.FinPieces = w.calculateFinPieces()
	w.OuterWalls = Walls(params.WallThickness, w.OuterPoints, w.Lines)
	w.InnerWalls = Walls(-params.WallThickness, w.InnerPoints, w.Lines)

	Logger().Debug("wren: decomposed outline",
		slog.Int("edges", len(w.Lines)),
		slog.Int("blocks", w.BlockCount()),
		slog.Any("degenerate_edges", w.DegenerateEdges))
	return w, nil
}

// checkOutline rejects outlines the decomposition cannot work with.
func checkOutline(p geo.Polygon) error {
	if p.Len() < 3 {
		return fmt.Errorf("%w: need at least 3 points, got %d", ErrInvalidPolygon, p.Len())
	}
	for i, v := range p.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidPolygon, i)
		}
	}
	for i := range p.Vertices {
		if a, b := p.Edge(i); a.Distance(b) < 1e-9 {
			return &EdgeError{Edge: i, Err: fmt.Errorf("%w: coincident consecutive points", ErrInvalidPolygon)}
		}
	}
	if p.Area() < 1e-9 {
		return fmt.Errorf("%w: outline has zero area", ErrInvalidPolygon)
	}
	return nil
}

func (w *Wren) calculateLines() error {
	n := len(w.Points)
	w.Lines = make([]Line, 0, n)
	for i, pair := range geo.LoopPairs(w.Points) {
		l := newLine(i, pair[0], pair[1], w.Params)
		if l.IsDegenerate() {
			if w.Params.Strict {
				return &EdgeError{Edge: i, Length: l.Length, Err: ErrDegenerateEdge}
			}
			Logger().Warn("wren: edge too short for blocks",
				slog.Int("edge", i),
				slog.Float64("length", l.Length),
				slog.Float64("min_length", 2*w.Params.PointDistance))
			w.DegenerateEdges = append(w.DegenerateEdges, i)
		}
		w.Lines = append(w.Lines, l)
	}
	return nil
}

// calculateCorners assigns every line the corner at its end vertex.
func (w *Wren) calculateCorners() {
	fw := w.Params.FinHalfWidth
	n := len(w.Lines)
	for i := range w.Lines {
		curr, next := &w.Lines[i], w.Lines[geo.Wrap(i+1, n)]
		vertex := geo.Wrap(i+1, n)
		c := NewCorner(
			curr.tailOuter(fw),
			w.OuterPoints[vertex],
			next.headOuter(fw),
			next.headInner(fw),
			w.InnerPoints[vertex],
			curr.tailInner(fw),
		)
		curr.Corner = &c
	}
}

// calculateReinforcers spans every vertex with the last two blocks before
// it, its corner, and the first two blocks after it.
func (w *Wren) calculateReinforcers() [][]geo.Point {
	n := len(w.Lines)
	loops := make([][]geo.Point, 0, n)
	for i := range w.Lines {
		curr, next := w.Lines[i], w.Lines[geo.Wrap(i+1, n)]
		var tiles []Tile
		for _, b := range geo.Tail(curr.Blocks, 2) {
			tiles = append(tiles, b)
		}
		tiles = append(tiles, *curr.Corner)
		for _, b := range geo.Head(next.Blocks, 2) {
			tiles = append(tiles, b)
		}
		loops = append(loops, Ring(tiles...))
	}
	return loops
}

// calculateFinPieces makes one ring per line out of all its blocks. Lines
// without blocks get an empty ring so indexes stay aligned with Lines.
func (w *Wren) calculateFinPieces() [][]geo.Point {
	loops := make([][]geo.Point, 0, len(w.Lines))
	for _, l := range w.Lines {
		loops = append(loops, Ring(l.Blocks...))
	}
	return loops
}

// Polygon returns the normalized outline.
func (w *Wren) Polygon() geo.Polygon {
	return geo.NewPolygon(w.Points...)
}

// BlockCount returns the number of blocks over all lines.
func (w *Wren) BlockCount() int {
	total := 0
	for _, l := range w.Lines {
		total += len(l.Blocks)
	}
	return total
}

// SubPointCount returns the number of sub-points over all lines.
func (w *Wren) SubPointCount() int {
	total := 0
	for _, l := range w.Lines {
		total += len(l.SubPoints)
	}
	return total
}
