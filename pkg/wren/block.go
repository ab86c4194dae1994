package wren

import "github.com/ChicagoDave/wren/pkg/geo"

// Tile is any piece with an outer and an inner boundary that can be chained
// into a closed ring. Outer points run forward along the panel; inner points
// run backward.
type Tile interface {
	OuterPoints() []geo.Point
	InnerPoints() []geo.Point
}

// Block is the tile spanning the fin width over one sub-segment of an edge.
type Block struct {
	Angle      float64   `json:"angle"`
	Anchor     geo.Point `json:"anchor"`
	InnerStart geo.Point `json:"inner_start"`
	InnerEnd   geo.Point `json:"inner_end"`
	OuterEnd   geo.Point `json:"outer_end"`
	OuterStart geo.Point `json:"outer_start"`
}

// NewBlock builds a block from the edge angle and its five boundary points in
// tracing order: the earlier sub-point, the earlier and later inner points,
// then the later and earlier outer points.
func NewBlock(angle float64, anchor, innerStart, innerEnd, outerEnd, outerStart geo.Point) Block {
	return Block{
		Angle:      angle,
		Anchor:     anchor,
		InnerStart: innerStart,
		InnerEnd:   innerEnd,
		OuterEnd:   outerEnd,
		OuterStart: outerStart,
	}
}

func (b Block) OuterPoints() []geo.Point {
	return []geo.Point{b.OuterStart, b.OuterEnd}
}

func (b Block) InnerPoints() []geo.Point {
	return []geo.Point{b.InnerEnd, b.InnerStart}
}

// Points returns the closed outline of the block.
func (b Block) Points() []geo.Point {
	return Ring(b)
}

// Ring chains tiles into one closed boundary: every tile's outer points in
// order, then every tile's inner points with the tiles visited in reverse.
func Ring[T Tile](tiles ...T) []geo.Point {
	var pts []geo.Point
	for _, t := range tiles {
		pts = append(pts, t.OuterPoints()...)
	}
	for i := len(tiles) - 1; i >= 0; i-- {
		pts = append(pts, tiles[i].InnerPoints()...)
	}
	return pts
}
