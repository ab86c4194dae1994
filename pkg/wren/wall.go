package wren

import "github.com/ChicagoDave/wren/pkg/geo"

// Wall is a rectangular strip running along one edge of an offset polygon.
// Positive distances put the strip on the outer side of a counterclockwise
// edge, negative distances on the inner side.
type Wall struct {
	Distance float64      `json:"distance"`
	Anchor   geo.Point    `json:"anchor"`
	Angle    float64      `json:"angle"`
	Segment  [2]geo.Point `json:"segment"`
	Points   []geo.Point  `json:"points"`
}

// NewWall lays out a strip |distance| wide and as long as segment, starting
// at anchor and rotated to angle.
func NewWall(distance float64, anchor geo.Point, angle float64, segment [2]geo.Point) Wall {
	length := segment[0].Distance(segment[1])
	return Wall{
		Distance: distance,
		Anchor:   anchor,
		Angle:    angle,
		Segment:  segment,
		Points: []geo.Point{
			anchor,
			geo.Displace(anchor, angle, length, 0),
			geo.Displace(anchor, angle, length, -distance),
			geo.Displace(anchor, angle, 0, -distance),
		},
	}
}

// Walls builds one wall per edge of the offset polygon pts. Edge i runs from
// pts[i] to its cyclic successor and is oriented by lines[i].
func Walls(distance float64, pts []geo.Point, lines []Line) [][]geo.Point {
	walls := make([][]geo.Point, 0, len(pts))
	for i, seg := range geo.LoopPairs(pts) {
		walls = append(walls, NewWall(distance, seg[0], lines[i].Angle, seg).Points)
	}
	return walls
}
