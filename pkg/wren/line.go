package wren

import (
	"slices"

	"github.com/ChicagoDave/wren/pkg/geo"
)

// Line is one edge of the working polygon and everything laid out along it.
type Line struct {
	Index  int       `json:"index"`
	Start  geo.Point `json:"start"`
	End    geo.Point `json:"end"`
	Angle  float64   `json:"angle"`
	Length float64   `json:"length"`

	// SubPoints are spaced PointDistance apart, walking in from both ends
	// toward the midpoint. InnerSubPoints and OuterSubPoints are the same
	// points pushed FinHalfWidth to the inner and outer side.
	SubPoints      []geo.Point `json:"sub_points"`
	InnerSubPoints []geo.Point `json:"inner_sub_points"`
	OuterSubPoints []geo.Point `json:"outer_sub_points"`

	Blocks []Block `json:"blocks"`

	// Corner joins this line to the next one; set once all lines exist.
	Corner *Corner `json:"corner,omitempty"`
}

func newLine(index int, start, end geo.Point, p Params) Line {
	l := Line{
		Index:  index,
		Start:  start,
		End:    end,
		Angle:  start.AngleTo(end),
		Length: start.Distance(end),
	}

	l.SubPoints = subPoints(start, end, l.Length, p.PointDistance)
	l.InnerSubPoints = make([]geo.Point, len(l.SubPoints))
	l.OuterSubPoints = make([]geo.Point, len(l.SubPoints))
	for i, sp := range l.SubPoints {
		l.InnerSubPoints[i] = geo.Displace(sp, l.Angle, 0, p.FinHalfWidth)
		l.OuterSubPoints[i] = geo.Displace(sp, l.Angle, 0, -p.FinHalfWidth)
	}

	if n := len(l.SubPoints); n > 1 {
		l.Blocks = make([]Block, 0, n-1)
		for i := 0; i < n-1; i++ {
			l.Blocks = append(l.Blocks, NewBlock(l.Angle,
				l.SubPoints[i],
				l.InnerSubPoints[i],
				l.InnerSubPoints[i+1],
				l.OuterSubPoints[i+1],
				l.OuterSubPoints[i],
			))
		}
	}
	return l
}

// subPoints walks spacing-sized steps in from start and in from end, both
// stopping strictly before the midpoint, and joins the two runs start->end.
// A step landing on the midpoint within lengthTolerance is dropped.
func subPoints(start, end geo.Point, length, spacing float64) []geo.Point {
	half := length / 2
	var head, tail []geo.Point
	for k := 1; float64(k)*spacing < half-lengthTolerance; k++ {
		d := float64(k) * spacing
		head = append(head, start.Toward(end, d))
		tail = append(tail, end.Toward(start, d))
	}
	slices.Reverse(tail)
	return append(head, tail...)
}

// IsDegenerate reports whether the line is too short to carry sub-points.
func (l Line) IsDegenerate() bool {
	return len(l.SubPoints) == 0
}

// headInner and friends return the sub-points the corners attach to. A line
// without sub-points offers its midpoint instead, so the two corners on
// either side of it meet halfway along it.
func (l Line) headOuter(w float64) geo.Point {
	if len(l.OuterSubPoints) > 0 {
		return l.OuterSubPoints[0]
	}
	return geo.Displace(geo.MidPoint(l.Start, l.End), l.Angle, 0, -w)
}

func (l Line) headInner(w float64) geo.Point {
	if len(l.InnerSubPoints) > 0 {
		return l.InnerSubPoints[0]
	}
	return geo.Displace(geo.MidPoint(l.Start, l.End), l.Angle, 0, w)
}

func (l Line) tailOuter(w float64) geo.Point {
	if n := len(l.OuterSubPoints); n > 0 {
		return l.OuterSubPoints[n-1]
	}
	return l.headOuter(w)
}

func (l Line) tailInner(w float64) geo.Point {
	if n := len(l.InnerSubPoints); n > 0 {
		return l.InnerSubPoints[n-1]
	}
	return l.headInner(w)
}
