package wren

import "github.com/ChicagoDave/wren/pkg/geo"

// Corner joins the last block of one edge to the first block of the next,
// covering the polygon vertex between them.
type Corner struct {
	TailOuter   geo.Point `json:"tail_outer"`
	OuterVertex geo.Point `json:"outer_vertex"`
	HeadOuter   geo.Point `json:"head_outer"`
	HeadInner   geo.Point `json:"head_inner"`
	InnerVertex geo.Point `json:"inner_vertex"`
	TailInner   geo.Point `json:"tail_inner"`
}

// NewCorner builds a corner from its six boundary points in tracing order:
// the outer joint from the previous edge's tail through the outer vertex to
// the next edge's head, then the inner joint back again.
func NewCorner(tailOuter, outerVertex, headOuter, headInner, innerVertex, tailInner geo.Point) Corner {
	return Corner{
		TailOuter:   tailOuter,
		OuterVertex: outerVertex,
		HeadOuter:   headOuter,
		HeadInner:   headInner,
		InnerVertex: innerVertex,
		TailInner:   tailInner,
	}
}

func (c Corner) OuterPoints() []geo.Point {
	return []geo.Point{c.TailOuter, c.OuterVertex, c.HeadOuter}
}

func (c Corner) InnerPoints() []geo.Point {
	return []geo.Point{c.HeadInner, c.InnerVertex, c.TailInner}
}

// Points returns the closed outline of the corner.
func (c Corner) Points() []geo.Point {
	return Ring(c)
}
