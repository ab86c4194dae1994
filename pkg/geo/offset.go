package geo

import "math"

// MiterLimit caps how far a mitred vertex on the outside of a joint may move
// from its source vertex, as a multiple of |delta|.
const MiterLimit = 4.0

// Offset grows (delta > 0) or shrinks (delta < 0) a closed polygon by moving
// every edge perpendicular to itself by |delta| and joining neighbouring edges
// with mitred corners.
//
// The result is always counterclockwise and vertex i of the result belongs to
// vertex i of p.EnsureCCW(), so offsets of the same polygon by different deltas
// stay index-aligned. A zero delta only normalizes winding, which makes
// Offset(p, 0) idempotent. Sharp joints are cut back to MiterLimit.
func Offset(p Polygon, delta float64) Polygon {
	ccw := p.EnsureCCW()
	n := len(ccw.Vertices)
	if delta == 0 || n < 3 {
		return ccw
	}

	out := make([]Point, n)
	for i := 0; i < n; i++ {
		prev, curr, next := ccw.At(i-1), ccw.At(i), ccw.At(i+1)

		nIn := outwardNormal(prev, curr).Scale(delta)
		nOut := outwardNormal(curr, next).Scale(delta)

		if ix, ok := lineIntersection(prev.Add(nIn), curr.Add(nIn), curr.Add(nOut), next.Add(nOut)); ok {
			out[i] = clampMiter(prev, curr, next, ix, delta)
			continue
		}
		// Collinear neighbours: both shifted edges lie on the same line.
		out[i] = curr.Add(nOut)
	}
	return Polygon{Vertices: out}
}

// clampMiter pulls a miter tip on the outside of the joint at curr back
// along the bisector to MiterLimit x |delta| from curr. Tips on the inside
// of a joint are left alone.
func clampMiter(prev, curr, next, tip Point, delta float64) Point {
	turn := curr.Sub(prev).Cross(next.Sub(curr))
	if turn*delta <= 0 {
		return tip
	}
	limit := MiterLimit * math.Abs(delta)
	d := tip.Sub(curr)
	if d.Length() <= limit {
		return tip
	}
	return curr.Add(d.Normalize().Scale(limit))
}

// outwardNormal returns the unit normal on the right of the directed edge
// a->b, which faces away from the interior of a counterclockwise polygon.
func outwardNormal(a, b Point) Point {
	d := b.Sub(a)
	return Point{d.Y, -d.X}.Normalize()
}

// lineIntersection returns the intersection point of lines (p1→p2) and (p3→p4).
func lineIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	d := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(d) < 1e-12 {
		return Point{}, false
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / d
	return Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}
