package geo

import "math"

// RegularPolygon returns an n-sided regular polygon inscribed in the circle
// of the given center and radius, starting on the positive X axis. Vertices
// are counterclockwise. n below 3 is raised to 3.
func RegularPolygon(center Point, radius float64, n int) Polygon {
	n = max(n, 3)
	pts := make([]Point, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return Polygon{Vertices: pts}
}

// Rect returns the axis-aligned rectangle with corners lo and hi,
// counterclockwise from lo.
func Rect(lo, hi Point) Polygon {
	return NewPolygon(lo, Pt(hi.X, lo.Y), hi, Pt(lo.X, hi.Y))
}
