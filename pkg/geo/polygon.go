package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order. The last
// vertex connects back to the first.
type Polygon struct {
	Vertices []Point
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// At returns vertex i with cyclic wrap-around, so At(-1) is the last vertex.
func (p Polygon) At(i int) Point {
	return p.Vertices[Wrap(i, len(p.Vertices))]
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point, Point) {
	return p.At(i), p.At(i + 1)
}

// Clone returns a polygon backed by a fresh vertex slice.
func (p Polygon) Clone() Polygon {
	return Polygon{Vertices: append([]Point(nil), p.Vertices...)}
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCounterClockwise returns true if vertices are in CCW order.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p.Clone()
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// Centroid returns the centroid of the polygon.
func (p Polygon) Centroid() Point {
	n := len(p.Vertices)
	if n == 0 {
		return Point{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return average.
		sum := Point{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point{cx * f, cy * f}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the X extent of the box.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the Y extent of the box.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// BoundsOf returns the bounding box of an arbitrary point sequence.
func BoundsOf(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: pts[0], Max: pts[0]}
	for _, v := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
	}
	return b
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p Polygon) Bounds() Bounds {
	return BoundsOf(p.Vertices)
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		total += a.Distance(b)
	}
	return total
}

// ShortestEdge returns the index and length of the shortest edge.
// It returns (-1, 0) for polygons with fewer than 2 vertices.
func (p Polygon) ShortestEdge() (int, float64) {
	if len(p.Vertices) < 2 {
		return -1, 0
	}
	idx, shortest := -1, math.Inf(1)
	for i := range p.Vertices {
		a, b := p.Edge(i)
		if d := a.Distance(b); d < shortest {
			idx, shortest = i, d
		}
	}
	return idx, shortest
}

// FlipToDisplay maps pts into a top-left-origin display space relative to the
// bounding box b: X is shifted so b.Min.X lands on 0 and Y is mirrored about
// b.Max.Y.
func FlipToDisplay(b Bounds, pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, v := range pts {
		out[i] = Point{X: v.X - b.Min.X, Y: b.Max.Y - v.Y}
	}
	return out
}
