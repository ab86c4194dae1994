package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 0.01

func square(size float64) Polygon {
	return NewPolygon(Pt(0, 0), Pt(size, 0), Pt(size, size), Pt(0, size))
}

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, tolerance, "y of %v", got)
}

// --- Point tests ---

func TestPointDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Pt(0, 0).Distance(Pt(3, 4)), tolerance)
}

func TestPointAngle(t *testing.T) {
	assert.InDelta(t, 0, Pt(1, 0).Angle(), tolerance)
	assert.InDelta(t, math.Pi/2, Pt(0, 1).Angle(), tolerance)
	assert.InDelta(t, math.Pi, Pt(10, 10).AngleTo(Pt(0, 10)), tolerance)
}

func TestPointRotate(t *testing.T) {
	assertPoint(t, Pt(0, 1), Pt(1, 0).Rotate(math.Pi/2))
}

func TestPointRotateAround(t *testing.T) {
	assertPoint(t, Pt(5, 7), Pt(7, 5).RotateAround(Pt(5, 5), math.Pi/2))
}

func TestPointToward(t *testing.T) {
	assertPoint(t, Pt(0, 15), Pt(0, 0).Toward(Pt(0, 100), 15))
	assertPoint(t, Pt(3, 3), Pt(3, 3).Toward(Pt(3, 3), 15))
}

func TestPointNormalize(t *testing.T) {
	assert.InDelta(t, 1.0, Pt(3, 4).Normalize().Length(), tolerance)
	assert.Equal(t, Point{}, Pt(0, 0).Normalize())
}

func TestPointLerp(t *testing.T) {
	assertPoint(t, Pt(5, 5), Pt(0, 0).Lerp(Pt(10, 10), 0.5))
}

func TestPointIsFinite(t *testing.T) {
	assert.True(t, Pt(1, 2).IsFinite())
	assert.False(t, Pt(math.NaN(), 2).IsFinite())
	assert.False(t, Pt(1, math.Inf(-1)).IsFinite())
}

func TestDisplaceFollowsEdgeDirection(t *testing.T) {
	// Left of an edge heading +Y is -X.
	assertPoint(t, Pt(-2, 10), Displace(Pt(0, 10), math.Pi/2, 0, 2))
	// Along an edge heading +X.
	assertPoint(t, Pt(4, -1), Displace(Pt(1, 0), 0, 3, -1))
}

// --- Polygon tests ---

func TestPolygonAreaSquare(t *testing.T) {
	assert.InDelta(t, 100, square(10).Area(), tolerance)
}

func TestPolygonAreaTriangle(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	assert.InDelta(t, 50, tri.Area(), tolerance)
}

func TestPolygonWinding(t *testing.T) {
	sq := square(10)
	assert.True(t, sq.IsCounterClockwise())
	assert.False(t, sq.Reverse().IsCounterClockwise())
	assert.True(t, sq.Reverse().EnsureCCW().IsCounterClockwise())
}

func TestPolygonCentroid(t *testing.T) {
	assertPoint(t, Pt(5, 5), square(10).Centroid())
}

func TestPolygonContains(t *testing.T) {
	sq := square(10)
	assert.True(t, sq.Contains(Pt(5, 5)))
	assert.False(t, sq.Contains(Pt(15, 5)))
	assert.False(t, sq.Contains(Pt(-1, 5)))
}

func TestPolygonBounds(t *testing.T) {
	b := NewPolygon(Pt(-5, -3), Pt(10, 0), Pt(7, 12)).Bounds()
	assertPoint(t, Pt(-5, -3), b.Min)
	assertPoint(t, Pt(10, 12), b.Max)
	assert.InDelta(t, 15, b.Width(), tolerance)
	assert.InDelta(t, 15, b.Height(), tolerance)
}

func TestPolygonPerimeter(t *testing.T) {
	assert.InDelta(t, 40, square(10).Perimeter(), tolerance)
}

func TestPolygonShortestEdge(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(100, 0), Pt(100, 10))
	idx, length := tri.ShortestEdge()
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 10, length, tolerance)
}

func TestPolygonEdgeWraps(t *testing.T) {
	a, b := square(10).Edge(3)
	assertPoint(t, Pt(0, 10), a)
	assertPoint(t, Pt(0, 0), b)
	assertPoint(t, Pt(0, 10), square(10).At(-1))
}

func TestFlipToDisplay(t *testing.T) {
	pts := []Point{Pt(-5, 0), Pt(5, 0), Pt(5, 20)}
	got := FlipToDisplay(BoundsOf(pts), pts)
	require.Len(t, got, 3)
	assertPoint(t, Pt(0, 20), got[0])
	assertPoint(t, Pt(10, 20), got[1])
	assertPoint(t, Pt(10, 0), got[2])
}

// --- Cyclic helpers ---

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, Wrap(4, 4))
	assert.Equal(t, 3, Wrap(-1, 4))
	assert.Equal(t, 1, Wrap(-7, 4))
	assert.Panics(t, func() { Wrap(1, 0) })
}

func TestLoopPairs(t *testing.T) {
	pairs := LoopPairs([]int{1, 2, 3})
	assert.Equal(t, [][2]int{{1, 2}, {2, 3}, {3, 1}}, pairs)
	assert.Nil(t, LoopPairs([]int{}))
}

func TestHeadTail(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, Head(items, 2))
	assert.Equal(t, []int{2, 3}, Tail(items, 2))
	assert.Equal(t, []int{1, 2, 3}, Tail(items, 5))
	assert.Empty(t, Head([]int{}, 2))
}

// --- Offset tests ---

func TestOffsetSquareOutward(t *testing.T) {
	out := Offset(square(100), 12.5)
	require.Equal(t, 4, out.Len())
	assertPoint(t, Pt(-12.5, -12.5), out.Vertices[0])
	assertPoint(t, Pt(112.5, -12.5), out.Vertices[1])
	assertPoint(t, Pt(112.5, 112.5), out.Vertices[2])
	assertPoint(t, Pt(-12.5, 112.5), out.Vertices[3])
	assert.InDelta(t, 125*125, out.Area(), tolerance)
}

func TestOffsetSquareInward(t *testing.T) {
	in := Offset(square(100), -12.5)
	assertPoint(t, Pt(12.5, 12.5), in.Vertices[0])
	assert.InDelta(t, 75*75, in.Area(), tolerance)
	assert.True(t, in.IsCounterClockwise())
}

func TestOffsetNormalizesWinding(t *testing.T) {
	cw := square(100).Reverse()
	norm := Offset(cw, 0)
	assert.True(t, norm.IsCounterClockwise())
	assert.Equal(t, norm.Vertices, Offset(norm, 0).Vertices)

	// Offsetting the raw polygon matches offsetting the normalized one.
	assert.Equal(t, Offset(norm, 5).Vertices, Offset(cw, 5).Vertices)
}

func TestOffsetCollinearVertex(t *testing.T) {
	p := NewPolygon(Pt(0, 0), Pt(50, 0), Pt(100, 0), Pt(100, 100), Pt(0, 100))
	out := Offset(p, 10)
	require.Equal(t, 5, out.Len())
	assertPoint(t, Pt(50, -10), out.Vertices[1])
}

func TestOffsetTriangleEdgesParallel(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(100, 0), Pt(30, 80))
	out := Offset(tri, 7)
	for i := 0; i < 3; i++ {
		a, b := tri.Edge(i)
		oa, ob := out.Edge(i)
		assert.InDelta(t, a.AngleTo(b), oa.AngleTo(ob), 1e-9, "edge %d", i)
		// Distance from offset vertex to the original edge line.
		dist := math.Abs(b.Sub(a).Normalize().Cross(oa.Sub(a)))
		assert.InDelta(t, 7, dist, 1e-9, "edge %d", i)
	}
}

func TestOffsetClampsSharpMiter(t *testing.T) {
	// The joint at the origin is about 5.7 degrees.
	tri := NewPolygon(Pt(0, 0), Pt(300, 0), Pt(300, 30))

	out := Offset(tri, 10)
	assert.InDelta(t, MiterLimit*10, out.Vertices[0].Length(), 1e-9)
	assert.Less(t, out.Vertices[0].X, 0.0)
	assertPoint(t, Pt(310, -10), out.Vertices[1])

	// The inner tip sits inside the joint and keeps its full miter.
	in := Offset(tri, -10)
	assert.Greater(t, in.Vertices[0].Length(), MiterLimit*10)
}

func TestRegularPolygon(t *testing.T) {
	hex := RegularPolygon(Pt(10, 10), 100, 6)
	require.Equal(t, 6, hex.Len())
	assertPoint(t, Pt(110, 10), hex.Vertices[0])
	assert.True(t, hex.IsCounterClockwise())
	for i := range hex.Vertices {
		a, b := hex.Edge(i)
		assert.InDelta(t, 100, a.Distance(b), 1e-9)
	}
	assert.Equal(t, 3, RegularPolygon(Point{}, 1, 1).Len())
}

func TestRect(t *testing.T) {
	r := Rect(Pt(0, 0), Pt(40, 20))
	assert.Equal(t, []Point{Pt(0, 0), Pt(40, 0), Pt(40, 20), Pt(0, 20)}, r.Vertices)
	assert.True(t, r.IsCounterClockwise())
	assert.InDelta(t, 800, r.Area(), tolerance)
}
