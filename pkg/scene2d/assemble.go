package scene2d

import (
	"fmt"
	"time"

	"github.com/ChicagoDave/wren/pkg/geo"
	"github.com/ChicagoDave/wren/pkg/wren"
)

// Space selects the coordinate system of an assembled scene.
type Space string

const (
	// SpaceDisplay has its origin at the top-left of the outline's bounding
	// box with Y growing downward.
	SpaceDisplay Space = "display"
	// SpaceModel keeps the decomposition's own coordinates.
	SpaceModel Space = "model"
)

// Assemble converts a decomposition into a 2D scene. In SpaceDisplay every
// point goes through the same bounding-box flip as the outline's display
// points; the decomposition itself is never modified.
func Assemble(name string, w *wren.Wren, space Space) *Scene2D {
	bounds := geo.BoundsOf(w.Points)
	conv := func(pts []geo.Point) [][2]float64 {
		if space == SpaceDisplay {
			pts = geo.FlipToDisplay(bounds, pts)
		}
		return pointsToCoords(pts)
	}

	return &Scene2D{
		Metadata:    assembleMetadata(name, w, bounds, space),
		Outline:     conv(w.Points),
		OuterOffset: conv(w.OuterPoints),
		InnerOffset: conv(w.InnerPoints),
		Lines:       assembleLines(w, conv),
		Reinforcers: assembleLoops("reinforcer", w.Reinforcers, conv),
		FinPieces:   assembleLoops("fin", w.FinPieces, conv),
		Walls: WallCollection{
			Outer: assembleLoops("wall-outer", w.OuterWalls, conv),
			Inner: assembleLoops("wall-inner", w.InnerWalls, conv),
		},
	}
}

func assembleMetadata(name string, w *wren.Wren, b geo.Bounds, space Space) Metadata {
	poly := w.Polygon()
	centroid := poly.Centroid()
	if space == SpaceDisplay {
		centroid = geo.FlipToDisplay(b, []geo.Point{centroid})[0]
	}
	shortest, shortestLen := poly.ShortestEdge()

	return Metadata{
		Name:            name,
		Space:           space,
		EdgeCount:       len(w.Lines),
		SubPointCount:   w.SubPointCount(),
		BlockCount:      w.BlockCount(),
		DegenerateEdges: w.DegenerateEdges,
		Width:           b.Width(),
		Height:          b.Height(),
		Area:            poly.Area(),
		Perimeter:       poly.Perimeter(),
		Centroid:        centroid.Coords(),
		ShortestEdge:    shortest,
		ShortestLength:  shortestLen,
		PointDistance:   w.Params.PointDistance,
		FinHalfWidth:    w.Params.FinHalfWidth,
		WallThickness:   w.Params.WallThickness,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

func assembleLines(w *wren.Wren, conv func([]geo.Point) [][2]float64) []Line2D {
	result := make([]Line2D, 0, len(w.Lines))
	for _, l := range w.Lines {
		blocks := make([]Loop2D, 0, len(l.Blocks))
		for j, b := range l.Blocks {
			blocks = append(blocks, Loop2D{
				ID:     fmt.Sprintf("block-%d-%d", l.Index, j),
				Points: conv(b.Points()),
			})
		}
		line := Line2D{
			Index:      l.Index,
			Angle:      l.Angle,
			Length:     l.Length,
			SubPoints:  conv(l.SubPoints),
			Blocks:     blocks,
			Degenerate: l.IsDegenerate(),
		}
		if l.Corner != nil {
			line.Corner = &Loop2D{
				ID:     fmt.Sprintf("corner-%d", l.Index),
				Points: conv(l.Corner.Points()),
			}
		}
		result = append(result, line)
	}
	return result
}

func assembleLoops(prefix string, loops [][]geo.Point, conv func([]geo.Point) [][2]float64) []Loop2D {
	result := make([]Loop2D, 0, len(loops))
	for i, pts := range loops {
		result = append(result, Loop2D{
			ID:     fmt.Sprintf("%s-%d", prefix, i),
			Points: conv(pts),
		})
	}
	return result
}

func pointsToCoords(pts []geo.Point) [][2]float64 {
	coords := make([][2]float64, len(pts))
	for i, p := range pts {
		coords[i] = p.Coords()
	}
	return coords
}
