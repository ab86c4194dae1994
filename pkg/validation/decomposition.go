package validation

import (
	"fmt"

	"github.com/ChicagoDave/wren/pkg/geo"
	"github.com/ChicagoDave/wren/pkg/wren"
)

// ValidateDecomposition checks the structural invariants of a finished
// decomposition: per-line counts, corner attachment and aggregate sizes.
func ValidateDecomposition(w *wren.Wren) *Report {
	r := NewReport()

	if w == nil {
		r.AddError(Result{
			Level:   LevelDecomposition,
			Message: "decomposition is nil",
		})
		return r
	}

	validateCounts(w, r)
	for i := range w.Lines {
		validateLine(w, i, r)
	}
	validateAggregates(w, r)
	validateOverlap(w, r)

	for _, i := range w.DegenerateEdges {
		r.AddWarning(Result{
			Level:       LevelDecomposition,
			Message:     fmt.Sprintf("line %d has no blocks", i),
			SpecPath:    fmt.Sprintf("lines[%d]", i),
			ActualValue: w.Lines[i].Length,
		})
	}
	r.AddInfo(Result{
		Level: LevelDecomposition,
		Message: fmt.Sprintf("%d lines, %d sub-points, %d blocks",
			len(w.Lines), w.SubPointCount(), w.BlockCount()),
	})
	return r
}

func validateCounts(w *wren.Wren, r *Report) {
	n := len(w.Points)
	counts := []struct {
		path string
		got  int
	}{
		{"lines", len(w.Lines)},
		{"outer_points", len(w.OuterPoints)},
		{"inner_points", len(w.InnerPoints)},
		{"display_points", len(w.DisplayPoints)},
		{"reinforcers", len(w.Reinforcers)},
		{"fin_pieces", len(w.FinPieces)},
		{"outer_walls", len(w.OuterWalls)},
		{"inner_walls", len(w.InnerWalls)},
	}
	for _, c := range counts {
		if c.got != n {
			r.AddError(Result{
				Level:       LevelDecomposition,
				Message:     fmt.Sprintf("%s has %d entries for %d outline points", c.path, c.got, n),
				SpecPath:    c.path,
				ActualValue: c.got,
				Expected:    fmt.Sprintf("%d", n),
			})
		}
	}
}

func validateLine(w *wren.Wren, i int, r *Report) {
	l := w.Lines[i]
	path := fmt.Sprintf("lines[%d]", i)
	n := len(l.SubPoints)

	if len(l.InnerSubPoints) != n || len(l.OuterSubPoints) != n {
		r.AddError(Result{
			Level: LevelDecomposition,
			Message: fmt.Sprintf("line %d has %d sub-points but %d inner and %d outer",
				i, n, len(l.InnerSubPoints), len(l.OuterSubPoints)),
			SpecPath: path,
		})
	}
	if want := max(n-1, 0); len(l.Blocks) != want {
		r.AddError(Result{
			Level:       LevelDecomposition,
			Message:     fmt.Sprintf("line %d has %d blocks for %d sub-points", i, len(l.Blocks), n),
			SpecPath:    path + ".blocks",
			ActualValue: len(l.Blocks),
			Expected:    fmt.Sprintf("%d", want),
		})
	}
	if l.Corner == nil {
		r.AddError(Result{
			Level:    LevelDecomposition,
			Message:  fmt.Sprintf("line %d has no corner", i),
			SpecPath: path + ".corner",
		})
		return
	}

	if n == 0 || len(l.OuterSubPoints) != n || len(l.InnerSubPoints) != n {
		return
	}
	if l.Corner.TailOuter != l.OuterSubPoints[n-1] || l.Corner.TailInner != l.InnerSubPoints[n-1] {
		r.AddError(Result{
			Level:    LevelDecomposition,
			Message:  fmt.Sprintf("corner %d does not start at the last sub-point of line %d", i, i),
			SpecPath: path + ".corner",
		})
	}
	next := w.Lines[geo.Wrap(i+1, len(w.Lines))]
	if len(next.OuterSubPoints) > 0 && len(next.InnerSubPoints) > 0 &&
		(l.Corner.HeadOuter != next.OuterSubPoints[0] || l.Corner.HeadInner != next.InnerSubPoints[0]) {
		r.AddError(Result{
			Level:        LevelDecomposition,
			Message:      fmt.Sprintf("corner %d does not end at the first sub-point of line %d", i, next.Index),
			SpecPath:     path + ".corner",
			ConflictWith: fmt.Sprintf("lines[%d]", next.Index),
		})
	}
}

func validateAggregates(w *wren.Wren, r *Report) {
	for i, fp := range w.FinPieces {
		if i >= len(w.Lines) {
			break
		}
		if want := 4 * len(w.Lines[i].Blocks); len(fp) != want {
			r.AddError(Result{
				Level:       LevelDecomposition,
				Message:     fmt.Sprintf("fin piece %d has %d points", i, len(fp)),
				SpecPath:    fmt.Sprintf("fin_pieces[%d]", i),
				ActualValue: len(fp),
				Expected:    fmt.Sprintf("%d", want),
			})
		}
	}
	for i, ring := range w.Reinforcers {
		if len(ring) < 6 || len(ring)%2 != 0 {
			r.AddError(Result{
				Level:       LevelDecomposition,
				Message:     fmt.Sprintf("reinforcer %d is not a closed ring (%d points)", i, len(ring)),
				SpecPath:    fmt.Sprintf("reinforcers[%d]", i),
				ActualValue: len(ring),
				Expected:    "an even count of at least 6",
			})
		}
	}
	for _, set := range []struct {
		name  string
		walls [][]geo.Point
	}{
		{"outer_walls", w.OuterWalls},
		{"inner_walls", w.InnerWalls},
	} {
		for i, wall := range set.walls {
			if len(wall) != 4 {
				r.AddError(Result{
					Level:       LevelDecomposition,
					Message:     fmt.Sprintf("%s[%d] is not a rectangle", set.name, i),
					SpecPath:    fmt.Sprintf("%s[%d]", set.name, i),
					ActualValue: len(wall),
					Expected:    "4",
				})
			}
		}
	}
}

// validateOverlap warns when outer sub-points land inside the outline, which
// happens where another part of the panel sits closer than the fin width.
func validateOverlap(w *wren.Wren, r *Report) {
	poly := w.Polygon()
	for i, l := range w.Lines {
		inside := 0
		for _, p := range l.OuterSubPoints {
			if poly.Contains(p) {
				inside++
			}
		}
		if inside == 0 {
			continue
		}
		r.AddWarning(Result{
			Level:       LevelDecomposition,
			Message:     fmt.Sprintf("line %d: %d outer sub-points fall inside the panel", i, inside),
			SpecPath:    fmt.Sprintf("lines[%d].outer_sub_points", i),
			ActualValue: inside,
			Expected:    "0",
			Suggestions: []string{"Widen the gap between facing edges or reduce fin_half_width"},
		})
	}
}
