package validation

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/ChicagoDave/wren/pkg/geo"
	"github.com/ChicagoDave/wren/pkg/spec"
)

// SupportedVersion is the panel spec version this build writes and expects.
const SupportedVersion = "0.1.0"

// Any patch release with the same major and minor is compatible.
var supportedVersion = semver.MustParse(SupportedVersion)

// ValidateSpec performs schema and geometric validation on a parsed panel
// spec. It checks everything the decomposition would reject, plus the
// conditions it only degrades on, before any geometry is built.
func ValidateSpec(s *spec.PanelSpec) *Report {
	r := NewReport()

	validateVersion(s, r)
	validateParams(s, r)
	if !validateOutline(s, r) {
		return r
	}
	validateEdges(s, r)
	validateOffsets(s, r)

	return r
}

func validateVersion(s *spec.PanelSpec, r *Report) {
	if s.SpecVersion == "" {
		r.AddWarning(Result{
			Level:    LevelSchema,
			Message:  "spec_version is not set",
			SpecPath: "spec_version",
			Expected: SupportedVersion,
		})
		return
	}
	v, err := semver.NewVersion(s.SpecVersion)
	if err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("spec_version %q is not a semantic version", s.SpecVersion),
			SpecPath:    "spec_version",
			ActualValue: s.SpecVersion,
			Expected:    SupportedVersion,
		})
		return
	}
	if v.Major() != supportedVersion.Major() || v.Minor() != supportedVersion.Minor() {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("spec_version %s is not compatible with %s; fields may be ignored", v, SupportedVersion),
			SpecPath:    "spec_version",
			ActualValue: s.SpecVersion,
			Expected:    fmt.Sprintf("%d.%d.x", supportedVersion.Major(), supportedVersion.Minor()),
		})
	}
}

func validateParams(s *spec.PanelSpec, r *Report) {
	fields := []struct {
		path  string
		value float64
	}{
		{"point_distance", s.PointDistance},
		{"fin_half_width", s.FinHalfWidth},
		{"wall_thickness", s.WallThickness},
	}
	for _, f := range fields {
		if f.value < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must not be negative", f.path),
				SpecPath:    f.path,
				ActualValue: f.value,
				Expected:    "> 0, or 0 for the default",
			})
		}
	}
}

// validateOutline reports outline problems that make decomposition
// impossible. It returns false if any were found.
func validateOutline(s *spec.PanelSpec, r *Report) bool {
	pts := s.Points()
	if len(pts) < 3 {
		r.AddError(Result{
			Level:       LevelGeometric,
			Message:     fmt.Sprintf("polygon needs at least 3 points, got %d", len(pts)),
			SpecPath:    "polygon",
			ActualValue: len(pts),
			Expected:    ">= 3 points",
		})
		return false
	}

	ok := true
	for i, p := range pts {
		if !p.IsFinite() {
			r.AddError(Result{
				Level:       LevelGeometric,
				Message:     fmt.Sprintf("polygon[%d] is not a finite coordinate", i),
				SpecPath:    fmt.Sprintf("polygon[%d]", i),
				ActualValue: s.Outline[i],
			})
			ok = false
		}
	}
	if !ok {
		return false
	}

	poly := geo.NewPolygon(pts...)
	for i := range pts {
		if a, b := poly.Edge(i); a.Distance(b) < 1e-9 {
			j := geo.Wrap(i+1, len(pts))
			r.AddError(Result{
				Level:        LevelGeometric,
				Message:      fmt.Sprintf("polygon[%d] and polygon[%d] coincide", i, j),
				SpecPath:     fmt.Sprintf("polygon[%d]", j),
				ActualValue:  s.Outline[j],
				ConflictWith: fmt.Sprintf("polygon[%d]", i),
				Suggestions:  []string{"Remove the duplicate point; the outline closes itself"},
			})
			ok = false
		}
	}
	if ok && poly.Area() < 1e-9 {
		r.AddError(Result{
			Level:    LevelGeometric,
			Message:  "polygon has zero area",
			SpecPath: "polygon",
		})
		ok = false
	}
	if ok && !poly.IsCounterClockwise() {
		r.AddInfo(Result{
			Level:    LevelGeometric,
			Message:  "polygon is clockwise and will be normalized to counterclockwise",
			SpecPath: "polygon",
		})
	}
	return ok
}

func validateEdges(s *spec.PanelSpec, r *Report) {
	params := s.Params()
	minLength := 2 * params.PointDistance
	poly := geo.NewPolygon(s.Points()...)

	for i := range poly.Vertices {
		a, b := poly.Edge(i)
		length := a.Distance(b)
		if params.CarriesBlocks(length) {
			continue
		}
		res := Result{
			Level:       LevelGeometric,
			Message:     fmt.Sprintf("edge %d is %.2f long, too short to carry a block", i, length),
			SpecPath:    fmt.Sprintf("polygon[%d]", i),
			ActualValue: length,
			Expected:    fmt.Sprintf("> %.2f (2 x point_distance)", minLength),
			Suggestions: []string{
				fmt.Sprintf("Lengthen the edge beyond %.2f", minLength),
				fmt.Sprintf("Reduce point_distance below %.2f", length/2),
			},
		}
		if params.Strict {
			r.AddError(res)
		} else {
			r.AddWarning(res)
		}
	}
}

func validateOffsets(s *spec.PanelSpec, r *Report) {
	params := s.Params()
	raw := geo.NewPolygon(s.Points()...)
	working := geo.Offset(raw, 0)
	inner := geo.Offset(raw, -params.FinHalfWidth)

	if inner.SignedArea() <= 0 || inner.SignedArea() >= working.SignedArea() {
		r.AddWarning(Result{
			Level:       LevelGeometric,
			Message:     "inner offset collapses; the fin is wider than the panel allows",
			SpecPath:    "fin_half_width",
			ActualValue: params.FinHalfWidth,
			Suggestions: []string{"Reduce fin_half_width or enlarge the polygon"},
		})
	}
}
