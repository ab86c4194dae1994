package spec

import (
	"github.com/ChicagoDave/wren/pkg/geo"
	"github.com/ChicagoDave/wren/pkg/wren"
)

// PanelSpec is the on-disk description of one panel: its outline and the
// layout parameters used to decompose it.
type PanelSpec struct {
	SpecVersion   string       `yaml:"spec_version" toml:"spec_version" json:"spec_version"`
	Name          string       `yaml:"name" toml:"name" json:"name"`
	Outline       [][2]float64 `yaml:"polygon" toml:"polygon" json:"polygon"`
	PointDistance float64      `yaml:"point_distance" toml:"point_distance" json:"point_distance"`
	FinHalfWidth  float64      `yaml:"fin_half_width" toml:"fin_half_width" json:"fin_half_width"`
	WallThickness float64      `yaml:"wall_thickness" toml:"wall_thickness" json:"wall_thickness"`
	Strict        bool         `yaml:"strict" toml:"strict" json:"strict"`
}

// Points returns the outline as geometry points.
func (s *PanelSpec) Points() []geo.Point {
	pts := make([]geo.Point, len(s.Outline))
	for i, c := range s.Outline {
		pts[i] = geo.Pt(c[0], c[1])
	}
	return pts
}

// Params returns the decomposition parameters, filling unset distances with
// the defaults.
func (s *PanelSpec) Params() wren.Params {
	p := wren.DefaultParams()
	if s.PointDistance != 0 {
		p.PointDistance = s.PointDistance
	}
	if s.FinHalfWidth != 0 {
		p.FinHalfWidth = s.FinHalfWidth
	}
	if s.WallThickness != 0 {
		p.WallThickness = s.WallThickness
	}
	p.Strict = s.Strict
	return p
}

// Decompose runs the decomposition for this panel.
func (s *PanelSpec) Decompose() (*wren.Wren, error) {
	return wren.New(s.Points(), s.Params())
}
