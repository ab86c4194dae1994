package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/wren/pkg/spec"
)

func validSpec() *spec.PanelSpec {
	return &spec.PanelSpec{
		SpecVersion: SupportedVersion,
		Name:        "square",
		Outline:     [][2]float64{{0, 0}, {100, 0}, {100, 100}, {0, 100}},
	}
}

func TestValidateSpec_Valid(t *testing.T) {
	r := ValidateSpec(validSpec())
	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidateSpec_Version(t *testing.T) {
	s := validSpec()
	s.SpecVersion = ""
	r := ValidateSpec(s)
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "spec_version", r.Warnings[0].SpecPath)

	s.SpecVersion = "9.9.9"
	r = ValidateSpec(s)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "9.9.9", r.Warnings[0].ActualValue)
	assert.Equal(t, "0.1.x", r.Warnings[0].Expected)

	// Patch releases are compatible; a leading v is accepted.
	s.SpecVersion = "v0.1.7"
	r = ValidateSpec(s)
	assert.Empty(t, r.Warnings)

	s.SpecVersion = "latest"
	r = ValidateSpec(s)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "spec_version", r.Errors[0].SpecPath)
}

func TestValidateSpec_NegativeParams(t *testing.T) {
	s := validSpec()
	s.PointDistance = -1
	s.WallThickness = -2
	r := ValidateSpec(s)
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors, 2)
}

func TestValidateSpec_TooFewPoints(t *testing.T) {
	s := validSpec()
	s.Outline = s.Outline[:2]
	r := ValidateSpec(s)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, LevelGeometric, r.Errors[0].Level)
	assert.Equal(t, 2, r.Errors[0].ActualValue)
}

func TestValidateSpec_NonFinite(t *testing.T) {
	s := validSpec()
	s.Outline[1][0] = math.Inf(1)
	r := ValidateSpec(s)
	assert.False(t, r.Valid)
	assert.Equal(t, "polygon[1]", r.Errors[0].SpecPath)
}

func TestValidateSpec_ClosingDuplicate(t *testing.T) {
	s := validSpec()
	s.Outline = append(s.Outline, [2]float64{0, 0})
	r := ValidateSpec(s)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "polygon[0]", r.Errors[0].SpecPath)
	assert.Equal(t, "polygon[4]", r.Errors[0].ConflictWith)
	assert.NotEmpty(t, r.Errors[0].Suggestions)
}

func TestValidateSpec_ZeroArea(t *testing.T) {
	s := validSpec()
	s.Outline = [][2]float64{{0, 0}, {50, 0}, {100, 0}}
	r := ValidateSpec(s)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Message, "zero area")
}

func TestValidateSpec_Clockwise(t *testing.T) {
	s := validSpec()
	s.Outline = [][2]float64{{0, 100}, {100, 100}, {100, 0}, {0, 0}}
	r := ValidateSpec(s)
	assert.True(t, r.Valid)
	assert.Len(t, r.Info, 1)
}

func TestValidateSpec_ShortEdge(t *testing.T) {
	s := validSpec()
	s.Outline = [][2]float64{{0, 0}, {100, 0}, {100, 10}}
	r := ValidateSpec(s)
	assert.True(t, r.Valid, "short edges only degrade by default")

	short := r.At("polygon[1]")
	require.Len(t, short, 1)
	assert.Equal(t, SeverityWarning, short[0].Severity)
	assert.InDelta(t, 10, short[0].ActualValue, 1e-9)
	assert.Len(t, short[0].Suggestions, 2)

	s.Strict = true
	r = ValidateSpec(s)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "polygon[1]", r.Errors[0].SpecPath)
}

func TestValidateSpec_RotatedShortEdge(t *testing.T) {
	a := 33 * math.Pi / 180
	ux, uy := 30*math.Cos(a), 30*math.Sin(a)
	vx, vy := -200*math.Sin(a), 200*math.Cos(a)

	s := validSpec()
	s.Outline = [][2]float64{{0, 0}, {ux, uy}, {ux + vx, uy + vy}, {vx, vy}}
	r := ValidateSpec(s)
	assert.Len(t, r.At("polygon[0]"), 1)
	assert.Len(t, r.At("polygon[2]"), 1)
	assert.Empty(t, r.At("polygon[1]"))
}

func TestValidateSpec_CollapsingInnerOffset(t *testing.T) {
	s := validSpec()
	s.Outline = [][2]float64{{0, 0}, {100, 0}, {100, 10}}
	r := ValidateSpec(s)

	assert.NotEmpty(t, r.At("fin_half_width"), "thin triangle should warn about the inner offset")
}
