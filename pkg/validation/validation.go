// Package validation checks panel specs and finished decompositions and
// collects the findings into a Report.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the validation pass that produced a result.
type Level string

const (
	// LevelSchema covers file-level fields: version and parameter ranges.
	LevelSchema Level = "schema"
	// LevelGeometric covers the outline itself, before any decomposition.
	LevelGeometric Level = "geometric"
	// LevelDecomposition covers structural checks on a finished decomposition.
	LevelDecomposition Level = "decomposition"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ErrInvalid is wrapped by Report.Err when a report holds errors.
var ErrInvalid = errors.New("spec has validation errors")

// Result is a single finding. SpecPath points into the spec file
// (polygon[2], fin_half_width) or into the decomposition (lines[3].corner).
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	SpecPath     string   `json:"spec_path"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

func (r Result) String() string {
	if r.SpecPath == "" {
		return r.Message
	}
	return r.SpecPath + ": " + r.Message
}

// Report is the complete validation output. Valid is false as soon as one
// error has been added.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) { r.add(SeverityError, result) }

// AddWarning adds a warning. Warnings never invalidate a report.
func (r *Report) AddWarning(result Result) { r.add(SeverityWarning, result) }

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) { r.add(SeverityInfo, result) }

func (r *Report) add(sev Severity, result Result) {
	result.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, result)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, result)
	default:
		r.Info = append(r.Info, result)
	}
	r.updateSummary()
}

// Merge appends every result of other. A nil other is ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// At returns the results of any severity whose SpecPath is path or lies
// under it, so At("lines[1]") also matches "lines[1].corner". Errors come
// first, then warnings, then info.
func (r *Report) At(path string) []Result {
	var out []Result
	for _, group := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range group {
			if underPath(res.SpecPath, path) {
				out = append(out, res)
			}
		}
	}
	return out
}

func underPath(p, prefix string) bool {
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	rest := p[len(prefix):]
	return rest == "" || rest[0] == '.' || rest[0] == '['
}

// Err returns nil for a valid report, otherwise an error wrapping ErrInvalid
// that names the first error.
func (r *Report) Err() error {
	switch n := len(r.Errors); {
	case r.Valid:
		return nil
	case n == 0:
		return ErrInvalid
	case n == 1:
		return fmt.Errorf("%w: %s", ErrInvalid, r.Errors[0])
	default:
		return fmt.Errorf("%w: %s (and %d more)", ErrInvalid, r.Errors[0], n-1)
	}
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
