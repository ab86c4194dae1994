package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/ChicagoDave/wren/pkg/scene2d"
	"github.com/ChicagoDave/wren/pkg/spec"
	"github.com/ChicagoDave/wren/pkg/validation"
	"github.com/ChicagoDave/wren/pkg/wren"
)

// loadAndValidate loads the spec and runs schema and geometric validation.
func loadAndValidate(projectPath string) (*spec.PanelSpec, *validation.Report, error) {
	panelSpec, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}
	return panelSpec, validation.ValidateSpec(panelSpec), nil
}

// solveProject loads, validates and decomposes one project. The report
// covers both validation passes. A nil decomposition with a nil error means
// the spec failed validation.
func solveProject(projectPath string) (*spec.PanelSpec, *wren.Wren, *validation.Report, error) {
	panelSpec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if !report.Valid {
		return panelSpec, nil, report, nil
	}

	w, err := panelSpec.Decompose()
	if err != nil {
		return panelSpec, nil, report, fmt.Errorf("decomposing %s: %w", projectPath, err)
	}
	report.Merge(validation.ValidateDecomposition(w))
	return panelSpec, w, report, nil
}

func runValidate(out io.Writer, projectPath string) error {
	_, _, report, err := solveProject(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(out, report)
	return report.Err()
}

func runDecompose(out, errOut io.Writer, projectPath string, raw bool) error {
	panelSpec, w, report, err := solveProject(projectPath)
	if err != nil {
		return err
	}
	if w == nil {
		printValidationReport(errOut, report)
		return report.Err()
	}
	if len(report.Warnings) > 0 {
		printValidationReport(errOut, report)
	}

	space := scene2d.SpaceDisplay
	if raw {
		space = scene2d.SpaceModel
	}
	output := map[string]any{
		"validation": report,
		"scene":      scene2d.Assemble(panelSpec.Name, w, space),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// batchResult is one row of the batch summary.
type batchResult struct {
	Path       string
	Name       string
	Edges      int
	SubPoints  int
	Blocks     int
	Degenerate int
	Warnings   int
	Errors     int
	Err        error
}

func (r batchResult) ok() bool { return r.Err == nil && r.Errors == 0 }

func runBatch(ctx context.Context, out io.Writer, paths []string, jobs int) error {
	results := make([]batchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = batchProject(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printBatchSummary(out, results)

	failed := 0
	for _, r := range results {
		if !r.ok() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d panels failed", failed, len(results))
	}
	return nil
}

func batchProject(path string) batchResult {
	res := batchResult{Path: path}
	panelSpec, w, report, err := solveProject(path)
	if panelSpec != nil {
		res.Name = panelSpec.Name
	}
	if report != nil {
		res.Warnings = len(report.Warnings)
		res.Errors = len(report.Errors)
	}
	if err != nil {
		res.Err = err
		return res
	}
	if w != nil {
		res.Edges = len(w.Lines)
		res.SubPoints = w.SubPointCount()
		res.Blocks = w.BlockCount()
		res.Degenerate = len(w.DegenerateEdges)
	}
	return res
}
