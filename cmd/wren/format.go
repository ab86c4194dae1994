package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/ChicagoDave/wren/pkg/validation"
)

// ANSI palette indexes for report headers.
const (
	colorError   = "1"
	colorWarning = "3"
	colorInfo    = "4"
	colorValid   = "2"
)

// printValidationReport writes r to out. Headers are coloured when out is a
// terminal and plain otherwise.
func printValidationReport(out io.Writer, r *validation.Report) {
	term := termenv.NewOutput(out)
	header := func(color, format string, args ...any) {
		fmt.Fprintln(out, term.String(fmt.Sprintf(format, args...)).Foreground(term.Color(color)).Bold())
	}

	if len(r.Errors) > 0 {
		header(colorError, "ERRORS (%d):", len(r.Errors))
		for _, e := range r.Errors {
			printResult(out, e)
			if e.ConflictWith != "" {
				fmt.Fprintf(out, "    conflicts with: %s\n", e.ConflictWith)
			}
			printSuggestions(out, e)
		}
		fmt.Fprintln(out)
	}

	if len(r.Warnings) > 0 {
		header(colorWarning, "WARNINGS (%d):", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(out, w)
			printSuggestions(out, w)
		}
		fmt.Fprintln(out)
	}

	if len(r.Info) > 0 {
		header(colorInfo, "INFO (%d):", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(out, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(out)
	}

	if r.Valid {
		fmt.Fprintf(out, "Result: %s (%s)\n", term.String("VALID").Foreground(term.Color(colorValid)).Bold(), r.Summary)
	} else {
		fmt.Fprintf(out, "Result: %s (%s)\n", term.String("INVALID").Foreground(term.Color(colorError)).Bold(), r.Summary)
	}
}

func printResult(out io.Writer, res validation.Result) {
	fmt.Fprintf(out, "  [%s] %s\n", res.Level, res.Message)
	if res.SpecPath != "" {
		if res.ActualValue != nil {
			fmt.Fprintf(out, "    -> %s = %v\n", res.SpecPath, res.ActualValue)
		} else {
			fmt.Fprintf(out, "    -> %s\n", res.SpecPath)
		}
	}
	if res.Expected != "" {
		fmt.Fprintf(out, "    expected: %s\n", res.Expected)
	}
}

func printSuggestions(out io.Writer, res validation.Result) {
	for _, s := range res.Suggestions {
		fmt.Fprintf(out, "    * %s\n", s)
	}
}

func printBatchSummary(out io.Writer, results []batchResult) {
	fmt.Fprintf(out, "%-28s %-16s %6s %10s %7s %6s %6s %6s  %s\n",
		"Project", "Name", "Edges", "Sub-points", "Blocks", "Degen", "Warn", "Err", "Status")
	fmt.Fprintf(out, "%-28s %-16s %6s %10s %7s %6s %6s %6s  %s\n",
		"----------------------------", "----------------", "------", "----------", "-------", "------", "------", "------", "------")

	var edges, subPoints, blocks, failed int
	for _, r := range results {
		status := "ok"
		switch {
		case r.Err != nil:
			status = "error: " + r.Err.Error()
		case r.Errors > 0:
			status = "invalid"
		}
		if !r.ok() {
			failed++
		}
		edges += r.Edges
		subPoints += r.SubPoints
		blocks += r.Blocks

		fmt.Fprintf(out, "%-28s %-16s %6d %10d %7d %6d %6d %6d  %s\n",
			truncate(r.Path, 28), truncate(r.Name, 16),
			r.Edges, r.SubPoints, r.Blocks, r.Degenerate, r.Warnings, r.Errors, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d panels, %d failed: %d edges, %d sub-points, %d blocks\n",
		len(results), failed, edges, subPoints, blocks)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
