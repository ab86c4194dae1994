package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/wren/pkg/validation"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeProject(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wren.yaml"), []byte(body), 0o644))
	return dir
}

func TestDecomposeSquare(t *testing.T) {
	stdout, _, err := execute(t, "decompose", "../../examples/square")
	require.NoError(t, err)

	var out struct {
		Validation validation.Report `json:"validation"`
		Scene      struct {
			Metadata struct {
				Name       string `json:"name"`
				Space      string `json:"space"`
				BlockCount int    `json:"block_count"`
			} `json:"metadata"`
			Outline [][2]float64 `json:"outline"`
		} `json:"scene"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.True(t, out.Validation.Valid)
	assert.Equal(t, "square", out.Scene.Metadata.Name)
	assert.Equal(t, "display", out.Scene.Metadata.Space)
	assert.Equal(t, 20, out.Scene.Metadata.BlockCount)
	// Display space flips Y: (0,0) becomes the bottom-left at (0,100).
	assert.Equal(t, [2]float64{0, 100}, out.Scene.Outline[0])
}

func TestDecomposeRaw(t *testing.T) {
	stdout, _, err := execute(t, "decompose", "--raw", "../../examples/square")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"space": "model"`)
}

func TestDecomposeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	stdout, _, err := execute(t, "decompose", "-o", path, "../../examples/hexagon")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), `"hexagon"`)
}

func TestDecomposeToFileSkipsInvalid(t *testing.T) {
	dir := writeProject(t, "name: line\npolygon:\n  - [0, 0]\n  - [100, 0]\n")
	path := filepath.Join(t.TempDir(), "scene.json")

	_, _, err := execute(t, "decompose", "-o", path, dir)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.NoFileExists(t, path)

	_, _, err = execute(t, "decompose", "-o", path, filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestDecomposeWarnsOnStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "decompose", "../../examples/sliver")
	require.NoError(t, err)
	assert.Contains(t, stderr, "WARNINGS")
	assert.Contains(t, stderr, "too short to carry a block")
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestDecomposeInvalid(t *testing.T) {
	dir := writeProject(t, "name: line\npolygon:\n  - [0, 0]\n  - [100, 0]\n")
	stdout, stderr, err := execute(t, "decompose", dir)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Result: INVALID")
}

func TestDecomposeMissingProject(t *testing.T) {
	_, _, err := execute(t, "decompose", filepath.Join(t.TempDir(), "absent"))
	assert.ErrorContains(t, err, "loading spec")
}

func TestValidateValid(t *testing.T) {
	stdout, _, err := execute(t, "validate", "../../examples/square")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Result: VALID")
	assert.Contains(t, stdout, "4 lines, 24 sub-points, 20 blocks")
}

func TestValidateStrict(t *testing.T) {
	dir := writeProject(t, "name: sliver\nstrict: true\npolygon:\n  - [0, 0]\n  - [100, 0]\n  - [100, 10]\n")
	stdout, _, err := execute(t, "validate", dir)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.Contains(t, stdout, "ERRORS (1):")
	assert.Contains(t, stdout, "-> polygon[1] = 10")
	assert.Contains(t, stdout, "* Reduce point_distance below 5.00")
}

func TestBatch(t *testing.T) {
	stdout, _, err := execute(t, "batch", "-j", "2",
		"../../examples/square", "../../examples/hexagon", "../../examples/sliver")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[2], "square")
	assert.Contains(t, lines[3], "hexagon")
	assert.Contains(t, lines[4], "sliver")
	assert.True(t, strings.HasSuffix(lines[2], "ok"))
	assert.Contains(t, lines[6], "3 panels, 0 failed")
}

func TestBatchReportsFailures(t *testing.T) {
	bad := writeProject(t, "name: bad\npolygon: []\n")
	stdout, _, err := execute(t, "batch", "../../examples/square", bad)
	assert.ErrorContains(t, err, "1 of 2 panels failed")
	assert.Contains(t, stdout, "invalid")
	assert.Contains(t, stdout, "2 panels, 1 failed")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "...efghij", truncate("abcdefghij", 9))
}

func TestReportIsPlainWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	r := validation.NewReport()
	r.AddWarning(validation.Result{Level: validation.LevelGeometric, Message: "edge 1 is short", SpecPath: "polygon[1]"})
	printValidationReport(&buf, r)

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "WARNINGS (1):\n  [geometric] edge 1 is short\n    -> polygon[1]\n")
	assert.Contains(t, buf.String(), "Result: VALID (0 errors, 1 warnings, 0 info)")
}
