package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/mpcexport/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A group block without its closing brace fails to parse inside app.NewApp().
	invalidHCL := `
		group "vehicle0" {
			variable "x" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "problem.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath, "-o", filepath.Join(tempDir, "export")}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_UnsupportedProblemFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "problem.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	err := run(&bytes.Buffer{}, []string{path})
	exitErr, ok := cli.AsExitError(err)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
}

func TestRun_Export(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	problemPath := filepath.Join(tempDir, "problem.yaml")
	problem := `
problem:
  horizon_time: 10
  knot_intervals: 5
groups:
  - label: vehicle0
    variables:
      - {name: x, cols: 3}
    constraints:
      - {name: c0, rows: 2, lower: [0, -1], upper: [5, 1]}
`
	require.NoError(t, os.WriteFile(problemPath, []byte(problem), 0600))
	templates := filepath.Join(tempDir, "templates")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "MotionPlanning.cpp"), []byte("@defines@"), 0600))

	out := filepath.Join(tempDir, "export")
	err := run(&bytes.Buffer{}, []string{problemPath, "-t", templates, "-o", out})
	require.NoError(t, err)

	cpp, err := os.ReadFile(filepath.Join(out, "src", "MotionPlanning.cpp"))
	require.NoError(t, err)
	require.Contains(t, string(cpp), "#define N_VAR 3\n")
	require.Contains(t, string(cpp), "#define UBG_DEF {5,1}\n")
}
