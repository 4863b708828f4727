package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	quadMesh = []byte(`% two unit squares side by side
NDIME= 2
NELEM= 2
9 0 1 4 3 0
9 1 2 5 4 1
NPOIN= 6
0 0 0
1 0 1
2 0 2
0 1 3
1 1 4
2 1 5
NMARK= 1
MARKER_TAG= Fixed-left
MARKER_ELEMS= 1
3 0 3
`)
	badMesh = []byte(`NDIME= 2
NELEM= 2
5 0 1 2
5 0 2 1
NPOIN= 3
0 0
1 0
0 1
`)
	fileInput = []byte(`
Title: Test Case
Dimension: 2
Formulation: NonLinear
Material:
  Young: 1.
  Poisson: 0.25
Displacement:
  Scale: 1
  Gradient:
    - [1, 0]
    - [0, 0]
`)
)

func writeFiles(t *testing.T) (dir string) {
	dir = t.TempDir()
	for name, data := range map[string][]byte{"quad.su2": quadMesh, "bad.su2": badMesh, "input.yaml": fileInput} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return
}

func run(args ...string) (out string, err error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--logLevel", "error"))
	err = rootCmd.Execute()
	out = buf.String()
	return
}

func TestAssembleCommand(t *testing.T) {
	dir := writeFiles(t)
	mesh, input := filepath.Join(dir, "quad.su2"), filepath.Join(dir, "input.yaml")
	{ // Nonlinear assembly on a mesh stretched to twice its length
		out, err := run("assemble", "-F", mesh, "-I", input, "--parallelDegree", "2", "--dumpGradients=false")
		require.NoError(t, err)
		assert.Contains(t, out, "[NonLinear]")
		assert.Contains(t, out, "12\t\t\t= DOFs")
		assert.Contains(t, out, "4.000000e+00\t\t= Volume")
		assert.Contains(t, out, "= Rigid Residual")
		assert.NotContains(t, out, "Gauss point")
	}
	{
		out, err := run("assemble", "-F", mesh, "-I", input, "--dumpGradients", "--perf")
		require.NoError(t, err)
		assert.Contains(t, out, "Element 1 [QUAD4]")
	}
	{ // A missing input file prints an example
		out, err := run("assemble", "-F", mesh, "-I", "", "--dumpGradients=false", "--perf=false")
		assert.Error(t, err)
		assert.Contains(t, out, "Example File")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := writeFiles(t)
	{
		out, err := run("check", "-F", filepath.Join(dir, "quad.su2"), "-D", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "Fixed-left")
		// Only the left side is marked
		assert.Contains(t, out, "Boundary edge 0-1: boundary edge has no marker")
		assert.Contains(t, out, "Boundary edge 4-5: boundary edge has no marker")
		assert.NotContains(t, out, "edge 0-3")
		assert.NotContains(t, out, "edge 1-4")
		assert.Contains(t, out, "All 2 elements are valid")
	}
	{
		_, err := run("check", "-F", filepath.Join(dir, "quad.su2"), "-D", "3")
		assert.Error(t, err)
	}
	{
		out, err := run("check", "-F", filepath.Join(dir, "bad.su2"), "-D", "0")
		assert.Error(t, err)
		assert.Contains(t, out, "Element 1:")
	}
}

func TestGradientsCommand(t *testing.T) {
	dir := writeFiles(t)
	out, err := run("gradients", "-F", filepath.Join(dir, "quad.su2"), "-e", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Element 1 [QUAD4]")
	assert.Contains(t, out, "node      5")
	_, err = run("gradients", "-F", filepath.Join(dir, "quad.su2"), "-e", "2")
	assert.Error(t, err)
}
