package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osuushi/meshindex/advanced"
	"github.com/osuushi/meshindex/internal/config"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const squarePoints = "0 0\n10 0\n10 10\n0 10\n"

func newTestCLI(t *testing.T, stdin string) (*CLI, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	return &CLI{
		Config: config.Default(),
		Log:    zaptest.NewLogger(t),
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
	}, stdout
}

func writeTemp(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestTriangulateCommand(t *testing.T) {
	cli, stdout := newTestCLI(t, squarePoints)
	require.NoError(t, cli.Triangulate("-"))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Len(t, strings.Fields(line), 3)
	}
}

func TestTriangulateCommandSVG(t *testing.T) {
	path := writeTemp(t, "square.svg", `<svg xmlns="http://www.w3.org/2000/svg">
		<polygon points="0,0 10,0 10,10 0,10"/>
	</svg>`)
	cli, stdout := newTestCLI(t, "")
	require.NoError(t, cli.Triangulate(path))
	assert.Equal(t, 2, strings.Count(stdout.String(), "\n"))
}

func TestReadErrors(t *testing.T) {
	cli, _ := newTestCLI(t, "0 0\nnope 1\n")
	err := cli.Triangulate("-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	err = cli.Triangulate(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open points")
}

func TestSampleCommand(t *testing.T) {
	path := writeTemp(t, "square.txt", squarePoints)

	cli, stdout := newTestCLI(t, "")
	require.NoError(t, cli.Sample(path, 2, 7))
	assert.Contains(t, stdout.String(), "Triangle{")

	stdout.Reset()
	require.NoError(t, cli.Sample(path, 20, 20))
	assert.Contains(t, stdout.String(), "outside the mesh")
}

func TestSampleCommandEmptyMesh(t *testing.T) {
	cli, _ := newTestCLI(t, "0 0\n1 1\n2 2\n")
	err := cli.Sample("-", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index -")
}

func TestTreeCommand(t *testing.T) {
	cli, stdout := newTestCLI(t, squarePoints)
	require.NoError(t, cli.Tree("-"))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, "2 triangles, 3 nodes, depth 2", lines[0])
	assert.Len(t, lines, 4)
}

func TestDrawCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "mesh.png")
	cli, _ := newTestCLI(t, squarePoints)
	require.NoError(t, cli.Draw("-", output, 10, []string{"2,7", "20, 20"}, false))
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	inline, stdout := newTestCLI(t, squarePoints)
	require.NoError(t, inline.Draw("-", output, 10, nil, true))
	assert.Contains(t, stdout.String(), "]1337;File=", "image is written inline")

	err = cli.Draw("-", output, 10, []string{"2;7"}, false)
	assert.EqualError(t, err, `probe "2;7" is not of the form x,y`)
}

func TestRenderCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "mesh.html")
	cli, _ := newTestCLI(t, squarePoints)
	require.NoError(t, cli.Render("-", output, []string{"2,7"}))
	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "built tree")
	assert.Contains(t, string(page), "Hit 1")
}

func TestExportCommand(t *testing.T) {
	input := writeTemp(t, "terrain.txt", "0 0 1\n10 0 2\n10 10 3\n0 10 4\n")
	output := filepath.Join(t.TempDir(), "terrain.glb")
	cli, _ := newTestCLI(t, "")
	require.NoError(t, cli.Export(input, output))

	doc, err := gltf.Open(output)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
}

func TestBenchCommand(t *testing.T) {
	cli, stdout := newTestCLI(t, "")
	require.NoError(t, cli.Bench(200, 1000, 1000, 3))
	out := stdout.String()
	for _, stage := range []string{"triangulate", "build", "sample", "tree"} {
		assert.Contains(t, out, stage)
	}
	assert.Contains(t, out, "of 1000 queries hit")

	assert.Error(t, cli.Bench(2, 10, 1000, 3))
	assert.Error(t, cli.Bench(10, -1, 1000, 3))
	assert.Error(t, cli.Bench(10, 10, 0, 3))
}

func TestParseProbes(t *testing.T) {
	probes, err := parseProbes([]string{"1,2", " -3.5 , 4e1 "})
	require.NoError(t, err)
	assert.Equal(t, []advanced.Point{{X: 1, Y: 2}, {X: -3.5, Y: 40}}, probes)

	probes, err = parseProbes(nil)
	require.NoError(t, err)
	assert.Empty(t, probes)

	for _, arg := range []string{"1", "1,2,3", "a,2", "1,b"} {
		_, err := parseProbes([]string{arg})
		assert.Error(t, err, arg)
	}
}
