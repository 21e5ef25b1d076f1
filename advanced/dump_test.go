package advanced

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osuushi/meshindex/dbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	defer dbg.Reset()

	root := BuildTree(meshFromPoints(t, LoadFixture("hexagon")))
	var buf bytes.Buffer
	require.NoError(t, root.Dump(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, root.Stats().Nodes)
	assert.True(t, strings.HasPrefix(lines[0], "Node "))
	assert.Contains(t, lines[0], dbg.Name(root.Left()))
	assert.True(t, strings.HasPrefix(lines[1], "  "), "children are indented")

	leaves := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " "), "Leaf ") {
			leaves++
			assert.Contains(t, line, "Triangle{")
		}
	}
	assert.Equal(t, 6, leaves)
}

func TestDrawMesh(t *testing.T) {
	points := LoadFixture("scatter")
	triangles := meshFromPoints(t, points)
	root := BuildTree(triangles)

	c := DrawMesh(triangles, DrawOptions{
		Tree:   root,
		Probes: []Point{triangles[0].Center(), {-1000, -1000}},
	})
	// Auto scale fits the longer side into 800 pixels, plus padding
	assert.LessOrEqual(t, c.Width(), 800+2*drawPadding+1)
	assert.LessOrEqual(t, c.Height(), 800+2*drawPadding+1)

	path := filepath.Join(t.TempDir(), "mesh.png")
	assert.NoError(t, c.SavePNG(path))
}

func TestDrawMeshEmpty(t *testing.T) {
	c := DrawMesh(nil, DrawOptions{Scale: 10})
	assert.Equal(t, 10+2*drawPadding, c.Width())
	assert.Equal(t, 10+2*drawPadding, c.Height())
}
