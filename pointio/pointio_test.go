package pointio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/osuushi/meshindex/advanced"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	points, err := ReadText(strings.NewReader(`
# corners
0 0
10 0

  0 10
1.5 -2e1
`))
	require.NoError(t, err)
	assert.Equal(t, []advanced.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 1.5, Y: -20}}, points.XY)
	assert.Empty(t, points.Z)
	assert.Equal(t, []float64{0, 0, 0, 0}, points.Heights())
}

func TestReadTextHeights(t *testing.T) {
	points, err := ReadText(strings.NewReader("0 0 1\n1 0 2\n0 1 3\n"))
	require.NoError(t, err)
	assert.Len(t, points.XY, 3)
	assert.Equal(t, []float64{1, 2, 3}, points.Z)
	assert.Equal(t, points.Z, points.Heights())
}

func TestReadTextErrors(t *testing.T) {
	_, err := ReadText(strings.NewReader("0 0\n1 x\n"))
	assert.EqualError(t, err, `line 2: invalid number "x"`)

	_, err = ReadText(strings.NewReader("0 0\n1\n"))
	assert.EqualError(t, err, "line 2: expected 2 or 3 values, got 1")

	_, err = ReadText(strings.NewReader("0 0\n1 1 1\n"))
	assert.EqualError(t, err, "line 2: mixed 2D and 3D points")
}

func TestReadSVG(t *testing.T) {
	points, err := ReadSVG(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg">
  <polygon points="0,0 4,0 4,4" />
  <circle cx="1" cy="2" r="1" />
  <circle cx="3.5" cy="0.5" r="1" />
  <polygon points="10 10 12 10 11 13" />
</svg>`))
	require.NoError(t, err)
	assert.Equal(t, []advanced.Point{
		{X: 1, Y: 2}, {X: 3.5, Y: 0.5},
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4},
		{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 11, Y: 13},
	}, points.XY)
}

func TestReadSVGErrors(t *testing.T) {
	_, err := ReadSVG(strings.NewReader(`<svg><circle cx="a" cy="1"/></svg>`))
	assert.Error(t, err)

	_, err = ReadSVG(strings.NewReader(`<svg><polygon points="0,0 1"/></svg>`))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	points := Points{
		XY: []advanced.Point{{X: 0, Y: 0}, {X: 1.25, Y: -3}},
		Z:  []float64{7, 8},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, points))
	assert.Equal(t, "0 0 7\n1.25 -3 8\n", buf.String())

	read, err := ReadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, points, read)
}

func TestWriteTriples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTriples(&buf, []advanced.Triple{{0, 1, 2}, {2, 1, 3}}))
	assert.Equal(t, "0 1 2\n2 1 3\n", buf.String())
}
