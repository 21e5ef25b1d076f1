// Reading and writing point sets and triangulations as text and SVG.
package pointio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/meshindex/advanced"
	"github.com/pkg/errors"
)

// Points read from a file. Z holds an optional height per point; it is either
// empty or as long as XY.
type Points struct {
	XY []advanced.Point
	Z  []float64
}

// Heights of the points, zero where the input had none.
func (p Points) Heights() []float64 {
	if len(p.Z) == len(p.XY) {
		return p.Z
	}
	return make([]float64, len(p.XY))
}

// Read one point per line in the form "x y" or "x y z". Blank lines and lines
// starting with # are skipped. Either every point has a z value or none does.
func ReadText(in io.Reader) (Points, error) {
	var points Points
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		values, err := parseFloats(strings.Fields(line))
		if err != nil {
			return Points{}, errors.Wrapf(err, "line %d", lineNumber)
		}
		if len(values) != 2 && len(values) != 3 {
			return Points{}, errors.Errorf("line %d: expected 2 or 3 values, got %d", lineNumber, len(values))
		}

		hasZ := len(values) == 3
		if len(points.XY) > 0 && hasZ != (len(points.Z) > 0) {
			return Points{}, errors.Errorf("line %d: mixed 2D and 3D points", lineNumber)
		}
		points.XY = append(points.XY, advanced.Point{X: values[0], Y: values[1]})
		if hasZ {
			points.Z = append(points.Z, values[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return Points{}, errors.Wrap(err, "read points")
	}
	return points, nil
}

// Read the centers of every <circle>, then the vertices of every <polygon>,
// in document order. SVG y grows downward; coordinates are taken as written.
func ReadSVG(in io.Reader) (Points, error) {
	rootEl, err := svgparser.Parse(in, true)
	if err != nil {
		return Points{}, errors.Wrap(err, "parse SVG")
	}

	var points Points
	for _, circleEl := range rootEl.FindAll("circle") {
		values, err := parseFloats([]string{circleEl.Attributes["cx"], circleEl.Attributes["cy"]})
		if err != nil {
			return Points{}, errors.Wrap(err, "circle")
		}
		points.XY = append(points.XY, advanced.Point{X: values[0], Y: values[1]})
	}

	for _, polygonEl := range rootEl.FindAll("polygon") {
		// Commas and spaces are interchangeable in the points attribute
		fields := strings.Fields(strings.ReplaceAll(polygonEl.Attributes["points"], ",", " "))
		if len(fields)%2 != 0 {
			return Points{}, errors.Errorf("polygon has an odd number of coordinates (%d)", len(fields))
		}
		values, err := parseFloats(fields)
		if err != nil {
			return Points{}, errors.Wrap(err, "polygon")
		}
		for i := 0; i < len(values); i += 2 {
			points.XY = append(points.XY, advanced.Point{X: values[i], Y: values[i+1]})
		}
	}
	return points, nil
}

// Write points in the format ReadText accepts.
func WriteText(out io.Writer, points Points) error {
	w := bufio.NewWriter(out)
	for i, p := range points.XY {
		if len(points.Z) == len(points.XY) {
			fmt.Fprintf(w, "%g %g %g\n", p.X, p.Y, points.Z[i])
		} else {
			fmt.Fprintf(w, "%g %g\n", p.X, p.Y)
		}
	}
	return w.Flush()
}

// Write one triangle per line as three space separated indices.
func WriteTriples(out io.Writer, triples []advanced.Triple) error {
	w := bufio.NewWriter(out)
	for _, t := range triples {
		fmt.Fprintf(w, "%d %d %d\n", t[0], t[1], t[2])
	}
	return w.Flush()
}

func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q", field)
		}
		values[i] = value
	}
	return values, nil
}
