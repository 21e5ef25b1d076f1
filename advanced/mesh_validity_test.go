package advanced

// This contains no actual tests. It is just a helper for checking
// triangulation validity.

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a Delaunay triangulation is valid. The rules are:
// 1. Every index refers to an input point, and no triangle repeats a vertex.
// 2. No triangle has zero area.
// 3. No edge is shared by more than two triangles.
// 4. No input point lies inside any triangle's circumcircle, beyond Epsilon.
// 5. If coversHull is set, the triangle areas add up to the convex hull area.
//
// Rule 5 is optional because the finite super-triangle can leave slivers along
// a nearly straight stretch of hull untriangulated. Fixtures that check it are
// known not to have any.
func AssertValidDelaunay(t *testing.T, points []Point, triples []Triple, coversHull bool) {
	n := len(points)
	edgeCounts := make(map[edge]int)
	var totalArea float64

	for _, triple := range triples {
		for _, index := range triple {
			require.True(t, index >= 0 && index < n, "index %d out of range in %v", index, triple)
		}
		require.True(t, triple[0] != triple[1] && triple[1] != triple[2] && triple[2] != triple[0], "triangle %v repeats a vertex", triple)

		area := math.Abs(cross(points[triple[0]], points[triple[1]], points[triple[2]])) / 2
		assert.NotZero(t, area, "triangle %v has zero area", triple)
		totalArea += area

		for _, e := range []edge{{triple[0], triple[1]}, {triple[1], triple[2]}, {triple[2], triple[0]}} {
			edgeCounts[e.key()]++
		}
	}

	for e, count := range edgeCounts {
		assert.LessOrEqual(t, count, 2, "edge %v is shared by %d triangles", e, count)
	}

	for _, triple := range triples {
		center, radiusSq := referenceCircumcircle(points[triple[0]], points[triple[1]], points[triple[2]])
		tolerance := Epsilon + 1e-9*radiusSq
		for i, p := range points {
			if i == triple[0] || i == triple[1] || i == triple[2] {
				continue
			}
			assert.Greater(t, p.DistanceSq(center)-radiusSq, -tolerance,
				"point %d %s is inside the circumcircle of %v", i, p, triple)
		}
	}

	hullArea := convexHullArea(points)
	if coversHull {
		assert.InDelta(t, hullArea, totalArea, hullArea*1e-9, "triangles must tile the convex hull")
	} else {
		assert.LessOrEqual(t, totalArea, hullArea*(1+1e-9), "triangles must not overlap")
	}
}

// Circumcircle by the determinant formula, independent of the sweep's own
// bisector computation.
func referenceCircumcircle(a, b, c Point) (Point, float64) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	center := Point{
		X: (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d,
		Y: (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d,
	}
	return center, center.DistanceSq(a)
}

// Monotone chain.
func convexHullArea(points []Point) float64 {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	var hull []Point
	for pass := 0; pass < 2; pass++ {
		start := len(hull)
		for _, p := range sorted {
			for len(hull) >= start+2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		// The last point of each chain starts the other one
		hull = hull[:len(hull)-1]
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	var area float64
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		area += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(area) / 2
}

// Deterministic, well spread points in a disk (Vogel's sunflower). The hull is
// round, so the triangulation always covers it.
func sunflowerPoints(n int, spacing float64) []Point {
	golden := math.Pi * (3 - math.Sqrt(5))
	points := make([]Point, n)
	for i := range points {
		r := spacing * math.Sqrt(float64(i)+0.5)
		theta := float64(i) * golden
		points[i] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return points
}
