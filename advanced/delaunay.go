package advanced

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

// SuperTriangleScale is how far, in multiples of the larger extent of the
// input's bounding box, the synthetic enclosing triangle reaches out.
const SuperTriangleScale = 20.0

// MinSuperTriangleScale is the smallest scale used. Below about 1.37 the
// super-triangle no longer contains the corners of the bounding box.
const MinSuperTriangleScale = 2.0

// Triangulator computes Delaunay triangulations with an incremental sweep over
// the points in order of ascending x. The zero value is ready to use.
//
// Every candidate triangle lives on one of two lists. The open list holds
// triangles that may still be invalidated by a later point; once the sweep
// line has passed the right edge of a triangle's circumcircle, no later point
// can fall inside it, and the triangle moves to the closed list for good.
type Triangulator struct {
	// Tolerance for the in-circle test. Zero means Epsilon.
	Epsilon float64
	// Size of the super-triangle. Zero means SuperTriangleScale; positive
	// values below MinSuperTriangleScale are raised to it.
	SuperTriangleScale float64
	// Optional. Receives one debug line per triangulation.
	Logger *zap.Logger
}

// Triangulate with the default settings.
func Triangulate(points []Point) []Triple {
	return (&Triangulator{}).Triangulate(points)
}

// Triangulate returns the triangles of the Delaunay triangulation of points,
// as index triples into points. With fewer than three points there are no
// triangles and the result is nil. The input slice is not modified.
func (tr *Triangulator) Triangulate(points []Point) []Triple {
	n := len(points)
	if n < 3 {
		return nil
	}
	start := time.Now()
	epsilon := tr.epsilon()

	// Work on a copy so that the super-triangle can live at indices n..n+2
	work := make([]Point, n, n+3)
	copy(work, points)
	work = append(work, tr.superTriangle(points)...)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].X < points[order[b]].X
	})

	open := []circumcircle{newCircumcircle(work, n, n+1, n+2, epsilon)}
	var closed []circumcircle
	var edges []edge

	for _, c := range order {
		p := work[c]
		edges = edges[:0]

		kept := open[:0]
		for _, circle := range open {
			if circle.degenerate {
				// No finite circle to test against; fold it into this cavity
				edges = append(edges, circle.edges()...)
				continue
			}

			dx := p.X - circle.x
			if dx > 0 && dx*dx > circle.radiusSq {
				closed = append(closed, circle)
				continue
			}

			dy := p.Y - circle.y
			if dx*dx+dy*dy-circle.radiusSq > epsilon {
				kept = append(kept, circle)
				continue
			}

			edges = append(edges, circle.edges()...)
		}
		open = kept

		for _, e := range uniqueEdges(edges) {
			open = append(open, newCircumcircle(work, e.a, e.b, c, epsilon))
		}
	}
	closed = append(closed, open...)

	var result []Triple
	degenerate := 0
	for i := range closed {
		circle := &closed[i]
		if circle.i >= n || circle.j >= n || circle.k >= n {
			continue
		}
		if circle.degenerate {
			degenerate++
			continue
		}
		result = append(result, circle.triple())
	}

	tr.logger().Debug("triangulated points",
		zap.Int("points", n),
		zap.Int("candidates", len(closed)),
		zap.Int("triangles", len(result)),
		zap.Int("degenerate", degenerate),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result
}

// The three vertices of a triangle that strictly contains every input point.
func (tr *Triangulator) superTriangle(points []Point) []Point {
	bounds := NewAABB(points...)
	dx := bounds.Width()
	dy := bounds.Height()
	dMax := math.Max(dx, dy)
	if dMax == 0 {
		// All points coincide; any positive extent will enclose them
		dMax = 1
	}
	xMid := bounds.MinX + dx*0.5
	yMid := bounds.MinY + dy*0.5
	scale := tr.superTriangleScale()

	return []Point{
		{X: xMid - scale*dMax, Y: yMid - dMax},
		{X: xMid, Y: yMid + scale*dMax},
		{X: xMid + scale*dMax, Y: yMid - dMax},
	}
}

func (tr *Triangulator) epsilon() float64 {
	if tr.Epsilon > 0 {
		return tr.Epsilon
	}
	return Epsilon
}

func (tr *Triangulator) superTriangleScale() float64 {
	if tr.SuperTriangleScale > 0 {
		return math.Max(tr.SuperTriangleScale, MinSuperTriangleScale)
	}
	return SuperTriangleScale
}

func (tr *Triangulator) logger() *zap.Logger {
	if tr.Logger == nil {
		return zap.NewNop()
	}
	return tr.Logger
}

// Directed edge between two point indices.
type edge struct {
	a, b int
}

// Undirected key for an edge, so (a, b) and (b, a) collide.
func (e edge) key() edge {
	if e.a > e.b {
		return edge{e.b, e.a}
	}
	return e
}

func (c *circumcircle) edges() []edge {
	return []edge{{c.i, c.j}, {c.j, c.k}, {c.k, c.i}}
}

// Edges shared by two invalidated triangles are interior to the cavity, so
// copies of an edge cancel in pairs. The rest form its boundary, returned in
// the order first seen. An edge seen an odd number of times, which a folded
// degenerate candidate can cause, keeps its first copy.
func uniqueEdges(edges []edge) []edge {
	counts := make(map[edge]int, len(edges))
	for _, e := range edges {
		counts[e.key()]++
	}
	result := make([]edge, 0, len(edges))
	for _, e := range edges {
		key := e.key()
		if counts[key]%2 == 1 {
			result = append(result, e)
			counts[key] = 0
		}
	}
	return result
}
