package advanced

import "fmt"

// Triangle is the unit stored in the BVH. Its bounding box and centroid are
// computed once by NewTriangle; build triangles with NewTriangle, since the
// zero value has neither.
type Triangle struct {
	A, B, C Point

	aabb   AABB
	center Point
}

func NewTriangle(a, b, c Point) Triangle {
	return Triangle{
		A:    a,
		B:    b,
		C:    c,
		aabb: NewAABB(a, b, c),
		center: Point{
			X: (a.X + b.X + c.X) / 3,
			Y: (a.Y + b.Y + c.Y) / 3,
		},
	}
}

// Build spatial triangles for a triangulation. The triples must index into
// points; this is not checked.
func TrianglesFromTriples(points []Point, triples []Triple) []Triangle {
	triangles := make([]Triangle, 0, len(triples))
	for _, t := range triples {
		triangles = append(triangles, NewTriangle(points[t[0]], points[t[1]], points[t[2]]))
	}
	return triangles
}

func (t Triangle) AABB() AABB {
	return t.aabb
}

// Centroid of the three vertices.
func (t Triangle) Center() Point {
	return t.center
}

func (t Triangle) Vertices() [3]Point {
	return [3]Point{t.A, t.B, t.C}
}

// Twice the signed area. Positive for counterclockwise triangles.
func (t Triangle) SignedArea2() float64 {
	return cross(t.A, t.B, t.C)
}

// ContainsPoint reports whether p lies inside the triangle, for either winding.
//
// Each side test is a plain "> 0", so a zero cross product counts as the
// negative side. Which boundary points are inside then depends on the vertex
// order: some edges are included and others are not. In a mesh this means a
// point on a shared edge is usually claimed by one of the two triangles rather
// than falling between them. Zero area triangles contain nothing.
func (t Triangle) ContainsPoint(p Point) bool {
	side := cross(t.A, t.B, p) > 0
	if (cross(t.A, t.C, p) > 0) == side {
		return false
	}
	return (cross(t.B, t.C, p) > 0) == side
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{%s, %s, %s}", t.A, t.B, t.C)
}
