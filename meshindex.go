// Delaunay triangulation and point location for 2D point sets.
//
// This package turns scattered points into a triangle mesh and builds a
// bounding volume hierarchy over it, so that the triangle under any point can
// be found quickly. The mesh can also be supplied from elsewhere, in which case
// only the hierarchy is built.
//
// The advanced package exposes the pieces individually, with their knobs.
package meshindex

import (
	"github.com/osuushi/meshindex/advanced"
	"github.com/pkg/errors"
)

type Point = advanced.Point
type Triangle = advanced.Triangle
type Triple = advanced.Triple
type TreeStats = advanced.TreeStats

var (
	// The triangulation has no triangles (fewer than three points, or all of
	// them collinear), so there is nothing to index.
	ErrEmptyMesh = errors.New("mesh has no triangles")
	// Flat index buffers must hold whole triples of in-range indices.
	ErrInvalidIndices = errors.New("invalid triangle indices")
)

// Indexer holds the settings used to build trees. The zero value uses the
// defaults, which is what the package level functions do.
type Indexer struct {
	Triangulator advanced.Triangulator
	TreeBuilder  advanced.TreeBuilder
}

// Compute the Delaunay triangulation of points, as triples of indices into
// points.
func Triangulate(points []Point) []Triple {
	return advanced.Triangulate(points)
}

// Tree answers point location queries over a fixed set of triangles. It is
// immutable, and safe for concurrent use.
type Tree struct {
	root *advanced.Node
}

// Triangulate the points and index the result.
func NewTree(points []Point) (*Tree, error) {
	return (&Indexer{}).NewTree(points)
}

// Index an existing triangulation. Every triple must index into points; that
// is the caller's responsibility.
func NewTreeFromTriples(points []Point, triples []Triple) (*Tree, error) {
	return (&Indexer{}).NewTreeFromTriples(points, triples)
}

// Index triangles directly.
func NewTreeFromTriangles(triangles []Triangle) (*Tree, error) {
	return (&Indexer{}).NewTreeFromTriangles(triangles)
}

func (ix *Indexer) Triangulate(points []Point) []Triple {
	return ix.Triangulator.Triangulate(points)
}

func (ix *Indexer) NewTree(points []Point) (*Tree, error) {
	return ix.NewTreeFromTriples(points, ix.Triangulator.Triangulate(points))
}

func (ix *Indexer) NewTreeFromTriples(points []Point, triples []Triple) (*Tree, error) {
	if len(triples) == 0 {
		return nil, ErrEmptyMesh
	}
	return ix.NewTreeFromTriangles(advanced.TrianglesFromTriples(points, triples))
}

func (ix *Indexer) NewTreeFromTriangles(triangles []Triangle) (tree *Tree, err error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	defer func() {
		recoveredErr := advanced.HandleMeshPanicRecover(recover())
		if recoveredErr != nil {
			tree = nil
			err = recoveredErr
		}
	}()
	return &Tree{root: ix.TreeBuilder.Build(triangles)}, nil
}

// Find the triangle containing p. Points outside the mesh give false; a point
// on an interior edge normally lands in one of the triangles sharing it.
func (t *Tree) Sample(p Point) (Triangle, bool) {
	return t.root.Sample(p)
}

func (t *Tree) Stats() TreeStats {
	return t.root.Stats()
}

func (t *Tree) Triangles() []Triangle {
	return t.root.Triangles()
}

// Root of the underlying hierarchy, for dumping and drawing.
func (t *Tree) Root() *advanced.Node {
	return t.root
}
