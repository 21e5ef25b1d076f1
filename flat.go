package meshindex

import (
	"github.com/pkg/errors"
)

// Hosts that cannot share Go structs talk to this package through flat
// buffers: interleaved x, y coordinates, index triples, and triangles as six
// floats (x, y for each vertex). Coordinates are float32 at this boundary and
// float64 everywhere inside.

// Unpack interleaved coordinates. A trailing odd value is ignored.
func PointsFromFlat(coordinates []float32) []Point {
	points := make([]Point, len(coordinates)/2)
	for i := range points {
		points[i] = Point{
			X: float64(coordinates[2*i]),
			Y: float64(coordinates[2*i+1]),
		}
	}
	return points
}

// Pack triples into a flat index list.
func FlattenTriples(triples []Triple) []uint32 {
	indices := make([]uint32, 0, len(triples)*3)
	for _, triple := range triples {
		for _, index := range triple {
			indices = append(indices, uint32(index))
		}
	}
	return indices
}

// Unpack a flat index list, checking that it holds whole triples of indices
// below pointCount.
func TriplesFromFlat(indices []uint32, pointCount int) ([]Triple, error) {
	if len(indices)%3 != 0 {
		return nil, errors.Wrapf(ErrInvalidIndices, "%d indices do not form whole triangles", len(indices))
	}
	triples := make([]Triple, len(indices)/3)
	for i, index := range indices {
		if int64(index) >= int64(pointCount) {
			return nil, errors.Wrapf(ErrInvalidIndices, "index %d at position %d is out of range for %d points", index, i, pointCount)
		}
		triples[i/3][i%3] = int(index)
	}
	return triples, nil
}

// Triangulate interleaved coordinates into a flat list of index triples.
func TriangulateFlat(coordinates []float32) []uint32 {
	return (&Indexer{}).TriangulateFlat(coordinates)
}

func NewTreeFromFlat(coordinates []float32) (*Tree, error) {
	return (&Indexer{}).NewTreeFromFlat(coordinates)
}

// Index a triangulation supplied as flat buffers. Unlike NewTreeFromTriples,
// the indices are checked, since they come from outside the process.
func NewTreeFromFlatIndices(coordinates []float32, indices []uint32) (*Tree, error) {
	return (&Indexer{}).NewTreeFromFlatIndices(coordinates, indices)
}

func (ix *Indexer) TriangulateFlat(coordinates []float32) []uint32 {
	return FlattenTriples(ix.Triangulator.Triangulate(PointsFromFlat(coordinates)))
}

func (ix *Indexer) NewTreeFromFlat(coordinates []float32) (*Tree, error) {
	return ix.NewTree(PointsFromFlat(coordinates))
}

func (ix *Indexer) NewTreeFromFlatIndices(coordinates []float32, indices []uint32) (*Tree, error) {
	points := PointsFromFlat(coordinates)
	triples, err := TriplesFromFlat(indices, len(points))
	if err != nil {
		return nil, err
	}
	return ix.NewTreeFromTriples(points, triples)
}

// Sample, returning the hit triangle as six floats, or an empty slice on a
// miss.
func (t *Tree) SampleFlat(x, y float32) []float32 {
	triangle, ok := t.Sample(Point{X: float64(x), Y: float64(y)})
	if !ok {
		return []float32{}
	}
	return FlattenTriangle(triangle)
}

func FlattenTriangle(triangle Triangle) []float32 {
	return []float32{
		float32(triangle.A.X), float32(triangle.A.Y),
		float32(triangle.B.X), float32(triangle.B.Y),
		float32(triangle.C.X), float32(triangle.C.Y),
	}
}
