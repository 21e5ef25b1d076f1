// Export of triangulated height fields as glTF.
package export

import (
	"github.com/osuushi/meshindex/advanced"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Build a glTF document holding the mesh as one node. The plane of the points
// becomes the ground plane: point (x, y) with height h is stored as (x, h, -y),
// so +Y is up and the mesh looks the same from above as it does in 2D.
// Triangles are wound counterclockwise when seen from above.
//
// heights may be nil, which puts every vertex at height 0.
func Document(points []advanced.Point, heights []float64, triples []advanced.Triple) (*gltf.Document, error) {
	if len(triples) == 0 {
		return nil, errors.New("mesh has no triangles")
	}
	if heights != nil && len(heights) != len(points) {
		return nil, errors.Errorf("got %d heights for %d points", len(heights), len(points))
	}

	positions := make([][3]float32, len(points))
	for i, p := range points {
		var h float64
		if heights != nil {
			h = heights[i]
		}
		positions[i] = [3]float32{float32(p.X), float32(h), float32(-p.Y)}
	}

	indices := make([]uint32, 0, len(triples)*3)
	for _, t := range triples {
		for _, index := range t {
			if index < 0 || index >= len(points) {
				return nil, errors.Errorf("triangle %v indexes past %d points", t, len(points))
			}
		}
		a, b, c := t[0], t[1], t[2]
		if advanced.NewTriangle(points[a], points[b], points[c]).SignedArea2() < 0 {
			b, c = c, b
		}
		indices = append(indices, uint32(a), uint32(b), uint32(c))
	}

	doc := gltf.NewDocument()
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "mesh",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attributes,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "mesh", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// Write the mesh to path as binary glTF.
func GLB(path string, points []advanced.Point, heights []float64, triples []advanced.Triple) error {
	doc, err := Document(points, heights, triples)
	if err != nil {
		return err
	}
	return errors.Wrap(gltf.SaveBinary(doc, path), "save GLB")
}
