package model

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var cubePositions = [][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeIndices = []uint16{
	0, 1, 2, 0, 2, 3,
	4, 6, 5, 4, 7, 6,
	0, 4, 5, 0, 5, 1,
	3, 2, 6, 3, 6, 7,
	0, 3, 7, 0, 7, 4,
	1, 5, 6, 1, 6, 2,
}

// encodeGLB writes a single-primitive GLB with an independent encoder so the
// decoder is not tested against its own assumptions.
func encodeGLB(t *testing.T, generator string, positions [][3]float32, normals [][3]float32, indices []uint16) []byte {
	t.Helper()

	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, positions),
		},
	}
	if normals != nil {
		prim.Attributes[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	if indices != nil {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
	}
	doc.Meshes = []*gltf.Mesh{{Name: "fixture", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "fixture", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

// gridMesh returns an n x n vertex grid and its 2*(n-1)^2 triangles.
func gridMesh(n int) ([][3]float32, []uint16) {
	positions := make([][3]float32, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			positions = append(positions, [3]float32{float32(x), float32(y), float32((x * y) % 3)})
		}
	}

	indices := make([]uint16, 0, 6*(n-1)*(n-1))
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			i := uint16(y*n + x)
			row := uint16(n)
			indices = append(indices, i, i+1, i+row, i+1, i+row+1, i+row)
		}
	}
	return positions, indices
}
