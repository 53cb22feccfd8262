package main

import (
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/glbmodel/internal/model"
)

// exportGLB writes m as a single-mesh GLB file.
func exportGLB(m *model.Model3D, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeGLB(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encodeGLB writes positions, normals, UVs, vertex colors and indices.
func encodeGLB(w io.Writer, m *model.Model3D) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = m.Name

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	uvs := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{v.X, v.Y, v.Z}
		normals[i] = [3]float32{v.NX, v.NY, v.NZ}
		uvs[i] = [2]float32{v.U, v.V}
	}
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		indices = append(indices, f.V1, f.V2, f.V3)
	}

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   modeler.WritePosition(doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(doc, normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
		},
		Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
	}
	if len(m.Colors) == len(m.Vertices) {
		colors := make([][4]uint8, len(m.Colors))
		for i, c := range m.Colors {
			colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
		}
		prim.Attributes[gltf.COLOR_0] = modeler.WriteColor(doc, colors)
	}

	doc.Meshes = []*gltf.Mesh{{Name: m.Name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}
