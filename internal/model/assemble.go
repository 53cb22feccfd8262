package model

import (
	"github.com/Faultbox/glbmodel/pkg/formats"
)

// Assemble builds a Model3D from decoded geometry. Normals and UVs are
// attached to the vertices that have them; the rest stay zero.
func Assemble(geom *formats.Geometry, opts AssembleOptions) *Model3D {
	vertices := make([]Vertex3D, len(geom.Positions))
	for i, p := range geom.Positions {
		v := Vertex3D{X: p[0], Y: p[1], Z: p[2]}
		if i < len(geom.Normals) {
			n := geom.Normals[i]
			v.NX, v.NY, v.NZ = n[0], n[1], n[2]
		}
		if i < len(geom.TexCoords) {
			v.U, v.V = geom.TexCoords[i][0], geom.TexCoords[i][1]
		}
		vertices[i] = v
	}

	faces := make([]Face3D, len(geom.Triangles))
	for i, t := range geom.Triangles {
		faces[i] = Face3D{V1: t[0], V2: t[1], V3: t[2]}
	}

	name := geom.Name
	if name == "" {
		name = formats.DefaultModelName
	}

	bounds := ComputeBounds(vertices)
	return &Model3D{
		ID:                  opts.Fingerprint.ID(),
		Name:                name,
		Vertices:            vertices,
		Faces:               faces,
		Colors:              VertexColors(vertices, bounds),
		Bounds:              bounds,
		OriginalVertexCount: len(vertices),
		OriginalFaceCount:   len(faces),
		Synthesized:         geom.Synthesized,
	}
}
