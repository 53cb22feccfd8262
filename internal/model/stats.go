package model

import "unsafe"

// Element sizes used by the memory estimate.
var (
	vertexSize = int64(unsafe.Sizeof(Vertex3D{})) // 32
	faceSize   = int64(unsafe.Sizeof(Face3D{}))   // 12
	colorSize  = int64(4)                         // NRGBA
)

// Stats reports counts, bounds and an estimate of the memory held by m.
func Stats(m *Model3D) ModelStats {
	if m == nil {
		return ModelStats{Bounds: UnitBox()}
	}
	return ModelStats{
		VertexCount: len(m.Vertices),
		FaceCount:   len(m.Faces),
		ColorCount:  len(m.Colors),
		Bounds:      m.Bounds,
		EstimatedMemoryBytes: int64(len(m.Vertices))*vertexSize +
			int64(len(m.Faces))*faceSize +
			int64(len(m.Colors))*colorSize,
		ModelName: m.Name,
	}
}
