// Package model turns decoded GLB geometry into renderable CPU-side models.
package model

import (
	"image/color"

	"github.com/google/uuid"
)

// Vertex3D is a model vertex. Normal and UV are zero when the source
// primitive does not carry them.
type Vertex3D struct {
	X, Y, Z    float32
	NX, NY, NZ float32
	U, V       float32
}

// Position returns the vertex position as an array.
func (v Vertex3D) Position() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Face3D is a triangle referencing three vertices by index.
type Face3D struct {
	V1, V2, V3 uint32
}

// Model3D is the renderable result of parsing or reducing a GLB.
// A Model3D is never modified after construction and may be shared freely.
type Model3D struct {
	ID       uuid.UUID
	Name     string
	Vertices []Vertex3D
	Faces    []Face3D
	Colors   []color.NRGBA // One per vertex
	Bounds   BoundingBox

	// Counts before any LOD reduction.
	OriginalVertexCount int
	OriginalFaceCount   int

	// Placeholder marks the fallback cube returned for unusable input.
	Placeholder bool
	// Synthesized marks faces generated for an unindexed primitive.
	Synthesized bool
}

// ModelStats summarizes a model for display.
type ModelStats struct {
	VertexCount          int
	FaceCount            int
	ColorCount           int
	Bounds               BoundingBox
	EstimatedMemoryBytes int64
	ModelName            string
}

// AssembleOptions contains options for model assembly.
type AssembleOptions struct {
	// Fingerprint identifies the source bytes; the model ID is derived from it.
	Fingerprint Fingerprint
}
