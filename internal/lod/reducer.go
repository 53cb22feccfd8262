// Package lod reduces models to a triangle budget.
package lod

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/Faultbox/glbmodel/internal/model"
)

// DefaultSeed seeds the shuffle used when sampling alone misses the budget.
const DefaultSeed int64 = 42

// Reducer produces reduced copies of models. A Reducer has no mutable state
// and is safe for concurrent use.
type Reducer struct {
	seed int64
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithSeed overrides DefaultSeed.
func WithSeed(seed int64) Option {
	return func(r *Reducer) {
		r.seed = seed
	}
}

// NewReducer creates a Reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{seed: DefaultSeed}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed returns the shuffle seed.
func (r *Reducer) Seed() int64 {
	return r.seed
}

// Reduce returns a model with at most target faces. When m already fits,
// m itself is returned. m is never modified.
//
// Vertices are sampled at a stride of round(1/sqrt(f)) and faces at
// round(1/f), where f = target/len(m.Faces). Sampled faces are not
// re-indexed; any that reference a vertex past the reduced vertex list are
// dropped. If the survivors still exceed target they are shuffled with the
// reducer's seed and truncated.
func (r *Reducer) Reduce(m *model.Model3D, target int) *model.Model3D {
	inFaces := len(m.Faces)
	if inFaces <= target {
		return m
	}
	if target <= 0 {
		return derive(m, m.Vertices, m.Colors, []model.Face3D{})
	}

	factor := float64(target) / float64(inFaces)
	vertexStride := max(1, int(math.Round(1/math.Sqrt(factor))))
	faceStride := max(1, int(math.Round(1/factor)))

	vertices := make([]model.Vertex3D, 0, len(m.Vertices)/vertexStride+1)
	var colors []color.NRGBA
	if len(m.Colors) > 0 {
		colors = make([]color.NRGBA, 0, cap(vertices))
	}
	for i := 0; i < len(m.Vertices); i += vertexStride {
		vertices = append(vertices, m.Vertices[i])
		if i < len(m.Colors) {
			colors = append(colors, m.Colors[i])
		}
	}

	limit := uint32(len(vertices))
	faces := make([]model.Face3D, 0, inFaces/faceStride+1)
	for i := 0; i < inFaces; i += faceStride {
		f := m.Faces[i]
		if f.V1 >= limit || f.V2 >= limit || f.V3 >= limit {
			continue
		}
		faces = append(faces, f)
	}

	if len(faces) > target {
		rng := rand.New(rand.NewPCG(uint64(r.seed), uint64(r.seed)))
		rng.Shuffle(len(faces), func(i, j int) {
			faces[i], faces[j] = faces[j], faces[i]
		})
		faces = faces[:target]
	}

	return derive(m, vertices, colors, faces)
}

func derive(m *model.Model3D, vertices []model.Vertex3D, colors []color.NRGBA, faces []model.Face3D) *model.Model3D {
	tag := fmt.Sprintf("lod:%d/%d", len(faces), len(m.Faces))
	return &model.Model3D{
		ID:                  model.DerivedID(m.ID, tag),
		Name:                fmt.Sprintf("%s (LOD: %d/%d)", m.Name, len(faces), len(m.Faces)),
		Vertices:            vertices,
		Faces:               faces,
		Colors:              colors,
		Bounds:              model.ComputeBounds(vertices),
		OriginalVertexCount: m.OriginalVertexCount,
		OriginalFaceCount:   m.OriginalFaceCount,
		Placeholder:         m.Placeholder,
		Synthesized:         m.Synthesized,
	}
}
