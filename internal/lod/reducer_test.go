package lod

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/glbmodel/internal/model"
	"github.com/Faultbox/glbmodel/pkg/formats"
)

// gridModel assembles an n x n vertex grid with 2*(n-1)^2 faces.
func gridModel(n int) *model.Model3D {
	geom := &formats.Geometry{Name: "grid"}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			geom.Positions = append(geom.Positions, [3]float32{float32(x), float32(y), 0})
		}
	}
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			i := uint32(y*n + x)
			row := uint32(n)
			geom.Triangles = append(geom.Triangles,
				[3]uint32{i, i + 1, i + row},
				[3]uint32{i + 1, i + row + 1, i + row})
		}
	}
	return model.Assemble(geom, model.AssembleOptions{Fingerprint: model.FingerprintOf([]byte(fmt.Sprint(n)))})
}

func TestReduce_WithinBudgetReturnsInput(t *testing.T) {
	m := gridModel(5) // 32 faces
	r := NewReducer()

	assert.Same(t, m, r.Reduce(m, 32))
	assert.Same(t, m, r.Reduce(m, 1000))
}

func TestReduce_Budget(t *testing.T) {
	m := gridModel(51)
	require.Len(t, m.Faces, 5000)

	out := NewReducer().Reduce(m, 1000)

	assert.LessOrEqual(t, len(out.Faces), 1000)
	assert.Greater(t, len(out.Faces), 0)
	assert.Equal(t, fmt.Sprintf("grid (LOD: %d/5000)", len(out.Faces)), out.Name)
	assert.Equal(t, 2601, out.OriginalVertexCount)
	assert.Equal(t, 5000, out.OriginalFaceCount)
	assert.NotEqual(t, m.ID, out.ID)
}

func TestReduce_BudgetAcrossTargets(t *testing.T) {
	m := gridModel(51)
	r := NewReducer()

	for _, target := range []int{1, 2, 3, 10, 99, 500, 1250, 2500, 4999} {
		t.Run(fmt.Sprint(target), func(t *testing.T) {
			out := r.Reduce(m, target)
			assert.LessOrEqual(t, len(out.Faces), target)
			assert.Len(t, out.Colors, len(out.Vertices))

			for i, f := range out.Faces {
				n := uint32(len(out.Vertices))
				assert.True(t, f.V1 < n && f.V2 < n && f.V3 < n, "face %d %v out of range", i, f)
			}
			for _, v := range out.Vertices {
				assert.True(t, v.X >= out.Bounds.Min.X() && v.X <= out.Bounds.Max.X())
				assert.True(t, v.Y >= out.Bounds.Min.Y() && v.Y <= out.Bounds.Max.Y())
			}
		})
	}
}

func TestReduce_ZeroTarget(t *testing.T) {
	m := gridModel(5)

	out := NewReducer().Reduce(m, 0)
	assert.Empty(t, out.Faces)
	assert.NotNil(t, out.Faces)
	assert.Equal(t, "grid (LOD: 0/32)", out.Name)

	assert.Empty(t, NewReducer().Reduce(m, -3).Faces)
}

func TestReduce_Deterministic(t *testing.T) {
	m := gridModel(51)

	a := NewReducer().Reduce(m, 700)
	b := NewReducer(WithSeed(DefaultSeed)).Reduce(m, 700)

	assert.Equal(t, a.Faces, b.Faces)
	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.ID, b.ID)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	m := gridModel(51)
	faces := slices.Clone(m.Faces)
	vertices := slices.Clone(m.Vertices)
	name := m.Name

	NewReducer(WithSeed(7)).Reduce(m, 300)

	assert.Equal(t, faces, m.Faces)
	assert.Equal(t, vertices, m.Vertices)
	assert.Equal(t, name, m.Name)
}

func TestReduce_KeepsFlags(t *testing.T) {
	p := model.Placeholder("Cube")

	out := NewReducer().Reduce(p, 4)
	assert.True(t, out.Placeholder)
	assert.LessOrEqual(t, len(out.Faces), 4)
}

func TestWithSeed(t *testing.T) {
	assert.Equal(t, DefaultSeed, NewReducer().Seed())
	assert.Equal(t, int64(99), NewReducer(WithSeed(99)).Seed())
}

func TestWithSeed_ChangesShuffledFaces(t *testing.T) {
	m := gridModel(51)

	// At 4000 every face survives sampling, so the shuffle picks the subset.
	def := NewReducer().Reduce(m, 4000)
	seeded := NewReducer(WithSeed(7)).Reduce(m, 4000)
	again := NewReducer(WithSeed(7)).Reduce(m, 4000)

	require.Len(t, def.Faces, 4000)
	require.Len(t, seeded.Faces, 4000)
	assert.NotEqual(t, def.Faces, seeded.Faces)
	assert.Equal(t, seeded.Faces, again.Faces)
}
