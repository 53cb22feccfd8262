package model

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads consecutive hues evenly around the color wheel.
const goldenAngle = 137.50776405003785

// VertexColors derives one display color per vertex. The result depends only
// on the vertex index and its position normalized to bounds.
func VertexColors(vertices []Vertex3D, bounds BoundingBox) []color.NRGBA {
	colors := make([]color.NRGBA, len(vertices))
	size := bounds.Size()

	for i, v := range vertices {
		nx := normalize(v.X, bounds.Min.X(), size.X())
		ny := normalize(v.Y, bounds.Min.Y(), size.Y())
		nz := normalize(v.Z, bounds.Min.Z(), size.Z())

		hue := math.Mod(float64(i)*goldenAngle+nx*60, 360)
		sat := 0.55 + 0.35*ny
		val := 0.65 + 0.30*nz

		r, g, b := colorful.Hsv(hue, sat, val).Clamped().RGB255()
		colors[i] = color.NRGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return colors
}

// normalize maps v from [lo, lo+extent] to [0,1]; flat axes map to 0.5.
func normalize(v, lo, extent float32) float64 {
	if extent <= 0 {
		return 0.5
	}
	n := float64((v - lo) / extent)
	return math.Min(1, math.Max(0, n))
}
