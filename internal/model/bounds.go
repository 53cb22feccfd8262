package model

import "github.com/go-gl/mathgl/mgl32"

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// UnitBox is the [-1,1]^3 box used for models without vertices.
func UnitBox() BoundingBox {
	return BoundingBox{
		Min: mgl32.Vec3{-1, -1, -1},
		Max: mgl32.Vec3{1, 1, 1},
	}
}

// ComputeBounds scans vertices once for min and max per axis.
func ComputeBounds(vertices []Vertex3D) BoundingBox {
	if len(vertices) == 0 {
		return UnitBox()
	}

	first := mgl32.Vec3{vertices[0].X, vertices[0].Y, vertices[0].Z}
	b := BoundingBox{Min: first, Max: first}
	for _, v := range vertices[1:] {
		b.extend(mgl32.Vec3{v.X, v.Y, v.Z})
	}
	return b
}

func (b *BoundingBox) extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Size returns the extent along each axis.
func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b BoundingBox) Width() float32  { return b.Max.X() - b.Min.X() }
func (b BoundingBox) Height() float32 { return b.Max.Y() - b.Min.Y() }
func (b BoundingBox) Depth() float32  { return b.Max.Z() - b.Min.Z() }

// Contains reports whether p lies inside the box, borders included.
func (b BoundingBox) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
