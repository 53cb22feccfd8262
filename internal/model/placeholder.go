package model

// PlaceholderSuffix is appended to the name of a placeholder model.
const PlaceholderSuffix = " (Placeholder)"

var cubeCorners = [8][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeFaces = [12]Face3D{
	{0, 1, 2}, {0, 2, 3}, // back
	{4, 6, 5}, {4, 7, 6}, // front
	{0, 4, 5}, {0, 5, 1}, // bottom
	{3, 2, 6}, {3, 6, 7}, // top
	{0, 3, 7}, {0, 7, 4}, // left
	{1, 5, 6}, {1, 6, 2}, // right
}

// Placeholder returns the unit cube shown in place of a model that could not
// be decoded.
func Placeholder(name string) *Model3D {
	vertices := make([]Vertex3D, len(cubeCorners))
	for i, c := range cubeCorners {
		vertices[i] = Vertex3D{X: c[0], Y: c[1], Z: c[2]}
	}
	faces := make([]Face3D, len(cubeFaces))
	copy(faces, cubeFaces[:])

	bounds := UnitBox()
	return &Model3D{
		ID:                  DerivedID(Namespace, "placeholder:"+name),
		Name:                name + PlaceholderSuffix,
		Vertices:            vertices,
		Faces:               faces,
		Colors:              VertexColors(vertices, bounds),
		Bounds:              bounds,
		OriginalVertexCount: len(vertices),
		OriginalFaceCount:   len(faces),
		Placeholder:         true,
	}
}

