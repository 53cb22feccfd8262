package formats

import (
	"encoding/binary"
	"encoding/json"
	"math"
)

// Helper functions for creating test data

// cubePositions are the 8 corners of the unit cube [-1,1]^3.
var cubePositions = [][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// cubeIndices are 12 triangles over cubePositions.
var cubeIndices = []uint16{
	0, 1, 2, 0, 2, 3, // back
	4, 6, 5, 4, 7, 6, // front
	0, 4, 5, 0, 5, 1, // bottom
	3, 2, 6, 3, 6, 7, // top
	0, 3, 7, 0, 7, 4, // left
	1, 5, 6, 1, 6, 2, // right
}

// makeGLB assembles a GLB container from a JSON chunk and an optional BIN
// chunk, padding both to 4 bytes the way exporters do.
func makeGLB(jsonData, bin []byte) []byte {
	jsonPadded := pad4(jsonData, ' ')
	total := 12 + 8 + len(jsonPadded)
	var binPadded []byte
	if bin != nil {
		binPadded = pad4(bin, 0)
		total += 8 + len(binPadded)
	}

	data := make([]byte, 0, total)
	data = append(data, 'g', 'l', 'T', 'F')
	data = binary.LittleEndian.AppendUint32(data, 2)
	data = binary.LittleEndian.AppendUint32(data, uint32(total))

	data = binary.LittleEndian.AppendUint32(data, uint32(len(jsonPadded)))
	data = binary.LittleEndian.AppendUint32(data, ChunkTypeJSON)
	data = append(data, jsonPadded...)

	if bin != nil {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(binPadded)))
		data = binary.LittleEndian.AppendUint32(data, ChunkTypeBIN)
		data = append(data, binPadded...)
	}
	return data
}

// setDeclaredLength rewrites bytes [8..12) to match len(data).
func setDeclaredLength(data []byte) []byte {
	binary.LittleEndian.PutUint32(data[8:], uint32(len(data)))
	return data
}

func pad4(b []byte, fill byte) []byte {
	out := append([]byte(nil), b...)
	for len(out)%4 != 0 {
		out = append(out, fill)
	}
	return out
}

func float32Bytes(values [][3]float32) []byte {
	out := make([]byte, 0, len(values)*12)
	for _, v := range values {
		for _, c := range v {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(c))
		}
	}
	return out
}

func uint16Bytes(values []uint16) []byte {
	out := make([]byte, 0, len(values)*2)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	return out
}

func uint32Bytes(values []uint32) []byte {
	out := make([]byte, 0, len(values)*4)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

func intPtr(v int) *int { return &v }

// meshScene builds a scene with one primitive: positions in bufferView 0
// and, when indexBytes > 0, indices in bufferView 1 right after them.
func meshScene(generator string, vertexCount, positionBytes, indexCount, indexBytes, indexComponent int) *Scene {
	scene := &Scene{
		Asset: Asset{Version: "2.0", Generator: generator},
		Accessors: []Accessor{{
			BufferView:    intPtr(0),
			ComponentType: ComponentTypeFloat,
			Count:         vertexCount,
			Type:          AccessorTypeVec3,
		}},
		BufferViews: []BufferView{{ByteOffset: 0, ByteLength: positionBytes}},
		Buffers:     []Buffer{{ByteLength: positionBytes + indexBytes}},
	}
	prim := Primitive{Attributes: map[string]int{AttributePosition: 0}}

	if indexBytes > 0 {
		scene.Accessors = append(scene.Accessors, Accessor{
			BufferView:    intPtr(1),
			ComponentType: indexComponent,
			Count:         indexCount,
			Type:          AccessorTypeScalar,
		})
		scene.BufferViews = append(scene.BufferViews, BufferView{
			ByteOffset: positionBytes,
			ByteLength: indexBytes,
		})
		prim.Indices = intPtr(1)
	}
	scene.Meshes = []Mesh{{Name: "mesh", Primitives: []Primitive{prim}}}
	return scene
}

// makeMeshGLB encodes positions and uint16 indices into a complete GLB.
// A nil indices slice produces an unindexed primitive.
func makeMeshGLB(generator string, positions [][3]float32, indices []uint16) []byte {
	posBytes := float32Bytes(positions)
	idxBytes := uint16Bytes(indices)

	scene := meshScene(generator, len(positions), len(posBytes), len(indices), len(idxBytes), ComponentTypeUnsignedShort)
	jsonData, err := json.Marshal(scene)
	if err != nil {
		panic(err)
	}

	bin := append(append([]byte(nil), posBytes...), idxBytes...)
	return makeGLB(jsonData, bin)
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
