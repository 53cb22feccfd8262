package formats

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Geometry is the raw output of decoding one primitive of a GLB.
type Geometry struct {
	Name      string
	Version   uint32
	Positions [][3]float32
	Normals   [][3]float32 // May be shorter than Positions or empty
	TexCoords [][2]float32 // May be shorter than Positions or empty
	Triangles [][3]uint32

	// Synthesized is set when Triangles came from SequentialTriangles
	// because the primitive had no indices accessor.
	Synthesized bool

	// Warnings collects non-fatal problems with optional attributes.
	Warnings []error
}

// DecodeGeometry runs scene parsing, primitive selection and accessor
// decoding against a container produced by ReadGLB.
func DecodeGeometry(c *Container) (*Geometry, error) {
	jsonData, ok := c.JSON()
	if !ok {
		return nil, ErrNoJSONChunk
	}

	scene, err := ParseScene(jsonData)
	if err != nil {
		return nil, err
	}

	sel, err := scene.SelectPrimitive()
	if err != nil {
		return nil, err
	}

	bin, ok := c.BIN()
	if !ok {
		return nil, ErrNoBINChunk
	}

	positions, err := DecodePositions(scene, sel.Position, bin)
	if err != nil {
		return nil, fmt.Errorf("decoding POSITION accessor %d: %w", sel.Position, err)
	}

	geom := &Geometry{
		Name:      scene.ModelName(),
		Version:   c.Version,
		Positions: positions,
	}

	if sel.Normal != nil {
		if geom.Normals, err = DecodeNormals(scene, *sel.Normal, bin); err != nil {
			geom.Warnings = append(geom.Warnings, fmt.Errorf("NORMAL accessor %d ignored: %w", *sel.Normal, err))
		}
	}
	if sel.TexCoord != nil {
		if geom.TexCoords, err = DecodeTexCoords(scene, *sel.TexCoord, bin); err != nil {
			geom.Warnings = append(geom.Warnings, fmt.Errorf("TEXCOORD_0 accessor %d ignored: %w", *sel.TexCoord, err))
		}
	}

	switch {
	case sel.Indices != nil:
		indices, err := DecodeIndices(scene, *sel.Indices, bin)
		if err != nil {
			return nil, fmt.Errorf("decoding indices accessor %d: %w", *sel.Indices, err)
		}
		geom.Triangles = GroupTriangles(indices, len(positions))
	case len(positions) >= 3:
		geom.Triangles = SequentialTriangles(len(positions))
		geom.Synthesized = true
	}

	return geom, nil
}

// DecodePositions reads a FLOAT VEC3 accessor. Elements whose bytes fall
// outside bin are skipped rather than failing the whole accessor.
func DecodePositions(s *Scene, accessorIdx int, bin []byte) ([][3]float32, error) {
	return decodeVec3(s, accessorIdx, bin)
}

// DecodeNormals reads a FLOAT VEC3 normal accessor with the same
// permissive bounds policy as DecodePositions.
func DecodeNormals(s *Scene, accessorIdx int, bin []byte) ([][3]float32, error) {
	return decodeVec3(s, accessorIdx, bin)
}

// DecodeTexCoords reads a FLOAT VEC2 accessor.
func DecodeTexCoords(s *Scene, accessorIdx int, bin []byte) ([][2]float32, error) {
	acc, base, stride, err := s.resolve(accessorIdx, bin, AccessorTypeVec2, ComponentTypeFloat, 8)
	if err != nil {
		return nil, err
	}

	out := make([][2]float32, 0, boundedCount(acc.Count, len(bin), stride))
	for i := 0; i < acc.Count; i++ {
		off, ok := elementAt(base, i, stride, 8, len(bin))
		if !ok {
			break
		}
		out = append(out, [2]float32{
			readFloat32(bin, off),
			readFloat32(bin, off+4),
		})
	}
	return out, nil
}

func decodeVec3(s *Scene, accessorIdx int, bin []byte) ([][3]float32, error) {
	acc, base, stride, err := s.resolve(accessorIdx, bin, AccessorTypeVec3, ComponentTypeFloat, 12)
	if err != nil {
		return nil, err
	}

	out := make([][3]float32, 0, boundedCount(acc.Count, len(bin), stride))
	for i := 0; i < acc.Count; i++ {
		off, ok := elementAt(base, i, stride, 12, len(bin))
		// Offsets grow monotonically, so every later element is out of range too.
		if !ok {
			break
		}
		out = append(out, [3]float32{
			readFloat32(bin, off),
			readFloat32(bin, off+4),
			readFloat32(bin, off+8),
		})
	}
	return out, nil
}

// DecodeIndices reads a SCALAR index accessor of UNSIGNED_SHORT or
// UNSIGNED_INT components. Any other component type is ErrUnsupportedIndexType.
func DecodeIndices(s *Scene, accessorIdx int, bin []byte) ([]uint32, error) {
	if accessorIdx < 0 || accessorIdx >= len(s.Accessors) {
		return nil, fmt.Errorf("%w: %d", ErrAccessorIndex, accessorIdx)
	}
	acc := &s.Accessors[accessorIdx]

	var size int
	switch acc.ComponentType {
	case ComponentTypeUnsignedShort:
		size = 2
	case ComponentTypeUnsignedInt:
		size = 4
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedIndexType, acc.ComponentType)
	}
	if acc.Type != AccessorTypeScalar {
		return nil, fmt.Errorf("%w: indices must be SCALAR, got %q", ErrUnsupportedAccessorType, acc.Type)
	}

	bv, err := s.bufferView(acc, bin)
	if err != nil {
		return nil, err
	}

	stride := size
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	base := elementBase(bv, acc, len(bin))

	out := make([]uint32, 0, boundedCount(acc.Count, len(bin), stride))
	for i := 0; i < acc.Count; i++ {
		off, ok := elementAt(base, i, stride, size, len(bin))
		if !ok {
			break
		}
		if size == 2 {
			out = append(out, uint32(binary.LittleEndian.Uint16(bin[off:])))
		} else {
			out = append(out, binary.LittleEndian.Uint32(bin[off:]))
		}
	}
	return out, nil
}

// GroupTriangles groups indices into triples. A triple that references a
// vertex >= vertexCount is dropped, as is a trailing partial triple.
func GroupTriangles(indices []uint32, vertexCount int) [][3]uint32 {
	tris := make([][3]uint32, 0, len(indices)/3)
	limit := uint64(vertexCount)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if uint64(a) >= limit || uint64(b) >= limit || uint64(c) >= limit {
			continue
		}
		tris = append(tris, [3]uint32{a, b, c})
	}
	return tris
}

// SequentialTriangles builds (0,1,2), (1,2,3), ... over vertexCount vertices.
// It exists only so that unindexed primitives are renderable; the result is
// not the asset's real topology.
func SequentialTriangles(vertexCount int) [][3]uint32 {
	if vertexCount < 3 {
		return nil
	}
	tris := make([][3]uint32, 0, vertexCount-2)
	for i := 0; i+2 < vertexCount; i++ {
		tris = append(tris, [3]uint32{uint32(i), uint32(i + 1), uint32(i + 2)})
	}
	return tris
}

// resolve validates an attribute accessor and returns it together with the
// absolute byte offset of element 0 and the element stride.
func (s *Scene) resolve(accessorIdx int, bin []byte, wantType string, wantComponent, elemSize int) (*Accessor, int, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(s.Accessors) {
		return nil, 0, 0, fmt.Errorf("%w: %d", ErrAccessorIndex, accessorIdx)
	}
	acc := &s.Accessors[accessorIdx]

	if acc.ComponentType != wantComponent {
		return nil, 0, 0, fmt.Errorf("%w: %d, want %d", ErrUnsupportedComponentType, acc.ComponentType, wantComponent)
	}
	if acc.Type != wantType {
		return nil, 0, 0, fmt.Errorf("%w: %q, want %q", ErrUnsupportedAccessorType, acc.Type, wantType)
	}

	bv, err := s.bufferView(acc, bin)
	if err != nil {
		return nil, 0, 0, err
	}

	stride := elemSize
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	return acc, elementBase(bv, acc, len(bin)), stride, nil
}

// bufferView checks the accessor's bufferView reference and that the view
// lies inside the BIN chunk.
func (s *Scene) bufferView(acc *Accessor, bin []byte) (*BufferView, error) {
	if acc.BufferView == nil || *acc.BufferView < 0 || *acc.BufferView >= len(s.BufferViews) {
		idx := -1
		if acc.BufferView != nil {
			idx = *acc.BufferView
		}
		return nil, fmt.Errorf("%w: %d", ErrBufferViewIndex, idx)
	}
	bv := &s.BufferViews[*acc.BufferView]

	if bv.ByteOffset < 0 || bv.ByteLength < 0 || acc.ByteOffset < 0 ||
		uint64(bv.ByteOffset)+uint64(bv.ByteLength) > uint64(len(bin)) {
		return nil, fmt.Errorf("%w: offset %d length %d, BIN is %d bytes",
			ErrBufferViewRange, bv.ByteOffset, bv.ByteLength, len(bin))
	}
	return bv, nil
}

// elementBase returns the offset of element 0, clamped to binLen so that an
// absurd accessor byteOffset cannot overflow.
func elementBase(bv *BufferView, acc *Accessor, binLen int) int {
	if acc.ByteOffset > binLen-bv.ByteOffset {
		return binLen
	}
	return bv.ByteOffset + acc.ByteOffset
}

// elementAt returns the offset of element i if size bytes fit inside binLen.
// Callers stop at the first miss, which keeps i*stride from overflowing.
func elementAt(base, i, stride, size, binLen int) (int, bool) {
	off := uint64(base) + uint64(i)*uint64(stride)
	if off+uint64(size) > uint64(binLen) {
		return 0, false
	}
	return int(off), true
}

// boundedCount caps a declared element count by what bin could hold, so a
// hostile count cannot force a huge allocation.
func boundedCount(count, binLen, stride int) int {
	if count <= 0 || stride <= 0 {
		return 0
	}
	if limit := binLen/stride + 1; count > limit {
		return limit
	}
	return count
}

func readFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
