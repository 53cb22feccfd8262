package formats

import (
	"encoding/json"
	"fmt"
)

// DefaultModelName is used when the asset carries no generator string.
const DefaultModelName = "Unknown Model"

// Accessor component types.
const (
	ComponentTypeByte          = 5120
	ComponentTypeUnsignedByte  = 5121
	ComponentTypeShort         = 5122
	ComponentTypeUnsignedShort = 5123
	ComponentTypeUnsignedInt   = 5125
	ComponentTypeFloat         = 5126
)

// Accessor element types.
const (
	AccessorTypeScalar = "SCALAR"
	AccessorTypeVec2   = "VEC2"
	AccessorTypeVec3   = "VEC3"
	AccessorTypeVec4   = "VEC4"
)

// Primitive attribute semantics read by the decoder.
const (
	AttributePosition = "POSITION"
	AttributeNormal   = "NORMAL"
	AttributeTexCoord = "TEXCOORD_0"
)

// Scene is the subset of a glTF JSON document that geometry extraction needs.
type Scene struct {
	Asset       Asset        `json:"asset"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
}

// Asset holds glTF asset metadata.
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
	Copyright string `json:"copyright,omitempty"`
}

// Mesh is a named set of primitives.
type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive maps attribute semantics to accessor indices.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

// Accessor describes how to interpret a region of a bufferView.
type Accessor struct {
	Name          string `json:"name,omitempty"`
	BufferView    *int   `json:"bufferView,omitempty"`
	ByteOffset    int    `json:"byteOffset,omitempty"`
	ComponentType int    `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

// BufferView is a byte range of a buffer, optionally strided.
type BufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
}

// Buffer is a raw binary buffer declaration. In a GLB, buffer 0 is the BIN chunk.
type Buffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri,omitempty"`
}

// Selection identifies the primitive chosen for decoding and its accessors.
type Selection struct {
	Mesh      int
	Primitive int
	Position  int
	Indices   *int // nil when the primitive is unindexed
	Normal    *int
	TexCoord  *int
}

// ParseScene decodes the JSON chunk of a GLB.
func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &scene, nil
}

// ModelName returns asset.generator, or DefaultModelName when it is empty.
func (s *Scene) ModelName() string {
	if s.Asset.Generator != "" {
		return s.Asset.Generator
	}
	return DefaultModelName
}

// SelectPrimitive picks the first primitive, in mesh then primitive order,
// whose POSITION accessor index is valid. It is the first usable primitive,
// not the largest or best one.
func (s *Scene) SelectPrimitive() (Selection, error) {
	switch {
	case len(s.Meshes) == 0:
		return Selection{}, ErrNoMeshes
	case len(s.Accessors) == 0:
		return Selection{}, ErrNoAccessors
	case len(s.BufferViews) == 0:
		return Selection{}, ErrNoBufferViews
	}

	for mi, mesh := range s.Meshes {
		for pi, prim := range mesh.Primitives {
			pos, ok := prim.Attributes[AttributePosition]
			if !ok || !s.validAccessor(pos) {
				continue
			}

			sel := Selection{
				Mesh:      mi,
				Primitive: pi,
				Position:  pos,
			}
			if prim.Indices != nil {
				idx := *prim.Indices
				if !s.validAccessor(idx) {
					return Selection{}, fmt.Errorf("%w: indices %d in mesh %d primitive %d", ErrAccessorIndex, idx, mi, pi)
				}
				sel.Indices = &idx
			}
			if n, ok := prim.Attributes[AttributeNormal]; ok && s.validAccessor(n) {
				sel.Normal = &n
			}
			if uv, ok := prim.Attributes[AttributeTexCoord]; ok && s.validAccessor(uv) {
				sel.TexCoord = &uv
			}
			return sel, nil
		}
	}

	return Selection{}, ErrNoPosition
}

func (s *Scene) validAccessor(i int) bool {
	return i >= 0 && i < len(s.Accessors)
}
