package formats

import (
	"encoding/binary"
	"fmt"
)

// GLB container constants.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#binary-gltf-layout
const (
	GLBMagic   uint32 = 0x46546C67 // "glTF"
	GLBVersion uint32 = 2

	ChunkTypeJSON uint32 = 0x4E4F534A // "JSON"
	ChunkTypeBIN  uint32 = 0x004E4942 // "BIN\x00"

	glbHeaderSize      = 12
	glbChunkHeaderSize = 8
)

// Chunk is a single length-prefixed, typed segment of a GLB container.
type Chunk struct {
	Length uint32
	Type   uint32
	Data   []byte // Payload; aliases the input buffer
}

// Container is a validated GLB header plus the chunks that could be read.
type Container struct {
	Magic          uint32
	Version        uint32
	DeclaredLength uint32
	Chunks         []Chunk
	Truncated      bool // A chunk ran past the end of the buffer and was dropped
}

// ReadGLB validates the 12-byte GLB header and splits the rest of data into
// chunks. Chunk iteration stops quietly at the first chunk whose header or
// payload would read past the end of the buffer; everything read before it
// is kept and Truncated is set.
func ReadGLB(data []byte) (*Container, error) {
	if len(data) < glbHeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrTruncatedHeader, len(data))
	}

	if string(data[0:4]) != "glTF" {
		return nil, ErrBadMagic
	}

	c := &Container{
		Magic:          binary.LittleEndian.Uint32(data[0:4]),
		Version:        binary.LittleEndian.Uint32(data[4:8]),
		DeclaredLength: binary.LittleEndian.Uint32(data[8:12]),
	}

	if uint64(c.DeclaredLength) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: declared %d, actual %d", ErrLengthMismatch, c.DeclaredLength, len(data))
	}

	offset := glbHeaderSize
	for offset < len(data) {
		if offset+glbChunkHeaderSize > len(data) {
			c.Truncated = true
			break
		}

		length := binary.LittleEndian.Uint32(data[offset:])
		chunkType := binary.LittleEndian.Uint32(data[offset+4:])

		start := offset + glbChunkHeaderSize
		end := uint64(start) + uint64(length)
		if end > uint64(len(data)) {
			c.Truncated = true
			break
		}

		c.Chunks = append(c.Chunks, Chunk{
			Length: length,
			Type:   chunkType,
			Data:   data[start:int(end):int(end)],
		})
		offset = int(end)
	}

	return c, nil
}

// JSON returns the payload of the first JSON chunk.
func (c *Container) JSON() ([]byte, bool) {
	return c.firstChunk(ChunkTypeJSON)
}

// BIN returns the payload of the first BIN chunk.
func (c *Container) BIN() ([]byte, bool) {
	return c.firstChunk(ChunkTypeBIN)
}

func (c *Container) firstChunk(chunkType uint32) ([]byte, bool) {
	for i := range c.Chunks {
		if c.Chunks[i].Type == chunkType {
			return c.Chunks[i].Data, true
		}
	}
	return nil, false
}

// ChunkTypeName returns a printable name for a chunk type.
func ChunkTypeName(chunkType uint32) string {
	switch chunkType {
	case ChunkTypeJSON:
		return "JSON"
	case ChunkTypeBIN:
		return "BIN"
	default:
		return fmt.Sprintf("Unknown(0x%08X)", chunkType)
	}
}
