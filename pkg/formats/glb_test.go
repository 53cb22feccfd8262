package formats

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestReadGLB_HeaderValidation(t *testing.T) {
	valid := makeGLB([]byte(`{"asset":{"version":"2.0"}}`), nil)

	badMagic := append([]byte(nil), valid...)
	copy(badMagic[0:4], "GLTX")

	mismatch := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(mismatch[8:], uint32(len(valid)+4))

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"valid", valid, nil},
		{"bad magic", badMagic, ErrBadMagic},
		{"length mismatch", mismatch, ErrLengthMismatch},
		{"empty data", []byte{}, ErrTruncatedHeader},
		{"truncated header", []byte{'g', 'l', 'T'}, ErrTruncatedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGLB(tt.data)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("error %v is not a format error", err)
			}
		})
	}
}

func TestReadGLB_Header(t *testing.T) {
	data := makeGLB([]byte(`{}`), []byte{1, 2, 3, 4})

	c, err := ReadGLB(data)
	if err != nil {
		t.Fatalf("ReadGLB failed: %v", err)
	}

	if c.Magic != GLBMagic {
		t.Errorf("Magic = 0x%08X, want 0x%08X", c.Magic, GLBMagic)
	}
	if c.Version != GLBVersion {
		t.Errorf("Version = %d, want %d", c.Version, GLBVersion)
	}
	if int(c.DeclaredLength) != len(data) {
		t.Errorf("DeclaredLength = %d, want %d", c.DeclaredLength, len(data))
	}
	if len(c.Chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(c.Chunks))
	}
	if c.Truncated {
		t.Error("Truncated = true for a well-formed container")
	}

	bin, ok := c.BIN()
	if !ok {
		t.Fatal("BIN chunk not found")
	}
	if len(bin) != 4 || bin[0] != 1 || bin[3] != 4 {
		t.Errorf("BIN = %v, want [1 2 3 4]", bin)
	}
}

func TestReadGLB_TruncatedChunk(t *testing.T) {
	data := makeGLB([]byte(`{"asset":{"version":"2.0"}}`), nil)

	// Chunk header promising 100 bytes with only 4 present.
	data = binary.LittleEndian.AppendUint32(data, 100)
	data = binary.LittleEndian.AppendUint32(data, ChunkTypeBIN)
	data = append(data, 0, 0, 0, 0)
	data = setDeclaredLength(data)

	c, err := ReadGLB(data)
	if err != nil {
		t.Fatalf("ReadGLB failed: %v", err)
	}
	if !c.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(c.Chunks) != 1 {
		t.Errorf("chunk count = %d, want 1 (partial chunk must not be exposed)", len(c.Chunks))
	}
	if _, ok := c.BIN(); ok {
		t.Error("partial BIN chunk was exposed")
	}
	if _, ok := c.JSON(); !ok {
		t.Error("JSON chunk read before the truncation was lost")
	}
}

func TestReadGLB_PartialChunkHeader(t *testing.T) {
	data := makeGLB([]byte(`{}`), nil)
	data = append(data, 0xFF, 0xFF, 0xFF, 0xFF) // 4 of the 8 header bytes
	data = setDeclaredLength(data)

	c, err := ReadGLB(data)
	if err != nil {
		t.Fatalf("ReadGLB failed: %v", err)
	}
	if !c.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(c.Chunks) != 1 {
		t.Errorf("chunk count = %d, want 1", len(c.Chunks))
	}
}

func TestReadGLB_UnknownChunksIgnored(t *testing.T) {
	data := makeGLB([]byte(`{}`), []byte{9, 9, 9, 9})

	// Extra chunk of an unknown type, then a second BIN that must not win.
	data = binary.LittleEndian.AppendUint32(data, 4)
	data = binary.LittleEndian.AppendUint32(data, 0x12345678)
	data = append(data, 1, 1, 1, 1)
	data = binary.LittleEndian.AppendUint32(data, 4)
	data = binary.LittleEndian.AppendUint32(data, ChunkTypeBIN)
	data = append(data, 7, 7, 7, 7)
	data = setDeclaredLength(data)

	c, err := ReadGLB(data)
	if err != nil {
		t.Fatalf("ReadGLB failed: %v", err)
	}
	if len(c.Chunks) != 4 {
		t.Fatalf("chunk count = %d, want 4", len(c.Chunks))
	}

	bin, _ := c.BIN()
	if bin[0] != 9 {
		t.Errorf("BIN()[0] = %d, want 9 (first BIN chunk)", bin[0])
	}
}

func TestReadGLB_ZeroLengthChunk(t *testing.T) {
	data := makeGLB([]byte(`{}`), nil)
	data = binary.LittleEndian.AppendUint32(data, 0)
	data = binary.LittleEndian.AppendUint32(data, ChunkTypeBIN)
	data = setDeclaredLength(data)

	c, err := ReadGLB(data)
	if err != nil {
		t.Fatalf("ReadGLB failed: %v", err)
	}
	bin, ok := c.BIN()
	if !ok {
		t.Fatal("zero-length BIN chunk not found")
	}
	if len(bin) != 0 {
		t.Errorf("len(BIN) = %d, want 0", len(bin))
	}
}

func TestChunkTypeName(t *testing.T) {
	tests := []struct {
		chunkType uint32
		want      string
	}{
		{ChunkTypeJSON, "JSON"},
		{ChunkTypeBIN, "BIN"},
		{0xDEADBEEF, "Unknown(0xDEADBEEF)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ChunkTypeName(tt.chunkType); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
