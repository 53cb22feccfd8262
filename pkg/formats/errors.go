package formats

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one
// of these, so callers can branch with errors.Is on the category alone.
var (
	ErrFormat      = errors.New("format error")
	ErrMissingData = errors.New("missing data")
	ErrRange       = errors.New("range error")
	ErrDecode      = errors.New("decode error")
)

// Format errors.
var (
	ErrTruncatedHeader = fmt.Errorf("%w: GLB header truncated", ErrFormat)
	ErrBadMagic        = fmt.Errorf("%w: invalid GLB magic: expected 'glTF'", ErrFormat)
	ErrLengthMismatch  = fmt.Errorf("%w: declared GLB length does not match buffer length", ErrFormat)
	ErrInvalidJSON     = fmt.Errorf("%w: invalid JSON chunk", ErrFormat)
)

// Missing data errors.
var (
	ErrNoJSONChunk   = fmt.Errorf("%w: no JSON chunk", ErrMissingData)
	ErrNoBINChunk    = fmt.Errorf("%w: no BIN chunk", ErrMissingData)
	ErrNoMeshes      = fmt.Errorf("%w: scene has no meshes", ErrMissingData)
	ErrNoAccessors   = fmt.Errorf("%w: scene has no accessors", ErrMissingData)
	ErrNoBufferViews = fmt.Errorf("%w: scene has no bufferViews", ErrMissingData)
	ErrNoPosition    = fmt.Errorf("%w: no primitive with a POSITION attribute", ErrMissingData)
)

// Range errors.
var (
	ErrAccessorIndex   = fmt.Errorf("%w: accessor index out of range", ErrRange)
	ErrBufferViewIndex = fmt.Errorf("%w: bufferView index out of range", ErrRange)
	ErrBufferViewRange = fmt.Errorf("%w: bufferView exceeds BIN chunk", ErrRange)
)

// Decode errors.
var (
	ErrUnsupportedIndexType     = fmt.Errorf("%w: unsupported index component type", ErrDecode)
	ErrUnsupportedComponentType = fmt.Errorf("%w: unsupported component type", ErrDecode)
	ErrUnsupportedAccessorType  = fmt.Errorf("%w: unsupported accessor type", ErrDecode)
)
