package model

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/google/uuid"
)

// Namespace is the UUID namespace model IDs are derived in.
var Namespace = uuid.MustParse("8f1c5a3e-2b7d-4e0a-9c61-3d5b7f2a9e14")

// Fingerprint is a content hash of a GLB buffer.
type Fingerprint [sha256.Size]byte

// FingerprintOf hashes the length of data followed by its bytes.
func FingerprintOf(data []byte) Fingerprint {
	h := sha256.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
	h.Write(n[:])
	h.Write(data)

	var fp Fingerprint
	h.Sum(fp[:0])
	return fp
}

// String returns the hex encoding of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, for logs.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:6])
}

// ID returns the model ID derived from the fingerprint.
func (f Fingerprint) ID() uuid.UUID {
	return uuid.NewSHA1(Namespace, f[:])
}

// DerivedID returns the ID of a model derived from parent, such as a
// reduced variant. tag distinguishes siblings.
func DerivedID(parent uuid.UUID, tag string) uuid.UUID {
	return uuid.NewSHA1(parent, []byte(tag))
}
