package model

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/glbmodel/pkg/formats"
)

// DecodeOptions contains options for Decode.
type DecodeOptions struct {
	// Logger receives debug and warning output. Nil disables logging.
	Logger *zap.Logger
	// Fingerprint of data, if the caller already computed it.
	Fingerprint *Fingerprint
}

// Decode runs the full synchronous pipeline: container, scene, accessors,
// assembly. It returns the unreduced model or the first fatal error.
func Decode(data []byte, opts DecodeOptions) (*Model3D, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c, err := formats.ReadGLB(data)
	if err != nil {
		return nil, err
	}
	if c.Version != formats.GLBVersion {
		log.Debug("unexpected GLB version", zap.Uint32("version", c.Version))
	}
	if c.Truncated {
		log.Debug("GLB chunk list truncated", zap.Int("chunks", len(c.Chunks)))
	}

	geom, err := formats.DecodeGeometry(c)
	if err != nil {
		return nil, err
	}
	if len(geom.Warnings) > 0 {
		log.Warn("optional attributes ignored", zap.Error(errors.Join(geom.Warnings...)))
	}
	if geom.Synthesized {
		log.Debug("primitive has no indices, using sequential triangles",
			zap.Int("vertices", len(geom.Positions)))
	}

	var fp Fingerprint
	if opts.Fingerprint != nil {
		fp = *opts.Fingerprint
	} else {
		fp = FingerprintOf(data)
	}

	m := Assemble(geom, AssembleOptions{Fingerprint: fp})
	log.Debug("model assembled",
		zap.String("name", m.Name),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)))
	return m, nil
}
