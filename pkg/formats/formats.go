// Package formats provides parsers for the GLB (binary glTF 2.0) container
// and the parts of the glTF scene description needed to extract geometry.
package formats

// Note: container framing lives in glb.go
// Note: scene JSON and primitive selection live in gltf.go
// Note: accessor decoding lives in accessor.go
