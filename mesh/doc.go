// Package mesh provides triangle mesh assets decoded from scene files.
//
// A scene file may carry several objects; each becomes its own mesh
// entry. Decoding goes through the Decoder interface so the registry
// can swap scene formats; the built-in implementation reads Wavefront
// OBJ. Decoded scenes are transient: extract what you need and close
// them.
//
// The package also owns the built-in unit quad, the registry's
// fallback geometry. It is backed by a builtin handle, so it always
// exists, never refreshes, and is exempt from the usage audit.
package mesh
