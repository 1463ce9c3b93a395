// Package errors provides structured error types for the asset registry.
//
// Errors are categorized by Op (the operation that failed) and Kind
// (error category). The Error type carries the asset category and name
// involved, the resource path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpDecode, errors.KindDecodeFailed).
//		Category("texture").
//		Path("assets/textures/bricks.png").
//		Cause(cause).
//		Detail("decoding image data").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.OpLookup, "mesh", "tank_body")
//	err := errors.DecodeFailed("sound", path, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
