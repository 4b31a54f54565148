package render

import "errors"

// Errors returned for programmer misuse. These are distinguishable
// from the numeric-degenerate paths (backface, zero-area, fully-behind
// near-plane triangles), which never return an error and are instead
// only visible through FrameStats.
var (
	// ErrNotInitialized is returned by DrawTriangle3D, DrawTriangle and
	// ClearBuffers when Init has not been called.
	ErrNotInitialized = errors.New("render: renderer not initialized")

	// ErrDimensionMismatch is returned by Init when it is called a
	// second time with different dimensions than the first call.
	ErrDimensionMismatch = errors.New("render: Init called twice with different dimensions")

	// ErrMissingMatrices is returned by DrawTriangle3D when SetMatrices
	// has never been called on this Renderer (matrices persist across
	// ClearBuffers).
	ErrMissingMatrices = errors.New("render: DrawTriangle3D called before SetMatrices")

	// ErrNilTexture is returned by DrawTriangle3D and DrawTriangle when
	// the supplied texture is nil.
	ErrNilTexture = errors.New("render: draw called with a nil texture")
)
