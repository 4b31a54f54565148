package render

import "rasterkit/pkg/math3d"

// LightingSettings configures the optional per-vertex Lambert hook
// described below. Intensity is supplied by the collaborator per
// vertex (e.g. max(0, −N·L) for a light travelling along L); the rasterizer only interpolates it
// linearly across the triangle and floors it.
type LightingSettings struct {
	Enabled      bool
	AmbientFloor float64
}

// Renderer owns the framebuffer, depth buffer, current frame matrices,
// fog and lighting configuration, and per-frame stats. It is an
// explicit value a collaborator constructs and keeps, rather than a
// package-level global — every method
// below hangs off *Renderer instead of touching shared state.
type Renderer struct {
	width, height int
	fb            *Framebuffer
	depth         *DepthBuffer

	mvp          math3d.Mat4
	cameraPos    math3d.Vec3
	haveMatrices bool

	fog      FogSettings
	lighting LightingSettings

	stats FrameStats

	parallelRows bool
}

// NewRenderer constructs a Renderer already initialized at width x
// height. It is equivalent to zero-value Renderer{} followed by Init.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{}
	if err := r.Init(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Init allocates the framebuffer and depth buffer at width x height.
// Calling Init again with the same dimensions is a no-op; calling it
// again with different dimensions is a programmer error — resizing
// is not a supported operation, only fresh setup is.
func (r *Renderer) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrDimensionMismatch
	}
	if r.fb != nil {
		if r.width != width || r.height != height {
			return ErrDimensionMismatch
		}
		return nil
	}
	r.width, r.height = width, height
	r.fb = newFramebuffer(width, height)
	r.depth = newDepthBuffer(width, height)
	return nil
}

// ClearBuffers clears the color buffer to opaque black, the depth
// buffer to the far sentinel, and resets FrameStats to zero. Matrices
// set via SetMatrices are not reset; they persist until
// explicitly changed, since they are frame-scoped configuration rather
// than buffer contents.
func (r *Renderer) ClearBuffers() error {
	if r.fb == nil {
		return ErrNotInitialized
	}
	if r.parallelRows {
		r.clearParallel()
	} else {
		r.fb.clear()
		r.depth.clear()
	}
	r.stats = FrameStats{}
	return nil
}

// SetMatrices installs the combined model-view-projection matrix and
// the world-space camera position used by the next DrawTriangle3D
// calls, until changed again. cameraPos is currently unused by the core
// pipeline itself (fog and lighting operate on already-interpolated,
// camera-space quantities) but is accepted here because collaborators
// commonly need to hand it alongside the MVP and a second setter would
// just invite the two falling out of sync.
func (r *Renderer) SetMatrices(mvp math3d.Mat4, cameraPos math3d.Vec3) {
	r.mvp = mvp
	r.cameraPos = cameraPos
	r.haveMatrices = true
}

// SetLighting enables or disables the per-vertex Lambert hook and sets
// the ambient floor intensity.
func (r *Renderer) SetLighting(enabled bool, ambientFloor float64) {
	r.lighting = LightingSettings{Enabled: enabled, AmbientFloor: clamp01(ambientFloor)}
}

// GetFramebuffer returns the raw RGBA8 backing bytes of the color
// target. The caller must treat the slice as read-only and must
// not retain it past the next ClearBuffers call.
func (r *Renderer) GetFramebuffer() []byte {
	if r.fb == nil {
		return nil
	}
	return r.fb.Bytes()
}

// GetImageData is an alias for GetFramebuffer matching the naming used
// by browser/canvas-style presentation layers; both names are listed in
// the external interface table as acceptable spellings of the same
// operation.
func (r *Renderer) GetImageData() []byte {
	return r.GetFramebuffer()
}

// GetStats returns a copy of the current frame's FrameStats.
func (r *Renderer) GetStats() FrameStats {
	return r.stats
}

// SetDebugPixel writes directly into the color buffer, bypassing the
// depth test and texture pipeline entirely. It exists for collaborator
// debug overlays (wireframes, HUD markers) that sit outside the
// core triangle pipeline; out-of-bounds writes are a
// guarded no-op like every other framebuffer write.
func (r *Renderer) SetDebugPixel(x, y int, c RGB) {
	if r.fb == nil {
		return
	}
	r.fb.setPixel(x, y, c)
}

// Width returns the renderer's framebuffer width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the renderer's framebuffer height in pixels.
func (r *Renderer) Height() int { return r.height }
