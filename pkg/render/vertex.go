package render

import "rasterkit/pkg/math3d"

// Vertex is the mesh-side input to DrawTriangle3D: a model-space
// position, a texture coordinate, and an optional per-vertex lighting
// intensity in [0, 1] computed by the collaborator for the Lambert hook.
// Intensity is ignored unless the renderer's lighting hook is enabled.
type Vertex struct {
	Position  math3d.Vec3
	UV        math3d.Vec2
	Intensity float64
}

// RasterVertex is a rasterization-ready vertex: already transformed,
// clipped, perspective-divided and viewport-mapped by a collaborator
// (or by DrawTriangle3D's geometry stage). DrawTriangle consumes these
// directly, skipping the geometry stage entirely.
type RasterVertex struct {
	X, Y      float64 // screen-space pixel coordinates
	InvW      float64 // 1/w_clip, linear in screen space
	UOverW    float64 // (u * tex.Width) / w_clip
	VOverW    float64 // (v * tex.Height) / w_clip
	NDCZ      float64 // post-divide depth, z_clip/w_clip
	Intensity float64 // per-vertex lighting intensity, linear (not perspective-correct)
}
