package render

import "rasterkit/pkg/math3d"

// nearPlane is the camera-space w (== z_eye under this projection
// convention) at which a vertex is considered behind the near plane
// and must be clipped away.
const nearPlane = 0.01

// clipVertex is a vertex after the model-view-projection transform but
// before the perspective divide: still in clip space.
type clipVertex struct {
	pos       math3d.Vec4
	uv        math3d.Vec2
	intensity float64
}

// DrawTriangle3D runs the full geometry stage on three mesh-space
// vertices — clip-space transform, near-plane clipping, perspective
// divide, viewport mapping, and screen-space backface culling — then
// hands each resulting triangle to the rasterizer.
//
// Numeric-degenerate outcomes (fully-behind-near-plane, backface,
// zero-area) are silent: they only show up in FrameStats, never as an
// error. Only programmer misuse returns an error.
func (r *Renderer) DrawTriangle3D(v0, v1, v2 Vertex, tex *Texture) error {
	if r.fb == nil {
		return ErrNotInitialized
	}
	if !r.haveMatrices {
		return ErrMissingMatrices
	}
	if tex == nil {
		return ErrNilTexture
	}

	tri := [3]clipVertex{
		r.toClipSpace(v0),
		r.toClipSpace(v1),
		r.toClipSpace(v2),
	}

	nBehind := 0
	for _, v := range tri {
		if v.pos.W <= nearPlane {
			nBehind++
		}
	}

	switch {
	case nBehind == 3:
		r.stats.TrianglesCulled++
		return nil
	case nBehind != 0:
		r.stats.TrianglesClipped++
	}

	for _, clipped := range clipNearPlane(tri) {
		r.projectAndRasterize(clipped, tex)
	}
	return nil
}

func (r *Renderer) toClipSpace(v Vertex) clipVertex {
	clip := r.mvp.MulVec4(math3d.V4FromV3(v.Position, 1))
	return clipVertex{pos: clip, uv: v.UV, intensity: v.Intensity}
}

// clipNearPlane clips a single triangle against the near plane,
// returning zero, one or two triangles. The fan-out is bounded and
// computed iteratively, never recursively: a triangle with all three
// vertices behind the plane vanishes; one behind produces a quad (two
// triangles); two behind produce a single triangle; zero behind leaves
// the triangle untouched.
func clipNearPlane(tri [3]clipVertex) [][3]clipVertex {
	var behind [3]bool
	nBehind := 0
	for i, v := range tri {
		behind[i] = v.pos.W <= nearPlane
		if behind[i] {
			nBehind++
		}
	}

	switch nBehind {
	case 0:
		return [][3]clipVertex{tri}
	case 3:
		return nil
	case 1:
		bi := 0
		for i, b := range behind {
			if b {
				bi = i
			}
		}
		a, b, c := tri[bi], tri[(bi+1)%3], tri[(bi+2)%3]
		ab := clipLerp(a, b)
		ac := clipLerp(a, c)
		return [][3]clipVertex{{ab, b, c}, {ab, c, ac}}
	default: // nBehind == 2
		fi := 0
		for i, b := range behind {
			if !b {
				fi = i
			}
		}
		a, b, c := tri[fi], tri[(fi+1)%3], tri[(fi+2)%3]
		ab := clipLerp(a, b)
		ac := clipLerp(a, c)
		return [][3]clipVertex{{a, ab, ac}}
	}
}

// clipLerp finds the point on segment a->b where w crosses nearPlane:
// t = (nearPlane - a.w) / (b.w - a.w).
func clipLerp(a, b clipVertex) clipVertex {
	t := (nearPlane - a.pos.W) / (b.pos.W - a.pos.W)
	return clipVertex{
		pos:       a.pos.Lerp(b.pos, t),
		uv:        a.uv.Lerp(b.uv, t),
		intensity: a.intensity + (b.intensity-a.intensity)*t,
	}
}

// projectAndRasterize perspective-divides and viewport-maps a clipped
// triangle, applies the screen-space backface cull, and (if visible)
// dispatches the DDA fill.
func (r *Renderer) projectAndRasterize(tri [3]clipVertex, tex *Texture) {
	var sv [3]RasterVertex
	for i, v := range tri {
		sv[i] = r.toScreen(v, tex)
	}

	// Screen-space backface cull via the signed area of the triangle.
	// Winding is clockwise-front-facing in screen space (Y points
	// down), matching the w_clip = z_eye projection convention chosen
	// for this core; the cull is screen-space only, never reconstructed
	// from a disabled world-space path.
	area2 := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area2 >= 0 {
		r.stats.TrianglesCulled++
		return
	}

	r.stats.TrianglesDrawn++
	r.rasterizeTriangle(sv, tex)
}

func (r *Renderer) toScreen(v clipVertex, tex *Texture) RasterVertex {
	invW := 1.0 / v.pos.W
	ndcX := v.pos.X * invW
	ndcY := v.pos.Y * invW
	ndcZ := v.pos.Z * invW

	return RasterVertex{
		X:         (ndcX*0.5 + 0.5) * float64(r.width),
		Y:         (1 - (ndcY*0.5 + 0.5)) * float64(r.height),
		InvW:      invW,
		UOverW:    v.uv.X * float64(tex.width) * invW,
		VOverW:    v.uv.Y * float64(tex.height) * invW,
		NDCZ:      ndcZ,
		Intensity: v.intensity,
	}
}

// DrawTriangle rasterizes three already-projected, viewport-mapped
// vertices directly, skipping the clip-space transform and near-plane
// clip entirely. This is the entry point for collaborators that did
// their own projection (or are replaying cached rasterization-ready
// vertices) and just want the scanline fill, depth test and texture
// sample.
func (r *Renderer) DrawTriangle(vA, vB, vC RasterVertex, tex *Texture) error {
	if r.fb == nil {
		return ErrNotInitialized
	}
	if tex == nil {
		return ErrNilTexture
	}

	sv := [3]RasterVertex{vA, vB, vC}
	area2 := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area2 >= 0 {
		r.stats.TrianglesCulled++
		return nil
	}

	r.stats.TrianglesDrawn++
	r.rasterizeTriangle(sv, tex)
	return nil
}
