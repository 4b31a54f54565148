package render

import (
	"testing"

	"rasterkit/pkg/math3d"
)

func TestInitTwiceSameDimsOK(t *testing.T) {
	r, err := NewRenderer(64, 32)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Init(64, 32); err != nil {
		t.Fatalf("Init with same dims should be a no-op, got %v", err)
	}
}

func TestInitTwiceDifferentDimsErrors(t *testing.T) {
	r, err := NewRenderer(64, 32)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Init(65, 32); err == nil {
		t.Fatal("expected ErrDimensionMismatch, got nil")
	}
}

func TestDrawTriangle3DWithoutMatricesErrors(t *testing.T) {
	r, _ := NewRenderer(32, 32)
	tex := solidTexture(t, 2, 2, RGB{255, 255, 255})
	v := Vertex{Position: math3d.V3(0, 0, 5)}
	if err := r.DrawTriangle3D(v, v, v, tex); err != ErrMissingMatrices {
		t.Fatalf("want ErrMissingMatrices, got %v", err)
	}
}

func TestDrawTriangle3DNilTextureErrors(t *testing.T) {
	r, _ := NewRenderer(32, 32)
	r.SetMatrices(math3d.Identity(), math3d.Zero3())
	v := Vertex{Position: math3d.V3(0, 0, 5)}
	if err := r.DrawTriangle3D(v, v, v, nil); err != ErrNilTexture {
		t.Fatalf("want ErrNilTexture, got %v", err)
	}
}

func TestClearBuffersResetsAlphaAndStats(t *testing.T) {
	r, _ := NewRenderer(8, 8)
	r.stats.TrianglesDrawn = 3
	if err := r.ClearBuffers(); err != nil {
		t.Fatalf("ClearBuffers: %v", err)
	}
	pixels := r.GetFramebuffer()
	for i := 3; i < len(pixels); i += 4 {
		if pixels[i] != 255 {
			t.Fatalf("pixel alpha at byte %d = %d, want 255", i, pixels[i])
		}
	}
	if got := r.GetStats(); got != (FrameStats{}) {
		t.Fatalf("stats not reset: %+v", got)
	}
}

func TestClearBuffersIdempotent(t *testing.T) {
	r, _ := NewRenderer(8, 8)
	_ = r.ClearBuffers()
	first := append([]byte(nil), r.GetFramebuffer()...)
	_ = r.ClearBuffers()
	second := r.GetFramebuffer()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("clear is not idempotent at byte %d: %d != %d", i, first[i], second[i])
		}
	}
}

func solidTexture(t *testing.T, w, h int, c RGB) *Texture {
	t.Helper()
	pixels := make([]byte, w*h*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c.R, c.G, c.B, 255
	}
	tex, err := NewTexture(w, h, pixels)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	return tex
}

// centeredTriangleMVP returns an MVP matrix placing the camera at the
// origin looking down +Z, with a perspective projection wide enough
// that a unit triangle a few units out lands comfortably on screen.
func centeredTriangleMVP(width, height int) math3d.Mat4 {
	view := math3d.LookAt(math3d.Zero3(), math3d.V3(0, 0, 1), math3d.Up())
	proj := math3d.Perspective(1.2, float64(width)/float64(height), 0.1, 100)
	return proj.Mul(view)
}

func TestDrawTriangle3DCenteredTriangleIsOpaque(t *testing.T) {
	r, _ := NewRenderer(64, 64)
	_ = r.ClearBuffers()
	r.SetMatrices(centeredTriangleMVP(64, 64), math3d.Zero3())
	tex := solidTexture(t, 1, 1, RGB{200, 100, 50})

	// Clockwise in screen space (front-facing under this core's
	// winding convention) once projected.
	v0 := Vertex{Position: math3d.V3(0, 0.5, 3)}
	v1 := Vertex{Position: math3d.V3(-0.5, -0.5, 3)}
	v2 := Vertex{Position: math3d.V3(0.5, -0.5, 3)}

	if err := r.DrawTriangle3D(v0, v1, v2, tex); err != nil {
		t.Fatalf("DrawTriangle3D: %v", err)
	}

	stats := r.GetStats()
	if stats.TrianglesDrawn != 1 || stats.TrianglesCulled != 0 {
		t.Fatalf("unexpected stats for front-facing triangle: %+v", stats)
	}
	if stats.PixelsDrawn == 0 {
		t.Fatal("expected at least one pixel drawn")
	}

	cx, cy := 32, 32
	r_, g, b, a := r.fb.GetPixel(cx, cy)
	if a != 255 {
		t.Fatalf("center pixel alpha = %d, want 255", a)
	}
	if r_ == 0 && g == 0 && b == 0 {
		t.Fatalf("center pixel looks unpainted: (%d,%d,%d)", r_, g, b)
	}
}

func TestDrawTriangle3DBackfaceIsCulledSilently(t *testing.T) {
	r, _ := NewRenderer(64, 64)
	_ = r.ClearBuffers()
	r.SetMatrices(centeredTriangleMVP(64, 64), math3d.Zero3())
	tex := solidTexture(t, 1, 1, RGB{200, 100, 50})

	// Same triangle, winding reversed.
	v0 := Vertex{Position: math3d.V3(0, 0.5, 3)}
	v1 := Vertex{Position: math3d.V3(0.5, -0.5, 3)}
	v2 := Vertex{Position: math3d.V3(-0.5, -0.5, 3)}

	if err := r.DrawTriangle3D(v0, v1, v2, tex); err != nil {
		t.Fatalf("DrawTriangle3D: %v", err)
	}

	stats := r.GetStats()
	if stats.TrianglesDrawn != 0 || stats.TrianglesCulled != 1 {
		t.Fatalf("unexpected stats for back-facing triangle: %+v", stats)
	}
	if stats.PixelsDrawn != 0 {
		t.Fatalf("backface culling should draw nothing, got %d pixels", stats.PixelsDrawn)
	}
}

func TestDrawTriangle3DBehindCameraIsCulled(t *testing.T) {
	r, _ := NewRenderer(64, 64)
	_ = r.ClearBuffers()
	r.SetMatrices(centeredTriangleMVP(64, 64), math3d.Zero3())
	tex := solidTexture(t, 1, 1, RGB{200, 100, 50})

	v0 := Vertex{Position: math3d.V3(0, 0.5, -3)}
	v1 := Vertex{Position: math3d.V3(-0.5, -0.5, -3)}
	v2 := Vertex{Position: math3d.V3(0.5, -0.5, -3)}

	if err := r.DrawTriangle3D(v0, v1, v2, tex); err != nil {
		t.Fatalf("DrawTriangle3D: %v", err)
	}

	stats := r.GetStats()
	if stats.TrianglesCulled != 1 || stats.TrianglesClipped != 0 || stats.PixelsDrawn != 0 {
		t.Fatalf("expected a silent full-behind cull, got %+v", stats)
	}
}

func TestDrawTriangle3DOneVertexBehindNearPlaneClips(t *testing.T) {
	r, _ := NewRenderer(64, 64)
	_ = r.ClearBuffers()
	r.SetMatrices(centeredTriangleMVP(64, 64), math3d.Zero3())
	tex := solidTexture(t, 1, 1, RGB{200, 100, 50})

	// One vertex sits behind the near plane (z near 0), the other two
	// are well in front.
	v0 := Vertex{Position: math3d.V3(0, 0.5, 0)}
	v1 := Vertex{Position: math3d.V3(-2, -2, 3)}
	v2 := Vertex{Position: math3d.V3(2, -2, 3)}

	if err := r.DrawTriangle3D(v0, v1, v2, tex); err != nil {
		t.Fatalf("DrawTriangle3D: %v", err)
	}

	stats := r.GetStats()
	if stats.TrianglesClipped != 1 {
		t.Fatalf("expected exactly one clipped triangle, got %+v", stats)
	}
	if stats.TrianglesDrawn == 0 {
		t.Fatalf("expected the clipped remainder to still draw, got %+v", stats)
	}
}

func TestDepthTestOrderIndependent(t *testing.T) {
	for _, order := range [][2]float64{{2, 5}, {5, 2}} {
		r, _ := NewRenderer(32, 32)
		_ = r.ClearBuffers()
		r.SetMatrices(centeredTriangleMVP(32, 32), math3d.Zero3())
		near := solidTexture(t, 1, 1, RGB{0, 255, 0})
		far := solidTexture(t, 1, 1, RGB{255, 0, 0})

		draw := func(z float64, tex *Texture) {
			v0 := Vertex{Position: math3d.V3(0, 1, z)}
			v1 := Vertex{Position: math3d.V3(-1, -1, z)}
			v2 := Vertex{Position: math3d.V3(1, -1, z)}
			_ = r.DrawTriangle3D(v0, v1, v2, tex)
		}

		if order[0] < order[1] {
			draw(order[0], near)
			draw(order[1], far)
		} else {
			draw(order[0], far)
			draw(order[1], near)
		}

		r_, g, _, _ := r.fb.GetPixel(16, 16)
		if g != 255 || r_ != 0 {
			t.Fatalf("draw order %v: expected nearer green triangle to win, got rgb=(%d,_,_) g=%d", order, r_, g)
		}
	}
}
