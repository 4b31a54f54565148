package render

import "math"

// Degeneracy thresholds. Triangles thinner than edgeEpsilon in Y
// produce no scanlines; spans narrower than spanEpsilon in X are
// skipped rather than divided by a near-zero width.
const (
	edgeEpsilon = 1.0 / 256.0  // 2^-8
	spanEpsilon = 1.0 / 2048.0 // 2^-11
)

// rasterAttrs is the set of per-pixel-interpolated quantities the DDA
// walk steps along an edge or across a span: screen x plus the
// perspective-correct-ready invW/uOverW/vOverW/ndcZ and the linearly
// interpolated lighting intensity.
type rasterAttrs struct {
	x         float64
	invW      float64
	uOverW    float64
	vOverW    float64
	ndcZ      float64
	intensity float64
}

func toAttrs(v RasterVertex) rasterAttrs {
	return rasterAttrs{x: v.X, invW: v.InvW, uOverW: v.UOverW, vOverW: v.VOverW, ndcZ: v.NDCZ, intensity: v.Intensity}
}

func lerpAttrs(a, b rasterAttrs, t float64) rasterAttrs {
	return rasterAttrs{
		x:         a.x + (b.x-a.x)*t,
		invW:      a.invW + (b.invW-a.invW)*t,
		uOverW:    a.uOverW + (b.uOverW-a.uOverW)*t,
		vOverW:    a.vOverW + (b.vOverW-a.vOverW)*t,
		ndcZ:      a.ndcZ + (b.ndcZ-a.ndcZ)*t,
		intensity: a.intensity + (b.intensity-a.intensity)*t,
	}
}

// rasterizeTriangle walks a screen-space triangle scanline by scanline.
// Vertices are sorted by Y; the major edge runs top (a) to bottom (c)
// for the whole height, and the minor edge is split in two at b: a->b
// above b.Y, b->c below it.
func (r *Renderer) rasterizeTriangle(sv [3]RasterVertex, tex *Texture) {
	a, b, c := sv[0], sv[1], sv[2]
	if a.Y > b.Y {
		a, b = b, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}
	if a.Y > b.Y {
		a, b = b, a
	}

	totalHeight := c.Y - a.Y
	if totalHeight < edgeEpsilon {
		return
	}

	aAttrs, bAttrs, cAttrs := toAttrs(a), toAttrs(b), toAttrs(c)
	upperHeight := b.Y - a.Y
	lowerHeight := c.Y - b.Y

	yStart := int(math.Ceil(a.Y - 0.5))
	yEnd := int(math.Ceil(c.Y - 0.5))
	if yStart < 0 {
		yStart = 0
	}
	if yEnd > r.height {
		yEnd = r.height
	}

	for y := yStart; y < yEnd; y++ {
		py := float64(y) + 0.5
		tMajor := (py - a.Y) / totalHeight
		major := lerpAttrs(aAttrs, cAttrs, tMajor)

		var minor rasterAttrs
		switch {
		case py < b.Y && upperHeight >= edgeEpsilon:
			minor = lerpAttrs(aAttrs, bAttrs, (py-a.Y)/upperHeight)
		case lowerHeight >= edgeEpsilon:
			minor = lerpAttrs(bAttrs, cAttrs, (py-b.Y)/lowerHeight)
		default:
			minor = major
		}

		left, right := major, minor
		if left.x > right.x {
			left, right = right, left
		}
		r.fillSpan(y, left, right, tex)
	}
}

// fillSpan walks a single scanline's span left to right, interpolating
// attributes by screen-space X and plotting each covered pixel.
func (r *Renderer) fillSpan(y int, left, right rasterAttrs, tex *Texture) {
	xStart := int(math.Ceil(left.x - 0.5))
	xEnd := int(math.Ceil(right.x - 0.5))
	if xStart < 0 {
		xStart = 0
	}
	if xEnd > r.width {
		xEnd = r.width
	}
	if xStart >= xEnd {
		return
	}

	spanWidth := right.x - left.x
	if spanWidth < spanEpsilon {
		return
	}

	for x := xStart; x < xEnd; x++ {
		t := (float64(x) + 0.5 - left.x) / spanWidth
		r.plot(x, y, lerpAttrs(left, right, t), tex)
	}
}

// plot resolves one pixel: depth test, perspective-correct texture
// sample, optional lighting and fog, then the framebuffer write.
func (r *Renderer) plot(x, y int, attrs rasterAttrs, tex *Texture) {
	if !r.depth.test(x, y, float32(attrs.ndcZ)) {
		return
	}

	w := 1.0 / attrs.invW
	// uOverW/vOverW were pre-multiplied by the texture's dimensions in
	// the geometry stage, so recovering them here is a single multiply
	// rather than a divide-then-multiply-by-width.
	tx := wrapCoord(int(math.Floor(attrs.uOverW*w)), tex.width)
	ty := wrapCoord(int(math.Floor(attrs.vOverW*w)), tex.height)
	texel := tex.at(tx, ty)

	if r.lighting.Enabled {
		intensity := attrs.intensity
		if intensity < r.lighting.AmbientFloor {
			intensity = r.lighting.AmbientFloor
		}
		texel = scaleRGB(texel, intensity)
	}

	if r.fog.Enabled {
		t := r.fog.fogFactor(w, x, y)
		texel = lerpRGB(texel, r.fog.Color, t)
	}

	r.fb.setPixel(x, y, texel)
	r.stats.PixelsDrawn++
}
