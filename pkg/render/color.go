// Package render implements the fixed-resolution software rasterizer core:
// the framebuffer and depth buffer, the texture view, the per-triangle
// geometry stage, and the DDA scanline fill.
package render

// RGB is a texel or framebuffer pixel with no separate alpha channel;
// the framebuffer's own alpha is always fully opaque.
type RGB struct {
	R, G, B byte
}

func lerpByte(a, b byte, t float64) byte {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return byte(float64(a) + (float64(b)-float64(a))*t)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{lerpByte(a.R, b.R, t), lerpByte(a.G, b.G, t), lerpByte(a.B, b.B, t)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleRGB(c RGB, s float64) RGB {
	s = clamp01(s)
	return RGB{
		byte(clamp255(float64(c.R) * s)),
		byte(clamp255(float64(c.G) * s)),
		byte(clamp255(float64(c.B) * s)),
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
