package render

import "fmt"

// Texture is an immutable view over a caller-owned RGBA8 pixel buffer.
// The core never copies or retains ownership of the backing bytes; the
// collaborator must not mutate them while a Texture is in use by a draw
// call. Sampling is nearest-neighbor only, no mipmaps or bilinear.
type Texture struct {
	width, height int
	pixels        []byte
}

// NewTexture wraps width*height*4 bytes of tightly packed RGBA8 pixel
// data as a Texture view. It fails if the buffer is nil, zero-sized, or
// the wrong length for the stated dimensions — all programmer-misuse
// conditions distinguishable from numeric-degenerate ones.
func NewTexture(width, height int, pixels []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: texture has non-positive dimensions %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("render: texture pixel buffer length %d does not match %dx%d RGBA8", len(pixels), width, height)
	}
	return &Texture{width: width, height: height, pixels: pixels}, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// at returns the opaque RGB at an already-wrapped, in-bounds texel
// coordinate. The rasterizer is responsible for wrapping.
func (t *Texture) at(x, y int) RGB {
	i := (y*t.width + x) * 4
	return RGB{t.pixels[i], t.pixels[i+1], t.pixels[i+2]}
}

// wrapCoord folds an integer texel coordinate into [0, n) with the
// negative-folding rule (Go's % can return a negative
// result for a negative dividend).
func wrapCoord(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
