package scene

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"rasterkit/pkg/render"
)

// LoadTexture loads a texture from an image file (PNG or JPEG) and
// converts it into the core's RGBA8 Texture view.
func LoadTexture(path string) (*render.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return TextureFromImage(img)
}

// TextureFromImage converts an image.Image into the core's Texture view.
// Rows are stored bottom row first, so V=0 samples the bottom of the
// image: the bottom-left UV origin the mesh loaders produce.
func TextureFromImage(img image.Image) (*render.Texture, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, width*height*4)

	for y := range height {
		for x := range width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := ((height-1-y)*width + x) * 4
			// image.Color.RGBA returns 16-bit premultiplied values; scale to 8-bit.
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
		}
	}
	return render.NewTexture(width, height, pixels)
}

// NewCheckerTexture builds a procedural checkerboard texture, used as
// a fallback when a model has no material or no texture was supplied
// on the command line.
func NewCheckerTexture(width, height, cellSize int, c1, c2 render.RGB) (*render.Texture, error) {
	pixels := make([]byte, width*height*4)
	for y := range height {
		for x := range width {
			c := c1
			if ((x/cellSize)+(y/cellSize))%2 != 0 {
				c = c2
			}
			i := (y*width + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c.R, c.G, c.B, 255
		}
	}
	return render.NewTexture(width, height, pixels)
}
