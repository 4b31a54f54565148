package scene

import (
	"image/color"

	"rasterkit/pkg/render"
)

// Color is an alias for color.RGBA for convenience in collaborator
// code (debug overlays, HUD, wireframe).
type Color = color.RGBA

var (
	ColorBlack   = Color{0, 0, 0, 255}
	ColorWhite   = Color{255, 255, 255, 255}
	ColorRed     = Color{255, 0, 0, 255}
	ColorGreen   = Color{0, 255, 0, 255}
	ColorBlue    = Color{0, 0, 255, 255}
	ColorYellow  = Color{255, 255, 0, 255}
	ColorCyan    = Color{0, 255, 255, 255}
	ColorMagenta = Color{255, 0, 255, 255}
	ColorGray    = Color{128, 128, 128, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// toRenderRGB drops the alpha channel for the core's opaque RGB type.
func toRenderRGB(c Color) render.RGB {
	return render.RGB{R: c.R, G: c.G, B: c.B}
}
