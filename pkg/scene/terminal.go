package scene

import (
	"image/color"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"

	"rasterkit/pkg/render"
)

// TerminalRenderer presents a render.Renderer's finished framebuffer to
// a terminal using half-block characters: each terminal row packs two
// framebuffer rows via ▀ (foreground = top pixel, background = bottom
// pixel). This is pure presentation — windowing, compositing and input
// are all out of the core's scope, so it lives here.
type TerminalRenderer struct {
	renderer *render.Renderer
	profile  colorprofile.Profile
}

// NewTerminalRenderer wraps an already-initialized render.Renderer for
// terminal presentation. profile narrows color output (e.g. to ANSI256
// or no color) for terminals that can't do true color; detect it once
// at startup with colorprofile.Detect and pass it in here.
func NewTerminalRenderer(r *render.Renderer, profile colorprofile.Profile) *TerminalRenderer {
	return &TerminalRenderer{renderer: r, profile: profile}
}

// FramebufferSize returns the pixel dimensions the wrapped renderer was
// initialized with.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.renderer.Width(), t.renderer.Height()
}

// Draw paints the current framebuffer into area of scr.
func (t *TerminalRenderer) Draw(scr uv.Screen, area uv.Rectangle) {
	width, height := t.FramebufferSize()
	pixels := t.renderer.GetFramebuffer()
	if pixels == nil {
		return
	}

	at := func(x, y int) color.RGBA {
		if x < 0 || x >= width || y < 0 || y >= height {
			return color.RGBA{}
		}
		i := (y*width + x) * 4
		return color.RGBA{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]}
	}

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: t.rgbaToColor(at(col, topY)),
					Bg: t.rgbaToColor(at(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor drops fully transparent pixels to "no color" and narrows
// everything else to the detected terminal color profile (a no-op on
// a true-color terminal).
func (t *TerminalRenderer) rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return t.profile.Convert(c)
}
