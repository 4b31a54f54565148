package render

// Framebuffer is a fixed-resolution color target backed by a flat,
// tightly packed RGBA8 byte slice (row-major, 4 bytes per pixel). Alpha
// is always 255; the core never produces translucent pixels.
type Framebuffer struct {
	width, height int
	pixels        []byte
}

func newFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
	}
	fb.clear()
	return fb
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// clear fills the framebuffer with opaque black. It uses a doubling
// copy so the fill cost is O(log n) memmoves rather than n stores.
func (fb *Framebuffer) clear() {
	if len(fb.pixels) == 0 {
		return
	}
	fb.pixels[0], fb.pixels[1], fb.pixels[2], fb.pixels[3] = 0, 0, 0, 255
	for filled := 4; filled < len(fb.pixels); filled *= 2 {
		n := copy(fb.pixels[filled:], fb.pixels[:filled])
		_ = n
	}
}

// clearRows fills rows [yStart, yEnd) with opaque black. Used by the
// opt-in parallel clear path, which shards by row band instead of
// using the doubling-copy trick across the whole buffer.
func (fb *Framebuffer) clearRows(yStart, yEnd int) {
	rowBytes := fb.width * 4
	for y := yStart; y < yEnd; y++ {
		row := fb.pixels[y*rowBytes : (y+1)*rowBytes]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = 0, 0, 0, 255
		}
	}
}

// setPixel writes an opaque pixel. Out-of-bounds writes are a no-op;
// the geometry stage is expected never to produce them, but a bound is
// kept here regardless.
func (fb *Framebuffer) setPixel(x, y int, c RGB) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := (y*fb.width + x) * 4
	fb.pixels[i] = c.R
	fb.pixels[i+1] = c.G
	fb.pixels[i+2] = c.B
	fb.pixels[i+3] = 255
}

// GetPixel returns the color at (x, y), or black/transparent if out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) (r, g, b, a byte) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0, 0, 0, 0
	}
	i := (y*fb.width + x) * 4
	return fb.pixels[i], fb.pixels[i+1], fb.pixels[i+2], fb.pixels[i+3]
}

// Bytes returns the raw RGBA8 backing slice. Callers must treat it as
// read-only; it is invalidated by the next ClearBuffers or resize.
func (fb *Framebuffer) Bytes() []byte {
	return fb.pixels
}

// DepthBuffer is a fixed-resolution, row-major float32 depth target
// holding post-divide NDC z per pixel.
type DepthBuffer struct {
	width, height int
	depth         []float32
}

// farSentinel is the value ClearBuffers fills the depth buffer with.
// Any finite NDC z produced by Perspective compares less than
// it, so the first write to a pixel always passes the depth test.
const farSentinel = float32(3.0e38)

func newDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{width: width, height: height, depth: make([]float32, width*height)}
	db.clear()
	return db
}

// clear resets every entry to farSentinel using the same doubling-copy
// technique as Framebuffer.clear.
func (db *DepthBuffer) clear() {
	if len(db.depth) == 0 {
		return
	}
	db.depth[0] = farSentinel
	for filled := 1; filled < len(db.depth); filled *= 2 {
		copy(db.depth[filled:], db.depth[:filled])
	}
}

// clearRows resets depth rows [yStart, yEnd) to farSentinel.
func (db *DepthBuffer) clearRows(yStart, yEnd int) {
	for y := yStart; y < yEnd; y++ {
		row := db.depth[y*db.width : (y+1)*db.width]
		for i := range row {
			row[i] = farSentinel
		}
	}
}

func (db *DepthBuffer) at(x, y int) float32 {
	return db.depth[y*db.width+x]
}

func (db *DepthBuffer) set(x, y int, z float32) {
	db.depth[y*db.width+x] = z
}

// test reports whether z passes a strict less-than depth test against
// the stored value, and if so writes it through. First writer wins on
// an exact tie.
func (db *DepthBuffer) test(x, y int, z float32) bool {
	if x < 0 || x >= db.width || y < 0 || y >= db.height {
		return false
	}
	i := y*db.width + x
	if z < db.depth[i] {
		db.depth[i] = z
		return true
	}
	return false
}
