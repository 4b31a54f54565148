package render

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SetParallelRows, when enabled, shards ClearBuffers' framebuffer/depth
// fill across goroutines bound to disjoint row ranges; DrawTriangle3D's
// scanline fill stays single-threaded either way. The core stays single-threaded by default: the
// concurrency model only permits this as an implementation detail
// a collaborator can opt into, never as the default behavior, since it
// changes nothing observable about the result.
func (r *Renderer) SetParallelRows(enabled bool) {
	r.parallelRows = enabled
}

// rowBands splits [0, height) into up to GOMAXPROCS contiguous row
// ranges for sharding clear work.
func rowBands(height int) [][2]int {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		return [][2]int{{0, height}}
	}
	bands := make([][2]int, 0, workers)
	rowsPer := (height + workers - 1) / workers
	for start := 0; start < height; start += rowsPer {
		end := start + rowsPer
		if end > height {
			end = height
		}
		bands = append(bands, [2]int{start, end})
	}
	return bands
}

// clearParallel clears the framebuffer and depth buffer band-by-band
// using an errgroup instead of the doubling-copy fast path, trading the
// single-thread copy trick for wall-clock when many cores are idle.
func (r *Renderer) clearParallel() {
	var g errgroup.Group
	for _, band := range rowBands(r.height) {
		band := band
		g.Go(func() error {
			r.fb.clearRows(band[0], band[1])
			r.depth.clearRows(band[0], band[1])
			return nil
		})
	}
	_ = g.Wait()
}
