package comp40

import (
	"image"

	"golang.org/x/sync/errgroup"
)

// forEachBand splits a grid of blocksWide x blocksHigh blocks into
// horizontal bands and runs fn on each, at most workers at a time. Bands
// never share a block, so fn may write its band's cells without locking.
// The first error returned by any band is returned.
func forEachBand(blocksWide, blocksHigh, workers int, fn func(band image.Rectangle) error) error {
	if blocksWide == 0 || blocksHigh == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > blocksHigh {
		workers = blocksHigh
	}
	if workers == 1 {
		return fn(image.Rect(0, 0, blocksWide, blocksHigh))
	}

	rows := (blocksHigh + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < blocksHigh; lo += rows {
		band := image.Rect(0, lo, blocksWide, min(lo+rows, blocksHigh))
		g.Go(func() error {
			return fn(band)
		})
	}
	return g.Wait()
}
