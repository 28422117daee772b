// Package grid provides the owned two-dimensional containers that carry an
// image between pipeline stages, and an explicit block-major iterator over
// their cells.
package grid

import (
	"fmt"
	"image"
)

// Grid is a dense width x height array of T stored in row-major order.
// Every pipeline stage allocates a fresh Grid for its output.
type Grid[T any] struct {
	width  int
	height int
	cells  []T
}

// New allocates a zeroed grid.
func New[T any](width, height int) *Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", width, height))
	}
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Bounds returns the grid extent as a rectangle anchored at the origin.
func (g *Grid[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// At returns the cell at (col, row).
func (g *Grid[T]) At(col, row int) T {
	return g.cells[g.index(col, row)]
}

// Set stores v at (col, row).
func (g *Grid[T]) Set(col, row int, v T) {
	g.cells[g.index(col, row)] = v
}

// Len returns the number of cells.
func (g *Grid[T]) Len() int { return len(g.cells) }

func (g *Grid[T]) index(col, row int) int {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		panic(fmt.Sprintf("grid: (%d, %d) outside %dx%d", col, row, g.width, g.height))
	}
	return row*g.width + col
}
