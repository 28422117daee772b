// Package chroma provides the nonlinear quantization ladder used for the
// averaged colour-difference values of a block.
//
// Levels are packed more densely around zero, where most chroma averages
// of natural images fall.
package chroma

import "math"

// Levels is the number of quantization steps in the default ladder, which
// fills the full range of a 4-bit index.
const Levels = 16

var arith40 = [Levels]float64{
	-0.35, -0.20, -0.15, -0.10, -0.077, -0.055, -0.033, -0.011,
	0.011, 0.033, 0.055, 0.077, 0.10, 0.15, 0.20, 0.35,
}

// Table is a bidirectional mapping between a continuous chroma value and a
// small integer index.
type Table struct {
	levels []float64
}

// Arith40 returns the default ladder.
func Arith40() *Table {
	return &Table{levels: arith40[:]}
}

// New returns a table over the given ascending levels.
func New(levels []float64) *Table {
	l := make([]float64, len(levels))
	copy(l, levels)
	return &Table{levels: l}
}

// Len returns the number of levels.
func (t *Table) Len() int { return len(t.levels) }

// IndexOfChroma returns the index of the level nearest to x. Values beyond
// either end of the ladder saturate to the first or last index.
func (t *Table) IndexOfChroma(x float64) uint {
	n := len(t.levels)
	if n == 0 || math.IsNaN(x) || x <= t.levels[0] {
		return 0
	}
	if x >= t.levels[n-1] {
		return uint(n - 1)
	}

	best := 0
	bestDist := math.Inf(1)
	for i, l := range t.levels {
		if d := math.Abs(x - l); d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint(best)
}

// ChromaOfIndex returns the level for index i. Out-of-range indices
// saturate to the last level.
func (t *Table) ChromaOfIndex(i uint) float64 {
	if len(t.levels) == 0 {
		return 0
	}
	if i >= uint(len(t.levels)) {
		i = uint(len(t.levels) - 1)
	}
	return t.levels[i]
}
