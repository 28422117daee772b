// Package block implements the 2x2 block transform and quantizer.
//
// Luma is decomposed with a four-point orthogonal transform into an average
// and three gradients; chroma is averaged over the block and quantized
// through an external table. Samples of a block are always ordered
// top-left, bottom-left, top-right, bottom-right, which is the order the
// grid package's block iterator yields them in.
package block

import (
	"math"

	"github.com/mrjoshuak/go-comp40/internal/codeword"
	"github.com/mrjoshuak/go-comp40/internal/mct"
)

// Size is the side of a block in pixels.
const Size = 2

// Samples is the number of pixels in a block.
const Samples = Size * Size

const (
	lumaMax       = 511
	gradientStep  = 0.02
	gradientLimit = 0.3
	gradientMax   = 15
)

// ChromaTable maps averaged chroma values to indices and back.
type ChromaTable interface {
	IndexOfChroma(x float64) uint
	ChromaOfIndex(i uint) float64
}

// QuantizeLuma maps an average luma in [0, 1] to [0, 511], rounding to
// nearest. Out-of-range input saturates.
func QuantizeLuma(a float64) uint16 {
	q := math.Round(a * lumaMax)
	if q <= 0 || math.IsNaN(q) {
		return 0
	}
	if q >= lumaMax {
		return lumaMax
	}
	return uint16(q)
}

// DequantizeLuma is the inverse of QuantizeLuma.
func DequantizeLuma(q uint16) float64 {
	return float64(q) / lumaMax
}

// QuantizeGradient maps a luma gradient to [-15, 15] in steps of 0.02,
// saturating at +/-0.3.
func QuantizeGradient(v float64) int8 {
	switch {
	case v >= gradientLimit:
		return gradientMax
	case v <= -gradientLimit:
		return -gradientMax
	case math.IsNaN(v):
		return 0
	}
	return int8(math.Round(v / gradientStep))
}

// DequantizeGradient is the inverse of QuantizeGradient.
func DequantizeGradient(q int8) float64 {
	return float64(q) * gradientStep
}

// Encode quantizes the samples of one block.
func Encode(s [Samples]mct.YPbPr, table ChromaTable) codeword.Record {
	var pb, pr float64
	for _, c := range s {
		pb += c.Pb
		pr += c.Pr
	}
	pb /= Samples
	pr /= Samples

	y0, y1, y2, y3 := s[0].Y, s[1].Y, s[2].Y, s[3].Y
	a := (y3 + y1 + y2 + y0) / 4
	b := (y3 + y1 - y2 - y0) / 4
	c := (y3 - y1 + y2 - y0) / 4
	d := (y3 - y1 - y2 + y0) / 4

	return codeword.Record{
		A:  QuantizeLuma(a),
		B:  QuantizeGradient(b),
		C:  QuantizeGradient(c),
		D:  QuantizeGradient(d),
		Pb: table.IndexOfChroma(pb),
		Pr: table.IndexOfChroma(pr),
	}
}

// Decode reconstructs the samples of one block. Every sample carries the
// block's shared chroma.
func Decode(r codeword.Record, table ChromaTable) [Samples]mct.YPbPr {
	a := DequantizeLuma(r.A)
	b := DequantizeGradient(r.B)
	c := DequantizeGradient(r.C)
	d := DequantizeGradient(r.D)
	pb := table.ChromaOfIndex(r.Pb)
	pr := table.ChromaOfIndex(r.Pr)

	return [Samples]mct.YPbPr{
		{Y: a - b - c + d, Pb: pb, Pr: pr},
		{Y: a + b - c - d, Pb: pb, Pr: pr},
		{Y: a - b + c - d, Pb: pb, Pr: pr},
		{Y: a + b + c + d, Pb: pb, Pr: pr},
	}
}
