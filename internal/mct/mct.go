// Package mct implements the component transform between RGB samples and
// component video (Y, Pb, Pr).
//
// Forward scales each channel by the image denominator before applying the
// luma/colour-difference matrix, so Y lands in [0, 1] and Pb, Pr in
// [-0.5, 0.5]. Inverse maps back onto a caller-chosen denominator.
package mct

import "math"

// YPbPr is one component-video sample.
type YPbPr struct {
	Y  float64
	Pb float64
	Pr float64
}

// Forward converts one RGB sample with the given denominator to component video.
func Forward(r, g, b, denominator uint32) YPbPr {
	d := float64(denominator)
	rs := float64(r) / d
	gs := float64(g) / d
	bs := float64(b) / d

	return YPbPr{
		Y:  0.299*rs + 0.587*gs + 0.114*bs,
		Pb: -0.168736*rs - 0.331264*gs + 0.5*bs,
		Pr: 0.5*rs - 0.418688*gs - 0.081312*bs,
	}
}

// Inverse converts a component-video sample back to RGB channels scaled to
// denominator.
func Inverse(c YPbPr, denominator uint32) (r, g, b uint32) {
	rs := c.Y + 1.402*c.Pr
	gs := c.Y - 0.344136*c.Pb - 0.714136*c.Pr
	bs := c.Y + 1.772*c.Pb

	return Quantize(rs, denominator), Quantize(gs, denominator), Quantize(bs, denominator)
}

// Quantize maps a nominal [0, 1] channel onto [0, denominator]. Values at or
// below zero map to 0, values at or above one map to denominator, and
// everything in between is truncated.
func Quantize(v float64, denominator uint32) uint32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	scaled := v * float64(denominator)
	if scaled >= float64(denominator) {
		return denominator
	}
	return uint32(math.Floor(scaled))
}
