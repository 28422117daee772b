package comp40

import (
	"fmt"
	"image"
	"image/color"
)

var rasterColorModel = color.RGBA64Model

// RGB is one pixel. Each channel lies in [0, denominator] of its raster.
type RGB struct {
	Red   uint32
	Green uint32
	Blue  uint32
}

// Raster is an RGB image whose channels share one denominator, the value
// that represents full intensity.
type Raster struct {
	Width       int
	Height      int
	Denominator uint32

	// Pix holds the pixels in row-major order.
	Pix []RGB
}

// NewRaster allocates a black raster.
func NewRaster(width, height int, denominator uint32) *Raster {
	return &Raster{
		Width:       width,
		Height:      height,
		Denominator: denominator,
		Pix:         make([]RGB, width*height),
	}
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) RGB {
	return r.Pix[y*r.Width+x]
}

// Set stores p at (x, y).
func (r *Raster) Set(x, y int, p RGB) {
	r.Pix[y*r.Width+x] = p
}

// Validate checks the raster's invariants: non-negative dimensions matching
// len(Pix), a non-zero denominator and no channel above it.
func (r *Raster) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidRaster, len(r.Pix), r.Width, r.Height)
	}
	if r.Denominator == 0 {
		return fmt.Errorf("%w: zero denominator", ErrInvalidRaster)
	}
	for i, p := range r.Pix {
		if p.Red > r.Denominator || p.Green > r.Denominator || p.Blue > r.Denominator {
			return fmt.Errorf("%w: pixel (%d, %d) = %v exceeds denominator %d",
				ErrInvalidRaster, i%r.Width, i/r.Width, p, r.Denominator)
		}
	}
	return nil
}

// TrimEven returns a copy of r without its last column and last row when
// those make a dimension odd.
func (r *Raster) TrimEven() *Raster {
	w, h := r.Width&^1, r.Height&^1
	out := NewRaster(w, h, r.Denominator)
	for y := 0; y < h; y++ {
		copy(out.Pix[y*w:(y+1)*w], r.Pix[y*r.Width:y*r.Width+w])
	}
	return out
}

// FromImage copies m into a new raster. 8-bit images keep a denominator of
// 255; everything else is read through the 16-bit color interface.
func FromImage(m image.Image) *Raster {
	bounds := m.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var r *Raster
	switch img := m.(type) {
	case *image.RGBA:
		r = NewRaster(width, height, 0xFF)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := img.RGBAAt(x, y)
				r.Set(x-bounds.Min.X, y-bounds.Min.Y, RGB{uint32(c.R), uint32(c.G), uint32(c.B)})
			}
		}

	case *image.NRGBA:
		r = NewRaster(width, height, 0xFF)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := img.NRGBAAt(x, y)
				r.Set(x-bounds.Min.X, y-bounds.Min.Y, RGB{uint32(c.R), uint32(c.G), uint32(c.B)})
			}
		}

	case *image.Gray:
		r = NewRaster(width, height, 0xFF)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				v := uint32(img.GrayAt(x, y).Y)
				r.Set(x-bounds.Min.X, y-bounds.Min.Y, RGB{v, v, v})
			}
		}

	default:
		r = NewRaster(width, height, 0xFFFF)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				cr, cg, cb, _ := m.At(x, y).RGBA()
				r.Set(x-bounds.Min.X, y-bounds.Min.Y, RGB{cr, cg, cb})
			}
		}
	}
	return r
}

// Image converts r to an opaque 16-bit image.
func (r *Raster) Image() *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, r.Width, r.Height))
	d := uint64(r.Denominator)
	if d == 0 {
		return img
	}
	scale := func(v uint32) uint16 {
		if uint64(v) > d {
			v = uint32(d)
		}
		return uint16((uint64(v)*0xFFFF + d/2) / d)
	}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			p := r.At(x, y)
			img.SetRGBA64(x, y, color.RGBA64{
				R: scale(p.Red),
				G: scale(p.Green),
				B: scale(p.Blue),
				A: 0xFFFF,
			})
		}
	}
	return img
}
