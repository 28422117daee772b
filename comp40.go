// Package comp40 implements a lossy still-image codec that stores every 2x2
// block of pixels in a single 32-bit code word.
//
// Compression converts RGB samples to component video (Y, Pb, Pr), averages
// and quantizes the chroma of each block through a nonlinear table, runs a
// four-point orthogonal transform over the block's luma and packs the
// quantized result into a word. The stream is a short textual header
// followed by the words in big-endian order:
//
//	COMP40 Compressed image format 2
//	<width> <height>
//	<(width/2)*(height/2) words>
//
// Basic usage for compressing a raster:
//
//	r := comp40.NewRaster(640, 480, 255)
//	// fill r.Pix ...
//	err := comp40.Compress(w, r, nil)
//
// Basic usage for decompressing:
//
//	r, err := comp40.Decompress(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decompressed rasters always use OutputDenominator, whatever the
// denominator of the image that was compressed.
package comp40

import (
	"image"
	"io"
	"runtime"

	"github.com/mrjoshuak/go-comp40/internal/chroma"
	"github.com/mrjoshuak/go-comp40/internal/codestream"
	"github.com/mrjoshuak/go-comp40/internal/envelope"
	"github.com/mrjoshuak/go-comp40/internal/grid"
)

// OutputDenominator is the channel maximum of every decompressed raster.
const OutputDenominator = 3000

// Envelope constants for the optional wrapper around a stream.
const (
	// EnvelopeNone writes the plain stream.
	EnvelopeNone Envelope = iota
	// EnvelopeZstd wraps the whole stream, header included, in a zstd frame.
	EnvelopeZstd
)

// Envelope selects an optional wrapper around the compressed stream.
type Envelope int

// String returns the string representation of the envelope.
func (e Envelope) String() string {
	switch e {
	case EnvelopeNone:
		return "none"
	case EnvelopeZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

func (e Envelope) kind() envelope.Kind {
	switch e {
	case EnvelopeZstd:
		return envelope.Zstd
	case EnvelopeNone:
		return envelope.None
	default:
		return envelope.Kind(-1)
	}
}

func envelopeOf(k envelope.Kind) Envelope {
	if k == envelope.Zstd {
		return EnvelopeZstd
	}
	return EnvelopeNone
}

// Traversal constants for the per-block stages.
const (
	// TraversalRowMajor visits blocks left to right, then top to bottom.
	TraversalRowMajor Traversal = iota
	// TraversalColumnMajor visits blocks top to bottom, then left to right.
	TraversalColumnMajor
)

// Traversal selects the order in which the per-block stages visit blocks
// within a band. It never changes the stream: words are always stored in
// row-major block order.
type Traversal int

// String returns the string representation of the traversal.
func (t Traversal) String() string {
	switch t {
	case TraversalRowMajor:
		return "row-major"
	case TraversalColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

func (t Traversal) order() grid.Order {
	if t == TraversalColumnMajor {
		return grid.ColumnMajor
	}
	return grid.RowMajor
}

// ChromaTable maps an averaged chroma value to one of at most 16 indices and
// back. It must be the same table for compression and decompression.
type ChromaTable interface {
	IndexOfChroma(x float64) uint
	ChromaOfIndex(i uint) float64
}

// DefaultChromaTable returns the table used when none is configured.
func DefaultChromaTable() ChromaTable {
	return chroma.Arith40()
}

// Options holds the compression options.
type Options struct {
	// Envelope wraps the stream. EnvelopeNone produces the plain format.
	Envelope Envelope

	// Concurrency is the number of block bands processed at once.
	// Values below 1 mean one. The output does not depend on it.
	Concurrency int

	// Chroma quantizes averaged chroma. nil selects DefaultChromaTable.
	Chroma ChromaTable

	// Traversal is the block visiting order inside a band.
	Traversal Traversal
}

// DefaultOptions returns the default compression options.
func DefaultOptions() *Options {
	return &Options{
		Envelope:    EnvelopeNone,
		Concurrency: runtime.GOMAXPROCS(0),
		Chroma:      DefaultChromaTable(),
		Traversal:   TraversalRowMajor,
	}
}

// Config holds the decompression configuration.
type Config struct {
	// Concurrency is the number of block bands processed at once.
	Concurrency int

	// Chroma must match the table the stream was compressed with.
	// nil selects DefaultChromaTable.
	Chroma ChromaTable

	// Traversal is the block visiting order inside a band.
	Traversal Traversal
}

// DefaultConfig returns the default decompression configuration.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: runtime.GOMAXPROCS(0),
		Chroma:      DefaultChromaTable(),
		Traversal:   TraversalRowMajor,
	}
}

// Compress writes r to w. The raster must have even dimensions; use
// Raster.TrimEven first for arbitrary input. Nothing is written unless the
// whole image compresses.
func Compress(w io.Writer, r *Raster, o *Options) error {
	if o == nil {
		o = DefaultOptions()
	}
	e := newEncoder(w, r, o)
	return e.encode()
}

// Decompress reads a compressed stream, plain or enveloped, from r.
func Decompress(r io.Reader) (*Raster, error) {
	return DecompressConfig(r, nil)
}

// DecompressConfig decompresses with the specified configuration.
func DecompressConfig(r io.Reader, cfg *Config) (*Raster, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := newDecoder(r, cfg)
	return d.decode()
}

// Encode trims m to even dimensions and compresses it to w.
func Encode(w io.Writer, m image.Image, o *Options) error {
	return Compress(w, FromImage(m).TrimEven(), o)
}

// Decode decompresses a stream from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	rs, err := Decompress(r)
	if err != nil {
		return nil, err
	}
	return rs.Image(), nil
}

// DecodeMetadata reads only the stream header.
func DecodeMetadata(r io.Reader) (*Metadata, error) {
	d := newDecoder(r, DefaultConfig())
	return d.readMetadata()
}

// Metadata describes a compressed stream.
type Metadata struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// BlocksWide is the number of block columns.
	BlocksWide int

	// BlocksHigh is the number of block rows.
	BlocksHigh int

	// Words is the number of code words in the stream.
	Words int

	// Envelope is the wrapper found around the stream.
	Envelope Envelope
}

// init registers the plain stream format with the image package.
func init() {
	image.RegisterFormat("comp40",
		codestream.Magic,
		func(r io.Reader) (image.Image, error) {
			return Decode(r)
		},
		func(r io.Reader) (image.Config, error) {
			m, err := DecodeMetadata(r)
			if err != nil {
				return image.Config{}, err
			}
			return image.Config{
				ColorModel: rasterColorModel,
				Width:      m.Width,
				Height:     m.Height,
			}, nil
		})
}
