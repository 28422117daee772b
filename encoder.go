package comp40

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/mrjoshuak/go-comp40/internal/bio"
	"github.com/mrjoshuak/go-comp40/internal/block"
	"github.com/mrjoshuak/go-comp40/internal/codestream"
	"github.com/mrjoshuak/go-comp40/internal/codeword"
	"github.com/mrjoshuak/go-comp40/internal/envelope"
	"github.com/mrjoshuak/go-comp40/internal/grid"
	"github.com/mrjoshuak/go-comp40/internal/mct"
)

// encoder handles compression.
type encoder struct {
	w       io.Writer
	src     *Raster
	options *Options
	table   ChromaTable
	order   grid.Order

	// Image parameters in blocks
	blocksWide int
	blocksHigh int
}

// newEncoder creates a new encoder.
func newEncoder(w io.Writer, src *Raster, options *Options) *encoder {
	table := options.Chroma
	if table == nil {
		table = DefaultChromaTable()
	}
	return &encoder{
		w:       w,
		src:     src,
		options: options,
		table:   table,
		order:   options.Traversal.order(),
	}
}

// encode compresses the raster.
func (e *encoder) encode() error {
	if e.src == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidRaster)
	}
	if err := e.src.Validate(); err != nil {
		return err
	}
	if e.src.Width%block.Size != 0 || e.src.Height%block.Size != 0 {
		return fmt.Errorf("%w: dimensions %dx%d are not even", ErrInvalidRaster, e.src.Width, e.src.Height)
	}
	e.blocksWide = e.src.Width / block.Size
	e.blocksHigh = e.src.Height / block.Size

	cv, err := e.componentVideo()
	if err != nil {
		return fmt.Errorf("converting to component video: %w", err)
	}

	records, err := e.quantize(cv)
	if err != nil {
		return fmt.Errorf("quantizing blocks: %w", err)
	}

	words, err := e.pack(records)
	if err != nil {
		return fmt.Errorf("packing words: %w", err)
	}

	var buf bytes.Buffer
	if err := e.writeStream(&buf, words); err != nil {
		return fmt.Errorf("writing stream: %w", err)
	}

	kind := e.options.Envelope.kind()
	out, err := envelope.Wrap(kind, buf.Bytes())
	if err != nil {
		return fmt.Errorf("wrapping stream: %w", err)
	}
	_, err = e.w.Write(out)
	return err
}

// componentVideo converts every pixel to Y, Pb, Pr.
func (e *encoder) componentVideo() (*grid.Grid[mct.YPbPr], error) {
	cv := grid.New[mct.YPbPr](e.src.Width, e.src.Height)
	denominator := e.src.Denominator

	err := e.forEachBand(func(band image.Rectangle) error {
		it := grid.Blocks(band, block.Size, e.order)
		for it.Next() {
			c := it.Cell()
			p := e.src.At(c.Col, c.Row)
			cv.Set(c.Col, c.Row, mct.Forward(p.Red, p.Green, p.Blue, denominator))
		}
		return nil
	})
	return cv, err
}

// quantize gathers each block's samples and reduces them to a record.
func (e *encoder) quantize(cv *grid.Grid[mct.YPbPr]) (*grid.Grid[codeword.Record], error) {
	records := grid.New[codeword.Record](e.blocksWide, e.blocksHigh)

	err := e.forEachBand(func(band image.Rectangle) error {
		var acc block.Accumulator
		it := grid.Blocks(band, block.Size, e.order)
		for it.Next() {
			c := it.Cell()
			acc.Add(cv.At(c.Col, c.Row))
			if acc.Full() {
				records.Set(c.Block.X, c.Block.Y, acc.Emit(e.table))
			}
		}
		if acc.Len() != 0 {
			return fmt.Errorf("band %v ended inside a block", band)
		}
		return nil
	})
	return records, err
}

// pack lays each record out in a code word.
func (e *encoder) pack(records *grid.Grid[codeword.Record]) (*grid.Grid[uint32], error) {
	words := grid.New[uint32](e.blocksWide, e.blocksHigh)

	err := e.forEachBand(func(band image.Rectangle) error {
		it := grid.Blocks(band, 1, e.order)
		for it.Next() {
			c := it.Cell()
			word, err := codeword.Pack(records.At(c.Col, c.Row))
			if err != nil {
				return fmt.Errorf("block (%d, %d): %w", c.Col, c.Row, err)
			}
			words.Set(c.Col, c.Row, word)
		}
		return nil
	})
	return words, err
}

// writeStream writes the header and every word in block order.
func (e *encoder) writeStream(w io.Writer, words *grid.Grid[uint32]) error {
	h := codestream.Header{Width: e.src.Width, Height: e.src.Height}
	if err := codestream.WriteHeader(w, h); err != nil {
		return err
	}

	bw := bio.NewWriter(w)
	it := grid.Blocks(words.Bounds(), 1, grid.RowMajor)
	for it.Next() {
		c := it.Cell()
		if err := bw.WriteWord(words.At(c.Col, c.Row)); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) forEachBand(fn func(band image.Rectangle) error) error {
	return forEachBand(e.blocksWide, e.blocksHigh, e.options.Concurrency, fn)
}
