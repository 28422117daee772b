package comp40

import (
	"bufio"
	"bytes"
	"errors"
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

// readChunk bounds how many words are buffered ahead of the data actually
// present, so a lying header cannot force a huge allocation.
const readChunk = 1 << 16

// decoder handles decompression.
type decoder struct {
	r        *bufio.Reader
	cfg      *Config
	table    ChromaTable
	order    grid.Order
	envelope envelope.Kind
	header   codestream.Header
}

// newDecoder creates a new decoder.
func newDecoder(r io.Reader, cfg *Config) *decoder {
	table := cfg.Chroma
	if table == nil {
		table = DefaultChromaTable()
	}
	return &decoder{
		r:     bufio.NewReader(r),
		cfg:   cfg,
		table: table,
		order: cfg.Traversal.order(),
	}
}

// decode decompresses the stream.
func (d *decoder) decode() (*Raster, error) {
	if err := d.readHeader(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	words, err := d.readWords()
	if err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}

	records, err := d.unpack(words)
	if err != nil {
		return nil, fmt.Errorf("unpacking words: %w", err)
	}

	cv, err := d.expand(records)
	if err != nil {
		return nil, fmt.Errorf("expanding blocks: %w", err)
	}

	img, err := d.toRaster(cv)
	if err != nil {
		return nil, fmt.Errorf("converting to RGB: %w", err)
	}
	return img, nil
}

// readMetadata reads only the header.
func (d *decoder) readMetadata() (*Metadata, error) {
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	h := d.header
	return &Metadata{
		Width:      h.Width,
		Height:     h.Height,
		BlocksWide: h.BlocksWide(),
		BlocksHigh: h.BlocksHigh(),
		Words:      h.Words(),
		Envelope:   envelopeOf(d.envelope),
	}, nil
}

// readHeader unwraps any envelope and parses the stream header.
func (d *decoder) readHeader() error {
	prefix, err := d.r.Peek(envelope.MagicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	d.envelope = envelope.Detect(prefix)

	if d.envelope != envelope.None {
		data, err := io.ReadAll(d.r)
		if err != nil {
			return err
		}
		plain, _, err := envelope.Unwrap(data)
		if err != nil {
			return err
		}
		d.r = bufio.NewReader(bytes.NewReader(plain))
	}

	h, err := codestream.ReadHeader(d.r)
	if err != nil {
		return err
	}
	d.header = h
	return nil
}

// readWords reads one word per block and places them in block order.
func (d *decoder) readWords() (*grid.Grid[uint32], error) {
	total := d.header.Words()
	buf := make([]uint32, 0, min(total, readChunk))

	br := bio.NewReader(d.r)
	for len(buf) < total {
		word, err := br.ReadWord()
		if err != nil {
			return nil, fmt.Errorf("word %d of %d: %w", len(buf), total, err)
		}
		buf = append(buf, word)
	}

	words := grid.New[uint32](d.header.BlocksWide(), d.header.BlocksHigh())
	it := grid.Blocks(words.Bounds(), 1, grid.RowMajor)
	for i := 0; it.Next(); i++ {
		c := it.Cell()
		words.Set(c.Col, c.Row, buf[i])
	}
	return words, nil
}

// unpack splits every word into its record.
func (d *decoder) unpack(words *grid.Grid[uint32]) (*grid.Grid[codeword.Record], error) {
	records := grid.New[codeword.Record](words.Width(), words.Height())

	err := d.forEachBand(func(band image.Rectangle) error {
		it := grid.Blocks(band, 1, d.order)
		for it.Next() {
			c := it.Cell()
			records.Set(c.Col, c.Row, codeword.Unpack(words.At(c.Col, c.Row)))
		}
		return nil
	})
	return records, err
}

// expand broadcasts each record back over the four samples of its block.
func (d *decoder) expand(records *grid.Grid[codeword.Record]) (*grid.Grid[mct.YPbPr], error) {
	cv := grid.New[mct.YPbPr](d.header.Width, d.header.Height)

	err := d.forEachBand(func(band image.Rectangle) error {
		exp := block.NewExpander()
		it := grid.Blocks(band, block.Size, d.order)
		for it.Next() {
			c := it.Cell()
			if exp.Empty() {
				exp.Load(records.At(c.Block.X, c.Block.Y), d.table)
			}
			cv.Set(c.Col, c.Row, exp.Next())
		}
		if !exp.Empty() {
			return fmt.Errorf("band %v ended inside a block", band)
		}
		return nil
	})
	return cv, err
}

// toRaster converts component video to RGB at OutputDenominator.
func (d *decoder) toRaster(cv *grid.Grid[mct.YPbPr]) (*Raster, error) {
	out := NewRaster(cv.Width(), cv.Height(), OutputDenominator)

	err := d.forEachBand(func(band image.Rectangle) error {
		it := grid.Blocks(band, block.Size, d.order)
		for it.Next() {
			c := it.Cell()
			r, g, b := mct.Inverse(cv.At(c.Col, c.Row), OutputDenominator)
			out.Set(c.Col, c.Row, RGB{Red: r, Green: g, Blue: b})
		}
		return nil
	})
	return out, err
}

func (d *decoder) forEachBand(fn func(band image.Rectangle) error) error {
	return forEachBand(d.header.BlocksWide(), d.header.BlocksHigh(), d.cfg.Concurrency, fn)
}
