// Package codestream reads and writes the textual header of a compressed
// image stream.
//
// A stream is the magic line, a line holding the pixel width and height in
// decimal, and then one big-endian 32-bit code word per 2x2 block:
//
//	COMP40 Compressed image format 2\n
//	<width> <height>\n
//	<words...>
package codestream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Magic is the literal first line of every stream.
const Magic = "COMP40 Compressed image format 2\n"

// BlockSize is the side of the pixel block each code word describes.
const BlockSize = 2

// maxDimensionLine bounds the length of the dimension line.
const maxDimensionLine = 64

// ErrFormat is returned when the header does not match the expected grammar.
var ErrFormat = errors.New("codestream: malformed header")

// Header describes a stream.
type Header struct {
	// Width and Height are the image dimensions in pixels. Both are even.
	Width  int
	Height int
}

// BlocksWide returns the number of block columns.
func (h Header) BlocksWide() int { return h.Width / BlockSize }

// BlocksHigh returns the number of block rows.
func (h Header) BlocksHigh() int { return h.Height / BlockSize }

// Words returns the number of code words that follow the header.
func (h Header) Words() int { return h.BlocksWide() * h.BlocksHigh() }

// Validate checks that the dimensions describe whole blocks.
func (h Header) Validate() error {
	if h.Width < 0 || h.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrFormat, h.Width, h.Height)
	}
	if h.Width%BlockSize != 0 || h.Height%BlockSize != 0 {
		return fmt.Errorf("%w: dimensions %dx%d are not multiples of %d", ErrFormat, h.Width, h.Height, BlockSize)
	}
	return nil
}

// WriteHeader writes the magic and dimension lines.
func WriteHeader(w io.Writer, h Header) error {
	if err := h.Validate(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s%d %d\n", Magic, h.Width, h.Height)
	return err
}

// ReadHeader parses the magic and dimension lines, leaving r positioned at
// the first code word.
func ReadHeader(r *bufio.Reader) (Header, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: short magic", ErrFormat)
		}
		return Header{}, err
	}
	if string(magic) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrFormat, magic)
	}

	line, err := readLine(r)
	if err != nil {
		return Header{}, err
	}
	fields := bytes.Fields(line)
	if len(fields) != 2 {
		return Header{}, fmt.Errorf("%w: dimension line %q", ErrFormat, line)
	}

	var dims [2]int
	for i, f := range fields {
		v, err := strconv.ParseUint(string(f), 10, 31)
		if err != nil {
			return Header{}, fmt.Errorf("%w: dimension %q", ErrFormat, f)
		}
		dims[i] = int(v)
	}

	h := Header{Width: dims[0], Height: dims[1]}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// readLine reads up to and excluding the next newline.
func readLine(r *bufio.Reader) ([]byte, error) {
	var line []byte
	for len(line) <= maxDimensionLine {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: unterminated dimension line", ErrFormat)
			}
			return nil, err
		}
		if b == '\n' {
			return line, nil
		}
		line = append(line, b)
	}
	return nil, fmt.Errorf("%w: dimension line longer than %d bytes", ErrFormat, maxDimensionLine)
}
