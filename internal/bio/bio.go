// Package bio provides word-level I/O for compressed image streams.
//
// Code words are serialized as four octets, most significant first. Octet i
// of a word is the 8-bit field whose least significant bit is octetLSB(i).
package bio

import (
	"errors"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-comp40/internal/bitpack"
)

const (
	octetBits = 8
	wordBits  = 32
	// WordSize is the number of octets per serialized word.
	WordSize = wordBits / octetBits
)

// ErrTruncated is returned when the stream ends before a full word is read.
var ErrTruncated = errors.New("bio: truncated word stream")

// Writer writes 32-bit words to a byte stream.
type Writer struct {
	w   io.Writer
	buf [WordSize]byte
	n   int64 // Words written
}

// NewWriter creates a new word writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteWord writes word as four octets, most significant first.
func (w *Writer) WriteWord(word uint32) error {
	for i := range w.buf {
		w.buf[i] = byte(bitpack.GetU(uint64(word), octetBits, octetLSB(i)))
	}
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return err
	}
	w.n++
	return nil
}

// Count returns the number of words written so far.
func (w *Writer) Count() int64 { return w.n }

// Reader reads 32-bit words from a byte stream.
type Reader struct {
	r   io.Reader
	buf [WordSize]byte
	n   int64 // Words read
}

// NewReader creates a new word reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadWord reads the next word. A stream that ends before four octets are
// available, including one that ends exactly on a word boundary, yields
// ErrTruncated; the caller only asks for words it expects to be present.
func (r *Reader) ReadWord() (uint32, error) {
	got, err := io.ReadFull(r.r, r.buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: word %d has %d of %d octets", ErrTruncated, r.n, got, WordSize)
		}
		return 0, err
	}

	var word uint32
	for i, b := range r.buf {
		word |= uint32(b) << octetLSB(i)
	}
	r.n++
	return word, nil
}

// octetLSB returns the bit position of octet i within a word.
func octetLSB(i int) uint {
	return uint(wordBits - octetBits*(i+1))
}

// Count returns the number of words read so far.
func (r *Reader) Count() int64 { return r.n }
