// Package codeword defines the quantized record of one 2x2 block and its
// fixed layout inside a 32-bit code word.
package codeword

import (
	"fmt"

	"github.com/mrjoshuak/go-comp40/internal/bitpack"
)

// WordBits is the size of a packed code word.
const WordBits = 32

// Field identifies one member of a Record.
type Field int

// Record fields, in layout order from most to least significant.
const (
	FieldA Field = iota
	FieldB
	FieldC
	FieldD
	FieldPb
	FieldPr
	numFields
)

// String returns the string representation of the field.
func (f Field) String() string {
	switch f {
	case FieldA:
		return "a"
	case FieldB:
		return "b"
	case FieldC:
		return "c"
	case FieldD:
		return "d"
	case FieldPb:
		return "pb"
	case FieldPr:
		return "pr"
	default:
		return "unknown"
	}
}

// Slot is the position of one field inside a code word.
type Slot struct {
	Width  uint
	LSB    uint
	Signed bool
}

// Layout is the single table both Pack and Unpack read. Fields are listed
// in Field order and never overlap.
var Layout = [numFields]Slot{
	FieldA:  {Width: 9, LSB: 23},
	FieldB:  {Width: 5, LSB: 18, Signed: true},
	FieldC:  {Width: 5, LSB: 13, Signed: true},
	FieldD:  {Width: 5, LSB: 8, Signed: true},
	FieldPb: {Width: 4, LSB: 4},
	FieldPr: {Width: 4, LSB: 0},
}

// Record is the quantized representation of one block.
type Record struct {
	// A is the average luma, in [0, 511].
	A uint16
	// B, C and D are the quantized luma gradients, in [-15, 15].
	B, C, D int8
	// Pb and Pr are indices into the chroma quantization table. They keep
	// whatever the table returned so Pack can reject indices that do not
	// fit their slot.
	Pb, Pr uint
}

func (r Record) unsigned(f Field) uint64 {
	switch f {
	case FieldA:
		return uint64(r.A)
	case FieldPb:
		return uint64(r.Pb)
	default:
		return uint64(r.Pr)
	}
}

func (r Record) signed(f Field) int64 {
	switch f {
	case FieldB:
		return int64(r.B)
	case FieldC:
		return int64(r.C)
	default:
		return int64(r.D)
	}
}

func (r *Record) setUnsigned(f Field, v uint64) {
	switch f {
	case FieldA:
		r.A = uint16(v)
	case FieldPb:
		r.Pb = uint(v)
	default:
		r.Pr = uint(v)
	}
}

func (r *Record) setSigned(f Field, v int64) {
	switch f {
	case FieldB:
		r.B = int8(v)
	case FieldC:
		r.C = int8(v)
	default:
		r.D = int8(v)
	}
}

// Pack lays r out in a code word. A field that does not fit its slot yields
// an error wrapping bitpack.ErrOverflow.
func Pack(r Record) (uint32, error) {
	var word uint64
	var err error
	for f := Field(0); f < numFields; f++ {
		s := Layout[f]
		if s.Signed {
			word, err = bitpack.NewS(word, s.Width, s.LSB, r.signed(f))
		} else {
			word, err = bitpack.NewU(word, s.Width, s.LSB, r.unsigned(f))
		}
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", f, err)
		}
	}
	return uint32(word), nil
}

// Unpack is the field-by-field inverse of Pack.
func Unpack(word uint32) Record {
	var r Record
	for f := Field(0); f < numFields; f++ {
		s := Layout[f]
		if s.Signed {
			r.setSigned(f, bitpack.GetS(uint64(word), s.Width, s.LSB))
		} else {
			r.setUnsigned(f, bitpack.GetU(uint64(word), s.Width, s.LSB))
		}
	}
	return r
}
