// Package bitpack reads and writes arbitrary-width integer fields inside a
// 64-bit word.
//
// A field is addressed by its width in bits and the index of its least
// significant bit. Unsigned fields are zero-extended on extraction, signed
// fields are stored in two's complement and sign-extended on extraction.
package bitpack

import (
	"errors"
	"fmt"
)

// WordBits is the size of the word every field lives in.
const WordBits = 64

// ErrOverflow is returned when a value does not fit in the requested field width.
var ErrOverflow = errors.New("bitpack: overflow packing bits")

// shl shifts left, yielding zero for shift amounts of a full word or more.
func shl(word uint64, n uint) uint64 {
	if n >= WordBits {
		return 0
	}
	return word << n
}

// shr is the logical right shift counterpart of shl.
func shr(word uint64, n uint) uint64 {
	if n >= WordBits {
		return 0
	}
	return word >> n
}

func checkField(width, lsb uint) {
	if width > WordBits || width+lsb > WordBits {
		panic(fmt.Sprintf("bitpack: field of width %d at lsb %d exceeds %d-bit word", width, lsb, WordBits))
	}
}

// FitsU reports whether n can be represented in width unsigned bits.
func FitsU(n uint64, width uint) bool {
	checkField(width, 0)
	switch width {
	case 0:
		return n == 0
	case WordBits:
		return true
	}
	return n < shl(1, width)
}

// FitsS reports whether n can be represented in width bits of two's complement.
func FitsS(n int64, width uint) bool {
	checkField(width, 0)
	switch width {
	case 0:
		return n == 0
	case WordBits:
		return true
	}
	hi := int64(shl(1, width-1))
	return n >= -hi && n < hi
}

// GetU extracts the width-bit field at lsb without sign extension.
func GetU(word uint64, width, lsb uint) uint64 {
	checkField(width, lsb)
	word = shl(word, WordBits-(lsb+width))
	return shr(word, WordBits-width)
}

// GetS extracts the width-bit field at lsb and sign-extends it from the
// field's most significant bit.
func GetS(word uint64, width, lsb uint) int64 {
	field := GetU(word, width, lsb)
	if width == 0 {
		return 0
	}
	if shr(field, width-1)&1 == 1 {
		field |= shl(^uint64(0), width)
	}
	return int64(field)
}

// NewU returns word with the width-bit field at lsb replaced by value.
// All other bits are preserved. ErrOverflow is returned when value does
// not satisfy FitsU.
func NewU(word uint64, width, lsb uint, value uint64) (uint64, error) {
	checkField(width, lsb)
	if !FitsU(value, width) {
		return 0, fmt.Errorf("%w: %d in %d unsigned bits", ErrOverflow, value, width)
	}
	field := shl(shr(^uint64(0), WordBits-width), lsb)
	return word&^field | shl(value, lsb), nil
}

// NewS is the signed counterpart of NewU. ErrOverflow is returned when
// value does not satisfy FitsS.
func NewS(word uint64, width, lsb uint, value int64) (uint64, error) {
	checkField(width, lsb)
	if !FitsS(value, width) {
		return 0, fmt.Errorf("%w: %d in %d signed bits", ErrOverflow, value, width)
	}
	return NewU(word, width, lsb, uint64(value)&shr(^uint64(0), WordBits-width))
}
