// Package envelope optionally wraps a complete compressed image stream in a
// zstd frame.
package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Kind selects the envelope around a stream.
type Kind int

const (
	// None leaves the stream as is.
	None Kind = iota
	// Zstd wraps the stream in a single zstd frame.
	Zstd
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// MagicLen is the number of leading bytes Detect inspects.
const MagicLen = 4

// maxDecodedSize bounds the size of an unwrapped stream.
const maxDecodedSize = 1 << 30

// ErrEnvelope is returned when an enveloped stream cannot be unwrapped.
var ErrEnvelope = errors.New("envelope: corrupt frame")

var encPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(
			nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithLowerEncoderMem(true),
		)
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var decPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(
			nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
			zstd.WithDecoderMaxMemory(maxDecodedSize),
		)
		if err != nil {
			panic(err)
		}
		return dec
	},
}

// Detect reports the envelope a stream starts with, given at least its
// first MagicLen bytes.
func Detect(prefix []byte) Kind {
	if bytes.HasPrefix(prefix, zstdMagic) {
		return Zstd
	}
	return None
}

// Wrap encloses data in the requested envelope.
func Wrap(k Kind, data []byte) ([]byte, error) {
	switch k {
	case None:
		return data, nil
	case Zstd:
		enc := encPool.Get().(*zstd.Encoder)
		out := enc.EncodeAll(data, nil)
		encPool.Put(enc)
		return out, nil
	default:
		return nil, fmt.Errorf("envelope: unsupported kind %d", k)
	}
}

// Unwrap removes the envelope Detect finds around data.
func Unwrap(data []byte) ([]byte, Kind, error) {
	k := Detect(data)
	if k == None {
		return data, None, nil
	}

	dec := decPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	decPool.Put(dec)
	if err != nil {
		return nil, k, fmt.Errorf("%w: %w", ErrEnvelope, err)
	}
	return out, k, nil
}
