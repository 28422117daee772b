package comp40

import (
	"errors"

	"github.com/mrjoshuak/go-comp40/internal/bio"
	"github.com/mrjoshuak/go-comp40/internal/bitpack"
	"github.com/mrjoshuak/go-comp40/internal/codestream"
	"github.com/mrjoshuak/go-comp40/internal/envelope"
)

var (
	// ErrOverflow is returned when a quantized value does not fit its code
	// word field. It indicates a misbehaving ChromaTable.
	ErrOverflow = bitpack.ErrOverflow

	// ErrFormat is returned when a stream header is malformed.
	ErrFormat = codestream.ErrFormat

	// ErrTruncated is returned when a stream holds fewer words than its
	// header declares.
	ErrTruncated = bio.ErrTruncated

	// ErrEnvelope is returned when an enveloped stream cannot be unwrapped.
	ErrEnvelope = envelope.ErrEnvelope

	// ErrInvalidRaster is returned when a raster breaks its invariants.
	ErrInvalidRaster = errors.New("comp40: invalid raster")
)
