package block

import (
	"github.com/mrjoshuak/go-comp40/internal/codeword"
	"github.com/mrjoshuak/go-comp40/internal/mct"
)

// Accumulator gathers the samples of one block in traversal order and
// reports when the block is complete.
type Accumulator struct {
	samples [Samples]mct.YPbPr
	count   int
}

// Add appends the next sample. Adding to a full accumulator panics.
func (a *Accumulator) Add(s mct.YPbPr) {
	if a.count == Samples {
		panic("block: accumulator overflow")
	}
	a.samples[a.count] = s
	a.count++
}

// Full reports whether every sample of the block has been added.
func (a *Accumulator) Full() bool { return a.count == Samples }

// Len returns the number of samples gathered for the current block.
func (a *Accumulator) Len() int { return a.count }

// Emit quantizes the gathered block and resets the accumulator. It panics
// if the block is incomplete.
func (a *Accumulator) Emit(table ChromaTable) codeword.Record {
	if a.count != Samples {
		panic("block: emit on incomplete block")
	}
	a.count = 0
	return Encode(a.samples, table)
}

// Expander broadcasts one decoded record back to the samples of its block,
// handing them out in traversal order.
type Expander struct {
	samples [Samples]mct.YPbPr
	next    int
}

// NewExpander returns an empty expander.
func NewExpander() *Expander {
	return &Expander{next: Samples}
}

// Empty reports whether every sample of the current block has been handed out.
func (e *Expander) Empty() bool { return e.next == Samples }

// Load decodes r and rewinds the expander to its first sample.
func (e *Expander) Load(r codeword.Record, table ChromaTable) {
	e.samples = Decode(r, table)
	e.next = 0
}

// Next returns the next sample. It panics when the expander is empty.
func (e *Expander) Next() mct.YPbPr {
	if e.Empty() {
		panic("block: expander exhausted")
	}
	s := e.samples[e.next]
	e.next++
	return s
}
