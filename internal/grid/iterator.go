package grid

import "image"

// Order selects how blocks follow one another during block-major traversal.
type Order int

const (
	// RowMajor visits blocks left to right, then top to bottom.
	RowMajor Order = iota
	// ColumnMajor visits blocks top to bottom, then left to right.
	ColumnMajor
)

// String returns the string representation of the order.
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Cell is one position yielded by a BlockIterator.
type Cell struct {
	// Col and Row address the cell in the underlying grid.
	Col, Row int
	// Block is the block coordinate, in units of blocks.
	Block image.Point
	// Index is the cell's position within its block's traversal, in
	// [0, size*size). Cells inside a block are visited column by column, so
	// for 2x2 blocks the indices map to top-left, bottom-left, top-right,
	// bottom-right.
	Index int
}

// BlockIterator walks every cell of a rectangular range of blocks, finishing
// each block before starting the next one.
//
//	it := grid.Blocks(bounds, 2, grid.RowMajor)
//	for it.Next() {
//	    c := it.Cell()
//	    ...
//	}
type BlockIterator struct {
	bounds image.Rectangle
	size   int
	order  Order
	total  int
	pos    int
	cell   Cell
}

// Blocks returns an iterator over the blocks inside bounds, which is given in
// block units. Each block spans size x size cells.
func Blocks(bounds image.Rectangle, size int, order Order) *BlockIterator {
	if size < 1 {
		size = 1
	}
	bounds = bounds.Canon()
	return &BlockIterator{
		bounds: bounds,
		size:   size,
		order:  order,
		total:  bounds.Dx() * bounds.Dy() * size * size,
		pos:    -1,
	}
}

// Next advances to the next cell, reporting false once every block is done.
func (it *BlockIterator) Next() bool {
	if it.pos+1 >= it.total {
		it.pos = it.total
		return false
	}
	it.pos++

	perBlock := it.size * it.size
	n, k := it.pos/perBlock, it.pos%perBlock

	var bx, by int
	switch it.order {
	case ColumnMajor:
		bx, by = n/it.bounds.Dy(), n%it.bounds.Dy()
	default:
		bx, by = n%it.bounds.Dx(), n/it.bounds.Dx()
	}
	block := image.Pt(it.bounds.Min.X+bx, it.bounds.Min.Y+by)

	it.cell = Cell{
		Col:   block.X*it.size + k/it.size,
		Row:   block.Y*it.size + k%it.size,
		Block: block,
		Index: k,
	}
	return true
}

// Cell returns the current cell. It is only valid after Next returned true.
func (it *BlockIterator) Cell() Cell { return it.cell }

// Len returns the total number of cells the iterator yields.
func (it *BlockIterator) Len() int { return it.total }
