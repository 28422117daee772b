package grid

import (
	"image"
	"testing"
)

func TestGrid_SetAt(t *testing.T) {
	g := New[int](3, 2)
	if g.Width() != 3 || g.Height() != 2 || g.Len() != 6 {
		t.Fatalf("dimensions = %dx%d (%d cells)", g.Width(), g.Height(), g.Len())
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			g.Set(col, row, row*10+col)
		}
	}
	if got := g.At(2, 1); got != 12 {
		t.Errorf("At(2, 1) = %d, want 12", got)
	}
	if got := g.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds() = %v", got)
	}
}

func TestGrid_OutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New[int](2, 2).At(2, 0)
}

func TestBlocks_WithinBlockOrder(t *testing.T) {
	it := Blocks(image.Rect(0, 0, 1, 1), 2, RowMajor)
	want := []image.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	var got []image.Point
	for it.Next() {
		c := it.Cell()
		if c.Index != len(got) {
			t.Errorf("cell %d has Index %d", len(got), c.Index)
		}
		got = append(got, image.Pt(c.Col, c.Row))
	}
	if len(got) != len(want) {
		t.Fatalf("got %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBlocks_BlockOrder(t *testing.T) {
	tests := []struct {
		order Order
		want  []image.Point
	}{
		{RowMajor, []image.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}},
		{ColumnMajor, []image.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			it := Blocks(image.Rect(0, 0, 3, 2), 2, tt.order)
			if it.Len() != 24 {
				t.Errorf("Len() = %d, want 24", it.Len())
			}
			var blocks []image.Point
			for it.Next() {
				c := it.Cell()
				if c.Index == 0 {
					blocks = append(blocks, c.Block)
				}
				if c.Col/2 != c.Block.X || c.Row/2 != c.Block.Y {
					t.Errorf("cell (%d,%d) not inside block %v", c.Col, c.Row, c.Block)
				}
			}
			if len(blocks) != len(tt.want) {
				t.Fatalf("visited %d blocks, want %d", len(blocks), len(tt.want))
			}
			for i := range tt.want {
				if blocks[i] != tt.want[i] {
					t.Errorf("block %d = %v, want %v", i, blocks[i], tt.want[i])
				}
			}
		})
	}
}

func TestBlocks_SubRange(t *testing.T) {
	it := Blocks(image.Rect(0, 2, 2, 3), 1, RowMajor)
	var got []image.Point
	for it.Next() {
		c := it.Cell()
		got = append(got, image.Pt(c.Col, c.Row))
	}
	want := []image.Point{{0, 2}, {1, 2}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
	if it.Next() {
		t.Error("Next after exhaustion returned true")
	}
}

func TestBlocks_Empty(t *testing.T) {
	it := Blocks(image.Rectangle{}, 2, RowMajor)
	if it.Next() {
		t.Error("empty iterator yielded a cell")
	}
}
