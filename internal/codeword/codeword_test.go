package codeword

import (
	"errors"
	"math"
	"testing"

	"github.com/mrjoshuak/go-comp40/internal/bitpack"
)

func TestLayout_CoversWordWithoutOverlap(t *testing.T) {
	var used uint64
	total := uint(0)
	for f := Field(0); f < numFields; f++ {
		s := Layout[f]
		mask := (uint64(1)<<s.Width - 1) << s.LSB
		if used&mask != 0 {
			t.Errorf("field %s overlaps an earlier field", f)
		}
		used |= mask
		total += s.Width
	}
	if total != WordBits || used != 1<<WordBits-1 {
		t.Errorf("layout covers %d bits (mask %#x), want all %d", total, used, WordBits)
	}
}

func TestPack_KnownWord(t *testing.T) {
	r := Record{A: 511, B: -1, C: 15, D: -16 + 1, Pb: 0xA, Pr: 0x5}
	word, err := Pack(r)
	if err != nil {
		t.Fatal(err)
	}
	// a=1_1111_1111 b=11111 c=01111 d=10001 pb=1010 pr=0101
	const want = 0b111111111_11111_01111_10001_1010_0101
	if word != want {
		t.Errorf("Pack = %#08x, want %#08x", word, uint32(want))
	}
}

func TestPack_Unpack_Roundtrip(t *testing.T) {
	tests := []Record{
		{},
		{A: 511, B: 15, C: 15, D: 15, Pb: 15, Pr: 15},
		{A: 0, B: -15, C: -15, D: -15, Pb: 0, Pr: 0},
		{A: 256, B: 3, C: -7, D: 0, Pb: 8, Pr: 7},
		{A: 1, B: -16, C: 0, D: 1, Pb: 1, Pr: 14},
	}
	for _, r := range tests {
		word, err := Pack(r)
		if err != nil {
			t.Fatalf("Pack(%+v): %v", r, err)
		}
		if got := Unpack(word); got != r {
			t.Errorf("Unpack(Pack(%+v)) = %+v", r, got)
		}
	}
}

func TestPack_Overflow(t *testing.T) {
	tests := []struct {
		name string
		r    Record
	}{
		{"a too large", Record{A: 512}},
		{"b too large", Record{B: 16}},
		{"c too small", Record{C: -17}},
		{"d too large", Record{D: 100}},
		{"pb too large", Record{Pb: 16}},
		{"pr too large", Record{Pr: 200}},
		{"pb beyond a byte", Record{Pb: 256}},
		{"pr beyond a byte", Record{Pr: 0x1_0005}},
		{"pb max", Record{Pb: math.MaxUint}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Pack(tt.r); !errors.Is(err, bitpack.ErrOverflow) {
				t.Errorf("Pack(%+v) error = %v, want ErrOverflow", tt.r, err)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	names := []string{"a", "b", "c", "d", "pb", "pr"}
	for f := Field(0); f < numFields; f++ {
		if got := f.String(); got != names[f] {
			t.Errorf("Field(%d).String() = %q, want %q", f, got, names[f])
		}
	}
	if got := numFields.String(); got != "unknown" {
		t.Errorf("numFields.String() = %q", got)
	}
}
