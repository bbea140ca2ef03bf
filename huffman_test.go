package deflate

import "testing"

// kraftSum returns the sum of 2^-length over every symbol with a
// nonzero length; a valid complete prefix code sums to exactly 1.
func kraftSum(lengths []uint8) float64 {
	var sum float64
	for _, l := range lengths {
		if l > 0 {
			sum += 1.0 / float64(uint64(1)<<l)
		}
	}
	return sum
}

func TestHuffmanTableKraftEquality(t *testing.T) {
	freq := make([]uint64, 286)
	freq[0] = 1
	freq[1] = 1
	freq[2] = 5
	freq[100] = 20
	freq[285] = 100

	tbl := buildHuffmanTable(freq, maxLitLenCodeLen)
	if got := kraftSum(tbl.lengths); got < 0.999999 || got > 1.000001 {
		t.Fatalf("kraft sum = %v, want 1", got)
	}
}

func TestHuffmanTableRespectsMaxLen(t *testing.T) {
	// A badly skewed frequency distribution (Fibonacci-like) drives the
	// unbounded Huffman tree deeper than maxCodeLenCodeLen would allow.
	freq := make([]uint64, 32)
	a, b := uint64(1), uint64(1)
	for i := range freq {
		freq[i] = a
		a, b = b, a+b
	}
	tbl := buildHuffmanTable(freq, maxCodeLenCodeLen)
	for sym, l := range tbl.lengths {
		if l > maxCodeLenCodeLen {
			t.Fatalf("symbol %d has length %d, exceeds cap %d", sym, l, maxCodeLenCodeLen)
		}
	}
	if got := kraftSum(tbl.lengths); got < 0.999999 || got > 1.000001 {
		t.Fatalf("kraft sum after length-limiting = %v, want 1", got)
	}
}

func TestHuffmanTableSingleSymbol(t *testing.T) {
	freq := make([]uint64, 30)
	freq[4] = 1
	tbl := buildHuffmanTable(freq, maxDistCodeLen)
	if tbl.lengths[4] != 1 {
		t.Fatalf("lone symbol should get length 1, got %d", tbl.lengths[4])
	}
	if tbl.codes[4].len != 1 {
		t.Fatalf("lone symbol code length = %d, want 1", tbl.codes[4].len)
	}
}

func TestHuffmanTableEmptyAlphabet(t *testing.T) {
	freq := make([]uint64, 30)
	tbl := buildHuffmanTable(freq, maxDistCodeLen)
	if tbl.lengths[0] != 1 {
		t.Fatalf("empty alphabet should assign symbol 0 length 1, got %d", tbl.lengths[0])
	}
}

func TestCanonicalCodesAscendingWithinLength(t *testing.T) {
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4}
	codes := canonicalCodes(lengths)
	// Symbol 5 has the shortest code (length 2); reversing its bits back
	// out should give the smallest 2-bit value, 0.
	if codes[5].len != 2 {
		t.Fatalf("symbol 5 length = %d, want 2", codes[5].len)
	}
	if got := reverseBits(codes[5].bits, 2); got != 0 {
		t.Fatalf("symbol 5 code = %b, want 0", got)
	}
	// Symbols 0..4 share length 3; their codes must ascend with symbol index.
	for sym := 1; sym <= 4; sym++ {
		prev := reverseBits(codes[sym-1].bits, 3)
		cur := reverseBits(codes[sym].bits, 3)
		if cur != prev+1 {
			t.Fatalf("symbol %d code = %b, want %b", sym, cur, prev+1)
		}
	}
}

func TestReverseBits(t *testing.T) {
	cases := []struct {
		v    uint16
		n    uint8
		want uint16
	}{
		{0b1, 1, 0b1},
		{0b10, 2, 0b01},
		{0b101, 3, 0b101},
		{0b1100, 4, 0b0011},
	}
	for _, c := range cases {
		if got := reverseBits(c.v, c.n); got != c.want {
			t.Fatalf("reverseBits(%b, %d) = %b, want %b", c.v, c.n, got, c.want)
		}
	}
}
