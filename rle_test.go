package deflate

import "testing"

func TestTrimCount(t *testing.T) {
	lengths := []uint8{3, 0, 0, 5, 0, 0, 0}
	if got := trimCount(lengths, 1); got != 4 {
		t.Fatalf("trimCount = %d, want 4", got)
	}
	allZero := []uint8{0, 0, 0}
	if got := trimCount(allZero, 1); got != 1 {
		t.Fatalf("trimCount on all-zero = %d, want min(1)", got)
	}
}

func TestRLEScanLongZeroRun(t *testing.T) {
	lengths := make([]uint8, 150)
	var freq [numCodeLenSymbols]uint64
	syms := rleScan(lengths, &freq)
	var total int
	for _, s := range syms {
		switch s.code {
		case 0:
			total++
		case 17:
			total += int(s.extra) + 3
		case 18:
			total += int(s.extra) + 11
		default:
			t.Fatalf("unexpected non-zero-run code %d", s.code)
		}
	}
	if total != len(lengths) {
		t.Fatalf("decoded run total = %d, want %d", total, len(lengths))
	}
}

func TestRLEScanLongNonZeroRun(t *testing.T) {
	lengths := make([]uint8, 20)
	for i := range lengths {
		lengths[i] = 4
	}
	var freq [numCodeLenSymbols]uint64
	syms := rleScan(lengths, &freq)
	var total int
	for _, s := range syms {
		switch s.code {
		case 4:
			total++
		case 16:
			total += int(s.extra) + 3
		default:
			t.Fatalf("unexpected code %d in uniform non-zero run", s.code)
		}
	}
	if total != len(lengths) {
		t.Fatalf("decoded run total = %d, want %d", total, len(lengths))
	}
}

func TestRLEScanMixedAdvancesFully(t *testing.T) {
	lengths := []uint8{0, 0, 0, 0, 5, 5, 5, 5, 5, 5, 5, 0, 0, 3}
	var freq [numCodeLenSymbols]uint64
	syms := rleScan(lengths, &freq)
	if len(syms) == 0 {
		t.Fatalf("expected at least one symbol")
	}
	// Rebuild the length sequence from the symbols and compare.
	var rebuilt []uint8
	for _, s := range syms {
		switch s.code {
		case 16:
			prev := rebuilt[len(rebuilt)-1]
			for i := 0; i < int(s.extra)+3; i++ {
				rebuilt = append(rebuilt, prev)
			}
		case 17:
			for i := 0; i < int(s.extra)+3; i++ {
				rebuilt = append(rebuilt, 0)
			}
		case 18:
			for i := 0; i < int(s.extra)+11; i++ {
				rebuilt = append(rebuilt, 0)
			}
		default:
			rebuilt = append(rebuilt, s.code)
		}
	}
	if len(rebuilt) != len(lengths) {
		t.Fatalf("rebuilt length %d, want %d", len(rebuilt), len(lengths))
	}
	for i := range lengths {
		if rebuilt[i] != lengths[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, rebuilt[i], lengths[i])
		}
	}
}

func TestEncodeCodeLengthRLEBuildsUsableTable(t *testing.T) {
	lit := fixedLitLenLengths()
	dist := fixedDistLengths()
	out := encodeCodeLengthRLE(lit, dist)
	if len(out.clLengths) < 4 {
		t.Fatalf("clLengths too short: %d", len(out.clLengths))
	}
	for _, sym := range out.symbols {
		if out.clTable.codes[sym.code].len == 0 {
			t.Fatalf("RLE emitted code-length symbol %d with no assigned code", sym.code)
		}
	}
}
