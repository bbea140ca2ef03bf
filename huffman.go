package deflate

import (
	"container/heap"
	"sort"
)

// huffmanCode is a canonical Huffman code held in the low len bits of
// bits, already reversed so the bit sink can write it LSB-first without
// a per-call reversal (see bitwriter.go).
type huffmanCode struct {
	bits uint16 // bit-reversed code, ready to feed to the bit sink
	len  uint8  // code length in bits, 0 means the symbol is unused
}

// huffmanTable holds one canonical Huffman code per symbol, built by
// buildHuffmanTable from a frequency histogram.
type huffmanTable struct {
	codes   []huffmanCode
	lengths []uint8
}

// huffNode is an entry in the construction heap: either a leaf (symbol >=
// 0) or an internal node (symbol == -1) with two children. freq drives
// the ordering; tie-breaking favors the lower original symbol index so
// that, for equal frequencies, output is deterministic and reproducible.
type huffNode struct {
	freq   uint64
	symbol int // -1 for internal nodes
	tie    int // lowest symbol index in this node's subtree, for deterministic ties
	left   *huffNode
	right  *huffNode
}

type huffHeap []*huffNode

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].tie < h[j].tie
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x any)   { *h = append(*h, x.(*huffNode)) }
func (h *huffHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// buildHuffmanTable builds a canonical, length-limited Huffman table for
// freq. maxLen is the code-length cap (15 for the literal/length and
// distance alphabets, 7 for the code-length alphabet, per RFC 1951
// §3.2.2/§3.2.7). Per the single-symbol and empty-alphabet edge cases in
// spec §4.2, a lone or wholly-absent symbol still gets a length so the
// bit sink always has something to write.
func buildHuffmanTable(freq []uint64, maxLen uint8) huffmanTable {
	lengths := computeCodeLengths(freq, maxLen)
	codes := canonicalCodes(lengths)
	return huffmanTable{codes: codes, lengths: lengths}
}

// computeCodeLengths returns one code length per symbol in freq, bounded
// by maxLen, with the Kraft inequality met with equality whenever any
// symbol is present. Unused symbols get 0, except the length-1 companion
// of a lone symbol and symbol 0 of an empty alphabet (see below).
func computeCodeLengths(freq []uint64, maxLen uint8) []uint8 {
	n := len(freq)
	lengths := make([]uint8, n)

	var present []int
	for i, f := range freq {
		if f > 0 {
			present = append(present, i)
		}
	}
	if len(present) == 0 {
		// RFC 1951 §3.2.7: an empty distance alphabet still needs one
		// code of length 1 for symbol 0.
		lengths[0] = 1
		return lengths
	}
	if len(present) == 1 {
		// A single used symbol still needs a real (length-1) code; an
		// unused dummy symbol (0, or 1 if the lone symbol is 0) also
		// gets length 1 so the code is complete.
		lengths[present[0]] = 1
		if present[0] == 0 {
			lengths[1] = 1
		} else {
			lengths[0] = 1
		}
		return lengths
	}

	depth := huffmanDepths(freq)
	for i, d := range depth {
		lengths[i] = d
	}
	limitLengths(lengths, present, freq, maxLen)
	return lengths
}

// huffmanDepths runs the textbook Huffman construction (a binary min-heap
// keyed by frequency, lower symbol index breaking ties) and returns each
// symbol's unbounded tree depth, i.e. its natural code length.
func huffmanDepths(freq []uint64) []uint8 {
	depth := make([]uint8, len(freq))

	h := make(huffHeap, 0, len(freq))
	heap.Init(&h)
	for sym, f := range freq {
		if f > 0 {
			heap.Push(&h, &huffNode{freq: f, symbol: sym, tie: sym})
		}
	}

	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		tie := a.tie
		if b.tie < tie {
			tie = b.tie
		}
		heap.Push(&h, &huffNode{
			freq:   a.freq + b.freq,
			symbol: -1,
			tie:    tie,
			left:   a,
			right:  b,
		})
	}
	if h.Len() == 1 {
		walkDepths(h[0], 0, depth)
	}
	return depth
}

func walkDepths(n *huffNode, d uint8, depth []uint8) {
	if n.symbol >= 0 {
		if d == 0 {
			d = 1 // the single-leaf case is handled by the caller, but be safe
		}
		depth[n.symbol] = d
		return
	}
	walkDepths(n.left, d+1, depth)
	walkDepths(n.right, d+1, depth)
}

// limitLengths enforces maxLen using the length-histogram repair from the
// reference DEFLATE encoders (zlib's gen_bitlen): any symbol whose
// unbounded depth exceeds maxLen is first clamped, then one shallower
// code is repeatedly moved one level down with a maxLen-length code
// moved up beside it as its sibling, each move lowering the Kraft sum
// by 2^-maxLen, until the sum is back to exactly 1. present lists the
// symbols with non-zero frequency (len(present) >= 2; the
// single/empty-alphabet cases are handled by the caller).
func limitLengths(lengths []uint8, present []int, freq []uint64, maxLen uint8) {
	var blCount [maxLitLenCodeLen + 1]int
	clamped := false
	for _, s := range present {
		l := lengths[s]
		if l > maxLen {
			clamped = true
			l = maxLen
			lengths[s] = maxLen
		}
		blCount[l]++
	}
	if !clamped {
		return
	}

	// Kraft-sum excess over 1, in units of 2^-maxLen.
	excess := -(1 << maxLen)
	for l := 1; l <= int(maxLen); l++ {
		excess += blCount[l] << (int(maxLen) - l)
	}
	for excess > 0 {
		bits := maxLen - 1
		for blCount[bits] == 0 {
			bits--
		}
		blCount[bits]--
		blCount[bits+1] += 2
		blCount[maxLen]--
		excess--
	}

	// Reassign per-symbol lengths from the repaired histogram: hand the
	// longest available bucket to the least-frequent symbols first (the
	// same preference the unbounded construction already expressed via
	// depth), breaking remaining ties on symbol index for determinism.
	ordered := append([]int(nil), present...)
	sort.Slice(ordered, func(i, j int) bool {
		si, sj := ordered[i], ordered[j]
		if lengths[si] != lengths[sj] {
			return lengths[si] > lengths[sj]
		}
		if freq[si] != freq[sj] {
			return freq[si] < freq[sj]
		}
		return si < sj
	})
	pos := 0
	for l := int(maxLen); l >= 1; l-- {
		for c := 0; c < blCount[l] && pos < len(ordered); c++ {
			lengths[ordered[pos]] = uint8(l)
			pos++
		}
	}
}

// canonicalCodes derives canonical codes from a length array: symbols are
// ordered by (length ascending, symbol ascending); the first gets code 0,
// each subsequent code is (prev+1)<<(thisLen-prevLen). The stored bits
// are bit-reversed within their length so the bit sink can emit them
// LSB-first (see bitwriter.go and spec §4.1/§9).
func canonicalCodes(lengths []uint8) []huffmanCode {
	codes := make([]huffmanCode, len(lengths))

	var maxLen uint8
	var countByLen [maxLitLenCodeLen + 1]int
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
		if l > 0 {
			countByLen[l]++
		}
	}
	if maxLen == 0 {
		return codes
	}

	var nextCode [maxLitLenCodeLen + 2]uint16
	var code uint16
	for l := uint8(1); l <= maxLen; l++ {
		code = (code + uint16(countByLen[l-1])) << 1
		nextCode[l] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c := nextCode[l]
		nextCode[l]++
		codes[sym] = huffmanCode{bits: reverseBits(c, l), len: l}
	}
	return codes
}

// reverseBits reverses the low n bits of v (n in 1..=15).
func reverseBits(v uint16, n uint8) uint16 {
	var r uint16
	for i := uint8(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}
