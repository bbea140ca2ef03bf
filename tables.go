package deflate

// RFC 1951 structural constants.
const (
	minMatchLength = 3
	maxMatchLength = 258

	windowBits = 15
	windowSize = 1 << windowBits // 32768
	windowMask = windowSize - 1

	endOfBlockSymbol = 256

	numLitLenSymbols = 286 // 0..255 literals, 256 EOB, 257..285 length codes
	numDistSymbols   = 30

	maxLitLenCodeLen = 15
	maxDistCodeLen   = 15
	maxCodeLenCodeLen = 7

	maxStoredBlockSize = 65535

	// blockByteCap bounds how many raw bytes a single block may span
	// before Writer forces a flush. It is kept well under windowSize so
	// that the block's start position is never slid out of the
	// matcher's arena between the decision to flush and the flush
	// itself (the tokenizer can lag the append cursor by up to
	// maxMatchLength bytes before a flush check runs).
	blockByteCap = windowSize - 4*maxMatchLength
)

// blockType identifies which of the three RFC 1951 block encodings was
// chosen for a given block.
type blockType uint8

const (
	blockStored blockType = iota
	blockFixed
	blockDynamic
)

// lengthBase and lengthExtraBits implement RFC 1951 §3.2.5: match lengths
// 3..=258 map to symbols 257..=285, each with 0..=5 extra bits.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtraBits implement RFC 1951 §3.2.5: distances
// 1..=32768 map to symbols 0..=29, each with 0..=13 extra bits.
var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
	8193, 12289, 16385, 24577,
}

var distExtraBits = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the RFC 1951 §3.2.7 permutation under which the 19
// code-length-alphabet lengths are transmitted in a dynamic block header.
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthCode returns the RFC 1951 length symbol (257..=285) and the extra
// bits needed to fully specify length (3..=258).
func lengthCode(length int) (sym int, extra uint16, extraBits uint8) {
	// lengthBase is sorted ascending; walk down from the top since most
	// real matches cluster toward the longer codes' wide ranges.
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= int(lengthBase[i]) {
			return 257 + i, uint16(length) - lengthBase[i], lengthExtraBits[i]
		}
	}
	panic("deflate: length out of range")
}

// distCode returns the RFC 1951 distance symbol (0..=29) and the extra
// bits needed to fully specify distance (1..=32768).
func distCode(distance int) (sym int, extra uint16, extraBits uint8) {
	for i := len(distBase) - 1; i >= 0; i-- {
		if distance >= int(distBase[i]) {
			return i, uint16(distance) - distBase[i], distExtraBits[i]
		}
	}
	panic("deflate: distance out of range")
}

// fixedLitLenLengths is the RFC 1951 §3.2.6 fixed literal/length code
// length table: 8 bits for 0..143 and 280..287, 9 bits for 144..255, 7
// bits for 256..279. Symbols 286 and 287 never occur in a block, but the
// table covers them because their two 8-bit codes precede every 9-bit
// code in canonical order.
func fixedLitLenLengths() []uint8 {
	l := make([]uint8, numLitLenSymbols+2)
	for i := 0; i < 144; i++ {
		l[i] = 8
	}
	for i := 144; i < 256; i++ {
		l[i] = 9
	}
	for i := 256; i < 280; i++ {
		l[i] = 7
	}
	for i := 280; i < len(l); i++ {
		l[i] = 8
	}
	return l
}

// fixedDistLengths is the RFC 1951 fixed distance code length table: all
// 30 symbols use 5 bits.
func fixedDistLengths() []uint8 {
	l := make([]uint8, numDistSymbols)
	for i := range l {
		l[i] = 5
	}
	return l
}
