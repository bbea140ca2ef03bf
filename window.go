package deflate

// hashBits/hashTabSize/hashTabMask size the 3-byte-prefix hash index (spec
// §3 "Hash index"): head[h] is the most recent window position storing
// that prefix, prev[pos mod windowSize] threads a predecessor chain
// through the same bucket.
const (
	hashBits    = 15
	hashTabSize = 1 << hashBits
	hashTabMask = hashTabSize - 1
)

// noPos marks an empty hash-chain slot; 0 cannot be used as that sentinel
// because position 0 is a legitimate window offset, so positions are
// biased by +1 internally (see insert/chainHead/chainPrev).
const noPos = 0

// matcher implements spec §4.4: a sliding window over the input plus a
// two-level hash-chain index, exposing findLongest (longest match search
// bounded by a chain-walk budget) and insert (hash index maintenance).
//
// The window is twice windowSize so that "slide" is a single copy of the
// upper half down into the lower half, exactly as spec §9 describes: positions are plain
// integers indexed into a fixed arena, and staleness is a distance check
// at walk time rather than explicit chain removal.
type matcher struct {
	window []byte // len == 2*windowSize
	head   [hashTabSize]uint32
	prev   [windowSize]uint32

	// end is the arena index one past the last byte currently held.
	// base is the absolute position
	// corresponding to window[0] (so the real position of window[i] is
	// base+i).
	end  int
	base int64
}

func newMatcher() *matcher {
	return &matcher{window: make([]byte, 2*windowSize)}
}

func (m *matcher) reset() {
	for i := range m.head {
		m.head[i] = noPos
	}
	for i := range m.prev {
		m.prev[i] = noPos
	}
	m.end = 0
	m.base = 0
}

// absPos returns the absolute stream position of window[i].
func (m *matcher) absPos(i int) int64 { return m.base + int64(i) }

// append copies as much of b as fits before the window must slide,
// returning the number of bytes copied and whether a slide occurred.
// Callers loop until b is empty, and must rebase any arena-relative
// index they are holding (a tokenizer's parse cursor, a pending-match
// position) by -windowSize whenever slid is true — slide() itself only
// knows about the matcher's own state (end, base, head, prev).
func (m *matcher) append(b []byte) (n int, slid bool) {
	if m.end >= 2*windowSize-maxMatchLength {
		m.slide()
		slid = true
	}
	n = copy(m.window[m.end:], b)
	m.end += n
	return n, slid
}

// slide copies the upper windowSize bytes down to the start of the
// arena and rebases every stored chain position by -windowSize (spec
// §4.4 "When the window slides…").
func (m *matcher) slide() {
	copy(m.window[:windowSize], m.window[windowSize:2*windowSize])
	m.end -= windowSize
	m.base += windowSize

	for i, v := range m.head {
		if v > windowSize {
			m.head[i] = v - windowSize
		} else {
			m.head[i] = noPos
		}
	}
	for i, v := range m.prev {
		if v > windowSize {
			m.prev[i] = v - windowSize
		} else {
			m.prev[i] = noPos
		}
	}
}

// hash3 hashes a 3-byte prefix into a hashTabSize-bucket index.
func hash3(b0, b1, b2 byte) uint32 {
	h := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
	return (h * 0x9E3779B1) >> (32 - hashBits) & hashTabMask
}

// insert records window position i (relative to the arena, i.e. absolute
// position m.base+i) in the hash index. head and prev both store the
// full arena position, biased by +1 so 0 can serve as the "no entry"
// sentinel — only prev's own slot, not the value it holds, is masked to
// windowSize entries, the same split zlib's deflate.c uses for str vs.
// its hash table index. Masking the stored value itself (rather than
// just its table slot) would make every candidate beyond the first
// windowSize bytes alias into the wrong half of the arena.
func (m *matcher) insert(i int) {
	if i+3 > m.end {
		return
	}
	h := hash3(m.window[i], m.window[i+1], m.window[i+2])
	m.prev[i&windowMask] = m.head[h]
	m.head[h] = uint32(i) + 1
}

func (m *matcher) chainHead(h uint32) (pos int, ok bool) {
	v := m.head[h]
	if v == noPos {
		return 0, false
	}
	return int(v - 1), true
}

func (m *matcher) chainPrev(i int) (pos int, ok bool) {
	v := m.prev[i&windowMask]
	if v == noPos {
		return 0, false
	}
	return int(v - 1), true
}

// matchParams bounds the search performed by findLongest; level.go maps a
// Level to concrete values (spec §4.8).
type matchParams struct {
	maxChain  int
	goodMatch int
	niceMatch int
}

// findLongest implements spec §4.4's find_longest: search the hash chain
// at pos for the longest match of at least minMatchLength bytes, walking
// at most params.maxChain candidates, applying the good-match chain-halving
// shortcut and the nice-match early exit.
func (m *matcher) findLongest(pos, prevLen int, lookahead int, params matchParams) (length, distance int, ok bool) {
	if lookahead < minMatchLength {
		return 0, 0, false
	}
	maxLen := maxMatchLength
	if lookahead < maxLen {
		maxLen = lookahead
	}
	if prevLen >= maxLen {
		return 0, 0, false
	}

	h := hash3(m.window[pos], m.window[pos+1], m.window[pos+2])
	cand, ok := m.chainHead(h)
	if !ok {
		return 0, 0, false
	}

	bestLen := prevLen
	if bestLen < minMatchLength-1 {
		bestLen = minMatchLength - 1
	}
	bestDist := 0
	tries := params.maxChain
	nice := params.niceMatch
	if nice > maxLen {
		nice = maxLen
	}

	minCand := pos - windowSize
	if minCand < 0 {
		minCand = 0
	}

	for tries > 0 {
		if cand < minCand || cand >= pos {
			break
		}
		// Fast reject: compare the byte at the tail of the current best
		// length before doing a full extend (spec §4.4 step 2).
		if bestLen < maxLen && m.window[cand+bestLen] == m.window[pos+bestLen] {
			n := matchLength(m.window, cand, pos, maxLen)
			if n > bestLen {
				bestLen = n
				bestDist = pos - cand
				if bestLen >= nice {
					break
				}
			}
		}
		tries--
		if bestLen >= params.goodMatch {
			tries >>= 1
		}
		next, ok2 := m.chainPrev(cand)
		if !ok2 || next >= cand {
			break
		}
		cand = next
	}

	if bestLen >= minMatchLength && bestDist > 0 {
		return bestLen, bestDist, true
	}
	return 0, 0, false
}

// matchLength extends a candidate match starting at a and b forward up
// to max bytes, returning the number of equal leading bytes.
func matchLength(window []byte, a, b, max int) int {
	n := 0
	for n < max && window[a+n] == window[b+n] {
		n++
	}
	return n
}
