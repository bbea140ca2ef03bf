package deflate

// tokenizer drives lazy-matching LZ77 over a matcher's sliding window,
// appending literal and match tokens to a tokenBuffer (spec §4.5).
//
// Input arrives incrementally through Writer.Write, so the tokenizer
// keeps its own parse cursor pos into the matcher's window, separate
// from the matcher's end (how much data has been appended so far): pos
// is the next byte not yet classified as literal or match.
type tokenizer struct {
	m      *matcher
	policy levelPolicy

	pos int

	havePending bool
	pendingLen  int
	pendingDist int
	pendingPos  int
}

func newTokenizer(m *matcher, policy levelPolicy) *tokenizer {
	return &tokenizer{m: m, policy: policy}
}

func (t *tokenizer) reset(policy levelPolicy) {
	t.pos = 0
	t.havePending = false
	t.policy = policy
}

// rebase shifts every arena-relative position the tokenizer holds by
// -shift, in lockstep with a matcher.slide(). Without this the parse
// cursor would keep pointing at the stream position it held before the
// slide instead of the (now relocated) byte it was actually parsing.
func (t *tokenizer) rebase(shift int) {
	t.pos -= shift
	if t.havePending {
		t.pendingPos -= shift
	}
}

// step classifies the byte at t.pos: either it resolves a previously
// deferred (lazy) match, or it searches fresh. atEnd relaxes the lazy
// one-byte lookahead requirement near the tail of the stream, where a
// second search at pos+1 wouldn't see any more data than the first.
func (t *tokenizer) step(tb *tokenBuffer, atEnd bool) {
	lookahead := t.m.end - t.pos
	if lookahead <= 0 {
		return
	}

	var length, dist int
	var ok bool
	if lookahead >= minMatchLength {
		length, dist, ok = t.m.findLongest(t.pos, 0, lookahead, t.policy.params)
	}
	t.m.insert(t.pos)

	if t.havePending {
		if ok && length > t.pendingLen {
			// The deferred byte is better emitted as a literal now that
			// pos+1 found a longer match than pos did.
			tb.addLiteral(t.m.window[t.pendingPos])
			t.pendingLen = length
			t.pendingDist = dist
			t.pendingPos = t.pos
			t.pos++
			return
		}
		t.flushPending(tb)
		return
	}

	if !ok {
		tb.addLiteral(t.m.window[t.pos])
		t.pos++
		return
	}

	if t.policy.lazy && !atEnd {
		t.havePending = true
		t.pendingLen = length
		t.pendingDist = dist
		t.pendingPos = t.pos
		t.pos++
		return
	}

	t.commitMatch(tb, t.pos, length, dist)
}

// flushPending emits the deferred match and advances past it, inserting
// the hash-chain entries for the positions it consumed along the way.
func (t *tokenizer) flushPending(tb *tokenBuffer) {
	t.havePending = false
	t.commitMatch(tb, t.pendingPos, t.pendingLen, t.pendingDist)
}

// commitMatch emits a match token covering [pos, pos+length) and
// catches up the hash index for every position skipped past (pos itself
// and, when pos < t.pos, the lazily-deferred byte are already indexed).
func (t *tokenizer) commitMatch(tb *tokenBuffer, pos, length, dist int) {
	tb.addMatch(length, dist)
	end := pos + length
	for p := t.pos + 1; p < end && p+3 <= t.m.end; p++ {
		t.m.insert(p)
	}
	if end > t.pos {
		t.pos = end
	}
}
