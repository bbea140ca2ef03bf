package deflate

import (
	"bytes"
	"io"
)

// Writer is a streaming DEFLATE (RFC 1951) encoder. It satisfies
// io.WriteCloser: Write feeds input, Flush emits everything written so
// far as a standard sync-flush point, and Close emits the final block
// and must be called exactly once, last.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink io.Writer
	bw   *bitWriter
	m    *matcher
	tok  *tokenizer
	tb   *tokenBuffer

	policy levelPolicy

	blockStartAbs int64
	closed        bool
	err           error
}

// NewWriter returns a Writer that emits a raw DEFLATE stream to sink at
// the given compression Level. An invalid Level is treated as Default.
func NewWriter(sink io.Writer, level Level) *Writer {
	if !level.valid() {
		level = Default
	}
	policy := policyForLevel(level)
	m := newMatcher()
	w := &Writer{
		sink:   sink,
		bw:     newBitWriter(sink),
		m:      m,
		tb:     newTokenBuffer(policy.tokenSoftCap + maxMatchLength),
		policy: policy,
	}
	w.tok = newTokenizer(m, policy)
	return w
}

// Write implements io.Writer. It never blocks on the match search; the
// only blocking is the occasional downstream write when a block fills.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.err != nil {
		return 0, w.err
	}
	total := 0
	for len(p) > 0 {
		n, slid := w.m.append(p)
		if slid {
			w.tok.rebase(windowSize)
		}
		p = p[n:]
		total += n
		w.pump(false)
		if w.err != nil {
			return total, w.err
		}
	}
	return total, nil
}

// pump classifies every byte the tokenizer can currently reach. When
// final is false it stops once fewer than maxMatchLength bytes of
// lookahead remain, since a shorter window could make the match search
// find an artificially short match near the edge of available input;
// Flush and Close pass final=true to drain the last few bytes anyway.
func (w *Writer) pump(final bool) {
	for w.tok.pos < w.m.end {
		if w.policy.search {
			lookahead := w.m.end - w.tok.pos
			if !final && lookahead < maxMatchLength {
				return
			}
			w.tok.step(w.tb, final)
		} else {
			w.tb.addLiteral(w.m.window[w.tok.pos])
			w.tok.pos++
		}
		if !w.tok.havePending {
			w.checkFlush()
		}
		if w.err != nil {
			return
		}
	}
}

// checkFlush forces a block boundary once the token buffer or the raw
// byte span of the in-progress block reaches its cap (spec §4.5/§4.6).
func (w *Writer) checkFlush() {
	bytesInBlock := w.m.absPos(w.tok.pos) - w.blockStartAbs
	if w.tb.full(w.policy.tokenSoftCap) || bytesInBlock >= blockByteCap {
		w.flushBlock(false)
	}
}

// flushBlock plans and emits everything accumulated since the last
// block boundary as one block, then resets for the next one. final
// marks this as the stream's last block (BFINAL=1); an empty final
// block is still emitted so Close always produces a valid stream.
func (w *Writer) flushBlock(final bool) {
	if w.err != nil {
		return
	}
	startAbs := w.blockStartAbs
	endAbs := w.m.absPos(w.tok.pos)
	n := int(endAbs - startAbs)

	if n == 0 && len(w.tb.tokens) == 0 && !final {
		return
	}

	var window []byte
	if n >= 0 && n <= maxStoredBlockSize {
		startIdx := int(startAbs - w.m.base)
		endIdx := int(endAbs - w.m.base)
		if startIdx >= 0 && endIdx <= len(w.m.window) && startIdx <= endIdx {
			window = w.m.window[startIdx:endIdx]
		}
	}

	plan := planBlock(w.tb, window)
	if !w.policy.search && window != nil {
		// Level None: Stored only.
		plan = blockPlan{typ: blockStored, bitCost: storedBlockCost(len(window))}
	}
	emitBlock(w.bw, plan, w.tb, window, final)
	if w.bw.err != nil {
		w.err = &SinkError{Err: w.bw.err}
		return
	}
	w.tb.reset()
	w.blockStartAbs = endAbs
}

// Flush implements spec §4.7: drain every buffered byte into tokens,
// close out the current block, and append the standard RFC 1951
// sync-flush marker (an empty, non-final stored block), guaranteeing a
// byte-aligned point a decoder can resume from. The Writer remains
// usable afterward.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	w.pump(true)
	if w.err != nil {
		return w.err
	}
	w.flushBlock(false)
	if w.err != nil {
		return w.err
	}
	emitSyncMarker(w.bw)
	if w.bw.err != nil {
		w.err = &SinkError{Err: w.bw.err}
		return w.err
	}
	if err := w.bw.flushToSink(); err != nil {
		w.err = &SinkError{Err: err}
		return w.err
	}
	return nil
}

// Close drains any remaining input, emits the final block (BFINAL=1),
// byte-aligns the stream, and flushes it to the sink. Close must be
// called exactly once; further Write, Flush, or Close calls return
// ErrClosed.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	w.pump(true)
	if w.err != nil {
		return w.err
	}
	w.flushBlock(true)
	if w.err != nil {
		return w.err
	}
	w.bw.alignToByte()
	if err := w.bw.flushToSink(); err != nil {
		w.err = &SinkError{Err: err}
		return w.err
	}
	return nil
}

// DeflateBytes is a one-shot helper that compresses input in one call,
// equivalent to writing all of input to a Writer and Closing it.
func DeflateBytes(input []byte, level Level) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf, level)
	_, _ = w.Write(input)
	_ = w.Close()
	return buf.Bytes()
}
