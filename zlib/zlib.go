// Package zlib wraps the deflate package's raw DEFLATE encoder in the
// RFC 1950 ZLIB container: a 2-byte header describing the compression
// method and level, the DEFLATE stream itself, and a trailing 4-byte
// big-endian Adler-32 checksum of the uncompressed data.
package zlib

import (
	"bytes"
	"hash"
	"hash/adler32"
	"io"

	"github.com/nilgiri/deflate"
)

const (
	cm8kWindow = 7 // CINFO: log2(window size) - 8, 7 -> 32K window
	zlibMethod = 8 // CM: deflate
)

// Writer wraps a deflate.Writer, computing the Adler-32 checksum of
// everything written and emitting it as the ZLIB trailer on Close.
type Writer struct {
	sink     io.Writer
	inner    *deflate.Writer
	adler    hash.Hash32
	wroteHdr bool
	level    deflate.Level
	closed   bool
	err      error
}

// NewWriter returns a Writer that emits a complete ZLIB stream to sink.
func NewWriter(sink io.Writer, level deflate.Level) *Writer {
	return &Writer{sink: sink, level: level, adler: adler32.New()}
}

func (w *Writer) writeHeader() error {
	if w.wroteHdr {
		return nil
	}
	w.wroteHdr = true

	flevel := flevelFor(w.level)
	cmf := byte(zlibMethod | cm8kWindow<<4)
	flg := flevel << 6
	// FCHECK: the low 5 bits of FLG such that (CMF*256+FLG) % 31 == 0.
	check := (uint16(cmf)<<8 | uint16(flg)) % 31
	if check != 0 {
		flg += byte(31 - check)
	}
	if _, err := w.sink.Write([]byte{cmf, flg}); err != nil {
		w.err = err
		return err
	}
	w.inner = deflate.NewWriter(w.sink, w.level)
	return nil
}

// flevelFor maps a Level onto the RFC 1950 FLEVEL field, which uses
// zlib's own four-level scale (0 fastest .. 3 best), not this package's.
func flevelFor(level deflate.Level) byte {
	switch level {
	case deflate.None:
		return 0
	case deflate.Fast:
		return 1
	case deflate.Best:
		return 3
	default:
		return 2
	}
}

// Write implements io.Writer, feeding p through the DEFLATE encoder and
// folding it into the running Adler-32 checksum.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, deflate.ErrClosed
	}
	if w.err != nil {
		return 0, w.err
	}
	if err := w.writeHeader(); err != nil {
		return 0, err
	}
	n, err := w.inner.Write(p)
	if n > 0 {
		w.adler.Write(p[:n])
	}
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *Writer) Flush() error {
	if w.closed {
		return deflate.ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.inner.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Close finalizes the DEFLATE stream and appends the Adler-32 trailer.
func (w *Writer) Close() error {
	if w.closed {
		return deflate.ErrClosed
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.inner.Close(); err != nil {
		w.err = err
		return err
	}
	sum := w.adler.Sum32()
	trailer := [4]byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
	if _, err := w.sink.Write(trailer[:]); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Compress is a one-shot helper equivalent to writing all of input to a
// Writer and Closing it.
func Compress(input []byte, level deflate.Level) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf, level)
	_, _ = w.Write(input)
	_ = w.Close()
	return buf.Bytes()
}
