// Package gzip wraps the deflate package's raw DEFLATE encoder in the
// RFC 1952 GZIP container: a fixed 10-byte header, the DEFLATE stream,
// and a trailing 8-byte footer holding a CRC-32 of the uncompressed
// data and its length modulo 2^32, both little-endian.
package gzip

import (
	"bytes"
	"hash"
	"hash/crc32"
	"io"

	"github.com/nilgiri/deflate"
)

const (
	gzipID1    = 0x1f
	gzipID2    = 0x8b
	gzipMethod = 8 // CM: deflate
	osUnknown  = 0xff
)

// Writer wraps a deflate.Writer, computing the CRC-32 and length of
// everything written and emitting them as the GZIP footer on Close.
type Writer struct {
	sink     io.Writer
	inner    *deflate.Writer
	crc      hash.Hash32
	size     uint32
	wroteHdr bool
	level    deflate.Level
	closed   bool
	err      error
}

// NewWriter returns a Writer that emits a complete GZIP stream to sink.
func NewWriter(sink io.Writer, level deflate.Level) *Writer {
	return &Writer{sink: sink, level: level, crc: crc32.NewIEEE()}
}

func (w *Writer) writeHeader() error {
	if w.wroteHdr {
		return nil
	}
	w.wroteHdr = true

	header := [10]byte{gzipID1, gzipID2, gzipMethod, 0, 0, 0, 0, 0, xflFor(w.level), osUnknown}
	if _, err := w.sink.Write(header[:]); err != nil {
		w.err = err
		return err
	}
	w.inner = deflate.NewWriter(w.sink, w.level)
	return nil
}

// xflFor sets the two XFL bits gzip reserves for "encoder worked hard"
// (2, Best) and "encoder worked fast" (4, Fast/None) signaling.
func xflFor(level deflate.Level) byte {
	switch level {
	case deflate.Best:
		return 2
	case deflate.Fast, deflate.None:
		return 4
	default:
		return 0
	}
}

// Write implements io.Writer, feeding p through the DEFLATE encoder and
// folding it into the running CRC-32 and total size.
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
		w.crc.Write(p[:n])
		w.size += uint32(n)
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

// Close finalizes the DEFLATE stream and appends the CRC-32/ISIZE
// footer.
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
	sum := w.crc.Sum32()
	var footer [8]byte
	footer[0], footer[1], footer[2], footer[3] = byte(sum), byte(sum>>8), byte(sum>>16), byte(sum>>24)
	footer[4], footer[5], footer[6], footer[7] = byte(w.size), byte(w.size>>8), byte(w.size>>16), byte(w.size>>24)
	if _, err := w.sink.Write(footer[:]); err != nil {
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
