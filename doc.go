// Package deflate implements a pure, in-memory/streaming encoder for the
// DEFLATE compressed data format (RFC 1951).
//
// # Overview
//
// deflate is an LZ77 + Huffman encoder: it finds back-references over a
// 32KiB sliding window using hash chains with lazy matching, partitions
// the resulting token stream into blocks, and for each block picks the
// cheapest of a stored, fixed-Huffman, or dynamic-Huffman encoding. The
// output of Writer is a byte-for-byte valid RFC 1951 stream; any
// conformant DEFLATE decoder reproduces the original input from it.
//
// # When to Use deflate
//
// Use this package when you need direct control over DEFLATE framing —
// for example to build the zlib or gzip containers (see the sibling
// zlib and gzip packages), or to emit raw DEFLATE into a protocol that
// expects it. It does not decode; pair it with compress/flate's Reader,
// or the zlib/gzip readers, to round-trip.
//
// # When NOT to Use deflate
//
// This package does not do random-access decoding, multi-threaded
// encoding, preset dictionaries, or deflate64. It does not try to match
// any other encoder's output byte-for-byte — only validity matters.
//
// # Basic Usage
//
//	var buf bytes.Buffer
//	w := deflate.NewWriter(&buf, deflate.Default)
//	if _, err := w.Write([]byte("hello, hello, hello")); err != nil {
//	    // handle SinkError
//	}
//	if err := w.Close(); err != nil {
//	    // handle SinkError
//	}
//
//	// Or the one-shot helper:
//	out := deflate.DeflateBytes([]byte("hello"), deflate.Best)
//
// # Performance Characteristics
//
// One Writer holds ~64KiB for the sliding window plus ~256KiB for the
// hash-chain index, allocated at construction. Planning each block
// allocates fresh Huffman tables and code-length slices, so Write, Flush
// and Close calls that end a block do allocate. Encoding is single-threaded and
// synchronous: every call blocks on the downstream io.Writer.
package deflate
