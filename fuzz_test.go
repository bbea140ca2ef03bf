package deflate

import (
	"bytes"
	"testing"
)

func FuzzWriterRoundtrip(f *testing.F) {
	f.Add([]byte(""), 2)
	f.Add([]byte("a"), 0)
	f.Add([]byte("aaaaaaaaaaaaaaaaaaaa"), 3)
	f.Add(bytes.Repeat([]byte("0123456789"), 50), 1)

	f.Fuzz(func(t *testing.T, data []byte, levelSeed int) {
		lvl := Level(((levelSeed % int(Best+1)) + int(Best+1)) % int(Best+1))
		out := DeflateBytes(data, lvl)
		got := decodeRaw(t, out)
		if !bytes.Equal(got, data) {
			t.Fatalf("roundtrip mismatch for %d-byte input at level %v", len(data), lvl)
		}
	})
}

func FuzzWriterChunkedWrites(f *testing.F) {
	f.Add([]byte("split across several Write calls, repeated"), 7)

	f.Fuzz(func(t *testing.T, data []byte, chunkSeed int) {
		chunk := chunkSeed % 37
		if chunk <= 0 {
			chunk = 1
		}
		var buf bytes.Buffer
		w := NewWriter(&buf, Default)
		for i := 0; i < len(data); i += chunk {
			end := i + chunk
			if end > len(data) {
				end = len(data)
			}
			if _, err := w.Write(data[i:end]); err != nil {
				t.Fatalf("write: %v", err)
			}
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		got := decodeRaw(t, buf.Bytes())
		if !bytes.Equal(got, data) {
			t.Fatalf("chunked roundtrip mismatch for %d-byte input, chunk=%d", len(data), chunk)
		}
	})
}
