package streamio

import (
	"bytes"
	"io"
	"testing"
)

func roundTrip(t *testing.T, compression string, payload []byte) []byte {
	t.Helper()
	var compressed bytes.Buffer
	wc, err := WrapWriter(&compressed, compression)
	if err != nil {
		t.Fatalf("WrapWriter(%q): %v", compression, err)
	}
	if _, err := wc.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := wc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := WrapReader(&compressed, compression)
	if err != nil {
		t.Fatalf("WrapReader(%q): %v", compression, err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return got
}

func TestNoneRoundTrip(t *testing.T) {
	payload := []byte("uncompressed passthrough")
	got := roundTrip(t, None, payload)
	if !bytes.Equal(got, payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestZstdRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("zstd payload "), 200)
	got := roundTrip(t, Zstd, payload)
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch, got %d bytes, want %d", len(got), len(payload))
	}
}

func TestLZ4RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("lz4 payload "), 200)
	got := roundTrip(t, LZ4, payload)
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch, got %d bytes, want %d", len(got), len(payload))
	}
}

func TestLZFRoundTripCompressible(t *testing.T) {
	payload := bytes.Repeat([]byte("lzf payload "), 200)
	got := roundTrip(t, LZF, payload)
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch, got %d bytes, want %d", len(got), len(payload))
	}
}

func TestLZFRoundTripIncompressibleFallsBackToStored(t *testing.T) {
	// Too short for LZF's minimum window, exercising the stored fallback.
	payload := []byte("ab")
	got := roundTrip(t, LZF, payload)
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch: got %q, want %q", got, payload)
	}
}

func TestWrapReaderRejectsUnknownCompression(t *testing.T) {
	if _, err := WrapReader(bytes.NewReader(nil), "snappy"); err == nil {
		t.Fatal("expected an error for an unrecognized compression name")
	}
}

func TestWrapWriterRejectsUnknownCompression(t *testing.T) {
	if _, err := WrapWriter(&bytes.Buffer{}, "snappy"); err == nil {
		t.Fatal("expected an error for an unrecognized compression name")
	}
}

func TestLZFStreamTooShortIsRejected(t *testing.T) {
	if _, err := WrapReader(bytes.NewReader([]byte{1, 2, 3}), LZF); err == nil {
		t.Fatal("expected an error decoding a truncated LZF stream")
	}
}
