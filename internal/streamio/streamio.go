// Package streamio wraps a CLI input/output stream with a decompressor or
// compressor chosen by name. RowBinary itself carries no inline
// compression opcodes, so the swap happens once, at stream setup.
package streamio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	lzf "github.com/zhuyie/golzf"
)

// Names of the supported compression modes.
const (
	None = ""
	Zstd = "zstd"
	LZ4  = "lz4"
	LZF  = "lzf"
)

// WrapReader decorates r with a decompressing reader for the named
// compression mode, or returns r unchanged for None.
func WrapReader(r io.Reader, compression string) (io.Reader, error) {
	switch compression {
	case None:
		return r, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("streamio: zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return lz4.NewReader(r), nil
	case LZF:
		return wrapLZFReader(r)
	default:
		return nil, fmt.Errorf("streamio: unsupported compression %q", compression)
	}
}

// WrapWriter decorates w with a compressing writer for the named
// compression mode. The returned io.WriteCloser must be closed to flush
// the compressed trailer, even for None (a no-op closer).
func WrapWriter(w io.Writer, compression string) (io.WriteCloser, error) {
	switch compression {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("streamio: zstd writer: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case LZF:
		return newLZFWriter(w), nil
	default:
		return nil, fmt.Errorf("streamio: unsupported compression %q", compression)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// lzfFrame layout: a one-byte stored flag, a little-endian uint32
// compressed length, a little-endian uint32 original length, the payload.
// golzf has no streaming API, so the whole stream is buffered on both
// sides.

func wrapLZFReader(r io.Reader) (io.Reader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("streamio: reading LZF stream: %w", err)
	}
	if len(raw) < 9 {
		return nil, fmt.Errorf("streamio: LZF stream too short")
	}
	stored := raw[0] == 1
	compLen := binary.LittleEndian.Uint32(raw[1:5])
	origLen := binary.LittleEndian.Uint32(raw[5:9])
	payload := raw[9:]
	if uint32(len(payload)) != compLen {
		return nil, fmt.Errorf("streamio: LZF payload length mismatch: header says %d, got %d", compLen, len(payload))
	}
	if stored {
		return bytes.NewReader(payload), nil
	}
	dst := make([]byte, origLen)
	n, err := lzf.Decompress(payload, dst)
	if err != nil {
		return nil, fmt.Errorf("streamio: LZF decompression: %w", err)
	}
	if uint32(n) != origLen {
		return nil, fmt.Errorf("streamio: LZF decompressed length mismatch: expected %d, got %d", origLen, n)
	}
	return bytes.NewReader(dst[:n]), nil
}

type lzfWriter struct {
	dst io.Writer
	buf bytes.Buffer
}

func newLZFWriter(dst io.Writer) *lzfWriter {
	return &lzfWriter{dst: dst}
}

func (w *lzfWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Close compresses the buffered bytes and writes the framed result,
// falling back to a stored (uncompressed) frame when the input is too
// small or incompressible for LZF to shrink (golzf reports failure rather
// than emitting an expanded frame).
func (w *lzfWriter) Close() error {
	src := w.buf.Bytes()
	var header [9]byte
	dst := make([]byte, len(src))
	n, err := lzf.Compress(src, dst)
	if err != nil || n == 0 {
		header[0] = 1
		binary.LittleEndian.PutUint32(header[1:5], uint32(len(src)))
		binary.LittleEndian.PutUint32(header[5:9], uint32(len(src)))
		if _, err := w.dst.Write(header[:]); err != nil {
			return err
		}
		_, err := w.dst.Write(src)
		return err
	}
	header[0] = 0
	binary.LittleEndian.PutUint32(header[1:5], uint32(n))
	binary.LittleEndian.PutUint32(header[5:9], uint32(len(src)))
	if _, err := w.dst.Write(header[:]); err != nil {
		return err
	}
	_, err = w.dst.Write(dst[:n])
	return err
}
