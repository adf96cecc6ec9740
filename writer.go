package rowbinary

import (
	"io"

	"rowbinary/internal/validate"
	"rowbinary/schema"
)

// Writer encodes RowBinary / RowBinaryWithNamesAndTypes rows into an
// underlying byte stream through a fixed-size buffer. A Writer is
// single-threaded and forward-only.
type Writer struct {
	stream io.Writer
	buf    []byte
	pool   BufferPool
	pooled bool

	position        int // unflushed bytes pending in buf
	lastRowBoundary int // position at the start of the most recent row

	columns   []schema.Column
	validator *validate.State

	disposed bool
}

// NewWriter binds a Writer to stream using opts. The returned
// Writer owns a pooled buffer unless opts.Buffer is supplied, in which
// case the caller's buffer is borrowed, never pooled.
func NewWriter(stream io.Writer, opts Options) (*Writer, error) {
	if stream == nil {
		return nil, &InvalidArgumentError{Msg: "stream must not be nil"}
	}
	buf, pool, pooled, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return &Writer{
		stream:    stream,
		buf:       buf,
		pool:      pool,
		pooled:    pooled,
		validator: validate.New(nil),
	}, nil
}

// WriteColumns writes the RowBinaryWithNamesAndTypes header:
// varint column count, that many varint-length UTF-8 names, then that
// many varint-length type strings. Must be called at most once, before
// any row is encoded. The written columns seed the shape validator.
func (w *Writer) WriteColumns(columns []schema.Column) error {
	if len(columns) < 1 || len(columns) > 1000 {
		return &InvalidArgumentError{Msg: "column count out of sane range (1-1000)"}
	}
	if err := w.WriteUvarint(uint64(len(columns))); err != nil {
		return err
	}
	for _, c := range columns {
		if err := w.writeLengthPrefixedString(c.Name); err != nil {
			return err
		}
	}
	for _, c := range columns {
		if err := w.writeLengthPrefixedString(c.Type.String()); err != nil {
			return err
		}
	}
	w.columns = columns
	w.validator = validate.New(columns)
	return nil
}

func (w *Writer) writeLengthPrefixedString(s string) error {
	if err := w.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	return w.writeRaw([]byte(s))
}

func (w *Writer) writeRaw(b []byte) error {
	if err := w.ensureWritable(len(b)); err != nil {
		return err
	}
	copy(w.buf[w.position:], b)
	w.position += len(b)
	return nil
}

// ensureWritable guarantees n bytes of contiguous free space starting at
// position, flushing the full buffer to the stream first if necessary.
// A request larger than the whole buffer is rejected: no amount of
// flushing makes room for it.
func (w *Writer) ensureWritable(n int) error {
	if n > len(w.buf) {
		return &InvalidArgumentError{Msg: "requested write exceeds buffer capacity; increase BufferSize"}
	}
	if len(w.buf)-w.position >= n {
		return nil
	}
	return w.Flush()
}

// Flush writes any buffered bytes to the underlying stream and resets the
// buffer to empty. A no-op when nothing is pending.
func (w *Writer) Flush() error {
	if w.position == 0 {
		return nil
	}
	if _, err := w.stream.Write(w.buf[:w.position]); err != nil {
		return err
	}
	w.position = 0
	w.lastRowBoundary = 0
	return nil
}

// EndRow marks a row boundary and proactively flushes when the space
// remaining in the buffer looks too small to hold another row the size
// of the one just finished, mirroring the adaptive heuristic
// Reader.IsComplete uses on the decode side: the common case of writing
// many similarly-sized rows never pays for a flush it doesn't need, while
// an outsized next row still fits because the buffer was topped up ahead
// of it.
func (w *Writer) EndRow() error {
	lastRowSize := w.position - w.lastRowBoundary
	if lastRowSize < 0 {
		lastRowSize = 0
	}
	if len(w.buf)-w.position < lastRowSize {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	w.lastRowBoundary = w.position
	return nil
}

// check funnels a primitive's invocation through the shape validator.
func (w *Writer) check(kind schema.Kind, precision, variableLength *int) error {
	return w.validator.Check(validate.Call{Kind: kind, Precision: precision, VariableLength: variableLength})
}

// Reset flushes any pending bytes, clears writer state, and returns a
// pooled buffer to its pool. Double-reset/double-dispose is a no-op.
func (w *Writer) Reset() error {
	if w.disposed {
		return nil
	}
	err := w.Flush()
	if w.pooled && w.pool != nil {
		w.pool.Put(w.buf)
	}
	w.buf = nil
	w.position = 0
	w.lastRowBoundary = 0
	w.columns = nil
	w.validator = validate.New(nil)
	w.disposed = true
	return err
}

// Close performs the terminal flush and releases the writer's buffer. The
// underlying stream is borrowed from the caller and is never closed by
// the codec.
func (w *Writer) Close() error {
	return w.Reset()
}
