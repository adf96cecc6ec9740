package rowbinary

import (
	"io"

	"rowbinary/internal/validate"
	"rowbinary/schema"
)

// Reader decodes RowBinary / RowBinaryWithNamesAndTypes rows from an
// underlying byte stream through a fixed-size buffer. A Reader is
// single-threaded and forward-only: no seek, no rollback.
type Reader struct {
	stream io.Reader
	buf    []byte
	pool   BufferPool
	pooled bool

	available       int // valid bytes in buf
	position        int // read cursor
	lastRowBoundary int // position at the start of the most recent row

	columns   []schema.Column
	validator *validate.State

	// currentColumn names the column a blocking refill is stalled on,
	// for EndOfStreamError reporting. Populated from the validator's
	// expected-path stack in debug builds; always "" in release builds,
	// where no schema is tracked to name it from.
	currentColumn string

	disposed bool
}

// NewReader binds a Reader to stream using opts. The returned
// Reader owns a pooled buffer unless opts.Buffer is supplied, in which
// case the caller's buffer is borrowed, never pooled.
func NewReader(stream io.Reader, opts Options) (*Reader, error) {
	if stream == nil {
		return nil, &InvalidArgumentError{Msg: "stream must not be nil"}
	}
	buf, pool, pooled, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return &Reader{
		stream:    stream,
		buf:       buf,
		pool:      pool,
		pooled:    pooled,
		validator: validate.New(nil),
	}, nil
}

// ReadColumns reads the RowBinaryWithNamesAndTypes header:
// varint column count, that many varint-length UTF-8 names, then that
// many varint-length type strings parsed via the schema package. Must be
// called at most once, before any row is decoded. The parsed columns
// seed the shape validator.
func (r *Reader) ReadColumns() ([]schema.Column, error) {
	r.topUp()

	count, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count < 1 || count > 1000 {
		return nil, &InvalidArgumentError{Msg: "column count out of sane range (1-1000)"}
	}

	names := make([]string, count)
	for i := range names {
		s, err := r.readLengthPrefixedString()
		if err != nil {
			return nil, err
		}
		names[i] = s
	}

	columns := make([]schema.Column, count)
	for i := range columns {
		s, err := r.readLengthPrefixedString()
		if err != nil {
			return nil, err
		}
		t, err := schema.Parse(s)
		if err != nil {
			return nil, err
		}
		columns[i] = schema.Column{Name: names[i], Type: t}
	}

	r.columns = columns
	r.validator = validate.New(columns)
	return columns, nil
}

func (r *Reader) readLengthPrefixedString() (string, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	if err := r.ensure(int(n), ""); err != nil {
		return "", err
	}
	s := string(r.buf[r.position : r.position+int(n)])
	r.position += int(n)
	return s, nil
}

// topUp performs a single non-blocking-effort read to fill the buffer
// before the header is parsed: it issues at most one Read call and
// tolerates a short result.
func (r *Reader) topUp() {
	if r.available >= len(r.buf) {
		return
	}
	n, _ := r.stream.Read(r.buf[r.available:])
	r.available += n
}

// ensure guarantees n unread bytes are buffered starting at position,
// performing a blocking refill of exactly the missing count if needed,
// compacting the unread tail to the start of the buffer first. column
// names the value being decoded, for EndOfStreamError.
func (r *Reader) ensure(n int, column string) error {
	have := r.available - r.position
	if have >= n {
		return nil
	}
	if n > len(r.buf) {
		return &InvalidArgumentError{Msg: "requested read exceeds buffer capacity; increase BufferSize"}
	}

	if r.position > 0 {
		copy(r.buf, r.buf[r.position:r.available])
		r.available -= r.position
		r.position = 0
	}

	missing := n - r.available
	obtained := r.available
	for missing > 0 {
		k, err := r.stream.Read(r.buf[r.available:n])
		if k > 0 {
			r.available += k
			missing -= k
			obtained += k
		}
		if err != nil {
			if err == io.EOF {
				return &EndOfStreamError{Required: n, Obtained: obtained, Column: column}
			}
			return err
		}
		if k == 0 {
			return &EndOfStreamError{Required: n, Obtained: obtained, Column: column}
		}
	}
	return nil
}

// IsComplete reports whether the stream has no further rows, performing
// I/O only when an adaptive heuristic demands it:
//
//   - if the unread tail already looks big enough to hold another row
//     the size of the last one, return false without touching the
//     stream;
//   - otherwise perform a non-blocking-style refill loop (compacting as
//     needed) until either the target is reached or a read returns zero
//     bytes; if nothing is left unread at that point, the stream is
//     exhausted.
func (r *Reader) IsComplete() (bool, error) {
	lastRowSize := r.position - r.lastRowBoundary
	if lastRowSize < 0 {
		lastRowSize = 0
	}
	if r.available-r.position >= lastRowSize {
		r.lastRowBoundary = r.position
		return false, nil
	}

	for {
		if r.position > 0 {
			copy(r.buf, r.buf[r.position:r.available])
			r.available -= r.position
			r.position = 0
		}
		if r.available-r.position >= lastRowSize || r.available >= len(r.buf) {
			break
		}
		n, err := r.stream.Read(r.buf[r.available:])
		r.available += n
		if n == 0 {
			if err != nil && err != io.EOF {
				return false, err
			}
			if r.position == r.available {
				return true, nil
			}
			r.lastRowBoundary = r.position
			return false, nil
		}
	}
	r.lastRowBoundary = r.position
	return false, nil
}

// check funnels a primitive's invocation through the shape validator,
// first recording the column path the validator expects next so a
// blocking refill inside the primitive can attribute an EndOfStreamError
// to it.
func (r *Reader) check(kind schema.Kind, precision, variableLength *int) error {
	r.currentColumn = r.validator.CurrentPath()
	return r.validator.Check(validate.Call{Kind: kind, Precision: precision, VariableLength: variableLength})
}

// Reset clears reader state and returns a pooled buffer to its pool.
// Double-reset/double-dispose is a no-op.
func (r *Reader) Reset() {
	if r.disposed {
		return
	}
	if r.pooled && r.pool != nil {
		r.pool.Put(r.buf)
	}
	r.buf = nil
	r.available = 0
	r.position = 0
	r.lastRowBoundary = 0
	r.columns = nil
	r.validator = validate.New(nil)
	r.disposed = true
}

// Close releases the reader's buffer. The underlying stream is borrowed
// from the caller and is never closed by the codec.
func (r *Reader) Close() error {
	r.Reset()
	return nil
}
