package rowbinary

// DefaultBufferSize is used when Options.BufferSize is zero.
const DefaultBufferSize = 1 << 20

// Options configures a Reader or Writer.
// The zero value is valid and selects the default pooled buffer.
type Options struct {
	// BufferSize is the size of the buffer to allocate when Buffer is
	// nil. Defaults to DefaultBufferSize.
	BufferSize int

	// BufferPool supplies and reclaims the buffer when Buffer is nil.
	// Defaults to DefaultPool.
	BufferPool BufferPool

	// Buffer, if non-nil, is used directly as the codec's buffer and is
	// never pooled: ownership stays with the caller.
	Buffer []byte
}

// resolve derives the concrete buffer and pool to use from o. A non-nil
// Buffer must not be empty and takes precedence; BufferSize and
// BufferPool are then ignored. Otherwise BufferSize must not be negative.
func (o Options) resolve() (buf []byte, pool BufferPool, pooled bool, err error) {
	if o.Buffer != nil {
		if len(o.Buffer) == 0 {
			return nil, nil, false, &InvalidArgumentError{Msg: "Options.Buffer must not be empty"}
		}
		return o.Buffer, nil, false, nil
	}

	size := o.BufferSize
	if size == 0 {
		size = DefaultBufferSize
	}
	if size < 0 {
		return nil, nil, false, &InvalidArgumentError{Msg: "Options.BufferSize must not be negative"}
	}

	p := o.BufferPool
	if p == nil {
		p = DefaultPool
	}
	return p.Get(size), p, true, nil
}
