package rowbinary

// maxVarintLen is the number of 7-bit groups needed to cover the wire's
// varint domain (string/array lengths, bounded to <= 2^31-1), so writers
// can reserve space without per-iteration checks.
const maxVarintLen = 5

// ReadUvarint reads one unsigned LEB128 integer: 7 bits per byte, least
// significant group first, continuing while the top bit is set. The
// result is bounded to <= 2^31-1, the only range the wire uses varints
// for (string/array lengths).
func (r *Reader) ReadUvarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if err := r.ensure(1, r.currentColumn); err != nil {
			return 0, err
		}
		b := r.buf[r.position]
		r.position++
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 35 {
			return 0, &InvalidArgumentError{Msg: "varint exceeds maximum supported width"}
		}
	}
	if result > 1<<31-1 {
		return 0, &InvalidArgumentError{Msg: "varint exceeds maximum supported value 2^31-1"}
	}
	return result, nil
}

// WriteUvarint writes v as unsigned LEB128: 7 bits per byte, continuation
// bit set until the residual is <= 0x7F. It reserves maxVarintLen bytes
// of buffer space up front, avoiding a per-iteration overflow check.
func (w *Writer) WriteUvarint(v uint64) error {
	if err := w.ensureWritable(maxVarintLen); err != nil {
		return err
	}
	for v >= 0x80 {
		w.buf[w.position] = byte(v) | 0x80
		w.position++
		v >>= 7
	}
	w.buf[w.position] = byte(v)
	w.position++
	return nil
}
