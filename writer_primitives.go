package rowbinary

import (
	"encoding/binary"
	"fmt"
	"math"

	"rowbinary/schema"
)

// Each primitive below mirrors its Read* counterpart: (a) consult the
// shape validator, (b) ensure room in the buffer (flushing if not), (c)
// encode, (d) advance position.

func (w *Writer) WriteUInt8(v uint8) error {
	if err := w.check(schema.KindUInt8, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(1); err != nil {
		return err
	}
	w.buf[w.position] = v
	w.position++
	return nil
}

func (w *Writer) WriteInt8(v int8) error {
	if err := w.check(schema.KindInt8, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(1); err != nil {
		return err
	}
	w.buf[w.position] = byte(v)
	w.position++
	return nil
}

func (w *Writer) WriteUInt16(v uint16) error {
	if err := w.check(schema.KindUInt16, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.buf[w.position:], v)
	w.position += 2
	return nil
}

func (w *Writer) WriteInt16(v int16) error {
	if err := w.check(schema.KindInt16, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.buf[w.position:], uint16(v))
	w.position += 2
	return nil
}

func (w *Writer) WriteUInt32(v uint32) error {
	if err := w.check(schema.KindUInt32, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.position:], v)
	w.position += 4
	return nil
}

func (w *Writer) WriteInt32(v int32) error {
	if err := w.check(schema.KindInt32, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.position:], uint32(v))
	w.position += 4
	return nil
}

func (w *Writer) WriteUInt64(v uint64) error {
	if err := w.check(schema.KindUInt64, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.buf[w.position:], v)
	w.position += 8
	return nil
}

func (w *Writer) WriteInt64(v int64) error {
	if err := w.check(schema.KindInt64, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.buf[w.position:], uint64(v))
	w.position += 8
	return nil
}

func (w *Writer) WriteFloat32(v float32) error {
	if err := w.check(schema.KindFloat32, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.position:], math.Float32bits(v))
	w.position += 4
	return nil
}

func (w *Writer) WriteFloat64(v float64) error {
	if err := w.check(schema.KindFloat64, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.buf[w.position:], math.Float64bits(v))
	w.position += 8
	return nil
}

func (w *Writer) WriteBool(v bool) error {
	if err := w.check(schema.KindBool, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(1); err != nil {
		return err
	}
	if v {
		w.buf[w.position] = 1
	} else {
		w.buf[w.position] = 0
	}
	w.position++
	return nil
}

// WriteString encodes s as a varint-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) error {
	length := len(s)
	if err := w.check(schema.KindString, nil, &length); err != nil {
		return err
	}
	if err := w.WriteUvarint(uint64(length)); err != nil {
		return err
	}
	return w.writeRaw([]byte(s))
}

// WriteFixedString encodes s into exactly n bytes, failing if s is longer
// than n; shorter strings are zero-padded.
func (w *Writer) WriteFixedString(s string, n int) error {
	if len(s) > n {
		return &InvalidArgumentError{Msg: fmt.Sprintf("string of %d bytes does not fit in FixedString(%d)", len(s), n)}
	}
	if err := w.check(schema.KindFixedString, intPtr(n), nil); err != nil {
		return err
	}
	if err := w.ensureWritable(n); err != nil {
		return err
	}
	copy(w.buf[w.position:w.position+n], s)
	for i := len(s); i < n; i++ {
		w.buf[w.position+i] = 0
	}
	w.position += n
	return nil
}

func (w *Writer) WriteDate(d Days) error {
	if d < 0 || d > maxDate {
		return &InvalidArgumentError{Msg: fmt.Sprintf("Date value %d out of range [0, %d]", d, maxDate)}
	}
	if err := w.check(schema.KindDate, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.buf[w.position:], uint16(d))
	w.position += 2
	return nil
}

func (w *Writer) WriteDate32(d Days) error {
	if d < minDate32 || d > maxDate32 {
		return &InvalidArgumentError{Msg: fmt.Sprintf("Date32 value %d out of range [%d, %d]", d, minDate32, maxDate32)}
	}
	if err := w.check(schema.KindDate32, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.position:], uint32(int32(d)))
	w.position += 4
	return nil
}

func (w *Writer) WriteDateTime(t UnixSeconds) error {
	if t > maxDateTime {
		return &InvalidArgumentError{Msg: fmt.Sprintf("DateTime value %d out of range [0, %d]", t, maxDateTime)}
	}
	if err := w.check(schema.KindDateTime, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.position:], uint32(t))
	w.position += 4
	return nil
}

// WriteDateTime64 encodes ticks (100ns units since epoch) at the given
// precision. Precisions 8 and 9 multiply, which can only enlarge the
// represented value, so no precision loss occurs on write.
func (w *Writer) WriteDateTime64(ticks Ticks, precision int) error {
	if ticks < minDateTime64 || ticks > maxDateTime64 {
		return &InvalidArgumentError{Msg: fmt.Sprintf("DateTime64 value %d out of range [%d, %d]", ticks, minDateTime64, maxDateTime64)}
	}
	num, den, err := precisionFactor(precision)
	if err != nil {
		return err
	}
	if err := w.check(schema.KindDateTime64, intPtr(precision), nil); err != nil {
		return err
	}
	if err := w.ensureWritable(8); err != nil {
		return err
	}
	// Inverse of the reader's raw*num/den: raw = ticks*den/num.
	raw := int64(ticks) * den / num
	binary.LittleEndian.PutUint64(w.buf[w.position:], uint64(raw))
	w.position += 8
	return nil
}

func (w *Writer) WriteTime(s Seconds) error {
	if s < -maxTimeSeconds || s > maxTimeSeconds {
		return &InvalidArgumentError{Msg: fmt.Sprintf("Time value %d out of range [%d, %d]", s, -maxTimeSeconds, maxTimeSeconds)}
	}
	if err := w.check(schema.KindTime, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.position:], uint32(int32(s)))
	w.position += 4
	return nil
}

func (w *Writer) WriteTime64(ticks Ticks, precision int) error {
	if ticks < -maxTime64Ticks || ticks > maxTime64Ticks {
		return &InvalidArgumentError{Msg: fmt.Sprintf("Time64 value %d out of range [%d, %d]", ticks, -maxTime64Ticks, maxTime64Ticks)}
	}
	num, den, err := precisionFactor(precision)
	if err != nil {
		return err
	}
	if err := w.check(schema.KindTime64, intPtr(precision), nil); err != nil {
		return err
	}
	if err := w.ensureWritable(8); err != nil {
		return err
	}
	raw := int64(ticks) * den / num
	binary.LittleEndian.PutUint64(w.buf[w.position:], uint64(raw))
	w.position += 8
	return nil
}

func (w *Writer) WriteUUID(u UUID) error {
	if err := w.check(schema.KindUUID, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(16); err != nil {
		return err
	}
	wire := uuidToWire(u)
	copy(w.buf[w.position:], wire[:])
	w.position += 16
	return nil
}

func (w *Writer) WriteIPv4(ip IPv4) error {
	if err := w.check(schema.KindIPv4, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(4); err != nil {
		return err
	}
	w.buf[w.position+0] = ip[3]
	w.buf[w.position+1] = ip[2]
	w.buf[w.position+2] = ip[1]
	w.buf[w.position+3] = ip[0]
	w.position += 4
	return nil
}

func (w *Writer) WriteIPv6(ip IPv6) error {
	if err := w.check(schema.KindIPv6, nil, nil); err != nil {
		return err
	}
	if err := w.ensureWritable(16); err != nil {
		return err
	}
	copy(w.buf[w.position:], ip[:])
	w.position += 16
	return nil
}

// WriteArrayLength encodes the varint length of the sequence that will
// immediately follow. The caller is obligated to then write exactly n
// elements.
func (w *Writer) WriteArrayLength(n int) error {
	if n < 0 {
		return &InvalidArgumentError{Msg: "array length must not be negative"}
	}
	if err := w.check(schema.KindArray, nil, &n); err != nil {
		return err
	}
	return w.WriteUvarint(uint64(n))
}

// WriteNull encodes the one-byte null tag preceding a Nullable value.
// absent indicates whether the column is null for this row (true) or a
// value follows next (false).
func (w *Writer) WriteNull(absent bool) error {
	tag := 0
	if absent {
		tag = 1
	}
	if err := w.check(schema.KindNullable, nil, &tag); err != nil {
		return err
	}
	if err := w.ensureWritable(1); err != nil {
		return err
	}
	w.buf[w.position] = byte(tag)
	w.position++
	return nil
}

// WriteRawBytes copies b directly into the buffer, untyped, suppressing
// validation for the push.
func (w *Writer) WriteRawBytes(b []byte) error {
	if err := w.check("", nil, nil); err != nil {
		return err
	}
	return w.writeRaw(b)
}
