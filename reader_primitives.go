package rowbinary

import (
	"encoding/binary"
	"fmt"
	"math"

	"rowbinary/schema"
)

// Each primitive below follows the same four-step discipline: (a)
// consult the shape validator, (b) ensure the required bytes are
// buffered (blocking refill if not), (c) decode, (d) advance position.
// Where the validator needs a decoded value (array length, null tag,
// observed string length) the decode happens first and the check second,
// since the value isn't known before decoding. check() records the
// column path the validator expects next into r.currentColumn before
// doing anything else, so ensure() can attribute a blocking refill that
// runs out of stream to the right column.

func (r *Reader) ReadUInt8() (uint8, error) {
	if err := r.check(schema.KindUInt8, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(1, r.currentColumn); err != nil {
		return 0, err
	}
	v := r.buf[r.position]
	r.position++
	return v, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	if err := r.check(schema.KindInt8, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(1, r.currentColumn); err != nil {
		return 0, err
	}
	v := int8(r.buf[r.position])
	r.position++
	return v, nil
}

func (r *Reader) ReadUInt16() (uint16, error) {
	if err := r.check(schema.KindUInt16, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(2, r.currentColumn); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.position:])
	r.position += 2
	return v, nil
}

func (r *Reader) ReadInt16() (int16, error) {
	if err := r.check(schema.KindInt16, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(2, r.currentColumn); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(r.buf[r.position:]))
	r.position += 2
	return v, nil
}

func (r *Reader) ReadUInt32() (uint32, error) {
	if err := r.check(schema.KindUInt32, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.position:])
	r.position += 4
	return v, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	if err := r.check(schema.KindInt32, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.position:]))
	r.position += 4
	return v, nil
}

func (r *Reader) ReadUInt64() (uint64, error) {
	if err := r.check(schema.KindUInt64, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(8, r.currentColumn); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.position:])
	r.position += 8
	return v, nil
}

func (r *Reader) ReadInt64() (int64, error) {
	if err := r.check(schema.KindInt64, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(8, r.currentColumn); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(r.buf[r.position:]))
	r.position += 8
	return v, nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.check(schema.KindFloat32, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.buf[r.position:]))
	r.position += 4
	return v, nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.check(schema.KindFloat64, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(8, r.currentColumn); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.position:]))
	r.position += 8
	return v, nil
}

// ReadBool decodes a single byte, failing on anything other than 0 or 1
// rather than tolerating arbitrary non-zero bytes.
func (r *Reader) ReadBool() (bool, error) {
	if err := r.check(schema.KindBool, nil, nil); err != nil {
		return false, err
	}
	if err := r.ensure(1, r.currentColumn); err != nil {
		return false, err
	}
	b := r.buf[r.position]
	r.position++
	if b != 0 && b != 1 {
		return false, &InvalidArgumentError{Msg: fmt.Sprintf("invalid Bool byte 0x%02x", b)}
	}
	return b == 1, nil
}

// ReadString decodes a varint-prefixed UTF-8 string. Go strings are
// themselves just byte sequences, so no transcoding step is needed for
// the default UTF-8 encoding. The column path is peeked before the
// length prefix is read, so a truncated length or a truncated body both
// attribute their EndOfStreamError to the same column.
func (r *Reader) ReadString() (string, error) {
	r.currentColumn = r.validator.CurrentPath()
	n, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	length := int(n)
	if err := r.check(schema.KindString, nil, &length); err != nil {
		return "", err
	}
	if err := r.ensure(length, r.currentColumn); err != nil {
		return "", err
	}
	s := string(r.buf[r.position : r.position+length])
	r.position += length
	return s, nil
}

// ReadFixedString decodes n bytes as ASCII.
func (r *Reader) ReadFixedString(n int) (string, error) {
	if err := r.check(schema.KindFixedString, intPtr(n), nil); err != nil {
		return "", err
	}
	if err := r.ensure(n, r.currentColumn); err != nil {
		return "", err
	}
	s := string(r.buf[r.position : r.position+n])
	r.position += n
	return s, nil
}

func (r *Reader) ReadDate() (Days, error) {
	if err := r.check(schema.KindDate, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(2, r.currentColumn); err != nil {
		return 0, err
	}
	v := Days(binary.LittleEndian.Uint16(r.buf[r.position:]))
	r.position += 2
	return v, nil
}

func (r *Reader) ReadDate32() (Days, error) {
	if err := r.check(schema.KindDate32, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return 0, err
	}
	v := Days(int32(binary.LittleEndian.Uint32(r.buf[r.position:])))
	r.position += 4
	return v, nil
}

func (r *Reader) ReadDateTime() (UnixSeconds, error) {
	if err := r.check(schema.KindDateTime, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return 0, err
	}
	v := UnixSeconds(binary.LittleEndian.Uint32(r.buf[r.position:]))
	r.position += 4
	return v, nil
}

// ReadDateTime64 decodes an i64 at the given precision into Ticks (100ns
// units since epoch), applying the reader-side precision multiplier.
// Precisions 8 and 9 lose sub-100ns resolution (documented, intentional).
func (r *Reader) ReadDateTime64(precision int) (Ticks, error) {
	num, den, err := precisionFactor(precision)
	if err != nil {
		return 0, err
	}
	if err := r.check(schema.KindDateTime64, intPtr(precision), nil); err != nil {
		return 0, err
	}
	if err := r.ensure(8, r.currentColumn); err != nil {
		return 0, err
	}
	raw := int64(binary.LittleEndian.Uint64(r.buf[r.position:]))
	r.position += 8
	return Ticks(raw*num) / Ticks(den), nil
}

func (r *Reader) ReadTime() (Seconds, error) {
	if err := r.check(schema.KindTime, nil, nil); err != nil {
		return 0, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return 0, err
	}
	v := Seconds(int32(binary.LittleEndian.Uint32(r.buf[r.position:])))
	r.position += 4
	return v, nil
}

func (r *Reader) ReadTime64(precision int) (Ticks, error) {
	num, den, err := precisionFactor(precision)
	if err != nil {
		return 0, err
	}
	if err := r.check(schema.KindTime64, intPtr(precision), nil); err != nil {
		return 0, err
	}
	if err := r.ensure(8, r.currentColumn); err != nil {
		return 0, err
	}
	raw := int64(binary.LittleEndian.Uint64(r.buf[r.position:]))
	r.position += 8
	return Ticks(raw*num) / Ticks(den), nil
}

func (r *Reader) ReadUUID() (UUID, error) {
	if err := r.check(schema.KindUUID, nil, nil); err != nil {
		return UUID{}, err
	}
	if err := r.ensure(16, r.currentColumn); err != nil {
		return UUID{}, err
	}
	u := uuidFromWire(r.buf[r.position : r.position+16])
	r.position += 16
	return u, nil
}

func (r *Reader) ReadIPv4() (IPv4, error) {
	if err := r.check(schema.KindIPv4, nil, nil); err != nil {
		return IPv4{}, err
	}
	if err := r.ensure(4, r.currentColumn); err != nil {
		return IPv4{}, err
	}
	w := r.buf[r.position : r.position+4]
	ip := IPv4{w[3], w[2], w[1], w[0]}
	r.position += 4
	return ip, nil
}

func (r *Reader) ReadIPv6() (IPv6, error) {
	if err := r.check(schema.KindIPv6, nil, nil); err != nil {
		return IPv6{}, err
	}
	if err := r.ensure(16, r.currentColumn); err != nil {
		return IPv6{}, err
	}
	var ip IPv6
	copy(ip[:], r.buf[r.position:r.position+16])
	r.position += 16
	return ip, nil
}

// ReadArrayLength decodes the varint length of the sequence that
// immediately follows. The column path is peeked before the length
// prefix is read so a truncated length attributes to the array column.
func (r *Reader) ReadArrayLength() (int, error) {
	r.currentColumn = r.validator.CurrentPath()
	n, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	length := int(n)
	if err := r.check(schema.KindArray, nil, &length); err != nil {
		return 0, err
	}
	return length, nil
}

// IsNull decodes the one-byte null tag preceding a Nullable value: true
// means the value is absent. The column path is peeked before the tag
// byte is read, since the validator needs the tag's value to know
// whether to push a child frame but the path itself doesn't depend on it.
func (r *Reader) IsNull() (bool, error) {
	r.currentColumn = r.validator.CurrentPath()
	if err := r.ensure(1, r.currentColumn); err != nil {
		return false, err
	}
	b := r.buf[r.position]
	r.position++
	if b != 0 && b != 1 {
		return false, &InvalidArgumentError{Msg: fmt.Sprintf("invalid null tag 0x%02x", b)}
	}
	tag := int(b)
	if err := r.check(schema.KindNullable, nil, &tag); err != nil {
		return false, err
	}
	return b == 1, nil
}

// ReadRawBytes returns a borrowed view into the buffer valid only until
// the next primitive call. It carries no type and suppresses validation
// for the pop.
func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	if err := r.check("", nil, nil); err != nil {
		return nil, err
	}
	if err := r.ensure(n, r.currentColumn); err != nil {
		return nil, err
	}
	b := r.buf[r.position : r.position+n]
	r.position += n
	return b, nil
}
