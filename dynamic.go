package rowbinary

import (
	"fmt"

	"rowbinary/schema"
)

// ReadValue and WriteValue give the CLI a generic, schema-driven value
// representation layered on top of the typed primitives. The codec core
// never calls these; only cmd/rowbinary's dump/gen/load subcommands do.

func precisionOrDefault(t *schema.Type) int {
	if t.Precision == nil {
		return schema.DefaultTemporalPrecision
	}
	return *t.Precision
}

// ReadValue decodes one value of type t, recursing through
// Array/Nullable/Tuple, and returns JSON-friendly Go values: strings for
// String/FixedString/UUID/IPv4/IPv6, int64/uint64/float64/bool for
// scalars, []interface{} for Array, map[string]interface{} for Tuple, nil
// for an absent Nullable.
func ReadValue(r *Reader, t *schema.Type) (interface{}, error) {
	switch t.Name {
	case schema.KindUInt8:
		v, err := r.ReadUInt8()
		return uint64(v), err
	case schema.KindInt8:
		v, err := r.ReadInt8()
		return int64(v), err
	case schema.KindUInt16:
		v, err := r.ReadUInt16()
		return uint64(v), err
	case schema.KindInt16:
		v, err := r.ReadInt16()
		return int64(v), err
	case schema.KindUInt32:
		v, err := r.ReadUInt32()
		return uint64(v), err
	case schema.KindInt32:
		v, err := r.ReadInt32()
		return int64(v), err
	case schema.KindUInt64:
		v, err := r.ReadUInt64()
		return v, err
	case schema.KindInt64:
		v, err := r.ReadInt64()
		return v, err
	case schema.KindFloat32:
		v, err := r.ReadFloat32()
		return float64(v), err
	case schema.KindFloat64:
		return r.ReadFloat64()
	case schema.KindBool:
		return r.ReadBool()
	case schema.KindString:
		return r.ReadString()
	case schema.KindFixedString:
		return r.ReadFixedString(precisionOrDefault(t))
	case schema.KindDate:
		v, err := r.ReadDate()
		return int64(v), err
	case schema.KindDate32:
		v, err := r.ReadDate32()
		return int64(v), err
	case schema.KindDateTime:
		v, err := r.ReadDateTime()
		return uint64(v), err
	case schema.KindDateTime64:
		v, err := r.ReadDateTime64(precisionOrDefault(t))
		return int64(v), err
	case schema.KindTime:
		v, err := r.ReadTime()
		return int64(v), err
	case schema.KindTime64:
		v, err := r.ReadTime64(precisionOrDefault(t))
		return int64(v), err
	case schema.KindUUID:
		v, err := r.ReadUUID()
		if err != nil {
			return nil, err
		}
		return v.String(), nil
	case schema.KindIPv4:
		v, err := r.ReadIPv4()
		if err != nil {
			return nil, err
		}
		return v.String(), nil
	case schema.KindIPv6:
		v, err := r.ReadIPv6()
		if err != nil {
			return nil, err
		}
		return v.String(), nil
	case schema.KindArray:
		n, err := r.ReadArrayLength()
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, n)
		for i := 0; i < n; i++ {
			v, err := ReadValue(r, t.Nested[0])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case schema.KindNullable:
		isNull, err := r.IsNull()
		if err != nil {
			return nil, err
		}
		if isNull {
			return nil, nil
		}
		return ReadValue(r, t.Nested[0])
	case schema.KindTuple:
		out := make(map[string]interface{}, len(t.Nested))
		for _, field := range t.Nested {
			v, err := ReadValue(r, field)
			if err != nil {
				return nil, err
			}
			out[field.FieldName] = v
		}
		return out, nil
	default:
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("unsupported type %q", t.Name)}
	}
}

// WriteValue encodes v, coercing it to the shape t requires. v is
// typically a hand-built Go value (the gen subcommand). Numbers may be
// int, int64, uint64 or float64, as JSON decoding yields. UUID, IPv4 and
// IPv6 values must be rowbinary.UUID, IPv4 or IPv6; the strings ReadValue
// returns for those kinds are rejected.
func WriteValue(w *Writer, t *schema.Type, v interface{}) error {
	switch t.Name {
	case schema.KindUInt8:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		return w.WriteUInt8(uint8(n))
	case schema.KindInt8:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteInt8(int8(n))
	case schema.KindUInt16:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		return w.WriteUInt16(uint16(n))
	case schema.KindInt16:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteInt16(int16(n))
	case schema.KindUInt32:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		return w.WriteUInt32(uint32(n))
	case schema.KindInt32:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteInt32(int32(n))
	case schema.KindUInt64:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		return w.WriteUInt64(n)
	case schema.KindInt64:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteInt64(n)
	case schema.KindFloat32:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		return w.WriteFloat32(float32(f))
	case schema.KindFloat64:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		return w.WriteFloat64(f)
	case schema.KindBool:
		b, err := toBool(v)
		if err != nil {
			return err
		}
		return w.WriteBool(b)
	case schema.KindString:
		s, err := toString(v)
		if err != nil {
			return err
		}
		return w.WriteString(s)
	case schema.KindFixedString:
		s, err := toString(v)
		if err != nil {
			return err
		}
		return w.WriteFixedString(s, precisionOrDefault(t))
	case schema.KindDate:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteDate(Days(n))
	case schema.KindDate32:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteDate32(Days(n))
	case schema.KindDateTime:
		n, err := toUint64(v)
		if err != nil {
			return err
		}
		return w.WriteDateTime(UnixSeconds(n))
	case schema.KindDateTime64:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteDateTime64(Ticks(n), precisionOrDefault(t))
	case schema.KindTime:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteTime(Seconds(n))
	case schema.KindTime64:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		return w.WriteTime64(Ticks(n), precisionOrDefault(t))
	case schema.KindUUID:
		u, ok := v.(UUID)
		if !ok {
			return &InvalidArgumentError{Msg: "UUID value must be a rowbinary.UUID"}
		}
		return w.WriteUUID(u)
	case schema.KindIPv4:
		ip, ok := v.(IPv4)
		if !ok {
			return &InvalidArgumentError{Msg: "IPv4 value must be a rowbinary.IPv4"}
		}
		return w.WriteIPv4(ip)
	case schema.KindIPv6:
		ip, ok := v.(IPv6)
		if !ok {
			return &InvalidArgumentError{Msg: "IPv6 value must be a rowbinary.IPv6"}
		}
		return w.WriteIPv6(ip)
	case schema.KindArray:
		items, ok := v.([]interface{})
		if !ok {
			return &InvalidArgumentError{Msg: "Array value must be a []interface{}"}
		}
		if err := w.WriteArrayLength(len(items)); err != nil {
			return err
		}
		for _, item := range items {
			if err := WriteValue(w, t.Nested[0], item); err != nil {
				return err
			}
		}
		return nil
	case schema.KindNullable:
		if v == nil {
			return w.WriteNull(true)
		}
		if err := w.WriteNull(false); err != nil {
			return err
		}
		return WriteValue(w, t.Nested[0], v)
	case schema.KindTuple:
		fields, ok := v.(map[string]interface{})
		if !ok {
			return &InvalidArgumentError{Msg: "Tuple value must be a map[string]interface{}"}
		}
		for _, field := range t.Nested {
			if err := WriteValue(w, field, fields[field.FieldName]); err != nil {
				return err
			}
		}
		return nil
	default:
		return &InvalidArgumentError{Msg: fmt.Sprintf("unsupported type %q", t.Name)}
	}
}

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int64:
		return uint64(n), nil
	case int:
		return uint64(n), nil
	case float64:
		return uint64(n), nil
	}
	return 0, &InvalidArgumentError{Msg: fmt.Sprintf("cannot convert %T to an unsigned integer", v)}
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	}
	return 0, &InvalidArgumentError{Msg: fmt.Sprintf("cannot convert %T to a signed integer", v)}
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case int:
		return float64(n), nil
	}
	return 0, &InvalidArgumentError{Msg: fmt.Sprintf("cannot convert %T to a float", v)}
}

func toString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &InvalidArgumentError{Msg: fmt.Sprintf("cannot convert %T to a string", v)}
	}
	return s, nil
}

func toBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &InvalidArgumentError{Msg: fmt.Sprintf("cannot convert %T to a bool", v)}
	}
	return b, nil
}
