// Package schema parses the database's textual type grammar into a typed
// tree and describes the column headers of a RowBinaryWithNamesAndTypes
// stream.
package schema

import "fmt"

// Kind identifies one of the 25 wire types this codec understands.
type Kind string

const (
	KindUInt8       Kind = "UInt8"
	KindInt8        Kind = "Int8"
	KindUInt16      Kind = "UInt16"
	KindInt16       Kind = "Int16"
	KindUInt32      Kind = "UInt32"
	KindInt32       Kind = "Int32"
	KindUInt64      Kind = "UInt64"
	KindInt64       Kind = "Int64"
	KindFloat32     Kind = "Float32"
	KindFloat64     Kind = "Float64"
	KindBool        Kind = "Bool"
	KindString      Kind = "String"
	KindFixedString Kind = "FixedString"
	KindDate        Kind = "Date"
	KindDate32      Kind = "Date32"
	KindDateTime    Kind = "DateTime"
	KindDateTime64  Kind = "DateTime64"
	KindTime        Kind = "Time"
	KindTime64      Kind = "Time64"
	KindUUID        Kind = "UUID"
	KindIPv4        Kind = "IPv4"
	KindIPv6        Kind = "IPv6"
	KindArray       Kind = "Array"
	KindNullable    Kind = "Nullable"
	KindTuple       Kind = "Tuple"
)

// DefaultTemporalPrecision is the precision DateTime64/Time64 assume when
// their parenthesized form is omitted.
const DefaultTemporalPrecision = 3

// Type is a node in the parsed type tree. Trees are acyclic; Parent is nil
// for the root of a parse and is never mutated after construction.
type Type struct {
	Name      Kind
	Nested    []*Type
	Precision *int
	FieldName string
	Parent    *Type
}

// Root walks Parent pointers up to the top-level type.
func (t *Type) Root() *Type {
	cur := t
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// String pretty-prints the type the way the parser's grammar accepts it
// back.
func (t *Type) String() string {
	switch t.Name {
	case KindFixedString:
		return fmt.Sprintf("FixedString(%d)", precisionOf(t))
	case KindDateTime64:
		return fmt.Sprintf("DateTime64(%d)", precisionOf(t))
	case KindTime64:
		return fmt.Sprintf("Time64(%d)", precisionOf(t))
	case KindNullable:
		return fmt.Sprintf("Nullable(%s)", t.Nested[0].String())
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Nested[0].String())
	case KindTuple:
		s := "Tuple("
		for i, f := range t.Nested {
			if i > 0 {
				s += ", "
			}
			s += f.FieldName + " " + f.String()
		}
		return s + ")"
	default:
		return string(t.Name)
	}
}

func precisionOf(t *Type) int {
	if t.Precision == nil {
		return DefaultTemporalPrecision
	}
	return *t.Precision
}

// Equal reports structural equality: same kind, same precision, same
// field name (where meaningful), same nested children in order. Parent
// back-pointers are never compared.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.FieldName != b.FieldName {
		return false
	}
	if (a.Precision == nil) != (b.Precision == nil) {
		return false
	}
	if a.Precision != nil && *a.Precision != *b.Precision {
		return false
	}
	if len(a.Nested) != len(b.Nested) {
		return false
	}
	for i := range a.Nested {
		if !Equal(a.Nested[i], b.Nested[i]) {
			return false
		}
	}
	return true
}

// scalarSingletons holds the pre-built, allocation-free nodes for the
// nineteen parameterless kinds.
var scalarSingletons = map[Kind]*Type{}

func init() {
	for _, k := range []Kind{
		KindUInt8, KindInt8, KindUInt16, KindInt16, KindUInt32, KindInt32,
		KindUInt64, KindInt64, KindFloat32, KindFloat64, KindBool,
		KindString, KindDate, KindDate32, KindDateTime, KindTime,
		KindUUID, KindIPv4, KindIPv6,
	} {
		scalarSingletons[k] = &Type{Name: k}
	}
}

// Column pairs a name with its parsed type, produced by the
// RowBinaryWithNamesAndTypes header.
type Column struct {
	Name string
	Type *Type
}
