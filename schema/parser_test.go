package schema

import "testing"

func TestParseSimpleKinds(t *testing.T) {
	cases := map[string]Kind{
		"UInt8":    KindUInt8,
		"Int64":    KindInt64,
		"Float32":  KindFloat32,
		"Bool":     KindBool,
		"String":   KindString,
		"Date":     KindDate,
		"DateTime": KindDateTime,
		"UUID":     KindUUID,
		"IPv4":     KindIPv4,
		"IPv6":     KindIPv6,
	}
	for input, want := range cases {
		typ, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)
			continue
		}
		if typ.Name != want {
			t.Errorf("Parse(%q): got kind %s, want %s", input, typ.Name, want)
		}
	}
}

func TestParseFixedString(t *testing.T) {
	typ, err := Parse("FixedString(16)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if typ.Name != KindFixedString || typ.Precision == nil || *typ.Precision != 16 {
		t.Fatalf("got %+v", typ)
	}
	if typ.String() != "FixedString(16)" {
		t.Errorf("String() round trip: got %q", typ.String())
	}
}

func TestParseDateTime64DefaultsPrecision(t *testing.T) {
	typ, err := Parse("DateTime64")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if typ.Precision != nil {
		t.Fatalf("expected nil Precision for bare DateTime64, got %v", *typ.Precision)
	}
	if typ.String() != "DateTime64(3)" {
		t.Errorf("String() default precision: got %q", typ.String())
	}
}

func TestParseDateTime64WithTrailingArguments(t *testing.T) {
	typ, err := Parse("DateTime64(6, 'UTC')")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if typ.Precision == nil || *typ.Precision != 6 {
		t.Fatalf("got %+v", typ)
	}
}

func TestParseTime64WithTrailingArguments(t *testing.T) {
	typ, err := Parse("Time64(9, 'some', 'extra', 'args')")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if typ.Name != KindTime64 || typ.Precision == nil || *typ.Precision != 9 {
		t.Fatalf("got %+v", typ)
	}
}

func TestParseNestedArrayNullableTuple(t *testing.T) {
	input := "Array(Nullable(Tuple(a UInt64, b Nullable(String))))"
	typ, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if typ.Name != KindArray {
		t.Fatalf("got top-level kind %s", typ.Name)
	}
	nullable := typ.Nested[0]
	if nullable.Name != KindNullable {
		t.Fatalf("got second-level kind %s", nullable.Name)
	}
	tuple := nullable.Nested[0]
	if tuple.Name != KindTuple || len(tuple.Nested) != 2 {
		t.Fatalf("got tuple %+v", tuple)
	}
	if tuple.Nested[0].FieldName != "a" || tuple.Nested[0].Name != KindUInt64 {
		t.Fatalf("got field a = %+v", tuple.Nested[0])
	}
	if tuple.Nested[1].FieldName != "b" || tuple.Nested[1].Name != KindNullable {
		t.Fatalf("got field b = %+v", tuple.Nested[1])
	}
	if got := typ.String(); got != input {
		t.Errorf("String() round trip: got %q, want %q", got, input)
	}
}

func TestParseParentPointers(t *testing.T) {
	typ, err := Parse("Array(UInt8)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	child := typ.Nested[0]
	if child.Parent != typ {
		t.Fatal("expected the Array's element to point back to the Array node")
	}
	if child.Root() != typ {
		t.Fatal("expected Root() to walk back up to the Array node")
	}
}

func TestEqual(t *testing.T) {
	a, err := Parse("Array(Nullable(UInt32))")
	if err != nil {
		t.Fatalf("Parse a: %v", err)
	}
	b, err := Parse("Array(Nullable(UInt32))")
	if err != nil {
		t.Fatalf("Parse b: %v", err)
	}
	if !Equal(a, b) {
		t.Error("expected two separately-parsed identical types to compare equal")
	}
	c, err := Parse("Array(Nullable(UInt64))")
	if err != nil {
		t.Fatalf("Parse c: %v", err)
	}
	if Equal(a, c) {
		t.Error("expected differing element types to compare unequal")
	}
}

func TestParseRejectsUnknownType(t *testing.T) {
	if _, err := Parse("NotAType"); err == nil {
		t.Fatal("expected an error for an unknown type name")
	}
}

func TestParseRejectsTrailingCharacters(t *testing.T) {
	if _, err := Parse("UInt8 garbage"); err == nil {
		t.Fatal("expected an error for trailing characters after a complete type")
	}
}

func TestParseRejectsUnterminatedNested(t *testing.T) {
	if _, err := Parse("Array(UInt8"); err == nil {
		t.Fatal("expected an error for a missing closing paren")
	}
}

func TestParseRejectsAnonymousTupleField(t *testing.T) {
	if _, err := Parse("Tuple(UInt8)"); err == nil {
		t.Fatal("expected an error for a tuple field with no name")
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected an error for an empty type string")
	}
}

func TestParseRejectsBadFixedStringArgument(t *testing.T) {
	if _, err := Parse("FixedString(abc)"); err == nil {
		t.Fatal("expected an error for a non-numeric FixedString width")
	}
}

func TestScalarSingletonReused(t *testing.T) {
	a, err := Parse("UInt8")
	if err != nil {
		t.Fatalf("Parse a: %v", err)
	}
	b, err := Parse("UInt8")
	if err != nil {
		t.Fatalf("Parse b: %v", err)
	}
	if a != b {
		t.Error("expected top-level scalar parses to share the singleton node")
	}
}
