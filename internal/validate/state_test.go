//go:build rowbinary_debug

package validate

import (
	"testing"

	"rowbinary/schema"
)

func mustParseType(t *testing.T, s string) *schema.Type {
	t.Helper()
	typ, err := schema.Parse(s)
	if err != nil {
		t.Fatalf("schema.Parse(%q): %v", s, err)
	}
	return typ
}

func TestCheckAcceptsMatchingSequence(t *testing.T) {
	columns := []schema.Column{
		{Name: "id", Type: mustParseType(t, "UInt64")},
		{Name: "name", Type: mustParseType(t, "String")},
	}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindUInt64}); err != nil {
		t.Fatalf("id: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindString, VariableLength: intPtr(4)}); err != nil {
		t.Fatalf("name: %v", err)
	}
}

func TestCheckRejectsWrongKind(t *testing.T) {
	columns := []schema.Column{{Name: "id", Type: mustParseType(t, "UInt64")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindString, VariableLength: intPtr(0)}); err == nil {
		t.Fatal("expected a ContractError for a kind mismatch")
	}
}

func TestCheckRejectsWrongKindOnRefilledRow(t *testing.T) {
	columns := []schema.Column{{Name: "id", Type: mustParseType(t, "UInt64")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindUInt64}); err != nil {
		t.Fatalf("row 1: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindString, VariableLength: intPtr(0)}); err == nil {
		t.Fatal("expected a ContractError for a kind mismatch on the refilled next row")
	}
}

func TestCheckRefillsOnEachRow(t *testing.T) {
	columns := []schema.Column{{Name: "id", Type: mustParseType(t, "UInt64")}}
	s := New(columns)
	for i := 0; i < 3; i++ {
		if err := s.Check(Call{Kind: schema.KindUInt64}); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
	}
}

func TestCheckAllowsU32ForIPv4(t *testing.T) {
	columns := []schema.Column{{Name: "ip", Type: mustParseType(t, "IPv4")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindUInt32}); err != nil {
		t.Fatalf("expected UInt32 to stand in for IPv4, got %v", err)
	}
}

func TestCheckAllowsI64ForDateTime64(t *testing.T) {
	columns := []schema.Column{{Name: "ts", Type: mustParseType(t, "DateTime64(3)")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindInt64, Precision: intPtr(3)}); err != nil {
		t.Fatalf("expected Int64 to stand in for DateTime64, got %v", err)
	}
}

func TestCheckRejectsMismatchedDateTime64Precision(t *testing.T) {
	columns := []schema.Column{{Name: "ts", Type: mustParseType(t, "DateTime64(3)")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindInt64, Precision: intPtr(6)}); err == nil {
		t.Fatal("expected a ContractError for a DateTime64 precision mismatch")
	}
}

func TestCheckRejectsMismatchedFixedStringLength(t *testing.T) {
	columns := []schema.Column{{Name: "code", Type: mustParseType(t, "FixedString(4)")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindFixedString, Precision: intPtr(8)}); err == nil {
		t.Fatal("expected a ContractError for a FixedString length mismatch")
	}
}

func TestCheckFlattensTuples(t *testing.T) {
	columns := []schema.Column{{Name: "t", Type: mustParseType(t, "Tuple(a UInt8, b String)")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindUInt8}); err != nil {
		t.Fatalf("tuple field a: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindString, VariableLength: intPtr(0)}); err != nil {
		t.Fatalf("tuple field b: %v", err)
	}
}

func TestCheckTracksArrayElements(t *testing.T) {
	columns := []schema.Column{{Name: "xs", Type: mustParseType(t, "Array(UInt8)")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindArray, VariableLength: intPtr(2)}); err != nil {
		t.Fatalf("array length: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindUInt8}); err != nil {
		t.Fatalf("element 0: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindUInt8}); err != nil {
		t.Fatalf("element 1: %v", err)
	}
}

func TestCheckTracksNullablePresentValue(t *testing.T) {
	columns := []schema.Column{{Name: "n", Type: mustParseType(t, "Nullable(UInt32)")}}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindNullable, VariableLength: intPtr(0)}); err != nil {
		t.Fatalf("null tag: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindUInt32}); err != nil {
		t.Fatalf("present value: %v", err)
	}
}

func TestCheckSkipsValueAfterNullableAbsent(t *testing.T) {
	columns := []schema.Column{
		{Name: "n", Type: mustParseType(t, "Nullable(UInt32)")},
		{Name: "next", Type: mustParseType(t, "UInt8")},
	}
	s := New(columns)
	if err := s.Check(Call{Kind: schema.KindNullable, VariableLength: intPtr(1)}); err != nil {
		t.Fatalf("null tag: %v", err)
	}
	if err := s.Check(Call{Kind: schema.KindUInt8}); err != nil {
		t.Fatalf("next column: %v", err)
	}
}

func intPtr(n int) *int { return &n }
