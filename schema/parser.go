package schema

import (
	"fmt"
	"strconv"
)

// ParseError reports a malformed or unsupported type string.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema: parse error at byte %d of %q: %s", e.Pos, e.Input, e.Msg)
}

var simpleNames = map[string]Kind{
	"UInt8": KindUInt8, "Int8": KindInt8,
	"UInt16": KindUInt16, "Int16": KindInt16,
	"UInt32": KindUInt32, "Int32": KindInt32,
	"UInt64": KindUInt64, "Int64": KindInt64,
	"Float32": KindFloat32, "Float64": KindFloat64,
	"Bool": KindBool, "String": KindString,
	"Date": KindDate, "Date32": KindDate32,
	"DateTime": KindDateTime, "Time": KindTime,
	"UUID": KindUUID, "IPv4": KindIPv4, "IPv6": KindIPv6,
}

// Parse parses a single type string (e.g. "Array(Tuple(a Nullable(String),
// b UInt64))"). The entire input must be consumed.
func Parse(s string) (*Type, error) {
	p := &parser{s: s}
	t, err := p.parseType(nil)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errorf("trailing characters after type")
	}
	return t, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: p.s, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func isIdentTerminator(c byte) bool {
	return c == '(' || c == ')' || c == ',' || c == ' '
}

// readIdent reads an identifier terminated by '(', ')', ',' or space.
func (p *parser) readIdent() (string, error) {
	start := p.pos
	for p.pos < len(p.s) && !isIdentTerminator(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.s[start:p.pos], nil
}

func (p *parser) expect(c byte) error {
	if p.pos >= len(p.s) || p.s[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *parser) readInt() (int, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected integer")
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0, p.errorf("invalid integer: %v", err)
	}
	return n, nil
}

// skipToMatchingParen consumes up to and including the ')' matching the
// '(' already consumed by the caller, tolerating arbitrary trailing
// arguments (e.g. DateTime64(5, 'UTC')).
func (p *parser) skipToMatchingParen() error {
	depth := 1
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return p.errorf("unterminated argument list")
}

// parseType parses one type node, with parent as its eventual back-pointer.
func (p *parser) parseType(parent *Type) (*Type, error) {
	p.skipSpace()
	ident, err := p.readIdent()
	if err != nil {
		return nil, err
	}

	switch ident {
	case "FixedString":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		n, err := p.readInt()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return &Type{Name: KindFixedString, Precision: &n, Parent: parent}, nil

	case "DateTime64", "Time64":
		kind := KindDateTime64
		if ident == "Time64" {
			kind = KindTime64
		}
		t := &Type{Name: kind, Parent: parent}
		if p.pos < len(p.s) && p.s[p.pos] == '(' {
			p.pos++
			n, err := p.readInt()
			if err != nil {
				return nil, err
			}
			t.Precision = &n
			p.skipSpace()
			if p.pos < len(p.s) && p.s[p.pos] == ',' {
				// trailing arguments (timezone, etc.) tolerated and ignored
				if err := p.skipToMatchingParen(); err != nil {
					return nil, err
				}
			} else if err := p.expect(')'); err != nil {
				return nil, err
			}
		}
		return t, nil

	case "Nullable":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		t := &Type{Name: KindNullable, Parent: parent}
		child, err := p.parseType(t)
		if err != nil {
			return nil, err
		}
		t.Nested = []*Type{child}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return t, nil

	case "Array":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		t := &Type{Name: KindArray, Parent: parent}
		child, err := p.parseType(t)
		if err != nil {
			return nil, err
		}
		t.Nested = []*Type{child}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return t, nil

	case "Tuple":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		t := &Type{Name: KindTuple, Parent: parent}
		for {
			field, err := p.parseField(t)
			if err != nil {
				return nil, err
			}
			t.Nested = append(t.Nested, field)
			p.skipSpace()
			if p.pos < len(p.s) && p.s[p.pos] == ',' {
				p.pos++
				continue
			}
			break
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return t, nil

	default:
		kind, ok := simpleNames[ident]
		if !ok {
			return nil, p.errorf("unknown type %q", ident)
		}
		if parent == nil {
			return scalarSingletons[kind], nil
		}
		singleton := scalarSingletons[kind]
		return &Type{Name: singleton.Name, Parent: parent}, nil
	}
}

// parseField parses "ws name ws type" inside a Tuple argument list. An
// anonymous field (no name before the type) is a parse error.
func (p *parser) parseField(parent *Type) (*Type, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ' ' && !isIdentTerminator(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errorf("expected tuple field name")
	}
	name := p.s[start:p.pos]
	if p.pos >= len(p.s) || p.s[p.pos] != ' ' {
		return nil, p.errorf("tuple field %q must be followed by a type", name)
	}
	p.skipSpace()
	// parseType with a non-nil parent always allocates a fresh node (see
	// the default case in parseType), so mutating FieldName here never touches a
	// shared scalar singleton.
	t, err := p.parseType(parent)
	if err != nil {
		return nil, err
	}
	t.FieldName = name
	return t, nil
}
