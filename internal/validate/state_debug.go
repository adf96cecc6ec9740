//go:build rowbinary_debug

package validate

import (
	"fmt"

	"rowbinary/internal/xlog"
	"rowbinary/schema"
)

// fail logs the violation before returning it, so a debug build's log
// file captures what a caller's assertion or panic would otherwise show
// only in a stack trace.
func fail(path, msg string) error {
	xlog.ContractViolation(path, msg)
	return &ContractError{Path: path, Msg: msg}
}

// State tracks, for one reader or writer, the columns of the current
// schema and a stack of (path, type) frames describing the reads/writes
// still expected for the row in progress. The stack is refilled from
// columns in reverse order whenever it runs dry, i.e. at the start of
// each row.
type State struct {
	columns []schema.Column
	stack   []frame
}

// New builds a validator bound to the given column schema. A nil or
// empty columns slice (bare RowBinary, no header) disables validation.
func New(columns []schema.Column) *State {
	return &State{columns: columns}
}

func (s *State) refill() {
	s.stack = s.stack[:0]
	for i := len(s.columns) - 1; i >= 0; i-- {
		c := s.columns[i]
		s.stack = append(s.stack, frame{path: c.Name, typ: c.Type})
	}
}

// CurrentPath returns the column path of the value the next Check call
// expects, without consuming it. It returns "" when no schema is bound.
// At a row boundary it refills the stack and reports the first column of
// the next row.
func (s *State) CurrentPath() string {
	if len(s.columns) == 0 {
		return ""
	}
	if len(s.stack) == 0 {
		s.refill()
	}
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1].path
}

func (s *State) pop() (frame, bool) {
	if len(s.stack) == 0 {
		if len(s.columns) == 0 {
			return frame{}, false
		}
		s.refill()
	}
	if len(s.stack) == 0 {
		return frame{}, false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, true
}

// Check validates one typed primitive call. It pops the stack, flattens
// through Tuple boundaries (tuple fields are concatenated on the wire
// with no delimiter), checks the popped type against c.Kind (honoring the
// documented u32/IPv4 and i64/DateTime64/Time64 exceptions and the
// FixedString/String length-matching nuance), then pushes any children
// an Array or non-null Nullable obliges the caller to read/write next.
func (s *State) Check(c Call) error {
	if len(s.columns) == 0 {
		return nil
	}
	if c.Kind == "" {
		// read_raw_bytes: untyped, but still consumes a schema slot so
		// later columns stay aligned.
		if _, ok := s.pop(); !ok {
			return fail("<row>", "no columns remain but read_raw_bytes was called")
		}
		return nil
	}

	top, ok := s.pop()
	if !ok {
		return fail("<row>", fmt.Sprintf("no columns remain but %s was called", c.Kind))
	}

	expected := top.typ
	for expected.Name == schema.KindTuple {
		for i := len(expected.Nested) - 1; i >= 0; i-- {
			child := expected.Nested[i]
			s.stack = append(s.stack, frame{path: pathJoin(top.path, child.FieldName), typ: child})
		}
		top, ok = s.pop()
		if !ok {
			return fail(top.path, "tuple flattening exhausted the stack")
		}
		expected = top.typ
	}

	if err := checkKindAndLength(top.path, expected, c); err != nil {
		return err
	}

	switch expected.Name {
	case schema.KindArray:
		if c.VariableLength == nil {
			return fail(top.path, "Array read/write must report its length")
		}
		n := *c.VariableLength
		elem := expected.Nested[0]
		for i := n - 1; i >= 0; i-- {
			s.stack = append(s.stack, frame{path: fmt.Sprintf("%s[%d]", top.path, i), typ: elem})
		}
	case schema.KindNullable:
		if c.VariableLength == nil {
			return fail(top.path, "Nullable read/write must report its null tag")
		}
		if *c.VariableLength == 0 {
			s.stack = append(s.stack, frame{path: top.path, typ: expected.Nested[0]})
		}
	}

	return nil
}

func checkKindAndLength(path string, expected *schema.Type, c Call) error {
	if expected.Name == schema.KindFixedString {
		if c.Kind != schema.KindFixedString && c.Kind != schema.KindString {
			return fail(path, fmt.Sprintf("expected %s, got %s", expected.Name, c.Kind))
		}
		got := c.Precision
		if got == nil {
			got = c.VariableLength
		}
		if got != nil && expected.Precision != nil && *got != *expected.Precision {
			return fail(path, fmt.Sprintf("expected length %d, got %d", *expected.Precision, *got))
		}
		return nil
	}

	if !kindMatches(c.Kind, expected.Name) {
		return fail(path, fmt.Sprintf("expected %s, got %s", expected.Name, c.Kind))
	}

	if c.Precision != nil && (expected.Name == schema.KindDateTime64 || expected.Name == schema.KindTime64) {
		if expected.Precision != nil && *expected.Precision != *c.Precision {
			return fail(path, fmt.Sprintf("expected precision %d, got %d", *expected.Precision, *c.Precision))
		}
	}
	return nil
}
