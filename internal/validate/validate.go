// Package validate implements the debug-only shape validator:
// an observer that tracks the expected type of the next typed read/write
// call and raises a ContractError the moment a caller drifts from the
// column schema. It is compiled in one of two shapes selected by the
// rowbinary_debug build tag; see state_debug.go and state_release.go.
// Neither file imports the codec package, avoiding an import cycle with
// the root rowbinary package that calls into this one.
package validate

import (
	"fmt"

	"rowbinary/schema"
)

// ContractError describes a validator mismatch, including the dotted
// column path to the offending value.
type ContractError struct {
	Path string
	Msg  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("rowbinary: contract violation at %s: %s", e.Path, e.Msg)
}

// Call describes one typed primitive invocation for the validator to
// check against the expected column shape.
type Call struct {
	// Kind is the primitive's wire kind. A zero value suppresses the
	// type check (read_raw_bytes has no type); the expected slot is still
	// consumed.
	Kind schema.Kind
	// Precision carries a FixedString/DateTime64/Time64 specifier to
	// compare against the expected type, when the primitive has one.
	Precision *int
	// VariableLength carries the observed array length, nullable tag, or
	// string byte length.
	VariableLength *int
}

// frame is one entry on the expected-shape stack: the column path
// component plus the type expected at that position.
type frame struct {
	path string
	typ  *schema.Type
}

func pathJoin(parent string, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// kindMatches implements the documented exceptions: u32 may stand in for
// IPv4, and i64 may stand in for DateTime64 or Time64.
func kindMatches(called, expected schema.Kind) bool {
	if called == expected {
		return true
	}
	switch expected {
	case schema.KindIPv4:
		return called == schema.KindUInt32
	case schema.KindDateTime64, schema.KindTime64:
		return called == schema.KindInt64
	}
	return false
}
