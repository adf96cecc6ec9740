package rowbinary

import (
	"fmt"

	"rowbinary/internal/validate"
	"rowbinary/schema"
)

// TypeParseError is returned when a type string is malformed or names an
// unsupported kind.
type TypeParseError = schema.ParseError

// ContractError is raised by the debug-only shape validator when a typed
// call disagrees with the column schema.
// In release builds (without the rowbinary_debug build tag) it is never
// constructed.
type ContractError = validate.ContractError

// EndOfStreamError reports that the underlying stream ended before a
// primitive's required bytes were available.
type EndOfStreamError struct {
	Required int
	Obtained int
	Column   string
}

func (e *EndOfStreamError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("rowbinary: end of stream while decoding column %q: needed %d bytes, got %d", e.Column, e.Required, e.Obtained)
	}
	return fmt.Sprintf("rowbinary: end of stream: needed %d bytes, got %d", e.Required, e.Obtained)
}

// UnsupportedPrecisionError reports a DateTime64/Time64 precision outside
// the supported 0-9 range.
type UnsupportedPrecisionError struct {
	Precision int
}

func (e *UnsupportedPrecisionError) Error() string {
	return fmt.Sprintf("rowbinary: unsupported precision %d (must be 0-9)", e.Precision)
}

// InvalidArgumentError reports a construction-time or call-time argument
// problem: a nil stream, a negative BufferSize or empty caller-supplied
// Buffer, an address-family mismatch in IPv4FromNetIP/IPv6FromNetIP, an
// out-of-range value passed to a writer primitive, or a malformed byte
// on the wire.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return "rowbinary: invalid argument: " + e.Msg
}
