package arith

import (
	"fmt"

	"github.com/jmgilman/go/errors"
)

const (
	// CodeInvalidArgument marks a violated precondition: a zero divisor, a
	// negative radius, an index out of range, a wrong argument count.
	CodeInvalidArgument = errors.CodeInvalidInput

	// CodeParseFailure marks textual input that could not be read as a number.
	CodeParseFailure errors.ErrorCode = "PARSE_FAILURE"
)

// InvalidArgument reports a violated precondition.
func InvalidArgument(message string) error {
	return errors.New(CodeInvalidArgument, message)
}

// InvalidArgumentf is InvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) error {
	return errors.Newf(CodeInvalidArgument, format, args...)
}

// ParseFailure reports malformed input, keeping the underlying cause and the
// offending text.
func ParseFailure(input string, cause error) error {
	msg := fmt.Sprintf("cannot parse %q", input)
	if cause == nil {
		return errors.WithContext(errors.New(CodeParseFailure, msg), "input", input)
	}
	return errors.WithContext(errors.Wrap(cause, CodeParseFailure, msg), "input", input)
}

// IsInvalidArgument reports whether err, or anything it wraps, is an
// InvalidArgument error.
func IsInvalidArgument(err error) bool {
	return errors.GetCode(err) == CodeInvalidArgument
}

// IsParseFailure reports whether err, or anything it wraps, is a ParseFailure.
func IsParseFailure(err error) bool {
	return errors.GetCode(err) == CodeParseFailure
}

// Message returns the human-readable part of err without the code prefix.
func Message(err error) string {
	var pe errors.PlatformError
	if errors.As(err, &pe) {
		return pe.Message()
	}
	return err.Error()
}
