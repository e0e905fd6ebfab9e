// Package arith implements validated arithmetic: every operation checks a
// precondition on its inputs and fails with an InvalidArgument error instead
// of returning a sentinel value. Malformed textual input fails with
// ParseFailure.
//
// # Operations
//
//	SafePercent(part, whole)  (part*100)/whole, whole != 0
//	Difference(a, b)          a - b, a >= b
//	Quotient(a, b)            a / b, b != 0
//	SquareRoot(x)             sqrt(x), x >= 0
//	CircleArea(radius)        pi*r*r, radius >= 0
//	CharAt(s, index)          rune at index, 0 <= index < len
//
// Each returns (value, error). The matching ...Result form returns a
// rop.Result for use in pipelines. Boundaries that satisfy the precondition
// succeed: Difference(5, 5) is 0.
//
// # Errors
//
// Errors carry a code from github.com/jmgilman/go/errors:
//
//	v, err := arith.SafePercent(part, whole)
//	if arith.IsInvalidArgument(err) {
//	    v = fallback
//	}
//
// IsInvalidArgument and IsParseFailure look through wrapping, so callers may
// annotate errors with fmt.Errorf("...: %w", err) on the way up.
//
// # Text entry points
//
// Lookup and Operations expose each operation by name for the CLI. Eval runs
// a whole "op arg..." line.
package arith
