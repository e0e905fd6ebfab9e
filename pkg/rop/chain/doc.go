// Package chain provides a fluent wrapper around Result[T]
// for building synchronous Railway-Oriented chains using solo primitives.
//
// Key operations:
// - Start/FromValue/FromTry: begin a chain from a Result[T], a value, or (value, error)
// - Validate: fail the chain on a violated check
// - Then: switch to a new Result[U] via a function
// - ThenTry: call a function (U, error) and convert error to failure
// - Map: transform the successful value (T -> U)
// - Ensure: run side effects without changing the result
// - Finally: collapse the chain into a final value via handlers
package chain
