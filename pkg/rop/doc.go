// Package rop holds Result[T], the value that flows along a railway-oriented
// pipeline. A Result is a success carrying a value, a failure carrying an
// error, or a cancellation carrying the context error that stopped it.
//
// The combinators live in subpackages: solo (synchronous), chain (fluent),
// lite and core (channel pipelines).
package rop
