package main

import "github.com/ib-77/guarded/pkg/arith"

// Exit codes returned by the guarded CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates any failure not covered below (config, I/O, cancel).
	ExitFailure = 1

	// ExitInvalidArgument indicates a violated precondition.
	ExitInvalidArgument = 2

	// ExitParseFailure indicates input that could not be read as a number.
	ExitParseFailure = 3
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case arith.IsInvalidArgument(err):
		return ExitInvalidArgument
	case arith.IsParseFailure(err):
		return ExitParseFailure
	default:
		return ExitFailure
	}
}
