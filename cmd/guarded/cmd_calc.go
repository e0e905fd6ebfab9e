package main

import (
	"encoding/json"
	"fmt"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ib-77/guarded/pkg/arith"
)

var jsonOutput bool

var calcCmd = &cobra.Command{
	Use:   "calc <op> [args...]",
	Short: "Evaluate one operation",
	Long: `Evaluates a single operation and prints its value.

Example:
  guarded calc percent 50 100
  guarded calc charat hello 1
  guarded calc difference 3 5 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().BoolVar(&jsonOutput, "json", false, "print failures as a JSON error object")
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	op, ok := arith.Lookup(args[0])
	if !ok {
		return fmt.Errorf("calc: %w", arith.InvalidArgumentf("unknown operation %q (see 'guarded ops')", args[0]))
	}

	logger.Debug("evaluating", zap.String("operation", op.Name), zap.Strings("args", args[1:]))
	v, err := op.Run(ctx, args[1:]...)
	if err != nil {
		logger.Debug("operation failed", zap.String("operation", op.Name), zap.Error(err))
		if !jsonOutput {
			return fmt.Errorf("%s: %w", op.Name, err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		if encErr := enc.Encode(errors.ToJSON(err)); encErr != nil {
			return fmt.Errorf("failed to encode error: %w", encErr)
		}
		return &reportedError{err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
