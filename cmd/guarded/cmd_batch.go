package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ib-77/guarded/pkg/batch"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch [file|-]",
	Short: "Evaluate one expression per line",
	Long: `Reads "op arg..." expressions, one per line, from a file or stdin and
evaluates them concurrently. Blank lines and lines starting with '#' are
skipped. Every line is reported; a failing line does not stop the rest.

Output: <line>\t<expression>\t<value> or <line>\t<expression>\terror: <message>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent lines (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open expressions: %w", err)
		}
		defer f.Close()
		in = f
	}

	lines, err := batch.ReadLines(in)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	outcomes := batch.Evaluate(ctx, lines, batch.Options{Workers: workers, Logger: logger})
	for _, o := range outcomes {
		fmt.Fprintln(cmd.OutOrStdout(), o)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), batch.Summarize(outcomes))

	if first, failed := batch.FirstFailure(outcomes); failed {
		return &reportedError{err: fmt.Errorf("line %d: %w", first.Index, first.Err)}
	}
	return nil
}
