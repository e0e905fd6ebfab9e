package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ib-77/guarded/internal/prompt"
	"github.com/ib-77/guarded/pkg/arith"
)

var promptEcho bool

var promptCmd = &cobra.Command{
	Use:   "prompt <op>",
	Short: "Ask for the arguments of an operation one line at a time",
	Long: `Reads each argument of the operation from stdin. Input that is not a
number is reported and asked for again (prompt.max_attempts in the config).
When the operation rejects its arguments and the config has a default for
it under "defaults", the default is printed instead of failing.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().BoolVar(&promptEcho, "echo", false, "print prompts even when stdin is not a terminal")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	op, ok := arith.Lookup(args[0])
	if !ok {
		return fmt.Errorf("prompt: %w", arith.InvalidArgumentf("unknown operation %q (see 'guarded ops')", args[0]))
	}

	s := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(), prompt.Options{
		MaxAttempts: cfg.Prompt.MaxAttempts,
		Echo:        promptEcho || cfg.Prompt.Echo,
		Default:     cfg.Default,
		Logger:      logger,
	})

	ans, err := s.Run(commandContext(cmd), op)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ans.Value)
	return nil
}
