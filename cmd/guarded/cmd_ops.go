package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ib-77/guarded/pkg/arith"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the available operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, op := range arith.Operations() {
			fmt.Fprintln(cmd.OutOrStdout(), op)
		}
		return nil
	},
}
