package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog into an empty store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := sess.catalog.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "store already has data; skipping seed")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "seeded sample catalog")
		return nil
	},
}
