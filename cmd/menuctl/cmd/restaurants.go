package cmd

import "github.com/spf13/cobra"

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "List restaurants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := sess.query.ListRestaurants(cmd.Context())
		if err != nil {
			return err
		}
		return printRestaurants(cmd.OutOrStdout(), rs)
	},
}
