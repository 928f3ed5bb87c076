package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every restaurant and menu item",
	Long:  "Wipes the configured store. Refuses to run without --confirm.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.catalog.Reset(cmd.Context(), resetConfirm); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "catalog reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "really delete everything")
}
