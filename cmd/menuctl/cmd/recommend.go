package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"menu_agent/internal/app"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend dishes, signature dishes first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := append(criteriaNames(), "limit", "prefer-signature")
		p, err := app.ParseRecommendParams(changedValues(cmd, names...))
		if err != nil {
			return err
		}
		rec, err := sess.query.Recommend(cmd.Context(), p)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		if err := printItems(cmd.OutOrStdout(), rec.Items); err != nil {
			return err
		}
		if rec.Note != "" {
			fmt.Fprintln(cmd.OutOrStdout(), rec.Note)
		}
		return nil
	},
}

func init() {
	addCriteriaFlags(recommendCmd)
	recommendCmd.Flags().String("limit", "", "number of dishes (1-10, default 3)")
	recommendCmd.Flags().String("prefer-signature", "", "rank signature dishes first (default true)")
}
