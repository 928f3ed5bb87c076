package cmd

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"menu_agent/internal/app"
)

// criteriaFlags are shared by items and recommend. Values are passed as text
// to the same parser the HTTP API uses.
var criteriaFlags = []struct{ name, usage string }{
	{"restaurant-id", "only items of this restaurant"},
	{"q", "case-insensitive text in name or description"},
	{"region", "region tag"},
	{"flavor", "flavor tag"},
	{"is-signature", "true or false"},
	{"max-price", "upper price bound"},
}

func addCriteriaFlags(c *cobra.Command) {
	for _, f := range criteriaFlags {
		c.Flags().String(f.name, "", f.usage)
	}
}

// changedValues collects the flags the user set, keyed by query parameter name.
func changedValues(c *cobra.Command, names ...string) url.Values {
	v := url.Values{}
	for _, n := range names {
		if !c.Flags().Changed(n) {
			continue
		}
		s, err := c.Flags().GetString(n)
		if err != nil {
			continue
		}
		v.Set(strings.ReplaceAll(n, "-", "_"), s)
	}
	return v
}

func criteriaNames() []string {
	out := make([]string, 0, len(criteriaFlags))
	for _, f := range criteriaFlags {
		out = append(out, f.name)
	}
	return out
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List menu items matching the given filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.ParseListParams(changedValues(cmd, criteriaNames()...))
		if err != nil {
			return err
		}
		items, err := sess.query.ListItems(cmd.Context(), c)
		if err != nil {
			return err
		}
		return printItems(cmd.OutOrStdout(), items)
	},
}

func init() {
	addCriteriaFlags(itemsCmd)
}
