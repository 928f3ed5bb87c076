package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"menu_agent/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printRestaurants(w io.Writer, rs []domain.Restaurant) error {
	if jsonOut {
		return printJSON(w, rs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tCUISINE")
	for _, r := range rs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.City, r.CuisineHint)
	}
	return tw.Flush()
}

func printItems(w io.Writer, items []domain.MenuItem) error {
	if jsonOut {
		return printJSON(w, items)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRESTAURANT\tNAME\tPRICE\tSIG\tREGION\tFLAVOR")
	for _, it := range items {
		sig := ""
		if it.IsSignature {
			sig = "★"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s %s\t%s\t%s\t%s\n",
			it.ID, it.RestaurantID, it.Name, it.Price, it.Currency, sig,
			strings.Join(it.RegionTags, ","), strings.Join(it.FlavorTags, ","))
	}
	return tw.Flush()
}
