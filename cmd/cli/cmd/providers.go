package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/determinism"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

// providersCmd lists the provider catalog
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers and their cost multipliers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		printProviders(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printProviders(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(w, "%-22s %-18s", "PROVIDER", "CATEGORY")
	for _, c := range types.Categories {
		fmt.Fprintf(w, " %12s", c)
	}
	fmt.Fprintln(w)

	for _, p := range cat.Providers() {
		fmt.Fprintf(w, "%-22s %-18s", truncate(p.Name, 22), p.Category)
		for _, c := range types.Categories {
			fmt.Fprintf(w, " %12s", p.Multiplier(c).StringFixed(2))
		}
		fmt.Fprintln(w)
	}

	stats := cat.Stats()
	fmt.Fprintf(w, "\n%d providers\n", cat.Len())
	for _, category := range determinism.SortedKeys(stats) {
		fmt.Fprintf(w, "  %-18s %d\n", category, stats[category])
	}
}
