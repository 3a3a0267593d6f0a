package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/geo"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Rank locations by businesses and revenue",
	Long: `Without flags, lists the busiest and highest-revenue locations.

  --product CATEGORY   where the product category sells, by location and business type
  --regional           top product categories per state`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		top, _ := cmd.Flags().GetInt("top")
		product, _ := cmd.Flags().GetString("product")
		regional, _ := cmd.Flags().GetBool("regional")
		if top == 0 {
			top = cfg.Location.TopLocations
		}

		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		switch {
		case regional:
			prefs := geo.RegionalPreferences(records)
			return output(cmd, prefs.RegionalData, func(w io.Writer, _ []geo.StateProduct) error {
				return writeRegionalTable(w, prefs)
			}, nil)
		case product != "":
			return output(cmd, geo.LocationOpportunities(records, product, top), writeLocationOpportunityTable, nil)
		default:
			insights := geo.LocationInsights(records, top)
			return outputValue(cmd, insights, func(w io.Writer) error {
				return writeInsightsTable(w, insights)
			})
		}
	},
}

func init() {
	f := locationsCmd.Flags()
	f.Int("top", 0, "number of locations to list (0=use config default)")
	f.String("product", "", "list where this product category sells")
	f.Bool("regional", false, "list top product categories per state")
	addOutputFlags(locationsCmd, "table, csv or json (csv only with --product or --regional)", false)
	rootCmd.AddCommand(locationsCmd)
}

func writeInsightsTable(w io.Writer, in geo.Insights) error {
	t := &tableWriter{w: w}
	t.printf("Locations: %d\n\n", in.TotalLocations)

	t.printf("%-32s %10s\n", "Location", "Businesses")
	t.rule(43)
	for _, l := range in.TopLocations {
		t.printf("%-32s %10d\n", truncate(l.Location, 32), l.Businesses)
	}

	t.printf("\n%-32s %15s\n", "Location", "Revenue")
	t.rule(48)
	for _, l := range in.TopSalesLocations {
		t.printf("%-32s %15s\n", truncate(l.Location, 32), formatMoney(l.Revenue))
	}
	return t.err
}

func writeLocationOpportunityTable(w io.Writer, opps []geo.LocationOpportunity) error {
	t := &tableWriter{w: w}
	if len(opps) == 0 {
		t.printf("No locations buy this category.\n")
		return t.err
	}
	t.printf("%-28s %-28s %10s %15s\n", "Location", "Business", "Businesses", "Revenue")
	t.rule(84)
	for _, o := range opps {
		t.printf("%-28s %-28s %10d %15s\n",
			truncate(o.Location, 28), truncate(o.BusinessCategory, 28), o.NumBusinesses, formatMoney(o.TotalRevenue))
	}
	return t.err
}

func writeRegionalTable(w io.Writer, prefs geo.Preferences) error {
	t := &tableWriter{w: w}
	states := prefs.States()
	if len(states) == 0 {
		t.printf("No state information in the sales data.\n")
		return t.err
	}
	for _, state := range states {
		t.printf("%s\n", state)
		for _, p := range prefs.TopProductsByState[state] {
			t.printf("  %-28s %15s %6d\n", truncate(p.ProductCategory, 28), formatMoney(p.TotalRevenue), p.NumBusinesses)
		}
	}
	return t.err
}
