package main

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/geo"
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find nearby businesses that do not buy a product category yet",
	Example: `  salesmix similar --sales sales.csv --mapping businesses.csv --business Retail --product Cards --location "Denver, CO"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		business, _ := cmd.Flags().GetString("business")
		product, _ := cmd.Flags().GetString("product")
		location, _ := cmd.Flags().GetString("location")
		radius, _ := cmd.Flags().GetFloat64("radius")
		limit, _ := cmd.Flags().GetInt("limit")

		if product == "" || location == "" {
			return eris.New("similar: --product and --location are required")
		}
		if !cmd.Flags().Changed("radius") {
			radius = cfg.Location.RadiusMiles
		}
		if limit == 0 {
			limit = cfg.Location.Recommendations
		}

		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		found := geo.FindSimilarBusinesses(records, geo.Query{
			BusinessCategory: business,
			ProductCategory:  product,
			Location:         location,
			RadiusMiles:      radius,
			Limit:            limit,
		})
		return output(cmd, found, writeSimilarTable, nil)
	},
}

func init() {
	f := similarCmd.Flags()
	f.String("business", "", "preferred business category")
	f.String("product", "", "product category to recommend")
	f.String("location", "", `location as "City, State" or a single city or state`)
	f.Float64("radius", 0, "search radius in miles (default from config)")
	f.Int("limit", 0, "maximum number of results (0=use config default)")
	addOutputFlags(similarCmd, "table, csv or json", false)
	rootCmd.AddCommand(similarCmd)
}

func writeSimilarTable(w io.Writer, found []geo.SimilarBusiness) error {
	t := &tableWriter{w: w}
	if len(found) == 0 {
		t.printf("No similar businesses found.\n")
		return t.err
	}
	t.printf("%-24s %-24s %-22s %10s %15s\n", "Customer", "Location", "Business", "Categories", "Revenue")
	t.rule(99)
	for _, b := range found {
		t.printf("%-24s %-24s %-22s %10d %15s\n",
			truncate(b.CustomerID, 24), truncate(b.Location, 24), truncate(b.BusinessCategory, 22),
			b.CurrentProductCategories, formatMoney(b.TotalRevenue))
	}
	return t.err
}
