package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/analytics"
)

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "Score business categories by the product categories they never buy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return output(cmd, analytics.IdentifyOpportunities(records), writeOpportunityTable, nil)
	},
}

func init() {
	addOutputFlags(opportunitiesCmd, "table, csv or json", false)
	rootCmd.AddCommand(opportunitiesCmd)
}

func writeOpportunityTable(w io.Writer, opps []analytics.Opportunity) error {
	t := &tableWriter{w: w}
	if len(opps) == 0 {
		t.printf("No results.\n")
		return t.err
	}
	t.printf("%-30s %8s %8s %8s\n", "Business Category", "Bought", "Total", "Score")
	t.rule(57)
	for _, o := range opps {
		t.printf("%-30s %8d %8d %8.2f\n",
			truncate(o.BusinessCategory, 30), o.ProductCategoriesBought, o.TotalProductCategories, o.OpportunityScore)
	}
	return t.err
}
