package main

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/model"
	"github.com/sells-group/salesmix/internal/outreach"
)

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "List businesses to pitch a product category to",
	Long: `Finds customers of a business category that do not buy the product
category yet, ranks them by how many categories they already buy, and
attaches co-purchased categories as talking points.

Examples:
  salesmix outreach --sales sales.csv --mapping businesses.csv --business Retail --product Cards
  salesmix outreach --sales sales.csv --mapping businesses.csv --business Retail --product Cards \
      --state CO --format messages --output emails.txt`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		business, _ := cmd.Flags().GetString("business")
		product, _ := cmd.Flags().GetString("product")
		location, _ := cmd.Flags().GetString("location")
		state, _ := cmd.Flags().GetString("state")
		limit, _ := cmd.Flags().GetInt("limit")
		similar, _ := cmd.Flags().GetInt("similar")

		if business == "" || product == "" {
			return eris.New("outreach: --business and --product are required")
		}
		if limit == 0 {
			limit = cfg.Outreach.MaxResults
		}
		if similar == 0 {
			similar = cfg.Outreach.SimilarProducts
		}

		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		prospects := outreach.GenerateOutreachList(records, outreach.TargetQuery{
			BusinessCategory: business,
			ProductCategory:  product,
			Location:         location,
			State:            state,
			SimilarProducts:  similar,
		}, limit)

		return output(cmd, prospects, writeProspectTable, func(p outreach.Prospect) model.OutreachMessage {
			return p.Message()
		})
	},
}

func init() {
	f := outreachCmd.Flags()
	f.String("business", "", "business category to target")
	f.String("product", "", "product category to recommend")
	f.String("location", "", "keep customers whose location contains this text")
	f.String("state", "", "keep customers in this state (ignored with --location)")
	f.Int("limit", 0, "maximum number of prospects (0=use config default)")
	f.Int("similar", 0, "co-purchased categories to suggest (0=use config default)")
	addOutputFlags(outreachCmd, "table, csv, json or messages", true)
	rootCmd.AddCommand(outreachCmd)
}

func writeProspectTable(w io.Writer, prospects []outreach.Prospect) error {
	t := &tableWriter{w: w}
	if len(prospects) == 0 {
		t.printf("No prospects found.\n")
		return t.err
	}
	t.printf("%-24s %-24s %-30s %10s %8s\n", "Customer", "Location", "Current Products", "Categories", "Priority")
	t.rule(100)
	for _, p := range prospects {
		t.printf("%-24s %-24s %-30s %10d %8.1f\n",
			truncate(p.CustomerID, 24), truncate(p.Location, 24), truncate(p.CurrentProducts, 30),
			p.OpportunityScore, p.OutreachPriority)
	}
	return t.err
}
