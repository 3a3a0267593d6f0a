package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/analytics"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank business x product category combinations",
	Example: `  salesmix top --sales sales.csv --mapping businesses.csv --n 5 --metric count
  salesmix top --sales sales.csv --mapping businesses.csv --level sub_category --format csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, _ := cmd.Flags().GetInt("n")
		metric, _ := cmd.Flags().GetString("metric")
		levelFlag, _ := cmd.Flags().GetString("level")

		if n == 0 {
			n = cfg.Analytics.TopN
		}
		if metric == "" {
			metric = cfg.Analytics.Metric
		}
		level, err := analytics.ParseLevel(levelFlag)
		if err != nil {
			return err
		}

		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		combos, err := analytics.TopCombinations(records, n, analytics.Metric(metric), level)
		if err != nil {
			return err
		}
		return output(cmd, combos, writeCombinationTable, nil)
	},
}

func init() {
	f := topCmd.Flags()
	f.Int("n", 0, "number of combinations (0=use config default)")
	f.String("metric", "", "ranking metric: revenue, count or avg_value (default from config)")
	f.String("level", "category", "business level: category or sub_category")
	addOutputFlags(topCmd, "table, csv or json", false)
	rootCmd.AddCommand(topCmd)
}

func writeCombinationTable(w io.Writer, combos []analytics.Combination) error {
	t := &tableWriter{w: w}
	if len(combos) == 0 {
		t.printf("No results.\n")
		return t.err
	}
	t.printf("%-28s %-28s %15s %12s %7s\n", "Business", "Product Category", "Revenue", "Avg Value", "Count")
	t.rule(94)
	for _, c := range combos {
		t.printf("%-28s %-28s %15s %12s %7d\n",
			truncate(c.BusinessCategory, 28), truncate(c.ProductCategory, 28),
			formatMoney(c.TotalRevenue), formatMoney(c.AvgValue), c.TransactionCount)
	}
	return t.err
}
