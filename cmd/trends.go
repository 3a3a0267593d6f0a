package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/analytics"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Sum revenue per period, business category and product category",
	Example: `  salesmix trends --sales sales.csv --mapping businesses.csv --period quarter
  salesmix trends --sales sales.csv --mapping businesses.csv --period W --format csv --output weekly.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		periodFlag, _ := cmd.Flags().GetString("period")
		if periodFlag == "" {
			periodFlag = cfg.Analytics.Period
		}
		period, err := analytics.ParsePeriod(periodFlag)
		if err != nil {
			return err
		}

		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		points, err := analytics.Trends(records, period)
		if err != nil {
			return err
		}
		return output(cmd, points, writeTrendTable, nil)
	},
}

func init() {
	trendsCmd.Flags().String("period", "", "day, week, month, quarter or year (default from config)")
	addOutputFlags(trendsCmd, "table, csv or json", false)
	rootCmd.AddCommand(trendsCmd)
}

func writeTrendTable(w io.Writer, points []analytics.TrendPoint) error {
	t := &tableWriter{w: w}
	if len(points) == 0 {
		t.printf("No dated transactions.\n")
		return t.err
	}
	t.printf("%-10s %-28s %-28s %15s\n", "Period", "Business", "Product Category", "Revenue")
	t.rule(84)
	for _, p := range points {
		t.printf("%-10s %-28s %-28s %15s\n",
			p.Period, truncate(p.BusinessCategory, 28), truncate(p.ProductCategory, 28), formatMoney(p.SalesAmount))
	}
	return t.err
}
