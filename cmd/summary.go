package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/analytics"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline statistics of the sales table",
	Example: `  salesmix summary --sales sales.csv --mapping businesses.csv
  salesmix summary --sales sales.xlsx --auto-classify --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := filteredRecords(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		s := analytics.SummaryStatistics(records)
		return outputValue(cmd, s, func(w io.Writer) error {
			return writeSummaryTable(w, s)
		})
	},
}

func init() {
	addOutputFlags(summaryCmd, "table or json", false)
	rootCmd.AddCommand(summaryCmd)
}

func writeSummaryTable(w io.Writer, s analytics.Summary) error {
	t := &tableWriter{w: w}
	t.printf("Total revenue:             %s\n", formatMoney(s.TotalRevenue))
	t.printf("Transactions:              %d\n", s.TotalTransactions)
	t.printf("Average transaction:       %s\n", formatMoney(s.AverageTransactionValue))
	t.printf("Customers:                 %d\n", s.UniqueCustomers)
	t.printf("Products:                  %d\n", s.UniqueProducts)
	t.printf("Business categories:       %d\n", s.UniqueBusinessCategories)
	if s.UniqueBusinessSubCategories > 0 {
		t.printf("Business sub-categories:   %d\n", s.UniqueBusinessSubCategories)
	}
	t.printf("Product categories:        %d\n", s.UniqueProductCategories)
	if s.DateRange.Start != "" {
		t.printf("Date range:                %s to %s\n", s.DateRange.Start, s.DateRange.End)
	} else {
		t.printf("Date range:                unknown\n")
	}
	return t.err
}
