package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/export"
	"github.com/sells-group/salesmix/internal/model"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Pivot sales into a business category x product category matrix",
	Long: `Builds a dense matrix with business categories (or sub-categories) as rows
and product categories as columns. Every pair has a cell; pairs without
sales are zero.

Examples:
  # Revenue by business category
  salesmix matrix --sales sales.csv --mapping businesses.csv

  # Transaction counts by sub-category as CSV
  salesmix matrix --sales sales.csv --mapping businesses.csv --level sub_category --value count --format csv

  # Workbook with revenue matrices at both levels
  salesmix matrix --sales sales.csv --mapping businesses.csv --format xlsx --output matrix.xlsx`,
	RunE: runMatrix,
}

func init() {
	f := matrixCmd.Flags()
	f.String("level", "category", "row level: category or sub_category")
	f.String("value", "revenue", "cell value: revenue, count or avg_value")
	f.String("format", "table", "output format: table, csv, json or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	levelFlag, _ := cmd.Flags().GetString("level")
	value, _ := cmd.Flags().GetString("value")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	level, err := analytics.ParseLevel(levelFlag)
	if err != nil {
		return err
	}

	records, err := filteredRecords(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	if format == "xlsx" {
		if outputPath == "" {
			return eris.New("matrix: --output is required for xlsx")
		}
		if err := export.WriteMatrixXLSX(outputPath,
			export.MatrixSheet{Name: "Category Matrix", Matrix: analytics.CategoryMatrix(records)},
			export.MatrixSheet{Name: "Sub-Category Matrix", Matrix: analytics.SubCategoryMatrix(records)},
		); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote matrix workbook to %s\n", outputPath)
		return nil
	}

	var grid matrixGrid
	switch analytics.Metric(value) {
	case analytics.MetricRevenue:
		m := analytics.RevenueMatrix(records, level)
		grid = matrixGrid{rows: m.Rows, cols: m.Columns, v: m, cell: func(i, j int) string { return formatMoney(m.Values[i][j]) }}
	case analytics.MetricCount:
		m := analytics.TransactionCountMatrix(records, level)
		grid = floatGrid(m)
	case analytics.MetricAvgValue:
		m := analytics.AverageValueMatrix(records, level)
		grid = floatGrid(m)
	default:
		return eris.Errorf("matrix: --value must be revenue, count or avg_value (got %q)", value)
	}

	write := func(w io.Writer) error {
		switch format {
		case "table":
			return grid.writeTable(w)
		case "csv":
			switch m := grid.v.(type) {
			case *model.Matrix:
				return export.WriteMatrixCSV(w, m)
			case *model.FloatMatrix:
				return export.WriteFloatMatrixCSV(w, m)
			}
			return nil
		case "json":
			return export.WriteJSON(w, grid.v)
		default:
			return eris.Errorf("matrix: --format must be table, csv, json or xlsx (got %q)", format)
		}
	}

	if outputPath == "" {
		return write(os.Stdout)
	}
	return export.ToFile(outputPath, write)
}

// matrixGrid adapts either matrix type for table printing.
type matrixGrid struct {
	rows, cols []string
	v          any
	cell       func(i, j int) string
}

func floatGrid(m *model.FloatMatrix) matrixGrid {
	return matrixGrid{rows: m.Rows, cols: m.Columns, v: m, cell: func(i, j int) string {
		return strconv.FormatFloat(m.Values[i][j], 'f', 2, 64)
	}}
}

func (g matrixGrid) writeTable(w io.Writer) error {
	t := &tableWriter{w: w}
	if len(g.rows) == 0 {
		t.printf("No data.\n")
		return t.err
	}

	t.printf("%-24s", "")
	for _, c := range g.cols {
		t.printf(" %14s", truncate(c, 14))
	}
	t.printf("\n")
	t.rule(24 + 15*len(g.cols))
	for i, r := range g.rows {
		t.printf("%-24s", truncate(r, 24))
		for j := range g.cols {
			t.printf(" %14s", g.cell(i, j))
		}
		t.printf("\n")
	}
	return t.err
}
