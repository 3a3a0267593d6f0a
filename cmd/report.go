package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/export"
	"github.com/sells-group/salesmix/internal/geo"
	"github.com/sells-group/salesmix/internal/model"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write every analysis to a directory",
	Long: `Runs the summary, matrices, top combinations, opportunities, trends and
location analyses over one snapshot of the data and writes each to its own
file in --dir (default export.dir).

Examples:
  salesmix report --sales sales.csv --mapping businesses.csv --dir out/
  salesmix report --sales sales.csv --auto-classify --concurrency 2`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.String("dir", "", "output directory (default from config)")
	f.Int("concurrency", 4, "number of analyses run in parallel")
	rootCmd.AddCommand(reportCmd)
}

// reportTask writes one report file.
type reportTask struct {
	file  string
	write func(w io.Writer) error
}

func runReport(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "report"))

	dir, _ := cmd.Flags().GetString("dir")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if dir == "" {
		dir = cfg.Export.Dir
	}
	if concurrency < 1 {
		return eris.Errorf("report: --concurrency must be >= 1 (got %d)", concurrency)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "report: create %s", dir)
	}

	c, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	ws, err := loadWorkspace(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	snap := ws.Session.Snapshot()
	records := analytics.Filter(snap.Records, c)

	log.Info("writing report",
		zap.String("session_id", snap.SessionID),
		zap.String("dir", dir),
		zap.Int("records", len(records)),
	)

	start := time.Now()
	written, err := writeReport(cmd.Context(), dir, records, concurrency)
	if err != nil {
		return err
	}

	log.Info("report complete", zap.Int("files", written), zap.Duration("elapsed", time.Since(start)))
	fmt.Fprintf(os.Stderr, "Wrote %d files to %s\n", written, dir)
	return nil
}

// writeReport fans the analyses out over an errgroup. records is shared
// read-only by every task.
func writeReport(ctx context.Context, dir string, records []model.Record, concurrency int) (int, error) {
	tasks := reportTasks(records)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	g.Go(func() error {
		if gCtx.Err() != nil {
			return gCtx.Err()
		}
		return export.WriteMatrixXLSX(filepath.Join(dir, "matrices.xlsx"),
			export.MatrixSheet{Name: "Category Matrix", Matrix: analytics.CategoryMatrix(records)},
			export.MatrixSheet{Name: "Sub-Category Matrix", Matrix: analytics.SubCategoryMatrix(records)},
		)
	})

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			path := filepath.Join(dir, task.file)
			if err := export.ToFile(path, task.write); err != nil {
				return eris.Wrapf(err, "report: %s", task.file)
			}
			zap.L().Debug("report: wrote file", zap.String("path", path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(tasks) + 1, nil
}

func reportTasks(records []model.Record) []reportTask {
	return []reportTask{
		{"summary.json", func(w io.Writer) error {
			return export.WriteJSON(w, analytics.SummaryStatistics(records))
		}},
		{"category_matrix.csv", func(w io.Writer) error {
			return export.WriteMatrixCSV(w, analytics.CategoryMatrix(records))
		}},
		{"sub_category_matrix.csv", func(w io.Writer) error {
			return export.WriteMatrixCSV(w, analytics.SubCategoryMatrix(records))
		}},
		{"transaction_count_matrix.csv", func(w io.Writer) error {
			return export.WriteFloatMatrixCSV(w, analytics.TransactionCountMatrix(records, analytics.LevelCategory))
		}},
		{"top_combinations.csv", func(w io.Writer) error {
			combos, err := analytics.TopCombinations(records, cfg.Analytics.TopN, analytics.Metric(cfg.Analytics.Metric), analytics.LevelCategory)
			if err != nil {
				return err
			}
			return export.WriteCSV(w, combos)
		}},
		{"opportunities.csv", func(w io.Writer) error {
			return export.WriteCSV(w, analytics.IdentifyOpportunities(records))
		}},
		{"trends.csv", func(w io.Writer) error {
			period, err := analytics.ParsePeriod(cfg.Analytics.Period)
			if err != nil {
				return err
			}
			points, err := analytics.Trends(records, period)
			if err != nil {
				return err
			}
			return export.WriteCSV(w, points)
		}},
		{"location_insights.json", func(w io.Writer) error {
			return export.WriteJSON(w, geo.LocationInsights(records, cfg.Location.TopLocations))
		}},
		{"regional_preferences.csv", func(w io.Writer) error {
			return export.WriteCSV(w, geo.RegionalPreferences(records).RegionalData)
		}},
	}
}
