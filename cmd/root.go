package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "salesmix",
	Short: "Cross-category sales analytics",
	Long: `Loads a transactional sales table, classifies the buying businesses into a
category taxonomy and reports which business types buy which product
categories: matrices, top combinations, opportunity gaps, trends, location
searches, outreach lists and brand catalog matching.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("sales", "", "sales file (.csv, .xlsx, .json or .zip)")
	f.String("mapping", "", "business mapping file with customer and business category columns")
	f.String("taxonomy", "", "taxonomy YAML file (overrides classify.taxonomy_path)")
	f.Bool("auto-classify", false, "classify customers missing from the mapping by keyword")
	f.Bool("no-keywords", false, "with --auto-classify, label unmapped customers Other instead of matching keywords")
	f.String("sheet", "", "worksheet name for .xlsx input (default first sheet)")

	f.String("business-category", "", "comma-separated business categories to keep")
	f.String("sub-category", "", "comma-separated business sub-categories to keep")
	f.String("product-category", "", "comma-separated product categories to keep")
	f.String("from", "", "keep transactions on or after this date (YYYY-MM-DD)")
	f.String("to", "", "keep transactions on or before this date (YYYY-MM-DD)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
