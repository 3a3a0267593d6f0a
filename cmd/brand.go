package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/brand"
	"github.com/sells-group/salesmix/internal/model"
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Match a brand's product catalog against existing buyers",
	Long: `Loads a brand catalog (product_id, product_name, product_category and an
optional product_type) and finds the customers most likely to carry it.

Subcommands:
  match     score customers by category overlap with the catalog
  catalog   customers not yet buying each catalog category
  fit       per-state fit score for the catalog
  market    existing market size per catalog category
  outreach  ranked outreach list with messages`,
}

var brandMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score customers by category overlap with the catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		minScore := cfg.Brand.MinMatchScore
		if cmd.Flags().Changed("min-score") {
			minScore, _ = cmd.Flags().GetFloat64("min-score")
		}

		records, catalog, err := loadBrandInputs(cmd)
		if err != nil {
			return err
		}

		matches := brand.FindBusinessesForBrand(records, catalog, brandQuery(cmd, minScore))
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Brand.MaxResults
		}
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
		return output(cmd, matches, writeBrandMatchTable, nil)
	},
}

var brandCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List customers not yet buying each catalog category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, catalog, err := loadBrandInputs(cmd)
		if err != nil {
			return err
		}

		business, _ := cmd.Flags().GetString("business")
		location, _ := cmd.Flags().GetString("location")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Brand.MaxResults
		}

		prospects := brand.GenerateCatalogOutreachList(records, catalog, brand.CatalogQuery{
			Location:         location,
			BusinessCategory: business,
		}, limit)
		return output(cmd, prospects, writeCatalogProspectTable, func(p brand.CatalogProspect) model.OutreachMessage {
			return p.Message()
		})
	},
}

var brandFitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Score each state's fit for the catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, catalog, err := loadBrandInputs(cmd)
		if err != nil {
			return err
		}

		fits, err := brand.AnalyzeRegionalFit(records, catalog, brand.FitWeights{
			Category: cfg.Brand.CategoryFitWeight,
			Business: cfg.Brand.BusinessFitWeight,
		})
		if err != nil {
			return err
		}
		return output(cmd, fits, writeRegionalFitTable, nil)
	},
}

var brandMarketCmd = &cobra.Command{
	Use:   "market",
	Short: "Describe the existing market for each catalog category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, catalog, err := loadBrandInputs(cmd)
		if err != nil {
			return err
		}

		fit := brand.AnalyzeMarketFit(records, catalog)
		return outputValue(cmd, fit, func(w io.Writer) error {
			return writeMarketFitTable(w, fit)
		})
	},
}

var brandOutreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Rank matched customers for outreach with a message each",
	RunE: func(cmd *cobra.Command, _ []string) error {
		minScore := cfg.Brand.OutreachMinMatchScore
		if cmd.Flags().Changed("min-score") {
			minScore, _ = cmd.Flags().GetFloat64("min-score")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Brand.MaxResults
		}

		records, catalog, err := loadBrandInputs(cmd)
		if err != nil {
			return err
		}

		prospects := brand.GenerateBrandOutreachList(records, catalog, brandQuery(cmd, minScore), limit)
		return output(cmd, prospects, writeBrandProspectTable, nil)
	},
}

func init() {
	brandCmd.PersistentFlags().String("catalog", "", "brand catalog file (.csv, .xlsx, .json or .zip)")

	for _, c := range []*cobra.Command{brandMatchCmd, brandOutreachCmd} {
		f := c.Flags()
		f.String("businesses", "", "comma-separated business categories to consider")
		f.String("location", "", "keep customers whose location or state contains this text")
		f.Float64("min-score", 0, "minimum match score between 0 and 1 (default from config)")
		f.Int("limit", 0, "maximum number of results (0=use config default)")
	}
	brandCatalogCmd.Flags().String("business", "", "business category to target (default every category)")
	brandCatalogCmd.Flags().String("location", "", "keep customers whose location contains this text")
	brandCatalogCmd.Flags().Int("limit", 0, "maximum number of results (0=use config default)")

	addOutputFlags(brandMatchCmd, "table, csv or json", false)
	addOutputFlags(brandCatalogCmd, "table, csv, json or messages", true)
	addOutputFlags(brandFitCmd, "table, csv or json", false)
	addOutputFlags(brandMarketCmd, "table or json", false)
	addOutputFlags(brandOutreachCmd, "table, csv or json", false)

	brandCmd.AddCommand(brandMatchCmd, brandCatalogCmd, brandFitCmd, brandMarketCmd, brandOutreachCmd)
	rootCmd.AddCommand(brandCmd)
}

func loadBrandInputs(cmd *cobra.Command) ([]model.Record, model.Catalog, error) {
	catalogPath, _ := cmd.Flags().GetString("catalog")
	if catalogPath == "" {
		return nil, nil, eris.New("brand: --catalog is required")
	}

	catalog, err := brand.LoadCatalog(cmd.Context(), catalogPath, fetchOptions(cfg, ""))
	if err != nil {
		return nil, nil, err
	}
	zap.L().With(zap.String("command", "brand "+cmd.Name())).Info("loaded catalog",
		zap.String("path", catalogPath),
		zap.Int("products", len(catalog)),
		zap.Strings("categories", catalog.Categories()),
	)

	records, err := filteredRecords(cmd.Context(), cmd)
	if err != nil {
		return nil, nil, err
	}
	return records, catalog, nil
}

func brandQuery(cmd *cobra.Command, minScore float64) brand.Query {
	businesses, _ := cmd.Flags().GetString("businesses")
	location, _ := cmd.Flags().GetString("location")
	return brand.Query{
		BusinessCategories: splitAndTrim(businesses),
		Location:           location,
		MinMatchScore:      minScore,
		Policy:             brand.PenaltyPolicy{Penalty: cfg.Brand.NoOverlapPenalty},
	}
}

func writeBrandMatchTable(w io.Writer, matches []brand.Match) error {
	t := &tableWriter{w: w}
	if len(matches) == 0 {
		t.printf("No matching customers.\n")
		return t.err
	}
	t.printf("%-22s %-20s %-20s %7s %6s %-30s\n", "Customer", "Business", "Location", "Overlap", "Match", "Recommended")
	t.rule(110)
	for _, m := range matches {
		t.printf("%-22s %-20s %-20s %7d %6.2f %-30s\n",
			truncate(m.CustomerID, 22), truncate(m.BusinessCategory, 20), truncate(m.Location, 20),
			m.CategoryOverlap, m.MatchScore, truncate(m.RecommendedProducts, 30))
	}
	return t.err
}

func writeBrandProspectTable(w io.Writer, prospects []brand.Prospect) error {
	t := &tableWriter{w: w}
	if len(prospects) == 0 {
		t.printf("No matching customers.\n")
		return t.err
	}
	for i, p := range prospects {
		t.printf("%d. %s (%s, %s) match %.2f\n", i+1, p.CustomerID, p.BusinessCategory, p.Location, p.MatchScore)
		t.printf("   Recommended: %s\n", p.RecommendedProducts)
		t.printf("   %s\n", p.OutreachMessage)
	}
	return t.err
}

func writeCatalogProspectTable(w io.Writer, prospects []brand.CatalogProspect) error {
	t := &tableWriter{w: w}
	if len(prospects) == 0 {
		t.printf("No catalog prospects found.\n")
		return t.err
	}
	t.printf("%-22s %-20s %-20s %-20s %-30s %8s\n", "Customer", "Business", "Location", "Brand Category", "Recommended", "Priority")
	t.rule(125)
	for _, p := range prospects {
		t.printf("%-22s %-20s %-20s %-20s %-30s %8.1f\n",
			truncate(p.CustomerID, 22), truncate(p.BusinessCategory, 20), truncate(p.Location, 20),
			truncate(p.BrandCategory, 20), truncate(p.RecommendedBrandProducts, 30), p.OutreachPriority)
	}
	return t.err
}

func writeRegionalFitTable(w io.Writer, fits []brand.RegionalFit) error {
	t := &tableWriter{w: w}
	if len(fits) == 0 {
		t.printf("No state information in the sales data.\n")
		return t.err
	}
	t.printf("%-16s %10s %8s %9s %10s %7s\n", "State", "Businesses", "Overlap", "Overlap%", "Categories", "Fit")
	t.rule(65)
	for _, f := range fits {
		t.printf("%-16s %10d %8d %8.1f%% %10s %7.3f\n",
			truncate(f.State, 16), f.TotalBusinesses, f.BusinessesWithOverlap, f.OverlapPercentage,
			fmt.Sprintf("%d/%d", f.CategoryOverlap, f.TotalBrandCategories), f.FitScore)
	}
	return t.err
}

func writeMarketFitTable(w io.Writer, fit brand.MarketFit) error {
	t := &tableWriter{w: w}
	t.printf("Market fit score: %.1f\n", fit.MarketFitScore)
	for _, c := range fit.CategoryBreakdown {
		t.printf("\n%s: %d buyers, revenue %s, avg %s\n", c.Category, c.NumBuyers, formatMoney(c.TotalRevenue), formatMoney(c.AvgTransaction))
		for _, b := range c.TopBusinessTypes {
			t.printf("  %-28s %6d\n", truncate(b.Name, 28), b.Count)
		}
		for _, l := range c.TopLocations {
			t.printf("  %-28s %15s\n", truncate(l.Location, 28), formatMoney(l.Revenue))
		}
	}
	return t.err
}
