package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/classify"
	"github.com/sells-group/salesmix/internal/config"
	"github.com/sells-group/salesmix/internal/fetcher"
	"github.com/sells-group/salesmix/internal/ingest"
	"github.com/sells-group/salesmix/internal/model"
	"github.com/sells-group/salesmix/internal/session"
)

const dateFlagLayout = "2006-01-02"

// workspace is a loaded session plus the classifier it was built with.
type workspace struct {
	Session    *session.Session
	Classifier *classify.Classifier
}

// fetchOptions builds reader options from the ingest config.
func fetchOptions(c *config.Config, sheet string) fetcher.Options {
	opts := fetcher.Options{
		CSV:  fetcher.CSVOptions{Charset: c.Ingest.Encoding, TrimSpace: true, LazyQuotes: true},
		XLSX: fetcher.XLSXOptions{SheetName: sheet},
	}
	if r := []rune(c.Ingest.Delimiter); len(r) == 1 {
		opts.CSV.Delimiter = r[0]
	}
	return opts
}

// loadTaxonomy reads the taxonomy named by flag or config, or the built-in one.
func loadTaxonomy(cmd *cobra.Command) (*classify.Taxonomy, error) {
	path, _ := cmd.Flags().GetString("taxonomy")
	if path == "" {
		path = cfg.Classify.TaxonomyPath
	}
	if path == "" {
		return classify.DefaultTaxonomy(), nil
	}
	return classify.LoadTaxonomy(path)
}

// loadWorkspace reads the sales file and optional mapping named by the root
// flags into a new session.
func loadWorkspace(ctx context.Context, cmd *cobra.Command) (*workspace, error) {
	log := zap.L().With(zap.String("command", cmd.Name()))

	salesPath, _ := cmd.Flags().GetString("sales")
	if salesPath == "" {
		return nil, eris.New("--sales is required")
	}
	mappingPath, _ := cmd.Flags().GetString("mapping")
	autoClassify, _ := cmd.Flags().GetBool("auto-classify")
	noKeywords, _ := cmd.Flags().GetBool("no-keywords")
	sheet, _ := cmd.Flags().GetString("sheet")

	tax, err := loadTaxonomy(cmd)
	if err != nil {
		return nil, err
	}

	opts := fetchOptions(cfg, sheet)
	raw, err := fetcher.ReadTable(ctx, salesPath, opts)
	if err != nil {
		return nil, err
	}

	res, err := ingest.Process(raw, ingest.Options{
		Aliases:     ingest.AliasesFromMap(cfg.Ingest.ColumnAliases),
		DateFormats: cfg.Ingest.DateFormats,
	})
	if err != nil {
		return nil, err
	}
	log.Info("loaded sales",
		zap.String("path", salesPath),
		zap.Int("rows", res.Stats.Total),
		zap.Int("kept", res.Stats.Kept),
		zap.Int("dropped", res.Stats.Dropped()),
	)

	ws := &workspace{Session: session.New(), Classifier: classify.NewClassifier(tax)}
	ws.Session.SetSales(res.Transactions)

	if mappingPath != "" {
		mt, err := fetcher.ReadTable(ctx, mappingPath, fetchOptions(cfg, ""))
		if err != nil {
			return nil, err
		}
		mapping, err := classify.LoadMapping(mt)
		if err != nil {
			return nil, err
		}
		ws.Session.SetMapping(mapping)
		log.Info("loaded business mapping", zap.String("path", mappingPath), zap.Int("customers", len(mapping)))
	}

	if autoClassify {
		useKeywords := cfg.Classify.UseKeywords && !noKeywords
		m := ws.Session.AutoClassify(ws.Classifier, useKeywords)
		log.Info("auto-classified customers", zap.Int("customers", len(m)), zap.Bool("use_keywords", useKeywords))
	}

	return ws, nil
}

// criteriaFromFlags reads the root filter flags.
func criteriaFromFlags(cmd *cobra.Command) (analytics.Criteria, error) {
	business, _ := cmd.Flags().GetString("business-category")
	sub, _ := cmd.Flags().GetString("sub-category")
	product, _ := cmd.Flags().GetString("product-category")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	c := analytics.Criteria{
		BusinessCategories:    splitAndTrim(business),
		BusinessSubCategories: splitAndTrim(sub),
		ProductCategories:     splitAndTrim(product),
	}

	var err error
	if c.From, err = parseDateFlag("from", from); err != nil {
		return c, err
	}
	if c.To, err = parseDateFlag("to", to); err != nil {
		return c, err
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.To.Before(c.From) {
		return c, eris.Errorf("--to %s is before --from %s", to, from)
	}
	return c, nil
}

func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFlagLayout, v)
	if err != nil {
		return time.Time{}, eris.Errorf("--%s must be YYYY-MM-DD (got %q)", name, v)
	}
	return t, nil
}

// filteredRecords loads the workspace and applies the filter flags.
func filteredRecords(ctx context.Context, cmd *cobra.Command) ([]model.Record, error) {
	c, err := criteriaFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	ws, err := loadWorkspace(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return analytics.Filter(ws.Session.Enriched(), c), nil
}
