package ingest

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/model"
)

// Options configures Process.
type Options struct {
	Aliases     AliasTable
	DateFormats []string
}

// Result is the output of Process.
type Result struct {
	Transactions []model.Transaction
	Stats        CleanStats
}

// Process runs normalization, validation, date parsing and cleaning in order.
// Missing required columns abort with a *SchemaError.
func Process(t *model.Table, opts Options) (*Result, error) {
	aliases := opts.Aliases
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}

	normalized := NormalizeColumnNames(t, aliases)
	if missing := ValidateColumns(normalized.Header); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Found: normalized.Header}
	}

	var dates []time.Time
	if idx := normalized.ColumnIndex(model.ColTransactionDate); idx >= 0 {
		values := make([]string, len(normalized.Rows))
		for i, row := range normalized.Rows {
			values[i] = normalized.Value(row, idx)
		}
		dates = ParseDates(values, opts.DateFormats)
	}

	txns, stats := Clean(normalized, dates)

	zap.L().Debug("ingest: cleaned sales table",
		zap.Int("rows", stats.Total),
		zap.Int("kept", stats.Kept),
		zap.Int("missing_identifiers", stats.MissingIdentifiers),
		zap.Int("invalid_amount", stats.InvalidAmount),
		zap.Int("non_positive_amount", stats.NonPositiveAmount),
		zap.Int("missing_category", stats.MissingCategory),
		zap.Int("unknown_date", stats.UnknownDate),
	)

	return &Result{Transactions: txns, Stats: stats}, nil
}

// MergeBusinessCategories joins a business mapping onto transactions.
// Customers absent from the mapping are labeled "Unknown"; a missing
// sub-category becomes "Unspecified".
func MergeBusinessCategories(txns []model.Transaction, mapping model.BusinessMapping) []model.Record {
	out := make([]model.Record, len(txns))
	for i, tx := range txns {
		rec := model.Record{
			Transaction:         tx,
			BusinessCategory:    model.CategoryUnknown,
			BusinessSubCategory: model.SubCategoryUnspecified,
		}
		if class, ok := mapping[tx.CustomerID]; ok {
			if class.Category != "" {
				rec.BusinessCategory = class.Category
			}
			if class.HasSub && class.SubCategory != "" {
				rec.BusinessSubCategory = class.SubCategory
			}
		}
		out[i] = rec
	}
	return out
}
