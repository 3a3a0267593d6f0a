// Package ingest normalizes, validates and cleans raw sales tables.
package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/salesmix/internal/model"
)

// Required lists the canonical fields every sales table must carry, in order.
var Required = []string{
	model.ColCustomerID,
	model.ColProductID,
	model.ColProductCategory,
	model.ColTransactionDate,
	model.ColSalesAmount,
}

// Alias lists the accepted header spellings of one canonical field.
type Alias struct {
	Field string
	Names []string
}

// AliasTable is an ordered set of aliases, resolved field by field.
type AliasTable []Alias

// DefaultAliases returns the built-in alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		{Field: model.ColCustomerID, Names: []string{"customer_id", "customer", "client_id", "client"}},
		{Field: model.ColProductID, Names: []string{"product_id", "product", "item_id", "item"}},
		{Field: model.ColProductCategory, Names: []string{"product_category", "category", "product_type"}},
		{Field: model.ColTransactionDate, Names: []string{"transaction_date", "date", "sale_date", "purchase_date"}},
		{Field: model.ColSalesAmount, Names: []string{"sales_amount", "amount", "revenue", "price", "total"}},
	}
}

// AliasesFromMap builds an alias table from configuration. Required fields
// come first in their canonical order, any extra fields follow alphabetically.
func AliasesFromMap(m map[string][]string) AliasTable {
	if len(m) == 0 {
		return DefaultAliases()
	}

	var table AliasTable
	used := make(map[string]bool, len(m))
	for _, field := range Required {
		if names, ok := m[field]; ok {
			table = append(table, Alias{Field: field, Names: names})
			used[field] = true
		}
	}

	var extra []string
	for field := range m {
		if !used[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	for _, field := range extra {
		table = append(table, Alias{Field: field, Names: m[field]})
	}
	return table
}

// NormalizeColumnNames renames, for each canonical field, the first header
// column matching one of its aliases (case-insensitive exact match).
// Unmatched columns pass through unchanged. The input table is not modified.
func NormalizeColumnNames(t *model.Table, aliases AliasTable) *model.Table {
	out := t.Clone()
	renamed := make([]bool, len(out.Header))

	for _, a := range aliases {
		for i, col := range out.Header {
			if renamed[i] {
				continue
			}
			if matchesAny(col, a.Names) {
				out.Header[i] = a.Field
				renamed[i] = true
				break
			}
		}
	}
	return out
}

func matchesAny(col string, names []string) bool {
	col = strings.TrimSpace(col)
	for _, n := range names {
		if strings.EqualFold(col, n) {
			return true
		}
	}
	return false
}

// ValidateColumns returns the required canonical fields absent from header.
func ValidateColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range Required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// SchemaError reports required columns that could not be resolved.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ingest: missing required columns: %s. Found columns: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}
