// Package brand matches an external brand catalog against the customer base
// to find prospective buyers and regions that fit the brand.
package brand

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/salesmix/internal/fetcher"
	"github.com/sells-group/salesmix/internal/model"
)

// RequiredColumns are the catalog columns LoadCatalog insists on.
var RequiredColumns = []string{"product_id", "product_name", "product_category"}

// SchemaError reports a catalog without its required columns.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("brand: catalog missing required columns: %s. Found columns: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// LoadCatalog reads a brand catalog from a CSV or XLSX file.
func LoadCatalog(ctx context.Context, path string, opts fetcher.Options) (model.Catalog, error) {
	t, err := fetcher.ReadTable(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return DecodeCatalog(t)
}

// DecodeCatalog converts a raw table into a catalog. Header names are matched
// case-insensitively with spaces read as underscores. Rows without a product
// category are skipped.
func DecodeCatalog(t *model.Table) (model.Catalog, error) {
	header := make([]string, len(t.Header))
	present := make(map[string]bool, len(t.Header))
	for i, h := range t.Header {
		header[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		present[header[i]] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Found: t.Header}
	}

	dec, err := csvutil.NewDecoder(&tableReader{rows: t.Rows, width: len(header)}, header...)
	if err != nil {
		return nil, eris.Wrap(err, "brand: create catalog decoder")
	}

	var catalog model.Catalog
	for {
		var p model.BrandProduct
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "brand: decode catalog row")
		}

		p.ProductID = strings.TrimSpace(p.ProductID)
		p.ProductName = strings.TrimSpace(p.ProductName)
		p.ProductCategory = strings.TrimSpace(p.ProductCategory)
		p.ProductType = strings.TrimSpace(p.ProductType)
		if p.ProductCategory == "" {
			continue
		}
		catalog = append(catalog, p)
	}
	return catalog, nil
}

// tableReader feeds table rows to csvutil, padding short rows to the header width.
type tableReader struct {
	rows  [][]string
	width int
	pos   int
}

func (r *tableReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	if len(row) < r.width {
		padded := make([]string, r.width)
		copy(padded, row)
		row = padded
	}
	return row[:r.width], nil
}
