package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/salesmix/internal/model"
)

func TestProcessAliasedInput(t *testing.T) {
	table := &model.Table{
		Header: []string{"Client", "Item", "Category", "Date", "Revenue"},
		Rows: [][]string{
			{"C1", "P1", "Widgets", "2024-01-15", "100"},
			{"C2", "P2", "Gadgets", "2024-01-16", "0"},
		},
	}

	res, err := Process(table, Options{DateFormats: testLayouts})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)

	tx := res.Transactions[0]
	assert.Equal(t, "C1", tx.CustomerID)
	assert.Equal(t, "P1", tx.ProductID)
	assert.Equal(t, "Widgets", tx.ProductCategory)
	assert.Equal(t, day(2024, 1, 15), tx.TransactionDate)
	assert.Equal(t, "100", tx.SalesAmount.String())
	assert.Equal(t, 1, res.Stats.NonPositiveAmount)
}

func TestProcessMissingColumns(t *testing.T) {
	table := &model.Table{
		Header: []string{"customer", "product", "category", "date"},
		Rows:   [][]string{{"C1", "P1", "A", "2024-01-01"}},
	}

	_, err := Process(table, Options{DateFormats: testLayouts})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"sales_amount"}, schemaErr.Missing)
	assert.Equal(t, []string{"customer_id", "product_id", "product_category", "transaction_date"}, schemaErr.Found)
}

func TestMergeBusinessCategories(t *testing.T) {
	txns := []model.Transaction{
		{CustomerID: "C1", ProductCategory: "A"},
		{CustomerID: "C2", ProductCategory: "B"},
		{CustomerID: "C3", ProductCategory: "C"},
	}
	mapping := model.BusinessMapping{
		"C1": model.NewBusinessClass("Retail").WithSub("Grocery"),
		"C2": model.NewBusinessClass("Healthcare"),
	}

	recs := MergeBusinessCategories(txns, mapping)
	require.Len(t, recs, 3)

	assert.Equal(t, "Retail", recs[0].BusinessCategory)
	assert.Equal(t, "Grocery", recs[0].BusinessSubCategory)
	assert.Equal(t, "Healthcare", recs[1].BusinessCategory)
	assert.Equal(t, model.SubCategoryUnspecified, recs[1].BusinessSubCategory)
	assert.Equal(t, model.CategoryUnknown, recs[2].BusinessCategory)
	assert.Equal(t, model.SubCategoryUnspecified, recs[2].BusinessSubCategory)
	assert.Equal(t, "C", recs[2].ProductCategory)
}

func TestMergeBusinessCategoriesEmpty(t *testing.T) {
	assert.Empty(t, MergeBusinessCategories(nil, nil))
}
