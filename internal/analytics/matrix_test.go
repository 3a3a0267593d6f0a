package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/salesmix/internal/model"
)

func TestCategoryMatrixScenario(t *testing.T) {
	m := CategoryMatrix(scenario())

	assert.Equal(t, []string{"Retail"}, m.Rows)
	assert.Equal(t, []string{"Cards", "Gifts"}, m.Columns)
	assert.True(t, m.Cell("Retail", "Gifts").Equal(decimal.NewFromInt(300)))
	assert.True(t, m.Cell("Retail", "Cards").Equal(decimal.NewFromInt(50)))
}

func TestCategoryMatrixIsDense(t *testing.T) {
	records := append(scenario(), rec("H1", "Healthcare", "Masks", 10))
	m := CategoryMatrix(records)

	require.Len(t, m.Values, len(m.Rows))
	for _, row := range m.Values {
		assert.Len(t, row, len(m.Columns))
	}
	assert.Equal(t, []string{"Healthcare", "Retail"}, m.Rows)
	assert.Equal(t, []string{"Cards", "Gifts", "Masks"}, m.Columns)
	assert.True(t, m.Cell("Healthcare", "Gifts").IsZero())
	assert.True(t, m.Cell("Retail", "Masks").IsZero())
	assert.True(t, m.Total().Equal(decimal.NewFromInt(360)))
}

func TestCategoryMatrixEmpty(t *testing.T) {
	m := CategoryMatrix(nil)
	assert.NotNil(t, m.Rows)
	assert.NotNil(t, m.Columns)
	assert.Empty(t, m.Values)
}

func TestSubCategoryMatrix(t *testing.T) {
	records := scenario()
	records[0].BusinessSubCategory = "Boutique"

	m := SubCategoryMatrix(records)
	assert.Equal(t, []string{"Boutique", model.SubCategoryUnspecified}, m.Rows)
	assert.True(t, m.Cell("Boutique", "Gifts").Equal(decimal.NewFromInt(100)))
	assert.True(t, m.Cell(model.SubCategoryUnspecified, "Gifts").Equal(decimal.NewFromInt(200)))
}

func TestCountAndAverageMatrices(t *testing.T) {
	counts := TransactionCountMatrix(scenario(), LevelCategory)
	assert.InDelta(t, 2, counts.Cell("Retail", "Gifts"), 1e-9)
	assert.InDelta(t, 1, counts.Cell("Retail", "Cards"), 1e-9)

	avg := AverageValueMatrix(scenario(), LevelCategory)
	assert.InDelta(t, 150, avg.Cell("Retail", "Gifts"), 1e-9)
	assert.InDelta(t, 50, avg.Cell("Retail", "Cards"), 1e-9)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelCategory, l)

	l, err = ParseLevel("sub_category")
	require.NoError(t, err)
	assert.Equal(t, LevelSubCategory, l)

	_, err = ParseLevel("region")
	assert.Error(t, err)
}
