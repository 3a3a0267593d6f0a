package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/salesmix/internal/model"
)

func TestClassifyByKeyword(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "pharmacy", input: "Joe's Pharmacy", want: "Healthcare", wantOK: true},
		{name: "case insensitive", input: "ACME SOFTWARE", want: "Technology", wantOK: true},
		{name: "declared order wins", input: "Harbor Restaurant", want: "Hospitality", wantOK: true},
		{name: "shared keyword goes to first category", input: "Jones Construction", want: "Real Estate", wantOK: true},
		{name: "short keyword matches inside words", input: "Smith Bakery", want: "Technology", wantOK: true},
		{name: "retail before healthcare", input: "Health Food Store", want: "Retail", wantOK: true},
		{name: "multi word keyword", input: "Acme Real Estate Group", want: "Real Estate", wantOK: true},
		{name: "no match", input: "Zzyzx", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ClassifyByKeyword(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifierCustomTaxonomy(t *testing.T) {
	c := NewClassifier(&Taxonomy{Categories: []CategoryRule{
		{Name: "Pets", Keywords: []string{"vet", "  ", "kennel"}},
		{Name: "Other"},
	}})

	got, ok := c.ClassifyByKeyword("Downtown Kennel Club")
	require.True(t, ok)
	assert.Equal(t, "Pets", got)

	_, ok = c.ClassifyByKeyword("Joe's Pharmacy")
	assert.False(t, ok)
	assert.Equal(t, []string{"Pets", "Other"}, c.Taxonomy().Names())
}

func TestBuildMapping(t *testing.T) {
	c := NewClassifier(nil)
	file := model.BusinessMapping{
		"Joe's Pharmacy": model.NewBusinessClass("Retail").WithSub("Drugstore"),
	}
	ids := []string{"Joe's Pharmacy", "City Hospital", "Zzyzx"}

	t.Run("with keywords", func(t *testing.T) {
		m := c.BuildMapping(ids, file, true)
		require.Len(t, m, 3)
		assert.Equal(t, "Retail", m["Joe's Pharmacy"].Category)
		assert.Equal(t, "Drugstore", m["Joe's Pharmacy"].SubCategory)
		assert.Equal(t, "Healthcare", m["City Hospital"].Category)
		assert.False(t, m["City Hospital"].HasSub)
		assert.Equal(t, model.CategoryOther, m["Zzyzx"].Category)
	})

	t.Run("without keywords", func(t *testing.T) {
		m := c.BuildMapping(ids, file, false)
		assert.Equal(t, "Retail", m["Joe's Pharmacy"].Category)
		assert.Equal(t, model.CategoryOther, m["City Hospital"].Category)
		assert.Equal(t, model.CategoryOther, m["Zzyzx"].Category)
	})

	t.Run("file mapping untouched", func(t *testing.T) {
		c.BuildMapping(ids, file, true)
		assert.Len(t, file, 1)
	})

	t.Run("blank file category is reclassified", func(t *testing.T) {
		blank := model.BusinessMapping{
			"City Hospital": model.NewBusinessClass("  "),
			"Zzyzx":         model.NewBusinessClass(""),
		}
		m := c.BuildMapping(ids, blank, true)
		assert.Equal(t, "Healthcare", m["City Hospital"].Category)
		assert.Equal(t, model.CategoryOther, m["Zzyzx"].Category)
	})

	t.Run("nil file mapping", func(t *testing.T) {
		m := c.BuildMapping([]string{"Acme Bank"}, nil, true)
		assert.Equal(t, "Finance", m["Acme Bank"].Category)
	})
}

func TestUniqueCustomers(t *testing.T) {
	txns := []model.Transaction{
		{CustomerID: "B"}, {CustomerID: "A"}, {CustomerID: "B"}, {CustomerID: "C"},
	}
	assert.Equal(t, []string{"B", "A", "C"}, UniqueCustomers(txns))
	assert.Empty(t, UniqueCustomers(nil))
}
