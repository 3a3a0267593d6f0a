package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSales = `customer_id,product_id,product_category,transaction_date,sales_amount,city,state
C1,P1,Gifts,2024-01-05,100,Denver,CO
C1,P2,Cards,2024-01-06,50,Denver,CO
C2,P1,Gifts,2024-02-10,200,Boulder,CO
C3,P3,Flowers,2024-02-11,80,Austin,TX
C4,P1,Gifts,2024-02-12,-5,Austin,TX
`

const testMapping = `customer,business_category
C1,Retail
C2,Retail
C3,Florist
`

const testCatalog = `product_id,product_name,product_category
B1,Birthday Card,Cards
B2,Thank You Card,Cards
B3,Rose Bouquet,Flowers
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetFlags restores every flag in the command tree to its default so
// executions do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func fixtures(t *testing.T) (dir, sales, mapping string) {
	t.Helper()
	dir = t.TempDir()
	return dir, writeFixture(t, dir, "sales.csv", testSales), writeFixture(t, dir, "businesses.csv", testMapping)
}

func TestSummaryCommand(t *testing.T) {
	dir, sales, mapping := fixtures(t)
	out := filepath.Join(dir, "summary.json")

	require.NoError(t, execute(t, "summary", "--sales", sales, "--mapping", mapping, "--format", "json", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "430", body["total_revenue"])
	assert.EqualValues(t, 4, body["total_transactions"])
	assert.EqualValues(t, 2, body["unique_business_categories"])
}

func TestSummaryCommandRequiresSales(t *testing.T) {
	err := execute(t, "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--sales is required")
}

func TestTopCommandCSVWithFilter(t *testing.T) {
	dir, sales, mapping := fixtures(t)
	out := filepath.Join(dir, "top.csv")

	require.NoError(t, execute(t, "top", "--sales", sales, "--mapping", mapping,
		"--business-category", "Retail", "--format", "csv", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "business_category,product_category,total_revenue,avg_value,transaction_count", lines[0])
	assert.Equal(t, "Retail,Gifts,300,150,2", lines[1])
	assert.Equal(t, "Retail,Cards,50,50,1", lines[2])
}

func TestMatrixCommandCSV(t *testing.T) {
	dir, sales, mapping := fixtures(t)
	out := filepath.Join(dir, "matrix.csv")

	require.NoError(t, execute(t, "matrix", "--sales", sales, "--mapping", mapping, "--format", "csv", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"business_category,Cards,Flowers,Gifts\nFlorist,0.00,80.00,0.00\nRetail,50.00,0.00,300.00\n",
		string(data))
}

func TestOutreachCommandMessages(t *testing.T) {
	dir, sales, mapping := fixtures(t)
	out := filepath.Join(dir, "emails.txt")

	require.NoError(t, execute(t, "outreach", "--sales", sales, "--mapping", mapping,
		"--business", "Retail", "--product", "Cards", "--format", "messages", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "Subject: Product Recommendation for C2"))
	assert.NotContains(t, text, "for C1")
}

func TestBrandCatalogCommand(t *testing.T) {
	dir, sales, mapping := fixtures(t)
	catalog := writeFixture(t, dir, "catalog.csv", testCatalog)
	out := filepath.Join(dir, "catalog.json")

	require.NoError(t, execute(t, "brand", "catalog", "--catalog", catalog, "--sales", sales, "--mapping", mapping,
		"--format", "json", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.NotEmpty(t, rows)

	seen := make(map[string]bool)
	for _, r := range rows {
		id, _ := r["customer_id"].(string)
		assert.False(t, seen[id], "customer %s listed twice", id)
		seen[id] = true
	}
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	sales := writeFixture(t, dir, "sales.csv", `customer_id,product_id,product_category,transaction_date,sales_amount
Joe's Cafe,P1,Coffee,2024-01-05,10
Acme Bank,P2,Paper,2024-01-05,20
C3,P3,Cards,2024-01-05,30
`)
	mapping := writeFixture(t, dir, "map.csv", "customer,business_category\nC3,Florist\n")
	out := filepath.Join(dir, "classified.csv")

	require.NoError(t, execute(t, "classify", "--sales", sales, "--mapping", mapping, "--format", "csv", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"customer_id,business_category,business_sub_category,source",
		"Joe's Cafe,Food & Beverage,,keyword",
		"Acme Bank,Finance,,keyword",
		"C3,Florist,,file",
	}, "\n")+"\n", string(data))
}

func TestReportCommand(t *testing.T) {
	dir, sales, mapping := fixtures(t)
	outDir := filepath.Join(dir, "report")

	require.NoError(t, execute(t, "report", "--sales", sales, "--mapping", mapping, "--dir", outDir, "--concurrency", "2"))

	for _, name := range []string{
		"summary.json", "category_matrix.csv", "sub_category_matrix.csv", "transaction_count_matrix.csv",
		"matrices.xlsx", "top_combinations.csv", "opportunities.csv", "trends.csv",
		"location_insights.json", "regional_preferences.csv",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestTaxonomyInit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, execute(t, "taxonomy", "--init", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Retail")
}
