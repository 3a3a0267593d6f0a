package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultDateFormats, cfg.Ingest.DateFormats)
	assert.Equal(t, ",", cfg.Ingest.Delimiter)
	assert.Equal(t, []string{"customer_id", "customer", "client_id", "client"}, cfg.Ingest.ColumnAliases["customer_id"])
	assert.True(t, cfg.Classify.UseKeywords)
	assert.Equal(t, 10, cfg.Analytics.TopN)
	assert.Equal(t, "revenue", cfg.Analytics.Metric)
	assert.Equal(t, "month", cfg.Analytics.Period)
	assert.InDelta(t, 50, cfg.Location.RadiusMiles, 0.001)
	assert.Equal(t, 10, cfg.Location.Recommendations)
	assert.Equal(t, 50, cfg.Outreach.MaxResults)
	assert.Equal(t, 3, cfg.Outreach.SimilarProducts)
	assert.InDelta(t, 0.5, cfg.Brand.MinMatchScore, 0.001)
	assert.InDelta(t, 0.3, cfg.Brand.OutreachMinMatchScore, 0.001)
	assert.InDelta(t, 10, cfg.Brand.NoOverlapPenalty, 0.001)
	assert.InDelta(t, 0.6, cfg.Brand.CategoryFitWeight, 0.001)
	assert.InDelta(t, 0.4, cfg.Brand.BusinessFitWeight, 0.001)
	assert.Equal(t, 8080, cfg.Server.Port)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
analytics:
  top_n: 25
  metric: count
brand:
  no_overlap_penalty: 5
classify:
  taxonomy_path: taxonomy.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 25, cfg.Analytics.TopN)
	assert.Equal(t, "count", cfg.Analytics.Metric)
	assert.InDelta(t, 5, cfg.Brand.NoOverlapPenalty, 0.001)
	assert.Equal(t, "taxonomy.yaml", cfg.Classify.TaxonomyPath)
	// Defaults still apply for unset values
	assert.Equal(t, "month", cfg.Analytics.Period)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
analytics:
  period: week
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SALESMIX_LOG_LEVEL", "warn")
	t.Setenv("SALESMIX_ANALYTICS_PERIOD", "quarter")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "quarter", cfg.Analytics.Period)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SALESMIX_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Ingest.DateFormats = DefaultDateFormats
	cfg.Ingest.Delimiter = ","
	cfg.Analytics.TopN = 10
	cfg.Analytics.Metric = "revenue"
	cfg.Location.Recommendations = 10
	cfg.Outreach.MaxResults = 50
	cfg.Brand.MinMatchScore = 0.5
	cfg.Brand.OutreachMinMatchScore = 0.3
	cfg.Brand.NoOverlapPenalty = 10
	cfg.Brand.CategoryFitWeight = 0.6
	cfg.Brand.BusinessFitWeight = 0.4
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "empty date formats",
			mutate:  func(c *Config) { c.Ingest.DateFormats = nil },
			wantErr: "ingest.date_formats must not be empty",
		},
		{
			name:    "multi-char delimiter",
			mutate:  func(c *Config) { c.Ingest.Delimiter = ";;" },
			wantErr: "ingest.delimiter must be a single character",
		},
		{
			name:    "unknown metric",
			mutate:  func(c *Config) { c.Analytics.Metric = "margin" },
			wantErr: "analytics.metric must be revenue, count or avg_value",
		},
		{
			name:    "match score out of range",
			mutate:  func(c *Config) { c.Brand.MinMatchScore = 1.5 },
			wantErr: "brand.min_match_score must be between 0 and 1",
		},
		{
			name:    "negative penalty",
			mutate:  func(c *Config) { c.Brand.NoOverlapPenalty = -1 },
			wantErr: "brand.no_overlap_penalty must be >= 0",
		},
		{
			name: "fit weights do not sum to one",
			mutate: func(c *Config) {
				c.Brand.CategoryFitWeight = 0.7
				c.Brand.BusinessFitWeight = 0.7
			},
			wantErr: "brand fit weights should sum to 1",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be between 0 and 65535",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validDefaults()
	cfg.Analytics.TopN = -1
	cfg.Outreach.MaxResults = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analytics.top_n must be >= 0")
	assert.Contains(t, err.Error(), "outreach.max_results must be >= 0")
}
