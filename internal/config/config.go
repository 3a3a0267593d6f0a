package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Ingest    IngestConfig    `yaml:"ingest" mapstructure:"ingest"`
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Analytics AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`
	Location  LocationConfig  `yaml:"location" mapstructure:"location"`
	Outreach  OutreachConfig  `yaml:"outreach" mapstructure:"outreach"`
	Brand     BrandConfig     `yaml:"brand" mapstructure:"brand"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// IngestConfig configures loading and cleaning of the sales table.
type IngestConfig struct {
	// DateFormats are Go time layouts tried in order against the date column.
	DateFormats []string `yaml:"date_formats" mapstructure:"date_formats"`
	// Encoding forces a charset for CSV input (e.g. "windows-1252"). Empty means UTF-8/BOM sniffing.
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	// Delimiter overrides the CSV field separator.
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
	// ColumnAliases maps a canonical field to the accepted header spellings.
	ColumnAliases map[string][]string `yaml:"column_aliases" mapstructure:"column_aliases"`
}

// ClassifyConfig configures business classification.
type ClassifyConfig struct {
	TaxonomyPath string `yaml:"taxonomy_path" mapstructure:"taxonomy_path"`
	UseKeywords  bool   `yaml:"use_keywords" mapstructure:"use_keywords"`
}

// AnalyticsConfig holds defaults for the aggregation commands.
type AnalyticsConfig struct {
	TopN   int    `yaml:"top_n" mapstructure:"top_n"`
	Metric string `yaml:"metric" mapstructure:"metric"`
	Period string `yaml:"period" mapstructure:"period"`
}

// LocationConfig holds defaults for location analytics.
type LocationConfig struct {
	RadiusMiles     float64 `yaml:"radius_miles" mapstructure:"radius_miles"`
	Recommendations int     `yaml:"recommendations" mapstructure:"recommendations"`
	TopLocations    int     `yaml:"top_locations" mapstructure:"top_locations"`
}

// OutreachConfig holds defaults for outreach list generation.
type OutreachConfig struct {
	MaxResults      int `yaml:"max_results" mapstructure:"max_results"`
	SimilarProducts int `yaml:"similar_products" mapstructure:"similar_products"`
}

// BrandConfig configures brand matching and regional fit scoring.
type BrandConfig struct {
	MinMatchScore         float64 `yaml:"min_match_score" mapstructure:"min_match_score"`
	OutreachMinMatchScore float64 `yaml:"outreach_min_match_score" mapstructure:"outreach_min_match_score"`
	NoOverlapPenalty      float64 `yaml:"no_overlap_penalty" mapstructure:"no_overlap_penalty"`
	CategoryFitWeight     float64 `yaml:"category_fit_weight" mapstructure:"category_fit_weight"`
	BusinessFitWeight     float64 `yaml:"business_fit_weight" mapstructure:"business_fit_weight"`
	MaxResults            int     `yaml:"max_results" mapstructure:"max_results"`
}

// ExportConfig configures result exports.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the read-only analytics API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultDateFormats mirrors the layouts accepted by the sales loader.
var DefaultDateFormats = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006-1-2 15:04:05",
	"1/2/2006 15:04:05",
}

// DefaultColumnAliases lists accepted header spellings per canonical field.
var DefaultColumnAliases = map[string][]string{
	"customer_id":      {"customer_id", "customer", "client_id", "client"},
	"product_id":       {"product_id", "product", "item_id", "item"},
	"product_category": {"product_category", "category", "product_type"},
	"transaction_date": {"transaction_date", "date", "sale_date", "purchase_date"},
	"sales_amount":     {"sales_amount", "amount", "revenue", "price", "total"},
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SALESMIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ingest.date_formats", DefaultDateFormats)
	v.SetDefault("ingest.encoding", "")
	v.SetDefault("ingest.delimiter", ",")
	v.SetDefault("ingest.column_aliases", DefaultColumnAliases)
	v.SetDefault("classify.taxonomy_path", "")
	v.SetDefault("classify.use_keywords", true)
	v.SetDefault("analytics.top_n", 10)
	v.SetDefault("analytics.metric", "revenue")
	v.SetDefault("analytics.period", "month")
	v.SetDefault("location.radius_miles", 50)
	v.SetDefault("location.recommendations", 10)
	v.SetDefault("location.top_locations", 10)
	v.SetDefault("outreach.max_results", 50)
	v.SetDefault("outreach.similar_products", 3)
	v.SetDefault("brand.min_match_score", 0.5)
	v.SetDefault("brand.outreach_min_match_score", 0.3)
	v.SetDefault("brand.no_overlap_penalty", 10)
	v.SetDefault("brand.category_fit_weight", 0.6)
	v.SetDefault("brand.business_fit_weight", 0.4)
	v.SetDefault("brand.max_results", 50)
	v.SetDefault("export.dir", ".")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []string

	if len(c.Ingest.DateFormats) == 0 {
		errs = append(errs, "ingest.date_formats must not be empty")
	}
	if len([]rune(c.Ingest.Delimiter)) > 1 {
		errs = append(errs, fmt.Sprintf("ingest.delimiter must be a single character, got %q", c.Ingest.Delimiter))
	}
	if c.Analytics.TopN < 0 {
		errs = append(errs, "analytics.top_n must be >= 0")
	}
	switch c.Analytics.Metric {
	case "revenue", "count", "avg_value":
	default:
		errs = append(errs, fmt.Sprintf("analytics.metric must be revenue, count or avg_value, got %q", c.Analytics.Metric))
	}
	if c.Location.Recommendations < 0 {
		errs = append(errs, "location.recommendations must be >= 0")
	}
	if c.Outreach.MaxResults < 0 {
		errs = append(errs, "outreach.max_results must be >= 0")
	}
	if c.Brand.MinMatchScore < 0 || c.Brand.MinMatchScore > 1 {
		errs = append(errs, "brand.min_match_score must be between 0 and 1")
	}
	if c.Brand.OutreachMinMatchScore < 0 || c.Brand.OutreachMinMatchScore > 1 {
		errs = append(errs, "brand.outreach_min_match_score must be between 0 and 1")
	}
	if c.Brand.NoOverlapPenalty < 0 {
		errs = append(errs, "brand.no_overlap_penalty must be >= 0")
	}
	if c.Brand.CategoryFitWeight < 0 || c.Brand.BusinessFitWeight < 0 {
		errs = append(errs, "brand fit weights must be >= 0")
	}
	if sum := c.Brand.CategoryFitWeight + c.Brand.BusinessFitWeight; math.Abs(sum-1) > 0.001 {
		errs = append(errs, fmt.Sprintf("brand fit weights should sum to 1, got %.3f", sum))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 0 and 65535")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
