package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"TickerDesk/internal/resolve"
	"TickerDesk/internal/sampler"
)

// Config holds all application configuration.
type Config struct {
	Resolver struct {
		MaxResults      int     `yaml:"max_results"`
		MinResults      int     `yaml:"min_results"`
		ConfidenceFloor float64 `yaml:"confidence_floor"`
	} `yaml:"resolver"`
	Sampler struct {
		PointCap            int     `yaml:"point_cap"`
		RecentFraction      float64 `yaml:"recent_fraction"`
		TailSize            int     `yaml:"tail_size"`
		MetadataTTLMinutes  int     `yaml:"metadata_ttl_minutes"`
		SeriesTTLMinutes    int     `yaml:"series_ttl_minutes"`
		FetchTimeoutSeconds int     `yaml:"fetch_timeout_seconds"`
		RetryBackoffMillis  int     `yaml:"retry_backoff_millis"`
	} `yaml:"sampler"`
	Catalog struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"catalog"`
	DataSource struct {
		Provider string `yaml:"provider"` // yahoo, rest or mock; empty picks by base_url
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		PurgeCron   string `yaml:"purge_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine: defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.PostgresURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATA_SOURCE_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CATALOG_CSV_PATH"); v != "" {
		cfg.Catalog.CSVPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("POINT_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sampler.PointCap = n
		}
	}

	// Defaults
	if cfg.Resolver.MaxResults == 0 {
		cfg.Resolver.MaxResults = resolve.DefaultMaxResults
	}
	if cfg.Resolver.MinResults == 0 {
		cfg.Resolver.MinResults = resolve.DefaultMinResults
	}
	if cfg.Resolver.ConfidenceFloor == 0 {
		cfg.Resolver.ConfidenceFloor = resolve.DefaultConfidenceFloor
	}
	if cfg.Sampler.PointCap == 0 {
		cfg.Sampler.PointCap = sampler.DefaultCap
	}
	if cfg.Sampler.RecentFraction == 0 {
		cfg.Sampler.RecentFraction = sampler.DefaultRecentFraction
	}
	if cfg.Sampler.TailSize == 0 {
		cfg.Sampler.TailSize = sampler.DefaultTailSize
	}
	if cfg.Sampler.MetadataTTLMinutes == 0 {
		cfg.Sampler.MetadataTTLMinutes = int(sampler.DefaultMetaTTL / time.Minute)
	}
	if cfg.Sampler.SeriesTTLMinutes == 0 {
		cfg.Sampler.SeriesTTLMinutes = int(sampler.DefaultSeriesTTL / time.Minute)
	}
	if cfg.Sampler.FetchTimeoutSeconds == 0 {
		cfg.Sampler.FetchTimeoutSeconds = int(sampler.DefaultFetchTimeout / time.Second)
	}
	if cfg.Sampler.RetryBackoffMillis == 0 {
		cfg.Sampler.RetryBackoffMillis = int(sampler.DefaultRetryBackoff / time.Millisecond)
	}
	if cfg.Database.SQLitePath == "" && cfg.Database.PostgresURL == "" {
		cfg.Database.SQLitePath = "data/tickerdesk.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		// every 15 minutes on weekdays
		cfg.Schedule.RefreshCron = "0 */15 * * * 1-5"
	}
	if cfg.Schedule.PurgeCron == "" {
		cfg.Schedule.PurgeCron = "0 0 * * * *"
	}

	return cfg, nil
}

// Validate checks that all knobs are in range.
func (c *Config) Validate() error {
	if c.Resolver.MaxResults < 1 {
		return fmt.Errorf("resolver.max_results must be >= 1")
	}
	if c.Resolver.MinResults < 1 || c.Resolver.MinResults > c.Resolver.MaxResults {
		return fmt.Errorf("resolver.min_results must be in [1, max_results]")
	}
	if c.Resolver.ConfidenceFloor <= 0 || c.Resolver.ConfidenceFloor >= 1 {
		return fmt.Errorf("resolver.confidence_floor must be in (0, 1)")
	}
	if c.Sampler.PointCap < 10 {
		return fmt.Errorf("sampler.point_cap must be >= 10")
	}
	if c.Sampler.RecentFraction <= 0 || c.Sampler.RecentFraction >= 1 {
		return fmt.Errorf("sampler.recent_fraction must be in (0, 1)")
	}
	if c.Sampler.TailSize < 1 || c.Sampler.TailSize > c.Sampler.PointCap {
		return fmt.Errorf("sampler.tail_size must be in [1, point_cap]")
	}
	if c.Sampler.MetadataTTLMinutes < 1 || c.Sampler.SeriesTTLMinutes < 1 {
		return fmt.Errorf("cache TTLs must be >= 1 minute")
	}
	if c.DataSource.Provider == "rest" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required for the rest provider")
	}
	return nil
}

// ResolverOptions maps config onto resolver knobs.
func (c *Config) ResolverOptions() resolve.Options {
	return resolve.Options{
		MaxResults:      c.Resolver.MaxResults,
		MinResults:      c.Resolver.MinResults,
		ConfidenceFloor: c.Resolver.ConfidenceFloor,
	}
}

// SamplerOptions maps config onto engine knobs.
func (c *Config) SamplerOptions() sampler.Options {
	return sampler.Options{
		Cap:            c.Sampler.PointCap,
		RecentFraction: c.Sampler.RecentFraction,
		TailSize:       c.Sampler.TailSize,
		MetaTTL:        time.Duration(c.Sampler.MetadataTTLMinutes) * time.Minute,
		SeriesTTL:      time.Duration(c.Sampler.SeriesTTLMinutes) * time.Minute,
		FetchTimeout:   time.Duration(c.Sampler.FetchTimeoutSeconds) * time.Second,
		RetryBackoff:   time.Duration(c.Sampler.RetryBackoffMillis) * time.Millisecond,
	}
}
