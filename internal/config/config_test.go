package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Resolver.MaxResults != 10 || cfg.Resolver.MinResults != 5 {
		t.Errorf("resolver defaults = %d/%d, want 10/5", cfg.Resolver.MaxResults, cfg.Resolver.MinResults)
	}
	if cfg.Resolver.ConfidenceFloor != 0.4 {
		t.Errorf("confidence floor = %v, want 0.4", cfg.Resolver.ConfidenceFloor)
	}
	if cfg.Sampler.PointCap != 2000 {
		t.Errorf("point cap = %d, want 2000", cfg.Sampler.PointCap)
	}
	if cfg.Sampler.RecentFraction != 0.2 {
		t.Errorf("recent fraction = %v, want 0.2", cfg.Sampler.RecentFraction)
	}
	if cfg.Sampler.MetadataTTLMinutes != 10 || cfg.Sampler.SeriesTTLMinutes != 60 {
		t.Errorf("TTLs = %d/%d minutes, want 10/60", cfg.Sampler.MetadataTTLMinutes, cfg.Sampler.SeriesTTLMinutes)
	}
	if cfg.Database.SQLitePath == "" {
		t.Error("sqlite path default not applied")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	opts := cfg.SamplerOptions()
	if opts.MetaTTL != 10*time.Minute || opts.SeriesTTL != time.Hour {
		t.Errorf("sampler options TTLs = %v/%v", opts.MetaTTL, opts.SeriesTTL)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
sampler:
  point_cap: 500
  tail_size: 250
database:
  sqlite_path: /tmp/x.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/desk")
	t.Setenv("POINT_CAP", "800")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sampler.PointCap != 800 {
		t.Errorf("env must override file: point cap = %d, want 800", cfg.Sampler.PointCap)
	}
	if cfg.Sampler.TailSize != 250 {
		t.Errorf("tail size = %d, want 250 from file", cfg.Sampler.TailSize)
	}
	if cfg.Database.PostgresURL != "postgres://u:p@localhost:5432/desk" {
		t.Errorf("postgres url = %q", cfg.Database.PostgresURL)
	}
	if cfg.Database.SQLitePath != "/tmp/x.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
}

func TestValidate_Failures(t *testing.T) {
	base := func(t *testing.T) *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"fraction too high", func(c *Config) { c.Sampler.RecentFraction = 1.5 }, "recent_fraction"},
		{"cap too small", func(c *Config) { c.Sampler.PointCap = 5 }, "point_cap"},
		{"tail over cap", func(c *Config) { c.Sampler.TailSize = 99999 }, "tail_size"},
		{"floor out of range", func(c *Config) { c.Resolver.ConfidenceFloor = 1.2 }, "confidence_floor"},
		{"min over max", func(c *Config) { c.Resolver.MinResults = 50 }, "min_results"},
		{"rest without url", func(c *Config) { c.DataSource.Provider = "rest" }, "base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}
