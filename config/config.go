package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tracker configuration.
type Config struct {
	Symbols  []SymbolConfig `json:"symbols" yaml:"symbols"`
	Quotes   QuotesConfig   `json:"quotes" yaml:"quotes"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Chart    ChartConfig    `json:"chart" yaml:"chart"`
}

// SymbolConfig is one tracked symbol and its chart color.
type SymbolConfig struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Color  string `json:"color" yaml:"color"`
}

// QuotesConfig contains quote API parameters. The API key belongs in the
// environment, not in source.
type QuotesConfig struct {
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
}

// DatabaseConfig contains trade log storage parameters.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ChartConfig contains chart output parameters.
type ChartConfig struct {
	OutputDir     string `json:"output_dir" yaml:"output_dir"`
	DefaultPeriod string `json:"default_period" yaml:"default_period"`
}

// LoadFromFile loads configuration from a file (YAML or JSON), then applies
// environment variable overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.Quotes.APIKey = v
	}
	if v := os.Getenv("ETFGRAPH_BASE_URL"); v != "" {
		c.Quotes.BaseURL = v
	}
	if v := os.Getenv("ETFGRAPH_DB"); v != "" {
		c.Database.Path = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}
	for i, s := range c.Symbols {
		if s.Symbol == "" {
			return fmt.Errorf("symbols[%d].symbol is required", i)
		}
		if s.Color == "" {
			return fmt.Errorf("symbols[%d].color is required", i)
		}
	}
	if c.Quotes.APIKey == "" {
		return fmt.Errorf("quotes.api_key is required (or set ALPHAVANTAGE_API_KEY)")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Chart.OutputDir == "" {
		return fmt.Errorf("chart.output_dir is required")
	}
	switch c.Chart.DefaultPeriod {
	case "1m", "3m", "1y", "3y", "5y":
	default:
		return fmt.Errorf("chart.default_period must be one of 1m, 3m, 1y, 3y, 5y")
	}
	return nil
}

// Symbol returns the config entry for a symbol, matching case-insensitively.
func (c *Config) Symbol(symbol string) (SymbolConfig, bool) {
	for _, s := range c.Symbols {
		if strings.EqualFold(s.Symbol, symbol) {
			return s, true
		}
	}
	return SymbolConfig{}, false
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Symbols: []SymbolConfig{
			{Symbol: "GLD", Color: "gold"},
			{Symbol: "SPXL", Color: "red"},
		},
		Quotes: QuotesConfig{
			CacheDir: "./cache",
		},
		Database: DatabaseConfig{
			Path: "./etfgraph.sqlite",
		},
		Chart: ChartConfig{
			OutputDir:     "./charts",
			DefaultPeriod: "1m",
		},
	}
}
