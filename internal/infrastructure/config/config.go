// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} expansion
//  2. Environment variables (fallback)
//
// Values not present in the file keep their defaults, so a config file only
// needs the settings it changes.
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	outDir := cfg.Output.Dir
//	schedule := cfg.Depreciation
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
)

// Config represents the entire application configuration
type Config struct {
	Sources       []SourceConfig        `yaml:"sources" validate:"dive"`
	Pricing       PricingConfig         `yaml:"pricing"`
	Depreciation  depreciation.Schedule `yaml:"depreciation"`
	Allocation    allocator.Config      `yaml:"allocation"`
	Output        OutputConfig          `yaml:"output"`
	Storage       StorageConfig         `yaml:"storage"`
	GoogleSheets  GoogleSheetsConfig    `yaml:"google_sheets"`
	Server        ServerConfig          `yaml:"server"`
	Observability ObservabilityConfig   `yaml:"observability"`
}

// SourceConfig describes one inventory sheet
type SourceConfig struct {
	Name string `yaml:"name"`
	// Kind selects the column layout: laptop, pc, monitor, printer or server
	Kind   string `yaml:"kind" validate:"required,oneof=laptop pc monitor printer server"`
	Format string `yaml:"format" validate:"omitempty,oneof=xlsx csv gsheet"`
	Path   string `yaml:"path" validate:"required_unless=Format gsheet"`
	// Sheet is the worksheet name inside an xlsx workbook; empty means the first sheet
	Sheet         string `yaml:"sheet"`
	SpreadsheetID string `yaml:"spreadsheet_id" validate:"required_if=Format gsheet"`
	Range         string `yaml:"range"`
}

// DisplayName is Name, or a name derived from the path or spreadsheet
func (s SourceConfig) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Path != "":
		return strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
	default:
		return s.Kind
	}
}

// ResolvedFormat is Format, or one inferred from the path extension
func (s SourceConfig) ResolvedFormat() string {
	if s.Format != "" {
		return s.Format
	}
	if strings.EqualFold(filepath.Ext(s.Path), ".csv") {
		return "csv"
	}
	return "xlsx"
}

// PricingConfig points at an external price table
type PricingConfig struct {
	// TablePath overrides the built-in price table when set
	TablePath string `yaml:"table_path"`
}

// OutputConfig controls report generation
type OutputConfig struct {
	Dir      string   `yaml:"dir" validate:"required"`
	Formats  []string `yaml:"formats" validate:"dive,oneof=html json xlsx"`
	Title    string   `yaml:"title"`
	Currency string   `yaml:"currency"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	// DatabasePath enables the run ledger when set
	DatabasePath string `yaml:"database_path"`
}

// GoogleSheetsConfig holds credentials for gsheet sources
type GoogleSheetsConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	CredentialsJSON string `yaml:"credentials_json"`
}

// ServerConfig holds settings for the report browser
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gte=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Depreciation: depreciation.DefaultSchedule(),
		Allocation:   allocator.DefaultConfig(),
		Output: OutputConfig{
			Dir:      "output",
			Formats:  []string{"html", "json", "xlsx"},
			Title:    "Asset Distribution Report",
			Currency: "BDT",
		},
		Server: ServerConfig{
			Port:           8085,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

// DefaultSources lists the five inventory workbooks expected in dataDir
func DefaultSources(dataDir string) []SourceConfig {
	return []SourceConfig{
		{Name: "Laptop", Kind: "laptop", Path: filepath.Join(dataDir, "Laptop.xlsx")},
		{Name: "PC", Kind: "pc", Path: filepath.Join(dataDir, "PC.xlsx")},
		{Name: "Monitor", Kind: "monitor", Path: filepath.Join(dataDir, "Monitor.xlsx")},
		{Name: "Printer Scaneer", Kind: "printer", Path: filepath.Join(dataDir, "Printer Scaneer.xlsx")},
		{Name: "Server", Kind: "server", Path: filepath.Join(dataDir, "Server.xlsx")},
	}
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${GOOGLE_SHEETS_ID})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources(filepath.Dir(path))
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := Default()
	cfg.Sources = DefaultSources(getEnv("ASSET_DIVIDER_DATA_DIR", "."))
	cfg.Pricing.TablePath = os.Getenv("ASSET_DIVIDER_PRICE_TABLE")
	cfg.Output.Dir = getEnv("ASSET_DIVIDER_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Storage.DatabasePath = os.Getenv("ASSET_DIVIDER_DB_PATH")
	cfg.GoogleSheets.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	cfg.Server.Port = getEnvInt("ASSET_DIVIDER_PORT", cfg.Server.Port)
	cfg.Observability.Logging = LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
	}
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnv_WithPath("config.yaml")
}

// LoadOrEnv_WithPath tries to load from specified path, falls back to environment variables
func LoadOrEnv_WithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// Validate checks the configuration for values that would break a run
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s (%s)", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
