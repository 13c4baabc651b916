package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// AnalysisConfig contains the knobs consumed by the pipeline core.
type AnalysisConfig struct {
	// FiscalStartMonth is the first month of the fiscal year (1-12).
	FiscalStartMonth int `yaml:"fiscal_start_month" envconfig:"FISCAL_START_MONTH" validate:"min=1,max=12"`
	// BufferMonths widens the inferred calendar range on both sides.
	BufferMonths int `yaml:"buffer_months" envconfig:"BUFFER_MONTHS" validate:"min=0"`
	// CurrentYear pins the comparison year; 0 means infer from the data.
	CurrentYear int `yaml:"current_year" envconfig:"CURRENT_YEAR" validate:"min=0"`
	// DateColumn is the fact column used for year-over-year comparison.
	DateColumn string `yaml:"date_column" envconfig:"DATE_COLUMN" validate:"required"`
	// TopN limits dimension aggregates at the consumer edge; 0 means all.
	TopN int `yaml:"top_n" envconfig:"TOP_N" validate:"min=0"`
	// Ascending orders consumer-side aggregate views by ascending sales.
	Ascending bool `yaml:"ascending" envconfig:"ASCENDING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ServerConfig contains the dashboard API server configuration
type ServerConfig struct {
	Port      int     `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	RateLimit float64 `yaml:"rate_limit" envconfig:"RATE_LIMIT" validate:"min=0"`
	RateBurst int     `yaml:"rate_burst" envconfig:"RATE_BURST" validate:"min=0"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load loads configuration from environment variables and config file.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("SALESDASH", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration defaults without consulting the
// environment or any file.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			FiscalStartMonth: 4,
			BufferMonths:     1,
			DateColumn:       "OrderDate",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/salesdash.log",
		},
		Server: ServerConfig{
			Port:      8080,
			RateLimit: 100,
			RateBurst: 50,
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// loadFromFile loads configuration from a YAML file over the defaults
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the config file location, overridable via env
func getConfigFilePath() string {
	if path := os.Getenv("SALESDASH_CONFIG"); path != "" {
		return path
	}
	return "salesdash.yaml"
}

// LogPath resolves a log file name inside the configured logs directory.
func (c *Config) LogPath(name string) string {
	return filepath.Join(c.Paths.LogsDir, name)
}

// ReportPath resolves an artifact name inside the reports directory.
func (c *Config) ReportPath(name string) string {
	return filepath.Join(c.Paths.ReportsDir, name)
}

// EnsureDirectories creates the configured directories when absent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
