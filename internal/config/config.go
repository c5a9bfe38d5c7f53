package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatasetConfig locates the ball-by-ball CSV source
type DatasetConfig struct {
	CSVPath string `yaml:"csv_path" envconfig:"CSV_PATH" default:"data/deliveries.csv"`
}

// BaselineMode selects the population used as the denominator for
// effective metrics (eSR, eControl, eAerial).
type BaselineMode string

const (
	// BaselineMatch compares a batter against all batters in the same
	// fixtures the batter appears in under the current filters.
	BaselineMatch BaselineMode = "match"
	// BaselineGlobal compares against the whole filtered table.
	BaselineGlobal BaselineMode = "global"
)

// AnalysisConfig contains metric computation configuration
type AnalysisConfig struct {
	Baseline          BaselineMode `yaml:"baseline" envconfig:"BASELINE" default:"match"`
	DefaultWindow     int          `yaml:"default_window" envconfig:"DEFAULT_WINDOW" default:"10"`
	MaxWindow         int          `yaml:"max_window" envconfig:"MAX_WINDOW" default:"120"`
	RatePrecision     int          `yaml:"rate_precision" envconfig:"RATE_PRECISION" default:"2"`
	MagnitudeCapMetre float64      `yaml:"magnitude_cap_metre" envconfig:"MAGNITUDE_CAP_METRE" default:"167"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ExportConfig contains report export configuration
type ExportConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"reports"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Environment variables take precedence over file values
	if err := envconfig.Process("T20", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Dataset.CSVPath == "" {
		envConfig.Dataset.CSVPath = fileConfig.Dataset.CSVPath
	}
	if envConfig.Analysis.Baseline == "" {
		envConfig.Analysis.Baseline = fileConfig.Analysis.Baseline
	}
	if envConfig.Analysis.DefaultWindow == 0 {
		envConfig.Analysis.DefaultWindow = fileConfig.Analysis.DefaultWindow
	}
	if envConfig.Export.Dir == "" {
		envConfig.Export.Dir = fileConfig.Export.Dir
	}

	return envConfig
}

// GetCSVPath returns the dataset path resolved against the working directory
func (c *Config) GetCSVPath() string {
	if filepath.IsAbs(c.Dataset.CSVPath) {
		return c.Dataset.CSVPath
	}
	wd, err := os.Getwd()
	if err != nil {
		return c.Dataset.CSVPath
	}
	return filepath.Join(wd, c.Dataset.CSVPath)
}

// GetExportDir returns the export directory resolved against the working directory
func (c *Config) GetExportDir() string {
	if filepath.IsAbs(c.Export.Dir) {
		return c.Export.Dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return c.Export.Dir
	}
	return filepath.Join(wd, c.Export.Dir)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Dataset.CSVPath == "" {
		return fmt.Errorf("dataset csv_path must be set")
	}

	switch c.Analysis.Baseline {
	case BaselineMatch, BaselineGlobal:
	default:
		return fmt.Errorf("invalid baseline mode: %q", c.Analysis.Baseline)
	}

	if c.Analysis.DefaultWindow <= 0 {
		return fmt.Errorf("default rolling window must be positive")
	}

	if c.Analysis.MaxWindow < c.Analysis.DefaultWindow {
		return fmt.Errorf("max rolling window %d below default %d", c.Analysis.MaxWindow, c.Analysis.DefaultWindow)
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			CSVPath: "data/deliveries.csv",
		},
		Analysis: AnalysisConfig{
			Baseline:          BaselineMatch,
			DefaultWindow:     10,
			MaxWindow:         120,
			RatePrecision:     2,
			MagnitudeCapMetre: 167,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Export: ExportConfig{
			Dir: "reports",
		},
	}
}
