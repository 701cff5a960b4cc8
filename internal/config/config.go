package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/anstrom/nmapreport/internal/report"
)

// Config represents the complete application configuration
type Config struct {
	// Report generation configuration
	Report ReportConfig `yaml:"report" json:"report"`

	// Record filtering configuration
	Filter FilterConfig `yaml:"filter" json:"filter"`

	// Preview server configuration
	Preview PreviewConfig `yaml:"preview" json:"preview"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ReportConfig holds report output settings
type ReportConfig struct {
	// Directory where artifacts are written
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Write the Excel workbook in addition to CSV
	Excel bool `yaml:"excel" json:"excel"`

	// Write the HTML dashboard in addition to CSV
	HTML bool `yaml:"html" json:"html"`

	// Write the JSON export in addition to CSV
	JSON bool `yaml:"json" json:"json"`

	// Number of services shown in the top-services ranking
	TopServices int `yaml:"top_services" json:"top_services"`
}

// FilterConfig holds record filtering settings
type FilterConfig struct {
	// Keep only records whose state is exactly "open"
	OpenOnly bool `yaml:"open_only" json:"open_only"`

	// Service names counted as security-critical when open
	CriticalServices []string `yaml:"critical_services" json:"critical_services"`
}

// PreviewConfig holds preview server settings
type PreviewConfig struct {
	// Listen address
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`

	// Listen port
	Port int `yaml:"port" json:"port"`

	// Directory served by the preview server
	Directory string `yaml:"directory" json:"directory"`

	// Request timeout
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`

	// CORS settings
	CORS CORSConfig `yaml:"cors" json:"cors"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	// Enable CORS
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Allowed origins
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`

	// Allowed methods
	AllowedMethods []string `yaml:"allowed_methods" json:"allowed_methods"`

	// Allowed headers
	AllowedHeaders []string `yaml:"allowed_headers" json:"allowed_headers"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`

	// Log file rotation
	Rotation RotationConfig `yaml:"rotation" json:"rotation"`

	// Enable request logging for the preview server
	RequestLogging bool `yaml:"request_logging" json:"request_logging"`
}

// RotationConfig holds log rotation settings
type RotationConfig struct {
	// Enable log rotation
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Maximum file size in MB
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb"`

	// Maximum number of backup files
	MaxBackups int `yaml:"max_backups" json:"max_backups"`

	// Maximum age in days
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days"`

	// Compress rotated files
	Compress bool `yaml:"compress" json:"compress"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			OutputDir:   ".",
			Excel:       false,
			HTML:        false,
			JSON:        false,
			TopServices: 5,
		},
		Filter: FilterConfig{
			OpenOnly:         false,
			CriticalServices: report.DefaultCriticalServices(),
		},
		Preview: PreviewConfig{
			ListenAddr: "127.0.0.1",
			Port:       8743,
			Directory:  ".",
			CORS: CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
			},
			RequestTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
			Rotation: RotationConfig{
				Enabled:    false,
				MaxSizeMB:  100,
				MaxBackups: 5,
				MaxAgeDays: 30,
				Compress:   true,
			},
			RequestLogging: true,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	// Start with defaults
	config := Default()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // Return defaults if no config file
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse based on file extension
	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		// Default to YAML
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config (assumed YAML): %w", err)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate report configuration
	if c.Report.OutputDir == "" {
		return fmt.Errorf("report output directory is required")
	}
	if c.Report.TopServices <= 0 {
		return fmt.Errorf("top services count must be positive")
	}

	// Validate filter configuration
	for _, svc := range c.Filter.CriticalServices {
		if svc == "" {
			return fmt.Errorf("critical services must not contain empty names")
		}
	}

	// Validate preview configuration
	if c.Preview.Port <= 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview port must be between 1 and 65535")
	}
	if c.Preview.ListenAddr == "" {
		return fmt.Errorf("preview listen address is required")
	}
	if c.Preview.Directory == "" {
		return fmt.Errorf("preview directory is required")
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// GetPreviewAddress returns the full preview server address
func (c *Config) GetPreviewAddress() string {
	return fmt.Sprintf("%s:%d", c.Preview.ListenAddr, c.Preview.Port)
}

// GetLogOutput returns the log output destination
func (c *Config) GetLogOutput() string {
	return c.Logging.Output
}
