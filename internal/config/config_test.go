package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Report.OutputDir != "." {
		t.Errorf("Report.OutputDir = %v, want .", cfg.Report.OutputDir)
	}
	if cfg.Report.TopServices != 5 {
		t.Errorf("Report.TopServices = %v, want 5", cfg.Report.TopServices)
	}
	if cfg.Report.Excel || cfg.Report.HTML || cfg.Report.JSON {
		t.Error("optional artifacts should be disabled by default")
	}
	if cfg.Filter.OpenOnly {
		t.Error("Filter.OpenOnly should be false by default")
	}
	if len(cfg.Filter.CriticalServices) != 12 {
		t.Errorf("len(Filter.CriticalServices) = %v, want 12", len(cfg.Filter.CriticalServices))
	}
	if cfg.Preview.ListenAddr != "127.0.0.1" {
		t.Errorf("Preview.ListenAddr = %v, want 127.0.0.1", cfg.Preview.ListenAddr)
	}
	if cfg.Preview.Port != 8743 {
		t.Errorf("Preview.Port = %v, want 8743", cfg.Preview.Port)
	}
	if cfg.Preview.RequestTimeout != 30*time.Second {
		t.Errorf("Preview.RequestTimeout = %v, want 30s", cfg.Preview.RequestTimeout)
	}
	if !cfg.Preview.CORS.Enabled {
		t.Error("Preview.CORS.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Logging.Rotation.Enabled {
		t.Error("Logging.Rotation.Enabled should be false by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func() (string, func())
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name: "valid yaml config",
			setup: func() (string, func()) {
				content := []byte(`
report:
  output_dir: /tmp/reports
  excel: true
  top_services: 10
filter:
  open_only: true
  critical_services:
    - ssh
    - redis
preview:
  port: 9000
logging:
  level: debug
`)
				dir := t.TempDir()
				path := filepath.Join(dir, "config.yaml")
				if err := os.WriteFile(path, content, 0600); err != nil {
					t.Fatal(err)
				}
				return path, func() {
					os.Remove(path)
				}
			},
			check: func(t *testing.T, c *Config) {
				if c.Report.OutputDir != "/tmp/reports" {
					t.Errorf("Report.OutputDir = %v, want /tmp/reports", c.Report.OutputDir)
				}
				if !c.Report.Excel {
					t.Error("Report.Excel should be true")
				}
				if c.Report.TopServices != 10 {
					t.Errorf("Report.TopServices = %v, want 10", c.Report.TopServices)
				}
				if !c.Filter.OpenOnly {
					t.Error("Filter.OpenOnly should be true")
				}
				if len(c.Filter.CriticalServices) != 2 {
					t.Errorf("len(Filter.CriticalServices) = %v, want 2", len(c.Filter.CriticalServices))
				}
				if c.Preview.Port != 9000 {
					t.Errorf("Preview.Port = %v, want 9000", c.Preview.Port)
				}
				if c.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %v, want debug", c.Logging.Level)
				}
			},
			wantErr: false,
		},
		{
			name: "partial config keeps defaults",
			setup: func() (string, func()) {
				content := []byte(`
report:
  html: true
`)
				dir := t.TempDir()
				path := filepath.Join(dir, "config.yaml")
				if err := os.WriteFile(path, content, 0600); err != nil {
					t.Fatal(err)
				}
				return path, func() {
					os.Remove(path)
				}
			},
			check: func(t *testing.T, c *Config) {
				if !c.Report.HTML {
					t.Error("Report.HTML should be true")
				}
				if c.Report.TopServices != 5 {
					t.Errorf("Report.TopServices = %v, want default 5", c.Report.TopServices)
				}
				if c.Preview.Port != 8743 {
					t.Errorf("Preview.Port = %v, want default 8743", c.Preview.Port)
				}
			},
			wantErr: false,
		},
		{
			name: "nonexistent file returns defaults",
			setup: func() (string, func()) {
				return "/nonexistent/config.yaml", func() {}
			},
			check: func(t *testing.T, c *Config) {
				if c.Report.OutputDir != "." {
					t.Errorf("expected defaults, got OutputDir = %v", c.Report.OutputDir)
				}
			},
			wantErr: false,
		},
		{
			name: "invalid yaml syntax",
			setup: func() (string, func()) {
				content := []byte(`
report:
  top_services: [not a number
`)
				dir := t.TempDir()
				path := filepath.Join(dir, "config.yaml")
				if err := os.WriteFile(path, content, 0600); err != nil {
					t.Fatal(err)
				}
				return path, func() {
					os.Remove(path)
				}
			},
			wantErr: true,
		},
		{
			name: "values failing validation",
			setup: func() (string, func()) {
				content := []byte(`
preview:
  port: 99999
`)
				dir := t.TempDir()
				path := filepath.Join(dir, "config.yaml")
				if err := os.WriteFile(path, content, 0600); err != nil {
					t.Fatal(err)
				}
				return path, func() {
					os.Remove(path)
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, cleanup := tt.setup()
			defer cleanup()

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Report.OutputDir = "/srv/reports"
	cfg.Report.JSON = true
	cfg.Filter.OpenOnly = true
	cfg.Preview.Port = 9100

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Report.OutputDir != "/srv/reports" {
		t.Errorf("Report.OutputDir = %v, want /srv/reports", loaded.Report.OutputDir)
	}
	if !loaded.Report.JSON {
		t.Error("Report.JSON should survive the round trip")
	}
	if !loaded.Filter.OpenOnly {
		t.Error("Filter.OpenOnly should survive the round trip")
	}
	if loaded.Preview.Port != 9100 {
		t.Errorf("Preview.Port = %v, want 9100", loaded.Preview.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.Report.OutputDir = "" },
			wantErr: true,
		},
		{
			name:    "zero top services",
			mutate:  func(c *Config) { c.Report.TopServices = 0 },
			wantErr: true,
		},
		{
			name:    "negative top services",
			mutate:  func(c *Config) { c.Report.TopServices = -1 },
			wantErr: true,
		},
		{
			name:    "empty critical service name",
			mutate:  func(c *Config) { c.Filter.CriticalServices = []string{"ssh", ""} },
			wantErr: true,
		},
		{
			name:    "empty critical list is allowed",
			mutate:  func(c *Config) { c.Filter.CriticalServices = nil },
			wantErr: false,
		},
		{
			name:    "preview port too low",
			mutate:  func(c *Config) { c.Preview.Port = 0 },
			wantErr: true,
		},
		{
			name:    "preview port too high",
			mutate:  func(c *Config) { c.Preview.Port = 65536 },
			wantErr: true,
		},
		{
			name:    "empty listen address",
			mutate:  func(c *Config) { c.Preview.ListenAddr = "" },
			wantErr: true,
		},
		{
			name:    "empty preview directory",
			mutate:  func(c *Config) { c.Preview.Directory = "" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetPreviewAddress(t *testing.T) {
	cfg := Default()
	if got := cfg.GetPreviewAddress(); got != "127.0.0.1:8743" {
		t.Errorf("GetPreviewAddress() = %v, want 127.0.0.1:8743", got)
	}

	cfg.Preview.ListenAddr = "0.0.0.0"
	cfg.Preview.Port = 9000
	if got := cfg.GetPreviewAddress(); got != "0.0.0.0:9000" {
		t.Errorf("GetPreviewAddress() = %v, want 0.0.0.0:9000", got)
	}
}

func TestGetLogOutput(t *testing.T) {
	cfg := Default()
	if got := cfg.GetLogOutput(); got != "stderr" {
		t.Errorf("GetLogOutput() = %v, want stderr", got)
	}

	cfg.Logging.Output = "/var/log/nmapreport.log"
	if got := cfg.GetLogOutput(); got != "/var/log/nmapreport.log" {
		t.Errorf("GetLogOutput() = %v, want file path", got)
	}
}
