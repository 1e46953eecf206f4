package config

import (
	"log/slog"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "courtextract" {
		t.Errorf("Expected default server name to be 'courtextract', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	if cfg.FileTimeout != 30*time.Second {
		t.Errorf("Expected default file timeout to be 30s, got %v", cfg.FileTimeout)
	}

	if !reflect.DeepEqual(cfg.OutputFormats, []string{"json", "csv", "excel"}) {
		t.Errorf("Expected all output formats by default, got %v", cfg.OutputFormats)
	}

	if cfg.LLMEnabled {
		t.Error("Expected LLM analysis to be disabled by default")
	}

	if cfg.LLMBaseURL != "https://api.deepseek.com" {
		t.Errorf("Expected default LLM base URL, got '%s'", cfg.LLMBaseURL)
	}

	if cfg.LLMAPIKey != "" {
		t.Error("Expected no default LLM API key")
	}

	// Input and output directories default to the current working directory
	currentDir, _ := os.Getwd()
	if cfg.InputDirectory != currentDir {
		t.Errorf("Expected default input directory to be '%s', got '%s'", currentDir, cfg.InputDirectory)
	}
	if cfg.OutputDirectory != currentDir {
		t.Errorf("Expected default output directory to be '%s', got '%s'", currentDir, cfg.OutputDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mode:            "stdio",
			Host:            "127.0.0.1",
			Port:            8080,
			InputDirectory:  "/data/judgments",
			OutputDirectory: "/data/out",
			OutputFormats:   []string{"json", "csv"},
			Workers:         0,
			FileTimeout:     30 * time.Second,
			MaxFileSize:     1024,
			LLMBaseURL:      DefaultLLMBaseURL,
			LLMModel:        DefaultLLMModel,
			LogLevel:        "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config - stdio mode",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid config - server mode",
			mutate: func(c *Config) { c.Mode = "server" },
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Mode = "invalid" },
			wantErr: "mode must be either",
		},
		{
			name:    "invalid port - too low (server mode)",
			mutate:  func(c *Config) { c.Mode = "server"; c.Port = 0 },
			wantErr: "port must be between",
		},
		{
			name:    "invalid port - too high (server mode)",
			mutate:  func(c *Config) { c.Mode = "server"; c.Port = 70000 },
			wantErr: "port must be between",
		},
		{
			name:   "invalid port ignored in stdio mode",
			mutate: func(c *Config) { c.Port = 0 },
		},
		{
			name:    "empty input directory",
			mutate:  func(c *Config) { c.InputDirectory = "" },
			wantErr: "input directory cannot be empty",
		},
		{
			name:    "empty output directory",
			mutate:  func(c *Config) { c.OutputDirectory = "" },
			wantErr: "output directory cannot be empty",
		},
		{
			name:    "no output formats",
			mutate:  func(c *Config) { c.OutputFormats = nil },
			wantErr: "at least one output format",
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.OutputFormats = []string{"json", "yaml"} },
			wantErr: "unsupported output format",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: "workers cannot be negative",
		},
		{
			name:    "zero file timeout",
			mutate:  func(c *Config) { c.FileTimeout = 0 },
			wantErr: "file timeout must be positive",
		},
		{
			name:    "invalid max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: "maximum file size must be positive",
		},
		{
			name:    "LLM enabled without key",
			mutate:  func(c *Config) { c.LLMEnabled = true },
			wantErr: "requires an API key",
		},
		{
			name:   "LLM enabled with key",
			mutate: func(c *Config) { c.LLMEnabled = true; c.LLMAPIKey = "sk-test" },
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Config.Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Config.Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Config.Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{
		Host: "192.168.1.1",
		Port: 9090,
	}

	expected := "192.168.1.1:9090"
	if got := cfg.Address(); got != expected {
		t.Errorf("Config.Address() = %v, want %v", got, expected)
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     bool
	}{
		{
			name:     "debug level",
			logLevel: "debug",
			want:     true,
		},
		{
			name:     "info level",
			logLevel: "info",
			want:     false,
		},
		{
			name:     "warn level",
			logLevel: "warn",
			want:     false,
		},
		{
			name:     "error level",
			logLevel: "error",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigSlogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		want     slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.logLevel}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("Config.SlogLevel() for %q = %v, want %v", tt.logLevel, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:            "server",
		Host:            "localhost",
		Port:            8080,
		InputDirectory:  "/home/user/judgments",
		OutputDirectory: "/home/user/out",
		OutputFormats:   []string{"json", "excel"},
		Workers:         4,
		LogLevel:        "debug",
		MaxFileSize:     1024,
		LLMEnabled:      true,
		LLMAPIKey:       "sk-secret-value",
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: server",
		"Host: localhost",
		"Port: 8080",
		"InputDirectory: /home/user/judgments",
		"OutputDirectory: /home/user/out",
		"Formats: json,excel",
		"Workers: 4",
		"LogLevel: debug",
		"MaxFileSize: 1024",
		"LLM: true",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}

	// The API key must never be printed.
	if strings.Contains(result, "sk-secret-value") {
		t.Errorf("Config.String() leaked the API key: %s", result)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"json,csv,excel", []string{"json", "csv", "excel"}},
		{"JSON, Excel", []string{"json", "excel"}},
		{"json,,csv", []string{"json", "csv"}},
		{"  ", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParseFormats(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfigIsServerMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{
			name: "server mode",
			mode: "server",
			want: true,
		},
		{
			name: "stdio mode",
			mode: "stdio",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsServerMode(); got != tt.want {
				t.Errorf("Config.IsServerMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigIsStdioMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{
			name: "stdio mode",
			mode: "stdio",
			want: true,
		},
		{
			name: "server mode",
			mode: "server",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsStdioMode(); got != tt.want {
				t.Errorf("Config.IsStdioMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
