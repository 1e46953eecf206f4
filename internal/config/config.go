// Package config loads process-level settings for the courtextract
// binaries from defaults, COURTEXTRACT_* environment variables and
// command-line flags, in ascending precedence. Engine-level tunables
// (region sizes, validity thresholds) live in extract.Config instead.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultFileTimeout = 30 * time.Second

	DefaultLLMBaseURL = "https://api.deepseek.com"
	DefaultLLMModel   = "deepseek-chat"

	envPrefix = "COURTEXTRACT"
)

// OutputFormatNames lists the supported result serializations.
var OutputFormatNames = []string{"json", "csv", "excel"}

// Config holds all configuration for the courtextract binaries.
type Config struct {
	// Server configuration (MCP binary)
	Mode string // "stdio" or "server"
	Host string
	Port int

	// Extraction pipeline
	InputDirectory  string
	OutputDirectory string
	OutputFormats   []string
	Workers         int // 0 sizes the pool from the CPU count
	FileTimeout     time.Duration
	MaxFileSize     int64 // Maximum PDF file size in bytes

	// Optional LLM analysis stage. The key is never defaulted; it comes
	// from the environment or a flag only.
	LLMEnabled bool
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio, // Default to stdio mode for MCP compatibility
		Host:            DefaultHost,
		Port:            DefaultPort,
		InputDirectory:  currentDir,
		OutputDirectory: currentDir,
		OutputFormats:   append([]string(nil), OutputFormatNames...),
		Workers:         0,
		FileTimeout:     DefaultFileTimeout,
		MaxFileSize:     DefaultMaxFileSize,
		LLMEnabled:      false,
		LLMBaseURL:      DefaultLLMBaseURL,
		LLMModel:        DefaultLLMModel,
		Version:         "1.0.0",
		ServerName:      "courtextract",
		LogLevel:        DefaultLogLevel,
	}
}

// LoadFromFlags parses the batch CLI flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineBatchFlags(cfg)
	defineServerFlags(cfg)
	bindDefinedFlags()
	setupBatchUsage()

	return finishLoad(cfg)
}

// LoadServerFromFlags parses the MCP server flags and returns a
// configuration. Batch-only settings keep their defaults.
func LoadServerFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineServerFlags(cfg)
	bindDefinedFlags()
	setupServerUsage()

	return finishLoad(cfg)
}

func finishLoad(cfg *Config) (*Config, error) {
	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDirectory); err == nil {
			cfg.InputDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and
// defaults. Keys match flag names; dashes map to underscores in env names,
// so --llm-key reads COURTEXTRACT_LLM_KEY.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("input", cfg.InputDirectory)
	viper.SetDefault("output", cfg.OutputDirectory)
	viper.SetDefault("formats", strings.Join(cfg.OutputFormats, ","))
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("file-timeout", cfg.FileTimeout)
	viper.SetDefault("max-file-size", cfg.MaxFileSize)
	viper.SetDefault("log-level", cfg.LogLevel)
	viper.SetDefault("llm", cfg.LLMEnabled)
	viper.SetDefault("llm-url", cfg.LLMBaseURL)
	viper.SetDefault("llm-model", cfg.LLMModel)
	viper.SetDefault("llm-key", "")
}

// defineServerFlags sets up the flags both binaries share.
func defineServerFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for SSE over HTTP")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("input", cfg.InputDirectory, "Directory containing judgment PDF files")
	pflag.Int64("max-file-size", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// defineBatchFlags sets up the flags only the batch CLI understands.
func defineBatchFlags(cfg *Config) {
	pflag.String("output", cfg.OutputDirectory, "Directory for extraction results")
	pflag.String("formats", strings.Join(cfg.OutputFormats, ","), "Output formats, comma separated (json, csv, excel)")
	pflag.Int("workers", cfg.Workers, "Worker pool size (0 = derive from CPU count)")
	pflag.Duration("file-timeout", cfg.FileTimeout, "Per-file extraction timeout")
	pflag.Bool("llm", cfg.LLMEnabled, "Run the LLM analysis stage over extracted records")
	pflag.String("llm-url", cfg.LLMBaseURL, "Base URL of the OpenAI-compatible analysis endpoint")
	pflag.String("llm-model", cfg.LLMModel, "Model name for the analysis endpoint")
	pflag.String("llm-key", "", "API key for the analysis endpoint (prefer COURTEXTRACT_LLM_KEY)")
}

// bindDefinedFlags binds whatever flags were defined to viper configuration
func bindDefinedFlags() {
	pflag.VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})
}

func setupBatchUsage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ncourtextract - Field extraction for Hong Kong court judgment PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --input=/data/judgments                    # extract to the current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=/data/judgments --output=/data/out --formats=json,excel\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=/data/judgments --llm              # with LLM standardization\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_INPUT          Input directory\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_OUTPUT         Output directory\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_FORMATS        Output formats\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_WORKERS        Worker pool size\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_FILE_TIMEOUT   Per-file timeout\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_MAX_FILE_SIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_LOG_LEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_LLM            Enable LLM analysis\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_LLM_URL        Analysis endpoint base URL\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_LLM_MODEL      Analysis model name\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_LLM_KEY        Analysis endpoint API key\n")
	}
}

func setupServerUsage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ncourtextract-mcp - A Model Context Protocol server for judgment field extraction\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                        # stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=/data/judgments                # stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # SSE server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_MODE           Server mode\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_HOST           Server host\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_PORT           Server port\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_INPUT          Input directory\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_MAX_FILE_SIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  COURTEXTRACT_LOG_LEVEL      Log level\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputDirectory = viper.GetString("input")
	cfg.OutputDirectory = viper.GetString("output")
	cfg.OutputFormats = ParseFormats(viper.GetString("formats"))
	cfg.Workers = viper.GetInt("workers")
	cfg.FileTimeout = viper.GetDuration("file-timeout")
	cfg.MaxFileSize = viper.GetInt64("max-file-size")
	cfg.LogLevel = viper.GetString("log-level")
	cfg.LLMEnabled = viper.GetBool("llm")
	cfg.LLMBaseURL = viper.GetString("llm-url")
	cfg.LLMModel = viper.GetString("llm-model")
	cfg.LLMAPIKey = viper.GetString("llm-key")
}

// ParseFormats splits a comma-separated format list, lowercased and trimmed.
func ParseFormats(s string) []string {
	var formats []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			formats = append(formats, part)
		}
	}
	return formats
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.InputDirectory == "" {
		return errors.New("input directory cannot be empty")
	}
	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	if len(c.OutputFormats) == 0 {
		return errors.New("at least one output format is required")
	}
	for _, format := range c.OutputFormats {
		if !isKnownFormat(format) {
			return fmt.Errorf("unsupported output format: %q (must be one of: json, csv, excel)", format)
		}
	}

	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	if c.FileTimeout <= 0 {
		return errors.New("file timeout must be positive")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.LLMEnabled && strings.TrimSpace(c.LLMAPIKey) == "" {
		return errors.New("LLM analysis requires an API key (set COURTEXTRACT_LLM_KEY)")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func isKnownFormat(format string) bool {
	for _, known := range OutputFormatNames {
		if format == known {
			return true
		}
	}
	return false
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// SlogLevel maps the configured log level onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String returns a string representation of the configuration. The LLM API
// key is deliberately left out.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, InputDirectory: %s, OutputDirectory: %s, Formats: %s, Workers: %d, LogLevel: %s, MaxFileSize: %d, LLM: %t}",
		c.Mode, c.Host, c.Port, c.InputDirectory, c.OutputDirectory,
		strings.Join(c.OutputFormats, ","), c.Workers, c.LogLevel, c.MaxFileSize, c.LLMEnabled)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
