// ABOUTME: Configuration loading and parsing for the helpline client
// ABOUTME: Supports YAML files with environment variable expansion, duration parsing, and defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2389/helpline/internal/assistant"
)

// Default values applied when a key is absent.
const (
	DefaultAPITimeout       = 15 * time.Second
	DefaultAssistantTimeout = 30 * time.Second
	DefaultMinDelay         = 700 * time.Millisecond
	DefaultMaxDelay         = 2200 * time.Millisecond
	DefaultPerChar          = 18 * time.Millisecond
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the complete client configuration
type Config struct {
	API       APIConfig       `yaml:"api"`
	Assistant AssistantConfig `yaml:"assistant"`
	Storage   StorageConfig   `yaml:"storage"`
	Chat      ChatConfig      `yaml:"chat"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig holds the REST backend settings
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"-"`

	TimeoutRaw string `yaml:"timeout"`
}

// AssistantConfig holds the remote assistant settings.
// An empty BaseURL falls back to api.base_url.
type AssistantConfig struct {
	BaseURL string        `yaml:"base_url"`
	Mode    string        `yaml:"mode"`
	Timeout time.Duration `yaml:"-"`

	TimeoutRaw string `yaml:"timeout"`
}

// StorageConfig holds local state settings
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ChatConfig holds reply pacing
type ChatConfig struct {
	MinDelay time.Duration `yaml:"-"`
	MaxDelay time.Duration `yaml:"-"`
	PerChar  time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	MinDelayRaw string `yaml:"min_delay"`
	MaxDelayRaw string `yaml:"max_delay"`
	PerCharRaw  string `yaml:"per_char"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config with every default applied and env overrides
// read. It does not touch the filesystem.
func Default() *Config {
	var cfg Config
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config content, then applies env overrides, defaults,
// and validation.
func Parse(data []byte) (*Config, error) {
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyEnv lets HELPLINE_* variables override the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIBase); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvAssistantBase); v != "" {
		cfg.Assistant.BaseURL = v
	}
}

func applyDefaults(cfg *Config) {
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultAPITimeout
	}

	cfg.Assistant.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Assistant.BaseURL), "/")
	if cfg.Assistant.BaseURL == "" {
		cfg.Assistant.BaseURL = cfg.API.BaseURL
	}
	if cfg.Assistant.Mode == "" {
		cfg.Assistant.Mode = string(assistant.ModeDirect)
	}
	if cfg.Assistant.Timeout == 0 {
		cfg.Assistant.Timeout = DefaultAssistantTimeout
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath()
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)

	if cfg.Chat.MinDelay == 0 {
		cfg.Chat.MinDelay = DefaultMinDelay
	}
	if cfg.Chat.MaxDelay == 0 {
		cfg.Chat.MaxDelay = DefaultMaxDelay
	}
	if cfg.Chat.PerChar == 0 {
		cfg.Chat.PerChar = DefaultPerChar
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}

// Validate checks that all configuration fields are valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if _, err := assistant.ParseMode(c.Assistant.Mode); err != nil {
		return fmt.Errorf("%w: assistant.mode: %v", ErrInvalid, err)
	}

	if c.Chat.MinDelay < 0 || c.Chat.MaxDelay < 0 || c.Chat.PerChar < 0 {
		return fmt.Errorf("%w: chat delays must not be negative", ErrInvalid)
	}
	if c.Chat.MinDelay > c.Chat.MaxDelay {
		return fmt.Errorf("%w: chat.min_delay %v exceeds chat.max_delay %v", ErrInvalid, c.Chat.MinDelay, c.Chat.MaxDelay)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q (want debug, info, warn, or error)", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want text or json)", ErrInvalid, c.Logging.Format)
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required", ErrInvalid)
	}

	return nil
}

// AssistantMode returns the parsed assistant mode.
func (c *Config) AssistantMode() assistant.Mode {
	mode, err := assistant.ParseMode(c.Assistant.Mode)
	if err != nil {
		return assistant.ModeDirect
	}
	return mode
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"api.timeout", cfg.API.TimeoutRaw, &cfg.API.Timeout},
		{"assistant.timeout", cfg.Assistant.TimeoutRaw, &cfg.Assistant.Timeout},
		{"chat.min_delay", cfg.Chat.MinDelayRaw, &cfg.Chat.MinDelay},
		{"chat.max_delay", cfg.Chat.MaxDelayRaw, &cfg.Chat.MaxDelay},
		{"chat.per_char", cfg.Chat.PerCharRaw, &cfg.Chat.PerChar},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = d
	}
	return nil
}
