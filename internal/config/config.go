package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Answer   AnswerConfig   `toml:"answer"`
	History  HistoryConfig  `toml:"history"`
	Logging  LoggingConfig  `toml:"logging"`
	Server   ServerConfig   `toml:"server"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type AnswerConfig struct {
	Endpoint        string `toml:"endpoint"`
	Model           string `toml:"model"`
	APIKeyEnv       string `toml:"api_key_env"`
	FetchTimeoutSec int    `toml:"fetch_timeout_seconds"`
	ModelTimeoutSec int    `toml:"model_timeout_seconds"`
	MaxContentChars int    `toml:"max_content_chars"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"`
}

type LoggingConfig struct {
	Level   string `toml:"level"`
	DevFile string `toml:"dev_file"`
}

type ServerConfig struct {
	Bind        string `toml:"bind"`
	APIEndpoint string `toml:"api_endpoint"`
	MCPEndpoint string `toml:"mcp_endpoint"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Answer: AnswerConfig{
			Endpoint:        "https://generativelanguage.googleapis.com/v1beta",
			Model:           "gemini-2.0-flash",
			APIKeyEnv:       "FRAGA_API_KEY",
			FetchTimeoutSec: 10,
			ModelTimeoutSec: 60,
			MaxContentChars: 200_000,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Bind:        "127.0.0.1:8787",
			APIEndpoint: "/api/v1",
			MCPEndpoint: "/mcp",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	if strings.TrimSpace(c.Answer.Endpoint) == "" {
		return errors.New("answer.endpoint is required")
	}
	if strings.TrimSpace(c.Answer.Model) == "" {
		return errors.New("answer.model is required")
	}
	if strings.TrimSpace(c.Answer.APIKeyEnv) == "" {
		return errors.New("answer.api_key_env is required")
	}
	if c.Answer.FetchTimeoutSec <= 0 {
		return fmt.Errorf("answer.fetch_timeout_seconds must be > 0, got %d", c.Answer.FetchTimeoutSec)
	}
	if c.Answer.ModelTimeoutSec <= 0 {
		return fmt.Errorf("answer.model_timeout_seconds must be > 0, got %d", c.Answer.ModelTimeoutSec)
	}
	if c.Answer.MaxContentChars < 0 {
		return fmt.Errorf("answer.max_content_chars must be >= 0, got %d", c.Answer.MaxContentChars)
	}

	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must be >= 0, got %d", c.History.Limit)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind is required")
	}
	if !strings.HasPrefix(c.Server.APIEndpoint, "/") {
		return fmt.Errorf("server.api_endpoint must start with /, got %q", c.Server.APIEndpoint)
	}
	if !strings.HasPrefix(c.Server.MCPEndpoint, "/") {
		return fmt.Errorf("server.mcp_endpoint must start with /, got %q", c.Server.MCPEndpoint)
	}

	return nil
}

// FetchTimeout returns answer.fetch_timeout_seconds as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Answer.FetchTimeoutSec) * time.Second
}

// ModelTimeout returns answer.model_timeout_seconds as a duration.
func (c Config) ModelTimeout() time.Duration {
	return time.Duration(c.Answer.ModelTimeoutSec) * time.Second
}

// APIKey reads the model API key from the configured environment variable.
func (c Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.Answer.APIKeyEnv))
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
