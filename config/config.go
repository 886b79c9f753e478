// Package config loads the pipeline configuration from TOML. All tunable
// state lives here and is passed into constructors explicitly; no package
// reads globals, and API keys stay in the environment with only their
// variable names in the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GatewaySection selects the completion backend.
type GatewaySection struct {
	Provider  string `toml:"provider"`    // anthropic, openai, google
	Model     string `toml:"model"`       // e.g. gpt-4
	APIKeyEnv string `toml:"api_key_env"` // environment variable holding the key
	BaseURL   string `toml:"base_url"`    // optional custom endpoint
	MaxTokens int    `toml:"max_tokens"`  // default output cap
}

// FitterSection tunes the context-fitting decisions.
type FitterSection struct {
	ContextWindow  int     `toml:"context_window"`
	ReservedTokens int     `toml:"reserved_tokens"`
	AnswerTokens   int     `toml:"answer_tokens"`
	Temperature    float64 `toml:"temperature"`
}

// ReducerSection tunes chunked summarization.
type ReducerSection struct {
	ChunkSize     int     `toml:"chunk_size"`
	SummaryTokens int     `toml:"summary_tokens"`
	Temperature   float64 `toml:"temperature"`
	Concurrency   int     `toml:"concurrency"`
}

// Config is the root configuration.
type Config struct {
	Gateway  GatewaySection `toml:"gateway"`
	Fitter   FitterSection  `toml:"fitter"`
	Reducer  ReducerSection `toml:"reducer"`
	LogLevel string         `toml:"log_level"`
}

// StandardPaths returns the config file locations in order of priority.
func StandardPaths() []string {
	paths := []string{"askdoc.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "askdoc", "askdoc.toml"))
	}
	return paths
}

// Load reads a config from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			cfg = Config{}
			cfg.applyDefaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault loads the first config found on the standard paths, or the
// defaults when none exists. It returns the path used, "" for defaults.
func LoadDefault() (*Config, string, error) {
	for _, path := range StandardPaths() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}
	cfg := Config{}
	cfg.applyDefaults()
	return &cfg, "", nil
}

// APIKey resolves the gateway API key from the configured environment
// variable.
func (c *Config) APIKey() (string, error) {
	key := os.Getenv(c.Gateway.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.Gateway.APIKeyEnv)
	}
	return key, nil
}

func (c *Config) applyDefaults() {
	if c.Gateway.Provider == "" {
		c.Gateway.Provider = "openai"
	}
	if c.Gateway.Model == "" {
		c.Gateway.Model = "gpt-4"
	}
	if c.Gateway.APIKeyEnv == "" {
		c.Gateway.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Gateway.MaxTokens == 0 {
		c.Gateway.MaxTokens = 1500
	}

	if c.Fitter.ContextWindow == 0 {
		c.Fitter.ContextWindow = 8192
	}
	if c.Fitter.ReservedTokens == 0 {
		c.Fitter.ReservedTokens = 1500
	}
	if c.Fitter.AnswerTokens == 0 {
		c.Fitter.AnswerTokens = 1500
	}
	if c.Fitter.Temperature == 0 {
		c.Fitter.Temperature = 0.7
	}

	if c.Reducer.ChunkSize == 0 {
		c.Reducer.ChunkSize = 3000
	}
	if c.Reducer.SummaryTokens == 0 {
		c.Reducer.SummaryTokens = 300
	}
	if c.Reducer.Temperature == 0 {
		c.Reducer.Temperature = 0.5
	}
	if c.Reducer.Concurrency == 0 {
		c.Reducer.Concurrency = 4
	}

	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
}

// Validate checks the config for contradictions a deployment must fix.
func (c *Config) Validate() error {
	if c.Fitter.ReservedTokens >= c.Fitter.ContextWindow {
		return fmt.Errorf("reserved_tokens (%d) must be below context_window (%d)",
			c.Fitter.ReservedTokens, c.Fitter.ContextWindow)
	}
	if c.Reducer.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be positive")
	}
	return nil
}
