package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leofalp/brain/providers/ai"
)

// credentialEnvVars maps provider ids to the environment variable holding
// their API key. Credentials are read once at load time and shared read-only
// afterwards.
var credentialEnvVars = map[string]string{
	"mistral": "MISTRAL_API_KEY",
	"gemini":  "GEMINI_API_KEY",
	"claude":  "ANTHROPIC_API_KEY",
}

// Config is the immutable process configuration: orchestration defaults from
// an optional YAML file merged over built-in defaults, plus provider
// credentials captured from the environment at load time. Construct it once
// at startup with [Load] and pass it by reference; nothing mutates it
// afterwards.
type Config struct {
	DefaultProvider string `yaml:"default_provider"`
	DefaultModel    string `yaml:"default_model"`

	// DeepProviders is the fixed provider set queried in deep thinking mode.
	DeepProviders []string `yaml:"deep_providers"`

	// SynthesisProvider consolidates deep-mode responses. It may coincide
	// with one of the deep providers.
	SynthesisProvider string `yaml:"synthesis_provider"`

	// CodeProvider answers code-generation requests.
	CodeProvider string `yaml:"code_provider"`
	CodeModel    string `yaml:"code_model"`

	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	TopP        float32 `yaml:"top_p"`

	// PerCallTimeoutSeconds bounds every individual provider call.
	PerCallTimeoutSeconds int `yaml:"per_call_timeout_seconds"`

	HistoryDir string `yaml:"history_dir"`

	// MaxTurns caps thread length; oldest turns are evicted first.
	MaxTurns int `yaml:"max_turns"`

	// ContextTurns is how many recent turns are replayed as prompt context.
	ContextTurns int `yaml:"context_turns"`

	credentials map[string]string
}

// Default returns the built-in configuration, mirroring what is written to a
// fresh config file. The history directory defaults to ~/.brain-cli.
func Default() *Config {
	historyDir := ".brain-cli"
	if home, err := os.UserHomeDir(); err == nil {
		historyDir = filepath.Join(home, ".brain-cli")
	}

	return &Config{
		DefaultProvider:       "mistral",
		DefaultModel:          "mistral-large-latest",
		DeepProviders:         []string{"mistral", "gemini", "claude"},
		SynthesisProvider:     "mistral",
		CodeProvider:          "claude",
		CodeModel:             "",
		MaxTokens:             4096,
		Temperature:           0.7,
		TopP:                  1.0,
		PerCallTimeoutSeconds: 30,
		HistoryDir:            historyDir,
		MaxTurns:              50,
		ContextTurns:          10,
		credentials:           map[string]string{},
	}
}

// Load builds the process configuration: defaults, overridden by the YAML
// file at path when it exists, with credentials captured from the
// environment. A missing file is not an error; it is created with the
// defaults so the user has something to edit, the way the original config
// bootstraps itself. Path "" skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			if writeErr := cfg.writeFile(path); writeErr != nil {
				// A read-only location is fine; run on defaults.
				break
			}
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.credentials = map[string]string{}
	for provider, envVar := range credentialEnvVars {
		if key := os.Getenv(envVar); key != "" {
			cfg.credentials[provider] = key
		}
	}

	return cfg, nil
}

// writeFile persists the current settings as YAML, creating parent
// directories as needed. Credentials are never written.
func (c *Config) writeFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// HasCredential reports whether an API key was present for the provider when
// the configuration was loaded.
func (c *Config) HasCredential(provider string) bool {
	return c.credentials[provider] != ""
}

// Credential returns the API key captured for the provider, or "".
func (c *Config) Credential(provider string) string {
	return c.credentials[provider]
}

// CredentialEnvVar returns the environment variable a provider's key is read
// from, for use in error messages ("set MISTRAL_API_KEY").
func CredentialEnvVar(provider string) string {
	return credentialEnvVars[provider]
}

// PerCallTimeout returns the per-call timeout as a duration.
func (c *Config) PerCallTimeout() time.Duration {
	return time.Duration(c.PerCallTimeoutSeconds) * time.Second
}

// Generation returns the configured sampling defaults as a fresh
// [ai.GenerationConfig] so callers can adjust their copy freely.
func (c *Config) Generation() *ai.GenerationConfig {
	return &ai.GenerationConfig{
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		TopP:        c.TopP,
	}
}
