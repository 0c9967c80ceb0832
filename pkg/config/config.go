// Package config loads and persists Aura's client settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults for a fresh installation.
const (
	DefaultEndpoint           = "http://localhost:8000"
	DefaultTimeoutSeconds     = 60
	DefaultContextBudget      = 4000
	DefaultSelectionPollMilli = 500
)

// DefaultRestrictedURLs lists page URL patterns where content extraction is
// never attempted, mirroring environments where script access is disallowed.
var DefaultRestrictedURLs = []string{
	"chrome://*",
	"chrome-extension://*",
	"about:*",
	"devtools://*",
	"view-source:*",
	"file://*",
}

// Config holds all client settings. Zero values are replaced by defaults on
// load, so a partial file is valid.
type Config struct {
	// Endpoint is the base URL of the Aura reasoning service.
	Endpoint string `yaml:"endpoint"`

	// TimeoutSeconds bounds a single dispatch exchange.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// IncludeContext controls whether page content is attached to chat
	// submissions.
	IncludeContext bool `yaml:"include_context"`

	// ContextBudget is the maximum number of characters of page content
	// included in a submission.
	ContextBudget int `yaml:"context_budget"`

	// RestrictedURLs are glob patterns of page URLs that must never be
	// extracted.
	RestrictedURLs []string `yaml:"restricted_urls"`

	// WatchSelection enables the background selection-capture listener.
	WatchSelection bool `yaml:"watch_selection"`

	// SelectionPollMillis is the clipboard poll interval for the listener.
	SelectionPollMillis int `yaml:"selection_poll_millis"`
}

// Default returns the configuration for a fresh installation.
func Default() *Config {
	return &Config{
		Endpoint:            DefaultEndpoint,
		TimeoutSeconds:      DefaultTimeoutSeconds,
		IncludeContext:      true,
		ContextBudget:       DefaultContextBudget,
		RestrictedURLs:      append([]string(nil), DefaultRestrictedURLs...),
		WatchSelection:      false,
		SelectionPollMillis: DefaultSelectionPollMilli,
	}
}

// DefaultPath returns ~/.aura/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".aura", "config.yaml"), nil
}

// Load reads the configuration at path, filling omitted fields with
// defaults. A missing file is not an error and yields the defaults. If path
// is empty, DefaultPath is used.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Unmarshal into a bare struct first so we can tell "false/zero in the
	// file" apart from "absent from the file" for the fields that need it.
	var raw struct {
		Endpoint            *string  `yaml:"endpoint"`
		TimeoutSeconds      *int     `yaml:"timeout_seconds"`
		IncludeContext      *bool    `yaml:"include_context"`
		ContextBudget       *int     `yaml:"context_budget"`
		RestrictedURLs      []string `yaml:"restricted_urls"`
		WatchSelection      *bool    `yaml:"watch_selection"`
		SelectionPollMillis *int     `yaml:"selection_poll_millis"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if raw.Endpoint != nil && *raw.Endpoint != "" {
		cfg.Endpoint = *raw.Endpoint
	}
	if raw.TimeoutSeconds != nil && *raw.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = *raw.TimeoutSeconds
	}
	if raw.IncludeContext != nil {
		cfg.IncludeContext = *raw.IncludeContext
	}
	if raw.ContextBudget != nil && *raw.ContextBudget > 0 {
		cfg.ContextBudget = *raw.ContextBudget
	}
	if raw.RestrictedURLs != nil {
		cfg.RestrictedURLs = raw.RestrictedURLs
	}
	if raw.WatchSelection != nil {
		cfg.WatchSelection = *raw.WatchSelection
	}
	if raw.SelectionPollMillis != nil && *raw.SelectionPollMillis > 0 {
		cfg.SelectionPollMillis = *raw.SelectionPollMillis
	}

	return cfg, nil
}

// Save writes the configuration to path atomically. If path is empty,
// DefaultPath is used.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
