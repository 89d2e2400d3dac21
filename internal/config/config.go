// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tripgenie.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/tripgenie-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tripgenie configuration.
type Config struct {
	// API configuration
	API APIConfig `toml:"api"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains remote trip-planner service configuration.
type APIConfig struct {
	// BaseURL is the base URL of the trip-planner API
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig contains local persistence configuration.
type StorageConfig struct {
	// DataDir is the directory for persisted state (identity, sessions).
	// Empty means ~/.tripgenie
	DataDir string `toml:"data_dir"`
}

// UIConfig contains UI-related configuration.
type UIConfig struct {
	// RenderMarkdown enables glamour markdown rendering for assistant messages
	RenderMarkdown bool `toml:"render_markdown"`
	// ShowTimestamps shows message timestamps in the thread
	ShowTimestamps bool `toml:"show_timestamps"`
	// SidebarWidth is the session sidebar width in columns
	SidebarWidth int `toml:"sidebar_width"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultBaseURL is the default trip-planner API endpoint.
const DefaultBaseURL = "http://localhost:8000"

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			TimeoutSecs: 60,
		},
		Storage: StorageConfig{
			DataDir: "",
		},
		UI: UIConfig{
			RenderMarkdown: true,
			ShowTimestamps: true,
			SidebarWidth:   32,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ErrInvalidBaseURL indicates the configured API base URL cannot be parsed.
var ErrInvalidBaseURL = errors.New("invalid API base URL")

// ConfigPath returns the path of the config file.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tripgenie", "config.toml"), nil
}

// Load reads the configuration from disk, applies environment overrides,
// and validates the result. A missing config file is not an error; defaults
// are used. A malformed file is also non-fatal: the file is ignored and
// defaults apply, matching the recover-locally policy for corrupt state.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decodeErr := toml.DecodeFile(path, cfg); decodeErr != nil {
				cfg = Default()
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRIPGENIE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("TRIPGENIE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("TRIPGENIE_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = 60
	}
	if c.UI.SidebarWidth < 20 {
		c.UI.SidebarWidth = 20
	}
	return nil
}

// Timeout returns the API request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// DataDir returns the resolved data directory, creating nothing.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tripgenie"), nil
}

// Save writes the configuration to disk atomically.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
