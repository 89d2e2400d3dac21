// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tripgenie.
package config

import (
	"errors"
	"testing"
	"time"
)

// =============================================================================
// DEFAULTS TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d", cfg.API.TimeoutSecs)
	}
	if !cfg.UI.RenderMarkdown {
		t.Error("markdown rendering should default on")
	}
	if cfg.UI.SidebarWidth != 32 {
		t.Errorf("SidebarWidth = %d", cfg.UI.SidebarWidth)
	}
}

// =============================================================================
// ENV OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TRIPGENIE_API_URL", "http://planner.internal:9000")
	t.Setenv("TRIPGENIE_TIMEOUT_SECS", "15")
	t.Setenv("TRIPGENIE_DATA_DIR", "/var/lib/tripgenie")

	cfg := Default()
	cfg.applyEnvOverrides()

	if cfg.API.BaseURL != "http://planner.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 15 {
		t.Errorf("TimeoutSecs = %d", cfg.API.TimeoutSecs)
	}
	if cfg.Storage.DataDir != "/var/lib/tripgenie" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("TRIPGENIE_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.applyEnvOverrides()
	if cfg.API.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d, want default preserved", cfg.API.TimeoutSecs)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "::not a url"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
		t.Errorf("Validate = %v, want ErrInvalidBaseURL", err)
	}

	cfg = Default()
	cfg.API.TimeoutSecs = -5
	cfg.UI.SidebarWidth = 3
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.API.TimeoutSecs != 60 {
		t.Errorf("invalid timeout should reset, got %d", cfg.API.TimeoutSecs)
	}
	if cfg.UI.SidebarWidth != 20 {
		t.Errorf("narrow sidebar should clamp, got %d", cfg.UI.SidebarWidth)
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.API.TimeoutSecs = 30
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
}

func TestDataDir_ExplicitWins(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = "/tmp/tg-test"
	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if dir != "/tmp/tg-test" {
		t.Errorf("DataDir = %q", dir)
	}
}
