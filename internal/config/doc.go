// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tripgenie.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// # Configuration Sources (priority order)
//
//  1. Environment variables (TRIPGENIE_API_URL, TRIPGENIE_TIMEOUT_SECS,
//     TRIPGENIE_DATA_DIR)
//  2. ~/.tripgenie/config.toml
//  3. Built-in defaults
//
// A missing or malformed config file is never fatal; defaults apply.
package config
