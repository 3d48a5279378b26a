// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for authapp.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - RemoteConfig: endpoint, project and platform of the account service
//   - SessionConfig: which session store keeps the cookie
//   - LogConfig: log level, format and destination
//   - UIConfig: theme and the login screen's test credentials
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (AUTHAPP_*), including those set by .env files
//   - ~/.authapp/config.toml
//   - ~/.authapp/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	endpoint := cfg.Remote.Endpoint
//	timeout := cfg.RequestTimeout()
package config
