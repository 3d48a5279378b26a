// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for authapp.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.authapp/config.toml
//   - ~/.authapp/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/sessionstore"
	"github.com/liongatetechnology/authapp/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete authapp configuration.
type Config struct {
	// Remote account service
	Remote RemoteConfig `toml:"remote" json:"remote"`

	// Where the session cookie is kept
	Session SessionConfig `toml:"session" json:"session"`

	// Log output
	Log LogConfig `toml:"log" json:"log"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// RemoteConfig identifies the remote account service. It is read once at
// startup; nothing changes it while authapp runs.
type RemoteConfig struct {
	// Endpoint is the base URL of the account API
	Endpoint string `toml:"endpoint" json:"endpoint"`
	// ProjectID is sent as X-Appwrite-Project
	ProjectID string `toml:"project_id" json:"project_id"`
	// Platform is the platform ID registered with the project
	Platform string `toml:"platform" json:"platform"`
	// RequestTimeoutSecs bounds each remote call
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
}

// SessionConfig selects the session cookie store.
type SessionConfig struct {
	// Store is "file" (default), "memory", "sqlite" or "redis"
	Store string `toml:"store" json:"store"`
	// Path is the file or database path for the file and sqlite stores.
	// Empty means a default under the config directory.
	Path string `toml:"path" json:"path"`
	// RedisAddr is host:port of the redis server
	RedisAddr string `toml:"redis_addr" json:"redis_addr"`
	// RedisPassword authenticates to redis
	RedisPassword string `toml:"redis_password" json:"redis_password"`
	// RedisDB selects the redis database
	RedisDB int `toml:"redis_db" json:"redis_db"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is trace, debug, info, warn or error
	Level string `toml:"level" json:"level"`
	// Format is "json" or "console"
	Format string `toml:"format" json:"format"`
	// File is the log file path, or stdout, stderr, discard
	File string `toml:"file" json:"file"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowTestCredentials shows the "Use test credentials" action on the login screen
	ShowTestCredentials bool `toml:"show_test_credentials" json:"show_test_credentials"`
	// TestEmail is filled in by the test credentials action
	TestEmail string `toml:"test_email" json:"test_email"`
	// TestPassword is filled in by the test credentials action
	TestPassword string `toml:"test_password" json:"test_password"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			Endpoint:           appwrite.DefaultEndpoint,
			ProjectID:          appwrite.DefaultProjectID,
			Platform:           appwrite.DefaultPlatform,
			RequestTimeoutSecs: int(appwrite.DefaultTimeout / time.Second),
		},
		Session: SessionConfig{
			Store: string(sessionstore.KindFile),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "~/.authapp/authapp.log",
		},
		UI: UIConfig{
			Theme:               "auto",
			ShowTestCredentials: true,
			TestEmail:           "jimmuell@aol.com",
			TestPassword:        "12345678",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the authapp configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".authapp"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect
// the redis password and test credentials.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// .env files and environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	loaded := false
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
				cfg = Default()
			} else {
				loaded = true
			}
		}
	}

	if !loaded {
		if jsonPath, err := ConfigPathJSON(); err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				if err := LoadJSON(cfg, jsonPath); err != nil {
					loadErr = fmt.Errorf("failed to load JSON config: %w", err)
					cfg = Default()
				}
			}
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}

	// Return the config (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies .env files, environment overrides and defaults, then validates.
func finish(cfg *Config) error {
	if err := LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from ./.env and ~/.authapp/.env into the process
// environment. Variables already set are left alone, so the real environment
// always wins. Missing files are skipped.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	var files []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	// Remote
	if cfg.Remote.Endpoint == "" {
		cfg.Remote.Endpoint = defaults.Remote.Endpoint
	}
	if cfg.Remote.ProjectID == "" {
		cfg.Remote.ProjectID = defaults.Remote.ProjectID
	}
	if cfg.Remote.Platform == "" {
		cfg.Remote.Platform = defaults.Remote.Platform
	}
	if cfg.Remote.RequestTimeoutSecs == 0 {
		cfg.Remote.RequestTimeoutSecs = defaults.Remote.RequestTimeoutSecs
	}

	// Session
	if cfg.Session.Store == "" {
		cfg.Session.Store = defaults.Session.Store
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	return nil
}

// SetDefaults fills any empty field with its default.
func (c *Config) SetDefaults() {
	_ = fillDefaults(c)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# authapp configuration file")
	fmt.Fprintln(&buf, "# Generated by authapp - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Remote
	// ==========================================================================

	if u, err := url.Parse(c.Remote.Endpoint); err != nil || u.Host == "" ||
		(u.Scheme != "https" && u.Scheme != "http") {
		errs = append(errs, ValidationError{
			Field:   "remote.endpoint",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[/path]", c.Remote.Endpoint),
		})
	}
	if strings.TrimSpace(c.Remote.ProjectID) == "" {
		errs = append(errs, ValidationError{Field: "remote.project_id", Message: "must not be empty"})
	}
	if c.Remote.RequestTimeoutSecs < 1 || c.Remote.RequestTimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "remote.request_timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 300 (got %d)", c.Remote.RequestTimeoutSecs),
		})
	}

	// ==========================================================================
	// Session
	// ==========================================================================

	kind, err := sessionstore.ParseKind(c.Session.Store)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   "session.store",
			Message: fmt.Sprintf("invalid store '%s', must be one of: memory, file, sqlite, redis", c.Session.Store),
		})
	}
	if kind == sessionstore.KindRedis && strings.TrimSpace(c.Session.RedisAddr) == "" {
		errs = append(errs, ValidationError{Field: "session.redis_addr", Message: "required when session.store is redis"})
	}
	if c.Session.RedisDB < 0 || c.Session.RedisDB > 15 {
		errs = append(errs, ValidationError{
			Field:   "session.redis_db",
			Message: fmt.Sprintf("must be between 0 and 15 (got %d)", c.Session.RedisDB),
		})
	}

	// ==========================================================================
	// Log
	// ==========================================================================

	if err := c.LoggingConfig().Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "log", Message: err.Error()})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// RequestTimeout returns the per-call timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Remote.RequestTimeoutSecs) * time.Second
}

// SessionPath returns the session file or database path, defaulting by store kind.
func (c *Config) SessionPath() string {
	if c.Session.Path != "" {
		return ExpandHome(c.Session.Path)
	}
	dir, err := ConfigDir()
	if err != nil {
		dir = "."
	}
	switch sessionstore.Kind(strings.ToLower(c.Session.Store)) {
	case sessionstore.KindSQLite:
		return filepath.Join(dir, "session.db")
	default:
		return filepath.Join(dir, "session.json")
	}
}

// SessionOptions converts the session section to store options.
func (c *Config) SessionOptions() (sessionstore.Options, error) {
	kind, err := sessionstore.ParseKind(c.Session.Store)
	if err != nil {
		return sessionstore.Options{}, ValidationError{Field: "session.store", Message: err.Error()}
	}
	return sessionstore.Options{
		Kind:          kind,
		Path:          c.SessionPath(),
		Namespace:     c.Remote.ProjectID,
		RedisAddr:     c.Session.RedisAddr,
		RedisPassword: c.Session.RedisPassword,
		RedisDB:       c.Session.RedisDB,
	}, nil
}

// LoggingConfig converts the log section to logging options.
func (c *Config) LoggingConfig() logging.Config {
	output := c.Log.File
	switch strings.ToLower(output) {
	case logging.OutputStdout, logging.OutputStderr, logging.OutputDiscard:
	default:
		output = ExpandHome(output)
	}
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: output,
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - AUTHAPP_ENDPOINT: overrides remote.endpoint
//   - AUTHAPP_PROJECT: overrides remote.project_id
//   - AUTHAPP_PLATFORM: overrides remote.platform
//   - AUTHAPP_REQUEST_TIMEOUT: overrides remote.request_timeout_secs
//   - AUTHAPP_SESSION_STORE: overrides session.store
//   - AUTHAPP_SESSION_PATH: overrides session.path
//   - AUTHAPP_REDIS_ADDR: overrides session.redis_addr
//   - AUTHAPP_REDIS_PASSWORD: overrides session.redis_password
//   - AUTHAPP_LOG_LEVEL: overrides log.level
//   - AUTHAPP_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AUTHAPP_ENDPOINT"); v != "" {
		c.Remote.Endpoint = v
	}
	if v := os.Getenv("AUTHAPP_PROJECT"); v != "" {
		c.Remote.ProjectID = v
	}
	if v := os.Getenv("AUTHAPP_PLATFORM"); v != "" {
		c.Remote.Platform = v
	}
	if v := os.Getenv("AUTHAPP_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Remote.RequestTimeoutSecs = secs
		}
	}
	if v := os.Getenv("AUTHAPP_SESSION_STORE"); v != "" {
		c.Session.Store = v
	}
	if v := os.Getenv("AUTHAPP_SESSION_PATH"); v != "" {
		c.Session.Path = v
	}
	if v := os.Getenv("AUTHAPP_REDIS_ADDR"); v != "" {
		c.Session.RedisAddr = v
	}
	if v := os.Getenv("AUTHAPP_REDIS_PASSWORD"); v != "" {
		c.Session.RedisPassword = v
	}
	if v := os.Getenv("AUTHAPP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("AUTHAPP_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "remote.endpoint").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "session.store").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks a dotted key to its struct field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field
// equivalent. "project_id" becomes "ProjectId", matched case-insensitively.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"remote.endpoint",
		"remote.project_id",
		"remote.platform",
		"remote.request_timeout_secs",
		"session.store",
		"session.path",
		"session.redis_addr",
		"session.redis_password",
		"session.redis_db",
		"log.level",
		"log.format",
		"log.file",
		"ui.theme",
		"ui.show_test_credentials",
		"ui.test_email",
		"ui.test_password",
	}
}

// secretKeys are redacted by String and by `authapp config get`.
var secretKeys = map[string]bool{
	"session.redis_password": true,
	"ui.test_password":       true,
}

// IsSecretKey reports whether key names a secret value.
func IsSecretKey(key string) bool {
	return secretKeys[strings.ToLower(key)]
}

// =============================================================================
// COPY AND DISPLAY
// =============================================================================

// Clone returns a copy of the config. All fields are values, so a struct
// copy is a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
// SECURITY: Redacts secrets to prevent accidental exposure in logs.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Session.RedisPassword != "" {
		safe.Session.RedisPassword = "[REDACTED]"
	}
	if safe.UI.TestPassword != "" {
		safe.UI.TestPassword = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
