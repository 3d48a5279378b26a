// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/liongatetechnology/authapp/internal/sessionstore"
)

// isolateHome points the home directory at a temp dir so tests never read
// the developer's real ~/.authapp.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"AUTHAPP_ENDPOINT", "AUTHAPP_PROJECT", "AUTHAPP_PLATFORM", "AUTHAPP_REQUEST_TIMEOUT",
		"AUTHAPP_SESSION_STORE", "AUTHAPP_SESSION_PATH", "AUTHAPP_REDIS_ADDR",
		"AUTHAPP_REDIS_PASSWORD", "AUTHAPP_LOG_LEVEL", "AUTHAPP_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return home
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Remote.Endpoint != "https://fra.cloud.appwrite.io/v1" {
		t.Errorf("unexpected default endpoint %q", cfg.Remote.Endpoint)
	}
	if cfg.Remote.ProjectID != "68b83baf0025a8047e32" {
		t.Errorf("unexpected default project %q", cfg.Remote.ProjectID)
	}
	if cfg.Remote.Platform != "com.liongatetechnology.authapp" {
		t.Errorf("unexpected default platform %q", cfg.Remote.Platform)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v, want 30s", cfg.RequestTimeout())
	}
	if cfg.Session.Store != "file" {
		t.Errorf("default session store should be file, got %q", cfg.Session.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid default", func(c *Config) {}, ""},
		{"bad endpoint", func(c *Config) { c.Remote.Endpoint = "not a url" }, "remote.endpoint"},
		{"ftp endpoint", func(c *Config) { c.Remote.Endpoint = "ftp://example.com" }, "remote.endpoint"},
		{"http endpoint", func(c *Config) { c.Remote.Endpoint = "http://localhost:8790/v1" }, ""},
		{"empty project", func(c *Config) { c.Remote.ProjectID = " " }, "remote.project_id"},
		{"zero timeout", func(c *Config) { c.Remote.RequestTimeoutSecs = 0 }, "remote.request_timeout_secs"},
		{"huge timeout", func(c *Config) { c.Remote.RequestTimeoutSecs = 3600 }, "remote.request_timeout_secs"},
		{"unknown store", func(c *Config) { c.Session.Store = "etcd" }, "session.store"},
		{"redis without addr", func(c *Config) { c.Session.Store = "redis" }, "session.redis_addr"},
		{"redis with addr", func(c *Config) {
			c.Session.Store = "redis"
			c.Session.RedisAddr = "localhost:6379"
		}, ""},
		{"bad redis db", func(c *Config) { c.Session.RedisDB = 16 }, "session.redis_db"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_LoadTOMLAndEnv tests the file, .env and environment layering.
func TestConfig_LoadTOMLAndEnv(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".authapp")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}

	toml := `
[remote]
endpoint = "http://127.0.0.1:8790/v1"
project_id = "from-file"

[session]
store = "file"

[log]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".env"), []byte("AUTHAPP_PLATFORM=com.example.dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTHAPP_PROJECT", "from-env")
	// godotenv sets variables in the real environment; restore on exit.
	t.Setenv("AUTHAPP_PLATFORM", "")
	os.Unsetenv("AUTHAPP_PLATFORM")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Remote.Endpoint != "http://127.0.0.1:8790/v1" {
		t.Errorf("endpoint from file not applied: %q", cfg.Remote.Endpoint)
	}
	if cfg.Remote.ProjectID != "from-env" {
		t.Errorf("env should override file, got %q", cfg.Remote.ProjectID)
	}
	if cfg.Remote.Platform != "com.example.dotenv" {
		t.Errorf(".env value not applied, got %q", cfg.Remote.Platform)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("missing values should be defaulted, got format %q", cfg.Log.Format)
	}

	opts, err := cfg.SessionOptions()
	if err != nil {
		t.Fatalf("SessionOptions() error = %v", err)
	}
	if opts.Kind != sessionstore.KindFile {
		t.Errorf("store kind = %q, want file", opts.Kind)
	}
	if opts.Namespace != "from-env" {
		t.Errorf("store namespace should be the project, got %q", opts.Namespace)
	}
	if opts.Path != filepath.Join(dir, "session.json") {
		t.Errorf("default session path = %q", opts.Path)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dir, "config.toml"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("config permissions should be tightened to 0600, got %o", info.Mode().Perm())
		}
	}
}

// TestConfig_LoadRejectsUnknownKeys tests that typos in the file are reported.
func TestConfig_LoadRejectsUnknownKeys(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[remote]\nendpiont = \"x\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil || !strings.Contains(err.Error(), "remote.endpiont") {
		t.Errorf("LoadFromPath() error = %v, want unknown key", err)
	}
}

// TestConfig_SaveRoundTrip tests SaveTOML followed by LoadFromPath.
func TestConfig_SaveRoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Session.Store = "sqlite"
	cfg.Session.Path = "/tmp/authapp-test.db"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Session.Store != "sqlite" || loaded.SessionPath() != "/tmp/authapp-test.db" {
		t.Errorf("round trip lost session settings: %+v", loaded.Session)
	}
}

// TestConfig_SessionPathDefaults tests per-store default paths.
func TestConfig_SessionPathDefaults(t *testing.T) {
	home := isolateHome(t)
	cfg := Default()

	cfg.Session.Store = "sqlite"
	if got := cfg.SessionPath(); got != filepath.Join(home, ".authapp", "session.db") {
		t.Errorf("sqlite path = %q", got)
	}
	cfg.Session.Path = "~/elsewhere/s.db"
	if got := cfg.SessionPath(); got != filepath.Join(home, "elsewhere", "s.db") {
		t.Errorf("expanded path = %q", got)
	}
}

// TestConfig_LoggingConfig tests log output resolution.
func TestConfig_LoggingConfig(t *testing.T) {
	home := isolateHome(t)
	cfg := Default()

	if got := cfg.LoggingConfig().Output; got != filepath.Join(home, ".authapp", "authapp.log") {
		t.Errorf("log output = %q", got)
	}
	cfg.Log.File = "stderr"
	if got := cfg.LoggingConfig().Output; got != "stderr" {
		t.Errorf("log output = %q, want stderr", got)
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("session.store")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "file" {
		t.Errorf("Get('session.store') = %v, want 'file'", val)
	}

	if err := cfg.Set("remote.project_id", "other"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Remote.ProjectID != "other" {
		t.Errorf("Set('remote.project_id') did not apply, got %q", cfg.Remote.ProjectID)
	}

	if err := cfg.Set("remote.request_timeout_secs", "45"); err != nil {
		t.Fatalf("Set() int error = %v", err)
	}
	if cfg.RequestTimeout() != 45*time.Second {
		t.Errorf("RequestTimeout() = %v, want 45s", cfg.RequestTimeout())
	}

	if err := cfg.Set("ui.show_test_credentials", "no"); err != nil {
		t.Fatalf("Set() bool error = %v", err)
	}
	if cfg.UI.ShowTestCredentials {
		t.Error("ShowTestCredentials should be false")
	}

	if _, err := cfg.Get("invalid.key"); err == nil {
		t.Error("Get() with invalid key should return error")
	}
	if err := cfg.Set("remote.endpoint.host", "x"); err == nil {
		t.Error("Set() through a non-struct should return error")
	}

	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("GetAllKeys() lists %q but Get fails: %v", key, err)
		}
	}
}

// TestConfig_StringRedacts tests that secrets never appear in String().
func TestConfig_StringRedacts(t *testing.T) {
	cfg := Default()
	cfg.Session.RedisPassword = "hunter2"

	out := cfg.String()
	if strings.Contains(out, "hunter2") || strings.Contains(out, "12345678") {
		t.Errorf("String() leaked a secret: %s", out)
	}
	if cfg.Session.RedisPassword != "hunter2" {
		t.Error("String() must not modify the original")
	}
	if !IsSecretKey("UI.Test_Password") {
		t.Error("ui.test_password should be secret")
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()
	clone.Remote.ProjectID = "cloned"

	if original.Remote.ProjectID == "cloned" {
		t.Error("Clone should create an independent copy")
	}
}

// TestConfig_DefaultSessionPersists tests that the default store survives restarts.
func TestConfig_DefaultSessionPersists(t *testing.T) {
	home := isolateHome(t)

	opts, err := Default().SessionOptions()
	if err != nil {
		t.Fatalf("SessionOptions() error = %v", err)
	}
	if opts.Kind != sessionstore.KindFile {
		t.Errorf("default store kind = %q, want file", opts.Kind)
	}
	if want := filepath.Join(home, ".authapp", "session.json"); opts.Path != want {
		t.Errorf("default session path = %q, want %q", opts.Path, want)
	}
}

// TestConfig_SessionOptionsRejectsUnknownStore tests that an unvalidated
// store name is reported instead of silently becoming the memory store.
func TestConfig_SessionOptionsRejectsUnknownStore(t *testing.T) {
	cfg := Default()
	cfg.Session.Store = "etcd"

	_, err := cfg.SessionOptions()
	if err == nil {
		t.Fatal("SessionOptions() should fail for an unknown store")
	}
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "session.store" {
		t.Errorf("error = %v, want a session.store ValidationError", err)
	}
}
