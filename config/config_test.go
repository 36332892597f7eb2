package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	apperrors "github.com/kbukum/xesmeta/errors"
)

type storeSection struct {
	Backend string        `yaml:"backend" mapstructure:"backend"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Redis   struct {
		Addr      string `yaml:"addr" mapstructure:"addr"`
		KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
	} `yaml:"redis" mapstructure:"redis"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Store         storeSection `yaml:"store" mapstructure:"store"`

	defaulted bool
}

func (c *testConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.defaulted = true
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfig_ApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "xesmeta"}
		cfg.ApplyDefaults()
		if cfg.Environment != EnvDevelopment {
			t.Errorf("expected development, got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "xesmeta" {
			t.Errorf("expected logging service name from config name, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "xesmeta", Environment: EnvProduction}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info logging, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: EnvDevelopment}, false},
		{"valid staging", ServiceConfig{Name: "svc", Environment: EnvStaging}, false},
		{"missing name", ServiceConfig{Environment: EnvProduction}, true},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr && !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceConfig_Validate_Logging(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Environment: EnvStaging}
	cfg.Logging.ApplyDefaults()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid logging level to fail")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: xesmeta
environment: staging
store:
  backend: redis
  timeout: 3s
  redis:
    addr: localhost:6379
`)

	var cfg testConfig
	if err := Load("xestest-yaml", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "xesmeta" || cfg.Environment != EnvStaging {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected store section %+v", cfg.Store)
	}
	if cfg.Store.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Store.Timeout)
	}
	if !cfg.defaulted {
		t.Error("expected ApplyDefaults to be called")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: xesmeta
store:
  backend: memory
  redis:
    addr: file:6379
`)
	t.Setenv("XESENV_STORE_BACKEND", "redis")
	t.Setenv("XESENV_STORE_REDIS_KEY_PREFIX", "pentaho")
	t.Setenv("XESENV_ENVIRONMENT", "production")
	t.Setenv("OTHER_STORE_BACKEND", "database")

	var cfg testConfig
	if err := Load("xesenv", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("expected env to override backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Redis.KeyPrefix != "pentaho" {
		t.Errorf("expected nested underscore key from env, got %q", cfg.Store.Redis.KeyPrefix)
	}
	if cfg.Store.Redis.Addr != "file:6379" {
		t.Errorf("expected file value to survive, got %q", cfg.Store.Redis.Addr)
	}
	if cfg.Environment != EnvProduction {
		t.Errorf("expected production, got %q", cfg.Environment)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "XESDOTENV_NAME=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("XESDOTENV_NAME") })

	var cfg testConfig
	if err := Load("xesdotenv", &cfg, WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "from-dotenv" {
		t.Errorf("expected name from .env, got %q", cfg.Name)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yml", "name: [unterminated\n")

	tests := []struct {
		name string
		opts []Option
	}{
		{"missing config file", []Option{WithConfigFile(filepath.Join(dir, "nope.yml"))}},
		{"missing env file", []Option{WithEnvFile(filepath.Join(dir, ".env.nope"))}},
		{"malformed yaml", []Option{WithConfigFile(bad)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg testConfig
			err := Load("xeserr", &cfg, tc.opts...)
			if !apperrors.Is(err, apperrors.ErrCodeConfigLoad) {
				t.Errorf("expected CONFIG_LOAD_ERROR, got %v", err)
			}
		})
	}
}

func TestLoad_ValidateFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "environment: qa\n")

	var cfg validatedConfig
	err := Load("xesvalidate", &cfg, WithConfigFile(path))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected validation error, got %v", err)
	}
}

type validatedConfig struct {
	ServiceConfig `mapstructure:",squash"`
}

func TestLoad_EnvFileError(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}, envErr: errors.New("parse error")}
	var cfg testConfig
	err := Load("xesmock", &cfg, WithFileSystem(fs))
	if !apperrors.Is(err, apperrors.ErrCodeConfigLoad) {
		t.Errorf("expected CONFIG_LOAD_ERROR, got %v", err)
	}
}

type mockFS struct {
	files  map[string]bool
	envErr error
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return m.envErr }

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]bool
		opts     Options
		wantConf string
		wantEnv  string
	}{
		{
			name:     "cmd directory first",
			files:    map[string]bool{"./cmd/xesmeta/config.yml": true, "./config.yml": true},
			wantConf: "./cmd/xesmeta/config.yml",
		},
		{
			name:     "root fallback",
			files:    map[string]bool{"./config.yaml": true, "./.env": true},
			wantConf: "./config.yaml",
			wantEnv:  "./.env",
		},
		{
			name:    "service env file before plain env",
			files:   map[string]bool{"./.env.xesmeta": true, "./.env": true},
			wantEnv: "./.env.xesmeta",
		},
		{
			name:     "explicit paths win",
			files:    map[string]bool{"./config.yml": true},
			opts:     Options{ConfigFile: "/etc/xes.yml", EnvFile: "/etc/xes.env"},
			wantConf: "/etc/xes.yml",
			wantEnv:  "/etc/xes.env",
		},
		{name: "nothing found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.FileSystem = &mockFS{files: tc.files}
			got := Resolve("xesmeta", tc.opts)
			if got.ConfigFile != tc.wantConf || got.EnvFile != tc.wantEnv {
				t.Errorf("expected (%q, %q), got (%q, %q)", tc.wantConf, tc.wantEnv, got.ConfigFile, got.EnvFile)
			}
		})
	}
}

func TestKeyVariants(t *testing.T) {
	got := keyVariants("STORE_REDIS_KEY_PREFIX")
	for _, want := range []string{
		"store_redis_key_prefix",
		"store.redis.key.prefix",
		"store.redis_key_prefix",
		"store.redis.key_prefix",
	} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if single := keyVariants("NAME"); len(single) != 1 || single[0] != "name" {
		t.Errorf("expected [name], got %v", single)
	}
}

func TestEnvPrefix(t *testing.T) {
	tests := map[string]string{
		"xesmeta":  "XESMETA_",
		"xes-meta": "XES_META_",
		"":         "",
	}
	for in, want := range tests {
		if got := envPrefix(in); got != want {
			t.Errorf("envPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
