package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.ServiceURL)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Color)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithServiceURL("http://search.internal:9000"),
		WithRequestTimeout(3*time.Second),
		WithCacheTTL(time.Minute),
		WithLogLevel("debug"),
		WithColor("never"),
		WithListenAddr("127.0.0.1:9999"),
	)

	assert.Equal(t, "http://search.internal:9000", cfg.ServiceURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
}

func TestNormalize(t *testing.T) {
	cfg := NewConfig(
		WithServiceURL(" http://localhost:8000/ "),
		WithLogLevel("DEBUG"),
		WithColor(" Always"),
	)
	cfg.Normalize()

	assert.Equal(t, "http://localhost:8000", cfg.ServiceURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "always", cfg.Color)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults", wantErr: false},
		{name: "https url", opts: []Option{WithServiceURL("https://search.example.com")}, wantErr: false},
		{name: "empty url", opts: []Option{WithServiceURL("")}, wantErr: true},
		{name: "bad scheme", opts: []Option{WithServiceURL("ftp://localhost:8000")}, wantErr: true},
		{name: "no host", opts: []Option{WithServiceURL("http://")}, wantErr: true},
		{name: "negative timeout", opts: []Option{WithRequestTimeout(-time.Second)}, wantErr: true},
		{name: "negative ttl", opts: []Option{WithCacheTTL(-time.Second)}, wantErr: true},
		{name: "bad log level", opts: []Option{WithLogLevel("verbose")}, wantErr: true},
		{name: "bad color", opts: []Option{WithColor("rainbow")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLogLevel("ERROR")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)

	_, err = ParseLogLevel("trace")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essaysearch.yaml")
	data := []byte("service_url: http://search.internal:8000\ncache_ttl: 2m\nrequest_timeout: 10s\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "http://search.internal:8000", cfg.ServiceURL)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	// Keys absent from the file keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("service_url: [unterminated"), 0o644))
		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFile(path))
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvServiceURL:     "http://env-host:8000",
		EnvRequestTimeout: "1500ms",
		EnvCacheTTL:       "30s",
		EnvLogLevel:       "debug",
		EnvColor:          "never",
		EnvListenAddr:     ":9090",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "http://env-host:8000", cfg.ServiceURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, ":9090", cfg.ListenAddr)

	t.Run("invalid duration", func(t *testing.T) {
		bad := func(key string) (string, bool) {
			if key == EnvCacheTTL {
				return "soon", true
			}
			return "", false
		}
		assert.Error(t, DefaultConfig().ApplyEnv(bad))
	})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essaysearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_url: http://file-host:8000\nlog_level: warn\n"), 0o644))
	t.Setenv(EnvServiceURL, "http://env-host:8000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env-host:8000", cfg.ServiceURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvColor+"=never\n"), 0o644))

	// t.Setenv registers cleanup; unset so godotenv can populate the key
	t.Setenv(EnvColor, "")
	require.NoError(t, os.Unsetenv(EnvColor))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "never", os.Getenv(EnvColor))

	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	})
}
