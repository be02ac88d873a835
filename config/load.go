package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names, read after the YAML file.
const (
	EnvServiceURL     = "ESSAYSEARCH_SERVICE_URL"
	EnvRequestTimeout = "ESSAYSEARCH_REQUEST_TIMEOUT"
	EnvCacheTTL       = "ESSAYSEARCH_CACHE_TTL"
	EnvLogLevel       = "ESSAYSEARCH_LOG_LEVEL"
	EnvColor          = "ESSAYSEARCH_COLOR"
	EnvListenAddr     = "ESSAYSEARCH_LISTEN_ADDR"
)

// Load builds a Config from defaults, an optional YAML file and the process
// environment, in that order of precedence. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays values from a YAML file. Keys missing from the file keep
// their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays values from environment variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvServiceURL); ok {
		c.ServiceURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvColor); ok {
		c.Color = v
	}
	if v, ok := lookup(EnvListenAddr); ok {
		c.ListenAddr = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	if v, ok := lookup(EnvCacheTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCacheTTL, err)
		}
		c.CacheTTL = d
	}
	return nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
