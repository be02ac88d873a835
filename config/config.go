// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// DefaultServiceURL is the local address the Search Service listens on.
const DefaultServiceURL = "http://localhost:8000"

// Config holds client configuration.
type Config struct {
	// ServiceURL is the base URL of the Search Service.
	// Example: "http://localhost:8000"
	ServiceURL string `yaml:"service_url"`

	// RequestTimeout bounds a single Search Service call.
	// Zero means no timeout; the request runs until it completes or fails.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CacheTTL enables the in-memory response cache when positive.
	// Default: 0 (disabled)
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Color is the terminal color mode: auto, always or never.
	Color string `yaml:"color"`

	// ListenAddr is the address the web front end binds to.
	ListenAddr string `yaml:"listen_addr"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithServiceURL sets the Search Service base URL.
func WithServiceURL(serviceURL string) Option {
	return func(c *Config) {
		c.ServiceURL = serviceURL
	}
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithCacheTTL sets the response cache TTL. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.CacheTTL = ttl
	}
}

// WithLogLevel sets the log level name.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithColor sets the terminal color mode.
func WithColor(mode string) Option {
	return func(c *Config) {
		c.Color = mode
	}
}

// WithListenAddr sets the web front end listen address.
func WithListenAddr(addr string) Option {
	return func(c *Config) {
		c.ListenAddr = addr
	}
}

// DefaultConfig returns a Config pointing at a local Search Service with
// caching disabled and no request timeout.
func DefaultConfig() *Config {
	return &Config{
		ServiceURL: DefaultServiceURL,
		LogLevel:   "info",
		Color:      "auto",
		ListenAddr: ":8080",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithServiceURL("http://search.internal:8000"),
//	    WithCacheTTL(5*time.Minute),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies options on top of the current values.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Normalize ensures the configuration is in a canonical form.
// The service URL loses any trailing slash so paths can be appended directly.
func (c *Config) Normalize() {
	c.ServiceURL = strings.TrimSuffix(strings.TrimSpace(c.ServiceURL), "/")
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.ServiceURL == "" {
		return errors.New("config: ServiceURL is required")
	}
	u, err := url.Parse(c.ServiceURL)
	if err != nil {
		return fmt.Errorf("config: invalid ServiceURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: ServiceURL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("config: ServiceURL must include a host")
	}
	if c.RequestTimeout < 0 {
		return errors.New("config: RequestTimeout cannot be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("config: CacheTTL cannot be negative")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: invalid color mode %q: must be auto, always, or never", c.Color)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", name)
	}
}
