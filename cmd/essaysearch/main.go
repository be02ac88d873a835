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


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/essaysearch/config"
	"github.com/poiesic/essaysearch/render"
	"github.com/urfave/cli/v2"
)

const configMetadataKey = "config"

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "essaysearch",
		Usage:     "Semantic search over an essay collection",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "service-url",
				Usage: "Search service base URL",
				Value: config.DefaultServiceURL,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request timeout (0 disables)",
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "Cache responses in memory for this long (0 disables)",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Color output (auto, always, never)",
				Value: "auto",
			},
		},
		Before: func(c *cli.Context) error {
			if err := loadConfig(c); err != nil {
				return err
			}
			return setupLogger(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run one query and print the results",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
			},
			{
				Name:   "interactive",
				Usage:  "Type queries at a prompt; :quit exits",
				Action: interactiveCommand,
			},
			{
				Name:   "essays",
				Usage:  "List the essay catalogue",
				Action: essaysCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of essays to list",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of essays to skip",
						Value: 0,
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "Run one query per line of a file",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "File with one query per line (- for stdin)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent requests (0 picks a default)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per query",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the search page over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
					},
				},
			},
		},
	}
}

// loadConfig resolves configuration from defaults, the config file, the
// environment (including .env) and global flags, in increasing precedence.
func loadConfig(c *cli.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("service-url") {
		cfg.Apply(config.WithServiceURL(c.String("service-url")))
	}
	if c.IsSet("timeout") {
		cfg.Apply(config.WithRequestTimeout(c.Duration("timeout")))
	}
	if c.IsSet("cache-ttl") {
		cfg.Apply(config.WithCacheTTL(c.Duration("cache-ttl")))
	}
	if c.IsSet("log-level") {
		cfg.Apply(config.WithLogLevel(c.String("log-level")))
	}
	if c.IsSet("color") {
		cfg.Apply(config.WithColor(c.String("color")))
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configMetadataKey] = cfg
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configMetadataKey].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

func setupLogger(c *cli.Context) error {
	level, err := config.ParseLogLevel(appConfig(c).LogLevel)
	if err != nil {
		return err
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func useColors(c *cli.Context) bool {
	mode, err := render.ParseColorMode(appConfig(c).Color)
	if err != nil {
		return false
	}
	return render.ResolveColors(mode, c.App.Writer == os.Stdout && render.StdoutIsTerminal())
}
