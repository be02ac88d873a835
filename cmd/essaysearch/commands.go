package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/essaysearch"
	"github.com/poiesic/essaysearch/batch"
	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/page"
	"github.com/poiesic/essaysearch/render"
	"github.com/poiesic/essaysearch/server"
	"github.com/urfave/cli/v2"
)

const quitCommand = ":quit"

// failureMonitor remembers whether any submission failed.
type failureMonitor struct {
	failed error
}

func (m *failureMonitor) Start(string)                           {}
func (m *failureMonitor) Succeeded(string, *core.SearchResponse) {}
func (m *failureMonitor) Failed(_ string, err error)             { m.failed = err }
func (m *failureMonitor) Rejected(string, error)                 {}
func (m *failureMonitor) Finish(string)                          {}

var _ page.SubmitMonitor = (*failureMonitor)(nil)

func openClient(c *cli.Context) (*essaysearch.Client, error) {
	client, err := essaysearch.New(appConfig(c))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	monitor := &failureMonitor{}
	p, err := client.NewPage(page.WithMonitor(monitor))
	if err != nil {
		return err
	}

	p.SetQuery(query)
	if err := p.Activate(c.Context); err != nil {
		return cli.Exit(fmt.Sprintf("search: %v", err), 2)
	}

	if err := render.NewTextRenderer(c.App.Writer, useColors(c)).Render(p.View()); err != nil {
		return err
	}
	if monitor.failed != nil {
		return cli.Exit(fmt.Sprintf("search failed: %v", monitor.failed), 1)
	}
	return nil
}

func interactiveCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	p, err := client.NewPage()
	if err != nil {
		return err
	}
	renderer := render.NewTextRenderer(c.App.Writer, useColors(c))

	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(c.App.Writer, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.App.Writer)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == quitCommand {
			return nil
		}

		p.SetQuery(line)
		if err := p.HandleKey(c.Context, page.KeyEnter); err != nil {
			if errors.Is(err, page.ErrEmptyQuery) {
				continue
			}
			fmt.Fprintln(c.App.ErrWriter, err)
			continue
		}
		if err := renderer.Render(p.View()); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer)
	}
}

func essaysCommand(c *cli.Context) error {
	limit, offset := c.Int("limit"), c.Int("offset")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	if offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	essays, err := client.Service().ListEssays(c.Context, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to list essays: %w", err)
	}

	table := render.NewEssayTable(c.App.Writer)
	table.Add(essays...)
	return table.Render()
}

func batchCommand(c *cli.Context) error {
	queries, err := readQueries(c, c.String("file"))
	if err != nil {
		return err
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := []batch.Option{
		batch.WithMaxAttempts(c.Int("max-retries")),
		batch.WithRetryDelay(c.Duration("retry-delay")),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, batch.WithPoolSize(workers))
	}
	if c.Bool("progress") {
		opts = append(opts, batch.WithProgress(c.App.ErrWriter))
	}

	runner, err := client.NewBatchRunner(opts...)
	if err != nil {
		return err
	}
	defer runner.Release()

	renderer := render.NewTextRenderer(c.App.Writer, useColors(c))
	failed := 0
	for _, outcome := range runner.Run(c.Context, queries) {
		fmt.Fprintf(c.App.Writer, "=== [%d] %s\n", outcome.Index+1, outcome.Query)
		if outcome.Err != nil {
			failed++
			fmt.Fprintf(c.App.Writer, "error: %v\n\n", outcome.Err)
			continue
		}
		if err := renderer.Render(page.NewView(outcome.Query, false, outcome.Response)); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d queries failed", failed, len(queries)), 1)
	}
	return nil
}

// readQueries reads one query per line, skipping blank lines.
func readQueries(c *cli.Context, path string) ([]string, error) {
	var r io.Reader = c.App.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open query file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			queries = append(queries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	return queries, nil
}

func serveCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	var opts []server.Option
	if addr := c.String("addr"); addr != "" {
		opts = append(opts, server.WithAddr(addr))
	}
	srv, err := client.NewServer(opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
