package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/poiesic/essaysearch/page"
	"github.com/poiesic/essaysearch/render"
	"github.com/poiesic/essaysearch/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	defaultEssayLimit = 20
	maxEssayLimit     = 100
	shutdownTimeout   = 10 * time.Second
)

// Server is the web front end for the search page.
type Server struct {
	echo     *echo.Echo
	service  service.SearchService
	renderer *render.HTMLRenderer
	gatherer prometheus.Gatherer
	pageOpts []page.Option
	addr     string
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithGatherer exposes metrics from g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithPageOptions sets the options applied to every page the server creates.
func WithPageOptions(opts ...page.Option) Option {
	return func(s *Server) {
		s.pageOpts = append(s.pageOpts, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// New creates a server backed by svc.
func New(svc service.SearchService, opts ...Option) (*Server, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}

	s := &Server{
		service:  svc,
		renderer: render.NewHTMLRenderer(),
		addr:     DefaultAddr,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				s.logger.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				s.logger.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"err", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/", s.handleSearch)
	e.GET("/essays", s.handleEssays)
	e.GET("/health", s.handleHealth)
	if s.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	s.echo = e
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", "address", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleSearch(c echo.Context) error {
	p, err := page.New(s.service, s.pageOpts...)
	if err != nil {
		return err
	}

	if query := c.QueryParam("q"); query != "" {
		p.SetQuery(query)
		if err := p.Submit(c.Request().Context()); err != nil {
			s.logger.Debug("submission rejected", "query", query, "err", err)
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, p.View()); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleEssays(c echo.Context) error {
	limit, err := intParam(c, "limit", defaultEssayLimit)
	if err != nil || limit < 1 || limit > maxEssayLimit {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: limit must be 1-%d", ErrInvalidPagination, maxEssayLimit))
	}
	offset, err := intParam(c, "offset", 0)
	if err != nil || offset < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: offset must be >= 0", ErrInvalidPagination))
	}

	essays, err := s.service.ListEssays(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "search service unavailable").SetInternal(err)
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderEssays(&buf, essays, limit, offset); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
