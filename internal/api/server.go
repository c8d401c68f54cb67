// Package api exposes the indicator registry over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/evdnx/gotix/internal/metrics"
	"github.com/evdnx/gotix/registry"
	"github.com/evdnx/gotix/suite"
)

// Options configures a Server. Zero values fall back to the defaults below.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBars        int
	Workers        int
	MaxRequests    int
	Logger         *slog.Logger
	Reporter       *metrics.Reporter
}

const (
	defaultRPS         = 20
	defaultBurst       = 40
	defaultMaxBars     = 100_000
	defaultMaxRequests = 64
	maxBodyBytes       = 64 << 20
)

// Server routes indicator requests to a dispatcher.
type Server struct {
	dispatcher  *registry.Dispatcher
	reporter    *metrics.Reporter
	limiter     *rate.Limiter
	logger      *slog.Logger
	maxBars     int
	workers     int
	maxRequests int
	mux         *http.ServeMux
}

func New(d *registry.Dispatcher, opts Options) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = defaultRPS
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = defaultBurst
	}
	if opts.MaxBars <= 0 {
		opts.MaxBars = defaultMaxBars
	}
	if opts.Workers <= 0 {
		opts.Workers = suite.DefaultWorkers
	}
	if opts.MaxRequests <= 0 {
		opts.MaxRequests = defaultMaxRequests
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		dispatcher:  d,
		reporter:    opts.Reporter,
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst),
		logger:      opts.Logger,
		maxBars:     opts.MaxBars,
		workers:     opts.Workers,
		maxRequests: opts.MaxRequests,
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /healthz", false, s.handleHealth)
	s.handle("GET /v1/indicators", true, s.handleList)
	s.handle("GET /v1/indicators/{id}", true, s.handleSchema)
	s.handle("POST /v1/indicators/{id}", true, s.handleCompute)
	s.handle("POST /v1/batch", true, s.handleBatch)
	if s.reporter != nil {
		s.mux.Handle("GET /metrics", s.reporter.Handler())
	}
}

// handle wraps h with request ids, logging, metrics and, when limited is set,
// the rate limiter.
func (s *Server) handle(pattern string, limited bool, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(pattern, limited, h))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
