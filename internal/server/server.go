// Package server exposes the query engine and the LLM collaborators over HTTP,
// with a WebSocket feed that pushes dashboard snapshots.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
)

// Summarizer builds the detail view of a result's risk, falling back to the
// stored summary on failure.
type Summarizer interface {
	ReportFor(ctx context.Context, result schemas.ScanResult) schemas.ScanSummary
}

// Remediator suggests fixes for a stored result.
type Remediator interface {
	SuggestFor(ctx context.Context, result schemas.ScanResult) (*schemas.SuggestRemediationOutput, error)
}

// Deps are the services the API fronts. Summarizer and Remediator may be nil
// when no LLM is configured; their endpoints then answer 503.
type Deps struct {
	Source     schemas.ResultSource
	Summarizer Summarizer
	Remediator Remediator
	// Clock is the wall clock read at the edge when a request carries no
	// explicit reference time. Defaults to time.Now.
	Clock func() time.Time
}

// Server is the dashboard API.
type Server struct {
	cfg        config.ServerConfig
	logger     *zap.Logger
	source     schemas.ResultSource
	summarizer Summarizer
	remediator Remediator
	clock      func() time.Time
	limiter    *rate.Limiter

	// closing is closed on shutdown so WebSocket feeds, which outlive
	// http.Server.Shutdown once hijacked, stop pushing.
	closing chan struct{}
	// mu guards closed so a feed registers with streams only before Close
	// starts waiting on it.
	mu      sync.Mutex
	closed  bool
	streams sync.WaitGroup
}

// New creates a Server. The source is required.
func New(cfg config.ServerConfig, logger *zap.Logger, deps Deps) (*Server, error) {
	if deps.Source == nil {
		return nil, errors.New("a result source is required")
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Server{
		cfg:        cfg,
		logger:     logger.Named("server"),
		source:     deps.Source,
		summarizer: deps.Summarizer,
		remediator: deps.Remediator,
		clock:      deps.Clock,
		limiter:    rate.NewLimiter(rate.Limit(cfg.LLMRateLimit), cfg.LLMBurst),
		closing:    make(chan struct{}),
	}, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.cfg.AllowOrigins))

	// The WebSocket route stays outside the request logger, which would
	// otherwise hold the hijacked connection's log line until it closes.
	r.Get("/ws/v1/dashboard", s.handleDashboardStream)

	r.Group(func(r chi.Router) {
		r.Use(requestLogger(s.logger))

		r.Get("/healthz", s.handleHealthCheck)
		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/results", s.handleListResults)
			r.Get("/results/{id}", s.handleGetResult)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/schedules", s.handleSchedules)

			r.Group(func(r chi.Router) {
				r.Use(s.limitLLM)
				r.Post("/results/{id}/summary", s.handleSummary)
				r.Post("/results/{id}/remediation", s.handleRemediation)
			})
		})
	})
	return r
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Dashboard API listening.", zap.String("address", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down dashboard API.")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		s.Close()
		if err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("Dashboard API stopped.")
	return err
}

// Close stops every WebSocket feed and waits for them to exit. It is safe to
// call more than once.
func (s *Server) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.closing)
	}
	s.mu.Unlock()
	s.streams.Wait()
}

// trackStream registers a WebSocket feed with Close. It reports false once the
// server is closing; otherwise the caller must call s.streams.Done.
func (s *Server) trackStream() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.streams.Add(1)
	return true
}

// limitLLM rejects collaborator calls over the configured rate. Rejected
// calls are not queued.
func (s *Server) limitLLM(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.respondWithError(w, http.StatusTooManyRequests, "Too many analysis requests. Try again shortly.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
