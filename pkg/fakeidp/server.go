// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package fakeidp serves the testing endpoints of an identity provider over
// an in-memory admin event queue, along with a password-grant token endpoint.
// It lets the assertion library and the CLI run without the real system.
//
// As with the real server, http.Server wraps the gin engine so Shutdown can
// drain in-flight requests.
package fakeidp

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/queue"
	"github.com/stratastor/logger"
)

const (
	defaultTokenTTL   = 5 * time.Minute
	defaultSigningKey = "adminevents-fake-idp"
)

// Config configures the fake server's single admin user
type Config struct {
	SigningKey string
	UserID     string
	Username   string
	Password   string
	TokenTTL   time.Duration

	// Release puts gin in release mode
	Release bool
}

// Server is the fake identity provider. It serves one realm-agnostic admin
// event queue and can be started at most once at a time.
type Server struct {
	cfg    Config
	queue  *queue.MemoryQueue
	logger logger.Logger
	engine *gin.Engine

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	stopped  chan struct{}
}

// New builds the server. A nil q gets a fresh MemoryQueue.
func New(cfg Config, q *queue.MemoryQueue, l logger.Logger) *Server {
	if q == nil {
		q = queue.NewMemoryQueue()
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.SigningKey == "" {
		cfg.SigningKey = defaultSigningKey
	}

	s := &Server{cfg: cfg, queue: q, logger: l}
	s.engine = s.newEngine()
	return s
}

func (s *Server) newEngine() *gin.Engine {
	if s.cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggerMiddleware(s.logger))
	engine.Use(ErrorHandler())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "queued": s.queue.Len()})
	})

	realm := engine.Group("/realms/:realm")
	{
		testing := realm.Group("/testing")
		testing.POST("/clear-admin-event-queue", s.clearAdminEventQueue)
		testing.GET("/poll-admin-event", s.pollAdminEvent)
		testing.POST("/poll-admin-event-queue", s.pollAdminEvent)
		testing.POST("/on-admin-event", s.onAdminEvent)

		realm.POST("/protocol/openid-connect/token", s.token)
	}
	return engine
}

// Handler returns the server's http.Handler, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Queue returns the queue events are served from
func (s *Server) Queue() *queue.MemoryQueue {
	return s.queue
}

// Start listens on addr and serves in the background until Shutdown or ctx
// is done. It returns once the listener is bound.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return errors.New(errors.ServerStart, "server already started")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.ServerStart).WithMetadata("addr", addr)
	}

	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.stopped = make(chan struct{})

	srv, stopped := s.srv, s.stopped
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Fake server stopped", "err", err)
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.stop(shutdownCtx, srv)
	}()

	s.logger.Info("Fake server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.stop(ctx, nil)
}

// stop shuts down the running server. A non-nil only limits it to that
// server, so a watcher from an earlier Start cannot stop a later one.
func (s *Server) stop(ctx context.Context, only *http.Server) error {
	s.mu.Lock()
	srv, stopped := s.srv, s.stopped
	if srv == nil || (only != nil && srv != only) {
		s.mu.Unlock()
		return nil
	}
	s.srv = nil
	s.listener = nil
	s.stopped = nil
	s.mu.Unlock()

	close(stopped)
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, errors.ServerShutdown)
	}
	s.logger.Info("Fake server stopped")
	return nil
}
