package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"taskfront/internal/api"
	"taskfront/internal/models"
)

const (
	allowRemoteEnvKey = "TASKFRONT_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// TaskAPI is the upstream task service the front end proxies to.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	CreateTask(ctx context.Context, req api.TaskRequest) (models.Task, error)
	UpdateTask(ctx context.Context, req api.TaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Options tunes server behaviour beyond the required collaborators.
type Options struct {
	// UpstreamURL is advertised in the API documentation.
	UpstreamURL string
	// ShutdownDelay is how long readiness reports DOWN before the listener
	// closes.
	ShutdownDelay time.Duration
	TLSCertFile   string
	TLSKeyFile    string
}

// Server renders the task views and proxies writes to the upstream API.
type Server struct {
	addr         string
	tasks        TaskAPI
	logger       *slog.Logger
	views        *viewSet
	opts         Options
	shuttingDown atomic.Bool
}

// New creates a new server instance.
func New(addr string, tasks TaskAPI, logger *slog.Logger, opts Options) (*Server, error) {
	if tasks == nil {
		return nil, errors.New("task api is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	views, err := loadViews()
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}

	return &Server{
		addr:   addr,
		tasks:  tasks,
		logger: logger,
		views:  views,
		opts:   opts,
	}, nil
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.routes())
}

// ListenAndServe serves until ctx is cancelled, then drains: readiness
// flips to DOWN, the server waits ShutdownDelay and shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(s.log().Handler(), slog.LevelWarn),
	}

	useTLS := s.opts.TLSCertFile != "" && s.opts.TLSKeyFile != ""
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	s.log().Info("application started", "addr", ln.Addr().String(), "url", scheme+"://"+ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		var serveErr error
		if useTLS {
			serveErr = server.ServeTLS(ln, s.opts.TLSCertFile, s.opts.TLSKeyFile)
		} else {
			serveErr = server.Serve(ln)
		}
		errCh <- serveErr
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.BeginShutdown()
	s.log().Warn("shutdown requested, readiness set to DOWN", "delay", s.opts.ShutdownDelay.String())
	if s.opts.ShutdownDelay > 0 {
		timer := time.NewTimer(s.opts.ShutdownDelay)
		select {
		case <-timer.C:
		case err := <-errCh:
			timer.Stop()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	}

	s.log().Info("shutting down application")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log().Info("http server closed")
	return nil
}

// BeginShutdown marks the server as draining.
func (s *Server) BeginShutdown() {
	s.shuttingDown.Store(true)
}

// ShuttingDown reports whether BeginShutdown was called.
func (s *Server) ShuttingDown() bool {
	return s.shuttingDown.Load()
}

// ListenAddr validates a listen address. Non-loopback hosts need an
// explicit opt-in.
func ListenAddr(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("listen address is required")
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	if !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}
	return addr, nil
}

func isAllowedListenHost(host string) bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
