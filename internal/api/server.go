package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tradenotify/internal/api/health"
	"tradenotify/internal/api/notify"
	"tradenotify/internal/metrics"
	"tradenotify/pkg/errors"
	"tradenotify/pkg/logger"
)

// ServerConfig contains configuration for the HTTP server
type ServerConfig struct {
	Addr        string
	ServiceName string
}

// Server wraps http.Server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures the HTTP server with all routes
func NewServer(cfg ServerConfig, healthHandler *health.Handler, notifyHandler *notify.Handler, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthcheck", instrument("/healthcheck", log, healthHandler.HandleHealth))
	mux.HandleFunc("POST /send-message", instrument("/send-message", log, notifyHandler.HandleSendMessage))
	mux.HandleFunc("POST /trade-execution", instrument("/trade-execution", log, notifyHandler.HandleTradeExecution))

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"service":%q,"status":"running"}`, cfg.ServiceName)
	})

	log.Infof("HTTP server configured on %s", cfg.Addr)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until the server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server.
// It stops accepting new requests and waits for in-flight sends to
// complete within the context deadline; the Telegram session is only
// closed after this returns.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("HTTP server stopped")
	return nil
}
