package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Maddesumit/synthetic-arb-engine/internal/config"
	"github.com/Maddesumit/synthetic-arb-engine/pkg/logger"
)

// Server hosts the monitoring HTTP surface.
type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, router *Router) *Server {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves until Stop is called; it runs the listener in a separate
// goroutine and returns immediately.
func (s *Server) Start() {
	log := logger.WithComponent("server")
	log.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	log := logger.WithComponent("server")
	log.Info().Msg("Shutting down HTTP server...")

	return s.httpServer.Shutdown(ctx)
}
