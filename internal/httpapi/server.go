// Package httpapi exposes the game service as a JSON HTTP API with a
// websocket stream for AI autoplay.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/arcade2048/internal/service"
)

// Config holds HTTP server settings.
type Config struct {
	Address         string
	CORS            bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AutoplayDelay   time.Duration
}

// Server serves the game API.
type Server struct {
	config Config
	svc    *service.Service
	logger *log.Logger
	router chi.Router
}

// New creates a server for svc. A nil logger discards output.
func New(cfg Config, svc *service.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		config: cfg,
		svc:    svc,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.config.CORS {
		r.Use(cors)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/new_game", s.handleNewGame)
		r.Post("/new_vs_game", s.handleNewVsGame)
		r.Post("/move", s.handleMove)
		r.Post("/undo", s.handleUndo)
		r.Post("/hint", s.handleHint)
		r.Post("/ai_move", s.handleAIMove)
		r.Post("/evaluate_move", s.handleEvaluateMove)
		r.Post("/best_moves", s.handleBestMoves)
		r.Get("/game_state", s.handleGameState)
		r.Get("/stats", s.handleStats)
		r.Delete("/delete_game", s.handleDeleteGame)
		r.Get("/health", s.handleHealth)
		r.Get("/scores", s.handleScores)
		r.Get("/ws/autoplay", s.handleAutoplay)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
