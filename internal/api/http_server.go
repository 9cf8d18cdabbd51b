package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"homehero/internal/config"
	"homehero/internal/domain"
	"homehero/internal/logging"

	"github.com/rs/zerolog"
)

const (
	rootGreeting  = "HomeHero Simple CRUD Server Running (Users, Services, Bookings)"
	healthMessage = "Server is healthy ✅"
)

// Dependencies are the services the HTTP handlers delegate to.
type Dependencies struct {
	Users    domain.UserService
	Catalog  domain.CatalogService
	Bookings domain.BookingService
	Ready    domain.Pinger
}

// HTTPServer exposes the users, services and bookings REST API.
type HTTPServer struct {
	cfg    config.HTTPConfig
	deps   Dependencies
	logger zerolog.Logger
	server *http.Server
}

func NewHTTPServer(cfg *config.Config, deps Dependencies, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:    cfg.HTTP,
		deps:   deps,
		logger: logging.Component(logger, "http"),
	}

	mux := http.NewServeMux()
	srv.routes(mux)

	handler := corsMiddleware(cfg.CORS.AllowedOrigins,
		requestIDMiddleware(
			srv.loggingMiddleware(
				srv.recoverMiddleware(mux))))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	return srv
}

func (s *HTTPServer) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("PUT /users/{email}", s.handleSaveUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{email}", s.handleGetUser)

	mux.HandleFunc("POST /services", s.handleCreateService)
	mux.HandleFunc("GET /services", s.handleListServices)
	mux.HandleFunc("GET /home-services", s.handleHomeServices)
	mux.HandleFunc("GET /services/{id}", s.handleGetService)
	mux.HandleFunc("PATCH /services/{id}", s.handleUpdateService)
	mux.HandleFunc("DELETE /services/{id}", s.handleDeleteService)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookings)
	mux.HandleFunc("GET /bookings/export", s.handleExportBookings)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleUpdateBooking)
	mux.HandleFunc("DELETE /bookings/{id}", s.handleDeleteBooking)
}

// Handler returns the fully wrapped handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rootGreeting))
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, healthMessage)
}

func (s *HTTPServer) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ready == nil {
		writeMessage(w, http.StatusOK, "ready")
		return
	}
	if err := s.deps.Ready.Ping(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("readiness check failed")
		writeFailure(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	writeMessage(w, http.StatusOK, "ready")
}
