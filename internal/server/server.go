package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fullstack-app/apiserver/config"
	"github.com/fullstack-app/apiserver/internal/handlers"
	"github.com/fullstack-app/apiserver/internal/services"
	"github.com/fullstack-app/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
}

// New constructs a Server with basic middleware and defaults. The
// configuration is validated here so a missing table, index, or secret
// fails at startup rather than on the first request.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := store.NewDynamoClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	backend := store.NewDynamoBackend(client)

	userRepo, err := store.NewUserRepository(backend, cfg.Database)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(userRepo, cfg.Token.Secret)

	router := NewRouter(authService, cfg.Token.Secret)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
	}, nil
}

// NewRouter builds the route tree over an already-wired service. Split
// out from New so tests can drive the exact route tree against an
// in-memory backend.
func NewRouter(authService *services.AuthService, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		handlers.CORS,
	)
	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.NotFound)

	handlers.AuthRouter(router, authService, jwtSecret)

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}
