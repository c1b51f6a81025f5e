package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docchat/docchat/internal/matcher"
	"github.com/docchat/docchat/internal/topics"
)

// Config holds server configuration.
type Config struct {
	Port            int
	TopK            int    // ranked matches returned per question
	DefaultDocument string // used when a request names no document
	AllowAll        bool   // allow all CORS origins (dev mode)
}

// Server exposes the answering service over HTTP.
type Server struct {
	cfg        Config
	store      *topics.Store
	matcher    matcher.Matcher
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server over the given topic store and matcher.
func New(cfg Config, store *topics.Store, m matcher.Matcher) *Server {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	s := &Server{
		cfg:     cfg,
		store:   store,
		matcher: m,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS: the browser widget may be served from another origin.
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/documents", s.handleDocuments)
	r.Get("/api/chat/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router (used directly in tests).
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("docchat server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
