// Package api provides the HTTP API server and handlers for the library system.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Alexandra151/LibrarySystem/internal/access"
	"github.com/Alexandra151/LibrarySystem/internal/http/response"
	"github.com/Alexandra151/LibrarySystem/internal/ratelimit"
	"github.com/Alexandra151/LibrarySystem/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService   *service.AuthService
	authorService *service.AuthorService
	bookService   *service.BookService
	loanService   *service.LoanService
	loginLimiter  *ratelimit.KeyedRateLimiter
	router        *chi.Mux
	logger        *slog.Logger
}

// Config carries the tunables the server needs beyond its services.
type Config struct {
	// LoginRatePerMinute limits login attempts per client IP.
	LoginRatePerMinute int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	authService *service.AuthService,
	authorService *service.AuthorService,
	bookService *service.BookService,
	loanService *service.LoanService,
	cfg Config,
	logger *slog.Logger,
) *Server {
	if cfg.LoginRatePerMinute <= 0 {
		cfg.LoginRatePerMinute = 10
	}

	s := &Server{
		authService:   authService,
		authorService: authorService,
		bookService:   bookService,
		loanService:   loanService,
		loginLimiter:  ratelimit.New(float64(cfg.LoginRatePerMinute)/60, cfg.LoginRatePerMinute),
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(s.requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Name"},
		ExposedHeaders:   []string{"X-Total-Count", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check sits outside the versioned API and skips the client
	// name requirement so load balancers can probe it.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireClientName)

		// Auth endpoints (public, rate limited per client IP).
		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimitByIP(s.loginLimiter)).Post("/login", s.handleLogin)
		})

		// Authors.
		r.Route("/authors", func(r chi.Router) {
			r.With(s.requireOperation(access.OpListAuthors)).Get("/", s.handleListAuthors)
			r.With(s.requireOperation(access.OpGetAuthor)).Get("/{id}", s.handleGetAuthor)
			r.With(s.requireOperation(access.OpCreateAuthor)).Post("/", s.handleCreateAuthor)
			r.With(s.requireOperation(access.OpUpdateAuthor)).Put("/{id}", s.handleUpdateAuthor)
			r.With(s.requireOperation(access.OpDeleteAuthor)).Delete("/{id}", s.handleDeleteAuthor)
		})

		// Books.
		r.Route("/books", func(r chi.Router) {
			r.With(s.requireOperation(access.OpListBooks)).Get("/", s.handleListBooks)
			r.With(s.requireOperation(access.OpGetBook)).Get("/{id}", s.handleGetBook)
			r.With(s.requireOperation(access.OpCreateBook)).Post("/", s.handleCreateBook)
			r.With(s.requireOperation(access.OpUpdateBook)).Put("/{id}", s.handleUpdateBook)
			r.With(s.requireOperation(access.OpDeleteBook)).Delete("/{id}", s.handleDeleteBook)
		})

		// Loans.
		r.Route("/loans", func(r chi.Router) {
			r.With(s.requireOperation(access.OpListLoans)).Get("/", s.handleListLoans)
			r.With(s.requireOperation(access.OpGetLoan)).Get("/{id}", s.handleGetLoan)
			r.With(s.requireOperation(access.OpCheckout)).Post("/", s.handleCheckout)
			r.With(s.requireOperation(access.OpReturn)).Patch("/{id}/return", s.handleReturn)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

// requestLogger logs each request with method, path, status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", w.Header().Get(headerRequestID),
			"remote", r.RemoteAddr,
		)
	})
}
