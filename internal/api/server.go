// Package api provides the HTTP API server and handlers for the Arvand portfolio service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/arvandstudio/arvand-server/internal/media/images"
	"github.com/arvandstudio/arvand-server/internal/service"
	"github.com/arvandstudio/arvand-server/internal/sse"
	"github.com/arvandstudio/arvand-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog    *service.CatalogService
	cart       *service.CartService
	notifier   *service.NotifierService
	audit      *service.AuditService
	chat       *service.ChatService
	composer   *service.ComposerService
	admin      *service.AdminService
	search     *service.SearchService
	images     *images.Storage
	sseHandler *sse.Handler
	validator  *validation.Validator
	router     *chi.Mux
	logger     *slog.Logger

	corsOrigins  []string
	loginLimiter *RateLimiter
}

// Services bundles everything the server needs.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Notifier *service.NotifierService
	Audit    *service.AuditService
	Chat     *service.ChatService
	Composer *service.ComposerService
	Admin    *service.AdminService
	Search   *service.SearchService
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services Services, imageStorage *images.Storage, sseHandler *sse.Handler, corsOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		catalog:      services.Catalog,
		cart:         services.Cart,
		notifier:     services.Notifier,
		audit:        services.Audit,
		chat:         services.Chat,
		composer:     services.Composer,
		admin:        services.Admin,
		search:       services.Search,
		images:       imageStorage,
		sseHandler:   sseHandler,
		validator:    validation.New(),
		router:       chi.NewRouter(),
		logger:       logger,
		corsOrigins:  corsOrigins,
		loginLimiter: NewRateLimiter(20, loginRateInterval, 5),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Admin-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)

		// Public catalog.
		r.Get("/artworks", s.handleListArtworks)
		r.Get("/books", s.handleListBooks)
		r.Get("/journal", s.handleListJournal)
		r.Get("/search", s.handleSearch)

		// Cart.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Post("/items", s.handleAddCartItem)
			r.Delete("/items/{id}", s.handleRemoveCartItem)
		})

		// Notifications.
		r.Get("/notifications", s.handleListNotifications)
		r.Delete("/notifications/{id}", s.handleDismissNotification)

		// Event stream.
		r.Get("/events", s.sseHandler.ServeHTTP)

		// Stored uploads.
		r.Get("/images/{name}", s.handleGetImage)

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.With(RateLimitMiddleware(s.loginLimiter, s.logger)).Post("/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdminKey)

				r.Post("/logout", s.handleLogout)

				r.Post("/artworks", s.handleCreateArtwork)
				r.Delete("/artworks/{id}", s.handleDeleteArtwork)
				r.Post("/books", s.handleCreateBook)
				r.Delete("/books/{id}", s.handleDeleteBook)
				r.Post("/journal", s.handleCreateJournal)
				r.Delete("/journal/{id}", s.handleDeleteJournal)

				r.Get("/logs", s.handleListLogs)

				r.Get("/chat", s.handleListChat)
				r.Post("/chat", s.handleAskChat)
				r.Delete("/chat", s.handleClearChat)
			})
		})
	})
}
