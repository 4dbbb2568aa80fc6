package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	authService     driving.AuthService
	userService     driving.UserService
	projectService  driving.ProjectService
	noteService     driving.NoteService
	chatService     driving.ChatService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	askService      driving.AskService

	// Infrastructure
	taskQueue driven.TaskQueue
	db        Pinger // PostgreSQL health check
	redis     Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	logger *slog.Logger,
	authService driving.AuthService,
	userService driving.UserService,
	projectService driving.ProjectService,
	noteService driving.NoteService,
	chatService driving.ChatService,
	documentService driving.DocumentService,
	settingsService driving.SettingsService,
	askService driving.AskService,
	taskQueue driven.TaskQueue,
	db Pinger,
	redis Pinger, // can be nil
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		logger:          logger,
		authService:     authService,
		userService:     userService,
		projectService:  projectService,
		noteService:     noteService,
		chatService:     chatService,
		documentService: documentService,
		settingsService: settingsService,
		askService:      askService,
		taskQueue:       taskQueue,
		db:              db,
		redis:           redis,
	}

	s.setupRoutes()

	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewLoggingMiddleware(logger).Handler(handler)
	handler = NewRecoveryMiddleware(logger).Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(h))
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout", authed(s.handleLogout))

	// User endpoints
	s.router.Handle("GET /api/v1/me", authed(s.handleGetMe))

	// Admin-only user management
	s.router.Handle("GET /api/v1/users", admin(s.handleListUsers))
	s.router.Handle("POST /api/v1/users", admin(s.handleCreateUser))
	s.router.Handle("DELETE /api/v1/users/{id}", admin(s.handleDeleteUser))

	// Project endpoints
	s.router.Handle("GET /api/v1/projects", authed(s.handleListProjects))
	s.router.Handle("POST /api/v1/projects", authed(s.handleCreateProject))
	s.router.Handle("GET /api/v1/projects/{id}", authed(s.handleGetProject))
	s.router.Handle("PUT /api/v1/projects/{id}", authed(s.handleUpdateProject))
	s.router.Handle("DELETE /api/v1/projects/{id}", authed(s.handleDeleteProject))

	// Document endpoints
	s.router.Handle("GET /api/v1/projects/{id}/documents", authed(s.handleListDocuments))
	s.router.Handle("POST /api/v1/projects/{id}/documents", authed(s.handleUploadDocument))
	s.router.Handle("GET /api/v1/documents/{id}", authed(s.handleGetDocument))
	s.router.Handle("GET /api/v1/documents/{id}/passages", authed(s.handleGetDocumentPassages))
	s.router.Handle("POST /api/v1/documents/{id}/reindex", authed(s.handleReindexDocument))
	s.router.Handle("DELETE /api/v1/documents/{id}", authed(s.handleDeleteDocument))

	// Chat endpoints
	s.router.Handle("GET /api/v1/projects/{id}/chats", authed(s.handleListChats))
	s.router.Handle("POST /api/v1/projects/{id}/chats", authed(s.handleCreateChat))
	s.router.Handle("GET /api/v1/chats/{id}", authed(s.handleGetChat))
	s.router.Handle("PUT /api/v1/chats/{id}", authed(s.handleRenameChat))
	s.router.Handle("DELETE /api/v1/chats/{id}", authed(s.handleDeleteChat))
	s.router.Handle("GET /api/v1/chats/{id}/messages", authed(s.handleListMessages))

	// Ask endpoint
	s.router.Handle("POST /api/v1/ask", authed(s.handleAsk))

	// Note endpoints
	s.router.Handle("GET /api/v1/projects/{id}/notes", authed(s.handleListNotes))
	s.router.Handle("POST /api/v1/projects/{id}/notes", authed(s.handleCreateNote))
	s.router.Handle("GET /api/v1/notes/{id}", authed(s.handleGetNote))
	s.router.Handle("PUT /api/v1/notes/{id}", authed(s.handleUpdateNote))
	s.router.Handle("DELETE /api/v1/notes/{id}", authed(s.handleDeleteNote))

	// Settings endpoints
	s.router.Handle("GET /api/v1/settings", authed(s.handleGetSettings))
	s.router.Handle("PUT /api/v1/settings", authed(s.handleUpdateSettings))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
