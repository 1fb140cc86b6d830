// Package server wires the application together: database, sessions,
// services, handlers and routes all meet here, so main.go stays a thin
// entry point and tests can build a complete handler without opening a
// listening socket.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mulan-edu/mulan/internal/auth"
	"github.com/mulan-edu/mulan/internal/handler"
	"github.com/mulan-edu/mulan/internal/middleware"
	sqliteRepo "github.com/mulan-edu/mulan/internal/repository/sqlite"
	"github.com/mulan-edu/mulan/internal/service"
	"github.com/mulan-edu/mulan/web"
)

// Config holds server configuration.
type Config struct {
	Addr      string
	DBPath    string
	SecretKey string
	PerPage   int
}

// Server owns the router and the resources behind it. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, runs migrations, and wires every layer:
// repositories into services, services into handlers, handlers onto
// routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	sessions, err := auth.NewSessions(s.config.SecretKey)
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}

	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db, passwords, s.logger)
	enterpriseService := service.NewEnterpriseService(s.db, s.logger, s.config.PerPage)

	render, err := handler.NewRenderer(sessions, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	authHandler := handler.NewAuthHandler(render, authService, sessions)
	profileHandler := handler.NewProfileHandler(render, authService, sessions)
	enterpriseHandler := handler.NewEnterpriseHandler(render, enterpriseService, sessions)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.RequestLogger(s.logger))
	// CurrentUser must come before RequireAuth: it resolves the session
	// cookie into a user for every route, public ones included, so the
	// nav bar and the login page both know who is asking.
	s.router.Use(auth.CurrentUser(sessions, s.db))

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("locating static assets: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	s.router.Get("/login", authHandler.LoginPage)
	s.router.Post("/login", authHandler.Login)
	s.router.Get("/logout", authHandler.Logout)
	s.router.Get("/register", authHandler.RegisterPage)
	s.router.Post("/register", authHandler.Register)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/", enterpriseHandler.Index)
		r.Get("/index", enterpriseHandler.Index)
		r.Post("/", enterpriseHandler.Create)
		r.Post("/index", enterpriseHandler.Create)
		r.Get("/user/{username}", profileHandler.Show)
		r.Get("/edit_profile", profileHandler.EditPage)
		r.Post("/edit_profile", profileHandler.Edit)
		r.Get("/edit_enterprise/{name}", enterpriseHandler.EditPage)
		r.Post("/edit_enterprise/{name}", enterpriseHandler.Edit)
		r.Post("/delete_enterprise/{name}", enterpriseHandler.Delete)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, r, nil)
	})

	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without serving. Start callers
// do not need this; it exists for tests that use Handler directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until a shutdown signal arrives, then
// drains in-flight requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.config.Addr),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
