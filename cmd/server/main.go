// Package main is the entry point for the course administration server.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/mulan-edu/mulan/internal/config"
	"github.com/mulan-edu/mulan/internal/server"
)

func main() {
	// A missing .env file is fine; real environments set variables
	// directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(cfg.DBPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Addr:      cfg.Addr,
		DBPath:    cfg.DBPath,
		SecretKey: cfg.SecretKey,
		PerPage:   cfg.PerPage,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
