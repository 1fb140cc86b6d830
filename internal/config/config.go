// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr      string
	DBPath    string
	SecretKey string
	PerPage   int
}

// Load reads configuration from environment variables, applying
// defaults where a variable is unset. SECRET_KEY has no default; a
// guessable signing key would make every session forgeable.
func Load() (Config, error) {
	cfg := Config{
		Addr:      getEnv("ADDR", ":8080"),
		DBPath:    getEnv("DB_PATH", "data/mulan.db"),
		SecretKey: os.Getenv("SECRET_KEY"),
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("config: SECRET_KEY is required")
	}

	perPage := getEnv("ENTERPRISES_PER_PAGE", "3")
	n, err := strconv.Atoi(perPage)
	if err != nil || n < 1 {
		return Config{}, fmt.Errorf("config: invalid ENTERPRISES_PER_PAGE %q", perPage)
	}
	cfg.PerPage = n

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
