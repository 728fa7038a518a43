package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string        `env:"SESAME_API_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"SESAME_REQUEST_TIMEOUT" envDefault:"10s"`
	DataDir        string        `env:"SESAME_DATA_DIR"`
	Environment    string        `env:"SESAME_ENV" envDefault:"production"`

	// Derived from DataDir.
	DBPath  string
	LogPath string
}

func Default() Config {
	return withPaths(Config{
		APIBaseURL:     "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
		Environment:    "production",
	})
}

// Load reads an optional .env file from the working directory, then the
// process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("SESAME_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return withPaths(cfg), nil
}

func withPaths(cfg Config) Config {
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(userConfigDir(), "sesame")
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, "session.db")
	cfg.LogPath = filepath.Join(cfg.DataDir, "debug.log")
	return cfg
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
