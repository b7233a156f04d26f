// Package config provides configuration loading: a .env bootstrap for
// environment variables and a Viper-backed hierarchical config with
// STMT_LEDGER_* overrides.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"finparse/stmt-ledger/internal/logging"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory or the project root. It runs at most once per process.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// ConfigureLogging builds the process logger from a loaded configuration
// and installs it as the package-wide default.
func ConfigureLogging(cfg *Config) logging.Logger {
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	logging.SetDefault(logger)
	return logger
}
