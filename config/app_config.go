// Package config loads application configuration from the environment, with
// optional .env file support.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig holds the persistence substrate settings.
type DBConfig struct {
	Url string `envconfig:"URL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// AppConfig is the root configuration for the ledger.
type AppConfig struct {
	Env string    `envconfig:"APP_ENV" default:"development"`
	DB  DBConfig  `envconfig:"DATABASE"`
	Log LogConfig `envconfig:"LOG"`
}

// Load reads configuration from the environment. If an env file path is
// given (or a .env file exists), it is loaded first; absence of the file is
// not an error.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found or specified, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
