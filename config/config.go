package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBURL    string `env:"DB_URL,required,notEmpty"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// Empty disables bearer auth on write routes.
	JWTSecret string `env:"JWT_SECRET"`
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
