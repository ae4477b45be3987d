// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Convert configures the batch converter.
type Convert struct {
	Root        string `env:"QUESTGRAPH_ROOT" envDefault:"."`
	Workers     int    `env:"QUESTGRAPH_WORKERS" envDefault:"4"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

// Server configures the HTTP server.
type Server struct {
	Addr        string `env:"QUESTGRAPH_ADDR" envDefault:":3000"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConvert parses and validates the converter configuration.
func LoadConvert() (*Convert, error) {
	var cfg Convert
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("QUESTGRAPH_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if err := validateLogging(&cfg.LogLevel, &cfg.LogFormat); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadServer parses and validates the server configuration.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := validateLogging(&cfg.LogLevel, &cfg.LogFormat); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateLogging(level, format *string) error {
	*level = strings.ToLower(*level)
	*format = strings.ToLower(*format)
	switch *level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q: must be 'debug', 'info', 'warn', or 'error'", *level)
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("invalid LOG_FORMAT %q: must be 'text' or 'json'", *format)
	}
	return nil
}
