package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings. The oracle is optional:
// with no URL configured, quest generation falls back to the built-in set.
type Config struct {
	DBPath string `env:"FITQUEST_DB"`

	OracleURL     string        `env:"FITQUEST_ORACLE_URL"`
	OracleAPIKey  string        `env:"FITQUEST_ORACLE_API_KEY"`
	OracleModel   string        `env:"FITQUEST_ORACLE_MODEL" envDefault:"gpt-4o-mini"`
	OracleTimeout time.Duration `env:"FITQUEST_ORACLE_TIMEOUT" envDefault:"30s"`

	QuestsPerDay int    `env:"FITQUEST_QUESTS_PER_DAY" envDefault:"4"`
	LogLevel     string `env:"FITQUEST_LOG_LEVEL" envDefault:"warn"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.QuestsPerDay < 1 {
		cfg.QuestsPerDay = 1
	}
	return cfg, nil
}
