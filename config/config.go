/*
Package config loads runtime configuration from the environment.

PURPOSE:
  All knobs come from CONFECTIONERY_* environment variables, parsed
  with envconfig. A local .env file is honored when present (godotenv),
  so development needs no exported shell state.

EXAMPLE:
  CONFECTIONERY_APP_PORT=3000 CONFECTIONERY_DB_PATH=:memory: ./server
*/
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "CONFECTIONERY"

type Config struct {
	App  AppConfig
	DB   DBConfig
	HTTP HTTPConfig
}

type AppConfig struct {
	Env       string `envconfig:"CONFECTIONERY_APP_ENV" default:"dev"`
	Port      int    `envconfig:"CONFECTIONERY_APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"CONFECTIONERY_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"CONFECTIONERY_LOG_FORMAT" default:"console"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type DBConfig struct {
	// Path is the SQLite database file; ":memory:" for ephemeral runs.
	Path string `envconfig:"CONFECTIONERY_DB_PATH" default:"confectionery.db"`
}

type HTTPConfig struct {
	CORSOrigins []string `envconfig:"CONFECTIONERY_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`

	ReadTimeoutSec  int `envconfig:"CONFECTIONERY_HTTP_READ_TIMEOUT_SEC" default:"15"`
	WriteTimeoutSec int `envconfig:"CONFECTIONERY_HTTP_WRITE_TIMEOUT_SEC" default:"15"`
	IdleTimeoutSec  int `envconfig:"CONFECTIONERY_HTTP_IDLE_TIMEOUT_SEC" default:"60"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
