/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Load configuration (.env + CONFECTIONERY_* environment)
  2. Build the zerolog logger
  3. Open the SQLite store
  4. Wire domain services (constructor injection, no singletons)
  5. Start the HTTP server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  in-flight requests, close the database, exit.

CONFIGURATION:
  CONFECTIONERY_APP_PORT      HTTP port (default 8080)
  CONFECTIONERY_DB_PATH       SQLite path, ":memory:" for ephemeral (default confectionery.db)
  CONFECTIONERY_LOG_LEVEL     zerolog level (default info)
  CONFECTIONERY_LOG_FORMAT    "console" or "json" (default console)
  CONFECTIONERY_CORS_ORIGINS  comma-separated allowed origins

SEE ALSO:
  - config/config.go: all knobs
  - api/server.go: router configuration
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sugarcraft/confectionery-engine/api"
	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/config"
	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/reporting"
	"github.com/sugarcraft/confectionery-engine/sales"
	"github.com/sugarcraft/confectionery-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.App)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to open database")
	}
	defer store.Close()

	ingredients := inventory.NewLedger(store)
	cat := catalog.NewCatalog(store, store)
	processor := sales.NewProcessor(store, store, store)
	reports := reporting.NewAggregator(store)

	handler := api.NewHandler(ingredients, cat, processor, reports, log)
	router := api.NewRouter(handler, cfg.HTTP.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeoutSec) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.App.Port).Str("db", cfg.DB.Path).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func newLogger(app config.AppConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stdout
	logger := zerolog.New(out)
	if app.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	}
	return logger.With().Timestamp().Str("service", "confectionery-engine").Logger().Level(level)
}
