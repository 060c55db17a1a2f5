// Package main runs the PaintMate quote API server.
package main

import (
	"context"
	"os"

	"github.com/choozin/paintmatepro/api"
	"github.com/choozin/paintmatepro/internal/catalog"
	"github.com/choozin/paintmatepro/pkg/platform"
)

func main() {
	log := platform.InitLogger(platform.GetEnv("PAINTMATE_LOG_LEVEL", "info"), false)

	cfg := api.DefaultConfig()
	cfg.Port = platform.GetEnvInt("PAINTMATE_PORT", cfg.Port)

	var store catalog.Store
	if host := platform.GetEnv("PAINTMATE_PG_HOST", ""); host != "" {
		pg, err := catalog.NewPostgresStore(context.Background(), &catalog.Config{
			Host:     host,
			Port:     platform.GetEnvInt("PAINTMATE_PG_PORT", 5432),
			Database: platform.GetEnv("PAINTMATE_PG_DATABASE", "paintmate"),
			Username: platform.GetEnv("PAINTMATE_PG_USER", "paintmate"),
			Password: platform.GetEnv("PAINTMATE_PG_PASSWORD", ""),
			SSLMode:  platform.GetEnv("PAINTMATE_PG_SSLMODE", "disable"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("catalog database connection failed")
		}
		defer pg.Close()
		store = pg
		log.Info().Str("host", host).Msg("using Postgres product catalog")
	} else {
		store = catalog.NewMemoryStore(catalog.DefaultItems())
		log.Info().Msg("using built-in product catalog")
	}

	server := api.NewServer(store, cfg, log)
	if err := server.StartWithGracefulShutdown(); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}
