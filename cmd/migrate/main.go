package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/lib/pq"

	"wfm/internal/db"
	"wfm/internal/infra"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "migrate").Logger()

	conn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	applied, err := db.Migrate(ctx, conn, logger)
	if err != nil {
		logger.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
	if !applied {
		logger.Info().Msg("nothing to do")
	}
}
