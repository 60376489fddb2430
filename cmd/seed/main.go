package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/cmfsamples/catalog-api/pkg/config"
	"github.com/cmfsamples/catalog-api/pkg/db"
	"github.com/cmfsamples/catalog-api/pkg/logger"
	"github.com/cmfsamples/catalog-api/pkg/seed"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := seed.Run(context.Background(), dbClient.DB(), logg); err != nil {
		logg.Error(context.Background(), "failed to seed catalog", err)
		os.Exit(1)
	}
}
