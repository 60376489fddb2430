package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cmfsamples/catalog-api/api/routes"
	"github.com/cmfsamples/catalog-api/internal/products"
	"github.com/cmfsamples/catalog-api/pkg/config"
	"github.com/cmfsamples/catalog-api/pkg/db"
	"github.com/cmfsamples/catalog-api/pkg/logger"
	"github.com/cmfsamples/catalog-api/pkg/metrics"
	"github.com/cmfsamples/catalog-api/pkg/migrate"
	pkgredis "github.com/cmfsamples/catalog-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	var cache products.Cache
	if cfg.Cache.Enabled {
		if !cfg.Redis.Configured() {
			logg.Warn(context.Background(), "cache enabled but no redis endpoint configured, running without cache")
		} else {
			redisClient, err = pkgredis.New(context.Background(), cfg.Redis)
			if err != nil {
				logg.Error(context.Background(), "failed to bootstrap redis", err)
				os.Exit(1)
			}
			defer func() {
				if err := redisClient.Close(); err != nil {
					logg.Error(context.Background(), "error closing redis", err)
				}
			}()
			cache = products.NewRedisCache(redisClient.Raw(), cfg.Cache.Prefix, cfg.Cache.TTL, logg)
		}
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()), cache)
	if err != nil {
		logg.Error(context.Background(), "failed to create product store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting catalog api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, httpMetrics, productService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
