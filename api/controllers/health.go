package controllers

import (
	"net/http"

	"github.com/cmfsamples/catalog-api/api/responses"
	"github.com/cmfsamples/catalog-api/pkg/config"
	"github.com/cmfsamples/catalog-api/pkg/db"
	"github.com/cmfsamples/catalog-api/pkg/logger"
	pkgredis "github.com/cmfsamples/catalog-api/pkg/redis"
)

const envHeader = "X-Catalog-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteData(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasource and, when wired, the cache backend. A failed
// dependency yields a 503 with the per-dependency status map.
func HealthReady(cfg *config.Config, database db.Pinger, cache pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		status := http.StatusOK
		checks := map[string]string{}

		if database != nil {
			checks["database"] = "ok"
			if err := database.Ping(r.Context()); err != nil {
				checks["database"] = "unreachable"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Error(r.Context(), "health.database", err)
				}
			}
		}

		if cache != nil {
			checks["cache"] = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				checks["cache"] = "unreachable"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Error(r.Context(), "health.cache", err)
				}
			}
		}

		responses.WriteData(w, status, checks)
	}
}
