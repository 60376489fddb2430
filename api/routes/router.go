package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cmfsamples/catalog-api/api/controllers"
	"github.com/cmfsamples/catalog-api/api/middleware"
	products "github.com/cmfsamples/catalog-api/internal/products"
	"github.com/cmfsamples/catalog-api/pkg/config"
	"github.com/cmfsamples/catalog-api/pkg/db"
	"github.com/cmfsamples/catalog-api/pkg/logger"
	"github.com/cmfsamples/catalog-api/pkg/metrics"
	pkgredis "github.com/cmfsamples/catalog-api/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	productService products.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	var cachePinger pkgredis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cachePinger, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Post("/", controllers.CreateProduct(productService, logg))
		r.Get("/{id}", controllers.GetProduct(productService, logg))
		r.Put("/{id}", controllers.UpdateProduct(productService, logg))
		r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
	})

	return r
}
