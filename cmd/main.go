package main

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	cachefile "github.com/davidbz/gemcost/internal/cache/file"
	cacheredis "github.com/davidbz/gemcost/internal/cache/redis"
	"github.com/davidbz/gemcost/internal/config"
	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/http"
	"github.com/davidbz/gemcost/internal/http/middleware"
	"github.com/davidbz/gemcost/internal/observability"
	"github.com/davidbz/gemcost/internal/pricing"
	"github.com/davidbz/gemcost/internal/provider/gemini"
	"github.com/davidbz/gemcost/internal/provider/registry"
	"github.com/davidbz/gemcost/internal/provider/vertex"
	"github.com/davidbz/gemcost/internal/schedule"
	"github.com/davidbz/gemcost/internal/source/googledocs"
	"github.com/davidbz/gemcost/internal/source/static"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, refresher *schedule.Refresher) {
		if err := refresher.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start pricing refresher: %v", err)
		}
		defer refresher.Stop()

		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Pricing source, cache and updater
	if err := container.Provide(newPricingSource); err != nil {
		log.Fatalf("Failed to provide pricing source: %v", err)
	}
	if err := container.Provide(newUpdateCache); err != nil {
		log.Fatalf("Failed to provide update cache: %v", err)
	}
	if err := container.Provide(pricing.NewUpdater); err != nil {
		log.Fatalf("Failed to provide pricing updater: %v", err)
	}

	// Price catalog
	if err := container.Provide(func() *domain.CatalogHolder {
		return domain.NewCatalogHolder(domain.DefaultCatalog())
	}); err != nil {
		log.Fatalf("Failed to provide price catalog: %v", err)
	}
	if err := container.Provide(domain.NewCostEngine); err != nil {
		log.Fatalf("Failed to provide cost engine: %v", err)
	}

	// Usage providers
	if err := container.Provide(func(cfg *config.ReportConfig) (domain.UsageProviderRegistry, error) {
		reg := registry.NewRegistry()
		ctx := context.Background()

		if err := reg.Register(ctx, gemini.NewAdapter(cfg.GeminiModels)); err != nil {
			return nil, fmt.Errorf("failed to register gemini provider: %w", err)
		}
		if err := reg.Register(ctx, vertex.NewAdapter(cfg.VertexModels)); err != nil {
			return nil, fmt.Errorf("failed to register vertex provider: %w", err)
		}

		return reg, nil
	}); err != nil {
		log.Fatalf("Failed to provide usage providers: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewReportService); err != nil {
		log.Fatalf("Failed to provide report service: %v", err)
	}

	// Scheduled pricing refresh
	if err := container.Provide(func(
		updater *pricing.Updater,
		holder *domain.CatalogHolder,
		cfg *config.PricingConfig,
	) *schedule.Refresher {
		return schedule.NewRefresher(updater, holder, cfg.RefreshSchedule)
	}); err != nil {
		log.Fatalf("Failed to provide pricing refresher: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newPricingSource picks the live documentation source or the embedded
// snapshot, depending on configuration.
func newPricingSource(cfg *config.PricingConfig) domain.PricingSource {
	if cfg.Offline {
		return static.NewSource()
	}

	return googledocs.NewSource(googledocs.Config{
		ModelsURL:        cfg.ModelsURL,
		GeminiPricingURL: cfg.GeminiPricingURL,
		VertexPricingURL: cfg.VertexPricingURL,
		FetchTimeout:     cfg.FetchTimeout,
	})
}

// newUpdateCache picks the cache backend. Redis is for deployments where
// multiple instances share pricing data; the file backend is the default.
func newUpdateCache(cfg *config.PricingConfig, redisCfg *config.RedisConfig) (domain.UpdateCache, error) {
	switch cfg.CacheBackend {
	case "file", "":
		return cachefile.NewStore(cfg.CacheFile), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		return cacheredis.NewStore(client, redisCfg.Key), nil
	default:
		return nil, fmt.Errorf("unknown pricing cache backend %q", cfg.CacheBackend)
	}
}
