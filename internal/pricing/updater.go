package pricing

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
)

const (
	perKDivisor        = 1000.0
	defaultMaxCacheAge = 24 * time.Hour
)

// Updater produces fresh, merged pricing updates from an external pricing
// source, with a cached snapshot as fallback when the source is down.
type Updater struct {
	source      domain.PricingSource
	cache       domain.UpdateCache
	maxCacheAge time.Duration
	now         func() time.Time
}

// NewUpdater creates a pricing updater (DI constructor).
func NewUpdater(source domain.PricingSource, cache domain.UpdateCache) *Updater {
	return &Updater{
		source:      source,
		cache:       cache,
		maxCacheAge: defaultMaxCacheAge,
		now:         time.Now,
	}
}

// UpdatePricing runs the fetch → parse → merge → emit pipeline. On an
// unrecovered fetch failure it falls back to the cached snapshot if that
// is younger than 24 hours; otherwise the fetch error surfaces.
func (u *Updater) UpdatePricing(ctx context.Context) (*domain.PricingUpdate, error) {
	logger := observability.FromContext(ctx)
	logger.Info("fetching latest model and pricing information")

	update, fetchErr := u.fetchAndMerge(ctx)
	if fetchErr == nil {
		u.persist(ctx, update)
		logger.Info("pricing updated",
			observability.Int("gemini_models", len(update.GeminiModels)),
			observability.Int("vertex_models", len(update.VertexModels)))
		return update, nil
	}

	logger.Warn("pricing update failed, trying cached snapshot",
		observability.Error(fetchErr))

	cached, cacheErr := u.loadFreshCached(ctx)
	if cacheErr != nil {
		logger.Error("no usable cached pricing",
			observability.Error(cacheErr))
		return nil, fetchErr
	}

	logger.Info("using cached pricing data",
		observability.Time("cached_at", cached.Timestamp))
	return cached, nil
}

// fetchAndMerge issues the three independent source fetches concurrently,
// parses the pricing texts and merges them against the availability list.
func (u *Updater) fetchAndMerge(ctx context.Context) (*domain.PricingUpdate, error) {
	var (
		available  domain.ModelList
		geminiText string
		vertexText string
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		available, err = u.source.AvailableModels(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		geminiText, err = u.source.GeminiPricingText(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		vertexText, err = u.source.VertexPricingText(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, domain.WrapError(domain.CodePricingFetch, err, "fetch stage failed")
	}

	geminiPricing := pricingFromParsed(ExtractGeminiPricing(geminiText))
	supplement(geminiPricing, geminiKnownPricing())

	vertexPricing := pricingFromParsed(ExtractVertexPricing(vertexText))
	supplement(vertexPricing, vertexKnownPricing())

	geminiModels := mergeWithDefaults(available.Gemini, geminiPricing)
	vertexModels := mergeWithDefaults(available.Vertex, vertexPricing)

	u.logModelChanges(ctx, geminiModels, vertexModels)

	return &domain.PricingUpdate{
		Timestamp:    u.now().UTC(),
		GeminiModels: geminiModels,
		VertexModels: vertexModels,
		UpdatedCount: len(geminiModels) + len(vertexModels),
		Source:       u.source.Sources(),
	}, nil
}

// pricingFromParsed converts per-1K page prices into stored price models.
// Later triples for the same model win, matching page reading order.
func pricingFromParsed(parsed []ParsedPrice) map[string]domain.PriceModel {
	models := make(map[string]domain.PriceModel, len(parsed))
	for _, p := range parsed {
		models[p.Model] = domain.PriceModel{
			Model:            p.Model,
			InputTokenPrice:  p.InputPer1K / perKDivisor,
			OutputTokenPrice: p.OutputPer1K / perKDivisor,
			Currency:         domain.DefaultCurrency,
		}
	}
	return models
}

// supplement adds known prices for models the parser did not find.
func supplement(models, known map[string]domain.PriceModel) {
	for name, price := range known {
		if _, ok := models[name]; !ok {
			models[name] = price
		}
	}
}

// mergeWithDefaults guarantees every available model gets some price:
// parsed pricing when present, a synthesized family default otherwise.
func mergeWithDefaults(available []string, pricing map[string]domain.PriceModel) map[string]domain.PriceModel {
	merged := make(map[string]domain.PriceModel, len(available))
	for _, name := range available {
		if price, ok := pricing[name]; ok {
			merged[name] = price
			continue
		}
		merged[name] = InferDefaultPrice(name)
	}
	return merged
}

func (u *Updater) logModelChanges(ctx context.Context, gemini, vertex map[string]domain.PriceModel) {
	existing := make(map[string]struct{})
	for _, name := range domain.DefaultCatalog().SupportedModels() {
		existing[name] = struct{}{}
	}

	var newModels []string
	updated := 0
	for _, models := range []map[string]domain.PriceModel{gemini, vertex} {
		for name := range models {
			if _, ok := existing[name]; ok {
				updated++
			} else {
				newModels = append(newModels, name)
			}
		}
	}

	logger := observability.FromContext(ctx)
	if len(newModels) > 0 {
		logger.Info("found new models",
			observability.Strings("models", newModels))
	}
	if updated > 0 {
		logger.Info("updated existing models",
			observability.Int("count", updated))
	}
}

// persist caches the update best-effort; a failed write only costs the
// next run its fallback.
func (u *Updater) persist(ctx context.Context, update *domain.PricingUpdate) {
	logger := observability.FromContext(ctx)

	if err := u.cache.Store(ctx, update); err != nil {
		logger.Warn("failed to cache pricing data",
			observability.Error(err))
		return
	}
	logger.Info("pricing data cached")
}

// loadFreshCached loads the cached snapshot and rejects it once it is
// older than the staleness window.
func (u *Updater) loadFreshCached(ctx context.Context) (*domain.PricingUpdate, error) {
	cached, err := u.cache.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewError(domain.CodePricingFetch, "no cached pricing data available")
		}
		return nil, domain.WrapError(domain.CodePricingFetch, err, "failed to load cached pricing")
	}

	age := u.now().Sub(cached.Timestamp)
	if age > u.maxCacheAge {
		return nil, domain.NewError(domain.CodePricingFetch,
			"cached pricing data is %s old, beyond the %s staleness window", age.Round(time.Minute), u.maxCacheAge)
	}

	// Older snapshots were written without updatedCount.
	if cached.UpdatedCount == 0 {
		cached.UpdatedCount = cached.ModelCount()
	}

	return cached, nil
}
