package schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/pricing"
	"github.com/davidbz/gemcost/internal/schedule"
	"github.com/davidbz/gemcost/internal/source/static"
)

// memoryCache is an in-memory update cache for tests.
type memoryCache struct {
	update *domain.PricingUpdate
}

func (c *memoryCache) Load(context.Context) (*domain.PricingUpdate, error) {
	if c.update == nil {
		return nil, domain.ErrCacheMiss
	}
	return c.update, nil
}

func (c *memoryCache) Store(_ context.Context, update *domain.PricingUpdate) error {
	c.update = update
	return nil
}

func newRefresher(scheduleSpec string) (*schedule.Refresher, *domain.CatalogHolder) {
	holder := domain.NewCatalogHolder(domain.DefaultCatalog())
	updater := pricing.NewUpdater(static.NewSource(), &memoryCache{})
	return schedule.NewRefresher(updater, holder, scheduleSpec), holder
}

func TestRefresher_Refresh_SwapsCatalog(t *testing.T) {
	refresher, holder := newRefresher("")

	require.NoError(t, refresher.Refresh(context.Background()))

	models := holder.Load().SupportedModels()
	require.Contains(t, models, "gemini-2.5-flash-thinking")
	require.Contains(t, models, "imagegeneration-004-ultra")
}

func TestRefresher_Start_EmptyScheduleIsDisabled(t *testing.T) {
	refresher, _ := newRefresher("")

	require.NoError(t, refresher.Start(context.Background()))
	refresher.Stop()
}

func TestRefresher_Start_InvalidSchedule(t *testing.T) {
	refresher, _ := newRefresher("every tuesday")

	err := refresher.Start(context.Background())
	require.Error(t, err)
	require.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestRefresher_Start_ValidSchedule(t *testing.T) {
	refresher, _ := newRefresher("0 6 * * *")

	require.NoError(t, refresher.Start(context.Background()))
	refresher.Stop()
}
