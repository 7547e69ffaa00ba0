// Package schedule runs periodic pricing refreshes on a cron schedule.
package schedule

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
	"github.com/davidbz/gemcost/internal/pricing"
)

// Refresher periodically runs the pricing updater and swaps the active
// price catalog on success. An empty schedule disables it.
type Refresher struct {
	updater  *pricing.Updater
	holder   *domain.CatalogHolder
	schedule string
	cron     *cron.Cron
}

// NewRefresher creates a pricing refresher. The schedule uses standard
// five-field cron syntax, e.g. "0 6 * * *" for daily at 06:00.
func NewRefresher(updater *pricing.Updater, holder *domain.CatalogHolder, schedule string) *Refresher {
	return &Refresher{
		updater:  updater,
		holder:   holder,
		schedule: schedule,
	}
}

// Start registers the cron entry and begins the schedule. It is a no-op
// when the schedule is empty.
func (r *Refresher) Start(ctx context.Context) error {
	if r.schedule == "" {
		observability.FromContext(ctx).Info("scheduled pricing refresh disabled")
		return nil
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(r.schedule, func() { r.refresh(ctx) }); err != nil {
		return domain.WrapError(domain.CodeValidation, err,
			"invalid pricing refresh schedule %q", r.schedule)
	}
	r.cron.Start()

	observability.FromContext(ctx).Info("scheduled pricing refresh started",
		observability.String("schedule", r.schedule),
	)

	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// Refresh runs one pricing update immediately and swaps the catalog on
// success.
func (r *Refresher) Refresh(ctx context.Context) error {
	update, err := r.updater.UpdatePricing(ctx)
	if err != nil {
		return err
	}

	r.holder.Store(domain.CatalogFromUpdate(update))
	observability.FromContext(ctx).Info("price catalog refreshed",
		observability.Int("models", update.ModelCount()),
		observability.Time("pricing_timestamp", update.Timestamp),
	)

	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		observability.FromContext(ctx).Error("scheduled pricing refresh failed",
			observability.Error(err),
		)
	}
}
