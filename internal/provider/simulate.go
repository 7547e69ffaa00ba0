// Package provider contains shared helpers for usage providers. Live
// billing-export integrations are out of scope; providers synthesize
// plausible usage records for the requested window instead.
package provider

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/gemcost/internal/domain"
)

const (
	maxSimulatedDays = 10

	minInputTokens  = 1000
	maxInputTokens  = 11000
	minOutputTokens = 500
	maxOutputTokens = 5500
)

// SimulateUsage produces one usage record per day in the query window,
// up to maxSimulatedDays, cycling through the given models. A query
// whose start is not before its end yields a validation error.
func SimulateUsage(
	service domain.Service,
	models []string,
	project string,
	region string,
	query domain.UsageQuery,
) ([]domain.Usage, error) {
	if !query.StartDate.Before(query.EndDate) {
		return nil, domain.NewError(domain.CodeValidation,
			"start date %s must be before end date %s",
			query.StartDate.Format(time.RFC3339), query.EndDate.Format(time.RFC3339))
	}

	days := int(query.EndDate.Sub(query.StartDate).Hours()/24 + 0.999)
	if days < 1 {
		days = 1
	}
	if days > maxSimulatedDays {
		days = maxSimulatedDays
	}

	if query.Project != "" {
		project = query.Project
	}

	usage := make([]domain.Usage, 0, days)
	for day := 0; day < days; day++ {
		model := models[day%len(models)]
		if query.Model != "" {
			model = query.Model
		}

		usage = append(usage, domain.Usage{
			ID:           uuid.New().String(),
			Timestamp:    query.StartDate.Add(time.Duration(day) * 24 * time.Hour),
			Service:      service,
			Model:        model,
			InputTokens:  randomTokens(minInputTokens, maxInputTokens),
			OutputTokens: randomTokens(minOutputTokens, maxOutputTokens),
			Project:      project,
			Region:       region,
		})
	}

	return usage, nil
}

func randomTokens(min, max int64) int64 {
	return min + rand.Int63n(max-min)
}
