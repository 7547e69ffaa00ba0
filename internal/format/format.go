// Package format renders cost reports for output. Each formatter
// implements domain.Formatter and is safe to reuse across reports.
package format

import (
	"fmt"
	"sort"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
)

type costStats struct {
	count     int
	totalCost float64
}

type tokenStats struct {
	input  int64
	output int64
}

func serviceBreakdown(report *domain.CostReport) map[domain.Service]costStats {
	breakdown := make(map[domain.Service]costStats)
	for _, detail := range report.Details {
		stats := breakdown[detail.Service]
		stats.count++
		stats.totalCost += detail.Cost.TotalCost
		breakdown[detail.Service] = stats
	}

	return breakdown
}

func modelBreakdown(report *domain.CostReport) map[string]costStats {
	breakdown := make(map[string]costStats)
	for _, detail := range report.Details {
		stats := breakdown[detail.Model]
		stats.count++
		stats.totalCost += detail.Cost.TotalCost
		breakdown[detail.Model] = stats
	}

	return breakdown
}

func dailyCosts(report *domain.CostReport) map[string]float64 {
	daily := make(map[string]float64)
	for _, detail := range report.Details {
		daily[detail.Date.UTC().Format(time.DateOnly)] += detail.Cost.TotalCost
	}

	return daily
}

func dailyTokens(report *domain.CostReport) map[string]tokenStats {
	daily := make(map[string]tokenStats)
	for _, detail := range report.Details {
		key := detail.Date.UTC().Format(time.DateOnly)
		stats := daily[key]
		stats.input += detail.Usage.InputTokens
		stats.output += detail.Usage.OutputTokens
		daily[key] = stats
	}

	return daily
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.4f %s", amount, currency)
}
