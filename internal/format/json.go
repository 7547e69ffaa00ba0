package format

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
)

// JSONFormatter renders a report as indented JSON with derived token
// totals and generation metadata.
type JSONFormatter struct {
	now func() time.Time
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{now: time.Now}
}

type jsonSummary struct {
	TotalInputTokens  int64   `json:"totalInputTokens"`
	TotalOutputTokens int64   `json:"totalOutputTokens"`
	TotalTokens       int64   `json:"totalTokens"`
	TotalCost         float64 `json:"totalCost"`
	Currency          string  `json:"currency"`
}

type jsonUsage struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	InputTokens  int64     `json:"inputTokens"`
	OutputTokens int64     `json:"outputTokens"`
	TotalTokens  int64     `json:"totalTokens"`
	Project      string    `json:"project,omitempty"`
	Region       string    `json:"region,omitempty"`
}

type jsonDetail struct {
	Date    time.Time      `json:"date"`
	Service domain.Service `json:"service"`
	Model   string         `json:"model"`
	Usage   jsonUsage      `json:"usage"`
	Cost    domain.Cost    `json:"cost"`
}

type jsonMetadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	RecordCount int       `json:"recordCount"`
	Services    []string  `json:"services"`
	Models      []string  `json:"models"`
}

type jsonReport struct {
	Period   domain.Period `json:"period"`
	Summary  jsonSummary   `json:"summary"`
	Details  []jsonDetail  `json:"details"`
	Metadata jsonMetadata  `json:"metadata"`
}

// Format renders the report.
func (f *JSONFormatter) Format(report *domain.CostReport) (string, error) {
	services := make(map[string]struct{})
	models := make(map[string]struct{})

	details := make([]jsonDetail, 0, len(report.Details))
	for _, detail := range report.Details {
		services[string(detail.Service)] = struct{}{}
		models[detail.Model] = struct{}{}

		details = append(details, jsonDetail{
			Date:    detail.Date,
			Service: detail.Service,
			Model:   detail.Model,
			Usage: jsonUsage{
				ID:           detail.Usage.ID,
				Timestamp:    detail.Usage.Timestamp,
				InputTokens:  detail.Usage.InputTokens,
				OutputTokens: detail.Usage.OutputTokens,
				TotalTokens:  detail.Usage.InputTokens + detail.Usage.OutputTokens,
				Project:      detail.Usage.Project,
				Region:       detail.Usage.Region,
			},
			Cost: detail.Cost,
		})
	}

	out := jsonReport{
		Period: report.Period,
		Summary: jsonSummary{
			TotalInputTokens:  report.Summary.TotalInputTokens,
			TotalOutputTokens: report.Summary.TotalOutputTokens,
			TotalTokens:       report.Summary.TotalInputTokens + report.Summary.TotalOutputTokens,
			TotalCost:         report.Summary.TotalCost,
			Currency:          report.Summary.Currency,
		},
		Details: details,
		Metadata: jsonMetadata{
			GeneratedAt: f.now().UTC(),
			RecordCount: len(report.Details),
			Services:    sortedKeys(services),
			Models:      sortedKeys(models),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	return string(data), nil
}
