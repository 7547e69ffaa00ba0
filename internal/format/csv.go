package format

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
)

// CSVFormatter renders a report as CSV, one row per usage record.
type CSVFormatter struct{}

// NewCSVFormatter creates a CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format renders the report.
func (f *CSVFormatter) Format(report *domain.CostReport) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"Date",
		"Service",
		"Model",
		"Usage ID",
		"Input Tokens",
		"Output Tokens",
		"Total Tokens",
		"Input Cost",
		"Output Cost",
		"Total Cost",
		"Currency",
		"Project",
		"Region",
		"Calculated At",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, detail := range report.Details {
		row := []string{
			detail.Date.UTC().Format(time.RFC3339),
			string(detail.Service),
			detail.Model,
			detail.Usage.ID,
			strconv.FormatInt(detail.Usage.InputTokens, 10),
			strconv.FormatInt(detail.Usage.OutputTokens, 10),
			strconv.FormatInt(detail.Usage.InputTokens+detail.Usage.OutputTokens, 10),
			strconv.FormatFloat(detail.Cost.InputCost, 'f', 6, 64),
			strconv.FormatFloat(detail.Cost.OutputCost, 'f', 6, 64),
			strconv.FormatFloat(detail.Cost.TotalCost, 'f', 6, 64),
			detail.Cost.Currency,
			detail.Usage.Project,
			detail.Usage.Region,
			detail.Cost.CalculatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return b.String(), nil
}
