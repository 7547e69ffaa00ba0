package domain

import "time"

// Service identifies the usage service family a record was observed on.
type Service string

const (
	// ServiceGemini is the Gemini API service family.
	ServiceGemini Service = "gemini"

	// ServiceVertexAI is the Vertex AI service family.
	ServiceVertexAI Service = "vertex-ai"
)

// Usage represents one observed API call's token consumption.
type Usage struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Service      Service   `json:"service"`
	Model        string    `json:"model"`
	InputTokens  int64     `json:"inputTokens"`
	OutputTokens int64     `json:"outputTokens"`
	Project      string    `json:"project,omitempty"`
	Region       string    `json:"region,omitempty"`
}

// Cost is the priced counterpart of a single Usage record.
type Cost struct {
	UsageID      string    `json:"usageId"`
	InputCost    float64   `json:"inputCost"`
	OutputCost   float64   `json:"outputCost"`
	TotalCost    float64   `json:"totalCost"`
	Currency     string    `json:"currency"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// PriceModel holds per-model unit prices. Prices feed the cost formula
// cost = tokens/1000 * price, in USD.
type PriceModel struct {
	Model            string  `json:"model"`
	InputTokenPrice  float64 `json:"inputTokenPrice"`
	OutputTokenPrice float64 `json:"outputTokenPrice"`
	Currency         string  `json:"currency"`
}

// Period is a half-open reporting window.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ReportSummary aggregates token and cost totals across a report.
type ReportSummary struct {
	TotalInputTokens  int64   `json:"totalInputTokens"`
	TotalOutputTokens int64   `json:"totalOutputTokens"`
	TotalCost         float64 `json:"totalCost"`
	Currency          string  `json:"currency"`
}

// ReportDetail is one priced usage record inside a report.
type ReportDetail struct {
	Date    time.Time `json:"date"`
	Service Service   `json:"service"`
	Model   string    `json:"model"`
	Usage   Usage     `json:"usage"`
	Cost    Cost      `json:"cost"`
}

// CostReport is the aggregated, currency-converted output of pricing a set
// of usage records over a period. Details are sorted by date descending.
type CostReport struct {
	Period  Period         `json:"period"`
	Summary ReportSummary  `json:"summary"`
	Details []ReportDetail `json:"details"`
}

// DailyBreakdown groups usage and cost by UTC calendar day.
type DailyBreakdown struct {
	InputTokens  int64               `json:"inputTokens"`
	OutputTokens int64               `json:"outputTokens"`
	TotalCost    float64             `json:"totalCost"`
	ServiceCost  map[Service]float64 `json:"services"`
}

// ModelBreakdown groups usage and cost by model.
type ModelBreakdown struct {
	InputTokens  int64   `json:"inputTokens"`
	OutputTokens int64   `json:"outputTokens"`
	TotalCost    float64 `json:"totalCost"`
	UsageCount   int     `json:"usageCount"`
}

// RankedUsage pairs a usage record with its computed cost for ranking.
type RankedUsage struct {
	Usage Usage `json:"usage"`
	Cost  Cost  `json:"cost"`
}

// UpdateSource records where a pricing update was fetched from.
type UpdateSource struct {
	Gemini string `json:"gemini"`
	Vertex string `json:"vertex"`
}

// PricingUpdate is a refreshed price snapshot with provenance. It is
// persisted as-is to the update cache and trusted as a fallback for 24
// hours after Timestamp.
type PricingUpdate struct {
	Timestamp    time.Time             `json:"timestamp"`
	GeminiModels map[string]PriceModel `json:"geminiModels"`
	VertexModels map[string]PriceModel `json:"vertexModels"`
	UpdatedCount int                   `json:"updatedCount"`
	Source       UpdateSource          `json:"source"`
}

// ModelCount returns the number of models carried by the update.
func (u *PricingUpdate) ModelCount() int {
	return len(u.GeminiModels) + len(u.VertexModels)
}

// ModelList holds the currently available model identifiers per service
// family, as reported by the pricing source.
type ModelList struct {
	Gemini []string
	Vertex []string
}

// UsageQuery selects usage records for a reporting window.
type UsageQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Project   string
	Model     string
}
