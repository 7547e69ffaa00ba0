package http //nolint:testpackage // Exercises handlers without a running server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/pricing"
	"github.com/davidbz/gemcost/internal/source/static"
)

// fixedProvider returns the same usage records for every query.
type fixedProvider struct {
	service domain.Service
	usage   []domain.Usage
}

func (p *fixedProvider) Usage(_ context.Context, _ domain.UsageQuery) ([]domain.Usage, error) {
	return p.usage, nil
}

func (p *fixedProvider) Service() domain.Service {
	return p.service
}

// fixedRegistry serves a single provider.
type fixedRegistry struct {
	provider domain.UsageProvider
}

func (r *fixedRegistry) Register(_ context.Context, _ domain.UsageProvider) error {
	return nil
}

func (r *fixedRegistry) Get(_ context.Context, service domain.Service) (domain.UsageProvider, error) {
	if service != r.provider.Service() {
		return nil, domain.NewError(domain.CodeValidation, "unknown service %q", service)
	}
	return r.provider, nil
}

func (r *fixedRegistry) List(_ context.Context) ([]domain.Service, error) {
	return []domain.Service{r.provider.Service()}, nil
}

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

func newTestHandler() *Handler {
	registry := &fixedRegistry{provider: &fixedProvider{
		service: domain.ServiceGemini,
		usage: []domain.Usage{
			{ID: "u1", Service: domain.ServiceGemini, Model: "gemini-pro", InputTokens: 1000, OutputTokens: 500,
				Timestamp: time.Now().UTC().Add(-time.Hour)},
		},
	}}

	holder := domain.NewCatalogHolder(domain.DefaultCatalog())
	engine := domain.NewCostEngine(holder)
	reports := domain.NewReportService(registry, engine)
	updater := pricing.NewUpdater(static.NewSource(), &memoryCache{})

	return NewHandler(reports, updater, holder)
}

func TestHandleReport(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/report?period=week", nil)
	rec := httptest.NewRecorder()
	handler.HandleReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report domain.CostReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Details, 1)
	require.InDelta(t, 0.0003125, report.Summary.TotalCost, 1e-9)
}

func TestHandleReport_Formats(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{format: "table", contentType: "text/plain; charset=utf-8", contains: "Cost Report"},
		{format: "json", contentType: "application/json", contains: "totalTokens"},
		{format: "csv", contentType: "text/csv", contains: "Date,Service,Model"},
		{format: "chart", contentType: "text/plain; charset=utf-8", contains: "Summary:"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/report?format="+tt.format, nil)
			rec := httptest.NewRecorder()
			handler.HandleReport(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			require.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestHandleReport_BadRequests(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		name string
		url  string
	}{
		{name: "unknown format", url: "/v1/report?format=xml"},
		{name: "unknown period", url: "/v1/report?period=fortnight"},
		{name: "unknown service", url: "/v1/report?service=bedrock"},
		{name: "bad start date", url: "/v1/report?start=tomorrow&end=2024-01-05"},
		{name: "end before start", url: "/v1/report?start=2024-01-05&end=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			handler.HandleReport(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleReport_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/report", nil)
	rec := httptest.NewRecorder()
	handler.HandleReport(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleDailyBreakdown(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/breakdown/daily", nil)
	rec := httptest.NewRecorder()
	handler.HandleDailyBreakdown(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var breakdown map[string]domain.DailyBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &breakdown))
	require.Len(t, breakdown, 1)
}

func TestHandleTopUsage(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/usage/top?limit=1", nil)
	rec := httptest.NewRecorder()
	handler.HandleTopUsage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ranked []domain.RankedUsage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	require.Len(t, ranked, 1)
	require.Equal(t, "u1", ranked[0].Usage.ID)
}

func TestHandleTopUsage_InvalidLimit(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/usage/top?limit=lots", nil)
	rec := httptest.NewRecorder()
	handler.HandleTopUsage(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePricingUpdate(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/pricing/update", nil)
	rec := httptest.NewRecorder()
	handler.HandlePricingUpdate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ModelCount int `json:"modelCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotZero(t, body.ModelCount)

	// The refreshed catalog now serves the updated model set.
	modelsReq := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	modelsRec := httptest.NewRecorder()
	handler.HandleModels(modelsRec, modelsReq)

	var models struct {
		Models []string `json:"models"`
	}
	require.NoError(t, json.Unmarshal(modelsRec.Body.Bytes(), &models))
	require.Contains(t, models.Models, "gemini-2.5-flash-thinking")
}

func TestHandlePricingUpdate_RequiresPost(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/pricing/update", nil)
	rec := httptest.NewRecorder()
	handler.HandlePricingUpdate(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.HandleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
