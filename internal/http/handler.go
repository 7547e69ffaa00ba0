package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/format"
	"github.com/davidbz/gemcost/internal/observability"
	"github.com/davidbz/gemcost/internal/pricing"
	"go.uber.org/zap"
)

const defaultTopLimit = 10

// Handler handles HTTP requests.
type Handler struct {
	reports    *domain.ReportService
	updater    *pricing.Updater
	holder     *domain.CatalogHolder
	formatters map[string]domain.Formatter
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	reports *domain.ReportService,
	updater *pricing.Updater,
	holder *domain.CatalogHolder,
) *Handler {
	return &Handler{
		reports: reports,
		updater: updater,
		holder:  holder,
		formatters: map[string]domain.Formatter{
			"table": format.NewTableFormatter(),
			"json":  format.NewJSONFormatter(),
			"csv":   format.NewCSVFormatter(),
			"chart": format.NewChartFormatter(),
		},
	}
}

// HandleReport serves a cost report for a period, optionally rendered by
// one of the output formatters.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, service, currency, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	report, err := h.reports.Report(ctx, service, query, currency)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		writeJSON(ctx, w, report)
		return
	}

	formatter, ok := h.formatters[formatName]
	if !ok {
		http.Error(w, "unknown format: "+formatName, http.StatusBadRequest)
		return
	}

	rendered, err := formatter.Format(report)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	switch formatName {
	case "json":
		contentType = "application/json"
	case "csv":
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write([]byte(rendered)); err != nil {
		observability.FromContext(ctx).Error("failed to write response", zap.Error(err))
	}
}

// HandleDailyBreakdown serves cost grouped by UTC day.
func (h *Handler) HandleDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, service, currency, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	breakdown, err := h.reports.DailyBreakdown(ctx, service, query, currency)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, breakdown)
}

// HandleModelBreakdown serves cost grouped by model.
func (h *Handler) HandleModelBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, service, currency, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	breakdown, err := h.reports.ModelBreakdown(ctx, service, query, currency)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, breakdown)
}

// HandleTopUsage serves the costliest usage records in the window.
func (h *Handler) HandleTopUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, service, currency, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit: "+raw, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ranked, err := h.reports.TopExpensiveUsage(ctx, service, query, limit, currency)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, ranked)
}

// HandlePricingUpdate triggers a pricing refresh and swaps the active
// catalog on success.
func (h *Handler) HandlePricingUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	update, err := h.updater.UpdatePricing(ctx)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}
	h.holder.Store(domain.CatalogFromUpdate(update))

	writeJSON(ctx, w, map[string]any{
		"timestamp":    update.Timestamp,
		"updatedCount": update.UpdatedCount,
		"modelCount":   update.ModelCount(),
		"source":       update.Source,
	})
}

// HandlePricingComparison serves a markdown report comparing fetched
// prices across models.
func (h *Handler) HandlePricingComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.updater.ModelComparisonReport(ctx, nil)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write([]byte(report)); err != nil {
		observability.FromContext(ctx).Error("failed to write response", zap.Error(err))
	}
}

// HandleModels serves the models known to the active price catalog.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(ctx, w, map[string]any{
		"models": h.holder.Load().SupportedModels(),
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

// parseReportQuery resolves period, service and currency query
// parameters. On failure it writes a 400 and returns ok=false.
func (h *Handler) parseReportQuery(w http.ResponseWriter, r *http.Request) (domain.UsageQuery, domain.Service, string, bool) {
	params := r.URL.Query()

	var period domain.Period
	start := params.Get("start")
	end := params.Get("end")

	switch {
	case start != "" || end != "":
		startDate, err := time.Parse(time.DateOnly, start)
		if err != nil {
			http.Error(w, "invalid start date: "+start, http.StatusBadRequest)
			return domain.UsageQuery{}, "", "", false
		}
		endDate, err := time.Parse(time.DateOnly, end)
		if err != nil {
			http.Error(w, "invalid end date: "+end, http.StatusBadRequest)
			return domain.UsageQuery{}, "", "", false
		}
		// End date is inclusive of the whole day.
		period, err = domain.NewPeriod(startDate, endDate.Add(24*time.Hour-time.Nanosecond))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return domain.UsageQuery{}, "", "", false
		}
	default:
		kind := domain.PeriodKind(params.Get("period"))
		if kind == "" {
			kind = domain.PeriodWeek
		}
		var err error
		period, err = domain.PeriodRange(kind, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return domain.UsageQuery{}, "", "", false
		}
	}

	service := domain.Service(params.Get("service"))
	switch service {
	case "", domain.ServiceGemini, domain.ServiceVertexAI:
	default:
		http.Error(w, "unknown service: "+string(service), http.StatusBadRequest)
		return domain.UsageQuery{}, "", "", false
	}

	currency := params.Get("currency")
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	query := domain.UsageQuery{
		StartDate: period.Start,
		EndDate:   period.End,
		Project:   params.Get("project"),
		Model:     params.Get("model"),
	}

	return query, service, currency, true
}

// writeDomainError maps typed domain errors to HTTP status codes.
func (h *Handler) writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := observability.FromContext(ctx)

	status := http.StatusInternalServerError
	switch {
	case domain.IsCode(err, domain.CodeValidation):
		status = http.StatusBadRequest
	case domain.IsCode(err, domain.CodePricingFetch):
		status = http.StatusBadGateway
	}

	logger.Error("request failed", zap.Error(err), zap.Int("status", status))
	http.Error(w, err.Error(), status)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", zap.Error(err))
	}
}
