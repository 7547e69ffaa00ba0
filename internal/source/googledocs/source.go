// Package googledocs fetches pricing data from the public Google
// documentation pages for the Gemini API and Vertex AI.
package googledocs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
	"github.com/davidbz/gemcost/internal/source/static"
)

const (
	// DefaultModelsURL lists the available Gemini API models.
	DefaultModelsURL = "https://ai.google.dev/gemini-api/docs/models"
	// DefaultGeminiPricingURL documents Gemini API pricing.
	DefaultGeminiPricingURL = "https://ai.google.dev/gemini-api/docs/pricing"
	// DefaultVertexPricingURL documents Vertex AI generative AI pricing.
	DefaultVertexPricingURL = "https://cloud.google.com/vertex-ai/generative-ai/pricing"

	defaultFetchTimeout = 30 * time.Second
	maxResponseBytes    = 4 << 20
)

var (
	geminiVariantPattern = regexp.MustCompile(`(?i)gemini-[0-9.]+-(?:pro|flash-lite|flash|lite)(?:-[a-z0-9-]+)?`)
	geminiBasePattern    = regexp.MustCompile(`(?i)gemini-[0-9.]+(?:-[a-z0-9-]+)?`)
)

// Config holds the source page URLs and fetch timeout.
type Config struct {
	ModelsURL        string
	GeminiPricingURL string
	VertexPricingURL string
	FetchTimeout     time.Duration
}

// Source implements domain.PricingSource by scraping the documentation
// pages over HTTP.
type Source struct {
	client *http.Client
	cfg    Config
}

// NewSource creates a documentation-backed pricing source. Empty config
// fields fall back to the public documentation URLs.
func NewSource(cfg Config) *Source {
	if cfg.ModelsURL == "" {
		cfg.ModelsURL = DefaultModelsURL
	}
	if cfg.GeminiPricingURL == "" {
		cfg.GeminiPricingURL = DefaultGeminiPricingURL
	}
	if cfg.VertexPricingURL == "" {
		cfg.VertexPricingURL = DefaultVertexPricingURL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	return &Source{
		client: &http.Client{Timeout: cfg.FetchTimeout},
		cfg:    cfg,
	}
}

// AvailableModels fetches the models page and extracts the Gemini model
// identifiers found there, merged with the known model list. Vertex AI
// has no machine-readable model index, so the known list is used as is.
func (s *Source) AvailableModels(ctx context.Context) (domain.ModelList, error) {
	body, err := s.fetch(ctx, s.cfg.ModelsURL)
	if err != nil {
		return domain.ModelList{}, err
	}

	gemini := extractGeminiModelNames(body)
	observability.FromContext(ctx).Debug("extracted available models",
		observability.Int("gemini_models", len(gemini)),
	)

	return domain.ModelList{
		Gemini: gemini,
		Vertex: static.KnownVertexModels(),
	}, nil
}

// GeminiPricingText fetches the Gemini API pricing page.
func (s *Source) GeminiPricingText(ctx context.Context) (string, error) {
	return s.fetch(ctx, s.cfg.GeminiPricingURL)
}

// VertexPricingText fetches the Vertex AI pricing page.
func (s *Source) VertexPricingText(ctx context.Context) (string, error) {
	return s.fetch(ctx, s.cfg.VertexPricingURL)
}

// Sources reports the page URLs the pricing data came from.
func (s *Source) Sources() domain.UpdateSource {
	return domain.UpdateSource{
		Gemini: s.cfg.GeminiPricingURL,
		Vertex: s.cfg.VertexPricingURL,
	}
}

func (s *Source) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "gemcost-pricing-updater/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	return string(body), nil
}

// extractGeminiModelNames pulls gemini-* identifiers out of page text,
// preferring fully qualified variant names, and merges them with the
// known model list. Results are lowercased, deduplicated and sorted.
func extractGeminiModelNames(text string) []string {
	seen := make(map[string]struct{})

	for _, match := range geminiVariantPattern.FindAllString(text, -1) {
		seen[strings.ToLower(match)] = struct{}{}
	}
	for _, match := range geminiBasePattern.FindAllString(text, -1) {
		seen[strings.ToLower(match)] = struct{}{}
	}
	for _, known := range static.KnownGeminiModels() {
		seen[known] = struct{}{}
	}

	models := make([]string, 0, len(seen))
	for model := range seen {
		if strings.HasPrefix(model, "gemini") {
			models = append(models, model)
		}
	}
	sort.Strings(models)

	return models
}
