package domain

import (
	"sort"
	"sync/atomic"
)

const (
	defaultInputTokenPrice  = 0.001
	defaultOutputTokenPrice = 0.001

	// DefaultCurrency is the currency all catalog prices are expressed in.
	DefaultCurrency = "USD"
)

// PriceCatalog is an immutable mapping from model identifier to unit
// prices, plus a currency-rate table. Replace the whole catalog through a
// CatalogHolder instead of mutating it.
type PriceCatalog struct {
	models map[string]PriceModel
	rates  map[string]float64
}

// NewPriceCatalog builds a catalog from the given price table and currency
// rates. The input maps are copied so later mutation by the caller cannot
// leak into the catalog.
func NewPriceCatalog(models map[string]PriceModel, rates map[string]float64) *PriceCatalog {
	c := &PriceCatalog{
		models: make(map[string]PriceModel, len(models)),
		rates:  make(map[string]float64, len(rates)),
	}
	for name, price := range models {
		c.models[name] = price
	}
	for code, rate := range rates {
		c.rates[code] = rate
	}
	return c
}

// DefaultCatalog builds a catalog from the static price table.
func DefaultCatalog() *PriceCatalog {
	return NewPriceCatalog(defaultPriceTable(), defaultCurrencyRates())
}

// CatalogFromUpdate builds a catalog from a pricing update, merging the
// Gemini and Vertex price maps over the default currency rates.
func CatalogFromUpdate(update *PricingUpdate) *PriceCatalog {
	models := make(map[string]PriceModel, update.ModelCount())
	for name, price := range update.GeminiModels {
		models[name] = price
	}
	for name, price := range update.VertexModels {
		models[name] = price
	}
	return NewPriceCatalog(models, defaultCurrencyRates())
}

// PriceModelFor resolves a model name to its pricing. Unknown models get
// the default price model with the requested name filled in; lookup never
// fails.
func (c *PriceCatalog) PriceModelFor(model string) PriceModel {
	if price, ok := c.models[model]; ok {
		return price
	}

	return PriceModel{
		Model:            model,
		InputTokenPrice:  defaultInputTokenPrice,
		OutputTokenPrice: defaultOutputTokenPrice,
		Currency:         DefaultCurrency,
	}
}

// CurrencyRate returns the conversion rate between two currency codes.
// Unknown codes are treated as USD-equivalent (rate 1.0).
func (c *PriceCatalog) CurrencyRate(from, to string) float64 {
	if from == to {
		return 1.0
	}

	fromRate, ok := c.rates[from]
	if !ok {
		fromRate = 1.0
	}
	toRate, ok := c.rates[to]
	if !ok {
		toRate = 1.0
	}

	return toRate / fromRate
}

// ConvertPrice converts an amount between currencies.
func (c *PriceCatalog) ConvertPrice(amount float64, from, to string) float64 {
	return amount * c.CurrencyRate(from, to)
}

// SupportedModels returns all model names in the catalog, sorted.
func (c *PriceCatalog) SupportedModels() []string {
	models := make([]string, 0, len(c.models))
	for name := range c.models {
		models = append(models, name)
	}
	sort.Strings(models)
	return models
}

// CatalogHolder publishes the active catalog snapshot. Readers always see
// a complete catalog; updates swap the whole reference atomically.
type CatalogHolder struct {
	current atomic.Pointer[PriceCatalog]
}

// NewCatalogHolder creates a holder seeded with the given catalog.
func NewCatalogHolder(catalog *PriceCatalog) *CatalogHolder {
	h := &CatalogHolder{}
	h.current.Store(catalog)
	return h
}

// Load returns the active catalog snapshot.
func (h *CatalogHolder) Load() *PriceCatalog {
	return h.current.Load()
}

// Store atomically replaces the active catalog.
func (h *CatalogHolder) Store(catalog *PriceCatalog) {
	h.current.Store(catalog)
}
