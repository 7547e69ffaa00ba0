package pricing

import (
	"strings"

	"github.com/davidbz/gemcost/internal/domain"
)

const (
	genericInputPer1K  = 0.001
	genericOutputPer1K = 0.001
)

// familyPrice maps a model-name keyword to approximate per-token prices.
type familyPrice struct {
	keyword string
	input   float64
	output  float64
}

// Ordered: more specific keywords first, so "2.5-flash-lite" wins over
// "2.5-flash".
func familyPrices() []familyPrice {
	return []familyPrice{
		{keyword: "2.5-pro", input: 0.00125, output: 0.01},
		{keyword: "2.5-flash-lite", input: 0.0001, output: 0.0004},
		{keyword: "2.5-flash", input: 0.0003, output: 0.0025},
		{keyword: "2.0-flash", input: 0.0002, output: 0.002},
		{keyword: "1.5-flash", input: 0.000075, output: 0.0003},
		{keyword: "1.5-pro", input: 0.00125, output: 0.005},
		{keyword: "imagegeneration", input: 0.00004, output: 0.00004},
		{keyword: "video-generation", input: 0.0005, output: 0.00075},
	}
}

// InferDefaultPrice synthesizes pricing for a model that no source
// reported a price for, by matching the name against known family
// keywords. Names matching nothing get the generic default price.
//
// This is a deliberately brittle keyword heuristic kept in one place so it
// can be replaced with a table-driven rule set later.
func InferDefaultPrice(model string) domain.PriceModel {
	input := genericInputPer1K
	output := genericOutputPer1K

	for _, family := range familyPrices() {
		if strings.Contains(model, family.keyword) {
			input = family.input
			output = family.output
			break
		}
	}

	return domain.PriceModel{
		Model:            model,
		InputTokenPrice:  input,
		OutputTokenPrice: output,
		Currency:         domain.DefaultCurrency,
	}
}

// geminiKnownPricing holds legacy Gemini models whose prices rarely appear
// on the scraped pricing page. Merged under parsed results.
func geminiKnownPricing() map[string]domain.PriceModel {
	return map[string]domain.PriceModel{
		"gemini-pro":        {Model: "gemini-pro", InputTokenPrice: 0.000125, OutputTokenPrice: 0.000375, Currency: domain.DefaultCurrency},
		"gemini-pro-vision": {Model: "gemini-pro-vision", InputTokenPrice: 0.000125, OutputTokenPrice: 0.000375, Currency: domain.DefaultCurrency},
	}
}

// vertexKnownPricing holds Vertex AI models with published prices that the
// scraping heuristics miss. Merged under parsed results.
func vertexKnownPricing() map[string]domain.PriceModel {
	known := map[string]struct{ input, output float64 }{
		// PaLM 2 models
		"text-bison-001": {input: 0.001, output: 0.001},
		"text-bison-002": {input: 0.001, output: 0.001},
		"chat-bison-001": {input: 0.001, output: 0.001},
		"chat-bison-002": {input: 0.001, output: 0.001},

		// Codey models
		"code-bison-001":     {input: 0.00025, output: 0.0005},
		"code-bison-002":     {input: 0.00025, output: 0.0005},
		"codechat-bison-001": {input: 0.00025, output: 0.0005},
		"codechat-bison-002": {input: 0.00025, output: 0.0005},

		// Gemini on Vertex AI
		"gemini-1.5-pro-vertex":   {input: 0.00125, output: 0.005},
		"gemini-1.5-flash-vertex": {input: 0.000075, output: 0.0003},
		"gemini-2.5-pro-vertex":   {input: 0.00125, output: 0.01},
		"gemini-2.5-flash-vertex": {input: 0.0003, output: 0.0025},

		// Multimodal models
		"imagegeneration-004":       {input: 0.00004, output: 0.00004},
		"imagegeneration-004-ultra": {input: 0.00006, output: 0.00006},
		"video-generation-001":      {input: 0.0005, output: 0.00075},
	}

	models := make(map[string]domain.PriceModel, len(known))
	for name, price := range known {
		models[name] = domain.PriceModel{
			Model:            name,
			InputTokenPrice:  price.input,
			OutputTokenPrice: price.output,
			Currency:         domain.DefaultCurrency,
		}
	}
	return models
}
