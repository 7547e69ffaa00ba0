package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gemcost/internal/pricing"
)

const geminiSampleText = `
Gemini API Pricing

gemini-2.5-pro
- Input tokens: $1.25 per 1K tokens
- Output tokens: $10.00 per 1K tokens

gemini-1.5-flash
- Input tokens: $0.075 per 1K tokens
- Output tokens: $0.30 per 1K tokens
`

const vertexSampleText = `
Vertex AI Pricing

Codey for Code Generation (code-bison-002)
- Input tokens: $0.25 per 1K tokens
- Output tokens: $0.50 per 1K tokens
`

func TestExtractGeminiPricing(t *testing.T) {
	parsed := pricing.ExtractGeminiPricing(geminiSampleText)
	require.Len(t, parsed, 2)

	byModel := make(map[string]pricing.ParsedPrice)
	for _, p := range parsed {
		byModel[p.Model] = p
	}

	pro, ok := byModel["gemini-2.5-pro"]
	require.True(t, ok)
	require.InDelta(t, 1.25, pro.InputPer1K, 1e-9)
	require.InDelta(t, 10.0, pro.OutputPer1K, 1e-9)

	flash, ok := byModel["gemini-1.5-flash"]
	require.True(t, ok)
	require.InDelta(t, 0.075, flash.InputPer1K, 1e-9)
	require.InDelta(t, 0.30, flash.OutputPer1K, 1e-9)
}

func TestExtractGeminiPricing_IsCaseInsensitive(t *testing.T) {
	text := "GEMINI-2.5-PRO\nInput tokens: $1.25\nOutput tokens: $10.00\n"
	parsed := pricing.ExtractGeminiPricing(text)
	require.Len(t, parsed, 1)
	require.Equal(t, "gemini-2.5-pro", parsed[0].Model)
}

func TestExtractGeminiPricing_NoMatches(t *testing.T) {
	require.Empty(t, pricing.ExtractGeminiPricing("nothing to see here"))
	require.Empty(t, pricing.ExtractGeminiPricing(""))
	// A model name without nearby prices is skipped, not an error.
	require.Empty(t, pricing.ExtractGeminiPricing("gemini-2.5-pro is great"))
}

func TestExtractVertexPricing(t *testing.T) {
	parsed := pricing.ExtractVertexPricing(vertexSampleText)
	require.Len(t, parsed, 1)
	require.Equal(t, "code-bison-002", parsed[0].Model)
	require.InDelta(t, 0.25, parsed[0].InputPer1K, 1e-9)
	require.InDelta(t, 0.50, parsed[0].OutputPer1K, 1e-9)
}

func TestExtractVertexPricing_NoMatches(t *testing.T) {
	require.Empty(t, pricing.ExtractVertexPricing("a page about something else entirely"))
}
