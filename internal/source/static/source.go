// Package static provides an offline pricing source backed by an embedded
// snapshot of the Google documentation pages. It is used when live
// fetching is disabled and as a deterministic source in tests.
package static

import (
	"context"

	"github.com/davidbz/gemcost/internal/domain"
)

// Source implements domain.PricingSource from embedded snapshot data.
// It never fails.
type Source struct{}

// NewSource creates a static pricing source.
func NewSource() *Source {
	return &Source{}
}

// AvailableModels returns the known model identifiers per service family.
func (s *Source) AvailableModels(_ context.Context) (domain.ModelList, error) {
	return domain.ModelList{
		Gemini: KnownGeminiModels(),
		Vertex: KnownVertexModels(),
	}, nil
}

// GeminiPricingText returns the embedded Gemini pricing page snapshot.
func (s *Source) GeminiPricingText(_ context.Context) (string, error) {
	return geminiPricingSnapshot, nil
}

// VertexPricingText returns the embedded Vertex AI pricing page snapshot.
func (s *Source) VertexPricingText(_ context.Context) (string, error) {
	return vertexPricingSnapshot, nil
}

// Sources describes the snapshot provenance.
func (s *Source) Sources() domain.UpdateSource {
	return domain.UpdateSource{
		Gemini: "embedded snapshot of https://ai.google.dev/gemini-api/docs/pricing",
		Vertex: "embedded snapshot of https://cloud.google.com/vertex-ai/generative-ai/pricing",
	}
}

// KnownGeminiModels lists the Gemini API models from the last
// documentation snapshot.
func KnownGeminiModels() []string {
	return []string{
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
		"gemini-1.5-flash-8b",
		"gemini-pro",
		"gemini-pro-vision",
		// Extended context variants
		"gemini-1.5-pro-extended",
		"gemini-1.5-flash-extended",
		"gemini-2.5-pro-extended",
		// Specialized variants
		"gemini-2.5-flash-audio",
		"gemini-2.5-flash-lite-audio",
		"gemini-2.5-flash-native-audio",
		"gemini-2.5-flash-thinking",
	}
}

// KnownVertexModels lists the Vertex AI models from the last
// documentation snapshot.
func KnownVertexModels() []string {
	return []string{
		// PaLM models
		"text-bison-001",
		"text-bison-002",
		"chat-bison-001",
		"chat-bison-002",
		"code-bison-001",
		"code-bison-002",
		"codechat-bison-001",
		"codechat-bison-002",
		// Gemini on Vertex
		"gemini-1.5-pro-vertex",
		"gemini-1.5-flash-vertex",
		"gemini-2.5-pro-vertex",
		"gemini-2.5-flash-vertex",
		// Multimodal models
		"imagegeneration-004",
		"imagegeneration-004-ultra",
		"video-generation-001",
	}
}

const geminiPricingSnapshot = `
Gemini API Pricing

gemini-2.5-pro
- Input tokens: $1.25 per 1K tokens (<= 200k context)
- Output tokens: $10.00 per 1K tokens (<= 200k context)

gemini-2.5-flash
- Input tokens: $0.30 per 1K tokens (text/image/video)
- Output tokens: $2.50 per 1K tokens

gemini-2.5-flash-lite
- Input tokens: $0.10 per 1K tokens (text/image/video)
- Output tokens: $0.40 per 1K tokens

gemini-2.0-flash
- Input tokens: $0.20 per 1K tokens
- Output tokens: $2.00 per 1K tokens

gemini-1.5-pro
- Input tokens: $1.25 per 1K tokens
- Output tokens: $5.00 per 1K tokens

gemini-1.5-flash
- Input tokens: $0.075 per 1K tokens
- Output tokens: $0.30 per 1K tokens

gemini-pro
- Input tokens: $0.125 per 1K tokens
- Output tokens: $0.375 per 1K tokens
`

const vertexPricingSnapshot = `
Vertex AI Generative AI Pricing

PaLM 2 for Text (text-bison-002)
- Input tokens: $1.00 per 1K tokens
- Output tokens: $1.00 per 1K tokens

PaLM 2 for Chat (chat-bison-002)
- Input tokens: $1.00 per 1K tokens
- Output tokens: $1.00 per 1K tokens

Codey for Code Generation (code-bison-002)
- Input tokens: $0.25 per 1K tokens
- Output tokens: $0.50 per 1K tokens

Gemini Pro on Vertex AI (gemini-1.5-pro-vertex)
- Input tokens: $1.25 per 1K tokens
- Output tokens: $5.00 per 1K tokens
`
