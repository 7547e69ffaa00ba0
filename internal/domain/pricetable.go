package domain

// Price data updated on 2025-07-24.
// Sources:
// - Gemini API: https://ai.google.dev/gemini-api/docs/models + https://ai.google.dev/gemini-api/docs/pricing
// - Vertex AI: https://cloud.google.com/vertex-ai/generative-ai/pricing
func defaultPriceTable() map[string]PriceModel {
	return map[string]PriceModel{
		"gemini-2.5-pro":                {Model: "gemini-2.5-pro", InputTokenPrice: 0.00125, OutputTokenPrice: 0.01, Currency: "USD"},
		"gemini-2.5-flash":              {Model: "gemini-2.5-flash", InputTokenPrice: 0.0003, OutputTokenPrice: 0.0025, Currency: "USD"},
		"gemini-2.5-flash-lite":         {Model: "gemini-2.5-flash-lite", InputTokenPrice: 0.0001, OutputTokenPrice: 0.0004, Currency: "USD"},
		"gemini-2.0-flash":              {Model: "gemini-2.0-flash", InputTokenPrice: 0.0002, OutputTokenPrice: 0.002, Currency: "USD"},
		"gemini-2.0-flash-lite":         {Model: "gemini-2.0-flash-lite", InputTokenPrice: 0.0002, OutputTokenPrice: 0.002, Currency: "USD"},
		"gemini-1.5-pro":                {Model: "gemini-1.5-pro", InputTokenPrice: 0.00125, OutputTokenPrice: 0.005, Currency: "USD"},
		"gemini-1.5-flash":              {Model: "gemini-1.5-flash", InputTokenPrice: 0.000075, OutputTokenPrice: 0.0003, Currency: "USD"},
		"gemini-1.5-flash-8b":           {Model: "gemini-1.5-flash-8b", InputTokenPrice: 0.000075, OutputTokenPrice: 0.0003, Currency: "USD"},
		"gemini-pro":                    {Model: "gemini-pro", InputTokenPrice: 0.000125, OutputTokenPrice: 0.000375, Currency: "USD"},
		"gemini-pro-vision":             {Model: "gemini-pro-vision", InputTokenPrice: 0.000125, OutputTokenPrice: 0.000375, Currency: "USD"},
		"gemini-1.5-pro-extended":       {Model: "gemini-1.5-pro-extended", InputTokenPrice: 0.00125, OutputTokenPrice: 0.005, Currency: "USD"},
		"gemini-1.5-flash-extended":     {Model: "gemini-1.5-flash-extended", InputTokenPrice: 0.000075, OutputTokenPrice: 0.0003, Currency: "USD"},
		"gemini-2.5-pro-extended":       {Model: "gemini-2.5-pro-extended", InputTokenPrice: 0.00125, OutputTokenPrice: 0.01, Currency: "USD"},
		"gemini-2.5-flash-audio":        {Model: "gemini-2.5-flash-audio", InputTokenPrice: 0.0003, OutputTokenPrice: 0.0025, Currency: "USD"},
		"gemini-2.5-flash-lite-audio":   {Model: "gemini-2.5-flash-lite-audio", InputTokenPrice: 0.0001, OutputTokenPrice: 0.0004, Currency: "USD"},
		"gemini-2.5-flash-native-audio": {Model: "gemini-2.5-flash-native-audio", InputTokenPrice: 0.0003, OutputTokenPrice: 0.0025, Currency: "USD"},
		"gemini-2.5-flash-thinking":     {Model: "gemini-2.5-flash-thinking", InputTokenPrice: 0.0003, OutputTokenPrice: 0.0025, Currency: "USD"},
		"text-bison-001":                {Model: "text-bison-001", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		"text-bison-002":                {Model: "text-bison-002", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		"chat-bison-001":                {Model: "chat-bison-001", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		"chat-bison-002":                {Model: "chat-bison-002", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		"code-bison-001":                {Model: "code-bison-001", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		"code-bison-002":                {Model: "code-bison-002", InputTokenPrice: 0.00025, OutputTokenPrice: 0.0005, Currency: "USD"},
		"codechat-bison-001":            {Model: "codechat-bison-001", InputTokenPrice: 0.001, OutputTokenPrice: 0.001, Currency: "USD"},
		"codechat-bison-002":            {Model: "codechat-bison-002", InputTokenPrice: 0.00025, OutputTokenPrice: 0.0005, Currency: "USD"},
		"gemini-1.5-pro-vertex":         {Model: "gemini-1.5-pro-vertex", InputTokenPrice: 0.00125, OutputTokenPrice: 0.005, Currency: "USD"},
		"gemini-1.5-flash-vertex":       {Model: "gemini-1.5-flash-vertex", InputTokenPrice: 0.000075, OutputTokenPrice: 0.0003, Currency: "USD"},
		"gemini-2.5-pro-vertex":         {Model: "gemini-2.5-pro-vertex", InputTokenPrice: 0.00125, OutputTokenPrice: 0.01, Currency: "USD"},
		"gemini-2.5-flash-vertex":       {Model: "gemini-2.5-flash-vertex", InputTokenPrice: 0.0003, OutputTokenPrice: 0.0025, Currency: "USD"},
		"imagegeneration-004":           {Model: "imagegeneration-004", InputTokenPrice: 0.00004, OutputTokenPrice: 0.00004, Currency: "USD"},
		"imagegeneration-004-ultra":     {Model: "imagegeneration-004-ultra", InputTokenPrice: 0.00006, OutputTokenPrice: 0.00006, Currency: "USD"},
		"video-generation-001":          {Model: "video-generation-001", InputTokenPrice: 0.0005, OutputTokenPrice: 0.00075, Currency: "USD"},
	}
}

// Currency conversion rates (USD to other currencies).
// These should be updated regularly or fetched from an API.
func defaultCurrencyRates() map[string]float64 {
	return map[string]float64{
		"USD": 1.0,
		"JPY": 150.0, // As of early 2025, approximate rate
	}
}
