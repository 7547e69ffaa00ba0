package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedPrice is one (model, input, output) triple extracted from pricing
// documentation text. Prices are USD per 1K tokens as printed on the page.
type ParsedPrice struct {
	Model       string
	InputPer1K  float64
	OutputPer1K float64
}

const priceContextLines = 3

var (
	geminiModelPattern = regexp.MustCompile(`gemini[a-z0-9.\-]*[a-z0-9]`)
	vertexModelPattern = regexp.MustCompile(`[a-z]+-[a-z]+-[0-9]+`)
	inputPricePattern  = regexp.MustCompile(`input[^$]*\$([0-9.]+)`)
	outputPricePattern = regexp.MustCompile(`output[^$]*\$([0-9.]+)`)
)

// ExtractGeminiPricing scans Gemini pricing page text for model names with
// input/output prices in the surrounding lines. It never fails; text with
// no recognizable patterns yields an empty result.
func ExtractGeminiPricing(text string) []ParsedPrice {
	return extract(text, geminiModelPattern, func(line string) bool {
		return strings.Contains(line, "gemini") &&
			(strings.Contains(line, "pro") || strings.Contains(line, "flash"))
	})
}

// ExtractVertexPricing scans Vertex AI pricing page text the same way,
// keyed on PaLM and Gemini model name shapes.
func ExtractVertexPricing(text string) []ParsedPrice {
	return extract(text, vertexModelPattern, func(line string) bool {
		return strings.Contains(line, "bison") || strings.Contains(line, "gemini")
	})
}

func extract(text string, modelPattern *regexp.Regexp, lineMatches func(string) bool) []ParsedPrice {
	var parsed []ParsedPrice

	lines := strings.Split(strings.ToLower(text), "\n")
	for i, line := range lines {
		if !lineMatches(line) {
			continue
		}

		model := modelPattern.FindString(line)
		if model == "" {
			continue
		}

		// Prices sit on the lines following the model name. Looking
		// backwards would pick up the previous model's prices.
		context := followingContext(lines, i)
		inputMatch := inputPricePattern.FindStringSubmatch(context)
		outputMatch := outputPricePattern.FindStringSubmatch(context)
		if inputMatch == nil || outputMatch == nil {
			continue
		}

		inputPrice, inputErr := strconv.ParseFloat(inputMatch[1], 64)
		outputPrice, outputErr := strconv.ParseFloat(outputMatch[1], 64)
		if inputErr != nil || outputErr != nil {
			continue
		}

		parsed = append(parsed, ParsedPrice{
			Model:       model,
			InputPer1K:  inputPrice,
			OutputPer1K: outputPrice,
		})
	}

	return parsed
}

func followingContext(lines []string, i int) string {
	end := i + priceContextLines + 1
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[i:end], " ")
}
