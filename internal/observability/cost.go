package observability

import (
	"strconv"
)

// Pricing constants, USD per 1K tokens
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	llama33VersatileInputPrice  = 0.00059
	llama33VersatileOutputPrice = 0.00079

	llama31InstantInputPrice  = 0.00005
	llama31InstantOutputPrice = 0.00008

	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006

	gemini25FlashInputPrice  = 0.0003
	gemini25FlashOutputPrice = 0.0025

	defaultPricingModel = "llama-3.3-70b-versatile"
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for the models we route to
var PricingTable = map[string]ModelPricing{
	// Groq
	"llama-3.3-70b-versatile": {
		InputPricePer1K:  llama33VersatileInputPrice,
		OutputPricePer1K: llama33VersatileOutputPrice,
	},
	"llama-3.1-8b-instant": {
		InputPricePer1K:  llama31InstantInputPrice,
		OutputPricePer1K: llama31InstantOutputPrice,
	},
	// OpenAI
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
	// Gemini
	"gemini-2.5-flash": {
		InputPricePer1K:  gemini25FlashInputPrice,
		OutputPricePer1K: gemini25FlashOutputPrice,
	},
}

// CalculateCost calculates the cost in USD of one completion.
// Unknown models are priced as the default Groq model.
func CalculateCost(model string, inputTokens, outputTokens int64) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		pricing = PricingTable[defaultPricingModel]
	}

	inputCost := (float64(inputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(outputTokens) / tokensPerKilo) * pricing.OutputPricePer1K
	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', costFormatPrecision, 64)
}
