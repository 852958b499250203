package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultModel       = "llama-3.3-70b-versatile"
	defaultTemperature = 0.7
	groqBaseURL        = "https://api.groq.com/openai/v1"
	nextMeetLayout     = "2006-01-02"
)

// Config holds the application configuration.
// Every client (LLM, store, weather) is built from this struct by the caller;
// nothing reads credentials at package load time.
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM
	LLMProvider       string  // "groq", "openai" or "gemini"; inferred from LLMModel when unset
	LLMModel          string  // Model id sent on every call
	LLMAPIKey         string  // Key for the OpenAI-compatible endpoint (Groq or OpenAI)
	LLMBaseURL        string  // Base URL for the OpenAI-compatible endpoint
	GeminiAPIKey      string  // Google Gemini API key
	LLMTemperature    float64 // Sampling temperature
	SentinelDetection bool    // Also treat "AI Error"/"Quota exceeded" text as failure

	// Letter persona
	SenderName     string
	RecipientNames []string

	// Dashboard
	StatusFile     string // Flat JSON status board
	DatabaseURL    string // When set, the status board lives in Postgres instead
	WeatherBaseURL string
	HomeCity       string
	HomeLat        float64
	HomeLon        float64
	PartnerCity    string
	PartnerLat     float64
	PartnerLon     float64
	NextMeetDate   time.Time

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
	CloudWatchEnabled bool   // Push metrics to CloudWatch (production only)
}

func Load() *Config {
	model := getEnv("LLM_MODEL", defaultModel)
	provider := strings.ToLower(getEnv("LLM_PROVIDER", InferProvider(model)))

	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		LLMProvider:       provider,
		LLMModel:          model,
		LLMAPIKey:         llmAPIKey(provider),
		LLMBaseURL:        getEnv("LLM_BASE_URL", defaultBaseURL(provider)),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		LLMTemperature:    getEnvFloat("LLM_TEMPERATURE", defaultTemperature),
		SentinelDetection: getEnv("LLM_SENTINEL_DETECTION", "false") == "true",
		SenderName:        getEnv("SENDER_NAME", "Veer"),
		RecipientNames:    splitList(getEnv("RECIPIENT_NAMES", "Rishi,Chokri")),
		StatusFile:        getEnv("STATUS_FILE", "status_db.json"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		WeatherBaseURL:    getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		HomeCity:          getEnv("HOME_CITY", "Hong Kong"),
		HomeLat:           getEnvFloat("HOME_LAT", 22.2988),
		HomeLon:           getEnvFloat("HOME_LON", 114.1722),
		PartnerCity:       getEnv("PARTNER_CITY", "Canterbury"),
		PartnerLat:        getEnvFloat("PARTNER_LAT", 51.2955),
		PartnerLon:        getEnvFloat("PARTNER_LON", 1.0586),
		NextMeetDate:      getEnvDate("NEXT_MEET_DATE", "2026-05-20"),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
		CloudWatchEnabled: getEnv("CLOUDWATCH_ENABLED", "false") == "true",
	}
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// InferProvider maps a model id to the provider serving it; Groq hosts everything else
func InferProvider(model string) string {
	modelLower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(modelLower, "gpt-"), strings.HasPrefix(modelLower, "o1"), strings.HasPrefix(modelLower, "o3"):
		return ProviderOpenAI
	case strings.HasPrefix(modelLower, "gemini-"):
		return ProviderGemini
	default:
		return ProviderGroq
	}
}

// llmAPIKey picks the key matching the configured provider.
// LLM_API_KEY always wins so a single variable works for any OpenAI-compatible host.
func llmAPIKey(provider string) string {
	if key := getEnv("LLM_API_KEY", ""); key != "" {
		return key
	}
	switch provider {
	case ProviderOpenAI:
		return getEnv("OPENAI_API_KEY", "")
	case ProviderGemini:
		return getEnv("GEMINI_API_KEY", "")
	default:
		return getEnv("GROQ_API_KEY", "")
	}
}

func defaultBaseURL(provider string) string {
	if provider == ProviderGroq {
		return groqBaseURL
	}
	// Empty means the SDK default
	return ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvDate(key, defaultValue string) time.Time {
	t, err := time.ParseInLocation(nextMeetLayout, getEnv(key, defaultValue), time.Local)
	if err != nil {
		t, _ = time.ParseInLocation(nextMeetLayout, defaultValue, time.Local)
	}
	return t
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
