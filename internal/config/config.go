package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds everything the service reads from the environment.
// godotenv.Load is called by main before this runs.
type Config struct {
	ListingURL     string
	ListingOrigin  string
	ListingTimeout time.Duration
	QuoteTimeout   time.Duration
	LLMTimeout     time.Duration
	SummaryTTL     time.Duration

	AzureOpenAIEndpoint   string
	AzureOpenAIAPIKey     string
	AzureOpenAIAPIVersion string
	AzureOpenAIDeployment string

	AnthropicAPIKey string
	FinnhubAPIKey   string
}

func Load() Config {
	return Config{
		ListingURL:     getEnv("JPX_IPO_URL", "https://www.jpx.co.jp/listing/stocks/new/index.html"),
		ListingOrigin:  getEnv("JPX_BASE_URL", "https://www.jpx.co.jp"),
		ListingTimeout: getEnvSeconds("JPX_TIMEOUT", 15),
		QuoteTimeout:   getEnvSeconds("QUOTE_TIMEOUT", 15),
		LLMTimeout:     getEnvSeconds("LLM_TIMEOUT", 60),
		SummaryTTL:     getEnvSeconds("SUMMARY_TTL", int(24*time.Hour/time.Second)),

		AzureOpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureOpenAIAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureOpenAIAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-06-01"),
		AzureOpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o-mini"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		FinnhubAPIKey:   os.Getenv("FINNHUB_API_KEY"),
	}
}

func getEnv(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func getEnvSeconds(name string, defaultSeconds int) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return time.Duration(defaultSeconds) * time.Second
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		slog.Warn("invalid duration env, using default", "env", name, "value", raw, "default_seconds", defaultSeconds)
		return time.Duration(defaultSeconds) * time.Second
	}

	return time.Duration(seconds) * time.Second
}
