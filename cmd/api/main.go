package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sakuya10969/capital-lens/internal/cache"
	"github.com/sakuya10969/capital-lens/internal/config"
	"github.com/sakuya10969/capital-lens/internal/handler"
	"github.com/sakuya10969/capital-lens/internal/ipo"
	"github.com/sakuya10969/capital-lens/internal/market"
	"github.com/sakuya10969/capital-lens/internal/pdftext"
	"github.com/sakuya10969/capital-lens/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	summarizer := llm.NewBulletSummarizer(newLLMClient(cfg), cfg.LLMTimeout)
	extractor := pdftext.NewExtractor(cfg.ListingTimeout * 2)
	summaryCache := cache.NewSummaryCache(cfg.SummaryTTL)

	ipoService := ipo.NewService(
		cfg.ListingURL,
		cfg.ListingOrigin,
		&http.Client{Timeout: cfg.ListingTimeout},
		extractor,
		summarizer,
		summaryCache,
	)
	ipoHandler := handler.NewIpoHandler(ipoService)

	if cfg.FinnhubAPIKey == "" {
		slog.Warn("FINNHUB_API_KEY not set, market overview will be empty")
	}
	marketService := market.NewService(market.NewFinnhubClient(cfg.FinnhubAPIKey), cfg.QuoteTimeout)
	marketHandler := handler.NewMarketHandler(marketService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/ipo/latest", ipoHandler.GetLatest)
	r.GET("/api/ipo/summary/:code", ipoHandler.GetSummary)
	r.GET("/api/market/overview", marketHandler.GetOverview)
	r.GET("/health", marketHandler.GetHealth)

	err := r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// newLLMClient picks the generation backend from the environment: Azure
// OpenAI when fully configured, Anthropic as the alternate, nil when
// neither is set (summaries degrade to a placeholder bullet).
func newLLMClient(cfg config.Config) llm.Client {
	if cfg.AzureOpenAIEndpoint != "" && cfg.AzureOpenAIAPIKey != "" {
		return llm.NewAzureOpenAIClient(
			cfg.AzureOpenAIEndpoint,
			cfg.AzureOpenAIAPIKey,
			cfg.AzureOpenAIAPIVersion,
			cfg.AzureOpenAIDeployment,
		)
	}
	if cfg.AnthropicAPIKey != "" {
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}

	slog.Warn("no generation backend configured, summaries will be placeholders")
	return nil
}
