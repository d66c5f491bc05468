package market

import (
	"context"
	"fmt"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/sakuya10969/capital-lens/internal/apperr"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (Quote, error) {
	res, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return Quote{}, apperr.NewFetchError("Finnhub", err.Error())
	}

	// Finnhub reports unknown symbols as an all-zero quote.
	if res.GetC() == 0 && res.GetPc() == 0 {
		return Quote{}, apperr.NewFetchError("Finnhub", fmt.Sprintf("no quote data for %s", symbol))
	}

	return Quote{
		Current:       float64(res.GetC()),
		PreviousClose: float64(res.GetPc()),
	}, nil
}
