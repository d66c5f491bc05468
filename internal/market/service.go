// Package market aggregates a snapshot of major indices, bond yields,
// FX rates and commodities from a quote provider.
package market

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sakuya10969/capital-lens/internal/model"
)

// Quote is the raw price pair a provider returns for one symbol.
type Quote struct {
	Current       float64
	PreviousClose float64
}

type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

type marketSymbol struct {
	name   string
	ticker string
}

var (
	indexSymbols = []marketSymbol{
		{"日経平均", "^N225"},
		{"TOPIX", "^TPX"},
		{"S&P 500", "^GSPC"},
		{"NASDAQ", "^IXIC"},
		{"ダウ平均", "^DJI"},
	}
	bondSymbols = []marketSymbol{
		{"米10年国債利回り", "^TNX"},
	}
	fxSymbols = []marketSymbol{
		{"USD/JPY", "OANDA:USD_JPY"},
	}
	commoditySymbols = []marketSymbol{
		{"WTI原油", "OANDA:WTICO_USD"},
		{"金", "OANDA:XAU_USD"},
	}
)

type Service struct {
	provider QuoteProvider
	timeout  time.Duration
}

func NewService(provider QuoteProvider, timeout time.Duration) *Service {
	return &Service{provider: provider, timeout: timeout}
}

// Overview fetches every symbol concurrently, each under its own
// timeout. A symbol that fails or times out is left out of its category
// so one bad ticker never breaks the whole snapshot.
func (s *Service) Overview(ctx context.Context) (model.MarketOverview, error) {
	indices := s.fetchCategory(ctx, indexSymbols)
	bonds := s.fetchCategory(ctx, bondSymbols)
	fx := s.fetchCategory(ctx, fxSymbols)
	commodities := s.fetchCategory(ctx, commoditySymbols)

	return model.MarketOverview{
		Indices:     <-indices,
		Bonds:       <-bonds,
		FX:          <-fx,
		Commodities: <-commodities,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) fetchCategory(ctx context.Context, symbols []marketSymbol) <-chan []model.MarketItem {
	out := make(chan []model.MarketItem, 1)

	go func() {
		results := make([]*model.MarketItem, len(symbols))

		g, ctx := errgroup.WithContext(ctx)
		for i, sym := range symbols {
			g.Go(func() error {
				if item := s.fetchItem(ctx, sym); item != nil {
					results[i] = item
				}
				return nil
			})
		}
		g.Wait()

		items := make([]model.MarketItem, 0, len(symbols))
		for _, item := range results {
			if item != nil {
				items = append(items, *item)
			}
		}
		out <- items
	}()

	return out
}

func (s *Service) fetchItem(ctx context.Context, sym marketSymbol) *model.MarketItem {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quote, err := s.provider.Quote(ctx, sym.ticker)
	if err != nil {
		slog.Warn("quote fetch failed", "name", sym.name, "ticker", sym.ticker, "error", err)
		return nil
	}

	change := quote.Current - quote.PreviousClose
	changePct := 0.0
	if quote.PreviousClose != 0 {
		changePct = change / quote.PreviousClose * 100
	}

	return &model.MarketItem{
		Name:          sym.name,
		CurrentPrice:  round4(quote.Current),
		Change:        round4(change),
		ChangePercent: round4(changePct),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
