package ipo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakuya10969/capital-lens/internal/apperr"
	"github.com/sakuya10969/capital-lens/internal/model"
)

// TextExtractor pulls plain text out of a prospectus document URL.
type TextExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Summarizer turns extracted prospectus text into bullet points. It
// never fails; missing text or backend produce fallback bullets.
type Summarizer interface {
	Summarize(ctx context.Context, code, text string) []string
}

// SummaryCache mediates between summary requests and the generation
// chain. GetOrCreate returns a cached record within the TTL window and
// otherwise runs generate exactly once per concurrent group of callers.
type SummaryCache interface {
	GetOrCreate(ctx context.Context, code string, generate func(context.Context) (model.IpoSummary, error)) (model.IpoSummary, error)
}

// Service composes the listing parser, prospectus locator, extractor and
// summarizer into the two operations the API exposes.
type Service struct {
	listingURL string
	origin     string
	httpClient *http.Client
	extractor  TextExtractor
	summarizer Summarizer
	cache      SummaryCache
}

func NewService(listingURL, origin string, httpClient *http.Client, extractor TextExtractor, summarizer Summarizer, cache SummaryCache) *Service {
	return &Service{
		listingURL: listingURL,
		origin:     origin,
		httpClient: httpClient,
		extractor:  extractor,
		summarizer: summarizer,
		cache:      cache,
	}
}

// LatestListings fetches and parses the JPX listing page. An unreachable
// or unparseable page degrades to an empty result; it is not surfaced as
// an outage to the caller.
func (s *Service) LatestListings(ctx context.Context) ([]model.IpoListing, error) {
	pageHTML, err := s.fetchListingPage(ctx)
	if err == nil {
		var listings []model.IpoListing
		listings, err = ParseListingTable(pageHTML, s.origin)
		if err == nil {
			return listings, nil
		}
	}

	var fetchErr *apperr.FetchError
	var parseErr *apperr.ParseError
	if errors.As(err, &fetchErr) || errors.As(err, &parseErr) {
		slog.Error("failed to fetch listings", "url", s.listingURL, "error", err)
		return []model.IpoListing{}, nil
	}

	return nil, err
}

// Summary returns the bullet summary for one listing code, generating it
// through the locate -> extract -> summarize chain on a cache miss.
func (s *Service) Summary(ctx context.Context, code string) (model.IpoSummary, error) {
	return s.cache.GetOrCreate(ctx, code, func(ctx context.Context) (model.IpoSummary, error) {
		return s.generateSummary(ctx, code)
	})
}

func (s *Service) generateSummary(ctx context.Context, code string) (model.IpoSummary, error) {
	pdfURL := s.findProspectusURL(ctx, code)

	text := ""
	if pdfURL != "" {
		extracted, err := s.extractor.Extract(ctx, pdfURL)
		if err != nil {
			slog.Warn("prospectus extraction failed", "code", code, "url", pdfURL, "error", err)
		} else {
			text = extracted
		}
	}

	bullets := s.summarizer.Summarize(ctx, code, text)

	return model.IpoSummary{
		Code:        code,
		Bullets:     bullets,
		Cached:      false,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) fetchListingPage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.listingURL, nil)
	if err != nil {
		return "", apperr.NewFetchError("JPX", err.Error())
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apperr.NewFetchError("JPX", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.NewFetchError("JPX", fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.NewFetchError("JPX", err.Error())
	}

	return string(body), nil
}
