// Package pdftext downloads a prospectus PDF and extracts plain text
// from its leading pages. Prospectuses routinely run past a hundred
// pages; only the first few carry the company outline, so extraction is
// capped to bound latency and payload size.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

const maxPages = 5

type Extractor struct {
	httpClient *http.Client
}

// NewExtractor builds an extractor whose downloads follow redirects and
// time out after timeout. PDFs are heavier than HTML pages, so callers
// typically pass double the page-fetch timeout.
func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Extract fetches url and returns the concatenated text of its first
// pages. Errors are returned to the caller, which treats them as "no
// text available".
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("pdf request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pdf fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("pdf fetch: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}

	return extractText(data)
}

func extractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf parse: %w", err)
	}

	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var texts []string
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts = append(texts, text)
	}

	return strings.Join(texts, "\n"), nil
}
