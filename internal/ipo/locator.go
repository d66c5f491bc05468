package ipo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// findProspectusURL re-fetches the listing page and returns the absolute
// URL of the first PDF anchor in the row mentioning code. This is an
// independent fetch with no shared-snapshot guarantee against an earlier
// listing call. Every failure degrades to "" so summary generation can
// still proceed without a prospectus.
func (s *Service) findProspectusURL(ctx context.Context, code string) string {
	pageHTML, err := s.fetchListingPage(ctx)
	if err != nil {
		slog.Warn("could not fetch listing page for prospectus lookup", "code", code, "error", err)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		slog.Warn("could not parse listing page for prospectus lookup", "code", code, "error", err)
		return ""
	}

	found := ""
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if !strings.Contains(row.Text(), code) {
			return true
		}
		if url := findPdfLink(row, s.origin); url != "" {
			found = url
			return false
		}
		return true
	})

	return found
}
