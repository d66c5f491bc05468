package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sakuya10969/capital-lens/internal/apperr"
	"github.com/sakuya10969/capital-lens/internal/model"
)

type IpoService interface {
	LatestListings(ctx context.Context) ([]model.IpoListing, error)
	Summary(ctx context.Context, code string) (model.IpoSummary, error)
}

type IpoHandler struct {
	service IpoService
}

func NewIpoHandler(service IpoService) *IpoHandler {
	return &IpoHandler{service: service}
}

func (h *IpoHandler) GetLatest(c *gin.Context) {
	listings, err := h.service.LatestListings(c.Request.Context())
	if err != nil {
		slog.Error("error fetching latest listings", "error", err)
		respondClassified(c, err)
		return
	}

	items := make([]IpoItemResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, toIpoItemResponse(l))
	}

	c.JSON(http.StatusOK, IpoLatestResponse{
		Items:       items,
		TotalCount:  len(items),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *IpoHandler) GetSummary(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), code)
	if err != nil {
		slog.Error("error generating summary", "code", code, "error", err)
		respondClassified(c, err)
		return
	}

	c.JSON(http.StatusOK, IpoSummaryResponse{
		Code:        summary.Code,
		Bullets:     summary.Bullets,
		Cached:      summary.Cached,
		GeneratedAt: summary.GeneratedAt.Format(time.RFC3339),
	})
}

func toIpoItemResponse(l model.IpoListing) IpoItemResponse {
	res := IpoItemResponse{
		CompanyName:   l.CompanyName,
		Ticker:        l.Ticker,
		Market:        l.Market,
		ListingDate:   l.ListingDate.Format("2006-01-02"),
		OfferingPrice: l.OfferingPrice,
		GeneratedAt:   l.GeneratedAt.Format(time.RFC3339),
	}
	if l.ProspectusURL != "" {
		url := l.ProspectusURL
		res.OutlinePdfURL = &url
	}
	return res
}

// respondClassified maps the two recoverable error classes to distinct
// status codes; anything else is a generic service-unavailable.
func respondClassified(c *gin.Context, err error) {
	var fetchErr *apperr.FetchError
	if errors.As(err, &fetchErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "external_api_error",
			"source": fetchErr.Source,
			"detail": fetchErr.Detail,
		})
		return
	}

	var parseErr *apperr.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "data_parsing_error",
			"source": parseErr.Source,
			"detail": parseErr.Detail,
		})
		return
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
}
