package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sakuya10969/capital-lens/internal/model"
)

type MarketService interface {
	Overview(ctx context.Context) (model.MarketOverview, error)
}

type MarketHandler struct {
	service MarketService
}

func NewMarketHandler(service MarketService) *MarketHandler {
	return &MarketHandler{service: service}
}

func (h *MarketHandler) GetOverview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		slog.Error("error fetching market overview", "error", err)
		respondClassified(c, err)
		return
	}

	c.JSON(http.StatusOK, MarketOverviewResponse{
		Indices:     toMarketItemResponses(overview.Indices),
		Bonds:       toMarketItemResponses(overview.Bonds),
		FX:          toMarketItemResponses(overview.FX),
		Commodities: toMarketItemResponses(overview.Commodities),
		GeneratedAt: overview.GeneratedAt.Format(time.RFC3339),
	})
}

func (h *MarketHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toMarketItemResponses(items []model.MarketItem) []MarketItemResponse {
	res := make([]MarketItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, MarketItemResponse{
			Name:          item.Name,
			CurrentPrice:  item.CurrentPrice,
			Change:        item.Change,
			ChangePercent: item.ChangePercent,
		})
	}
	return res
}
