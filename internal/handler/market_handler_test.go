package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/sakuya10969/capital-lens/internal/apperr"
	"github.com/sakuya10969/capital-lens/internal/model"
)

type fakeMarketService struct {
	overview model.MarketOverview
	err      error
}

func (f *fakeMarketService) Overview(ctx context.Context) (model.MarketOverview, error) {
	return f.overview, f.err
}

func newTestMarketRouter(service MarketService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMarketHandler(service)
	r.GET("/api/market/overview", h.GetOverview)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetOverview(t *testing.T) {
	service := &fakeMarketService{
		overview: model.MarketOverview{
			Indices: []model.MarketItem{
				{Name: "日経平均", CurrentPrice: 40000, Change: 500, ChangePercent: 1.2658},
			},
			Bonds:       []model.MarketItem{},
			FX:          []model.MarketItem{},
			Commodities: []model.MarketItem{},
			GeneratedAt: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
		},
	}
	r := newTestMarketRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/market/overview", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res MarketOverviewResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 1, len(res.Indices))
	assert.Equal(t, "日経平均", res.Indices[0].Name)
	assert.Equal(t, 40000.0, res.Indices[0].CurrentPrice)
	assert.Equal(t, 0, len(res.Bonds))
}

func TestGetOverview_FetchErrorMapsTo503(t *testing.T) {
	r := newTestMarketRouter(&fakeMarketService{err: apperr.NewFetchError("Finnhub", "HTTP 429")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/market/overview", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Finnhub", res["source"])
}

func TestGetHealth(t *testing.T) {
	r := newTestMarketRouter(&fakeMarketService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "ok", res["status"])
}
