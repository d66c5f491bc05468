package handler

type IpoItemResponse struct {
	CompanyName   string   `json:"company_name"`
	Ticker        string   `json:"ticker"`
	Market        string   `json:"market"`
	ListingDate   string   `json:"listing_date"`
	OfferingPrice *float64 `json:"offering_price"`
	OutlinePdfURL *string  `json:"outline_pdf_url"`
	GeneratedAt   string   `json:"generated_at"`
}

type IpoLatestResponse struct {
	Items       []IpoItemResponse `json:"items"`
	TotalCount  int               `json:"total_count"`
	GeneratedAt string            `json:"generated_at"`
}

type IpoSummaryResponse struct {
	Code        string   `json:"code"`
	Bullets     []string `json:"bullets"`
	Cached      bool     `json:"cached"`
	GeneratedAt string   `json:"generated_at"`
}

type MarketItemResponse struct {
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

type MarketOverviewResponse struct {
	Indices     []MarketItemResponse `json:"indices"`
	Bonds       []MarketItemResponse `json:"bonds"`
	FX          []MarketItemResponse `json:"fx"`
	Commodities []MarketItemResponse `json:"commodities"`
	GeneratedAt string               `json:"generated_at"`
}
