package model

import "time"

type MarketItem struct {
	Name          string
	CurrentPrice  float64
	Change        float64
	ChangePercent float64
}

type MarketOverview struct {
	Indices     []MarketItem
	Bonds       []MarketItem
	FX          []MarketItem
	Commodities []MarketItem
	GeneratedAt time.Time
}
