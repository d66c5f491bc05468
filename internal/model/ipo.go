package model

import "time"

// IpoListing is one newly listed company reconstructed from the JPX
// listing table. Built fresh on every fetch, never persisted.
type IpoListing struct {
	CompanyName   string
	Ticker        string
	Market        string
	ListingDate   time.Time
	OfferingPrice *float64
	ProspectusURL string
	GeneratedAt   time.Time
}

// IpoSummary is a generated (or cache-served) company summary.
// GeneratedAt always refers to the original generation, even when
// Cached is true.
type IpoSummary struct {
	Code        string
	Bullets     []string
	Cached      bool
	GeneratedAt time.Time
}
