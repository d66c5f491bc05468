package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchErrorClassification(t *testing.T) {
	err := fmt.Errorf("fetching listings: %w", NewFetchError("JPX", "HTTP 503"))

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatal("wrapped FetchError not matched")
	}
	if fetchErr.Source != "JPX" {
		t.Errorf("source = %q, want JPX", fetchErr.Source)
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		t.Error("FetchError must not match ParseError")
	}
}

func TestErrorMessages(t *testing.T) {
	if got := NewFetchError("Finnhub", "timeout").Error(); got != "external fetch error from Finnhub: timeout" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := NewParseError("JPX", "no table").Error(); got != "parse error from JPX: no table" {
		t.Errorf("unexpected message: %q", got)
	}
}
