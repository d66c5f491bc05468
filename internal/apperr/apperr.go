// Package apperr defines the two recoverable error classes the service
// distinguishes at its HTTP boundary: upstream transport failures and
// structurally unexpected upstream documents.
package apperr

import "fmt"

// FetchError reports a failed call to an external source (JPX, Finnhub,
// the prospectus host). Source identifies which one.
type FetchError struct {
	Source string
	Detail string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("external fetch error from %s: %s", e.Source, e.Detail)
}

// ParseError reports upstream content that could not be parsed into the
// expected structure.
type ParseError struct {
	Source string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error from %s: %s", e.Source, e.Detail)
}

func NewFetchError(source, detail string) *FetchError {
	return &FetchError{Source: source, Detail: detail}
}

func NewParseError(source, detail string) *ParseError {
	return &ParseError{Source: source, Detail: detail}
}
