package ipo

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// JPX publishes the listing date and the application date in one cell,
// e.g. "Apr. 02, 2026(Feb. 26, 2026)". The parenthesized part is dropped
// before matching.
var parenRegexp = regexp.MustCompile(`\(.*?\)`)

var digitRunRegexp = regexp.MustCompile(`\d+`)

var dateLayouts = []string{
	"Jan. 02, 2006",
	"Jan 02, 2006",
	"2006/01/02",
	"2006年01月02日",
}

// DateResult carries the parsed value plus whether the lossy fallback
// fired, so tests can assert on fallback behaviour directly.
type DateResult struct {
	Value     time.Time
	Defaulted bool
	Reason    string
}

// ParseListingDate parses a JPX listing-date cell, falling back to today
// when nothing usable can be extracted. It never fails.
func ParseListingDate(raw string) time.Time {
	res := parseListingDateAt(raw, time.Now())
	if res.Defaulted {
		slog.Warn("unparseable listing date, falling back to today", "raw", raw, "reason", res.Reason)
	}
	return res.Value
}

func parseListingDateAt(raw string, now time.Time) DateResult {
	clean := strings.TrimSpace(parenRegexp.ReplaceAllString(raw, ""))

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return DateResult{Value: t}
		}
	}

	// Last resort before defaulting: read the first three digit runs as
	// year, month, day.
	runs := digitRunRegexp.FindAllString(clean, 3)
	if len(runs) >= 3 {
		year, errY := strconv.Atoi(runs[0])
		month, errM := strconv.Atoi(runs[1])
		day, errD := strconv.Atoi(runs[2])
		if errY == nil && errM == nil && errD == nil {
			if t, ok := makeDate(year, month, day); ok {
				return DateResult{Value: t}
			}
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return DateResult{Value: today, Defaulted: true, Reason: "no recognizable date in " + strconv.Quote(raw)}
}

func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (Apr 31 -> May 1), which
	// counts as a failed parse here.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

var nonPriceRegexp = regexp.MustCompile(`[^\d.]`)

// ParsePrice extracts a numeric offering price from cells like "3,720"
// or "1,339.3". The second return is false when the cell holds no number.
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	digits := nonPriceRegexp.ReplaceAllString(cleaned, "")
	if digits == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

var companySuffixes = [...]string{"（株）", "(株)", "㈱"}

// NormalizeCompanyName unifies the three abbreviated corporate-suffix
// glyph variants JPX uses into the spelled-out form.
func NormalizeCompanyName(raw string) string {
	name := strings.TrimSpace(raw)
	for _, s := range companySuffixes {
		name = strings.ReplaceAll(name, s, "株式会社")
	}
	return name
}
