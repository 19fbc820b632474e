package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. The set mirrors the formats FNOL documents
// actually arrive with; ambiguous day/month forms resolve to the first layout
// that parses, US-style first.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02-01-2006",
	"01-02-2006",
}

// NormalizeDate converts a date string to canonical YYYY-MM-DD form.
// Unrecognized input is returned verbatim rather than discarded; the
// validator flags it as invalid so the claim still routes to manual review.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return s
}

// IsCanonicalDate reports whether s is a parseable YYYY-MM-DD date.
func IsCanonicalDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

var currencyJunk = regexp.MustCompile(`[$,\s]`)

// ParseCurrency strips currency symbols and separators and parses the rest
// as a number. Returns nil when nothing numeric remains.
func ParseCurrency(raw string) *float64 {
	cleaned := currencyJunk.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &n
}
