package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"taketora/internal/currency"
	"taketora/internal/shipping"
)

var (
	reSub     = regexp.MustCompile(`^[\p{L}\p{N} _'-]{1,64}$`)
	reCountry = regexp.MustCompile(`^[A-Z]{2}$`)
)

const (
	// MaxWeight bounds the shipping calculator input (grams).
	MaxWeight = 100000
	// MaxSlug matches the WordPress post_name column width.
	MaxSlug = 200
)

// Slug accepts any non-empty value of at most MaxSlug runes with no control
// characters or path separators. Slugs only ever reach the stores as bound
// parameters, so the check is about shape, not content.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxSlug {
		return "", false
	}
	for _, r := range s {
		if r == '/' || unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}

// SlugParam decodes a raw route segment before checking it with Slug.
func SlugParam(raw string) (string, bool) {
	s, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	return Slug(s)
}

// Subcategory validates the collection page's ?subcategory= filter.
func Subcategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reSub.MatchString(s)
}

// Currency accepts a supported code in any case.
func Currency(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return currency.USD, true
	}
	return s, currency.Known(s)
}

// Amount parses a non-negative JPY amount.
func Amount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 || n > 1_000_000_000 {
		return 0, false
	}
	return n, true
}

// Weight parses grams in [0, MaxWeight]. Empty means 0.
func Weight(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxWeight {
		return 0, false
	}
	return n, true
}

// Country accepts an ISO alpha-2 code from the calculator's list.
func Country(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "US", true
	}
	if !reCountry.MatchString(s) {
		return "", false
	}
	for _, c := range shipping.Countries() {
		if c.Code == s {
			return s, true
		}
	}
	return "", false
}

// Qty parses a requested quantity; junk reads as 1. The upper bound is the
// product's stock and is applied by the cart service.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
