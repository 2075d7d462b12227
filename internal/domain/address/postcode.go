package address

import (
	"regexp"
	"strings"
)

// Dutch postcodes are four digits (never starting with zero) followed by two
// letters, with an optional space: "1234 AB" or "1234AB".
var postcodePattern = regexp.MustCompile(`^[1-9][0-9]{3}\s?[A-Za-z]{2}$`)

// ValidatePostcode reports whether the input matches the Dutch postcode
// grammar. Surrounding whitespace is ignored and letters are case-insensitive.
func ValidatePostcode(s string) bool {
	return postcodePattern.MatchString(strings.TrimSpace(s))
}

// NormalizePostcode strips all whitespace and uppercases the input, yielding
// the compact "1234AB" form the directory API expects.
func NormalizePostcode(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// FormatPostcode normalizes a compact six-character postcode into the display
// form "1234 AB". Input that is not exactly six characters after stripping
// whitespace passes through unchanged.
func FormatPostcode(s string) string {
	clean := NormalizePostcode(s)
	if len(clean) != 6 {
		return s
	}
	return clean[:4] + " " + clean[4:]
}
