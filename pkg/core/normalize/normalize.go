// Package normalize turns raw scraped cell text into comparable data:
// numeric amounts on one side, canonical account-name keys on the other.
// Both entry points are total functions; malformed input degrades to the
// zero value instead of returning an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	footnoteRegex   = regexp.MustCompile(`\s*\(\d+\)\s*$`)
)

// stripAccents decomposes and drops combining marks, so "Ácida" -> "Acida".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ParseAmount converts a raw cell string to a float64. It strips thousands
// separators, non-breaking spaces and plain spaces, and reads a value
// wrapped in parentheses as negative (accounting convention). Empty cells,
// literal "0" and anything that fails to parse all yield 0.0.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" {
		return 0.0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		s = "-" + s[1:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// CanonicalizeName normalizes an account label into its canonical key:
// diacritics stripped, internal whitespace collapsed, trimmed, uppercased,
// and a trailing "(n)" footnote marker removed ("Caja y Bancos (9)" ->
// "CAJA Y BANCOS"). The result is stable under re-canonicalization.
func CanonicalizeName(raw string) string {
	s, _, err := transform.String(stripAccents, raw)
	if err != nil {
		// Transform only fails on invalid UTF-8; keep the raw text then.
		s = raw
	}
	s = whitespaceRegex.ReplaceAllString(s, " ")
	s = strings.ToUpper(strings.TrimSpace(s))
	return footnoteRegex.ReplaceAllString(s, "")
}
