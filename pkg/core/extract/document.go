// Package extract parses one scraped statement document into year-keyed,
// account-keyed numeric accumulators. The regulator publishes these files
// with an .xls extension, but the payload is HTML with the three statement
// tables carried under fixed element ids.
package extract

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Document is one uploaded source file, kept fully in memory.
type Document struct {
	Name string
	Raw  []byte
}

// TableIDs names the HTML element ids of the three statement tables.
// Alternatives are tried in order; the cash-flow table moved ids between
// portal vintages, so it carries two.
type TableIDs struct {
	Balance  []string
	Income   []string
	CashFlow []string
}

// DefaultTableIDs returns the id scheme used by the regulator portal.
func DefaultTableIDs() TableIDs {
	return TableIDs{
		Balance:  []string{"gvReporte"},
		Income:   []string{"gvReporte1"},
		CashFlow: []string{"gvReporte3", "gvReporte2"},
	}
}

// decode turns the raw bytes into text, trying Latin-1, Windows-1252 and
// UTF-8 in that order and keeping the first decoding that succeeds.
func decode(raw []byte) (string, error) {
	if out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw); err == nil {
		return string(out), nil
	}
	if out, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		return string(out), nil
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	return "", fmt.Errorf("extract: no supported encoding decodes the document")
}
