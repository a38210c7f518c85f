// Package analysis computes the derived views over consolidated ledgers:
// vertical and horizontal analysis tables and the standard ratio series.
// Every output is recomputed fresh from its input ledgers; nothing is
// mutated in place.
package analysis

import "strconv"

// RatioValue is a numeric cell that may instead be "not computable" - the
// denominator was zero or missing. That sentinel is distinct from a genuine
// zero value and from any float; Value is only meaningful when Valid.
type RatioValue struct {
	Valid bool
	Value float64
}

// NotComputable is the sentinel cell for undefined divisions.
var NotComputable = RatioValue{}

// Number wraps a computed float.
func Number(v float64) RatioValue {
	return RatioValue{Valid: true, Value: v}
}

func (v RatioValue) String() string {
	if !v.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

// HorizontalTable holds the horizontal analysis: accounts by year-pair
// periods ("2019-2020"), cells carrying the percentage change or the
// not-computable sentinel when the prior-year value was zero.
type HorizontalTable struct {
	accounts []string
	periods  []string
	cells    map[string]map[string]RatioValue
}

// Accounts returns the row labels in presentation order.
func (t *HorizontalTable) Accounts() []string {
	out := make([]string, len(t.accounts))
	copy(out, t.accounts)
	return out
}

// Periods returns the "prior-current" column names in chronological order.
func (t *HorizontalTable) Periods() []string {
	out := make([]string, len(t.periods))
	copy(out, t.periods)
	return out
}

// Value returns the cell for (account, period); absent cells are the
// sentinel.
func (t *HorizontalTable) Value(account, period string) RatioValue {
	return t.cells[account][period]
}

// Empty reports whether the table has no columns.
func (t *HorizontalTable) Empty() bool {
	return t == nil || len(t.periods) == 0
}

// RatioSeries is the ratio-by-year output table: ratio names as rows in
// their fixed computation order, common years as columns.
type RatioSeries struct {
	names []string
	years []int
	cells map[string]map[int]RatioValue
}

// RatioNames lists the ratios in computation order.
func (s *RatioSeries) RatioNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Years returns the common years, ascending.
func (s *RatioSeries) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// Value returns the cell for (ratio, year).
func (s *RatioSeries) Value(name string, year int) RatioValue {
	return s.cells[name][year]
}

// Empty reports whether no year could be computed.
func (s *RatioSeries) Empty() bool {
	return s == nil || len(s.years) == 0
}
