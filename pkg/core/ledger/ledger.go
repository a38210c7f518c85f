// Package ledger holds the consolidated account-by-year tables for one
// statement type. StatementData is the mutable accumulator used while
// documents are being merged; Ledger is the immutable table handed
// downstream once consolidation finishes.
package ledger

import "sort"

// StatementData accumulates extracted values keyed by year and account.
// Writes go through Set, which enforces the duplicate-row policy, and the
// first-seen order of accounts is preserved so consolidated tables keep the
// statement's presentation order.
type StatementData struct {
	values map[int]map[string]float64
	order  []string
	seen   map[string]bool
}

// NewStatementData returns an empty accumulator.
func NewStatementData() *StatementData {
	return &StatementData{
		values: make(map[int]map[string]float64),
		seen:   make(map[string]bool),
	}
}

// Set writes value under the first-non-zero-wins policy: a new account is
// stored as-is; an existing 0.0 entry is overwritten by a non-zero value;
// anything else keeps the existing entry. Source tables repeat rows as
// placeholders, so a later zero must never clobber a real value and
// duplicates are never summed.
func (d *StatementData) Set(year int, account string, value float64) {
	if !d.seen[account] {
		d.seen[account] = true
		d.order = append(d.order, account)
	}
	byAccount, ok := d.values[year]
	if !ok {
		byAccount = make(map[string]float64)
		d.values[year] = byAccount
	}
	existing, ok := byAccount[account]
	if !ok || (existing == 0.0 && value != 0.0) {
		byAccount[account] = value
	}
}

// Merge folds other into d in a deterministic order (other's account order,
// years ascending), reusing the Set policy for every cell.
func (d *StatementData) Merge(other *StatementData) {
	if other == nil {
		return
	}
	years := other.Years()
	for _, account := range other.order {
		for _, year := range years {
			if v, ok := other.values[year][account]; ok {
				d.Set(year, account, v)
			}
		}
	}
}

// Years returns the years touched so far, ascending.
func (d *StatementData) Years() []int {
	years := make([]int, 0, len(d.values))
	for y := range d.values {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Empty reports whether no value has been written.
func (d *StatementData) Empty() bool {
	return d == nil || len(d.values) == 0
}

// Build materializes the accumulator as an immutable Ledger: the union of
// all accounts crossed with the union of all years, missing cells filled
// with 0.0 and year columns sorted ascending.
func (d *StatementData) Build() *Ledger {
	if d.Empty() {
		return &Ledger{values: make(map[string]map[int]float64)}
	}
	years := d.Years()
	accounts := make([]string, len(d.order))
	copy(accounts, d.order)
	values := make(map[string]map[int]float64, len(accounts))
	for _, account := range accounts {
		row := make(map[int]float64, len(years))
		for _, year := range years {
			row[year] = d.values[year][account]
		}
		values[account] = row
	}
	return &Ledger{accounts: accounts, years: years, values: values}
}

// Ledger is a consolidated account-by-year table. It is immutable after
// Build; derived analyses are computed from it, never written back.
type Ledger struct {
	accounts []string
	years    []int
	values   map[string]map[int]float64
}

// New builds a Ledger directly from its parts. Intended for derived tables
// (vertical analysis) and tests; consolidation should go through
// StatementData.Build.
func New(accounts []string, years []int, values map[string]map[int]float64) *Ledger {
	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)
	return &Ledger{accounts: accounts, years: sorted, values: values}
}

// Accounts returns the row labels in presentation order.
func (l *Ledger) Accounts() []string {
	out := make([]string, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// Years returns the year columns, ascending.
func (l *Ledger) Years() []int {
	out := make([]int, len(l.years))
	copy(out, l.years)
	return out
}

// Value returns the cell for (account, year); absent cells read as 0.0.
func (l *Ledger) Value(account string, year int) float64 {
	return l.values[account][year]
}

// HasAccount reports whether account is a row of the table.
func (l *Ledger) HasAccount(account string) bool {
	_, ok := l.values[account]
	return ok
}

// Empty reports whether the ledger has no rows.
func (l *Ledger) Empty() bool {
	return l == nil || len(l.accounts) == 0
}
