package analysis

import (
	"fmt"
	"log"
	"math"

	"smv_analyzer/pkg/core/ledger"
	"smv_analyzer/pkg/core/resolve"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// VerticalBalance expresses every balance-sheet line as a percentage of the
// total-assets row. Returns nil when no grand-total row can be located.
//
// Known quirk, preserved on purpose: when the total for a year is zero,
// that year's column is left unscaled, so raw currency values sit in an
// otherwise percentage table. Callers see exactly what the source system
// produced.
func VerticalBalance(l *ledger.Ledger) *ledger.Ledger {
	total, ok := resolve.BalanceGrandTotal.Resolve(l)
	if !ok {
		log.Printf("[Analysis] vertical balance: no grand-total row, table left empty")
		return nil
	}
	return vertical(l, total)
}

// VerticalIncome expresses every income line as a percentage of revenue.
// Returns nil when no revenue row can be located.
func VerticalIncome(l *ledger.Ledger) *ledger.Ledger {
	base, ok := resolve.RevenueVerticalBase.Resolve(l)
	if !ok {
		log.Printf("[Analysis] vertical income: no revenue row, table left empty")
		return nil
	}
	return vertical(l, base)
}

func vertical(l *ledger.Ledger, totalAccount string) *ledger.Ledger {
	years := l.Years()
	accounts := l.Accounts()
	values := make(map[string]map[int]float64, len(accounts))
	for _, account := range accounts {
		values[account] = make(map[int]float64, len(years))
	}
	for _, year := range years {
		total := l.Value(totalAccount, year)
		for _, account := range accounts {
			v := l.Value(account, year)
			if total != 0 {
				v = v / total * 100
			}
			// Rounding covers the whole table, unscaled columns included.
			values[account][year] = round2(v)
		}
	}
	return ledger.New(accounts, years, values)
}

// Horizontal computes the percentage change of every line between each
// adjacent pair of year columns, ascending. A zero prior-year value makes
// the cell not computable - never an IEEE infinity.
func Horizontal(l *ledger.Ledger) *HorizontalTable {
	years := l.Years()
	accounts := l.Accounts()
	t := &HorizontalTable{
		accounts: accounts,
		cells:    make(map[string]map[string]RatioValue, len(accounts)),
	}
	for _, account := range accounts {
		t.cells[account] = make(map[string]RatioValue, len(years))
	}
	for i := 0; i+1 < len(years); i++ {
		prior, current := years[i], years[i+1]
		period := fmt.Sprintf("%d-%d", prior, current)
		t.periods = append(t.periods, period)
		for _, account := range accounts {
			p := l.Value(account, prior)
			if p == 0 {
				t.cells[account][period] = NotComputable
				continue
			}
			c := l.Value(account, current)
			t.cells[account][period] = Number(round2((c - p) / p * 100))
		}
	}
	return t
}
