package analysis

import (
	"math"

	"smv_analyzer/pkg/core/ledger"
	"smv_analyzer/pkg/core/resolve"
)

// Ratio row names, in computation order.
const (
	RatioCurrentRatio    = "Liquidez Corriente"
	RatioQuickRatio      = "Prueba Ácida"
	RatioReceivablesTurn = "Rotación CxC"
	RatioInventoryTurn   = "Rotación Inventarios"
	RatioAssetTurn       = "Rotación Activos Totales"
	RatioDebtRatio       = "Razón Deuda Total"
	RatioDebtToEquity    = "Razón Deuda/Patrimonio"
	RatioNetMargin       = "Margen Neto"
	RatioROA             = "ROA"
	RatioROE             = "ROE"
)

var ratioOrder = []string{
	RatioCurrentRatio,
	RatioQuickRatio,
	RatioReceivablesTurn,
	RatioInventoryTurn,
	RatioAssetTurn,
	RatioDebtRatio,
	RatioDebtToEquity,
	RatioNetMargin,
	RatioROA,
	RatioROE,
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// CommonYears returns the years present in both ledgers, ascending. Ratios
// are only defined where the balance sheet and the income statement
// overlap.
func CommonYears(balance, income *ledger.Ledger) []int {
	if balance.Empty() || income.Empty() {
		return nil
	}
	in := make(map[int]bool)
	for _, y := range income.Years() {
		in[y] = true
	}
	var years []int
	for _, y := range balance.Years() {
		if in[y] {
			years = append(years, y)
		}
	}
	return years
}

// metricInputs holds the per-run account resolution results. Resolution is
// independent of the year, so each line is resolved once per run; a miss
// leaves the empty string and the line reads as 0.0 everywhere.
type metricInputs struct {
	balance *ledger.Ledger
	income  *ledger.Ledger

	currentAssets      string
	inventories        string
	currentLiabilities string
	tradeReceivables   string
	relatedReceivables string
	otherReceivables   string
	totalAssets        string
	totalLiabilities   string
	equity             string
	revenue            string
	costOfSales        string
	netIncome          string
}

func resolveInputs(balance, income *ledger.Ledger) *metricInputs {
	in := &metricInputs{balance: balance, income: income}
	in.currentAssets, _ = resolve.CurrentAssets.Resolve(balance)
	in.inventories, _ = resolve.Inventories.Resolve(balance)
	in.currentLiabilities, _ = resolve.CurrentLiabilities.Resolve(balance)
	in.tradeReceivables, _ = resolve.TradeReceivables.Resolve(balance)
	in.relatedReceivables, _ = resolve.RelatedReceivables.Resolve(balance)
	in.otherReceivables, _ = resolve.OtherReceivables.Resolve(balance)
	in.totalAssets, _ = resolve.TotalAssets.Resolve(balance)
	in.totalLiabilities, _ = resolve.TotalLiabilities.Resolve(balance)
	in.equity, _ = resolve.Equity.Resolve(balance)
	in.revenue, _ = resolve.Revenue.Resolve(income)
	in.costOfSales, _ = resolve.CostOfSales.Resolve(income)
	in.netIncome, _ = resolve.NetIncome.Resolve(income)
	return in
}

func (in *metricInputs) balanceAt(account string, year int) float64 {
	if account == "" {
		return 0.0
	}
	return in.balance.Value(account, year)
}

func (in *metricInputs) incomeAt(account string, year int) float64 {
	if account == "" {
		return 0.0
	}
	return in.income.Value(account, year)
}

// receivablesAt sums the three receivable variants for a year.
func (in *metricInputs) receivablesAt(year int) float64 {
	return in.balanceAt(in.tradeReceivables, year) +
		in.balanceAt(in.relatedReceivables, year) +
		in.balanceAt(in.otherReceivables, year)
}

// equityAt reads the equity row and, when it is unresolved or zero while
// total assets is not, derives equity as assets minus liabilities.
func (in *metricInputs) equityAt(year int) float64 {
	equity := in.balanceAt(in.equity, year)
	assets := in.balanceAt(in.totalAssets, year)
	if equity == 0.0 && assets != 0.0 {
		equity = assets - in.balanceAt(in.totalLiabilities, year)
	}
	return equity
}

// safeDiv divides, mapping a zero denominator to the sentinel.
func safeDiv(num, den float64) RatioValue {
	if den == 0 {
		return NotComputable
	}
	return Number(round4(num / den))
}

// divByAvg divides by an average balance that may itself be the sentinel.
func divByAvg(num float64, avg RatioValue) RatioValue {
	if !avg.Valid {
		return NotComputable
	}
	return safeDiv(num, avg.Value)
}

// average computes an average balance over the current and prior common
// year. An exactly-zero sum is the sentinel: any ratio dividing by it is
// not computable.
func average(current, prior float64) RatioValue {
	sum := current + prior
	if sum == 0 {
		return NotComputable
	}
	return Number(sum / 2)
}

// ComputeRatios produces the standard ratio time series over the common
// years of the two ledgers. Averages (receivables, inventories, total
// assets, equity) use the current year alone for the first common year and
// the mean with the immediately preceding common year afterwards.
func ComputeRatios(balance, income *ledger.Ledger) *RatioSeries {
	names := make([]string, len(ratioOrder))
	copy(names, ratioOrder)
	s := &RatioSeries{names: names, cells: make(map[string]map[int]RatioValue)}
	for _, name := range names {
		s.cells[name] = make(map[int]RatioValue)
	}

	years := CommonYears(balance, income)
	if len(years) == 0 {
		return s
	}
	s.years = years

	in := resolveInputs(balance, income)
	for i, year := range years {
		currentAssets := in.balanceAt(in.currentAssets, year)
		inventories := in.balanceAt(in.inventories, year)
		currentLiabilities := in.balanceAt(in.currentLiabilities, year)
		receivables := in.receivablesAt(year)
		totalAssets := in.balanceAt(in.totalAssets, year)
		totalLiabilities := in.balanceAt(in.totalLiabilities, year)
		equity := in.equityAt(year)
		revenue := in.incomeAt(in.revenue, year)
		costOfSales := in.incomeAt(in.costOfSales, year)
		netIncome := in.incomeAt(in.netIncome, year)

		avgReceivables := Number(receivables)
		avgInventories := Number(inventories)
		avgAssets := Number(totalAssets)
		avgEquity := Number(equity)
		if i > 0 {
			prior := years[i-1]
			avgReceivables = average(receivables, in.receivablesAt(prior))
			avgInventories = average(inventories, in.balanceAt(in.inventories, prior))
			avgAssets = average(totalAssets, in.balanceAt(in.totalAssets, prior))
			avgEquity = average(equity, in.equityAt(prior))
		}

		s.cells[RatioCurrentRatio][year] = safeDiv(currentAssets, currentLiabilities)
		s.cells[RatioQuickRatio][year] = safeDiv(currentAssets-inventories, currentLiabilities)
		s.cells[RatioReceivablesTurn][year] = divByAvg(revenue, avgReceivables)
		s.cells[RatioInventoryTurn][year] = divByAvg(math.Abs(costOfSales), avgInventories)
		s.cells[RatioAssetTurn][year] = divByAvg(revenue, avgAssets)
		s.cells[RatioDebtRatio][year] = safeDiv(totalLiabilities, totalAssets)
		s.cells[RatioDebtToEquity][year] = safeDiv(totalLiabilities, equity)
		s.cells[RatioNetMargin][year] = safeDiv(netIncome, revenue)
		s.cells[RatioROA][year] = divByAvg(netIncome, avgAssets)
		s.cells[RatioROE][year] = divByAvg(netIncome, avgEquity)
	}
	return s
}
