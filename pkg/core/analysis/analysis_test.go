package analysis

import (
	"math"
	"reflect"
	"testing"

	"smv_analyzer/pkg/core/ledger"
)

func buildLedger(t *testing.T, rows map[string]map[int]float64, order []string) *ledger.Ledger {
	t.Helper()
	d := ledger.NewStatementData()
	for _, account := range order {
		for year, v := range rows[account] {
			d.Set(year, account, v)
		}
	}
	return d.Build()
}

func TestVerticalBalance(t *testing.T) {
	l := buildLedger(t, map[string]map[int]float64{
		"EFECTIVO":      {2019: 250, 2020: 0},
		"TOTAL ACTIVOS": {2019: 1000, 2020: 0},
	}, []string{"EFECTIVO", "TOTAL ACTIVOS"})

	v := VerticalBalance(l)
	if v == nil {
		t.Fatal("vertical balance is nil with a grand-total row present")
	}
	if got := v.Value("EFECTIVO", 2019); got != 25.0 {
		t.Errorf("EFECTIVO 2019 = %v, want 25.0", got)
	}
	if got := v.Value("TOTAL ACTIVOS", 2019); got != 100.0 {
		t.Errorf("TOTAL ACTIVOS 2019 = %v, want 100.0", got)
	}
}

func TestVerticalBalanceZeroTotalColumnUnchanged(t *testing.T) {
	// Documented source quirk: a zero total leaves that year's column in
	// raw currency units. Rounding still applies to the whole table, so
	// even the unscaled values carry at most 2 decimals.
	l := buildLedger(t, map[string]map[int]float64{
		"EFECTIVO":      {2019: 250, 2020: 300.4567},
		"TOTAL ACTIVOS": {2019: 1000, 2020: 0},
	}, []string{"EFECTIVO", "TOTAL ACTIVOS"})

	v := VerticalBalance(l)
	if got := v.Value("EFECTIVO", 2020); got != 300.46 {
		t.Errorf("EFECTIVO 2020 = %v, want the raw 300.4567 rounded to 300.46", got)
	}
	if got := v.Value("EFECTIVO", 2019); got != 25.0 {
		t.Errorf("EFECTIVO 2019 = %v, want 25.0", got)
	}
}

func TestVerticalBalanceNoTotalRow(t *testing.T) {
	l := buildLedger(t, map[string]map[int]float64{
		"EFECTIVO": {2019: 250},
	}, []string{"EFECTIVO"})
	if v := VerticalBalance(l); v != nil {
		t.Error("vertical balance must be empty when no grand-total row exists")
	}
}

func TestVerticalIncome(t *testing.T) {
	l := buildLedger(t, map[string]map[int]float64{
		"INGRESOS DE ACTIVIDADES ORDINARIAS": {2020: 800},
		"COSTO DE VENTAS":                    {2020: -200},
	}, []string{"INGRESOS DE ACTIVIDADES ORDINARIAS", "COSTO DE VENTAS"})

	v := VerticalIncome(l)
	if v == nil {
		t.Fatal("vertical income is nil with a revenue row present")
	}
	if got := v.Value("COSTO DE VENTAS", 2020); got != -25.0 {
		t.Errorf("COSTO DE VENTAS 2020 = %v, want -25.0", got)
	}
}

func TestHorizontal(t *testing.T) {
	l := buildLedger(t, map[string]map[int]float64{
		"X": {2019: 100, 2020: 150, 2021: 120},
		"Y": {2019: 0, 2020: 50, 2021: 60},
	}, []string{"X", "Y"})

	h := Horizontal(l)
	if got := h.Periods(); !reflect.DeepEqual(got, []string{"2019-2020", "2020-2021"}) {
		t.Fatalf("Periods = %v", got)
	}
	if got := h.Value("X", "2019-2020"); !got.Valid || got.Value != 50.0 {
		t.Errorf("X 2019-2020 = %v, want 50.0", got)
	}
	if got := h.Value("X", "2020-2021"); !got.Valid || got.Value != -20.0 {
		t.Errorf("X 2020-2021 = %v, want -20.0", got)
	}
	// Zero prior year: sentinel, never infinity.
	if got := h.Value("Y", "2019-2020"); got.Valid {
		t.Errorf("Y 2019-2020 = %v, want not computable", got)
	}
	if got := h.Value("Y", "2020-2021"); !got.Valid || got.Value != 20.0 {
		t.Errorf("Y 2020-2021 = %v, want 20.0", got)
	}
}

func testLedgers(t *testing.T) (*ledger.Ledger, *ledger.Ledger) {
	t.Helper()
	balance := buildLedger(t, map[string]map[int]float64{
		"TOTAL ACTIVOS CORRIENTES": {2019: 400, 2020: 500},
		"INVENTARIOS":              {2019: 50, 2020: 60},
		"TOTAL PASIVOS CORRIENTES": {2019: 200, 2020: 250},
		"TOTAL PASIVOS":            {2019: 300, 2020: 350},
		"TOTAL PATRIMONIO":         {2019: 700, 2020: 850},
		"TOTAL ACTIVOS":            {2019: 1000, 2020: 1200},
	}, []string{
		"TOTAL ACTIVOS CORRIENTES", "INVENTARIOS", "TOTAL PASIVOS CORRIENTES",
		"TOTAL PASIVOS", "TOTAL PATRIMONIO", "TOTAL ACTIVOS",
	})
	income := buildLedger(t, map[string]map[int]float64{
		"INGRESOS DE ACTIVIDADES ORDINARIAS":  {2019: 800, 2020: 900},
		"COSTO DE VENTAS":                     {2019: -500, 2020: -550},
		"GANANCIA PERDIDA NETA DEL EJERCICIO": {2019: 100, 2020: 120},
	}, []string{
		"INGRESOS DE ACTIVIDADES ORDINARIAS", "COSTO DE VENTAS",
		"GANANCIA PERDIDA NETA DEL EJERCICIO",
	})
	return balance, income
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeRatiosEndToEnd(t *testing.T) {
	balance, income := testLedgers(t)
	s := ComputeRatios(balance, income)

	if got := s.Years(); !reflect.DeepEqual(got, []int{2019, 2020}) {
		t.Fatalf("Years = %v, want [2019 2020]", got)
	}
	for _, year := range []int{2019, 2020} {
		if got := s.Value(RatioCurrentRatio, year); !got.Valid || got.Value != 2.0 {
			t.Errorf("Liquidez Corriente %d = %v, want 2.0", year, got)
		}
	}
	if got := s.Value(RatioNetMargin, 2019); !got.Valid || !almostEqual(got.Value, 0.125) {
		t.Errorf("Margen Neto 2019 = %v, want 0.125", got)
	}
	if got := s.Value(RatioNetMargin, 2020); !got.Valid || !almostEqual(got.Value, 0.1333) {
		t.Errorf("Margen Neto 2020 = %v, want 0.1333", got)
	}
	// Quick ratio: (400-50)/200 and (500-60)/250.
	if got := s.Value(RatioQuickRatio, 2019); !got.Valid || !almostEqual(got.Value, 1.75) {
		t.Errorf("Prueba Ácida 2019 = %v, want 1.75", got)
	}
	if got := s.Value(RatioQuickRatio, 2020); !got.Valid || !almostEqual(got.Value, 1.76) {
		t.Errorf("Prueba Ácida 2020 = %v, want 1.76", got)
	}
	// First common year uses the current balance alone; afterwards the
	// adjacent-year average: |-550| / ((50+60)/2) = 10.
	if got := s.Value(RatioInventoryTurn, 2019); !got.Valid || !almostEqual(got.Value, 10.0) {
		t.Errorf("Rotación Inventarios 2019 = %v, want 10.0", got)
	}
	if got := s.Value(RatioInventoryTurn, 2020); !got.Valid || !almostEqual(got.Value, 10.0) {
		t.Errorf("Rotación Inventarios 2020 = %v, want 10.0", got)
	}
	// ROA 2020: 120 / ((1000+1200)/2) = 0.1091 after rounding.
	if got := s.Value(RatioROA, 2020); !got.Valid || !almostEqual(got.Value, 0.1091) {
		t.Errorf("ROA 2020 = %v, want 0.1091", got)
	}
	// Debt ratio 2019: 300/1000.
	if got := s.Value(RatioDebtRatio, 2019); !got.Valid || !almostEqual(got.Value, 0.3) {
		t.Errorf("Razón Deuda Total 2019 = %v, want 0.3", got)
	}
}

func TestRatiosZeroCurrentLiabilities(t *testing.T) {
	balance := buildLedger(t, map[string]map[int]float64{
		"TOTAL ACTIVOS CORRIENTES": {2020: 500},
		"TOTAL PASIVOS CORRIENTES": {2020: 0},
		"TOTAL PASIVOS":            {2020: 350},
		"TOTAL PATRIMONIO":         {2020: 850},
		"TOTAL ACTIVOS":            {2020: 1200},
	}, []string{
		"TOTAL ACTIVOS CORRIENTES", "TOTAL PASIVOS CORRIENTES",
		"TOTAL PASIVOS", "TOTAL PATRIMONIO", "TOTAL ACTIVOS",
	})
	income := buildLedger(t, map[string]map[int]float64{
		"INGRESOS DE ACTIVIDADES ORDINARIAS":  {2020: 900},
		"GANANCIA PERDIDA NETA DEL EJERCICIO": {2020: 120},
	}, []string{"INGRESOS DE ACTIVIDADES ORDINARIAS", "GANANCIA PERDIDA NETA DEL EJERCICIO"})

	s := ComputeRatios(balance, income)
	if got := s.Value(RatioCurrentRatio, 2020); got.Valid {
		t.Errorf("Liquidez Corriente = %v, want not computable", got)
	}
	if got := s.Value(RatioQuickRatio, 2020); got.Valid {
		t.Errorf("Prueba Ácida = %v, want not computable", got)
	}
	// Other ratios with live denominators still compute.
	if got := s.Value(RatioNetMargin, 2020); !got.Valid || !almostEqual(got.Value, 0.1333) {
		t.Errorf("Margen Neto = %v, want 0.1333", got)
	}
	if got := s.Value(RatioDebtRatio, 2020); !got.Valid || !almostEqual(got.Value, 0.2917) {
		t.Errorf("Razón Deuda Total = %v, want 0.2917", got)
	}
}

func TestRatiosEquityDerivedFromAssets(t *testing.T) {
	// No equity row at all: equity = assets - liabilities.
	balance := buildLedger(t, map[string]map[int]float64{
		"TOTAL PASIVOS DEL PERIODO": {2020: 400},
		"TOTAL ACTIVOS":             {2020: 1000},
	}, []string{"TOTAL PASIVOS DEL PERIODO", "TOTAL ACTIVOS"})
	income := buildLedger(t, map[string]map[int]float64{
		"INGRESOS DE ACTIVIDADES ORDINARIAS":  {2020: 900},
		"GANANCIA PERDIDA NETA DEL EJERCICIO": {2020: 120},
	}, []string{"INGRESOS DE ACTIVIDADES ORDINARIAS", "GANANCIA PERDIDA NETA DEL EJERCICIO"})

	s := ComputeRatios(balance, income)
	// Debt-to-equity: 400 / (1000-400).
	if got := s.Value(RatioDebtToEquity, 2020); !got.Valid || !almostEqual(got.Value, 0.6667) {
		t.Errorf("Razón Deuda/Patrimonio = %v, want 0.6667", got)
	}
	// ROE: 120 / 600.
	if got := s.Value(RatioROE, 2020); !got.Valid || !almostEqual(got.Value, 0.2) {
		t.Errorf("ROE = %v, want 0.2", got)
	}
}

func TestRatiosUnresolvedDividendIsZeroNotError(t *testing.T) {
	// No net income row: dividend reads 0.0, ratios stay computable.
	balance := buildLedger(t, map[string]map[int]float64{
		"TOTAL PASIVOS":    {2020: 400},
		"TOTAL PATRIMONIO": {2020: 600},
		"TOTAL ACTIVOS":    {2020: 1000},
	}, []string{"TOTAL PASIVOS", "TOTAL PATRIMONIO", "TOTAL ACTIVOS"})
	income := buildLedger(t, map[string]map[int]float64{
		"INGRESOS DE ACTIVIDADES ORDINARIAS": {2020: 900},
	}, []string{"INGRESOS DE ACTIVIDADES ORDINARIAS"})

	s := ComputeRatios(balance, income)
	if got := s.Value(RatioNetMargin, 2020); !got.Valid || got.Value != 0.0 {
		t.Errorf("Margen Neto = %v, want a genuine 0.0 (dividend missing, divisor live)", got)
	}
	if got := s.Value(RatioROE, 2020); !got.Valid || got.Value != 0.0 {
		t.Errorf("ROE = %v, want 0.0", got)
	}
}

func TestCommonYears(t *testing.T) {
	balance := buildLedger(t, map[string]map[int]float64{
		"TOTAL ACTIVOS": {2018: 1, 2019: 1, 2020: 1},
	}, []string{"TOTAL ACTIVOS"})
	income := buildLedger(t, map[string]map[int]float64{
		"VENTAS NETAS": {2019: 1, 2020: 1, 2021: 1},
	}, []string{"VENTAS NETAS"})

	if got := CommonYears(balance, income); !reflect.DeepEqual(got, []int{2019, 2020}) {
		t.Errorf("CommonYears = %v, want [2019 2020]", got)
	}
	empty := ledger.NewStatementData().Build()
	if got := CommonYears(balance, empty); got != nil {
		t.Errorf("CommonYears with empty income = %v, want nil", got)
	}
}
