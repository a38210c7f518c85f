package resolve

// Resolution recipes for every line the analysis engine needs. Attempt
// order matters: it encodes which label variants are preferred when a
// filing carries several plausible rows.
var (
	// Balance sheet lines.
	CurrentAssets = MetricSpec{
		Name: "activo_corriente",
		Groups: []Group{
			{AllOf: []string{"TOTAL", "ACTIVO", "CORRIENTE"}},
			{AllOf: []string{"TOTAL", "ACTIVOS", "CORRIENTES"}},
		},
	}
	Inventories = MetricSpec{
		Name: "inventarios",
		Groups: []Group{
			{AllOf: []string{"INVENTARIOS"}},
			{AllOf: []string{"EXISTENCIAS"}},
		},
		Partials: [][]string{{"INVENTARIO", "EXISTENCIA"}},
	}
	CurrentLiabilities = MetricSpec{
		Name: "pasivo_corriente",
		Groups: []Group{
			{AllOf: []string{"TOTAL", "PASIVO", "CORRIENTE"}},
			{AllOf: []string{"TOTAL", "PASIVOS", "CORRIENTES"}},
		},
	}
	TradeReceivables = MetricSpec{
		Name: "cxc_comerciales",
		Groups: []Group{
			{AllOf: []string{"CUENTAS", "COBRAR", "COMERCIALES"}},
		},
		Partials: [][]string{{"CUENTAS", "COBRAR", "COMERCIAL"}},
	}
	RelatedReceivables = MetricSpec{
		Name: "cxc_vinculadas",
		Groups: []Group{
			{AllOf: []string{"CUENTAS", "COBRAR", "ENTIDADES", "RELACIONADAS"}},
			{AllOf: []string{"CUENTAS", "COBRAR", "VINCULADAS"}},
		},
		Partials: [][]string{{"CUENTAS", "COBRAR", "VINCULADA"}},
	}
	OtherReceivables = MetricSpec{
		Name: "otras_cxc",
		Groups: []Group{
			{AllOf: []string{"OTRAS", "CUENTAS", "COBRAR"}},
		},
	}
	// Statements list the current/non-current subtotals before the grand
	// totals, and those subtotal labels contain the total's keywords. The
	// exclusion groups keep the scan from stopping on a subtotal; the
	// plain groups remain as a fallback for filings with no subtotals.
	TotalAssets = MetricSpec{
		Name: "activos_totales",
		Groups: []Group{
			{AllOf: []string{"TOTAL", "ACTIVO"}, NoneOf: []string{"CORRIENTE"}},
			{AllOf: []string{"TOTAL", "ACTIVO"}},
			{AllOf: []string{"TOTAL", "ACTIVOS"}},
		},
	}
	TotalLiabilities = MetricSpec{
		Name: "pasivo_total",
		Groups: []Group{
			{AllOf: []string{"TOTAL", "PASIVO"}, NoneOf: []string{"CORRIENTE", "PATRIMONIO"}},
			{AllOf: []string{"TOTAL", "PASIVO"}},
			{AllOf: []string{"TOTAL", "PASIVOS"}},
		},
	}
	Equity = MetricSpec{
		Name: "patrimonio",
		Groups: []Group{
			{AllOf: []string{"TOTAL", "PATRIMONIO"}},
			{AllOf: []string{"PATRIMONIO", "NETO"}},
			{AllOf: []string{"TOTAL", "PATRIMONIO", "NETO"}},
		},
		Partials: [][]string{{"PATRIMONIO"}},
	}

	// The balance sheet's grand total row: TOTAL + ACTIVO but not the
	// current / non-current subtotals. "NO CORRIENTE" contains
	// "CORRIENTE", so one exclusion covers both.
	BalanceGrandTotal = MetricSpec{
		Name: "total_activos_base",
		Groups: []Group{
			{AllOf: []string{"TOTAL", "ACTIVO"}, NoneOf: []string{"CORRIENTE"}},
		},
	}

	// Income statement lines.
	Revenue = MetricSpec{
		Name: "ventas",
		Groups: []Group{
			{AllOf: []string{"INGRESOS", "ACTIVIDADES", "ORDINARIAS"}},
		},
		Partials: [][]string{
			{"INGRESOS", "ACTIVIDADES"},
			{"VENTAS", "NETAS"},
			{"INGRESOS", "OPERACIONALES"},
		},
	}
	// Revenue row used as the vertical-analysis base; accepts the legacy
	// "VENTAS NETAS" label as an exact group rather than a partial.
	RevenueVerticalBase = MetricSpec{
		Name: "ventas_base",
		Groups: []Group{
			{AllOf: []string{"INGRESOS", "ACTIVIDADES", "ORDINARIAS"}},
			{AllOf: []string{"VENTAS", "NETAS"}},
		},
	}
	CostOfSales = MetricSpec{
		Name: "costo_ventas",
		Groups: []Group{
			{AllOf: []string{"COSTO", "VENTAS"}},
		},
		Partials: [][]string{{"COSTO", "VENTA"}},
	}
	NetIncome = MetricSpec{
		Name: "utilidad_neta",
		Groups: []Group{
			{AllOf: []string{"GANANCIA", "PERDIDA", "NETA", "EJERCICIO"}},
		},
		Partials: [][]string{
			{"GANANCIA", "NETA", "EJERCICIO"},
			{"UTILIDAD", "NETA", "EJERCICIO"},
		},
	}
)
