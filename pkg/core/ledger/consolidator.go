package ledger

// Consolidator merges per-document extraction results into the three
// canonical statements. It is an explicit fold over an ordered document
// list: Add must be called in document order, because the
// first-non-zero-wins policy makes the merge order-sensitive for zero
// placeholders. The Consolidator owns its accumulators until Build hands
// off immutable Ledgers.
type Consolidator struct {
	balance  *StatementData
	income   *StatementData
	cashFlow *StatementData
}

// NewConsolidator returns an empty consolidation run.
func NewConsolidator() *Consolidator {
	return &Consolidator{
		balance:  NewStatementData(),
		income:   NewStatementData(),
		cashFlow: NewStatementData(),
	}
}

// Add merges one document's extractions. A nil argument means the document
// lacked that statement's table and contributes nothing for it.
func (c *Consolidator) Add(balance, income, cashFlow *StatementData) {
	c.balance.Merge(balance)
	c.income.Merge(income)
	c.cashFlow.Merge(cashFlow)
}

// Build materializes the three ledgers. Each holds the union of accounts
// and years seen in any document for that statement type.
func (c *Consolidator) Build() (balance, income, cashFlow *Ledger) {
	return c.balance.Build(), c.income.Build(), c.cashFlow.Build()
}
