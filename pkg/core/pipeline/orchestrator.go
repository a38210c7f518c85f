// Package pipeline wires the full consolidation run: decode and extract
// each document in order, fold the extractions into the three ledgers, and
// derive the analysis tables. The fold order is the caller's document
// order; the first-non-zero-wins merge makes that order part of the
// contract, so a run over the same ordered documents is reproducible
// bit for bit.
package pipeline

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"smv_analyzer/pkg/core/analysis"
	"smv_analyzer/pkg/core/extract"
	"smv_analyzer/pkg/core/ledger"
	"smv_analyzer/pkg/core/taxonomy"
)

// Result is the complete output of one consolidation run, handed to the
// report renderer. Everything in it is immutable.
type Result struct {
	RunID   string
	Company string

	Balance  *ledger.Ledger
	Income   *ledger.Ledger
	CashFlow *ledger.Ledger

	VerticalBalance   *ledger.Ledger
	VerticalIncome    *ledger.Ledger
	HorizontalBalance *analysis.HorizontalTable
	HorizontalIncome  *analysis.HorizontalTable

	Ratios      *analysis.RatioSeries
	CommonYears []int

	// Warnings carries per-document failures (decode errors); the batch
	// itself never aborts on them.
	Warnings []string
}

// Orchestrator runs consolidation over in-memory documents.
type Orchestrator struct {
	extractor *extract.Extractor
}

// NewOrchestrator builds an Orchestrator. A nil cfg selects the embedded
// taxonomy; zero-valued ids select the portal's default table-id scheme.
func NewOrchestrator(cfg *taxonomy.Config, ids extract.TableIDs) *Orchestrator {
	return &Orchestrator{
		extractor: extract.NewExtractor(taxonomy.NewMapper(cfg), ids),
	}
}

// Run consolidates docs in the given order and computes every derived
// table. A document that cannot be decoded is skipped with a warning; all
// other error conditions degrade to partial results inside the components.
func (o *Orchestrator) Run(docs []extract.Document, company string) *Result {
	res := &Result{RunID: uuid.NewString(), Company: company}

	cons := ledger.NewConsolidator()
	for _, doc := range docs {
		docRes, err := o.extractor.ExtractDocument(doc)
		if err != nil {
			log.Printf("[Pipeline] skipping document %q: %v", doc.Name, err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", doc.Name, err))
			continue
		}
		cons.Add(docRes.Balance, docRes.Income, docRes.CashFlow)
	}
	res.Balance, res.Income, res.CashFlow = cons.Build()

	if !res.Balance.Empty() {
		res.VerticalBalance = analysis.VerticalBalance(res.Balance)
		res.HorizontalBalance = analysis.Horizontal(res.Balance)
	}
	if !res.Income.Empty() {
		res.VerticalIncome = analysis.VerticalIncome(res.Income)
		res.HorizontalIncome = analysis.Horizontal(res.Income)
	}
	res.CommonYears = analysis.CommonYears(res.Balance, res.Income)
	res.Ratios = analysis.ComputeRatios(res.Balance, res.Income)

	log.Printf("[Pipeline] run %s: %d documents, %d balance accounts, %d income accounts, %d common years",
		res.RunID, len(docs), len(res.Balance.Accounts()), len(res.Income.Accounts()), len(res.CommonYears))
	return res
}
