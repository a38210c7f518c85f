package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smv_analyzer/pkg/core/ledger"
	"smv_analyzer/pkg/core/normalize"
	"smv_analyzer/pkg/core/taxonomy"
)

// StatementType identifies which of the three statements a table carries.
type StatementType int

const (
	StatementBalance StatementType = iota
	StatementIncome
	StatementCashFlow
)

func (s StatementType) String() string {
	switch s {
	case StatementBalance:
		return "balance"
	case StatementIncome:
		return "income"
	case StatementCashFlow:
		return "cashflow"
	}
	return "unknown"
}

// DocumentResult carries one document's contribution per statement type.
// A nil field means the document had no table for that statement.
type DocumentResult struct {
	Balance  *ledger.StatementData
	Income   *ledger.StatementData
	CashFlow *ledger.StatementData
}

var yearRegex = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Extractor parses documents against a taxonomy mapper and a table-id scheme.
type Extractor struct {
	mapper *taxonomy.Mapper
	ids    TableIDs
}

// NewExtractor builds an Extractor. A nil mapper selects the default
// taxonomy; empty ids select the portal's default scheme.
func NewExtractor(mapper *taxonomy.Mapper, ids TableIDs) *Extractor {
	if mapper == nil {
		mapper = taxonomy.NewMapper(nil)
	}
	if len(ids.Balance) == 0 && len(ids.Income) == 0 && len(ids.CashFlow) == 0 {
		ids = DefaultTableIDs()
	}
	return &Extractor{mapper: mapper, ids: ids}
}

// ExtractDocument decodes one document and extracts whichever of the three
// statement tables it carries. The only error is a decode failure; a
// missing table is simply a nil contribution.
func (e *Extractor) ExtractDocument(doc Document) (*DocumentResult, error) {
	html, err := decode(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("extract: document %q: %w", doc.Name, err)
	}
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extract: document %q: parse html: %w", doc.Name, err)
	}
	return &DocumentResult{
		Balance:  e.extractTable(gq, e.ids.Balance, StatementBalance),
		Income:   e.extractTable(gq, e.ids.Income, StatementIncome),
		CashFlow: e.extractTable(gq, e.ids.CashFlow, StatementCashFlow),
	}, nil
}

// extractTable locates the statement's table by id and parses its grid.
func (e *Extractor) extractTable(gq *goquery.Document, ids []string, st StatementType) *ledger.StatementData {
	for _, id := range ids {
		sel := gq.Find("table#" + id)
		if sel.Length() > 0 {
			return e.ExtractGrid(tableGrid(sel.First()), st)
		}
	}
	return nil
}

// tableGrid flattens a table selection into trimmed cell text, one slice
// per non-empty row.
func tableGrid(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}

// ExtractGrid parses one statement's row/column grid. Row 0 is the header;
// its cells from column 2 onward may embed a 4-digit year, and columns
// without one are skipped entirely. Data rows are (label, note, values...)
// tuples. Section-header rows and, outside the income statement, all-zero
// separator rows are dropped. Values land in the accumulator under the
// first-non-zero-wins policy.
func (e *Extractor) ExtractGrid(rows [][]string, st StatementType) *ledger.StatementData {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	if len(header) < 3 {
		return nil
	}
	years := make([]int, len(header)-2)
	for i, cell := range header[2:] {
		if m := yearRegex.FindString(cell); m != "" {
			years[i], _ = strconv.Atoi(m)
		}
	}

	data := ledger.NewStatementData()
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		if e.mapper.IsSectionHeader(normalize.CanonicalizeName(label)) {
			continue
		}
		// All-zero rows are presentation-only separators, except on the
		// income statement where a genuinely zero line is meaningful.
		if st != StatementIncome && allZero(row[2:]) {
			continue
		}
		for i, cell := range row[2:] {
			if i >= len(years) || years[i] == 0 {
				continue
			}
			year := years[i]
			account := e.mapper.Map(label, year)
			data.Set(year, account, normalize.ParseAmount(cell))
		}
	}
	if data.Empty() {
		return nil
	}
	return data
}

func allZero(cells []string) bool {
	for _, cell := range cells {
		if normalize.ParseAmount(cell) != 0.0 {
			return false
		}
	}
	return true
}
