// Package export renders a consolidation run as a formatted spreadsheet:
// one sheet per statement, stacked vertical/horizontal analysis sheets, the
// ratio table, and a charts sheet with one line chart per ratio. The
// numeric content matches the pipeline tables exactly; the styling is
// presentation only.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"smv_analyzer/pkg/core/analysis"
	"smv_analyzer/pkg/core/ledger"
	"smv_analyzer/pkg/core/pipeline"
)

const (
	sheetBalance       = "Balance"
	sheetIncome        = "Estado Resultados"
	sheetCashFlow      = "Flujo Efectivo"
	sheetBalanceVsH    = "Analisis Balance"
	sheetIncomeVsH     = "Analisis Resultados"
	sheetRatios        = "Ratios"
	sheetCharts        = "Ratios y Graficas"
	horizontalSubtitle = "ANÁLISIS HORIZONTAL (Variación %)"
	notComputableLabel = "N/A"
	numFmtThousands    = "#,##0"
	numFmtPercentPoint = `0.0"%"`
	numFmtRatio        = "0.0000"
	colorHeader        = "366092"
	colorSubtitle      = "8EA9DB"
	colorTotalFill     = "D9E1F2"
)

// styleSet caches the style ids used across sheets.
type styleSet struct {
	header    int
	subtitle  int
	total     int
	thousands int
	percent   int
	ratio     int
	plain     int
}

// Renderer assembles the report workbook.
type Renderer struct {
	f      *excelize.File
	styles styleSet
	sheets int
}

// Render builds the full report for a pipeline result.
func Render(res *pipeline.Result) (*excelize.File, error) {
	r := &Renderer{f: excelize.NewFile()}
	if err := r.buildStyles(); err != nil {
		return nil, err
	}

	if err := r.writeLedgerSheet(sheetBalance, res.Balance, r.styles.thousands); err != nil {
		return nil, err
	}
	if err := r.writeLedgerSheet(sheetIncome, res.Income, r.styles.thousands); err != nil {
		return nil, err
	}
	if err := r.writeLedgerSheet(sheetCashFlow, res.CashFlow, r.styles.thousands); err != nil {
		return nil, err
	}
	if err := r.writeAnalysisSheet(sheetBalanceVsH, res.VerticalBalance, res.HorizontalBalance); err != nil {
		return nil, err
	}
	if err := r.writeAnalysisSheet(sheetIncomeVsH, res.VerticalIncome, res.HorizontalIncome); err != nil {
		return nil, err
	}
	if err := r.writeRatioSheet(res.Ratios); err != nil {
		return nil, err
	}
	if err := r.writeChartSheet(res); err != nil {
		return nil, err
	}

	if r.sheets > 0 {
		if err := r.f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}
	if err := r.f.SetDocProps(&excelize.DocProperties{
		Title:       res.Company,
		Description: fmt.Sprintf("Consolidación %s", res.RunID),
	}); err != nil {
		return nil, err
	}
	return r.f, nil
}

func (r *Renderer) buildStyles() error {
	var err error
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	r.styles.header, err = r.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Calibri", Size: 11, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return err
	}
	r.styles.subtitle, err = r.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Calibri", Size: 11, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorSubtitle}, Pattern: 1},
		Alignment: center,
	})
	if err != nil {
		return err
	}
	r.styles.total, err = r.f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Calibri", Size: 10, Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{colorTotalFill}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return err
	}
	r.styles.plain, err = r.f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Calibri", Size: 10},
		Border: border,
	})
	if err != nil {
		return err
	}
	numStyle := func(numFmt string) (int, error) {
		return r.f.NewStyle(&excelize.Style{
			Font:         &excelize.Font{Family: "Calibri", Size: 10},
			Border:       border,
			CustomNumFmt: &numFmt,
		})
	}
	if r.styles.thousands, err = numStyle(numFmtThousands); err != nil {
		return err
	}
	if r.styles.percent, err = numStyle(numFmtPercentPoint); err != nil {
		return err
	}
	r.styles.ratio, err = numStyle(numFmtRatio)
	return err
}

func (r *Renderer) newSheet(name string) error {
	if _, err := r.f.NewSheet(name); err != nil {
		return err
	}
	r.sheets++
	return r.f.SetColWidth(name, "A", "A", 48)
}

// writeLedgerSheet writes one account-by-year table starting at A1.
func (r *Renderer) writeLedgerSheet(name string, l *ledger.Ledger, valueStyle int) error {
	if l.Empty() {
		return nil
	}
	if err := r.newSheet(name); err != nil {
		return err
	}
	return r.writeLedgerBlock(name, l, 1, valueStyle)
}

// writeLedgerBlock writes header plus rows at startRow and returns no
// geometry; callers that stack blocks compute their own offsets.
func (r *Renderer) writeLedgerBlock(name string, l *ledger.Ledger, startRow int, valueStyle int) error {
	years := l.Years()
	if err := r.setCell(name, 1, startRow, "Cuenta"); err != nil {
		return err
	}
	for i, y := range years {
		if err := r.setCell(name, i+2, startRow, y); err != nil {
			return err
		}
	}
	if err := r.styleRow(name, startRow, len(years)+1, r.styles.header); err != nil {
		return err
	}
	for i, account := range l.Accounts() {
		row := startRow + 1 + i
		if err := r.setCell(name, 1, row, account); err != nil {
			return err
		}
		for j, y := range years {
			if err := r.setCell(name, j+2, row, l.Value(account, y)); err != nil {
				return err
			}
		}
		if err := r.styleDataRow(name, account, row, len(years)+1, valueStyle); err != nil {
			return err
		}
	}
	return nil
}

// writeHorizontalBlock writes a horizontal table at startRow.
func (r *Renderer) writeHorizontalBlock(name string, t *analysis.HorizontalTable, startRow int) error {
	periods := t.Periods()
	if err := r.setCell(name, 1, startRow, "Cuenta"); err != nil {
		return err
	}
	for i, p := range periods {
		if err := r.setCell(name, i+2, startRow, p); err != nil {
			return err
		}
	}
	if err := r.styleRow(name, startRow, len(periods)+1, r.styles.header); err != nil {
		return err
	}
	for i, account := range t.Accounts() {
		row := startRow + 1 + i
		if err := r.setCell(name, 1, row, account); err != nil {
			return err
		}
		for j, p := range periods {
			v := t.Value(account, p)
			var err error
			if v.Valid {
				err = r.setCell(name, j+2, row, v.Value)
			} else {
				err = r.setCell(name, j+2, row, notComputableLabel)
			}
			if err != nil {
				return err
			}
		}
		if err := r.styleDataRow(name, account, row, len(periods)+1, r.styles.percent); err != nil {
			return err
		}
	}
	return nil
}

// writeAnalysisSheet stacks the vertical block and, three rows below it,
// the horizontal block under its subtitle band. Either block may be
// missing.
func (r *Renderer) writeAnalysisSheet(name string, vertical *ledger.Ledger, horizontal *analysis.HorizontalTable) error {
	hasVertical := !vertical.Empty()
	hasHorizontal := !horizontal.Empty()
	if !hasVertical && !hasHorizontal {
		return nil
	}
	if err := r.newSheet(name); err != nil {
		return err
	}
	row := 1
	if hasVertical {
		if err := r.writeLedgerBlock(name, vertical, row, r.styles.percent); err != nil {
			return err
		}
		if err := r.colorScale(name, 2, row+1, len(vertical.Years())+1, row+len(vertical.Accounts())); err != nil {
			return err
		}
		row += len(vertical.Accounts()) + 3
	}
	if hasHorizontal {
		width := len(horizontal.Periods()) + 1
		if hasVertical {
			if err := r.setCell(name, 1, row, horizontalSubtitle); err != nil {
				return err
			}
			if err := r.styleRow(name, row, width, r.styles.subtitle); err != nil {
				return err
			}
			row++
		}
		if err := r.writeHorizontalBlock(name, horizontal, row); err != nil {
			return err
		}
		if err := r.colorScale(name, 2, row+1, width, row+len(horizontal.Accounts())); err != nil {
			return err
		}
	}
	return nil
}

// writeRatioSheet writes the plain ratio table, ratios as rows.
func (r *Renderer) writeRatioSheet(s *analysis.RatioSeries) error {
	if s.Empty() {
		return nil
	}
	if err := r.newSheet(sheetRatios); err != nil {
		return err
	}
	years := s.Years()
	if err := r.setCell(sheetRatios, 1, 1, "Ratio"); err != nil {
		return err
	}
	for i, y := range years {
		if err := r.setCell(sheetRatios, i+2, 1, y); err != nil {
			return err
		}
	}
	if err := r.styleRow(sheetRatios, 1, len(years)+1, r.styles.header); err != nil {
		return err
	}
	for i, ratio := range s.RatioNames() {
		row := i + 2
		if err := r.setCell(sheetRatios, 1, row, ratio); err != nil {
			return err
		}
		for j, y := range years {
			v := s.Value(ratio, y)
			var err error
			if v.Valid {
				err = r.setCell(sheetRatios, j+2, row, v.Value)
			} else {
				err = r.setCell(sheetRatios, j+2, row, notComputableLabel)
			}
			if err != nil {
				return err
			}
		}
		if err := r.styleDataRow(sheetRatios, ratio, row, len(years)+1, r.styles.ratio); err != nil {
			return err
		}
	}
	return nil
}

// writeChartSheet repeats the ratio table and adds one line chart per
// ratio, replacing the source system's rendered chart images with native
// spreadsheet charts.
func (r *Renderer) writeChartSheet(res *pipeline.Result) error {
	s := res.Ratios
	if s.Empty() {
		return nil
	}
	if err := r.newSheet(sheetCharts); err != nil {
		return err
	}
	years := s.Years()
	names := s.RatioNames()

	if err := r.setCell(sheetCharts, 1, 1, fmt.Sprintf("RATIOS FINANCIEROS - %s", res.Company)); err != nil {
		return err
	}
	endHeader, err := excelize.CoordinatesToCellName(len(years)+1, 1)
	if err != nil {
		return err
	}
	if err := r.f.MergeCell(sheetCharts, "A1", endHeader); err != nil {
		return err
	}

	const headerRow = 3
	if err := r.setCell(sheetCharts, 1, headerRow, "Ratio / Año"); err != nil {
		return err
	}
	for i, y := range years {
		if err := r.setCell(sheetCharts, i+2, headerRow, y); err != nil {
			return err
		}
	}
	if err := r.styleRow(sheetCharts, headerRow, len(years)+1, r.styles.header); err != nil {
		return err
	}
	for i, ratio := range names {
		row := headerRow + 1 + i
		if err := r.setCell(sheetCharts, 1, row, ratio); err != nil {
			return err
		}
		for j, y := range years {
			if v := s.Value(ratio, y); v.Valid {
				if err := r.setCell(sheetCharts, j+2, row, v.Value); err != nil {
					return err
				}
			}
		}
		if err := r.styleDataRow(sheetCharts, ratio, row, len(years)+1, r.styles.ratio); err != nil {
			return err
		}
	}

	catStart, err := excelize.CoordinatesToCellName(2, headerRow, true)
	if err != nil {
		return err
	}
	catEnd, err := excelize.CoordinatesToCellName(len(years)+1, headerRow, true)
	if err != nil {
		return err
	}
	categories := fmt.Sprintf("'%s'!%s:%s", sheetCharts, catStart, catEnd)

	chartRow := headerRow + len(names) + 3
	const chartsPerRow = 2
	const chartHeightRows = 14
	const chartWidthCols = 8
	placed := 0
	for i, ratio := range names {
		if !hasNumeric(s, ratio) {
			continue
		}
		row := headerRow + 1 + i
		valStart, err := excelize.CoordinatesToCellName(2, row, true)
		if err != nil {
			return err
		}
		valEnd, err := excelize.CoordinatesToCellName(len(years)+1, row, true)
		if err != nil {
			return err
		}
		anchorCol := 1 + (placed%chartsPerRow)*chartWidthCols
		anchorRow := chartRow + (placed/chartsPerRow)*chartHeightRows
		anchor, err := excelize.CoordinatesToCellName(anchorCol, anchorRow)
		if err != nil {
			return err
		}
		chart := &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$A$%d", sheetCharts, row),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!%s:%s", sheetCharts, valStart, valEnd),
			}},
			Title:     []excelize.RichTextRun{{Text: ratio}},
			Legend:    excelize.ChartLegend{Position: "none"},
			Dimension: excelize.ChartDimension{Width: 420, Height: 260},
		}
		if err := r.f.AddChart(sheetCharts, anchor, chart); err != nil {
			return err
		}
		placed++
	}
	return nil
}

// colorScale applies the red/yellow/green scale over a cell range.
func (r *Renderer) colorScale(name string, colStart, rowStart, colEnd, rowEnd int) error {
	if colEnd < colStart || rowEnd < rowStart {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(colStart, rowStart)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(colEnd, rowEnd)
	if err != nil {
		return err
	}
	return r.f.SetConditionalFormat(name, fmt.Sprintf("%s:%s", start, end), []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MinColor: "#F8696B",
		MidType:  "percentile",
		MidValue: "50",
		MidColor: "#FFEB84",
		MaxType:  "max",
		MaxColor: "#63BE7B",
	}})
}

func (r *Renderer) setCell(sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return r.f.SetCellValue(sheet, cell, v)
}

func (r *Renderer) styleRow(sheet string, row, width, styleID int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(sheet, start, end, styleID)
}

// styleDataRow styles a data row: label cell plain (or total), value cells
// with the numeric style. TOTAL rows get the emphasis fill across the row.
func (r *Renderer) styleDataRow(sheet, label string, row, width, valueStyle int) error {
	if isTotalRow(label) {
		return r.styleRow(sheet, row, width, r.styles.total)
	}
	if err := r.styleRow(sheet, row, 1, r.styles.plain); err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(2, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(sheet, start, end, valueStyle)
}

func isTotalRow(label string) bool {
	return strings.Contains(strings.ToUpper(label), "TOTAL")
}

func hasNumeric(s *analysis.RatioSeries, ratio string) bool {
	for _, y := range s.Years() {
		if s.Value(ratio, y).Valid {
			return true
		}
	}
	return false
}
