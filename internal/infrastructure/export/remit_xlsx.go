// Package export renders reports as spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/codops/backend/internal/application/finance"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// XLSXContentType is the MIME type of the workbooks written here
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	remitSheet = "Remittance"
)

var remitHeaders = []string{
	"Start", "End", "Country", "SKU", "Orders", "Pieces",
	"Revenue USD", "Ad USD", "Unit cost USD", "Profit USD", "Profit/piece USD",
}

// RemitXLSXWriter writes the remittance report as a single-sheet workbook
type RemitXLSXWriter struct{}

// NewRemitXLSXWriter creates a RemitXLSXWriter
func NewRemitXLSXWriter() *RemitXLSXWriter {
	return &RemitXLSXWriter{}
}

var _ finance.RemitReportWriter = (*RemitXLSXWriter)(nil)

// WriteRemitReport writes a header row, one row per remit and a totals row
func (RemitXLSXWriter) WriteRemitReport(w io.Writer, report *finance.RemitReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", remitSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return err
	}

	headers := make([]any, len(remitHeaders))
	for i, h := range remitHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(remitSheet, "A1", &headers); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(remitHeaders))
	if err := f.SetCellStyle(remitSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, r := range report.Rows {
		values := []any{
			r.StartDate, r.EndDate, r.CountryCode, r.SKU, r.Orders, r.Pieces,
			money(r.Revenue), money(r.AdSpend), money(r.UnitCost), money(r.ProfitTotal), money(r.ProfitPerPiece),
		}
		if err := f.SetSheetRow(remitSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(remitSheet, "G2", fmt.Sprintf("%s%d", lastCol, row-1), moneyStyle); err != nil {
			return err
		}
	}

	t := report.Totals
	totals := []any{"Total", "", "", "", t.Orders, t.Pieces, money(t.Revenue), money(t.AdSpend), "", money(t.ProfitTotal)}
	if err := f.SetSheetRow(remitSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(remitSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), totalStyle); err != nil {
		return err
	}

	for i := range remitHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 12.0
		if i == 3 {
			width = 18
		}
		if err := f.SetColWidth(remitSheet, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetPanes(remitSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

// Values are written as numbers rounded to cents so sheet formulas work on them
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
