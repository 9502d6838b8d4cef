package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Balances"

// XLSXWriter implements SheetWriter by saving an Excel workbook to path.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer that saves workbooks to path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

func (w *XLSXWriter) Write(_ context.Context, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := headerCells()
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := row.cells()
		if err := f.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := w.format(f, len(report.Rows)); err != nil {
		return err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Balances of " + report.AccountID,
		Created: report.At.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving %s: %w", w.path, err)
	}
	return nil
}

func (w *XLSXWriter) format(f *excelize.File, rows int) error {
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9EAD3"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	if rows > 0 {
		amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
		if err != nil {
			return fmt.Errorf("creating amount style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(4, rows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(xlsxSheet, "D2", last, amount); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "C", "E", 18); err != nil {
		return err
	}

	return f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
