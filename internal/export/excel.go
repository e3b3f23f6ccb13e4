package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fireplan/internal/core"
)

// SheetName is the single worksheet holding the snapshot.
const SheetName = "Expenses"

// WriteExcel writes the snapshot as an xlsx workbook with one sheet.
func WriteExcel(w io.Writer, records []core.ExpenseRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"category", "product", "cost"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header cell %s: %w", cell, err)
		}
	}

	for idx, r := range records {
		row := idx + 2
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), r.Category); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), r.Product); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), r.Cost); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 18)
	_ = f.SetColWidth(SheetName, "C", "C", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
