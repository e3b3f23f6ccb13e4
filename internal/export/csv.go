// Package export serializes ledger snapshots into the supported artifact
// formats. Every writer is a pure function of the record slice; no business
// logic lives here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fireplan/internal/core"
)

var csvHeader = []string{"category", "product", "cost"}

// WriteCSV writes the snapshot as UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, records []core.ExpenseRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Category, r.Product, strconv.FormatInt(r.Cost, 10)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
