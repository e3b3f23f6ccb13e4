package export

import (
	"encoding/json"
	"fmt"
	"io"

	"fireplan/internal/core"
)

type jsonRecord struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Product  string `json:"product"`
	Cost     int64  `json:"cost"`
}

// WriteNDJSON writes the snapshot as line-delimited JSON, one record per
// line.
func WriteNDJSON(w io.Writer, records []core.ExpenseRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(jsonRecord{
			ID:       r.ID,
			Category: r.Category,
			Product:  r.Product,
			Cost:     r.Cost,
		}); err != nil {
			return fmt.Errorf("encode record %d: %w", r.ID, err)
		}
	}
	return nil
}
