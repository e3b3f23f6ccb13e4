package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"fireplan/internal/core"
)

// Bundle file names inside the export directory.
const (
	BundleCSV    = "expenses.csv"
	BundleExcel  = "expenses.xlsx"
	BundleNDJSON = "expenses.ndjson"
	BundleChart  = "by_category.png"
)

// WriteBundle writes the snapshot in all supported formats into dir,
// concurrently. The chart is skipped for an empty ledger; every other format
// is always written. Returns the paths written.
func WriteBundle(ctx context.Context, dir string, records []core.ExpenseRecord) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	type artifact struct {
		name  string
		write func(io.Writer, []core.ExpenseRecord) error
	}
	artifacts := []artifact{
		{BundleCSV, WriteCSV},
		{BundleExcel, WriteExcel},
		{BundleNDJSON, WriteNDJSON},
	}
	if len(records) > 0 {
		artifacts = append(artifacts, artifact{BundleChart, WriteChartPNG})
	}

	g, _ := errgroup.WithContext(ctx)
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		i, a := i, a
		g.Go(func() error {
			path := filepath.Join(dir, a.name)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", a.name, err)
			}
			defer f.Close()
			if err := a.write(f, records); err != nil {
				return fmt.Errorf("write %s: %w", a.name, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
