package export

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"fireplan/internal/core"
)

// ErrNoData is returned when a chart is requested for an empty ledger.
var ErrNoData = errors.New("no expenses to chart")

// WriteChartPNG renders a bar chart of category-aggregated totals as PNG.
func WriteChartPNG(w io.Writer, records []core.ExpenseRecord) error {
	totals := core.SumByCategory(records)
	if len(totals) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{
			Label: t.Name,
			Value: float64(t.Total),
		})
	}

	barChart := chart.BarChart{
		Title:    "Spending by category",
		Height:   512,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
