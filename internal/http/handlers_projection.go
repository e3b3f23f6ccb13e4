package http

import (
	"log/slog"
	"net/http"

	applog "fireplan/internal/log"
	"fireplan/internal/projection"
)

// monthlyExpenses resolves the projection base: an explicit form value wins,
// otherwise the current ledger total is used.
func (s *Server) monthlyExpenses(r *http.Request) (float64, error) {
	if v := r.Form.Get("monthly_expenses"); v != "" {
		return ParseAmount(r.Form, "monthly_expenses")
	}
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		return 0, err
	}
	return float64(snap.Total), nil
}

func (s *Server) renderProjection(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section class="projection"><div class="placeholder">Templates not loaded</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error",
			applog.FieldError, err, "template", name)
		_, _ = w.Write([]byte(`<section class="projection"><div class="placeholder">Error rendering projection</div></section>`))
	}
}

// projectionError maps bad form values and engine precondition failures to a
// 422 with an error div the partial can swap in.
func projectionError(w http.ResponseWriter, err error) {
	UnprocessableEntityError(err.Error()).Write(w)
}

// handleIncomeProjection renders the nominal annual income needed after the
// horizon to keep up with today's monthly expenses.
func (s *Server) handleIncomeProjection(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	inflation, err := ParseRate(r.Form, "inflation_rate")
	if err != nil {
		projectionError(w, err)
		return
	}
	years, err := ParseYears(r.Form, "years")
	if err != nil {
		projectionError(w, err)
		return
	}
	monthly, err := s.monthlyExpenses(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Projection base error", applog.FieldError, err)
		InternalServerError("Error reading ledger").Write(w)
		return
	}

	income := projection.AnnualIncomeNeeded(monthly, inflation, years)

	data := struct {
		Years  int
		Income string
	}{Years: years, Income: formatFloat(income)}
	s.renderProjection(w, r, "projection_income.html", data)
}

// handleFITargetProjection renders the asset total whose returns cover the
// inflated annual expenses.
func (s *Server) handleFITargetProjection(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	inflation, err := ParseRate(r.Form, "inflation_rate")
	if err != nil {
		projectionError(w, err)
		return
	}
	investmentReturn, err := ParseRate(r.Form, "investment_return")
	if err != nil {
		projectionError(w, err)
		return
	}
	years, err := ParseYears(r.Form, "years")
	if err != nil {
		projectionError(w, err)
		return
	}
	monthly, err := s.monthlyExpenses(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Projection base error", applog.FieldError, err)
		InternalServerError("Error reading ledger").Write(w)
		return
	}

	income := projection.AnnualIncomeNeeded(monthly, inflation, years)
	target, err := projection.FITargetAmount(monthly, inflation, years, investmentReturn)
	if err != nil {
		projectionError(w, err)
		return
	}

	data := struct {
		Years  int
		Income string
		Target string
	}{Years: years, Income: formatFloat(income), Target: formatFloat(target)}
	s.renderProjection(w, r, "projection_fi_target.html", data)
}

// handleFourPercentProjection renders the safe-withdrawal target, how far
// current assets are from it, and the year-by-year comparison table.
func (s *Server) handleFourPercentProjection(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	expectedReturn, err := ParseRate(r.Form, "expected_return")
	if err != nil {
		projectionError(w, err)
		return
	}
	inflation, err := ParseRate(r.Form, "inflation_rate")
	if err != nil {
		projectionError(w, err)
		return
	}
	years, err := ParseYears(r.Form, "years")
	if err != nil {
		projectionError(w, err)
		return
	}
	currentAssets, err := ParseAmount(r.Form, "current_assets")
	if err != nil {
		projectionError(w, err)
		return
	}
	monthly, err := s.monthlyExpenses(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Projection base error", applog.FieldError, err)
		InternalServerError("Error reading ledger").Write(w)
		return
	}

	annualExpenses := monthly * 12
	target, err := projection.TargetAssets4PctRule(annualExpenses, expectedReturn, inflation)
	if err != nil {
		projectionError(w, err)
		return
	}
	achievement, err := projection.AchievementRate(currentAssets, target)
	if err != nil {
		projectionError(w, err)
		return
	}
	series, err := projection.AssetAndExpenseSeries(annualExpenses, expectedReturn, inflation, years)
	if err != nil {
		projectionError(w, err)
		return
	}

	type seriesRow struct {
		Year     int
		Target   string
		Expenses string
	}
	rows := make([]seriesRow, 0, len(series))
	for _, p := range series {
		rows = append(rows, seriesRow{
			Year:     p.Year,
			Target:   formatFloat(p.TargetAssets),
			Expenses: formatFloat(p.InflatedExpenses),
		})
	}

	data := struct {
		Target      string
		Achievement string
		Rows        []seriesRow
	}{Target: formatFloat(target), Achievement: formatFloat(achievement), Rows: rows}
	s.renderProjection(w, r, "projection_four_percent.html", data)
}

// handleGrowthProjection renders a compounded value series, one row per year.
func (s *Server) handleGrowthProjection(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	initial, err := ParseAmount(r.Form, "initial_value")
	if err != nil {
		projectionError(w, err)
		return
	}
	rate, err := ParseRate(r.Form, "growth_rate")
	if err != nil {
		projectionError(w, err)
		return
	}
	years, err := ParseYears(r.Form, "years")
	if err != nil {
		projectionError(w, err)
		return
	}

	series, err := projection.GrowthSeries(initial, rate, years)
	if err != nil {
		projectionError(w, err)
		return
	}

	type seriesRow struct {
		Year  int
		Value string
	}
	rows := make([]seriesRow, 0, len(series))
	for _, p := range series {
		rows = append(rows, seriesRow{Year: p.Year, Value: formatFloat(p.Value)})
	}

	data := struct {
		Rows []seriesRow
	}{Rows: rows}
	s.renderProjection(w, r, "projection_growth.html", data)
}
