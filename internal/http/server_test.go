package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fireplan/internal/services"
	"fireplan/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := services.NewLedgerService(storage.NewMemoryLedger(), nil)
	srv := NewServer(":0", svc, nil, t.TempDir())
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/")
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Add expenses") {
		t.Fatalf("index body missing expense form")
	}
	// Default categories show up without any setup.
	if !strings.Contains(rr.Body.String(), "rent") {
		t.Fatalf("index body missing default categories")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := get(srv, path); rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateExpensesBulk(t *testing.T) {
	srv := newTestServer(t)

	// Wrong method
	if rr := get(srv, "/expenses"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	rr := postForm(srv, "/expenses", url.Values{
		"category": {"food"},
		"products": {"coffee, groceries"},
		"costs":    {"300, 4500"},
	})
	if rr.Code != 200 {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "ledger:changed") {
		t.Fatalf("missing ledger:changed trigger, got %q", rr.Header().Get("HX-Trigger"))
	}

	rr = get(srv, "/ui/expense-table")
	if rr.Code != 200 {
		t.Fatalf("table status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "coffee") || !strings.Contains(body, "groceries") {
		t.Fatalf("table missing inserted rows: %s", body)
	}
	if !strings.Contains(body, "4,800") {
		t.Fatalf("table missing total: %s", body)
	}
}

func TestCreateExpensesMalformedInsertsNothing(t *testing.T) {
	srv := newTestServer(t)

	cases := []url.Values{
		{"category": {"food"}, "products": {"a, b"}, "costs": {"10"}},
		{"category": {"food"}, "products": {"a"}, "costs": {"ten"}},
		{"category": {""}, "products": {"a"}, "costs": {"10"}},
	}
	for _, form := range cases {
		if rr := postForm(srv, "/expenses", form); rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("form %v: expected 422, got %d", form, rr.Code)
		}
	}

	rr := get(srv, "/ui/expense-table")
	if !strings.Contains(rr.Body.String(), "No expenses recorded yet") {
		t.Fatalf("malformed batches must not insert rows: %s", rr.Body.String())
	}
}

func TestCreateExpensesStripsControlCharacters(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/expenses", url.Values{
		"category": {"fo\nod"},
		"products": {"cof\r\nfee"},
		"costs":    {"300"},
	})
	if rr.Code != 200 {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}

	body := get(srv, "/export/csv").Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 2 {
		t.Fatalf("embedded newlines leaked into the export: %q", body)
	}
	if lines[1] != "food,coffee,300" {
		t.Fatalf("unexpected exported row: %q", lines[1])
	}
}

func TestDeleteExpensesIdempotent(t *testing.T) {
	srv := newTestServer(t)

	postForm(srv, "/expenses", url.Values{
		"category": {"hobby"},
		"products": {"paint, canvas"},
		"costs":    {"100, 200"},
	})

	// Delete one present id and one that never existed.
	rr := postForm(srv, "/expenses/delete", url.Values{"id": {"1", "999"}})
	if rr.Code != 200 {
		t.Fatalf("delete status=%d", rr.Code)
	}

	// Deleting the same ids again still succeeds.
	if rr := postForm(srv, "/expenses/delete", url.Values{"id": {"1", "999"}}); rr.Code != 200 {
		t.Fatalf("repeat delete status=%d", rr.Code)
	}

	body := get(srv, "/ui/expense-table").Body.String()
	if strings.Contains(body, "paint") {
		t.Fatalf("deleted row still rendered: %s", body)
	}
	if !strings.Contains(body, "canvas") {
		t.Fatalf("surviving row missing: %s", body)
	}

	if rr := postForm(srv, "/expenses/delete", url.Values{"id": {"abc"}}); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for garbage id, got %d", rr.Code)
	}
}

func TestResetLedger(t *testing.T) {
	srv := newTestServer(t)

	postForm(srv, "/expenses", url.Values{
		"category": {"transport"},
		"products": {"ticket"},
		"costs":    {"250"},
	})
	if rr := postForm(srv, "/expenses/reset", url.Values{}); rr.Code != 200 {
		t.Fatalf("reset status=%d", rr.Code)
	}
	body := get(srv, "/ui/expense-table").Body.String()
	if !strings.Contains(body, "No expenses recorded yet") {
		t.Fatalf("reset left rows behind: %s", body)
	}
}

func TestCategoryHandlers(t *testing.T) {
	srv := newTestServer(t)

	if rr := postForm(srv, "/categories", url.Values{"name": {"travel"}}); rr.Code != 200 {
		t.Fatalf("add category status=%d", rr.Code)
	}
	if rr := postForm(srv, "/categories", url.Values{"name": {"  "}}); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blank category, got %d", rr.Code)
	}

	body := get(srv, "/ui/categories").Body.String()
	if !strings.Contains(body, "travel") {
		t.Fatalf("categories partial missing new entry: %s", body)
	}

	// Deleting an unknown name is a no-op.
	if rr := postForm(srv, "/categories/delete", url.Values{"name": {"nope"}}); rr.Code != 200 {
		t.Fatalf("delete unknown category status=%d", rr.Code)
	}
}

func TestFourPercentProjection(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/projections/four-percent", url.Values{
		"expected_return":  {"5"},
		"inflation_rate":   {"2"},
		"years":            {"2"},
		"current_assets":   {"20000"},
		"monthly_expenses": {"100"},
	})
	if rr.Code != 200 {
		t.Fatalf("projection status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	// 100*12 / (0.05-0.02) = 40000; 20000/40000 = 50%.
	if !strings.Contains(body, "40,000.00") {
		t.Fatalf("missing target: %s", body)
	}
	if !strings.Contains(body, "50.00%") {
		t.Fatalf("missing achievement rate: %s", body)
	}
}

func TestFourPercentProjectionEqualRatesRejected(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/projections/four-percent", url.Values{
		"expected_return":  {"3"},
		"inflation_rate":   {"3"},
		"years":            {"2"},
		"current_assets":   {"0"},
		"monthly_expenses": {"100"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 when return equals inflation, got %d", rr.Code)
	}
}

func TestGrowthProjection(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/projections/growth", url.Values{
		"initial_value": {"1000"},
		"growth_rate":   {"-10"},
		"years":         {"3"},
	})
	if rr.Code != 200 {
		t.Fatalf("growth status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"1,000.00", "900.00", "810.00", "729.00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("growth series missing %s: %s", want, body)
		}
	}
}

func TestIncomeProjectionUsesLedgerTotal(t *testing.T) {
	srv := newTestServer(t)

	postForm(srv, "/expenses", url.Values{
		"category": {"rent"},
		"products": {"apartment"},
		"costs":    {"1000"},
	})

	rr := postForm(srv, "/projections/income", url.Values{
		"inflation_rate": {"0"},
		"years":          {"5"},
	})
	if rr.Code != 200 {
		t.Fatalf("income status=%d", rr.Code)
	}
	// Zero inflation: annual income is just 12x the ledger total.
	if !strings.Contains(rr.Body.String(), "12,000.00") {
		t.Fatalf("income projection should read the ledger: %s", rr.Body.String())
	}
}

func TestExportEndpoints(t *testing.T) {
	srv := newTestServer(t)

	postForm(srv, "/expenses", url.Values{
		"category": {"food"},
		"products": {"coffee"},
		"costs":    {"300"},
	})

	rr := get(srv, "/export/csv")
	if rr.Code != 200 {
		t.Fatalf("csv status=%d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "expenses.csv") {
		t.Fatalf("csv disposition=%q", got)
	}
	if !strings.Contains(rr.Body.String(), "category,product,cost") {
		t.Fatalf("csv missing header: %s", rr.Body.String())
	}

	rr = get(srv, "/export/json")
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), `"product":"coffee"`) {
		t.Fatalf("ndjson status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = get(srv, "/export/chart.png")
	if rr.Code != 200 {
		t.Fatalf("chart status=%d", rr.Code)
	}
	if !strings.HasPrefix(rr.Body.String(), "\x89PNG") {
		t.Fatalf("chart is not a PNG")
	}

	// Unconfigured spreadsheet integration.
	if rr := postForm(srv, "/export/sheets", url.Values{}); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without sheets client, got %d", rr.Code)
	}

	if rr := postForm(srv, "/export/bundle", url.Values{}); rr.Code != 200 {
		t.Fatalf("bundle status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestExportChartEmptyLedger(t *testing.T) {
	srv := newTestServer(t)
	if rr := get(srv, "/export/chart.png"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty ledger chart, got %d", rr.Code)
	}
}
