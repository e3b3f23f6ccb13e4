package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"fireplan/internal/core"
	"fireplan/internal/export"
	applog "fireplan/internal/log"
)

// writeDownload streams one export format with a download disposition.
func (s *Server) writeDownload(w http.ResponseWriter, r *http.Request, kind, filename, contentType string,
	write func(io.Writer, []core.ExpenseRecord) error) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export snapshot error",
			applog.FieldError, err, applog.FieldExportKind, kind)
		http.Error(w, "error reading ledger", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := write(w, snap.Records); err != nil {
		// Headers are already out; all we can do is log.
		slog.ErrorContext(r.Context(), "Export write error",
			applog.FieldError, err, applog.FieldExportKind, kind)
		return
	}

	slog.InfoContext(r.Context(), "Export served",
		applog.FieldExportKind, kind,
		applog.FieldRecordCount, len(snap.Records))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.writeDownload(w, r, "csv", export.BundleCSV, "text/csv; charset=utf-8", export.WriteCSV)
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	s.writeDownload(w, r, "excel", export.BundleExcel,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.WriteExcel)
}

func (s *Server) handleExportNDJSON(w http.ResponseWriter, r *http.Request) {
	s.writeDownload(w, r, "ndjson", export.BundleNDJSON, "application/x-ndjson", export.WriteNDJSON)
}

// handleExportChart renders the category bar chart. An empty ledger has
// nothing to chart and returns 404.
func (s *Server) handleExportChart(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export snapshot error",
			applog.FieldError, err, applog.FieldExportKind, "chart")
		http.Error(w, "error reading ledger", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := export.WriteChartPNG(w, snap.Records); err != nil {
		if errors.Is(err, export.ErrNoData) {
			w.Header().Del("Content-Type")
			http.Error(w, "no expenses to chart", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Chart render error",
			applog.FieldError, err, applog.FieldExportKind, "chart")
	}
}

// handleExportSheets pushes the full snapshot to the configured spreadsheet.
// Returns 503 when the integration is not configured.
func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if s.snapshots == nil {
		ErrorResponse(http.StatusServiceUnavailable, "Spreadsheet export not configured").Write(w)
		return
	}

	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export snapshot error",
			applog.FieldError, err, applog.FieldExportKind, "sheets")
		InternalServerError("Error reading ledger").Write(w)
		return
	}

	if err := s.snapshots.ExportSnapshot(r.Context(), snap.Records); err != nil {
		slog.ErrorContext(r.Context(), "Sheets export failed",
			applog.FieldError, err,
			applog.FieldRecordCount, len(snap.Records),
			applog.FieldComponent, applog.ComponentSheets)
		InternalServerError("Error exporting to spreadsheet").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerSuccessNotification(fmt.Sprintf("Exported %d record(s) to spreadsheet", len(snap.Records))).
		Write(w)
}

// handleExportBundle writes every format into the export directory at once.
func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export snapshot error",
			applog.FieldError, err, applog.FieldExportKind, "bundle")
		InternalServerError("Error reading ledger").Write(w)
		return
	}

	paths, err := export.WriteBundle(r.Context(), s.exportDir, snap.Records)
	if err != nil {
		slog.ErrorContext(r.Context(), "Bundle export failed",
			applog.FieldError, err, applog.FieldExportKind, "bundle")
		InternalServerError("Error writing export bundle").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Bundle exported",
		applog.FieldExportKind, "bundle",
		applog.FieldRecordCount, len(snap.Records),
		"artifacts", len(paths))

	NewHTMXResponse().
		TriggerSuccessNotification(fmt.Sprintf("Wrote %d file(s) to %s", len(paths), s.exportDir)).
		Write(w)
}
