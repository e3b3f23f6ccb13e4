package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"fireplan/internal/backend"
	"fireplan/internal/cli"
	apphttp "fireplan/internal/http"
	applog "fireplan/internal/log"
	"fireplan/internal/sheets"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	svc, err := backend.Create(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
		AMQPQueue:    cfg.AMQPQueue,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	// Spreadsheet export is optional; the route answers 503 without it.
	var snapshots apphttp.SnapshotExporter
	if cfg.GoogleSpreadsheetID != "" {
		sheetsLog := logger.WithComponent(applog.ComponentSheets)
		sheetsClient, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			sheetsLog.Warn("Spreadsheet export disabled", "error", err)
		} else {
			snapshots = sheetsClient
			sheetsLog.Info("Spreadsheet export enabled", "sheet_name", cfg.GoogleSheetName)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, snapshots, cfg.ExportDir)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Ledger close error", "error", err)
		}
	})

	logger.Info("Starting fireplan server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
