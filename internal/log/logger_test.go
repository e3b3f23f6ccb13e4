package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:     slog.LevelInfo,
		Component: component,
		Handler:   slog.NewTextHandler(&buf, nil),
	})
	return logger, &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Component != ComponentApp {
		t.Fatalf("default component = %q, want %q", cfg.Component, ComponentApp)
	}
	if cfg.Level != slog.LevelInfo {
		t.Fatalf("default level = %v, want info", cfg.Level)
	}
}

func TestInfoCarriesComponent(t *testing.T) {
	logger, buf := newBufferLogger(ComponentBackend)

	logger.Info("ledger ready", "db_path", "/tmp/x.db")

	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentBackend) {
		t.Fatalf("record missing component attribute: %s", out)
	}
	if !strings.Contains(out, "ledger ready") {
		t.Fatalf("record missing message: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	logger, buf := newBufferLogger(ComponentApp)

	amqpLog := logger.WithComponent(ComponentAMQP)
	if amqpLog.Component() != ComponentAMQP {
		t.Fatalf("derived component = %q, want %q", amqpLog.Component(), ComponentAMQP)
	}
	// The parent keeps its own component.
	if logger.Component() != ComponentApp {
		t.Fatalf("parent component changed to %q", logger.Component())
	}

	amqpLog.Warn("publish failed")
	if !strings.Contains(buf.String(), FieldComponent+"="+ComponentAMQP) {
		t.Fatalf("derived logger missing component attribute: %s", buf.String())
	}
}

func TestWithKeepsComponent(t *testing.T) {
	logger, buf := newBufferLogger(ComponentExport)

	logger.With(FieldExportKind, "csv").Info("export served")

	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentExport) {
		t.Fatalf("With dropped the component: %s", out)
	}
	if !strings.Contains(out, FieldExportKind+"=csv") {
		t.Fatalf("With dropped the extra attribute: %s", out)
	}
}
