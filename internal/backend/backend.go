// Package backend builds the ledger service from configuration: a durable
// SQLite ledger or an ephemeral in-memory one, plus the optional AMQP event
// publisher.
package backend

import (
	"fmt"

	"fireplan/internal/amqp"
	applog "fireplan/internal/log"
	"fireplan/internal/services"
	"fireplan/internal/storage"
)

// Type selects which ledger implementation backs the service.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what Create needs to assemble a ledger service.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Optional ledger event stream
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Create assembles the ledger service for the configured backend type.
// The caller owns the returned service and must Close it on shutdown.
func Create(cfg Config, logger *applog.Logger) (*services.LedgerService, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentBackend)
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	var ledger services.Ledger
	switch cfg.Type {
	case SQLiteBackend:
		sqliteLedger, err := storage.NewSQLiteLedger(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite ledger: %w", err)
		}
		ledger = sqliteLedger
		logger.Info("Initialized SQLite ledger", "db_path", cfg.SQLiteDBPath)
	case MemoryBackend:
		ledger = storage.NewMemoryLedger()
		logger.Info("Initialized in-memory ledger")
	}

	// AMQP is optional: a failed connection degrades to no event stream.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpLog := logger.WithComponent(applog.ComponentAMQP)
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			amqpLog.Warn("Failed to initialize AMQP client, continuing without ledger events", "error", err)
		} else {
			amqpClient = client
			amqpLog.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	return services.NewLedgerService(ledger, amqpClient), nil
}
