package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fireplan/internal/amqp"
	"fireplan/internal/core"
)

// Ledger is the storage contract the service depends on. Both the SQLite and
// the in-memory ledgers satisfy it.
type Ledger interface {
	AddExpense(ctx context.Context, category, product string, cost int64) (int64, error)
	AddExpenses(ctx context.Context, items []core.LineItem, category string) ([]int64, error)
	ListExpenses(ctx context.Context) ([]core.ExpenseRecord, error)
	DeleteExpenses(ctx context.Context, ids []int64) error
	Reset(ctx context.Context) error
	AddCategory(ctx context.Context, name string) error
	ListCategories(ctx context.Context) ([]string, error)
	DeleteCategory(ctx context.Context, name string) error
	Close() error
}

// Snapshot is the full ledger state handed to the presentation layer and to
// the projection calculators on every render cycle.
type Snapshot struct {
	Records    []core.ExpenseRecord
	Total      int64
	ByCategory []core.CategoryTotal
}

// LedgerService orchestrates ledger mutations and optional event publishing.
// Publish failures are logged and never fail the request.
type LedgerService struct {
	ledger     Ledger
	amqpClient *amqp.Client
}

func NewLedgerService(ledger Ledger, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		ledger:     ledger,
		amqpClient: amqpClient,
	}
}

// CreateExpenses parses the two bulk input lists and inserts all items under
// the given category in one shot. Malformed input adds zero records.
func (s *LedgerService) CreateExpenses(ctx context.Context, category, products, costs string) ([]int64, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", core.ErrMalformedInput)
	}

	items, err := core.ParseBulkInput(products, costs)
	if err != nil {
		return nil, err
	}

	ids, err := s.ledger.AddExpenses(ctx, items, category)
	if err != nil {
		return nil, fmt.Errorf("save expenses: %w", err)
	}

	s.publish(ctx, amqp.NewExpensesCreatedMessage(ids))
	return ids, nil
}

// DeleteExpenses removes the given ids; absent ids are ignored.
func (s *LedgerService) DeleteExpenses(ctx context.Context, ids []int64) error {
	if err := s.ledger.DeleteExpenses(ctx, ids); err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	s.publish(ctx, amqp.NewExpensesDeletedMessage(ids))
	return nil
}

// ResetLedger deletes all expense records.
func (s *LedgerService) ResetLedger(ctx context.Context) error {
	if err := s.ledger.Reset(ctx); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	s.publish(ctx, amqp.NewLedgerResetMessage())
	return nil
}

// Snapshot reads the full ledger and its aggregates.
func (s *LedgerService) Snapshot(ctx context.Context) (Snapshot, error) {
	records, err := s.ledger.ListExpenses(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read ledger: %w", err)
	}
	return Snapshot{
		Records:    records,
		Total:      core.TotalCost(records),
		ByCategory: core.SumByCategory(records),
	}, nil
}

func (s *LedgerService) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyCategory
	}
	if err := s.ledger.AddCategory(ctx, name); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	return nil
}

func (s *LedgerService) ListCategories(ctx context.Context) ([]string, error) {
	names, err := s.ledger.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

func (s *LedgerService) DeleteCategory(ctx context.Context, name string) error {
	if err := s.ledger.DeleteCategory(ctx, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.LedgerEventMessage) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"event", msg.Event, "error", err)
		// The mutation already succeeded locally; the event stream is best
		// effort.
	}
}

// Close closes the ledger and, when present, the AMQP connection.
func (s *LedgerService) Close() error {
	var errs []error

	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ledger: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
