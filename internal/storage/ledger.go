package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fireplan/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteLedger is the durable expense and category store. Writes are
// serialized through one exclusive mutex: the app is single-user by design,
// but nothing stops two sessions from hitting the same database file.
type SQLiteLedger struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

func (l *SQLiteLedger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// AddExpense appends one record and returns its fresh id.
func (l *SQLiteLedger) AddExpense(ctx context.Context, category, product string, cost int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO expenses (category, product, cost) VALUES (?, ?, ?)`,
		category, product, cost)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id, "category", category, "product", product, "cost", cost)
	return id, nil
}

// AddExpenses inserts all items under one category in a single transaction.
// A failure part-way through rolls the whole batch back.
func (l *SQLiteLedger) AddExpenses(ctx context.Context, items []core.LineItem, category string) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (category, product, cost) VALUES (?, ?, ?)`,
			category, item.Product, item.Cost)
		if err != nil {
			return nil, fmt.Errorf("insert expense %q: %w", item.Product, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id for %q: %w", item.Product, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expenses saved", "category", category, "count", len(ids))
	return ids, nil
}

// ListExpenses returns all records in ascending id order.
func (l *SQLiteLedger) ListExpenses(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, category, product, cost FROM expenses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var records []core.ExpenseRecord
	for rows.Next() {
		var r core.ExpenseRecord
		if err := rows.Scan(&r.ID, &r.Category, &r.Product, &r.Cost); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

// DeleteExpenses removes the records whose ids are given. Ids that don't
// exist are silently ignored.
func (l *SQLiteLedger) DeleteExpenses(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := l.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}

	deleted, _ := res.RowsAffected()
	slog.InfoContext(ctx, "Expenses deleted", "requested", len(ids), "deleted", deleted)
	return nil
}

// Reset deletes all expense records unconditionally.
func (l *SQLiteLedger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("reset expenses: %w", err)
	}
	slog.InfoContext(ctx, "Ledger reset")
	return nil
}

// AddCategory adds a managed category name. Adding an existing name is a
// no-op.
func (l *SQLiteLedger) AddCategory(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (category_name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// ListCategories returns managed category names in insertion order, falling
// back to the default set when none have been added.
func (l *SQLiteLedger) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT category_name FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if len(names) == 0 {
		return append([]string(nil), core.DefaultCategories...), nil
	}
	return names, nil
}

// DeleteCategory removes a managed category name. A nonexistent name is a
// no-op, and expense rows carrying the name are left untouched.
func (l *SQLiteLedger) DeleteCategory(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.db.ExecContext(ctx,
		`DELETE FROM categories WHERE category_name = ?`, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
