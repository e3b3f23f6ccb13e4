package storage

import (
	"context"
	"sync"

	"fireplan/internal/core"
)

// MemoryLedger is an in-process ledger with the same contract as
// SQLiteLedger. It backs the memory backend and keeps tests off the
// filesystem. Ids are monotonic and never reused after deletion.
type MemoryLedger struct {
	mu         sync.Mutex
	nextID     int64
	records    []core.ExpenseRecord
	categories []string
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{nextID: 1}
}

func (l *MemoryLedger) Close() error { return nil }

func (l *MemoryLedger) AddExpense(ctx context.Context, category, product string, cost int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.records = append(l.records, core.ExpenseRecord{ID: id, Category: category, Product: product, Cost: cost})
	return id, nil
}

func (l *MemoryLedger) AddExpenses(ctx context.Context, items []core.LineItem, category string) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id := l.nextID
		l.nextID++
		l.records = append(l.records, core.ExpenseRecord{ID: id, Category: category, Product: item.Product, Cost: item.Cost})
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *MemoryLedger) ListExpenses(ctx context.Context) ([]core.ExpenseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

func (l *MemoryLedger) DeleteExpenses(ctx context.Context, ids []int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := l.records[:0]
	for _, r := range l.records {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	l.records = kept
	return nil
}

func (l *MemoryLedger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
	return nil
}

func (l *MemoryLedger) AddCategory(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.categories {
		if existing == name {
			return nil
		}
	}
	l.categories = append(l.categories, name)
	return nil
}

func (l *MemoryLedger) ListCategories(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.categories) == 0 {
		return append([]string(nil), core.DefaultCategories...), nil
	}
	return append([]string(nil), l.categories...), nil
}

func (l *MemoryLedger) DeleteCategory(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.categories {
		if existing == name {
			l.categories = append(l.categories[:i], l.categories[i+1:]...)
			return nil
		}
	}
	return nil
}
