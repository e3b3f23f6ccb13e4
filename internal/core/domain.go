package core

import (
	"errors"
	"strings"
)

// DefaultCategories is the fallback label set offered when no managed
// categories exist in the ledger.
var DefaultCategories = []string{"rent", "food", "transport", "hobby"}

var (
	ErrMalformedInput = errors.New("malformed bulk input")
	ErrEmptyCategory  = errors.New("empty category")
	ErrEmptyProduct   = errors.New("empty product")
)

type (
	// ExpenseRecord is one ledger row. Category is a free-text label and is
	// deliberately not a foreign key into the managed category list: deleting
	// a managed category leaves existing records untouched.
	ExpenseRecord struct {
		ID       int64
		Category string
		Product  string
		Cost     int64
	}

	// LineItem is one parsed entry from the bulk input form, before it has
	// been assigned a ledger id.
	LineItem struct {
		Product string
		Cost    int64
	}

	// CategoryTotal is an aggregated cost for one category name.
	CategoryTotal struct {
		Name  string
		Total int64
	}
)

func (e ExpenseRecord) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Product) == "" {
		return ErrEmptyProduct
	}
	// Cost is unconstrained: zero and negative amounts are stored as-is.
	return nil
}
