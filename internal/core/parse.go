// Package core provides the ledger domain types and bulk-input parsing.
//
// This file parses the two parallel comma-separated lists (product names and
// integer costs) entered through the bulk form. Parsing is all-or-nothing: a
// single bad token rejects the whole batch so the ledger is never left with a
// partial insert.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBulkInput turns two comma-separated lists into line items.
//
// Tokens are trimmed of surrounding whitespace. The lists must have the same
// element count and every cost token must parse as a base-10 integer;
// violations return an error wrapping ErrMalformedInput and no items.
//
// Examples:
//   ParseBulkInput("rent,food", "1000,500") -> [{rent 1000} {food 500}], nil
//   ParseBulkInput("rent,food", "1000")     -> nil, ErrMalformedInput
//   ParseBulkInput("rent", "ten")           -> nil, ErrMalformedInput
func ParseBulkInput(products, costs string) ([]LineItem, error) {
	productTokens := splitAndTrim(products)
	costTokens := splitAndTrim(costs)

	if len(productTokens) == 0 {
		return nil, fmt.Errorf("%w: no products given", ErrMalformedInput)
	}
	if len(productTokens) != len(costTokens) {
		return nil, fmt.Errorf("%w: %d products but %d costs",
			ErrMalformedInput, len(productTokens), len(costTokens))
	}

	items := make([]LineItem, 0, len(productTokens))
	for i, product := range productTokens {
		if product == "" {
			return nil, fmt.Errorf("%w: empty product name at position %d", ErrMalformedInput, i+1)
		}
		cost, err := strconv.ParseInt(costTokens[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cost %q is not an integer", ErrMalformedInput, costTokens[i])
		}
		items = append(items, LineItem{Product: product, Cost: cost})
	}
	return items, nil
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}
