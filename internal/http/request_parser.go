// Package http provides the HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: method checks, form parsing, numeric fields, and the single place
// where percent inputs become decimal fractions.

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// ParseRate reads a percent-valued form field and converts it to a decimal
// fraction. This is the only place the divide-by-100 happens; everything
// downstream works with fractions.
func ParseRate(form url.Values, key string) (float64, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	pct, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return pct / 100, nil
}

// ParseAmount reads a plain float form field.
func ParseAmount(form url.Values, key string) (float64, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

// ParseYears reads a non-negative integer form field.
func ParseYears(form url.Values, key string) (int, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative: %d", key, n)
	}
	return n, nil
}

// ParseIDList reads the repeated "id" checkbox values of the delete form.
// Unparseable values are rejected rather than silently skipped.
func ParseIDList(form url.Values) ([]int64, error) {
	raw := form["id"]
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id: %q", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// sanitizeInput removes control characters and trims whitespace. Tabs and
// newlines go too: labels are single-line and embedded breaks would leak
// into CSV and NDJSON rows.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, s)
}
