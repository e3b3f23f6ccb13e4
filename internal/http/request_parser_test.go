package http

import (
	"net/url"
	"testing"
)

func TestParseRate(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{"whole percent", "5", 0.05, false},
		{"fractional percent", "2.5", 0.025, false},
		{"negative percent", "-10", -0.10, false},
		{"zero", "0", 0, false},
		{"missing", "", 0, true},
		{"garbage", "five", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			if tc.value != "" {
				form.Set("rate", tc.value)
			}
			got, err := ParseRate(form, "rate")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseRate(%q) = %g, want %g", tc.value, got, tc.want)
			}
		})
	}
}

func TestParseYears(t *testing.T) {
	form := url.Values{"years": {"-1"}}
	if _, err := ParseYears(form, "years"); err == nil {
		t.Fatalf("negative years must be rejected")
	}
	form.Set("years", "0")
	if got, err := ParseYears(form, "years"); err != nil || got != 0 {
		t.Fatalf("zero years should be valid, got %d err=%v", got, err)
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList(url.Values{"id": {"3", "1", ""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if _, err := ParseIDList(url.Values{"id": {"x"}}); err == nil {
		t.Fatalf("garbage id must be rejected")
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  coffee\x00\x01  ", "coffee"},
		{"a\tb", "ab"},
		{"line one\nline two", "line oneline two"},
		{"label\r\n", "label"},
	}
	for _, tc := range cases {
		if got := sanitizeInput(tc.in); got != tc.want {
			t.Fatalf("sanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got := formatFloat(40000); got != "40,000.00" {
		t.Fatalf("formatFloat(40000) = %q", got)
	}
	if got := formatFloat(-1234.5); got != "-1,234.50" {
		t.Fatalf("formatFloat(-1234.5) = %q", got)
	}
}
