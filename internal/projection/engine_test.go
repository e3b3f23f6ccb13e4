package projection

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestCompound(t *testing.T) {
	cases := []struct {
		amount float64
		rate   float64
		years  int
		want   float64
	}{
		{1000, 0.02, 0, 1000},
		{0, 0.05, 10, 0},
		{1000, 0, 7, 1000},
		{1000, 0.02, 1, 1020},
		{1000, 0.02, 2, 1040.4},
		{1000, -0.1, 1, 900},
		{1000, -0.1, 3, 729},
	}
	for _, tc := range cases {
		got := Compound(tc.amount, tc.rate, tc.years)
		if !almostEqual(got, tc.want) {
			t.Fatalf("Compound(%g, %g, %d) expected %g, got %g", tc.amount, tc.rate, tc.years, tc.want, got)
		}
	}
}

func TestCompoundMonotonicity(t *testing.T) {
	// Increasing in years for positive rates, decreasing for -1 < rate < 0.
	prev := Compound(1000, 0.03, 0)
	for n := 1; n <= 30; n++ {
		cur := Compound(1000, 0.03, n)
		if cur <= prev {
			t.Fatalf("expected strictly increasing at year %d: %g <= %g", n, cur, prev)
		}
		prev = cur
	}
	prev = Compound(1000, -0.05, 0)
	for n := 1; n <= 30; n++ {
		cur := Compound(1000, -0.05, n)
		if cur >= prev {
			t.Fatalf("expected strictly decreasing at year %d: %g >= %g", n, cur, prev)
		}
		prev = cur
	}
}

func TestAnnualIncomeNeeded(t *testing.T) {
	// 36000 * 1.02^10
	want := 36000 * math.Pow(1.02, 10)
	got := AnnualIncomeNeeded(3000, 0.02, 10)
	if !almostEqual(got, want) {
		t.Fatalf("expected %g, got %g", want, got)
	}
	if got < 43877 || got > 43878 {
		t.Fatalf("expected roughly 43877.6, got %g", got)
	}
}

func TestFITargetAmount(t *testing.T) {
	got, err := FITargetAmount(3000, 0.02, 10, 0.04)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := AnnualIncomeNeeded(3000, 0.02, 10) / 0.04
	if !almostEqual(got, want) {
		t.Fatalf("expected %g, got %g", want, got)
	}
	if got < 1096940 || got > 1096941 {
		t.Fatalf("expected roughly 1096940, got %g", got)
	}

	for _, bad := range []float64{0, -0.04} {
		if _, err := FITargetAmount(3000, 0.02, 10, bad); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("return %g: expected ErrInvalidParameter, got %v", bad, err)
		}
	}
}

func TestTargetAssets4PctRule(t *testing.T) {
	got, err := TargetAssets4PctRule(1200, 0.05, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 40000) {
		t.Fatalf("expected 40000, got %g", got)
	}

	// Withdrawal rate must be strictly positive.
	if _, err := TargetAssets4PctRule(1200, 0.02, 0.02); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("equal rates: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := TargetAssets4PctRule(1200, 0.01, 0.02); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("inverted rates: expected ErrInvalidParameter, got %v", err)
	}
}

func TestAchievementRate(t *testing.T) {
	got, err := AchievementRate(20000, 40000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 50.0) {
		t.Fatalf("expected 50.0, got %g", got)
	}
	if _, err := AchievementRate(20000, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero target: expected ErrInvalidParameter, got %v", err)
	}
}

func TestAssetAndExpenseSeries(t *testing.T) {
	points, err := AssetAndExpenseSeries(1200, 0.05, 0.02, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points (years 0..3), got %d", len(points))
	}
	for i, p := range points {
		if p.Year != i {
			t.Fatalf("point %d: expected year %d, got %d", i, i, p.Year)
		}
		// The target is constant across the whole series.
		if !almostEqual(p.TargetAssets, 40000) {
			t.Fatalf("point %d: expected constant target 40000, got %g", i, p.TargetAssets)
		}
		want := Compound(1200, 0.02, i)
		if !almostEqual(p.InflatedExpenses, want) {
			t.Fatalf("point %d: expected expenses %g, got %g", i, want, p.InflatedExpenses)
		}
	}
	if points[0].InflatedExpenses != 1200 {
		t.Fatalf("year 0 expenses must equal today's expenses, got %g", points[0].InflatedExpenses)
	}

	if _, err := AssetAndExpenseSeries(1200, 0.02, 0.02, 3); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero withdrawal rate, got %v", err)
	}
	if _, err := AssetAndExpenseSeries(1200, 0.05, 0.02, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for negative horizon, got %v", err)
	}
}

func TestGrowthSeries(t *testing.T) {
	points, err := GrowthSeries(1000, -0.1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1000, 900, 810, 729}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p.Year != i || !almostEqual(p.Value, want[i]) {
			t.Fatalf("point %d: expected (%d, %g), got (%d, %g)", i, i, want[i], p.Year, p.Value)
		}
	}

	if _, err := GrowthSeries(1000, 0.05, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for negative horizon, got %v", err)
	}
}
