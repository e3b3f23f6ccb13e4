// Package projection implements the retirement planning formulas: compound
// growth of expenses and assets, the FI target amount, and the 4%-rule target
// with its achievement rate.
//
// Every operation is a pure function over caller-supplied scalars. All rates
// are decimal fractions (0.02 means 2%); the percent-to-fraction conversion
// happens exactly once at the HTTP boundary, never here. No value is rounded
// inside the engine; formatting is a presentation concern.
package projection

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter reports a violated precondition, such as a non-positive
// divisor. Operations return it instead of producing infinity or NaN.
var ErrInvalidParameter = errors.New("invalid projection parameter")

type (
	// Point is one year of a single-value series.
	Point struct {
		Year  int
		Value float64
	}

	// AssetExpensePoint is one year of the target-vs-expenses series: the
	// target stays constant while inflation moves the expense yardstick.
	AssetExpensePoint struct {
		Year             int
		TargetAssets     float64
		InflatedExpenses float64
	}
)

// Compound grows amount at rate over the given number of years:
// amount * (1+rate)^years. It is the single compounding primitive every
// projection reuses. Negative rates are handled algebraically, so the result
// shrinks when -1 < rate < 0.
func Compound(amount, rate float64, years int) float64 {
	return amount * math.Pow(1+rate, float64(years))
}

// AnnualIncomeNeeded returns the nominal annual income required in the given
// number of years to cover today's monthly expenses, inflated forward.
func AnnualIncomeNeeded(totalMonthlyExpenses, inflationRate float64, years int) float64 {
	return Compound(totalMonthlyExpenses*12, inflationRate, years)
}

// FITargetAmount returns the asset total whose investment return covers the
// inflated annual expenses. The investment return must be strictly positive.
func FITargetAmount(totalMonthlyExpenses, inflationRate float64, years int, investmentReturn float64) (float64, error) {
	if investmentReturn <= 0 {
		return 0, fmt.Errorf("%w: investment return must be positive, got %g", ErrInvalidParameter, investmentReturn)
	}
	return AnnualIncomeNeeded(totalMonthlyExpenses, inflationRate, years) / investmentReturn, nil
}

// TargetAssets4PctRule returns annual expenses divided by the safe withdrawal
// rate (expected return minus inflation). The withdrawal rate must be
// strictly positive.
func TargetAssets4PctRule(annualExpenses, expectedReturnRate, inflationRate float64) (float64, error) {
	withdrawalRate := expectedReturnRate - inflationRate
	if withdrawalRate <= 0 {
		return 0, fmt.Errorf("%w: expected return (%g) must exceed inflation (%g)",
			ErrInvalidParameter, expectedReturnRate, inflationRate)
	}
	return annualExpenses / withdrawalRate, nil
}

// AchievementRate returns current assets as a percentage of the target.
func AchievementRate(currentAssets, targetAssets float64) (float64, error) {
	if targetAssets <= 0 {
		return 0, fmt.Errorf("%w: target assets must be positive, got %g", ErrInvalidParameter, targetAssets)
	}
	return currentAssets / targetAssets * 100, nil
}

// AssetAndExpenseSeries returns one point per year from 0 to horizonYears
// inclusive. The target is the 4%-rule constant repeated across all years;
// only the inflation-adjusted expenses move.
func AssetAndExpenseSeries(annualExpenses, expectedReturnRate, inflationRate float64, horizonYears int) ([]AssetExpensePoint, error) {
	if horizonYears < 0 {
		return nil, fmt.Errorf("%w: horizon years must not be negative, got %d", ErrInvalidParameter, horizonYears)
	}
	target, err := TargetAssets4PctRule(annualExpenses, expectedReturnRate, inflationRate)
	if err != nil {
		return nil, err
	}
	points := make([]AssetExpensePoint, 0, horizonYears+1)
	for year := 0; year <= horizonYears; year++ {
		points = append(points, AssetExpensePoint{
			Year:             year,
			TargetAssets:     target,
			InflatedExpenses: Compound(annualExpenses, inflationRate, year),
		})
	}
	return points, nil
}

// GrowthSeries returns one point per year from 0 to horizonYears inclusive,
// compounding the initial value at the growth rate. The rate may be negative
// to model decline.
func GrowthSeries(initialValue, growthRate float64, horizonYears int) ([]Point, error) {
	if horizonYears < 0 {
		return nil, fmt.Errorf("%w: horizon years must not be negative, got %d", ErrInvalidParameter, horizonYears)
	}
	points := make([]Point, 0, horizonYears+1)
	for year := 0; year <= horizonYears; year++ {
		points = append(points, Point{Year: year, Value: Compound(initialValue, growthRate, year)})
	}
	return points, nil
}
