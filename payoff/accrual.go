package payoff

import "github.com/shopspring/decimal"

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
	percentMonths = hundred.Mul(monthsPerYear)
)

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(percentMonths)
}

// accrue returns the interest due for one month on a start-of-month balance,
// rounded to places.
func accrue(balance, annualRatePercent decimal.Decimal, places int32) decimal.Decimal {
	if !balance.IsPositive() || !annualRatePercent.IsPositive() {
		return decimal.Zero
	}
	return balance.Mul(annualRatePercent).Div(percentMonths).Round(places)
}
