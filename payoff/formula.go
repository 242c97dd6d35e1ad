package payoff

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrPaymentTooLow is returned by PayoffMonths when the payment never
// reduces the balance.
var ErrPaymentTooLow = errors.New("payment does not exceed monthly interest")

var one = decimal.NewFromInt(1)

// AmortizedPayment returns the level monthly payment that retires principal
// in the given number of months: P·r·(1+r)^n / ((1+r)^n − 1).
func AmortizedPayment(principal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(n)
	}
	growth := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one))
}

// PayoffMonths returns the fractional number of months a level payment needs
// to retire principal: −ln(1 − rP/A) / ln(1 + r).
func PayoffMonths(principal, annualRatePercent, payment decimal.Decimal) (float64, error) {
	if !principal.IsPositive() {
		return 0, nil
	}
	if !payment.IsPositive() {
		return 0, ErrPaymentTooLow
	}
	p := principal.InexactFloat64()
	a := payment.InexactFloat64()
	r := MonthlyRate(annualRatePercent).InexactFloat64()
	if r == 0 {
		return p / a, nil
	}
	if a <= r*p {
		return 0, ErrPaymentTooLow
	}
	return -math.Log(1-r*p/a) / math.Log(1+r), nil
}
