package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is a single liability entered by the user. RemainingBalance is the only
// field that changes over its lifetime; a debt whose balance reaches zero is
// closed but stays on record until the user deletes it.
type Debt struct {
	ID                        string          `json:"id" validate:"required,max=64"`
	Name                      string          `json:"name" validate:"max=200"`
	Creditor                  string          `json:"creditor,omitempty" validate:"max=200"`
	Principal                 decimal.Decimal `json:"principal" validate:"gte=0"`
	RemainingBalance          decimal.Decimal `json:"remainingBalance" validate:"gte=0"`
	AnnualInterestRatePercent decimal.Decimal `json:"annualInterestRatePercent" validate:"gte=0,lte=1000"`
	MinimumMonthlyPayment     decimal.Decimal `json:"minimumMonthlyPayment" validate:"gte=0"`
	CreatedAt                 time.Time       `json:"createdAt,omitempty"`
	UpdatedAt                 time.Time       `json:"updatedAt,omitempty"`
}

// IsClosed reports whether the debt has been paid off.
func (d Debt) IsClosed() bool {
	return !d.RemainingBalance.IsPositive()
}

// Label returns the name when present, the ID otherwise.
func (d Debt) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// DebtPaymentInput records a real payment made against a stored debt.
type DebtPaymentInput struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}
