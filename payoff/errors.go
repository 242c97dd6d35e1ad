package payoff

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNoDebts         = errors.New("no debts provided")
	ErrInvalidStrategy = errors.New("invalid repayment strategy")
	ErrInvalidCap      = errors.New("cap months must be positive")
)

// ValidationError reports a malformed debt or option.
type ValidationError struct {
	DebtID string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.DebtID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("debt %q: invalid %s: %s", e.DebtID, e.Field, e.Reason)
}

// NonAmortizingDebtError is returned when a debt's minimum payment does not
// cover the interest it accrues, so its balance would grow every month.
type NonAmortizingDebtError struct {
	DebtID          string
	Name            string
	MinimumPayment  decimal.Decimal
	MonthlyInterest decimal.Decimal
}

func (e *NonAmortizingDebtError) Error() string {
	label := e.DebtID
	if e.Name != "" {
		label = fmt.Sprintf("%s (%s)", e.Name, e.DebtID)
	}
	return fmt.Sprintf("debt %s does not amortize: minimum payment %s is below monthly interest %s",
		label, e.MinimumPayment.String(), e.MonthlyInterest.String())
}
