package payoff

import (
	"fmt"

	"debt-planner/domain"
)

// Validate checks debts and options without running a simulation.
func Validate(debts []domain.Debt, strategy domain.Strategy, opts ...Option) error {
	return validate(debts, strategy, newConfig(opts))
}

func validate(debts []domain.Debt, strategy domain.Strategy, cfg config) error {
	if len(debts) == 0 {
		return ErrNoDebts
	}
	if !strategy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
	if cfg.capMonths <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCap, cfg.capMonths)
	}
	if cfg.extra.IsNegative() {
		return &ValidationError{Field: "extra payment", Reason: "must not be negative"}
	}
	if cfg.precision < 0 {
		return &ValidationError{Field: "precision", Reason: "must not be negative"}
	}
	if dust := cfg.dustThreshold(); dust.IsNegative() {
		return &ValidationError{Field: "dust threshold", Reason: "must not be negative"}
	}

	seen := make(map[string]struct{}, len(debts))
	for _, d := range debts {
		if d.ID == "" {
			return &ValidationError{Field: "id", Reason: "must not be empty"}
		}
		if _, dup := seen[d.ID]; dup {
			return &ValidationError{DebtID: d.ID, Field: "id", Reason: "duplicate"}
		}
		seen[d.ID] = struct{}{}

		switch {
		case d.RemainingBalance.IsNegative():
			return &ValidationError{DebtID: d.ID, Field: "remaining balance", Reason: "must not be negative"}
		case d.AnnualInterestRatePercent.IsNegative():
			return &ValidationError{DebtID: d.ID, Field: "annual interest rate", Reason: "must not be negative"}
		case d.MinimumMonthlyPayment.IsNegative():
			return &ValidationError{DebtID: d.ID, Field: "minimum payment", Reason: "must not be negative"}
		}

		if d.IsClosed() {
			continue
		}
		interest := accrue(d.RemainingBalance, d.AnnualInterestRatePercent, cfg.precision)
		if d.MinimumMonthlyPayment.LessThan(interest) {
			return &NonAmortizingDebtError{
				DebtID:          d.ID,
				Name:            d.Name,
				MinimumPayment:  d.MinimumMonthlyPayment,
				MonthlyInterest: interest,
			}
		}
	}
	return nil
}

// InterestOnlyDebts returns the IDs of open debts whose minimum payment
// exactly covers their first month of interest. Such a debt only shrinks
// once extra payment or a freed minimum reaches it.
func InterestOnlyDebts(debts []domain.Debt, opts ...Option) []string {
	cfg := newConfig(opts)
	var ids []string
	for _, d := range debts {
		if d.IsClosed() {
			continue
		}
		interest := accrue(d.RemainingBalance, d.AnnualInterestRatePercent, cfg.precision)
		if interest.IsPositive() && d.MinimumMonthlyPayment.Equal(interest) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
