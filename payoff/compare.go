package payoff

import (
	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// Compare runs both strategies over the same debts and recommends one.
func Compare(debts []domain.Debt, opts ...Option) (domain.Comparison, error) {
	snowball, err := GenerateSchedule(debts, domain.StrategySnowball, opts...)
	if err != nil {
		return domain.Comparison{}, err
	}
	avalanche, err := GenerateSchedule(debts, domain.StrategyAvalanche, opts...)
	if err != nil {
		return domain.Comparison{}, err
	}

	return domain.Comparison{
		Snowball:      snowball,
		Avalanche:     avalanche,
		Recommended:   recommend(snowball, avalanche),
		InterestSaved: decimal.Max(decimal.Zero, snowball.TotalInterest.Sub(avalanche.TotalInterest)),
		MonthsSaved:   horizon(snowball) - horizon(avalanche),
	}, nil
}

// horizon is the payoff month, or the number of simulated months when the
// cap was reached.
func horizon(s domain.Schedule) int {
	if s.PayoffMonth != nil {
		return *s.PayoffMonth
	}
	return len(s.Entries)
}

func recommend(snowball, avalanche domain.Schedule) domain.Strategy {
	switch {
	case snowball.Exceeded() && !avalanche.Exceeded():
		return domain.StrategyAvalanche
	case avalanche.Exceeded() && !snowball.Exceeded():
		return domain.StrategySnowball
	case snowball.Exceeded() && avalanche.Exceeded():
		if finalBalance(snowball).LessThan(finalBalance(avalanche)) {
			return domain.StrategySnowball
		}
		return domain.StrategyAvalanche
	}

	if c := snowball.TotalInterest.Cmp(avalanche.TotalInterest); c != 0 {
		if c < 0 {
			return domain.StrategySnowball
		}
		return domain.StrategyAvalanche
	}
	if horizon(snowball) < horizon(avalanche) {
		return domain.StrategySnowball
	}
	return domain.StrategyAvalanche
}

func finalBalance(s domain.Schedule) decimal.Decimal {
	if len(s.Entries) == 0 {
		return decimal.Zero
	}
	return s.Entries[len(s.Entries)-1].RemainingBalance
}
