// Package projection grows savings balances and combines them with a
// repayment schedule into a net-worth series.
package projection

import (
	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

var percentMonths = decimal.NewFromInt(1200)

// CompoundGrowth returns the balance at the end of each of the given months.
// Returns compound monthly; the contribution lands after the month's growth.
func CompoundGrowth(initial, annualReturnPercent, monthlyContribution decimal.Decimal, months int, places int32) []decimal.Decimal {
	if months <= 0 {
		return nil
	}
	growth := decimal.NewFromInt(1).Add(annualReturnPercent.Div(percentMonths))

	out := make([]decimal.Decimal, months)
	value := initial
	for m := 0; m < months; m++ {
		value = value.Mul(growth).Add(monthlyContribution).Round(places)
		out[m] = value
	}
	return out
}

// NetWorth projects assets minus outstanding debt, starting with month 0.
// Months past the end of the schedule keep its final balance, which is zero
// once the debts are paid off.
func NetWorth(savings domain.SavingsInput, sched domain.Schedule, months int, places int32) []domain.NetWorthPoint {
	if months <= 0 {
		months = len(sched.Entries)
	}
	assets := CompoundGrowth(savings.Initial, savings.AnnualReturnPercent, savings.MonthlyContribution, months, places)

	points := make([]domain.NetWorthPoint, 0, months+1)
	points = append(points, point(0, savings.Initial, sched.TotalDebt))

	debt := sched.TotalDebt
	for m := 1; m <= months; m++ {
		if m <= len(sched.Entries) {
			debt = sched.Entries[m-1].RemainingBalance
		}
		points = append(points, point(m, assets[m-1], debt))
	}
	return points
}

func point(month int, assets, debt decimal.Decimal) domain.NetWorthPoint {
	return domain.NetWorthPoint{
		Month:    month,
		Assets:   assets,
		Debt:     debt,
		NetWorth: assets.Sub(debt),
	}
}
