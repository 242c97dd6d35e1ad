// Package payoff projects how a set of debts is repaid month by month under
// the avalanche or snowball strategy.
//
// The simulation is a pure function of its inputs: the caller's debts are
// copied before any balance is touched.
package payoff

import (
	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// GenerateSchedule simulates repayment until every balance is zero or the cap
// is reached. The monthly pool is the sum of the minimum payments of the debts
// open at the start plus any extra payment; minimums freed by closed debts roll
// over into the surplus.
func GenerateSchedule(debts []domain.Debt, strategy domain.Strategy, opts ...Option) (domain.Schedule, error) {
	cfg := newConfig(opts)
	if err := validate(debts, strategy, cfg); err != nil {
		return domain.Schedule{}, err
	}

	accounts := make([]*account, len(debts))
	pool := cfg.extra
	totalDebt := decimal.Zero
	for i, d := range debts {
		accounts[i] = &account{
			index:      i,
			id:         d.ID,
			annualRate: d.AnnualInterestRatePercent,
			minimum:    d.MinimumMonthlyPayment,
			balance:    d.RemainingBalance,
		}
		if accounts[i].open() {
			pool = pool.Add(d.MinimumMonthlyPayment)
			totalDebt = totalDebt.Add(d.RemainingBalance)
		}
	}

	al := allocator{
		strategy:  strategy,
		precision: cfg.precision,
		dust:      cfg.dustThreshold(),
	}

	sched := domain.Schedule{
		Strategy:         strategy,
		CapMonths:        cfg.capMonths,
		Entries:          make([]domain.ScheduleEntry, 0),
		DebtPayoffMonths: make(map[string]int),
		TotalDebt:        totalDebt,
	}

	cumulative := decimal.Zero
	for month := 1; month <= cfg.capMonths && anyOpen(accounts); month++ {
		a := al.allocate(accounts, pool)
		cumulative = cumulative.Add(a.totalInterest)

		for _, p := range a.payments {
			if p.Closed {
				sched.DebtPayoffMonths[p.DebtID] = month
			}
		}

		sched.Entries = append(sched.Entries, domain.ScheduleEntry{
			Month:              month,
			TotalPayment:       a.totalPayment,
			TotalPrincipal:     a.totalPrincipal,
			TotalInterest:      a.totalInterest,
			CumulativeInterest: cumulative,
			RemainingBalance:   remainingBalance(accounts),
			Payments:           a.payments,
		})
		sched.TotalPaid = sched.TotalPaid.Add(a.totalPayment)
	}
	sched.TotalInterest = cumulative

	if !anyOpen(accounts) {
		payoff := len(sched.Entries)
		sched.PayoffMonth = &payoff
	}
	return sched, nil
}

func anyOpen(accounts []*account) bool {
	for _, acc := range accounts {
		if acc.open() {
			return true
		}
	}
	return false
}

func remainingBalance(accounts []*account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.balance)
	}
	return total
}
