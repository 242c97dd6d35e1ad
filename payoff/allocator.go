package payoff

import (
	"sort"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// account is the simulation's working copy of a debt.
type account struct {
	index      int
	id         string
	annualRate decimal.Decimal
	minimum    decimal.Decimal
	balance    decimal.Decimal
}

func (a *account) open() bool {
	return a.balance.IsPositive()
}

type allocation struct {
	payments       []domain.DebtPayment
	totalPayment   decimal.Decimal
	totalPrincipal decimal.Decimal
	totalInterest  decimal.Decimal
}

type allocator struct {
	strategy  domain.Strategy
	precision int32
	dust      decimal.Decimal
}

// allocate spends one month's pool across the accounts and mutates their
// balances. Interest is charged on the start-of-month balance before any
// principal is applied.
func (al allocator) allocate(accounts []*account, pool decimal.Decimal) allocation {
	payments := make([]domain.DebtPayment, len(accounts))
	active := make([]bool, len(accounts))
	remaining := pool

	for i, acc := range accounts {
		payments[i].DebtID = acc.id
		if !acc.open() {
			continue
		}
		active[i] = true

		interest := accrue(acc.balance, acc.annualRate, al.precision)
		pay := decimal.Min(acc.minimum, acc.balance.Add(interest))
		principal := pay.Sub(interest)

		acc.balance = acc.balance.Sub(principal)
		remaining = remaining.Sub(pay)

		payments[i].Payment = pay
		payments[i].Principal = principal
		payments[i].Interest = interest
	}

	for _, acc := range al.priority(accounts) {
		if !remaining.IsPositive() {
			break
		}
		extra := decimal.Min(remaining, acc.balance)
		acc.balance = acc.balance.Sub(extra)
		remaining = remaining.Sub(extra)
		payments[acc.index].Payment = payments[acc.index].Payment.Add(extra)
		payments[acc.index].Principal = payments[acc.index].Principal.Add(extra)
	}

	out := allocation{payments: make([]domain.DebtPayment, 0, len(accounts))}
	for i, acc := range accounts {
		if !active[i] {
			continue
		}
		// sub-unit residue left by off-grid inputs is paid off with the month
		if acc.open() && acc.balance.LessThan(al.dust) {
			payments[i].Payment = payments[i].Payment.Add(acc.balance)
			payments[i].Principal = payments[i].Principal.Add(acc.balance)
			acc.balance = decimal.Zero
		}
		p := payments[i]
		p.RemainingBalance = acc.balance
		p.Closed = !acc.open()

		out.totalPayment = out.totalPayment.Add(p.Payment)
		out.totalPrincipal = out.totalPrincipal.Add(p.Principal)
		out.totalInterest = out.totalInterest.Add(p.Interest)
		out.payments = append(out.payments, p)
	}
	return out
}

// priority orders the open accounts for surplus distribution. It is
// recomputed every month, so snowball order follows the current balances.
func (al allocator) priority(accounts []*account) []*account {
	open := make([]*account, 0, len(accounts))
	for _, acc := range accounts {
		if acc.open() {
			open = append(open, acc)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return al.before(open[i], open[j])
	})
	return open
}

func (al allocator) before(x, y *account) bool {
	switch al.strategy {
	case domain.StrategySnowball:
		if c := x.balance.Cmp(y.balance); c != 0 {
			return c < 0
		}
		if c := x.annualRate.Cmp(y.annualRate); c != 0 {
			return c > 0
		}
	default:
		if c := x.annualRate.Cmp(y.annualRate); c != 0 {
			return c > 0
		}
		if c := x.balance.Cmp(y.balance); c != 0 {
			return c < 0
		}
	}
	return x.index < y.index
}
