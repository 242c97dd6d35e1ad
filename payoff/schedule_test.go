package payoff

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/domain"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newDebt(id, balance, rate, minimum string) domain.Debt {
	return domain.Debt{
		ID:                        id,
		Name:                      id,
		Principal:                 d(balance),
		RemainingBalance:          d(balance),
		AnnualInterestRatePercent: d(rate),
		MinimumMonthlyPayment:     d(minimum),
	}
}

func paymentFor(t *testing.T, entry domain.ScheduleEntry, id string) domain.DebtPayment {
	t.Helper()
	for _, p := range entry.Payments {
		if p.DebtID == id {
			return p
		}
	}
	t.Fatalf("no payment for %s in month %d", id, entry.Month)
	return domain.DebtPayment{}
}

func TestGenerateSchedule_SingleDebtMatchesAmortizationFormula(t *testing.T) {
	debts := []domain.Debt{newDebt("loan", "1200000", "6", "23000")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche, WithPrecision(0))
	require.NoError(t, err)
	require.NotNil(t, sched.PayoffMonth)

	oracle, err := PayoffMonths(d("1200000"), d("6"), d("23000"))
	require.NoError(t, err)

	assert.InDelta(t, oracle, float64(*sched.PayoffMonth), 1)
	assert.GreaterOrEqual(t, *sched.PayoffMonth, 60)
	assert.LessOrEqual(t, *sched.PayoffMonth, 61)

	last := sched.Entries[len(sched.Entries)-1]
	assert.True(t, last.RemainingBalance.IsZero(), "final balance %s", last.RemainingBalance)

	oracleInterest := 23000*oracle - 1200000
	assert.InEpsilon(t, oracleInterest, sched.TotalInterest.InexactFloat64(), 0.01)
	assert.Greater(t, sched.TotalInterest.InexactFloat64(), 170000.0)
	assert.Less(t, sched.TotalInterest.InexactFloat64(), 200000.0)
	assert.True(t, sched.TotalInterest.Equal(last.CumulativeInterest))
}

func TestGenerateSchedule_LevelPaymentPaysOffOnTerm(t *testing.T) {
	payment := AmortizedPayment(d("10000"), d("12"), 24).RoundCeil(0)
	debts := []domain.Debt{newDebt("car", "10000", "12", payment.String())}

	sched, err := GenerateSchedule(debts, domain.StrategySnowball)
	require.NoError(t, err)
	require.NotNil(t, sched.PayoffMonth)
	assert.Equal(t, 24, *sched.PayoffMonth)
	assert.Len(t, sched.Entries, 24)
	assert.Equal(t, 24, sched.DebtPayoffMonths["car"])
}

func TestGenerateSchedule_InterestUsesStartOfMonthBalance(t *testing.T) {
	debts := []domain.Debt{newDebt("card", "1000", "12", "100")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche)
	require.NoError(t, err)

	first := sched.Entries[0]
	assert.True(t, d("10").Equal(first.TotalInterest), "interest %s", first.TotalInterest)
	assert.True(t, d("90").Equal(first.TotalPrincipal))
	assert.True(t, d("910").Equal(first.RemainingBalance))

	second := sched.Entries[1]
	assert.True(t, d("9.1").Equal(second.TotalInterest), "interest %s", second.TotalInterest)
	assert.True(t, d("19.1").Equal(second.CumulativeInterest))
}

func TestGenerateSchedule_BalanceNeverIncreases(t *testing.T) {
	debts := []domain.Debt{
		newDebt("a", "5000", "19.9", "150"),
		newDebt("b", "12000", "7.5", "250"),
		newDebt("c", "800", "0", "25"),
	}

	for _, strategy := range domain.Strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			sched, err := GenerateSchedule(debts, strategy, WithExtraPayment(d("100")))
			require.NoError(t, err)

			prev := d("17800")
			for _, e := range sched.Entries {
				assert.True(t, e.RemainingBalance.LessThanOrEqual(prev),
					"month %d: %s > %s", e.Month, e.RemainingBalance, prev)
				prev = e.RemainingBalance
			}
		})
	}
}

func TestGenerateSchedule_PrincipalIsConserved(t *testing.T) {
	debts := []domain.Debt{
		newDebt("a", "5000.55", "19.9", "150"),
		newDebt("b", "12000", "7.5", "250"),
		newDebt("c", "800.10", "3", "25"),
	}

	for _, strategy := range domain.Strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			sched, err := GenerateSchedule(debts, strategy, WithExtraPayment(d("75")))
			require.NoError(t, err)
			require.NotNil(t, sched.PayoffMonth)

			principal := decimal.Zero
			paid := decimal.Zero
			for _, e := range sched.Entries {
				principal = principal.Add(e.TotalPrincipal)
				paid = paid.Add(e.TotalPayment)
			}
			assert.True(t, d("17800.65").Equal(principal), "principal %s", principal)
			assert.True(t, sched.TotalDebt.Equal(principal))
			assert.True(t, paid.Equal(principal.Add(sched.TotalInterest)))
			assert.True(t, paid.Equal(sched.TotalPaid))
		})
	}
}

func TestGenerateSchedule_StrategyTargetsDifferentDebts(t *testing.T) {
	debts := []domain.Debt{
		newDebt("A", "100000", "10", "2000"),
		newDebt("B", "50000", "2", "1000"),
	}

	avalanche, err := GenerateSchedule(debts, domain.StrategyAvalanche, WithExtraPayment(d("5000")), WithPrecision(0))
	require.NoError(t, err)
	snowball, err := GenerateSchedule(debts, domain.StrategySnowball, WithExtraPayment(d("5000")), WithPrecision(0))
	require.NoError(t, err)

	assert.Less(t, avalanche.DebtPayoffMonths["A"], avalanche.DebtPayoffMonths["B"])
	assert.Less(t, snowball.DebtPayoffMonths["B"], snowball.DebtPayoffMonths["A"])
	assert.True(t, avalanche.TotalInterest.LessThan(snowball.TotalInterest))

	first := avalanche.Entries[0]
	assert.True(t, d("7000").Equal(paymentFor(t, first, "A").Payment))
	assert.True(t, d("1000").Equal(paymentFor(t, first, "B").Payment))

	first = snowball.Entries[0]
	assert.True(t, d("2000").Equal(paymentFor(t, first, "A").Payment))
	assert.True(t, d("6000").Equal(paymentFor(t, first, "B").Payment))
}

func TestGenerateSchedule_SnowballPriorityFollowsCurrentBalances(t *testing.T) {
	debts := []domain.Debt{
		newDebt("x", "600", "0", "10"),
		newDebt("y", "1000", "0", "200"),
	}

	sched, err := GenerateSchedule(debts, domain.StrategySnowball, WithExtraPayment(d("50")))
	require.NoError(t, err)

	// x is smaller for the first two months, then y drops below it
	assert.True(t, d("60").Equal(paymentFor(t, sched.Entries[0], "x").Payment))
	assert.True(t, d("60").Equal(paymentFor(t, sched.Entries[1], "x").Payment))
	assert.True(t, d("10").Equal(paymentFor(t, sched.Entries[2], "x").Payment))
	assert.True(t, d("250").Equal(paymentFor(t, sched.Entries[2], "y").Payment))
}

func TestGenerateSchedule_FreedMinimumsRollOver(t *testing.T) {
	debts := []domain.Debt{
		newDebt("small", "100", "0", "50"),
		newDebt("large", "1000", "0", "100"),
	}

	sched, err := GenerateSchedule(debts, domain.StrategySnowball)
	require.NoError(t, err)

	assert.Equal(t, 2, sched.DebtPayoffMonths["small"])
	third := sched.Entries[2]
	assert.True(t, d("150").Equal(third.TotalPayment))
	assert.Len(t, third.Payments, 1)
	assert.True(t, d("150").Equal(paymentFor(t, third, "large").Payment))
}

func TestGenerateSchedule_SurplusCarriesToNextDebt(t *testing.T) {
	debts := []domain.Debt{
		newDebt("tiny", "30", "0", "10"),
		newDebt("big", "1000", "0", "100"),
	}

	sched, err := GenerateSchedule(debts, domain.StrategySnowball, WithExtraPayment(d("100")))
	require.NoError(t, err)

	first := sched.Entries[0]
	tiny := paymentFor(t, first, "tiny")
	big := paymentFor(t, first, "big")
	assert.True(t, d("30").Equal(tiny.Payment))
	assert.True(t, tiny.Closed)
	assert.True(t, d("180").Equal(big.Payment))
	assert.True(t, d("210").Equal(first.TotalPayment))
}

func TestGenerateSchedule_CapReached(t *testing.T) {
	debts := []domain.Debt{newDebt("mortgage", "10000000", "1", "10000")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche, WithPrecision(0))
	require.NoError(t, err)

	assert.Nil(t, sched.PayoffMonth)
	assert.True(t, sched.Exceeded())
	assert.Len(t, sched.Entries, DefaultCapMonths)
	assert.True(t, sched.Entries[len(sched.Entries)-1].RemainingBalance.IsPositive())
	assert.Equal(t, domain.PayoffExceededLabel, sched.PayoffLabel())
}

func TestGenerateSchedule_CustomCap(t *testing.T) {
	debts := []domain.Debt{newDebt("card", "1000", "0", "10")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche, WithCapMonths(12))
	require.NoError(t, err)
	assert.Nil(t, sched.PayoffMonth)
	assert.Len(t, sched.Entries, 12)
	assert.Equal(t, 12, sched.CapMonths)
}

func TestGenerateSchedule_NonAmortizingDebt(t *testing.T) {
	debts := []domain.Debt{
		newDebt("ok", "1000", "5", "100"),
		newDebt("bad", "10000000", "15", "10000"),
	}

	_, err := GenerateSchedule(debts, domain.StrategyAvalanche, WithPrecision(0))
	require.Error(t, err)

	var nonAmortizing *NonAmortizingDebtError
	require.True(t, errors.As(err, &nonAmortizing))
	assert.Equal(t, "bad", nonAmortizing.DebtID)
	assert.True(t, d("125000").Equal(nonAmortizing.MonthlyInterest))
	assert.Contains(t, err.Error(), "bad")
}

func TestInterestOnlyDebts(t *testing.T) {
	debts := []domain.Debt{
		newDebt("ok", "1000", "5", "100"),
		newDebt("flat", "12000", "12", "120"),
		newDebt("free", "500", "0", "0"),
		newDebt("paid", "0", "12", "0"),
	}

	assert.Equal(t, []string{"flat"}, InterestOnlyDebts(debts))
	require.NoError(t, Validate(debts, domain.StrategyAvalanche))

	assert.Empty(t, InterestOnlyDebts([]domain.Debt{newDebt("ok", "1000", "5", "100")}))
}

func TestGenerateSchedule_DoesNotMutateInput(t *testing.T) {
	debts := []domain.Debt{
		newDebt("a", "5000", "19.9", "150"),
		newDebt("b", "12000", "7.5", "250"),
	}
	before := make([]domain.Debt, len(debts))
	copy(before, debts)

	first, err := GenerateSchedule(debts, domain.StrategySnowball, WithExtraPayment(d("40")))
	require.NoError(t, err)
	second, err := GenerateSchedule(debts, domain.StrategySnowball, WithExtraPayment(d("40")))
	require.NoError(t, err)

	for i := range debts {
		assert.True(t, before[i].RemainingBalance.Equal(debts[i].RemainingBalance))
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerateSchedule_ClosedDebtsAreSkipped(t *testing.T) {
	paid := newDebt("paid", "0", "20", "500")
	debts := []domain.Debt{paid, newDebt("open", "300", "0", "100")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche)
	require.NoError(t, err)
	require.NotNil(t, sched.PayoffMonth)

	// the closed debt's minimum is not part of the pool
	assert.Equal(t, 3, *sched.PayoffMonth)
	for _, e := range sched.Entries {
		assert.Len(t, e.Payments, 1)
		assert.Equal(t, "open", e.Payments[0].DebtID)
	}
	_, tracked := sched.DebtPayoffMonths["paid"]
	assert.False(t, tracked)
}

func TestGenerateSchedule_AllClosed(t *testing.T) {
	sched, err := GenerateSchedule([]domain.Debt{newDebt("done", "0", "5", "0")}, domain.StrategySnowball)
	require.NoError(t, err)
	require.NotNil(t, sched.PayoffMonth)
	assert.Equal(t, 0, *sched.PayoffMonth)
	assert.Empty(t, sched.Entries)
}

func TestGenerateSchedule_SweepsResidualBalance(t *testing.T) {
	debts := []domain.Debt{newDebt("odd", "100.004", "0", "50")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche)
	require.NoError(t, err)
	require.NotNil(t, sched.PayoffMonth)
	assert.Equal(t, 2, *sched.PayoffMonth)

	last := sched.Entries[1]
	assert.True(t, last.RemainingBalance.IsZero())
	assert.True(t, d("50.004").Equal(last.TotalPayment))
}

func TestGenerateSchedule_WholeUnitDustThreshold(t *testing.T) {
	debts := []domain.Debt{newDebt("yen", "1000.5", "0", "500")}

	sched, err := GenerateSchedule(debts, domain.StrategyAvalanche, WithPrecision(0), WithDustThreshold(d("1")))
	require.NoError(t, err)
	require.NotNil(t, sched.PayoffMonth)
	assert.Equal(t, 2, *sched.PayoffMonth)
	assert.True(t, d("500.5").Equal(sched.Entries[1].TotalPayment))
}

func TestGenerateSchedule_Validation(t *testing.T) {
	valid := newDebt("a", "100", "5", "10")

	tests := []struct {
		name     string
		debts    []domain.Debt
		strategy domain.Strategy
		opts     []Option
		target   error
	}{
		{name: "no debts", debts: nil, strategy: domain.StrategySnowball, target: ErrNoDebts},
		{name: "unknown strategy", debts: []domain.Debt{valid}, strategy: "random", target: ErrInvalidStrategy},
		{name: "zero cap", debts: []domain.Debt{valid}, strategy: domain.StrategySnowball, opts: []Option{WithCapMonths(0)}, target: ErrInvalidCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSchedule(tt.debts, tt.strategy, tt.opts...)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	invalid := []struct {
		name  string
		debts []domain.Debt
		opts  []Option
		field string
	}{
		{name: "empty id", debts: []domain.Debt{newDebt("", "100", "5", "10")}, field: "id"},
		{name: "duplicate id", debts: []domain.Debt{valid, valid}, field: "id"},
		{name: "negative balance", debts: []domain.Debt{newDebt("n", "-1", "5", "10")}, field: "remaining balance"},
		{name: "negative rate", debts: []domain.Debt{newDebt("n", "100", "-5", "10")}, field: "annual interest rate"},
		{name: "negative minimum", debts: []domain.Debt{newDebt("n", "100", "0", "-10")}, field: "minimum payment"},
		{name: "negative extra", debts: []domain.Debt{valid}, opts: []Option{WithExtraPayment(d("-1"))}, field: "extra payment"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSchedule(tt.debts, domain.StrategyAvalanche, tt.opts...)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
