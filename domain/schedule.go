package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PayoffExceededLabel is shown instead of a payoff date when the cap is hit.
const PayoffExceededLabel = "payoff exceeds 30 years"

// DebtPayment is what one debt received in one simulated month.
type DebtPayment struct {
	DebtID           string          `json:"debtId"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Closed           bool            `json:"closed"`
}

// ScheduleEntry aggregates one simulated month across all debts.
type ScheduleEntry struct {
	Month              int             `json:"month"`
	TotalPayment       decimal.Decimal `json:"totalPayment"`
	TotalPrincipal     decimal.Decimal `json:"totalPrincipal"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	CumulativeInterest decimal.Decimal `json:"cumulativeInterest"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
	Payments           []DebtPayment   `json:"payments,omitempty"`
}

// Schedule is the full month-by-month projection for one strategy.
// PayoffMonth is nil when the cap was reached with balance left.
type Schedule struct {
	Strategy         Strategy        `json:"strategy"`
	CapMonths        int             `json:"capMonths"`
	Entries          []ScheduleEntry `json:"entries"`
	PayoffMonth      *int            `json:"payoffMonth"`
	DebtPayoffMonths map[string]int  `json:"debtPayoffMonths,omitempty"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
}

// Exceeded reports whether the debts were still open when the cap was reached.
func (s Schedule) Exceeded() bool {
	return s.PayoffMonth == nil
}

// PayoffLabel renders the payoff horizon for display.
func (s Schedule) PayoffLabel() string {
	if s.PayoffMonth == nil {
		return PayoffExceededLabel
	}
	years := *s.PayoffMonth / 12
	months := *s.PayoffMonth % 12
	switch {
	case years == 0:
		return plural(months, "month")
	case months == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(months, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// Comparison runs both strategies over the same debts.
type Comparison struct {
	Snowball      Schedule        `json:"snowball"`
	Avalanche     Schedule        `json:"avalanche"`
	Recommended   Strategy        `json:"recommended"`
	InterestSaved decimal.Decimal `json:"interestSaved"`
	MonthsSaved   int             `json:"monthsSaved"`
}

// RepaymentInput is the request shape for an ad-hoc projection.
type RepaymentInput struct {
	Debts               []Debt          `json:"debts" validate:"required,min=1,dive"`
	Strategy            string          `json:"strategy"`
	ExtraMonthlyPayment decimal.Decimal `json:"extraMonthlyPayment" validate:"gte=0"`
	CapMonths           int             `json:"capMonths" validate:"gte=0"`
}

// RepaymentResult is a schedule plus presentation extras.
type RepaymentResult struct {
	Schedule    Schedule    `json:"schedule"`
	PayoffLabel string      `json:"payoffLabel"`
	Comparison  *Comparison `json:"comparison,omitempty"`
	Explanation string      `json:"explanation,omitempty"`
}
