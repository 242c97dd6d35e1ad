package domain

import "github.com/shopspring/decimal"

// SavingsInput describes a savings or investment balance growing alongside
// the repayment plan.
type SavingsInput struct {
	Initial             decimal.Decimal `json:"initial" validate:"gte=0"`
	AnnualReturnPercent decimal.Decimal `json:"annualReturnPercent" validate:"gte=0,lte=100"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" validate:"gte=0"`
}

// NetWorthInput asks for a net-worth projection over the stored debts.
type NetWorthInput struct {
	Savings             SavingsInput    `json:"savings"`
	Strategy            string          `json:"strategy"`
	ExtraMonthlyPayment decimal.Decimal `json:"extraMonthlyPayment" validate:"gte=0"`
	Months              int             `json:"months" validate:"gte=0,lte=600"`
}

// NetWorthPoint is one month of a net-worth projection.
type NetWorthPoint struct {
	Month    int             `json:"month"`
	Assets   decimal.Decimal `json:"assets"`
	Debt     decimal.Decimal `json:"debt"`
	NetWorth decimal.Decimal `json:"netWorth"`
}
