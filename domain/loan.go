package domain

import "github.com/shopspring/decimal"

type LoanInput struct {
	Amount       decimal.Decimal `json:"amount" validate:"gt=0"`
	InterestRate decimal.Decimal `json:"interestRate" validate:"gte=0"`
	TermMonths   int             `json:"termMonths" validate:"gt=0"`
}

type LoanResult struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}
