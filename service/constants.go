package service

const (
	MaxLoanAmount      = 1_000_000_000_000.0
	MaxDebtAmount      = 1_000_000_000_000.0
	MaxInterestRate    = 1000.0 // percent per year
	MaxTermMonths      = 600    // 50 years
	MaxCapMonths       = 1200
	MaxDebtsPerRequest = 50

	// StrategyCompare runs both strategies and returns the recommended one.
	StrategyCompare = "compare"
)
