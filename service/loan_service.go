package service

import (
	"context"
	"encoding/json"
	"fmt"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/payoff"
	"debt-planner/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// LoanService is the single-loan annuity calculator.
type LoanService struct {
	cache    repository.CacheRepository
	logger   logging.Logger
	validate *validator.Validate
}

// NewLoanService creates a new LoanService. Results are cached by input hash
// when cache is not nil.
func NewLoanService(cache repository.CacheRepository, logger logging.Logger) *LoanService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &LoanService{cache: cache, logger: logger, validate: newValidator()}
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(ctx context.Context, input domain.LoanInput) (domain.LoanResult, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return domain.LoanResult{}, err
	}
	if input.Amount.GreaterThan(decimal.NewFromFloat(MaxLoanAmount)) {
		return domain.LoanResult{}, fmt.Errorf("%w: amount exceeds the maximum of %.2f", ErrInvalidInput, MaxLoanAmount)
	}
	if input.InterestRate.GreaterThan(decimal.NewFromFloat(MaxInterestRate)) {
		return domain.LoanResult{}, fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", ErrInvalidInput, MaxInterestRate)
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, fmt.Errorf("%w: term exceeds the maximum of %d months", ErrInvalidInput, MaxTermMonths)
	}

	key, keyErr := cacheKey("loan", input)
	if keyErr == nil && s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached domain.LoanResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	payment := payoff.AmortizedPayment(input.Amount, input.InterestRate, input.TermMonths)
	total := payment.Mul(decimal.NewFromInt(int64(input.TermMonths)))
	result := domain.LoanResult{
		MonthlyPayment: payment.Round(2),
		TotalPayment:   total.Round(2),
		TotalInterest:  total.Sub(input.Amount).Round(2),
	}

	if keyErr == nil && s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(raw)); err != nil {
				s.logger.WithError(err).Warn("Failed to cache loan calculation")
			}
		}
	}
	return result, nil
}
