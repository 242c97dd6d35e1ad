package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtService manages the stored debt list.
type DebtService struct {
	repo     repository.DebtRepository
	logger   logging.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

func NewDebtService(repo repository.DebtRepository, logger logging.Logger) *DebtService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DebtService{
		repo:     repo,
		logger:   logger,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Create stores a new debt under a fresh ID. A missing remaining balance
// starts at the principal and a missing principal at the balance.
func (s *DebtService) Create(ctx context.Context, debt domain.Debt) (domain.Debt, error) {
	debt.ID = s.newID()
	debt.Name = strings.TrimSpace(debt.Name)
	if debt.RemainingBalance.IsZero() {
		debt.RemainingBalance = debt.Principal
	}
	if debt.Principal.IsZero() {
		debt.Principal = debt.RemainingBalance
	}
	if err := s.check(debt); err != nil {
		return domain.Debt{}, err
	}
	debt.CreatedAt = s.now()
	debt.UpdatedAt = debt.CreatedAt

	if err := s.repo.Create(ctx, debt); err != nil {
		return domain.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	s.logger.Info("Debt created", logging.F(logging.FieldDebtID, debt.ID))
	return debt, nil
}

func (s *DebtService) Get(ctx context.Context, id string) (domain.Debt, error) {
	return s.repo.Get(ctx, id)
}

func (s *DebtService) List(ctx context.Context) ([]domain.Debt, error) {
	return s.repo.List(ctx)
}

// Update replaces the editable fields of a stored debt.
func (s *DebtService) Update(ctx context.Context, id string, debt domain.Debt) (domain.Debt, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Debt{}, err
	}
	debt.ID = current.ID
	debt.Name = strings.TrimSpace(debt.Name)
	debt.CreatedAt = current.CreatedAt
	debt.UpdatedAt = s.now()
	if err := s.check(debt); err != nil {
		return domain.Debt{}, err
	}
	if err := s.repo.Update(ctx, debt); err != nil {
		return domain.Debt{}, fmt.Errorf("update debt: %w", err)
	}
	s.logger.Info("Debt updated", logging.F(logging.FieldDebtID, id))
	return debt, nil
}

func (s *DebtService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Debt deleted", logging.F(logging.FieldDebtID, id))
	return nil
}

// RecordPayment applies a real payment to a stored debt. The balance never
// drops below zero; a debt paid in full stays on record as closed.
func (s *DebtService) RecordPayment(ctx context.Context, id string, input domain.DebtPaymentInput) (domain.Debt, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return domain.Debt{}, err
	}
	debt, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Debt{}, err
	}
	if debt.IsClosed() {
		return domain.Debt{}, fmt.Errorf("%w: debt %q is already paid off", ErrInvalidInput, id)
	}

	balance := debt.RemainingBalance.Sub(input.Amount)
	if balance.IsNegative() {
		s.logger.Warn("Payment exceeds remaining balance, closing debt",
			logging.F(logging.FieldDebtID, id),
			logging.F("overpayment", balance.Neg().String()))
		balance = decimal.Zero
	}
	debt.RemainingBalance = balance
	debt.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, debt); err != nil {
		return domain.Debt{}, fmt.Errorf("record payment: %w", err)
	}

	s.logger.Info("Payment recorded",
		logging.F(logging.FieldDebtID, id),
		logging.F("amount", input.Amount.String()),
		logging.F("closed", debt.IsClosed()))
	return debt, nil
}

func (s *DebtService) check(debt domain.Debt) error {
	if debt.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if debt.RemainingBalance.GreaterThan(decimal.NewFromFloat(MaxDebtAmount)) {
		return fmt.Errorf("%w: remainingBalance exceeds the maximum of %.0f", ErrInvalidInput, MaxDebtAmount)
	}
	return validateStruct(s.validate, debt)
}
