package repository

import (
	"context"
	"errors"

	"debt-planner/domain"
)

var (
	ErrDebtNotFound = errors.New("debt not found")
	ErrDebtExists   = errors.New("debt already exists")
)

// DebtRepository persists the user's debts. List returns debts in creation
// order.
type DebtRepository interface {
	Create(ctx context.Context, debt domain.Debt) error
	Get(ctx context.Context, id string) (domain.Debt, error)
	List(ctx context.Context) ([]domain.Debt, error)
	Update(ctx context.Context, debt domain.Debt) error
	Delete(ctx context.Context, id string) error
}
