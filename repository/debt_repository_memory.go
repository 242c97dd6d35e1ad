package repository

import (
	"context"
	"sync"

	"debt-planner/domain"
)

// DebtRepositoryMemory is an in-memory implementation of DebtRepository.
type DebtRepositoryMemory struct {
	mu    sync.RWMutex
	order []string
	data  map[string]domain.Debt
}

// NewDebtRepositoryMemory creates a new in-memory debt repository.
func NewDebtRepositoryMemory() *DebtRepositoryMemory {
	return &DebtRepositoryMemory{
		data: make(map[string]domain.Debt),
	}
}

func (r *DebtRepositoryMemory) Create(_ context.Context, debt domain.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[debt.ID]; ok {
		return ErrDebtExists
	}
	r.data[debt.ID] = debt
	r.order = append(r.order, debt.ID)
	return nil
}

func (r *DebtRepositoryMemory) Get(_ context.Context, id string) (domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	debt, ok := r.data[id]
	if !ok {
		return domain.Debt{}, ErrDebtNotFound
	}
	return debt, nil
}

func (r *DebtRepositoryMemory) List(_ context.Context) ([]domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Debt, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.data[id])
	}
	return out, nil
}

func (r *DebtRepositoryMemory) Update(_ context.Context, debt domain.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[debt.ID]; !ok {
		return ErrDebtNotFound
	}
	r.data[debt.ID] = debt
	return nil
}

func (r *DebtRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrDebtNotFound
	}
	delete(r.data, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
