package service

import (
	"context"
	"fmt"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/payoff"
	"debt-planner/projection"
	"debt-planner/repository"

	"github.com/go-playground/validator/v10"
)

// ProjectionService projects net worth over the stored debts.
type ProjectionService struct {
	debts     repository.DebtRepository
	logger    logging.Logger
	precision int32
	validate  *validator.Validate
}

func NewProjectionService(debts repository.DebtRepository, logger logging.Logger, settings PlannerSettings) *ProjectionService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProjectionService{
		debts:     debts,
		logger:    logger,
		precision: settings.Precision,
		validate:  newValidator(),
	}
}

// NetWorth combines a savings growth curve with the repayment schedule of
// every open stored debt. With no open debts the projection is savings only.
func (s *ProjectionService) NetWorth(ctx context.Context, input domain.NetWorthInput) ([]domain.NetWorthPoint, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	strategy := domain.StrategyAvalanche
	if input.Strategy != "" {
		var err error
		if strategy, err = domain.ParseStrategy(input.Strategy); err != nil {
			return nil, fmt.Errorf("%w: %q", payoff.ErrInvalidStrategy, input.Strategy)
		}
	}

	debts, err := s.debts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}

	var sched domain.Schedule
	if hasOpen(debts) {
		sched, err = payoff.GenerateSchedule(debts, strategy,
			payoff.WithPrecision(s.precision),
			payoff.WithExtraPayment(input.ExtraMonthlyPayment))
		if err != nil {
			return nil, err
		}
	}

	months := input.Months
	if months == 0 && len(sched.Entries) == 0 {
		months = 12
	}
	points := projection.NetWorth(input.Savings, sched, months, s.precision)
	s.logger.Debug("Projected net worth",
		logging.F(logging.FieldCount, len(debts)),
		logging.F(logging.FieldMonths, len(points)-1))
	return points, nil
}

func hasOpen(debts []domain.Debt) bool {
	for _, d := range debts {
		if !d.IsClosed() {
			return true
		}
	}
	return false
}
