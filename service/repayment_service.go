package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/payoff"
	"debt-planner/repository"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PlannerSettings are the engine defaults applied to every request.
type PlannerSettings struct {
	CapMonths int
	Precision int32
	MaxDebts  int
}

// DefaultPlannerSettings mirrors the engine defaults.
func DefaultPlannerSettings() PlannerSettings {
	return PlannerSettings{
		CapMonths: payoff.DefaultCapMonths,
		Precision: payoff.DefaultPrecision,
		MaxDebts:  MaxDebtsPerRequest,
	}
}

// RepaymentService runs repayment projections over ad-hoc or stored debts.
type RepaymentService struct {
	debts     repository.DebtRepository
	cache     repository.CacheRepository
	explainer Explainer
	logger    logging.Logger
	settings  PlannerSettings
	validate  *validator.Validate
}

// NewRepaymentService wires a RepaymentService. A nil cache disables caching
// and a nil explainer leaves results without a narrative.
func NewRepaymentService(
	debts repository.DebtRepository,
	cache repository.CacheRepository,
	explainer Explainer,
	logger logging.Logger,
	settings PlannerSettings,
) *RepaymentService {
	if cache == nil {
		cache = repository.NopCache{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if settings.CapMonths <= 0 {
		settings.CapMonths = payoff.DefaultCapMonths
	}
	if settings.MaxDebts <= 0 {
		settings.MaxDebts = MaxDebtsPerRequest
	}
	return &RepaymentService{
		debts:     debts,
		cache:     cache,
		explainer: explainer,
		logger:    logger,
		settings:  settings,
		validate:  newValidator(),
	}
}

// Plan projects the given debts under input.Strategy. The strategy
// "compare" runs both and returns the recommended schedule together with
// the comparison.
func (s *RepaymentService) Plan(ctx context.Context, input domain.RepaymentInput) (domain.RepaymentResult, error) {
	input = withDebtIDs(input)
	if err := s.check(input); err != nil {
		return domain.RepaymentResult{}, err
	}

	compare := strings.EqualFold(strings.TrimSpace(input.Strategy), StrategyCompare)
	var strategy domain.Strategy
	if !compare {
		var err error
		if strategy, err = domain.ParseStrategy(input.Strategy); err != nil {
			return domain.RepaymentResult{}, fmt.Errorf("%w: %q", payoff.ErrInvalidStrategy, input.Strategy)
		}
	}

	key, err := cacheKey("plan", planKey{
		Input:     input,
		CapMonths: s.capMonths(input),
		Precision: s.settings.Precision,
	})
	if err == nil {
		if result, ok := s.cached(ctx, key); ok {
			return result, nil
		}
	}

	if input.ExtraMonthlyPayment.IsZero() {
		for _, id := range payoff.InterestOnlyDebts(input.Debts, s.options(input)...) {
			s.logger.Warn("Minimum payment only covers interest",
				logging.F(logging.FieldDebtID, id))
		}
	}

	start := time.Now()
	var result domain.RepaymentResult
	if compare {
		cmp, err := payoff.Compare(input.Debts, s.options(input)...)
		if err != nil {
			return domain.RepaymentResult{}, err
		}
		result.Comparison = &cmp
		result.Schedule = cmp.Avalanche
		if cmp.Recommended == domain.StrategySnowball {
			result.Schedule = cmp.Snowball
		}
	} else {
		sched, err := payoff.GenerateSchedule(input.Debts, strategy, s.options(input)...)
		if err != nil {
			return domain.RepaymentResult{}, err
		}
		result.Schedule = sched
	}
	result.PayoffLabel = result.Schedule.PayoffLabel()
	if s.explainer != nil {
		result.Explanation = s.explainer.ExplainPlan(ctx, input.Debts, result.Schedule, result.Comparison)
	}

	s.logger.Info("Generated repayment plan",
		logging.F(logging.FieldStrategy, result.Schedule.Strategy.String()),
		logging.F(logging.FieldCount, len(input.Debts)),
		logging.F(logging.FieldMonths, len(result.Schedule.Entries)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	if key != "" {
		s.store(ctx, key, result)
	}
	return result, nil
}

// PlanStored projects every debt in the store.
func (s *RepaymentService) PlanStored(ctx context.Context, strategy string, extra decimal.Decimal) (domain.RepaymentResult, error) {
	debts, err := s.debts.List(ctx)
	if err != nil {
		return domain.RepaymentResult{}, fmt.Errorf("list debts: %w", err)
	}
	if len(debts) == 0 {
		return domain.RepaymentResult{}, payoff.ErrNoDebts
	}
	return s.Plan(ctx, domain.RepaymentInput{
		Debts:               debts,
		Strategy:            strategy,
		ExtraMonthlyPayment: extra,
	})
}

// Compare runs snowball and avalanche over the same debts.
func (s *RepaymentService) Compare(ctx context.Context, input domain.RepaymentInput) (domain.Comparison, error) {
	input.Strategy = StrategyCompare
	result, err := s.Plan(ctx, input)
	if err != nil {
		return domain.Comparison{}, err
	}
	return *result.Comparison, nil
}

func (s *RepaymentService) check(input domain.RepaymentInput) error {
	if len(input.Debts) == 0 {
		return payoff.ErrNoDebts
	}
	if len(input.Debts) > s.settings.MaxDebts {
		return fmt.Errorf("%w: at most %d debts per request", ErrInvalidInput, s.settings.MaxDebts)
	}
	if input.CapMonths > MaxCapMonths {
		return fmt.Errorf("%w: capMonths exceeds %d", ErrInvalidInput, MaxCapMonths)
	}
	limit := decimal.NewFromFloat(MaxDebtAmount)
	for _, d := range input.Debts {
		if d.RemainingBalance.GreaterThan(limit) {
			return fmt.Errorf("%w: debt %q exceeds the maximum balance", ErrInvalidInput, d.ID)
		}
	}
	return validateStruct(s.validate, input)
}

// planKey holds everything a cached plan depends on, including the
// settings that fill in what the request leaves out.
type planKey struct {
	Input     domain.RepaymentInput `json:"input"`
	CapMonths int                   `json:"capMonths"`
	Precision int32                 `json:"precision"`
}

func (s *RepaymentService) capMonths(input domain.RepaymentInput) int {
	if input.CapMonths > 0 {
		return input.CapMonths
	}
	return s.settings.CapMonths
}

func (s *RepaymentService) options(input domain.RepaymentInput) []payoff.Option {
	return []payoff.Option{
		payoff.WithCapMonths(s.capMonths(input)),
		payoff.WithPrecision(s.settings.Precision),
		payoff.WithExtraPayment(input.ExtraMonthlyPayment),
	}
}

func (s *RepaymentService) cached(ctx context.Context, key string) (domain.RepaymentResult, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.RepaymentResult{}, false
	}
	var result domain.RepaymentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable cache entry", logging.F(logging.FieldCacheKey, key))
		return domain.RepaymentResult{}, false
	}
	s.logger.Debug("Repayment plan served from cache",
		logging.F(logging.FieldCacheKey, key), logging.F(logging.FieldCacheHit, true))
	return result, true
}

func (s *RepaymentService) store(ctx context.Context, key string, result domain.RepaymentResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode repayment plan for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.logger.WithError(err).Warn("Failed to cache repayment plan", logging.F(logging.FieldCacheKey, key))
	}
}

// withDebtIDs names anonymous debts by position so ad-hoc requests need not
// carry IDs. The caller's slice is left untouched.
func withDebtIDs(input domain.RepaymentInput) domain.RepaymentInput {
	debts := make([]domain.Debt, len(input.Debts))
	copy(debts, input.Debts)
	for i := range debts {
		if debts[i].ID == "" {
			debts[i].ID = fmt.Sprintf("debt-%d", i+1)
		}
	}
	input.Debts = debts
	return input
}

// cacheKey hashes the JSON form of v with xxhash.
func cacheKey(kind string, v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	h := xxhash.New()
	_, _ = h.WriteString(kind)
	_, _ = h.Write(raw)
	return fmt.Sprintf("%s:%016x", kind, h.Sum64()), nil
}
