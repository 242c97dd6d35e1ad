package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"debt-planner/domain"
	"debt-planner/logging"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// Explainer turns a computed plan into a short narrative for the user.
type Explainer interface {
	ExplainPlan(ctx context.Context, debts []domain.Debt, sched domain.Schedule, cmp *domain.Comparison) string
}

// AIService explains plans with Gemini when an API key is configured and
// falls back to a fixed template otherwise or on any API failure.
type AIService struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewAIService creates the explainer. An empty apiKey yields a service that
// only produces fallback text.
func NewAIService(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*AIService, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &AIService{timeout: timeout, logger: logger}
	if apiKey == "" {
		return s, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.client = client
	s.model = client.GenerativeModel(modelName)
	s.model.SetMaxOutputTokens(300)
	s.model.SetTemperature(0.4)
	return s, nil
}

// Enabled reports whether explanations come from the model.
func (s *AIService) Enabled() bool {
	return s.model != nil
}

func (s *AIService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *AIService) ExplainPlan(ctx context.Context, debts []domain.Debt, sched domain.Schedule, cmp *domain.Comparison) string {
	if !s.Enabled() {
		return fallbackExplanation(sched, cmp)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	explanation, err := s.generate(ctx, buildPlanPrompt(debts, sched, cmp))
	if err != nil {
		s.logger.WithError(err).Warn("Gemini explanation failed, using fallback",
			logging.F(logging.FieldStrategy, sched.Strategy.String()))
		return fallbackExplanation(sched, cmp)
	}
	return explanation
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	return strings.TrimSpace(b.String()), nil
}

func buildPlanPrompt(debts []domain.Debt, sched domain.Schedule, cmp *domain.Comparison) string {
	var lines strings.Builder
	for _, d := range debts {
		fmt.Fprintf(&lines, "- %s: balance %s at %s%% a year, minimum %s\n",
			d.Label(), d.RemainingBalance.StringFixed(2), d.AnnualInterestRatePercent.String(),
			d.MinimumMonthlyPayment.StringFixed(2))
	}

	comparison := ""
	if cmp != nil {
		comparison = fmt.Sprintf(`
STRATEGY COMPARISON:
- Snowball: %s interest, %s
- Avalanche: %s interest, %s
- Recommended: %s, saving %s interest and %d months`,
			cmp.Snowball.TotalInterest.StringFixed(2), cmp.Snowball.PayoffLabel(),
			cmp.Avalanche.TotalInterest.StringFixed(2), cmp.Avalanche.PayoffLabel(),
			cmp.Recommended, cmp.InterestSaved.StringFixed(2), cmp.MonthsSaved)
	}

	return fmt.Sprintf(`You are a personal finance coach. Explain this debt repayment plan clearly and realistically.

STRATEGY: %s
%s

SUMMARY:
- Total debt: %s
- Total interest: %s
- Payoff: %s

DEBTS:
%s%s

Write 3-4 sentences a non-expert can follow. Be specific with the numbers and keep the tone encouraging.`,
		strategyName(sched.Strategy), strategyTip(sched.Strategy),
		sched.TotalDebt.StringFixed(2), sched.TotalInterest.StringFixed(2), sched.PayoffLabel(),
		lines.String(), comparison)
}

func fallbackExplanation(sched domain.Schedule, cmp *domain.Comparison) string {
	var b strings.Builder
	if sched.Exceeded() {
		fmt.Fprintf(&b, "With the %s strategy the debts are not paid off within %d months; %s is still owed at the end. ",
			strategyName(sched.Strategy), sched.CapMonths, finalRemaining(sched).StringFixed(2))
	} else {
		fmt.Fprintf(&b, "With the %s strategy you pay %s in interest and are debt-free in %s. ",
			strategyName(sched.Strategy), sched.TotalInterest.StringFixed(2), sched.PayoffLabel())
	}
	b.WriteString(strategyTip(sched.Strategy))
	if cmp != nil && cmp.InterestSaved.IsPositive() {
		fmt.Fprintf(&b, " Avalanche saves %s in interest compared with snowball.", cmp.InterestSaved.StringFixed(2))
	}
	return b.String()
}

func finalRemaining(sched domain.Schedule) decimal.Decimal {
	if len(sched.Entries) == 0 {
		return sched.TotalDebt
	}
	return sched.Entries[len(sched.Entries)-1].RemainingBalance
}

func strategyName(s domain.Strategy) string {
	if s == domain.StrategySnowball {
		return "snowball"
	}
	return "avalanche"
}

func strategyTip(s domain.Strategy) string {
	if s == domain.StrategySnowball {
		return "Snowball clears the smallest balances first, so you see accounts close early and keep momentum."
	}
	return "Avalanche pays the highest interest rates first, which keeps the total cost as low as possible."
}
