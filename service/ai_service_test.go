package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/domain"
	"debt-planner/payoff"
)

func TestAIService_WithoutKeyUsesFallback(t *testing.T) {
	svc, err := NewAIService(context.Background(), "", "gemini-1.5-flash", 0, nil)
	require.NoError(t, err)
	assert.False(t, svc.Enabled())
	assert.NoError(t, svc.Close())

	debts := []domain.Debt{debt("card", "1000", "0", "100")}
	sched, err := payoff.GenerateSchedule(debts, domain.StrategySnowball)
	require.NoError(t, err)

	text := svc.ExplainPlan(context.Background(), debts, sched, nil)
	assert.Contains(t, text, "snowball")
	assert.Contains(t, text, "0.00 in interest")
	assert.Contains(t, text, "10 months")
}

func TestFallbackExplanation_CapExceeded(t *testing.T) {
	debts := []domain.Debt{debt("mortgage", "10000000", "1", "10000")}
	sched, err := payoff.GenerateSchedule(debts, domain.StrategyAvalanche, payoff.WithCapMonths(12))
	require.NoError(t, err)

	text := fallbackExplanation(sched, nil)
	assert.Contains(t, text, "not paid off within 12 months")
	assert.Contains(t, text, sched.Entries[11].RemainingBalance.StringFixed(2))
}

func TestFallbackExplanation_MentionsSavings(t *testing.T) {
	debts := []domain.Debt{
		debt("A", "100000", "10", "2000"),
		debt("B", "50000", "2", "1000"),
	}
	cmp, err := payoff.Compare(debts, payoff.WithExtraPayment(dec("5000")))
	require.NoError(t, err)

	text := fallbackExplanation(cmp.Avalanche, &cmp)
	assert.Contains(t, text, "Avalanche saves "+cmp.InterestSaved.StringFixed(2))
}

func TestBuildPlanPrompt(t *testing.T) {
	debts := []domain.Debt{debt("card", "1000", "12.5", "100")}
	sched, err := payoff.GenerateSchedule(debts, domain.StrategyAvalanche)
	require.NoError(t, err)

	prompt := buildPlanPrompt(debts, sched, nil)
	assert.Contains(t, prompt, "STRATEGY: avalanche")
	assert.Contains(t, prompt, "- card: balance 1000.00 at 12.5% a year, minimum 100.00")
	assert.NotContains(t, prompt, "STRATEGY COMPARISON")
}
