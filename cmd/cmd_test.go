package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/config"
	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/payoff"
	"debt-planner/repository"
)

const testScenario = `
strategy: avalanche
extra_monthly_payment: 100
debts:
  - id: card
    name: Visa
    balance: 2000
    rate: 19.9
    minimum: 60
  - id: car
    name: Car loan
    balance: 6000
    rate: 5
    minimum: 180
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func resetFlags() {
	flagStrategy, flagExtra, flagFormat, flagOutput = "", "", "table", ""
	flagCap, flagRows, flagMonths = 0, 24, 0
	flagDetailed, flagExplain = false, false
	flagInitial, flagReturn, flagContribution = "0", "0", "0"
	flagAmount, flagRate = "", "0"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEBTPLAN_LOG_LEVEL", "error")
	t.Setenv("DEBTPLAN_CACHE_DRIVER", "none")
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScheduleCommand_Table(t *testing.T) {
	path := writeScenario(t, testScenario)

	out, err := execute(t, "schedule", path)
	require.NoError(t, err)
	assert.Contains(t, out, "AVALANCHE plan")
	assert.Contains(t, out, "Total debt:")
	assert.Contains(t, out, "8,000.00")
}

func TestScheduleCommand_CompareStrategy(t *testing.T) {
	path := writeScenario(t, testScenario)

	out, err := execute(t, "schedule", path, "--strategy", "compare", "--rows", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy comparison")
}

func TestScheduleCommand_CSVFile(t *testing.T) {
	path := writeScenario(t, testScenario)
	outPath := filepath.Join(t.TempDir(), "schedule.csv")

	_, err := execute(t, "schedule", path, "--format", "csv", "--output", outPath, "--extra", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "month,total_payment"))
	assert.True(t, strings.HasPrefix(lines[1], "1,240,"), lines[1])
}

func TestScheduleCommand_JSON(t *testing.T) {
	path := writeScenario(t, testScenario)

	out, err := execute(t, "schedule", path, "--format", "json", "--strategy", "snowball")
	require.NoError(t, err)

	var result domain.RepaymentResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.StrategySnowball, result.Schedule.Strategy)
	require.NotNil(t, result.Schedule.PayoffMonth)
	assert.Equal(t, result.Schedule.PayoffLabel(), result.PayoffLabel)
}

func TestScheduleCommand_Errors(t *testing.T) {
	_, err := execute(t, "schedule", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeScenario(t, `
debts:
  - id: mortgage
    balance: 10000000
    rate: 15
    minimum: 10000
`)
	_, err = execute(t, "schedule", path)
	var nonAmortizing *payoff.NonAmortizingDebtError
	assert.ErrorAs(t, err, &nonAmortizing)

	_, err = execute(t, "schedule", writeScenario(t, testScenario), "--format", "xml")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	path := writeScenario(t, testScenario)

	out, err := execute(t, "compare", path, "--format", "json")
	require.NoError(t, err)

	var cmp domain.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, domain.StrategyAvalanche, cmp.Recommended)
	assert.False(t, cmp.InterestSaved.IsNegative())
}

func TestLoanCommand(t *testing.T) {
	out, err := execute(t, "loan", "--amount", "10000", "--rate", "12", "--months", "24", "--format", "json")
	require.NoError(t, err)

	var result domain.LoanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "470.73", result.MonthlyPayment.StringFixed(2))

	_, err = execute(t, "loan", "--amount", "ten", "--months", "24")
	assert.Error(t, err)
}

func TestProjectCommand(t *testing.T) {
	path := writeScenario(t, testScenario)

	out, err := execute(t, "project", path, "--initial", "1000", "--contribution", "50", "--months", "12", "--format", "json")
	require.NoError(t, err)

	var points []domain.NetWorthPoint
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.Len(t, points, 13)
	assert.Equal(t, "-7000", points[0].NetWorth.String())
	assert.True(t, points[12].NetWorth.GreaterThan(points[0].NetWorth))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Log.Level, cfg.Log.Format = "error", "text"
	cfg.Storage.Driver = "memory"
	cfg.Cache.Driver = "memory"
	cfg.Cache.TTL = time.Minute
	cfg.Planner.CapMonths, cfg.Planner.Precision, cfg.Planner.MaxDebts = 360, 2, 50
	cfg.AI.Model = "gemini-1.5-flash"
	return &cfg
}

func TestNewApp_Memory(t *testing.T) {
	cfg := testConfig(t)

	a, err := newApp(context.Background(), cfg, logging.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &repository.DebtRepositoryMemory{}, a.debts)
	assert.IsType(t, &repository.MemoryCache{}, a.cache)
	assert.False(t, a.explainer.Enabled())
	assert.Equal(t, 360, a.settings.CapMonths)
}

func TestNewApp_SQLiteWithoutCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "debts.db")
	cfg.Cache.Driver = "none"

	a, err := newApp(context.Background(), cfg, logging.NewNopLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &repository.SQLiteDebtRepository{}, a.debts)
	assert.IsType(t, repository.NopCache{}, a.cache)

	require.NoError(t, a.debts.Create(context.Background(), domain.Debt{ID: "x", Name: "x"}))
	_, err = os.Stat(cfg.Storage.SQLitePath)
	assert.NoError(t, err)
}
