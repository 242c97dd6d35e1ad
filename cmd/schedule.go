package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"debt-planner/domain"
	"debt-planner/export"
	"debt-planner/repository"
	"debt-planner/scenario"
	"debt-planner/service"
)

var (
	flagStrategy string
	flagExtra    string
	flagCap      int
	flagFormat   string
	flagDetailed bool
	flagRows     int
	flagExplain  bool
	flagOutput   string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <scenario-file>",
	Short: "Project the payoff schedule for a scenario file",
	Long: "Reads debts from a YAML, TOML, JSON or CSV file and prints the month-by-month\n" +
		"repayment schedule. Use --strategy compare to run both strategies.",
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "avalanche, snowball or compare (default from file, else avalanche)")
	scheduleCmd.Flags().StringVarP(&flagExtra, "extra", "e", "", "Extra monthly payment on top of the minimums")
	scheduleCmd.Flags().IntVar(&flagCap, "cap", 0, "Maximum months to simulate (default from config)")
	scheduleCmd.Flags().StringVarP(&flagFormat, "format", "f", "table", "Output format: table, csv or json")
	scheduleCmd.Flags().BoolVar(&flagDetailed, "detailed", false, "CSV: one line per debt per month")
	scheduleCmd.Flags().IntVar(&flagRows, "rows", 24, "Table: maximum months shown (0 for all)")
	scheduleCmd.Flags().BoolVar(&flagExplain, "explain", false, "Add a narrative explanation of the plan")
	scheduleCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	input, err := scenarioInput(args[0])
	if err != nil {
		return err
	}

	planner, closeFn, err := newPlanner(ctx, flagExplain)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := planner.Plan(ctx, input)
	if err != nil {
		return err
	}

	w, err := output(cmd, flagOutput)
	if err != nil {
		return err
	}
	defer w.Close()

	switch flagFormat {
	case "csv":
		return export.WriteCSV(w, result.Schedule, flagDetailed)
	case "json":
		return writeJSON(w, result)
	case "table":
		return writeScheduleTable(w, result, cfg.Planner.Precision)
	default:
		return fmt.Errorf("unknown format %q (want table, csv or json)", flagFormat)
	}
}

func writeScheduleTable(w io.Writer, result domain.RepaymentResult, places int32) error {
	fmt.Fprintln(w)
	fmt.Fprint(w, export.RenderSummary(result.Schedule, places))
	fmt.Fprintln(w)
	if result.Comparison != nil {
		fmt.Fprint(w, export.ComparisonTable(*result.Comparison, places).Render())
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, export.ScheduleTable(result.Schedule, places, flagRows).Render())
	if result.Explanation != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+result.Explanation)
	}
	return nil
}

// scenarioInput loads a scenario file and applies the command-line overrides.
func scenarioInput(path string) (domain.RepaymentInput, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return domain.RepaymentInput{}, err
	}
	input := sc.Input(flagStrategy)
	if flagExtra != "" {
		extra, err := parseAmount("extra", flagExtra)
		if err != nil {
			return domain.RepaymentInput{}, err
		}
		input.ExtraMonthlyPayment = extra
	}
	if flagCap > 0 {
		input.CapMonths = flagCap
	}
	return input, nil
}

// newPlanner builds a repayment service for one-shot CLI runs: no store and
// no cache.
func newPlanner(ctx context.Context, explain bool) (*service.RepaymentService, func(), error) {
	var explainer service.Explainer
	closeFn := func() {}
	if explain {
		ai, err := newExplainer(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		explainer = ai
		closeFn = func() { _ = ai.Close() }
	}
	svc := service.NewRepaymentService(
		repository.NewDebtRepositoryMemory(),
		repository.NopCache{},
		explainer,
		logger,
		plannerSettings(cfg),
	)
	return svc, closeFn, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
