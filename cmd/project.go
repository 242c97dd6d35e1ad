package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"debt-planner/domain"
	"debt-planner/export"
	"debt-planner/repository"
	"debt-planner/scenario"
	"debt-planner/service"
)

var (
	flagInitial      string
	flagReturn       string
	flagContribution string
)

var projectCmd = &cobra.Command{
	Use:   "project <scenario-file>",
	Short: "Project net worth while paying off a scenario's debts",
	Args:  cobra.ExactArgs(1),
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVar(&flagInitial, "initial", "0", "Current savings")
	projectCmd.Flags().StringVar(&flagReturn, "return", "0", "Annual return on savings in percent")
	projectCmd.Flags().StringVar(&flagContribution, "contribution", "0", "Monthly savings contribution")
	projectCmd.Flags().IntVar(&flagMonths, "months", 0, "Months to project (default: until the debts are paid off)")
	projectCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "avalanche or snowball")
	projectCmd.Flags().StringVarP(&flagExtra, "extra", "e", "", "Extra monthly payment on top of the minimums")
	projectCmd.Flags().StringVarP(&flagFormat, "format", "f", "table", "Output format: table or json")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	var savings domain.SavingsInput
	if savings.Initial, err = parseAmount("initial", flagInitial); err != nil {
		return err
	}
	if savings.AnnualReturnPercent, err = parseAmount("return", flagReturn); err != nil {
		return err
	}
	if savings.MonthlyContribution, err = parseAmount("contribution", flagContribution); err != nil {
		return err
	}

	input := domain.NetWorthInput{
		Savings:             savings,
		Strategy:            flagStrategy,
		ExtraMonthlyPayment: sc.ExtraMonthlyPayment,
		Months:              flagMonths,
	}
	if input.Strategy == "" {
		input.Strategy = sc.Strategy
	}
	if flagExtra != "" {
		if input.ExtraMonthlyPayment, err = parseAmount("extra", flagExtra); err != nil {
			return err
		}
	}

	repo := repository.NewDebtRepositoryMemory()
	for _, d := range sc.DomainDebts() {
		if err := repo.Create(ctx, d); err != nil {
			return fmt.Errorf("loading debt %s: %w", d.ID, err)
		}
	}

	svc := service.NewProjectionService(repo, logger, plannerSettings(cfg))
	points, err := svc.NetWorth(ctx, input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagFormat == "json" {
		return writeJSON(w, points)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, export.NetWorthTable(points, cfg.Planner.Precision).Render())
	return nil
}
